package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stream-engage/domain/repository"
	"stream-engage/infrastructure/cache"
	ivsclient "stream-engage/infrastructure/clients/ivs"
	"stream-engage/infrastructure/configuration"
	"stream-engage/infrastructure/event"
	"stream-engage/infrastructure/logger"
	"stream-engage/infrastructure/persistence"
	"stream-engage/infrastructure/realtime"
	httpHandler "stream-engage/interfaces/http"
	"stream-engage/server"
	"stream-engage/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	mongoClient, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to MongoDB")
		os.Exit(1)
	}
	if err := mongoClient.Ping(ctx, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("MongoDB ping failed")
		os.Exit(1)
	}
	logger.GetLogger().Info("MongoDB connected successfully")
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to Redis")
		os.Exit(1)
	}
	defer func() {
		_ = redisClient.Close()
	}()
	logger.GetLogger().Info("Redis client initialized successfully.")

	joinLogRepository, err := initiateJoinLogRepository()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Join log store initialization failed")
		os.Exit(1)
	}

	sink := initiateEventSink(ctx)

	provisioner, err := ivsclient.NewIvsClient(ctx, ivsclient.Config{
		Region:          configuration.C.Ivs.Region,
		AccessKeyID:     configuration.C.Ivs.AccessKeyID,
		SecretAccessKey: configuration.C.Ivs.SecretAccessKey,
	})
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot initialize channel provisioner")
		os.Exit(1)
	}

	dbName := configuration.C.Database.Mongo.Name
	streamRepository := persistence.NewStreamRepository(mongoClient, dbName)
	statsRepository := persistence.NewStatsRepository(mongoClient, dbName)
	channelRepository := persistence.NewChannelRepository(mongoClient, dbName)
	presenceCache := cache.NewPresenceCache(redisClient)

	hub := realtime.NewStreamHub()
	broadcast := func(evt realtime.EngagementEvent) { hub.Broadcast(evt) }

	streamUsecase := usecase.NewStreamUsecase(streamRepository, statsRepository, channelRepository, presenceCache, provisioner, nil, sink)
	goalUsecase := usecase.NewGoalUsecase(streamRepository, sink)
	presenceUsecase := usecase.NewPresenceUsecase(streamRepository, joinLogRepository, statsRepository, presenceCache, sink).
		WithBroadcaster(broadcast)
	engagementUsecase := usecase.NewEngagementUsecase(streamRepository, statsRepository, sink).
		WithBroadcaster(broadcast)

	streamHandler := httpHandler.NewStreamHandler(streamUsecase, goalUsecase)
	presenceHandler := httpHandler.NewPresenceHandler(presenceUsecase)
	engagementHandler := httpHandler.NewEngagementHandler(engagementUsecase)
	channelHandler := httpHandler.NewChannelHandler(streamUsecase)

	router := server.InitiateRouter(streamHandler, presenceHandler, engagementHandler, channelHandler, hub)

	port := app.Port
	logger.GetLogger().WithFields(map[string]interface{}{"port": port, "tls": app.TLSEnabled}).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if app.TLSEnabled {
			cert := app.TLSCertFile
			key := app.TLSKeyFile
			if cert == "" || key == "" {
				logger.GetLogger().Error("TLS enabled but cert or key path empty; falling back to HTTP")
				if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			} else {
				if err := httpServer.ListenAndServeTLS(cert, key); !errors.Is(err, http.ErrServerClosed) {
					return err
				}
			}
		} else {
			if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// initiateJoinLogRepository picks the relational store for the presence audit
// trail: MSSQL in production (or DB_VENDOR=mssql), MySQL otherwise.
func initiateJoinLogRepository() (repository.IJoinLog, error) {
	env := os.Getenv("ENV")
	if v := os.Getenv("DB_VENDOR"); v == "mssql" || env == "production" || env == "prod" {
		mssql, err := persistence.NewMSSQLDB()
		if err != nil {
			return nil, err
		}
		if err := persistence.EnsureJoinLogSchemaMSSQL(mssql); err != nil {
			return nil, err
		}
		return persistence.NewJoinLogRepositoryMSSQL(mssql), nil
	}

	db, err := persistence.NewMySQLDB()
	if err != nil {
		return nil, err
	}
	if err := persistence.EnsureJoinLogSchema(db); err != nil {
		return nil, err
	}
	return persistence.NewJoinLogRepository(db), nil
}

// initiateEventSink selects the configured sink; a misconfigured or
// unreachable broker degrades to the no-op sink rather than failing startup.
func initiateEventSink(ctx context.Context) event.IEventSink {
	switch configuration.C.Events.Sink {
	case "pubsub":
		client, err := event.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Pub/Sub not available - events disabled")
			return event.NewNopSink()
		}
		return event.NewPubSubSink(client, configuration.C.Pubsub.Topic)
	case "servicebus":
		client, err := event.NewServiceBus(configuration.C.ServiceBus.Namespace)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Service Bus not available - events disabled")
			return event.NewNopSink()
		}
		return event.NewServiceBusSink(client, configuration.C.ServiceBus.Queue)
	default:
		logger.GetLogger().Info("No event sink configured")
		return event.NewNopSink()
	}
}
