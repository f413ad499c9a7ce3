package configuration

import (
	"fmt"
	"os"
	"strconv"

	"stream-engage/infrastructure/logger"

	"github.com/spf13/viper"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	Pubsub      Pubsub      `json:"pubsub"`
	ServiceBus  ServiceBus  `json:"serviceBus"`
	Ivs         Ivs         `json:"ivs"`
	Events      Events      `json:"events"`
	Cors        Cors        `json:"cors"`
}

type App struct {
	Port        int    `json:"port"`
	SecretKey   string `json:"secretKey"`
	TLSEnabled  bool   `json:"tlsEnabled"`
	TLSCertFile string `json:"tlsCertFile"`
	TLSKeyFile  string `json:"tlsKeyFile"`
}

type Database struct {
	Mongo Db `json:"mongo"`
	MySql Db `json:"mysql"`
	Mssql Db `json:"mssql"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type Pubsub struct {
	ProjectID string `json:"projectID"`
	Topic     string `json:"topic"`
}

type ServiceBus struct {
	Namespace string `json:"namespace"`
	Queue     string `json:"queue"`
}

// Ivs configures the managed ingest provider used to provision channels and
// stream keys.
type Ivs struct {
	Region          string `json:"region"`
	AccessKeyID     string `json:"accessKeyId"`
	SecretAccessKey string `json:"secretAccessKey"`
}

// Events selects the event sink: "pubsub", "servicebus" or "" for none.
type Events struct {
	Sink string `json:"sink"`
}

type Cors struct {
	AllowOrigins []string `json:"allowOrigins"`
}

var C Config

func init() {
	LoadConfig()
	initDatabase(&C)
	initApp(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	if env := os.Getenv("ENV"); env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initDatabase(C *Config) {
	mongo := &C.Database.Mongo
	if mongo.Host == "" {
		mongo.Host = envOr("MONGO_HOST", "localhost")
	}
	if mongo.Port == "" {
		mongo.Port = envOr("MONGO_PORT", "27017")
	}
	if mongo.Name == "" {
		mongo.Name = envOr("MONGO_DB_NAME", "stream_engage")
	}
	if mongo.User == "" {
		mongo.User = os.Getenv("MONGO_USER")
	}
	if mongo.Password == "" {
		mongo.Password = os.Getenv("MONGO_PASSWORD")
	}

	mysql := &C.Database.MySql
	if mysql.Host == "" {
		mysql.Host = envOr("MYSQL_HOST", "localhost")
	}
	if mysql.Port == "" {
		mysql.Port = envOr("MYSQL_PORT", "3306")
	}
	if mysql.Name == "" {
		mysql.Name = envOr("MYSQL_DB_NAME", "stream_engage")
	}
	if mysql.User == "" {
		mysql.User = envOr("MYSQL_USER", "root")
	}
	if mysql.Password == "" {
		mysql.Password = os.Getenv("MYSQL_PASSWORD")
	}

	mssql := &C.Database.Mssql
	if mssql.Host == "" {
		mssql.Host = envOr("MSSQL_HOST", "localhost")
	}
	if mssql.Port == "" {
		mssql.Port = envOr("MSSQL_PORT", "1433")
	}
	if mssql.Name == "" {
		mssql.Name = os.Getenv("MSSQL_DB_NAME")
	}
	if mssql.User == "" {
		mssql.User = os.Getenv("MSSQL_USER")
	}
	if mssql.Password == "" {
		mssql.Password = os.Getenv("MSSQL_PASSWORD")
	}

	redis := &C.RedisClient
	if redis.Host == "" {
		redis.Host = envOr("REDIS_HOST", "localhost")
	}
	if redis.Port == "" {
		redis.Port = envOr("REDIS_PORT", "6379")
	}
	if redis.Username == "" {
		redis.Username = os.Getenv("REDIS_USERNAME")
	}
	if redis.Password == "" {
		redis.Password = os.Getenv("REDIS_PASSWORD")
	}
}

func initApp(C *Config) {
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 10001
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 10001
	}
	if v := os.Getenv("TLS_ENABLED"); v != "" {
		switch v {
		case "1", "true", "TRUE", "True":
			C.App.TLSEnabled = true
		case "0", "false", "FALSE", "False":
			C.App.TLSEnabled = false
		}
	}
	if C.App.TLSCertFile == "" {
		C.App.TLSCertFile = os.Getenv("TLS_CERT_FILE")
	}
	if C.App.TLSKeyFile == "" {
		C.App.TLSKeyFile = os.Getenv("TLS_KEY_FILE")
	}

	if C.Ivs.Region == "" {
		C.Ivs.Region = envOr("AWS_REGION", "us-west-2")
	}
	if C.Ivs.AccessKeyID == "" {
		C.Ivs.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	}
	if C.Ivs.SecretAccessKey == "" {
		C.Ivs.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
	}

	if C.Events.Sink == "" {
		C.Events.Sink = os.Getenv("EVENT_SINK")
	}
	if C.Pubsub.ProjectID == "" {
		C.Pubsub.ProjectID = os.Getenv("PUBSUB_PROJECT_ID")
	}
	if C.Pubsub.Topic == "" {
		C.Pubsub.Topic = envOr("PUBSUB_TOPIC", "stream-events")
	}
	if C.ServiceBus.Namespace == "" {
		C.ServiceBus.Namespace = os.Getenv("SERVICEBUS_NAMESPACE")
	}
	if C.ServiceBus.Queue == "" {
		C.ServiceBus.Queue = envOr("SERVICEBUS_QUEUE", "stream-events")
	}

	if C.App.SecretKey == "" {
		logger.GetLogger().Warn("App.SecretKey not set; JWT authentication will fail. Provide SECRET_KEY via environment.")
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
