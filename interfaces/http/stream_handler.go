package http

import (
	"context"
	"net/http"

	"stream-engage/domain/dto"
	"stream-engage/infrastructure/logger"
	"stream-engage/usecase"

	"github.com/gin-gonic/gin"
)

type IStreamHandler interface {
	CreateStream(ctx *gin.Context)
	GetStream(ctx *gin.Context)
	UpdateStream(ctx *gin.Context)
	SetTrailer(ctx *gin.Context)
	SetThumbnail(ctx *gin.Context)
	AddAnnouncement(ctx *gin.Context)
	AddCollaborator(ctx *gin.Context)
	ListCollaborators(ctx *gin.Context)
	CheckAccess(ctx *gin.Context)
	SetGoalProgress(ctx *gin.Context)
	GetActiveStreams(ctx *gin.Context)
	ListProviderChannels(ctx *gin.Context)
}

type StreamHandler struct {
	streamUsecase usecase.IStreamUsecase
	goalUsecase   usecase.IGoalUsecase
}

func NewStreamHandler(streamUsecase usecase.IStreamUsecase, goalUsecase usecase.IGoalUsecase) IStreamHandler {
	return &StreamHandler{streamUsecase: streamUsecase, goalUsecase: goalUsecase}
}

func (h *StreamHandler) CreateStream(ctx *gin.Context) {
	var req dto.CreateStreamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.CreatorUserID == "" {
		req.CreatorUserID = ctx.GetString("user_id")
	}

	stream, channel, err := h.streamUsecase.CreateStream(ctx.Request.Context(), req)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("create stream failed")
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CreateStreamResponse{
		Stream:         stream,
		IngestEndpoint: channel.IngestEndpoint,
		PlaybackURL:    channel.PlaybackURL,
		StreamKey:      stream.StreamKey,
	})
}

func (h *StreamHandler) GetStream(ctx *gin.Context) {
	stream, err := h.streamUsecase.GetStream(ctx.Request.Context(), ctx.Param("streamId"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stream)
}

func (h *StreamHandler) UpdateStream(ctx *gin.Context) {
	var req dto.UpdateStreamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	stream, err := h.streamUsecase.UpdateStream(ctx.Request.Context(), ctx.Param("streamId"), req)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stream)
}

func (h *StreamHandler) SetTrailer(ctx *gin.Context) {
	h.setMediaURL(ctx, h.streamUsecase.SetTrailer)
}

func (h *StreamHandler) SetThumbnail(ctx *gin.Context) {
	h.setMediaURL(ctx, h.streamUsecase.SetThumbnail)
}

func (h *StreamHandler) setMediaURL(ctx *gin.Context, set func(ctx context.Context, streamID, url string) error) {
	var req dto.MediaURLRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := set(ctx.Request.Context(), ctx.Param("streamId"), req.URL); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *StreamHandler) AddAnnouncement(ctx *gin.Context) {
	var req dto.AnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.streamUsecase.AddAnnouncement(ctx.Request.Context(), ctx.Param("streamId"), req.Title, req.Body); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"added": true})
}

func (h *StreamHandler) AddCollaborator(ctx *gin.Context) {
	var req dto.CollaboratorRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.streamUsecase.AddCollaborator(ctx.Request.Context(), ctx.Param("streamId"), req.UserID); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"added": true})
}

func (h *StreamHandler) ListCollaborators(ctx *gin.Context) {
	collaborators, err := h.streamUsecase.ListCollaborators(ctx.Request.Context(), ctx.Param("streamId"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"collaborators": collaborators})
}

func (h *StreamHandler) CheckAccess(ctx *gin.Context) {
	userID := ctx.GetString("user_id")
	streamID := ctx.Param("streamId")
	granted, err := h.streamUsecase.ValidateUserAccess(ctx.Request.Context(), streamID, userID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	sessionType, err := h.streamUsecase.GetSessionType(ctx.Request.Context(), streamID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"access": granted, "access_type": sessionType})
}

func (h *StreamHandler) SetGoalProgress(ctx *gin.Context) {
	var req dto.GoalProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	goal, err := h.goalUsecase.SetGoalProgress(ctx.Request.Context(), ctx.Param("streamId"), ctx.Param("goalId"), req.Amount)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, goal)
}

func (h *StreamHandler) GetActiveStreams(ctx *gin.Context) {
	streams, err := h.streamUsecase.GetActiveStreams(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"streams": streams})
}

func (h *StreamHandler) ListProviderChannels(ctx *gin.Context) {
	channels, err := h.streamUsecase.ListProviderChannels(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"channels": channels, "count": len(channels)})
}
