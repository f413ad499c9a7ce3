package http

import (
	"net/http"
	"strconv"

	"stream-engage/domain/dto"
	"stream-engage/infrastructure/logger"
	"stream-engage/usecase"

	"github.com/gin-gonic/gin"
)

type IEngagementHandler interface {
	RegisterTip(ctx *gin.Context)
	GetLeaderboard(ctx *gin.Context)
	IncrementLike(ctx *gin.Context)
	LogToyAction(ctx *gin.Context)
	GetStats(ctx *gin.Context)
}

type EngagementHandler struct {
	engagementUsecase usecase.IEngagementUsecase
}

func NewEngagementHandler(engagementUsecase usecase.IEngagementUsecase) IEngagementHandler {
	return &EngagementHandler{engagementUsecase: engagementUsecase}
}

func (h *EngagementHandler) RegisterTip(ctx *gin.Context) {
	var req dto.TipRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while unmarshal")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	streamID := ctx.Param("streamId")
	userID := ctx.GetString("user_id")

	tip, err := h.engagementUsecase.RegisterTip(ctx.Request.Context(), streamID, userID, req.Amount, req.Message, req.GiftID)
	if err != nil {
		logger.GetLogger().
			WithField("stream_id", streamID).
			WithField("user_id", userID).
			WithField("error", err.Error()).
			Warn("tip registration failed")
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, tip)
}

func (h *EngagementHandler) GetLeaderboard(ctx *gin.Context) {
	limit := 0
	if v := ctx.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	board, err := h.engagementUsecase.GetLeaderboard(ctx.Request.Context(), ctx.Param("streamId"), limit)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"leaderboard": board})
}

func (h *EngagementHandler) IncrementLike(ctx *gin.Context) {
	if err := h.engagementUsecase.IncrementLike(ctx.Request.Context(), ctx.Param("streamId")); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"liked": true})
}

func (h *EngagementHandler) LogToyAction(ctx *gin.Context) {
	var req dto.ToyActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.engagementUsecase.LogToyAction(ctx.Request.Context(), ctx.Param("streamId"), req.Data); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"logged": true})
}

func (h *EngagementHandler) GetStats(ctx *gin.Context) {
	stats, err := h.engagementUsecase.GetStats(ctx.Request.Context(), ctx.Param("streamId"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, stats)
}
