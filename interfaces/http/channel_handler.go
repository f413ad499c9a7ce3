package http

import (
	"net/http"

	"stream-engage/domain/dto"
	"stream-engage/usecase"

	"github.com/gin-gonic/gin"
)

type IChannelHandler interface {
	GetChannel(ctx *gin.Context)
	UpdateChannel(ctx *gin.Context)
	ListChannelStreams(ctx *gin.Context)
	ValidateChannel(ctx *gin.Context)
	CountChannels(ctx *gin.Context)
}

type ChannelHandler struct {
	streamUsecase usecase.IStreamUsecase
}

func NewChannelHandler(streamUsecase usecase.IStreamUsecase) IChannelHandler {
	return &ChannelHandler{streamUsecase: streamUsecase}
}

func (h *ChannelHandler) GetChannel(ctx *gin.Context) {
	profile, err := h.streamUsecase.GetChannelMeta(ctx.Request.Context(), ctx.Param("channelId"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, profile)
}

func (h *ChannelHandler) UpdateChannel(ctx *gin.Context) {
	var req dto.UpdateChannelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.streamUsecase.UpdateChannel(ctx.Request.Context(), ctx.Param("channelId"), req); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *ChannelHandler) ValidateChannel(ctx *gin.Context) {
	valid, err := h.streamUsecase.ValidateProviderChannel(ctx.Request.Context(), ctx.Param("channelId"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"valid": valid})
}

func (h *ChannelHandler) CountChannels(ctx *gin.Context) {
	count, err := h.streamUsecase.CountProviderChannels(ctx.Request.Context())
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *ChannelHandler) ListChannelStreams(ctx *gin.Context) {
	streams, err := h.streamUsecase.ListChannelStreams(ctx.Request.Context(), ctx.Param("channelId"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"streams": streams})
}
