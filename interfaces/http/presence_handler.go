package http

import (
	"net/http"

	"stream-engage/domain/dto"
	"stream-engage/domain/model"
	"stream-engage/usecase"

	"github.com/gin-gonic/gin"
)

type IPresenceHandler interface {
	Join(ctx *gin.Context)
	Leave(ctx *gin.Context)
	GetViewers(ctx *gin.Context)
}

type PresenceHandler struct {
	presenceUsecase usecase.IPresenceUsecase
}

func NewPresenceHandler(presenceUsecase usecase.IPresenceUsecase) IPresenceHandler {
	return &PresenceHandler{presenceUsecase: presenceUsecase}
}

func (h *PresenceHandler) Join(ctx *gin.Context) {
	var req dto.JoinRequest
	// Body is optional; role defaults to viewer.
	_ = ctx.ShouldBindJSON(&req)

	err := h.presenceUsecase.Join(ctx.Request.Context(), ctx.Param("streamId"), ctx.GetString("user_id"), model.ParticipantRole(req.Role))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"joined": true})
}

func (h *PresenceHandler) Leave(ctx *gin.Context) {
	err := h.presenceUsecase.Leave(ctx.Request.Context(), ctx.Param("streamId"), ctx.GetString("user_id"))
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"left": true})
}

func (h *PresenceHandler) GetViewers(ctx *gin.Context) {
	streamID := ctx.Param("streamId")
	viewers, err := h.presenceUsecase.ListActive(ctx.Request.Context(), streamID)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"viewers": viewers, "count": len(viewers)})
}
