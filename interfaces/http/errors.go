package http

import (
	"net/http"

	"stream-engage/domain/model"

	"github.com/gin-gonic/gin"
)

// writeError maps the domain error taxonomy onto HTTP status codes.
func writeError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case model.IsValidation(err):
		status = http.StatusBadRequest
	case model.IsNotFound(err):
		status = http.StatusNotFound
	case model.IsConflict(err):
		status = http.StatusConflict
	case model.IsProvisioning(err):
		status = http.StatusBadGateway
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}
