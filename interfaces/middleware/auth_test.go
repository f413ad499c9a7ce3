package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"stream-engage/infrastructure/utils"
	"stream-engage/interfaces/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	api := router.Group("api")
	api.Use(middleware.Auth())
	api.GET("/whoami", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"user_id": ctx.GetString("user_id")})
	})
	return router
}

func TestAuth_MissingHeader(t *testing.T) {
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_MalformedToken(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	router := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ValidTokenSetsUserID(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	router := authRouter()

	token, err := utils.GenerateToken(map[string]interface{}{
		"iss":       "u1",
		"user_name": "creator-one",
	}, os.Getenv("SECRET_KEY"))
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
}

func TestAuth_WrongSecret(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-secret")
	router := authRouter()

	token, err := utils.GenerateToken(map[string]interface{}{"iss": "u1"}, "other-secret")
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
