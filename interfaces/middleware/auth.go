package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"stream-engage/domain/dto"
	"stream-engage/domain/model"
)

// Auth validates the Bearer token and stores the caller's user id in the
// request context under "user_id".
func Auth() gin.HandlerFunc {
	var res dto.Res
	res.ResponseCode = "401"
	res.ResponseMessage = "Unauthorized"

	return func(ctx *gin.Context) {
		authorization := ctx.Request.Header.Get("Authorization")
		secretKey := os.Getenv("SECRET_KEY")
		if authorization == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		auth := strings.Split(authorization, "Bearer ")
		if len(auth) != 2 {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}
		userClaims, token, err := getClaim(auth, secretKey)

		if token == nil || !token.Valid {
			abort(err, &res)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, res)
			return
		}

		ctx.Set("user_id", userClaims.Issuer)
		ctx.Next()
	}
}

func abort(err error, res *dto.Res) {
	var ve *jwt.ValidationError
	if errors.As(err, &ve) {
		if ve.Errors&jwt.ValidationErrorMalformed != 0 {
			res.ResponseMessage = "That's not even a token"
		} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
			res.ResponseMessage = "Token is expired or not active yet"
		} else {
			res.ResponseMessage = fmt.Sprintf("Couldn't handle this token:%v", err)
		}
	}
}

func getClaim(auth []string, secretKey string) (model.UserClaims, *jwt.Token, error) {
	var userClaims model.UserClaims
	token, err := jwt.ParseWithClaims(
		auth[1],
		&userClaims,
		func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		},
	)
	return userClaims, token, err
}
