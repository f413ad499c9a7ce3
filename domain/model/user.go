package model

import "github.com/golang-jwt/jwt"

// UserClaims is the JWT payload the front-end sends on every /api call.
type UserClaims struct {
	UserName string `json:"user_name"`
	jwt.StandardClaims
}
