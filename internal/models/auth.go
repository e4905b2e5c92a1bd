package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims are the claims of tokens issued by the request platform
type JWTClaims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

// User is the authenticated platform user of a request
type User struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}
