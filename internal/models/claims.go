package models

import "github.com/golang-jwt/jwt/v5"

// TokenType distinguishes access from refresh credentials.
type TokenType string

const (
	TokenAccess  TokenType = "access"
	TokenRefresh TokenType = "refresh"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID    uint      `json:"user_id"`
	TokenType TokenType `json:"token_type"`
}
