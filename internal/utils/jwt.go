package utils

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"marketplace/internal/config"
	"marketplace/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrUnexpectedTokenType = errors.New("unexpected token type")

// TokenPair is the credential pair returned on login.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// TokenIssuer signs and verifies HS256 bearer tokens.
type TokenIssuer struct {
	secret     []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewTokenIssuer(cfg config.JWTConfig) *TokenIssuer {
	return &TokenIssuer{
		secret:     []byte(cfg.Secret),
		issuer:     cfg.Issuer,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		now:        time.Now,
	}
}

// IssuePair generates an access token and a refresh token for the account.
func (i *TokenIssuer) IssuePair(accountID uint) (TokenPair, error) {
	access, err := i.sign(accountID, models.TokenAccess, i.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := i.sign(accountID, models.TokenRefresh, i.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Refresh: refresh, Access: access}, nil
}

// IssueAccess generates a new access token only.
func (i *TokenIssuer) IssueAccess(accountID uint) (string, error) {
	return i.sign(accountID, models.TokenAccess, i.accessTTL)
}

func (i *TokenIssuer) sign(accountID uint, typ models.TokenType, ttl time.Duration) (string, error) {
	if len(i.secret) == 0 {
		return "", errors.New("JWT secret not configured")
	}

	now := i.now()
	claims := models.UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    i.issuer,
			Subject:   strconv.FormatUint(uint64(accountID), 10),
		},
		UserID:    accountID,
		TokenType: typ,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Parse validates signature, expiry and issuer, then checks the token type.
func (i *TokenIssuer) Parse(tokenStr string, want models.TokenType) (*models.UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &models.UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithIssuer(i.issuer), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*models.UserClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.TokenType != want {
		return nil, ErrUnexpectedTokenType
	}
	return claims, nil
}

// Remaining is how long the token stays valid, zero when already expired.
func (i *TokenIssuer) Remaining(claims *models.UserClaims) time.Duration {
	if claims.ExpiresAt == nil {
		return 0
	}
	d := claims.ExpiresAt.Time.Sub(i.now())
	if d < 0 {
		return 0
	}
	return d
}
