// Package middleware provides HTTP middleware components for the application.
// It includes bearer authentication, caller identity resolution and rate
// limiting for the fiber web framework.
package middleware

import (
	"strings"

	apperr "marketplace/internal/errors"
	"marketplace/internal/logger"
	"marketplace/internal/services/auth"
	"marketplace/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthMiddleware validates bearer access tokens and resolves the caller.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler rejects the request with 401 unless it carries a valid,
// unrevoked access token for an existing account. On success the claims
// and the resolved identity are stored in the request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
	if !ok {
		return utils.Error(c, apperr.ErrUnauthenticated)
	}

	ctx := c.UserContext()
	claims, err := m.authService.Authenticate(ctx, token)
	if err != nil {
		logger.FromCtx(c).Debug("token rejected", zap.Error(err))
		return utils.Error(c, err)
	}

	identity, err := m.authService.Identify(ctx, claims.UserID)
	if err != nil {
		return utils.Error(c, err)
	}

	c.Locals(utils.LocalsClaims, claims)
	c.Locals(utils.LocalsIdentity, identity)
	return c.Next()
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
