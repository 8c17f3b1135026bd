package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/servicedesk/internal/infrastructure/auth"
	"github.com/orris-inc/servicedesk/internal/shared/constants"
	"github.com/orris-inc/servicedesk/internal/shared/errors"
	"github.com/orris-inc/servicedesk/internal/shared/logger"
	"github.com/orris-inc/servicedesk/internal/shared/utils"
)

// AccessTokenVerifier validates access tokens.
type AccessTokenVerifier interface {
	ParseAccess(token string) (*auth.Claims, error)
}

type AuthMiddleware struct {
	verifier AccessTokenVerifier
	logger   logger.Interface
}

func NewAuthMiddleware(verifier AccessTokenVerifier, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		logger:   logger,
	}
}

// RequireAuth accepts a bearer token in the Authorization header.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return m.authenticate(false)
}

// RequireAuthOrQueryToken also accepts ?token=, for WebSocket upgrades where
// browsers cannot set headers.
func (m *AuthMiddleware) RequireAuthOrQueryToken() gin.HandlerFunc {
	return m.authenticate(true)
}

func (m *AuthMiddleware) authenticate(allowQuery bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := ExtractToken(c, allowQuery)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		claims, err := m.verifier.ParseAccess(token)
		if err != nil {
			m.logger.Debugw("failed to verify token", "error", err, "path", c.Request.URL.Path)
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		actor, err := claims.Actor()
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewTokenInvalidError())
			c.Abort()
			return
		}

		utils.SetActor(c, actor)
		c.Set(constants.ContextKeyEmail, claims.Email)
		c.Set(constants.ContextKeyClaims, claims)
		c.Next()
	}
}

// ExtractToken reads the bearer token from the Authorization header and,
// when allowed, from the token query parameter.
func ExtractToken(c *gin.Context, allowQuery bool) (string, error) {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header != "" {
		if !strings.HasPrefix(header, constants.BearerPrefix) {
			return "", errors.NewUnauthorizedError("invalid authorization header format")
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, constants.BearerPrefix))
		if token == "" {
			return "", errors.NewUnauthorizedError("missing authorization token")
		}
		return token, nil
	}

	if allowQuery {
		if token := strings.TrimSpace(c.Query("token")); token != "" {
			return token, nil
		}
	}
	return "", errors.NewUnauthorizedError("missing authorization token")
}
