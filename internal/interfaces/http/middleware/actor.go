package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/printmarket/backend/internal/domain/shared"
	"github.com/printmarket/backend/internal/infrastructure/auth"
	"github.com/printmarket/backend/internal/interfaces/http/dto"
)

// Actor context keys and header names
const (
	ActorKey        = "actor"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
	ActorIDHeader   = "X-Actor-ID"
	ActorRoleHeader = "X-Actor-Role"
)

// ActorMiddlewareConfig holds configuration for actor resolution
type ActorMiddlewareConfig struct {
	// Verifier validates bearer tokens
	Verifier *auth.TokenVerifier
	// AllowHeaderFallback permits X-Actor-ID/X-Actor-Role headers in place
	// of a token. Development only; never enable in production.
	AllowHeaderFallback bool
	// SkipPaths are paths that don't require an actor
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultActorConfig returns the default actor middleware configuration
func DefaultActorConfig(verifier *auth.TokenVerifier) ActorMiddlewareConfig {
	return ActorMiddlewareConfig{
		Verifier: verifier,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/api/v1/health",
		},
	}
}

// ResolveActor creates middleware that resolves the acting party from the
// bearer token and stores it in the request context
func ResolveActor(verifier *auth.TokenVerifier) gin.HandlerFunc {
	return ResolveActorWithConfig(DefaultActorConfig(verifier))
}

// ResolveActorWithConfig creates actor resolution middleware with custom config
func ResolveActorWithConfig(cfg ActorMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" && cfg.AllowHeaderFallback {
			actor, ok := actorFromHeaders(c)
			if !ok {
				abortUnauthorized(c, "Missing authorization")
				return
			}
			c.Set(ActorKey, actor)
			c.Next()
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		actor, err := cfg.Verifier.ResolveActor(tokenString)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Debug("Token rejected",
					zap.String("path", path),
					zap.Error(err),
				)
			}
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ActorKey, actor)
		c.Next()
	}
}

func actorFromHeaders(c *gin.Context) (shared.Actor, bool) {
	actorID, err := uuid.Parse(c.GetHeader(ActorIDHeader))
	if err != nil {
		return shared.Actor{}, false
	}
	role := shared.ActorRole(c.GetHeader(ActorRoleHeader))
	if !role.IsValid() {
		return shared.Actor{}, false
	}
	return shared.NewActor(actorID, role), true
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized,
		dto.NewErrorResponse(dto.ErrCodeUnauthorized, message, GetRequestID(c)))
}

// GetActor returns the resolved actor for the current request
func GetActor(c *gin.Context) (shared.Actor, bool) {
	v, exists := c.Get(ActorKey)
	if !exists {
		return shared.Actor{}, false
	}
	actor, ok := v.(shared.Actor)
	return actor, ok
}
