package http_auth_middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/roomsync/core/internal/delivery/http/common"
	service_jwt_auth "github.com/humanbelnik/roomsync/core/internal/service/auth/jwt"
)

const (
	TokenHeader  = "x-auth-token"
	bearerPrefix = "Bearer "
)

// IdentityGate turns a presented token into a trusted user id.
type IdentityGate interface {
	Verify(token string) (uuid.UUID, error)
}

type Middleware struct {
	gate   IdentityGate
	logger *slog.Logger
}

func New(
	gate IdentityGate,
) *Middleware {
	return &Middleware{
		gate:   gate,
		logger: slog.Default(),
	}
}

func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := extractToken(ctx)
		if t == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no token, authorization denied",
			})
			return
		}

		actorID, err := m.gate.Verify(t)
		if err != nil {
			if errors.Is(err, service_jwt_auth.ErrInvalidToken) {
				m.logger.Warn("invalid token", slog.String("error", err.Error()))
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, http_common.ErrorResponse{
					Message: "token is not valid",
				})
				return
			}
			m.logger.Error("token verification failed", slog.String("error", err.Error()))
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			return
		}

		ctx.Set(http_common.ActorIDKey, actorID)
		ctx.Set(http_common.TokenKey, t)
		ctx.Next()
	}
}

func extractToken(ctx *gin.Context) string {
	if t := strings.TrimSpace(ctx.GetHeader(TokenHeader)); t != "" {
		return t
	}
	authorization := ctx.GetHeader("Authorization")
	if strings.HasPrefix(authorization, bearerPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(authorization, bearerPrefix))
	}
	return ""
}
