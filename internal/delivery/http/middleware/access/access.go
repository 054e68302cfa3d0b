package http_access_middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/roomsync/core/internal/config"
	http_common "github.com/humanbelnik/roomsync/core/internal/delivery/http/common"
)

// ReadOnlyBadGatewayMiddleware rejects every non-GET request when the
// instance runs in read-only mode.
func ReadOnlyBadGatewayMiddleware(mode string) gin.HandlerFunc {
	logger := slog.Default()
	return func(c *gin.Context) {
		if mode != config.ModeReadOnly {
			c.Next()
			return
		}

		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}

		logger.Warn("write on read-only instance",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path))
		c.AbortWithStatusJSON(http.StatusBadGateway, http_common.ErrorResponse{
			Message: "write operations not allowed on read-only instance",
		})
	}
}
