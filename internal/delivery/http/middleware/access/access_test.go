package http_access_middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/humanbelnik/roomsync/core/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestReadOnlyBadGatewayMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testCases := []struct {
		mode       string
		method     string
		expectCode int
	}{
		{config.ModeReadWrite, http.MethodPut, http.StatusOK},
		{config.ModeReadOnly, http.MethodGet, http.StatusOK},
		{config.ModeReadOnly, http.MethodHead, http.StatusOK},
		{config.ModeReadOnly, http.MethodPut, http.StatusBadGateway},
		{config.ModeReadOnly, http.MethodPost, http.StatusBadGateway},
	}

	for _, tc := range testCases {
		t.Run(tc.mode+" "+tc.method, func(t *testing.T) {
			r := gin.New()
			r.Use(ReadOnlyBadGatewayMiddleware(tc.mode))
			r.Handle(tc.method, "/x", func(c *gin.Context) { c.Status(http.StatusOK) })

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, "/x", nil))

			assert.Equal(t, tc.expectCode, rec.Code)
		})
	}
}
