package http_swagger_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	_ "github.com/humanbelnik/roomsync/core/docs"
	http_swagger "github.com/humanbelnik/roomsync/core/internal/delivery/http/swagger"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiPrefix = "/api"

type SwaggerHTTPSuite struct {
	suite.Suite
}

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	http_swagger.New(apiPrefix).RegisterRoutes(engine.Group(apiPrefix))
	return engine
}

func get(router http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, apiPrefix+path, nil))
	return rec
}

func (s *SwaggerHTTPSuite) TestDoc(t provider.T) {
	t.Parallel()

	t.Run("Should serve the generated document", func(t provider.T) {
		rec := get(newRouter(), "/swagger/doc.json")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var doc struct {
			BasePath string                     `json:"basePath"`
			Paths    map[string]json.RawMessage `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, apiPrefix, doc.BasePath)
		for _, path := range []string{"/rooms/create", "/rooms/join", "/rooms/leave", "/rooms/host", "/users/login"} {
			assert.Contains(t, doc.Paths, path)
		}
	})

	t.Run("Should point the UI at the prefixed document", func(t provider.T) {
		rec := get(newRouter(), "/swagger/index.html")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), apiPrefix+"/swagger/doc.json")
	})
}

func TestSwaggerHTTPSuite(t *testing.T) {
	suite.RunSuite(t, new(SwaggerHTTPSuite))
}
