package http_swagger

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const docPath = "/swagger/doc.json"

// Controller serves the swagger UI and the doc.json registered by the docs
// package, which is generated from the handler annotations
// (`swag init -g cmd/app/main.go`).
type Controller struct {
	prefix string
}

func New(apiPrefix string) *Controller {
	return &Controller{prefix: apiPrefix}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL(c.prefix+docPath),
		ginSwagger.DocExpansion("none"),
	))
}
