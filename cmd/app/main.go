package main

import (
	_ "github.com/humanbelnik/roomsync/core/docs"
	"github.com/humanbelnik/roomsync/core/internal/app"
	"github.com/humanbelnik/roomsync/core/internal/config"
)

// @title roomsync core API
// @version 1.0
// @description Room membership service.
// @BasePath /api
// @securityDefinitions.apikey AuthToken
// @in header
// @name x-auth-token
func main() {
	app.Go(config.Load())
}
