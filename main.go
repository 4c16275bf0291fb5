package main

import (
	"github.com/adityamakwana707/globetrotter-sub000/core/logger"
	"github.com/adityamakwana707/globetrotter-sub000/core/server"
)

// @title GlobeTrotter API
// @version 1.0
// @description API backend for the GlobeTrotter travel planner

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
