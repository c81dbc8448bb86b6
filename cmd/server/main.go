package main

import (
	"github.com/repradar/backend/internal/server"
	"github.com/repradar/backend/internal/util"
	"github.com/repradar/backend/pkg/logger"
	"github.com/repradar/backend/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}
