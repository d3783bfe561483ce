package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/mazekit/mazekit-api/api"
	api_i "github.com/mazekit/mazekit-api/api/i"
	mazeapi "github.com/mazekit/mazekit-api/api/maze"
	"github.com/mazekit/mazekit-api/config"
	"github.com/mazekit/mazekit-api/service"
	"github.com/mazekit/mazekit-api/service/i"
	"github.com/sirupsen/logrus"
)

// Global variables for dependencies
var (
	appLogger      *logrus.Logger
	sessionManager i.SessionManager
	mazeController api_i.Controller
	router         *api.Router
)

func initLogger() {
	appLogger = logrus.New()
	level, err := logrus.ParseLevel(config.Envs.LogLevel)
	if err != nil {
		appLogger.Warnf("Unknown log level %q, using info", config.Envs.LogLevel)
		level = logrus.InfoLevel
	}
	appLogger.SetLevel(level)
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewManager(appLogger)
	if err != nil {
		appLogger.Errorf("Creating session manager: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initMazeController() {
	defaults := mazeapi.Defaults{
		Width:             config.Envs.MazeWidth,
		Height:            config.Envs.MazeHeight,
		MultipleSolutions: config.Envs.MultipleSolutions,
		Seed:              config.Envs.RandomSeed,
	}

	var err error
	mazeController, err = mazeapi.NewController(sessionManager, defaults, appLogger)
	if err != nil {
		appLogger.Errorf("Creating maze controller: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{mazeController},
	})
	appLogger.Info("Router initialized")
}

func main() {
	initLogger()
	initSessionManager()
	initMazeController()
	initRouter()

	if err := router.Run(); err != nil {
		appLogger.Errorf("Starting server: %v", err)
		os.Exit(1)
	}
}
