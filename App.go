package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const ExitCodeMainError = 1

func RunApp(config *Config, logger *zap.SugaredLogger) error {
	gin.SetMode(gin.ReleaseMode)

	serviceContainer, err := BuildServiceContainer(config, logger)

	if err == nil {
		serviceContainer.WebhookDispatcher.Start()
		defer serviceContainer.WebhookDispatcher.Close()
		defer serviceContainer.EventHub.Close()
		defer serviceContainer.Database.Close()

		logger.Infow("listening", "addr", config.Listen, "database", config.DatabasePath)
		err = http.ListenAndServe(config.Listen, serviceContainer.Router)
	}

	return err
}

// NewLogger builds the process logger, JSON encoded in production
func NewLogger(json bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if json {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func HandleExitError(errStream io.Writer, err error) int {
	if err != nil {
		_, _ = fmt.Fprintln(errStream, err)
		return ExitCodeMainError
	}

	return 0
}
