package app

import (
	"context"

	"github.com/MaxRadzey/aliaser/internal/config"
	"github.com/MaxRadzey/aliaser/internal/generator"
	httphandlers "github.com/MaxRadzey/aliaser/internal/handler"
	"github.com/MaxRadzey/aliaser/internal/logger"
	"github.com/MaxRadzey/aliaser/internal/router"
	"github.com/MaxRadzey/aliaser/internal/service"
	dbstorage "github.com/MaxRadzey/aliaser/internal/storage"
)

// Run собирает зависимости и запускает http сервер.
func Run(appConfig *config.Config) error {
	if err := logger.Initialize(appConfig.LogLevel); err != nil {
		return err
	}

	ctx := context.Background()

	storageResult, err := dbstorage.InitializeStorage(ctx, appConfig)
	if err != nil {
		return err
	}
	if storageResult.DB != nil {
		defer storageResult.DB.Close()
	}

	aliasService := service.NewService(storageResult.Storage, generator.New(nil), appConfig.StoreTimeout)
	handler := &httphandlers.Handler{Service: aliasService}

	r := router.SetupRouter(handler)

	return r.Run(appConfig.Address)
}
