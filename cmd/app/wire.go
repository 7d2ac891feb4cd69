//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/stratafin/condo_service"
	"github.com/stratafin/condo_service/common"
)

func InitializeApp() (*App, error) {
	wire.Build(
		common.NewAppConfig,
		common.NewLogger,
		common.NewDatabase,
		common.NewMetrics,
		NewAuthorization,
		condo_service.NewRegisterHandler,
		condo_service.NewServer,
		NewApp,
	)

	return &App{}, nil
}
