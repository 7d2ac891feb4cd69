package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/stratafin/condo_service"
	"github.com/stratafin/condo_service/authorization"
	"github.com/stratafin/condo_service/common"
)

func NewAuthorization(cfg *common.AppConfig) *authorization.Authorization {
	return authorization.New(cfg.JwtSecret)
}

type App struct {
	Run func() error
}

func NewApp(
	server *condo_service.Server,
	log *zap.Logger,
) *App {
	return &App{
		Run: func() error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errc := make(chan error, 1)
			go func() {
				errc <- server.Run()
			}()

			select {
			case err := <-errc:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func main() {
	app, err := InitializeApp()
	if err != nil {
		panic(err)
	}

	err = app.Run()
	if err != nil {
		panic(err)
	}
}
