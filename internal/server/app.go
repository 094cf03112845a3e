// Package server wires the task service together: it selects the persistence
// mode, builds the services and runs the HTTP API and the gRPC health
// endpoint until the context is cancelled.
package server

import (
	"context"

	"github.com/dmitrijs2005/gophtasks/internal/logging"
	"github.com/dmitrijs2005/gophtasks/internal/server/config"
	"github.com/dmitrijs2005/gophtasks/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophtasks/internal/server/rest"
	"github.com/dmitrijs2005/gophtasks/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/gophtasks/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	store       repomanager.RepositoryManager
	userService *services.UserService
	taskService *services.TaskService
}

// NewApp selects the persistence mode and builds the services. It does not
// fail: an unreachable database degrades to in-memory stores.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) *App {
	store := repomanager.Open(ctx, c, logger)

	return &App{
		config:      c,
		logger:      logger,
		store:       store,
		userService: services.NewUserService(store, c.PasswordCost, logger),
		taskService: services.NewTaskService(store, logger),
	}
}

// Mode reports the persistence mode selected at startup.
func (app *App) Mode() repomanager.Mode {
	return app.store.Mode()
}

// Run serves HTTP and gRPC until ctx is done or either server fails, then
// releases the store.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.store.Close(); err != nil {
			app.logger.Error(ctx, "error closing store", "error", err)
		}
	}()

	app.logger.Info(ctx, "Starting app...", "mode", app.store.Mode())

	handler := rest.NewHandler(app.logger, rest.Deps{
		Users: app.userService,
		Tasks: app.taskService,
		Store: app.store,
	}, app.config.RequestTimeout)

	httpServer := rest.NewServer(app.config.HTTPAddr, handler, app.logger)
	grpcServer := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.store.Mode())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return httpServer.Run(ctx) })
	g.Go(func() error { return grpcServer.Run(ctx) })

	if err := g.Wait(); err != nil {
		app.logger.Error(ctx, "server stopped with error", "error", err)
		return err
	}
	app.logger.Info(ctx, "App stopped")
	return nil
}
