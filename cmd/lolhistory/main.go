package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"

	fxmodules "github.com/gbillga/lol-history-parser/internal/fx"
	"github.com/gbillga/lol-history-parser/internal/service"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	var exitCode int
	app := fx.New(
		fxmodules.Module,
		fx.Invoke(func(lc fx.Lifecycle, shutdowner fx.Shutdowner, pipeline *service.Pipeline, db *sql.DB, logger zerolog.Logger) {
			runPipeline(lc, shutdowner, pipeline, db, logger, &exitCode)
		}),
	)
	app.Run()
	os.Exit(exitCode)
}

func runPipeline(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	pipeline *service.Pipeline,
	db *sql.DB,
	logger zerolog.Logger,
	exitCode *int,
) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := pipeline.Run(ctx); err != nil {
					logger.Error().Err(err).Msg("run failed")
					*exitCode = 1
				}
				if err := shutdowner.Shutdown(); err != nil {
					logger.Error().Err(err).Msg("shutdown failed")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}
