package fx

import (
	"database/sql"

	"github.com/gbillga/lol-history-parser/internal/config"
	"github.com/gbillga/lol-history-parser/internal/database"
	"github.com/gbillga/lol-history-parser/internal/db"
	"github.com/gbillga/lol-history-parser/internal/dvc"
	"github.com/gbillga/lol-history-parser/internal/export"
	"github.com/gbillga/lol-history-parser/internal/logger"
	"github.com/gbillga/lol-history-parser/internal/repository"
	"github.com/gbillga/lol-history-parser/internal/riot"
	"github.com/gbillga/lol-history-parser/internal/service"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func ProvideLogger(cfg *config.Config) zerolog.Logger {
	return logger.FromLevelString(cfg.LogLevel)
}

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideCollector(
	cfg *config.Config,
	client *riot.Client,
	summonerRepo *repository.SummonerRepository,
	matchRepo *repository.MatchRepository,
	lg zerolog.Logger,
) *service.Collector {
	return service.NewCollector(client, summonerRepo, matchRepo, cfg.AutoRefreshUser, lg)
}

func ProvideAggregator(
	summonerRepo *repository.SummonerRepository,
	matchRepo *repository.MatchRepository,
	lg zerolog.Logger,
) *service.Aggregator {
	return service.NewAggregator(summonerRepo, matchRepo, lg)
}

func ProvidePipeline(
	cfg *config.Config,
	syncer *dvc.Syncer,
	collector *service.Collector,
	aggregator *service.Aggregator,
	matchRepo *repository.MatchRepository,
	runRepo *repository.RunRepository,
	exporter *export.Exporter,
	lg zerolog.Logger,
) *service.Pipeline {
	return service.NewPipeline(cfg, syncer, collector, aggregator, matchRepo, runRepo, exporter, lg)
}

var Module = fx.Options(
	config.Module,
	fx.Provide(ProvideLogger),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	// repos
	fx.Provide(repository.NewSummonerRepository),
	fx.Provide(repository.NewMatchRepository),
	fx.Provide(repository.NewRunRepository),
	// api client
	fx.Provide(riot.NewClient),
	// sync + export
	fx.Provide(dvc.NewSyncer),
	fx.Provide(export.NewExporter),
	// svc
	fx.Provide(ProvideCollector),
	fx.Provide(ProvideAggregator),
	fx.Provide(ProvidePipeline),
)
