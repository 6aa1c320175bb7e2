package service

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gbillga/lol-history-parser/internal/accounts"
	"github.com/gbillga/lol-history-parser/internal/config"
	"github.com/gbillga/lol-history-parser/internal/domain"
	"github.com/rs/zerolog"
)

type Syncer interface {
	Pull(ctx context.Context) error
	Push(ctx context.Context) error
}

type CollectorRunner interface {
	Run(ctx context.Context, entries []accounts.Entry) []UserResult
}

type AggregateRebuilder interface {
	Rebuild(ctx context.Context) (int, error)
}

type GameLister interface {
	ListGames(ctx context.Context) ([]domain.Game, error)
}

type RunRecorder interface {
	Record(ctx context.Context, run *domain.Run) error
}

type Exporter interface {
	WriteCSV(path string, games []domain.Game) error
	WriteXLSX(path string, games []domain.Game) error
}

// Pipeline runs one full pass: sync down, collect, aggregate, export, record
// the run, sync up.
type Pipeline struct {
	cfg        *config.Config
	syncer     Syncer
	collector  CollectorRunner
	aggregator AggregateRebuilder
	games      GameLister
	runs       RunRecorder
	exporter   Exporter
	logger     zerolog.Logger
}

func NewPipeline(
	cfg *config.Config,
	syncer Syncer,
	collector CollectorRunner,
	aggregator AggregateRebuilder,
	games GameLister,
	runs RunRecorder,
	exporter Exporter,
	logger zerolog.Logger,
) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		syncer:     syncer,
		collector:  collector,
		aggregator: aggregator,
		games:      games,
		runs:       runs,
		exporter:   exporter,
		logger:     logger,
	}
}

func (p *Pipeline) Run(ctx context.Context) error {
	// Collection assumes local state reflects the remote, so a failed pull
	// aborts the run.
	if err := p.syncer.Pull(ctx); err != nil {
		return err
	}

	entries, err := accounts.Load(p.cfg.AccountListPath)
	if err != nil {
		return err
	}
	p.logger.Info().Int("accounts", len(entries)).Msg("account list loaded")

	started := time.Now()
	results := p.collector.Run(ctx, entries)

	run := &domain.Run{StartedAt: started}
	for _, res := range results {
		run.UsersProcessed++
		run.MatchesFetched += res.Fetched
		run.FetchErrors += res.FetchErrors
		if res.Err != nil {
			run.FetchErrors++
		}
	}

	rows, err := p.aggregator.Rebuild(ctx)
	if err != nil {
		return err
	}

	games, err := p.games.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("failed to read games for export: %w", err)
	}

	csvPath := filepath.Join(p.cfg.DataDir, "trd", "aggregate_data.csv")
	if err := p.exporter.WriteCSV(csvPath, games); err != nil {
		return err
	}
	if p.cfg.ExportXLSX {
		xlsxPath := filepath.Join(p.cfg.DataDir, "trd", "aggregate_data.xlsx")
		if err := p.exporter.WriteXLSX(xlsxPath, games); err != nil {
			return err
		}
	}

	run.FinishedAt = time.Now()
	if err := p.runs.Record(ctx, run); err != nil {
		p.logger.Warn().Err(err).Msg("failed to record run")
	}

	p.logger.Info().
		Int("users_processed", run.UsersProcessed).
		Int("matches_fetched", run.MatchesFetched).
		Int("fetch_errors", run.FetchErrors).
		Int("aggregate_rows", rows).
		Dur("duration", run.FinishedAt.Sub(run.StartedAt)).
		Msg("run completed")

	// Data is intact locally even when the push fails; the nonzero exit
	// lets the operator retry the sync.
	if err := p.syncer.Push(ctx); err != nil {
		return err
	}
	return nil
}
