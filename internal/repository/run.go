package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gbillga/lol-history-parser/internal/db"
	"github.com/gbillga/lol-history-parser/internal/domain"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type RunRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewRunRepository(queries *db.Queries, logger zerolog.Logger) *RunRepository {
	return &RunRepository{
		queries: queries,
		logger:  logger,
	}
}

func (r *RunRepository) Record(ctx context.Context, run *domain.Run) error {
	id := run.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		run.ID = id
	}

	return r.queries.InsertRun(ctx, db.InsertRunParams{
		ID:             id,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		UsersProcessed: int64(run.UsersProcessed),
		MatchesFetched: int64(run.MatchesFetched),
		FetchErrors:    int64(run.FetchErrors),
	})
}

// Latest returns nil without error when no run has been recorded yet.
func (r *RunRepository) Latest(ctx context.Context) (*domain.Run, error) {
	run, err := r.queries.GetLatestRun(ctx)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.Run{
		ID:             run.ID,
		StartedAt:      run.StartedAt,
		FinishedAt:     run.FinishedAt,
		UsersProcessed: int(run.UsersProcessed),
		MatchesFetched: int(run.MatchesFetched),
		FetchErrors:    int(run.FetchErrors),
	}, nil
}
