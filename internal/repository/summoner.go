package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gbillga/lol-history-parser/internal/constants"
	"github.com/gbillga/lol-history-parser/internal/db"
	"github.com/gbillga/lol-history-parser/internal/domain"
	"github.com/rs/zerolog"
)

type SummonerRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewSummonerRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *SummonerRepository {
	return &SummonerRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// GetByName returns nil without error when the summoner is unknown.
func (r *SummonerRepository) GetByName(ctx context.Context, gameName, tagLine string) (*domain.Summoner, error) {
	s, err := r.queries.GetSummonerByNameTag(ctx, db.GetSummonerByNameTagParams{
		GameName: gameName,
		TagLine:  tagLine,
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return toDomainSummoner(s), nil
}

func (r *SummonerRepository) Get(ctx context.Context, puuid string) (*domain.Summoner, error) {
	s, err := r.queries.GetSummonerByPuuid(ctx, puuid)
	if err != nil {
		return nil, err
	}
	return toDomainSummoner(s), nil
}

func (r *SummonerRepository) List(ctx context.Context) ([]domain.Summoner, error) {
	rows, err := r.queries.ListSummoners(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]domain.Summoner, len(rows))
	for i, s := range rows {
		result[i] = *toDomainSummoner(s)
	}
	return result, nil
}

func (r *SummonerRepository) Upsert(ctx context.Context, s *domain.Summoner) error {
	return r.queries.UpsertSummoner(ctx, db.UpsertSummonerParams{
		Puuid:       s.Puuid,
		GameName:    s.GameName,
		TagLine:     s.TagLine,
		Region:      s.Region,
		LastFetchAt: s.LastFetchAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	})
}

func (r *SummonerRepository) SetLastFetchAt(ctx context.Context, puuid string, lastFetchAt time.Time) error {
	r.logger.Debug().
		Str("puuid", puuid).
		Time("last_fetch_at", lastFetchAt).
		Msg("setting last fetch at")

	return r.queries.UpdateSummonerLastFetchAt(ctx, db.UpdateSummonerLastFetchAtParams{
		LastFetchAt: lastFetchAt,
		UpdatedAt:   time.Now(),
		Puuid:       puuid,
	})
}

// KnownMatchIDs returns the set of match IDs already recorded for a summoner,
// fetched or pending.
func (r *SummonerRepository) KnownMatchIDs(ctx context.Context, puuid string) (map[string]struct{}, error) {
	ids, err := r.queries.ListSummonerMatchIDs(ctx, puuid)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		known[id] = struct{}{}
	}
	return known, nil
}

// InsertMatchIDs records newly discovered match IDs as pending, in one
// transaction. Already-known IDs are left untouched.
func (r *SummonerRepository) InsertMatchIDs(ctx context.Context, links []domain.SummonerMatch) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	for i := 0; i < len(links); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(links) {
			end = len(links)
		}

		for _, link := range links[i:end] {
			err := qtx.InsertSummonerMatch(ctx, db.InsertSummonerMatchParams{
				Puuid:   link.Puuid,
				MatchID: link.MatchID,
				QueueID: int64(link.QueueID),
				Fetched: link.Fetched,
			})
			if err != nil {
				return fmt.Errorf("failed to insert match id %s: %w", link.MatchID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *SummonerRepository) PendingMatches(ctx context.Context, puuid string) ([]domain.SummonerMatch, error) {
	rows, err := r.queries.ListPendingSummonerMatches(ctx, puuid)
	if err != nil {
		return nil, err
	}
	result := make([]domain.SummonerMatch, len(rows))
	for i, sm := range rows {
		result[i] = domain.SummonerMatch{
			Puuid:   sm.Puuid,
			MatchID: sm.MatchID,
			QueueID: int(sm.QueueID),
			Fetched: sm.Fetched,
		}
	}
	return result, nil
}

func toDomainSummoner(s db.Summoner) *domain.Summoner {
	return &domain.Summoner{
		Puuid:       s.Puuid,
		GameName:    s.GameName,
		TagLine:     s.TagLine,
		Region:      s.Region,
		LastFetchAt: s.LastFetchAt,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
