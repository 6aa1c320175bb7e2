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

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *MatchRepository) Exists(ctx context.Context, matchID string) (bool, error) {
	count, err := r.queries.MatchExists(ctx, matchID)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetRaw returns the stored match body, or nil when the match is unknown.
func (r *MatchRepository) GetRaw(ctx context.Context, matchID string) (*domain.Match, error) {
	m, err := r.queries.GetMatch(ctx, matchID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &domain.Match{
		MatchID:      m.MatchID,
		QueueID:      int(m.QueueID),
		GameCreation: time.UnixMilli(m.GameCreationMs),
		GameDuration: time.Duration(m.GameDurationS) * time.Second,
		GameVersion:  m.GameVersion,
		MapID:        int(m.MapID),
		RawJSON:      m.RawJson,
		CreatedAt:    m.CreatedAt,
	}, nil
}

// StoreFetched persists one fetched match for a summoner: the match body, the
// summoner's participant line when present, and the fetched flag flip, all in
// one transaction. Re-storing an existing match is a no-op for the match and
// participant rows, so a match fetched for another tracked summoner is only
// linked, never duplicated.
func (r *MatchRepository) StoreFetched(ctx context.Context, puuid string, match *domain.Match, participant *domain.Participant) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	err = qtx.InsertMatch(ctx, db.InsertMatchParams{
		MatchID:        match.MatchID,
		QueueID:        int64(match.QueueID),
		GameCreationMs: match.GameCreation.UnixMilli(),
		GameDurationS:  int64(match.GameDuration / time.Second),
		GameVersion:    match.GameVersion,
		MapID:          int64(match.MapID),
		RawJson:        match.RawJSON,
		CreatedAt:      match.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to insert match %s: %w", match.MatchID, err)
	}

	if participant != nil {
		err = qtx.InsertParticipant(ctx, db.InsertParticipantParams{
			MatchID:                     participant.MatchID,
			Puuid:                       participant.Puuid,
			ChampionName:                participant.ChampionName,
			ChampionID:                  int64(participant.ChampionID),
			TeamID:                      int64(participant.TeamID),
			TeamPosition:                participant.TeamPosition,
			Win:                         participant.Win,
			Kills:                       int64(participant.Kills),
			Deaths:                      int64(participant.Deaths),
			Assists:                     int64(participant.Assists),
			GoldEarned:                  int64(participant.GoldEarned),
			TotalMinionsKilled:          int64(participant.TotalMinionsKilled),
			TotalDamageDealtToChampions: int64(participant.TotalDamageDealtToChampions),
			TotalDamageTaken:            int64(participant.TotalDamageTaken),
			VisionScore:                 int64(participant.VisionScore),
			CreatedAt:                   participant.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("failed to insert participant %s/%s: %w", participant.MatchID, participant.Puuid, err)
		}
	}

	err = qtx.MarkSummonerMatchFetched(ctx, db.MarkSummonerMatchFetchedParams{
		Puuid:   puuid,
		MatchID: match.MatchID,
	})
	if err != nil {
		return fmt.Errorf("failed to mark match fetched %s: %w", match.MatchID, err)
	}

	return tx.Commit()
}

func (r *MatchRepository) GameRowsForSummoner(ctx context.Context, puuid string) ([]domain.Game, error) {
	rows, err := r.queries.ListGameRowsForSummoner(ctx, puuid)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Game, len(rows))
	for i, row := range rows {
		result[i] = domain.Game{
			MatchID:                     row.MatchID,
			Puuid:                       row.Puuid,
			QueueID:                     int(row.QueueID),
			GameCreation:                time.UnixMilli(row.GameCreationMs),
			GameDuration:                time.Duration(row.GameDurationS) * time.Second,
			GameVersion:                 row.GameVersion,
			MapID:                       int(row.MapID),
			ChampionName:                row.ChampionName,
			ChampionID:                  int(row.ChampionID),
			TeamID:                      int(row.TeamID),
			TeamPosition:                row.TeamPosition,
			Win:                         row.Win,
			Kills:                       int(row.Kills),
			Deaths:                      int(row.Deaths),
			Assists:                     int(row.Assists),
			GoldEarned:                  int(row.GoldEarned),
			TotalMinionsKilled:          int(row.TotalMinionsKilled),
			TotalDamageDealtToChampions: int(row.TotalDamageDealtToChampions),
			TotalDamageTaken:            int(row.TotalDamageTaken),
			VisionScore:                 int(row.VisionScore),
		}
	}
	return result, nil
}

// RebuildGames replaces the aggregate table with the given rows in one
// transaction, so readers never observe a half-built table.
func (r *MatchRepository) RebuildGames(ctx context.Context, games []domain.Game) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)

	if err := qtx.DeleteGames(ctx); err != nil {
		return fmt.Errorf("failed to clear games table: %w", err)
	}

	for i := 0; i < len(games); i += constants.DBBatchSize {
		end := i + constants.DBBatchSize
		if end > len(games) {
			end = len(games)
		}

		for _, g := range games[i:end] {
			err := qtx.InsertGame(ctx, db.InsertGameParams{
				MatchID:                     g.MatchID,
				Puuid:                       g.Puuid,
				SummonerFolder:              g.SummonerFolder,
				QueueID:                     int64(g.QueueID),
				GameCreationMs:              g.GameCreation.UnixMilli(),
				GameDurationS:               int64(g.GameDuration / time.Second),
				GameVersion:                 g.GameVersion,
				MapID:                       int64(g.MapID),
				ChampionName:                g.ChampionName,
				ChampionID:                  int64(g.ChampionID),
				TeamID:                      int64(g.TeamID),
				TeamPosition:                g.TeamPosition,
				Win:                         g.Win,
				Kills:                       int64(g.Kills),
				Deaths:                      int64(g.Deaths),
				Assists:                     int64(g.Assists),
				GoldEarned:                  int64(g.GoldEarned),
				TotalMinionsKilled:          int64(g.TotalMinionsKilled),
				TotalDamageDealtToChampions: int64(g.TotalDamageDealtToChampions),
				TotalDamageTaken:            int64(g.TotalDamageTaken),
				VisionScore:                 int64(g.VisionScore),
			})
			if err != nil {
				return fmt.Errorf("failed to insert game %s/%s: %w", g.MatchID, g.Puuid, err)
			}
		}
	}

	return tx.Commit()
}

func (r *MatchRepository) ListGames(ctx context.Context) ([]domain.Game, error) {
	rows, err := r.queries.ListGames(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Game, len(rows))
	for i, g := range rows {
		result[i] = domain.Game{
			MatchID:                     g.MatchID,
			Puuid:                       g.Puuid,
			SummonerFolder:              g.SummonerFolder,
			QueueID:                     int(g.QueueID),
			GameCreation:                time.UnixMilli(g.GameCreationMs),
			GameDuration:                time.Duration(g.GameDurationS) * time.Second,
			GameVersion:                 g.GameVersion,
			MapID:                       int(g.MapID),
			ChampionName:                g.ChampionName,
			ChampionID:                  int(g.ChampionID),
			TeamID:                      int(g.TeamID),
			TeamPosition:                g.TeamPosition,
			Win:                         g.Win,
			Kills:                       int(g.Kills),
			Deaths:                      int(g.Deaths),
			Assists:                     int(g.Assists),
			GoldEarned:                  int(g.GoldEarned),
			TotalMinionsKilled:          int(g.TotalMinionsKilled),
			TotalDamageDealtToChampions: int(g.TotalDamageDealtToChampions),
			TotalDamageTaken:            int(g.TotalDamageTaken),
			VisionScore:                 int(g.VisionScore),
		}
	}
	return result, nil
}

func (r *MatchRepository) CountGames(ctx context.Context) (int64, error) {
	return r.queries.CountGames(ctx)
}
