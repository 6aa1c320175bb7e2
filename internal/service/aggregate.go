package service

import (
	"context"
	"fmt"

	"github.com/gbillga/lol-history-parser/internal/domain"
	"github.com/rs/zerolog"
)

type SummonerLister interface {
	List(ctx context.Context) ([]domain.Summoner, error)
}

type GameStore interface {
	GameRowsForSummoner(ctx context.Context, puuid string) ([]domain.Game, error)
	RebuildGames(ctx context.Context, games []domain.Game) error
	ListGames(ctx context.Context) ([]domain.Game, error)
}

// Aggregator rebuilds the flattened games table: one row per tracked summoner
// per match, match metadata joined with that summoner's participant line.
type Aggregator struct {
	summoners SummonerLister
	games     GameStore
	logger    zerolog.Logger
}

func NewAggregator(summoners SummonerLister, games GameStore, logger zerolog.Logger) *Aggregator {
	return &Aggregator{
		summoners: summoners,
		games:     games,
		logger:    logger,
	}
}

func (a *Aggregator) Rebuild(ctx context.Context) (int, error) {
	summoners, err := a.summoners.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list summoners: %w", err)
	}

	var all []domain.Game
	for _, s := range summoners {
		rows, err := a.games.GameRowsForSummoner(ctx, s.Puuid)
		if err != nil {
			return 0, fmt.Errorf("failed to load games for %s: %w", s.RiotID(), err)
		}
		for i := range rows {
			rows[i].SummonerFolder = s.RiotID()
		}
		a.logger.Debug().Str("riot_id", s.RiotID()).Int("games", len(rows)).Msg("collected game rows")
		all = append(all, rows...)
	}

	if err := a.games.RebuildGames(ctx, all); err != nil {
		return 0, fmt.Errorf("failed to rebuild games table: %w", err)
	}

	a.logger.Info().Int("rows", len(all)).Msg("aggregate table rebuilt")
	return len(all), nil
}
