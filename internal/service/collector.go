package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gbillga/lol-history-parser/internal/accounts"
	"github.com/gbillga/lol-history-parser/internal/constants"
	"github.com/gbillga/lol-history-parser/internal/domain"
	"github.com/gbillga/lol-history-parser/internal/riot"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// RiotAPI is the slice of the Riot client the collector needs.
type RiotAPI interface {
	GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, error)
	ListMatchIDs(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error)
	GetMatch(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error)
}

type SummonerStore interface {
	GetByName(ctx context.Context, gameName, tagLine string) (*domain.Summoner, error)
	Upsert(ctx context.Context, s *domain.Summoner) error
	SetLastFetchAt(ctx context.Context, puuid string, lastFetchAt time.Time) error
	KnownMatchIDs(ctx context.Context, puuid string) (map[string]struct{}, error)
	InsertMatchIDs(ctx context.Context, links []domain.SummonerMatch) error
	PendingMatches(ctx context.Context, puuid string) ([]domain.SummonerMatch, error)
}

type MatchStore interface {
	GetRaw(ctx context.Context, matchID string) (*domain.Match, error)
	StoreFetched(ctx context.Context, puuid string, match *domain.Match, participant *domain.Participant) error
}

// Collector walks the account list and brings each summoner's stored match
// history up to date. One user's failure never aborts the rest of the run.
type Collector struct {
	riot        RiotAPI
	summoners   SummonerStore
	matches     MatchStore
	autoRefresh bool
	logger      zerolog.Logger
}

func NewCollector(api RiotAPI, summoners SummonerStore, matches MatchStore, autoRefresh bool, logger zerolog.Logger) *Collector {
	return &Collector{
		riot:        api,
		summoners:   summoners,
		matches:     matches,
		autoRefresh: autoRefresh,
		logger:      logger,
	}
}

// UserResult reports one account's outcome within a run.
type UserResult struct {
	RiotID      string
	NewMatchIDs int
	Fetched     int
	FetchErrors int
	Err         error
}

func (c *Collector) Run(ctx context.Context, entries []accounts.Entry) []UserResult {
	results := make([]UserResult, 0, len(entries))
	for _, entry := range entries {
		res := c.collectUser(ctx, entry)
		if res.Err != nil {
			c.logger.Error().Err(res.Err).Str("riot_id", entry.RiotID()).Msg("user collection failed")
		}
		results = append(results, res)
		if ctx.Err() != nil {
			break
		}
	}
	return results
}

func (c *Collector) collectUser(ctx context.Context, entry accounts.Entry) UserResult {
	res := UserResult{RiotID: entry.RiotID()}

	ctx, cancel := context.WithTimeout(ctx, constants.UserFetchTimeout)
	defer cancel()

	logger := c.logger.With().Str("riot_id", entry.RiotID()).Logger()

	summoner, err := c.summoners.GetByName(ctx, entry.GameName, entry.TagLine)
	if err != nil {
		res.Err = fmt.Errorf("failed to look up summoner: %w", err)
		return res
	}

	isNew := summoner == nil
	if isNew {
		summoner, err = c.resolveAccount(ctx, entry)
		if err != nil {
			res.Err = err
			return res
		}
		logger.Info().Str("puuid", summoner.Puuid).Msg("new summoner registered")
	}

	// A known summoner's match list is only re-listed when auto refresh is
	// on; their pending queue is still drained either way.
	if isNew || c.autoRefresh {
		newIDs, err := c.refreshMatchList(ctx, summoner)
		if err != nil {
			res.Err = fmt.Errorf("failed to refresh match list: %w", err)
			return res
		}
		res.NewMatchIDs = newIDs
		logger.Info().Int("new_match_ids", newIDs).Msg("match list refreshed")
	} else {
		logger.Info().Msg("summoner already in collection, skipping list refresh")
	}

	res.Fetched, res.FetchErrors, err = c.fetchPending(ctx, summoner, logger)
	if err != nil {
		res.Err = fmt.Errorf("failed to list pending matches: %w", err)
		return res
	}

	if err := c.summoners.SetLastFetchAt(ctx, summoner.Puuid, time.Now()); err != nil {
		logger.Warn().Err(err).Msg("failed to set last fetch at")
	}

	logger.Info().
		Int("fetched", res.Fetched).
		Int("fetch_errors", res.FetchErrors).
		Msg("user collection done")
	return res
}

func (c *Collector) resolveAccount(ctx context.Context, entry accounts.Entry) (*domain.Summoner, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	account, err := c.riot.GetAccountByRiotID(apiCtx, entry.Region, entry.GameName, entry.TagLine)
	if err != nil {
		if errors.Is(err, riot.ErrNotFound) {
			return nil, fmt.Errorf("account %s not found on %s: %w", entry.RiotID(), entry.Region, err)
		}
		return nil, fmt.Errorf("failed to resolve account %s: %w", entry.RiotID(), err)
	}

	now := time.Now()
	summoner := &domain.Summoner{
		Puuid:     account.Puuid,
		GameName:  account.GameName,
		TagLine:   account.TagLine,
		Region:    entry.Region,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.summoners.Upsert(ctx, summoner); err != nil {
		return nil, fmt.Errorf("failed to store summoner: %w", err)
	}
	return summoner, nil
}

// refreshMatchList pulls both ranked queues in parallel and records unseen
// match IDs as pending. Listing stops early on a page containing only known
// IDs, since match-v5 returns newest first.
func (c *Collector) refreshMatchList(ctx context.Context, summoner *domain.Summoner) (int, error) {
	known, err := c.summoners.KnownMatchIDs(ctx, summoner.Puuid)
	if err != nil {
		return 0, fmt.Errorf("failed to load known match ids: %w", err)
	}

	queues := []int{constants.QueueSoloDuo, constants.QueueFlex}
	perQueue := make([][]string, len(queues))

	g, gCtx := errgroup.WithContext(ctx)
	for i, queue := range queues {
		g.Go(func() error {
			ids, err := c.listNewMatchIDs(gCtx, summoner, queue, known)
			if err != nil {
				return fmt.Errorf("queue %d: %w", queue, err)
			}
			perQueue[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	var links []domain.SummonerMatch
	for i, queue := range queues {
		for _, id := range perQueue[i] {
			links = append(links, domain.SummonerMatch{
				Puuid:   summoner.Puuid,
				MatchID: id,
				QueueID: queue,
			})
		}
	}

	if err := c.summoners.InsertMatchIDs(ctx, links); err != nil {
		return 0, fmt.Errorf("failed to record match ids: %w", err)
	}
	return len(links), nil
}

func (c *Collector) listNewMatchIDs(ctx context.Context, summoner *domain.Summoner, queue int, known map[string]struct{}) ([]string, error) {
	var newIDs []string
	start := 0
	for {
		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		page, err := c.riot.ListMatchIDs(apiCtx, summoner.Region, summoner.Puuid, queue, start, constants.MatchIDPageSize)
		cancel()
		if err != nil {
			return nil, err
		}

		unseen := 0
		for _, id := range page {
			if _, ok := known[id]; ok {
				continue
			}
			newIDs = append(newIDs, id)
			unseen++
		}

		if len(page) < constants.MatchIDPageSize {
			break
		}
		if unseen == 0 {
			// Past the watermark: everything older is already recorded.
			break
		}
		start += constants.MatchIDPageSize
	}
	return newIDs, nil
}

// fetchPending drains the summoner's pending match queue. Individual failures
// are counted and skipped so one bad match cannot stall the rest.
func (c *Collector) fetchPending(ctx context.Context, summoner *domain.Summoner, logger zerolog.Logger) (fetched, failed int, err error) {
	pending, err := c.summoners.PendingMatches(ctx, summoner.Puuid)
	if err != nil {
		return 0, 0, err
	}

	for _, link := range pending {
		if ctx.Err() != nil {
			logger.Warn().Int("remaining", len(pending)-fetched-failed).Msg("context cancelled, leaving matches pending")
			return fetched, failed, nil
		}

		if err := c.fetchOne(ctx, summoner, link); err != nil {
			failed++
			logger.Warn().Err(err).Str("match_id", link.MatchID).Msg("match fetch failed, continuing")
			continue
		}
		fetched++
	}
	return fetched, failed, nil
}

func (c *Collector) fetchOne(ctx context.Context, summoner *domain.Summoner, link domain.SummonerMatch) error {
	var (
		parsed *riot.Match
		raw    []byte
	)

	// A match already stored for another tracked summoner is reused from the
	// database, never fetched twice.
	stored, err := c.matches.GetRaw(ctx, link.MatchID)
	if err != nil {
		return fmt.Errorf("failed to check stored match: %w", err)
	}
	if stored != nil {
		raw = stored.RawJSON
		parsed = &riot.Match{}
		if err := json.Unmarshal(raw, parsed); err != nil {
			return fmt.Errorf("failed to decode stored match %s: %w", link.MatchID, err)
		}
	} else {
		apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
		parsed, raw, err = c.riot.GetMatch(apiCtx, summoner.Region, link.MatchID)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to fetch match %s: %w", link.MatchID, err)
		}
	}

	now := time.Now()
	match := &domain.Match{
		MatchID:      link.MatchID,
		QueueID:      parsed.Info.QueueID,
		GameCreation: time.UnixMilli(parsed.Info.GameCreation),
		GameDuration: time.Duration(parsed.Info.GameDuration) * time.Second,
		GameVersion:  parsed.Info.GameVersion,
		MapID:        parsed.Info.MapID,
		RawJSON:      raw,
		CreatedAt:    now,
	}

	var participant *domain.Participant
	if p := parsed.ParticipantFor(summoner.Puuid); p != nil {
		participant = &domain.Participant{
			MatchID:                     link.MatchID,
			Puuid:                       summoner.Puuid,
			ChampionName:                p.ChampionName,
			ChampionID:                  p.ChampionID,
			TeamID:                      p.TeamID,
			TeamPosition:                p.TeamPosition,
			Win:                         p.Win,
			Kills:                       p.Kills,
			Deaths:                      p.Deaths,
			Assists:                     p.Assists,
			GoldEarned:                  p.GoldEarned,
			TotalMinionsKilled:          p.TotalMinionsKilled,
			TotalDamageDealtToChampions: p.TotalDamageDealtToChampions,
			TotalDamageTaken:            p.TotalDamageTaken,
			VisionScore:                 p.VisionScore,
			CreatedAt:                   now,
		}
	} else {
		c.logger.Warn().
			Str("match_id", link.MatchID).
			Str("puuid", summoner.Puuid).
			Msg("no participant line for summoner in match, storing match anyway")
	}

	dbCtx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()
	if err := c.matches.StoreFetched(dbCtx, summoner.Puuid, match, participant); err != nil {
		return fmt.Errorf("failed to store match %s: %w", link.MatchID, err)
	}
	return nil
}
