package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gbillga/lol-history-parser/internal/accounts"
	"github.com/gbillga/lol-history-parser/internal/domain"
	"github.com/gbillga/lol-history-parser/internal/riot"
	"github.com/rs/zerolog"
)

type fakeRiot struct {
	GetAccountFn  func(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, error)
	ListFn        func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error)
	GetMatchFn    func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error)
	mu            sync.Mutex
	listCalls     int
	getMatchCalls int
}

func (f *fakeRiot) GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, error) {
	return f.GetAccountFn(ctx, routing, gameName, tagLine)
}

// ListMatchIDs is called from one goroutine per queue.
func (f *fakeRiot) ListMatchIDs(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.ListFn(ctx, routing, puuid, queue, start, count)
}

func (f *fakeRiot) GetMatch(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
	f.getMatchCalls++
	return f.GetMatchFn(ctx, routing, matchID)
}

// fakeStore keeps summoner and match state in memory and implements both
// SummonerStore and MatchStore.
type fakeStore struct {
	summoners  map[string]*domain.Summoner // keyed by Name#Tag
	known      map[string]map[string]bool  // puuid -> match id -> fetched
	matches    map[string]*domain.Match    // match id -> stored body
	stored     []string                    // order of StoreFetched calls
	pendingErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		summoners: make(map[string]*domain.Summoner),
		known:     make(map[string]map[string]bool),
		matches:   make(map[string]*domain.Match),
	}
}

func (f *fakeStore) GetByName(ctx context.Context, gameName, tagLine string) (*domain.Summoner, error) {
	return f.summoners[gameName+"#"+tagLine], nil
}

func (f *fakeStore) Upsert(ctx context.Context, s *domain.Summoner) error {
	f.summoners[s.RiotID()] = s
	return nil
}

func (f *fakeStore) SetLastFetchAt(ctx context.Context, puuid string, lastFetchAt time.Time) error {
	return nil
}

func (f *fakeStore) KnownMatchIDs(ctx context.Context, puuid string) (map[string]struct{}, error) {
	ids := make(map[string]struct{})
	for id := range f.known[puuid] {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (f *fakeStore) InsertMatchIDs(ctx context.Context, links []domain.SummonerMatch) error {
	for _, link := range links {
		if f.known[link.Puuid] == nil {
			f.known[link.Puuid] = make(map[string]bool)
		}
		if _, exists := f.known[link.Puuid][link.MatchID]; !exists {
			f.known[link.Puuid][link.MatchID] = false
		}
	}
	return nil
}

func (f *fakeStore) PendingMatches(ctx context.Context, puuid string) ([]domain.SummonerMatch, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	var pending []domain.SummonerMatch
	for id, fetched := range f.known[puuid] {
		if !fetched {
			pending = append(pending, domain.SummonerMatch{Puuid: puuid, MatchID: id})
		}
	}
	return pending, nil
}

func (f *fakeStore) GetRaw(ctx context.Context, matchID string) (*domain.Match, error) {
	return f.matches[matchID], nil
}

func (f *fakeStore) StoreFetched(ctx context.Context, puuid string, match *domain.Match, participant *domain.Participant) error {
	f.matches[match.MatchID] = match
	f.known[puuid][match.MatchID] = true
	f.stored = append(f.stored, match.MatchID)
	return nil
}

func matchBody(id, puuid string) (*riot.Match, []byte) {
	m := &riot.Match{
		Metadata: riot.MatchMetadata{MatchID: id, Participants: []string{puuid}},
		Info: riot.MatchInfo{
			GameCreation: 1700000000000,
			GameDuration: 1800,
			GameVersion:  "14.1.1",
			MapID:        11,
			QueueID:      420,
			Participants: []riot.Participant{{Puuid: puuid, ChampionName: "Ahri", Kills: 5, Win: true}},
		},
	}
	body := []byte(fmt.Sprintf(`{"metadata":{"matchId":%q,"participants":[%q]},"info":{"gameCreation":1700000000000,"gameDuration":1800,"gameVersion":"14.1.1","mapId":11,"queueId":420,"participants":[{"puuid":%q,"championName":"Ahri","kills":5,"win":true}]}}`, id, puuid, puuid))
	return m, body
}

func testEntry() accounts.Entry {
	return accounts.Entry{GameName: "ScanVisor", TagLine: "EUW", Region: "europe"}
}

func TestCollector_NewUserFetchesHistory(t *testing.T) {
	store := newFakeStore()
	api := &fakeRiot{
		GetAccountFn: func(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, error) {
			if routing != "europe" {
				t.Fatalf("expected routing europe, got %s", routing)
			}
			return &riot.Account{Puuid: "puuid-1", GameName: gameName, TagLine: tagLine}, nil
		},
		ListFn: func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
			if queue == 420 {
				return []string{"EUW1_1", "EUW1_2"}, nil
			}
			return []string{"EUW1_3"}, nil
		},
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			m, body := matchBody(matchID, "puuid-1")
			return m, body, nil
		},
	}

	c := NewCollector(api, store, store, false, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	res := results[0]
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.NewMatchIDs != 3 {
		t.Fatalf("expected 3 new match ids, got %d", res.NewMatchIDs)
	}
	if res.Fetched != 3 {
		t.Fatalf("expected 3 fetched, got %d", res.Fetched)
	}
	if len(store.stored) != 3 {
		t.Fatalf("expected 3 stored matches, got %d", len(store.stored))
	}
}

func TestCollector_NoNewMatchesStoresNothing(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-1", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	store.known["puuid-1"] = map[string]bool{"EUW1_1": true, "EUW1_2": true}

	api := &fakeRiot{
		ListFn: func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
			return []string{"EUW1_1", "EUW1_2"}, nil
		},
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			t.Fatalf("GetMatch should not be called for match %s", matchID)
			return nil, nil, nil
		},
	}

	c := NewCollector(api, store, store, true, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if results[0].NewMatchIDs != 0 {
		t.Fatalf("expected 0 new match ids, got %d", results[0].NewMatchIDs)
	}
	if len(store.stored) != 0 {
		t.Fatalf("expected no stored matches, got %d", len(store.stored))
	}
	if api.listCalls != 2 {
		t.Fatalf("expected 2 list calls (one per queue), got %d", api.listCalls)
	}
}

func TestCollector_KnownUserSkipsListingWithoutAutoRefresh(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-1", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	// One match is still pending from an interrupted earlier run.
	store.known["puuid-1"] = map[string]bool{"EUW1_9": false}

	api := &fakeRiot{
		ListFn: func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
			t.Fatal("ListMatchIDs should not be called when auto refresh is off")
			return nil, nil
		},
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			m, body := matchBody(matchID, "puuid-1")
			return m, body, nil
		},
	}

	c := NewCollector(api, store, store, false, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if results[0].Fetched != 1 {
		t.Fatalf("expected pending match to be fetched, got %d", results[0].Fetched)
	}
	if !store.known["puuid-1"]["EUW1_9"] {
		t.Fatal("pending match should have been marked fetched")
	}
}

func TestCollector_SingleFetchFailureDoesNotAbortUser(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-1", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	store.known["puuid-1"] = map[string]bool{
		"EUW1_1": false,
		"EUW1_2": false,
		"EUW1_3": false,
	}

	api := &fakeRiot{
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			if matchID == "EUW1_2" {
				return nil, nil, errors.New("boom")
			}
			m, body := matchBody(matchID, "puuid-1")
			return m, body, nil
		},
	}

	c := NewCollector(api, store, store, false, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	res := results[0]
	if res.Err != nil {
		t.Fatalf("a single match failure must not fail the user: %v", res.Err)
	}
	if res.Fetched != 2 {
		t.Fatalf("expected 2 fetched, got %d", res.Fetched)
	}
	if res.FetchErrors != 1 {
		t.Fatalf("expected 1 fetch error, got %d", res.FetchErrors)
	}
	if store.known["puuid-1"]["EUW1_2"] {
		t.Fatal("failed match must stay pending for the next run")
	}
}

func TestCollector_ReusesMatchStoredForAnotherUser(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-2", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	store.known["puuid-2"] = map[string]bool{"EUW1_1": false}

	_, body := matchBody("EUW1_1", "puuid-2")
	store.matches["EUW1_1"] = &domain.Match{MatchID: "EUW1_1", RawJSON: body}

	api := &fakeRiot{
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			t.Fatalf("match %s is already stored and must not be re-fetched", matchID)
			return nil, nil, nil
		},
	}

	c := NewCollector(api, store, store, false, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if results[0].Fetched != 1 {
		t.Fatalf("expected stored match to be linked, got fetched=%d", results[0].Fetched)
	}
	if api.getMatchCalls != 0 {
		t.Fatalf("expected 0 API match calls, got %d", api.getMatchCalls)
	}
}

func TestCollector_AccountNotFoundContinuesWithNextUser(t *testing.T) {
	store := newFakeStore()
	api := &fakeRiot{
		GetAccountFn: func(ctx context.Context, routing, gameName, tagLine string) (*riot.Account, error) {
			if gameName == "Missing" {
				return nil, riot.ErrNotFound
			}
			return &riot.Account{Puuid: "puuid-ok", GameName: gameName, TagLine: tagLine}, nil
		},
		ListFn: func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
			return nil, nil
		},
	}

	entries := []accounts.Entry{
		{GameName: "Missing", TagLine: "EUW", Region: "europe"},
		{GameName: "ScanVisor", TagLine: "EUW", Region: "europe"},
	}

	c := NewCollector(api, store, store, false, zerolog.Nop())
	results := c.Run(context.Background(), entries)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if !errors.Is(results[0].Err, riot.ErrNotFound) {
		t.Fatalf("expected not-found error for first user, got %v", results[0].Err)
	}
	if results[1].Err != nil {
		t.Fatalf("second user must still be processed: %v", results[1].Err)
	}
}

func TestCollector_PaginatesUntilShortPage(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-1", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	store.known["puuid-1"] = map[string]bool{}

	pagesByStart := map[int][]string{}
	full := make([]string, 100)
	for i := range full {
		full[i] = fmt.Sprintf("EUW1_%d", i)
	}
	pagesByStart[0] = full
	pagesByStart[100] = []string{"EUW1_100", "EUW1_101"}

	api := &fakeRiot{
		ListFn: func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
			if queue != 420 {
				return nil, nil
			}
			return pagesByStart[start], nil
		},
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			m, body := matchBody(matchID, "puuid-1")
			return m, body, nil
		},
	}

	c := NewCollector(api, store, store, true, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if results[0].NewMatchIDs != 102 {
		t.Fatalf("expected 102 match ids across pages, got %d", results[0].NewMatchIDs)
	}
}

func TestCollector_StopsListingAtFullPageOfKnownIDs(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-1", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	full := make([]string, 100)
	store.known["puuid-1"] = map[string]bool{}
	for i := range full {
		full[i] = fmt.Sprintf("EUW1_%d", i)
		store.known["puuid-1"][full[i]] = true
	}

	var (
		startMu sync.Mutex
		starts  []int
	)
	api := &fakeRiot{
		ListFn: func(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
			startMu.Lock()
			starts = append(starts, start)
			startMu.Unlock()
			return full, nil
		},
		GetMatchFn: func(ctx context.Context, routing, matchID string) (*riot.Match, []byte, error) {
			t.Fatalf("known match %s must not be fetched", matchID)
			return nil, nil, nil
		},
	}

	c := NewCollector(api, store, store, true, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if results[0].Err != nil {
		t.Fatalf("unexpected error: %v", results[0].Err)
	}
	if results[0].NewMatchIDs != 0 {
		t.Fatalf("expected 0 new match ids, got %d", results[0].NewMatchIDs)
	}
	// A full page of already-known IDs means everything older is recorded
	// too, so listing must stop without requesting the next page.
	if api.listCalls != 2 {
		t.Fatalf("expected 1 list call per queue, got %d", api.listCalls)
	}
	for _, start := range starts {
		if start != 0 {
			t.Fatalf("listing advanced past the first page, start=%d", start)
		}
	}
	if len(store.stored) != 0 {
		t.Fatalf("expected no stored matches, got %d", len(store.stored))
	}
}

func TestCollector_PendingListFailureIsReported(t *testing.T) {
	store := newFakeStore()
	store.summoners["ScanVisor#EUW"] = &domain.Summoner{
		Puuid: "puuid-1", GameName: "ScanVisor", TagLine: "EUW", Region: "europe",
	}
	store.pendingErr = errors.New("disk I/O error")

	c := NewCollector(&fakeRiot{}, store, store, false, zerolog.Nop())
	results := c.Run(context.Background(), []accounts.Entry{testEntry()})

	if results[0].Err == nil {
		t.Fatal("a pending-list failure must surface in the user result")
	}
	if !errors.Is(results[0].Err, store.pendingErr) {
		t.Fatalf("expected wrapped store error, got %v", results[0].Err)
	}
}
