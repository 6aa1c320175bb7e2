package riot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gbillga/lol-history-parser/internal/config"
	"github.com/gbillga/lol-history-parser/internal/constants"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(&config.Config{APIKey: "RGAPI-test-key"})
	// The first path segment stands in for the routing value.
	c.baseURL = srv.URL + "/%s"
	c.sleep = func(ctx context.Context, d time.Duration) error { return nil }
	return c, srv
}

func TestClient_SetsRiotTokenHeader(t *testing.T) {
	var gotToken string
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Riot-Token")
		w.Write([]byte(`{"puuid":"p1","gameName":"ScanVisor","tagLine":"EUW"}`))
	})

	account, err := c.GetAccountByRiotID(context.Background(), "europe", "ScanVisor", "EUW")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotToken != "RGAPI-test-key" {
		t.Fatalf("expected api key header, got %q", gotToken)
	}
	if account.Puuid != "p1" {
		t.Fatalf("expected puuid p1, got %s", account.Puuid)
	}
}

func TestClient_NotFound(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetAccountByRiotID(context.Background(), "europe", "Missing", "EUW")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_RetriesOn429(t *testing.T) {
	attempts := 0
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`["EUW1_1","EUW1_2"]`))
	})

	var waits []time.Duration
	c.sleep = func(ctx context.Context, d time.Duration) error {
		waits = append(waits, d)
		return nil
	}

	ids, err := c.ListMatchIDs(context.Background(), "europe", "p1", 420, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %d", len(ids))
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
	for _, w := range waits {
		if w != time.Second {
			t.Fatalf("expected Retry-After wait of 1s, got %v", w)
		}
	}
}

func TestClient_GivesUpAfterBoundedAttempts(t *testing.T) {
	attempts := 0
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusTooManyRequests)
	})

	sleeps := 0
	c.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps++
		return nil
	}

	_, err := c.ListMatchIDs(context.Background(), "europe", "p1", 420, 0, 100)
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
	if attempts != constants.RateLimitMaxAttempts {
		t.Fatalf("expected %d attempts, got %d", constants.RateLimitMaxAttempts, attempts)
	}
	// The last 429 is terminal, so no wait should follow it.
	if sleeps != constants.RateLimitMaxAttempts-1 {
		t.Fatalf("expected %d sleeps, got %d", constants.RateLimitMaxAttempts-1, sleeps)
	}
}

func TestClient_TracksRateLimitHeaders(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-App-Rate-Limit", "20:1,100:120")
		w.Header().Set("X-App-Rate-Limit-Count", "3:1,17:120")
		w.Write([]byte(`[]`))
	})

	_, err := c.ListMatchIDs(context.Background(), "europe", "p1", 420, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info := c.GetRateLimitInfo()
	if info.AppLimit != "20:1,100:120" {
		t.Fatalf("expected app limit header tracked, got %q", info.AppLimit)
	}
	if info.AppCount != "3:1,17:120" {
		t.Fatalf("expected app count header tracked, got %q", info.AppCount)
	}
}

func TestClient_GetMatchReturnsRawBody(t *testing.T) {
	body := `{"metadata":{"matchId":"EUW1_1","participants":["p1"]},"info":{"queueId":420,"participants":[{"puuid":"p1","championName":"Ahri"}]}}`
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	m, raw, err := c.GetMatch(context.Background(), "europe", "EUW1_1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Metadata.MatchID != "EUW1_1" {
		t.Fatalf("expected match id EUW1_1, got %s", m.Metadata.MatchID)
	}
	if string(raw) != body {
		t.Fatalf("expected raw body to round-trip, got %s", raw)
	}
	if p := m.ParticipantFor("p1"); p == nil || p.ChampionName != "Ahri" {
		t.Fatalf("expected participant line for p1, got %+v", p)
	}
}
