package riot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/gbillga/lol-history-parser/internal/config"
	"github.com/gbillga/lol-history-parser/internal/constants"
	"github.com/valyala/fasthttp"
)

// ErrNotFound is returned for 404 responses so callers can report a missing
// account or match without aborting the whole run.
var ErrNotFound = errors.New("riot: not found")

// ErrRateLimited is returned when a request is still throttled after the
// bounded retry attempts.
var ErrRateLimited = errors.New("riot: rate limited")

type Client struct {
	apiKey      string
	client      *fasthttp.Client
	baseURL     string // e.g. "https://%s.api.riotgames.com", overridable in tests
	rateLimitMu sync.RWMutex
	rateLimit   RateLimitInfo

	// sleep is swapped out in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

type RateLimitInfo struct {
	// AppLimit and AppCount mirror the raw X-App-Rate-Limit(-Count) headers,
	// e.g. "20:1,100:120".
	AppLimit  string    `json:"app_limit"`
	AppCount  string    `json:"app_count"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: "https://%s.api.riotgames.com",
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         10 * time.Second,
			WriteTimeout:        10 * time.Second,
			MaxIdleConnDuration: 1 * time.Minute,
		},
		sleep: sleepCtx,
	}
}

func (c *Client) GetRateLimitInfo() RateLimitInfo {
	c.rateLimitMu.RLock()
	defer c.rateLimitMu.RUnlock()
	return c.rateLimit
}

func (c *Client) updateRateLimit(resp *fasthttp.Response) {
	c.rateLimitMu.Lock()
	defer c.rateLimitMu.Unlock()

	if limit := string(resp.Header.Peek("X-App-Rate-Limit")); limit != "" {
		c.rateLimit.AppLimit = limit
	}
	if count := string(resp.Header.Peek("X-App-Rate-Limit-Count")); count != "" {
		c.rateLimit.AppCount = count
	}
	c.rateLimit.UpdatedAt = time.Now()
}

// Account is the riot/account-v1 response.
type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// GetAccountByRiotID resolves a game name and tag line to a PUUID on the given
// regional routing value (europe, americas, asia).
func (c *Client) GetAccountByRiotID(ctx context.Context, routing, gameName, tagLine string) (*Account, error) {
	u := fmt.Sprintf(c.baseURL+"/riot/account/v1/accounts/by-riot-id/%s/%s",
		routing, url.PathEscape(gameName), url.PathEscape(tagLine))
	return doRequest[Account](ctx, c, u)
}

// ListMatchIDs returns one page of match IDs for a PUUID, newest first.
func (c *Client) ListMatchIDs(ctx context.Context, routing, puuid string, queue, start, count int) ([]string, error) {
	q := url.Values{
		"queue": []string{strconv.Itoa(queue)},
		"start": []string{strconv.Itoa(start)},
		"count": []string{strconv.Itoa(count)},
	}
	u := fmt.Sprintf(c.baseURL+"/lol/match/v5/matches/by-puuid/%s/ids?%s",
		routing, puuid, q.Encode())
	ids, err := doRequest[[]string](ctx, c, u)
	if err != nil {
		return nil, err
	}
	return *ids, nil
}

// GetMatch fetches one match-v5 body. The raw payload is returned alongside
// the decoded subset so it can be stored verbatim.
func (c *Client) GetMatch(ctx context.Context, routing, matchID string) (*Match, []byte, error) {
	u := fmt.Sprintf(c.baseURL+"/lol/match/v5/matches/%s", routing, matchID)
	body, err := doRaw(ctx, c, u)
	if err != nil {
		return nil, nil, err
	}
	var m Match
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, nil, fmt.Errorf("decoding match: %w", err)
	}
	return &m, body, nil
}

func doRequest[T any](ctx context.Context, client *Client, url string) (*T, error) {
	body, err := doRaw(ctx, client, url)
	if err != nil {
		return nil, err
	}
	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &result, nil
}

func doRaw(ctx context.Context, client *Client, url string) ([]byte, error) {
	for attempt := 1; attempt <= constants.RateLimitMaxAttempts; attempt++ {
		body, status, retryAfter, err := client.do(ctx, url)
		if err != nil {
			return nil, err
		}

		switch status {
		case fasthttp.StatusOK:
			return body, nil
		case fasthttp.StatusNotFound:
			return nil, ErrNotFound
		case fasthttp.StatusTooManyRequests:
			if attempt == constants.RateLimitMaxAttempts {
				break
			}
			wait := constants.RateLimitFallbackWait
			if retryAfter > 0 {
				wait = retryAfter
			}
			if err := client.sleep(ctx, wait); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("API error: %d", status)
		}
	}
	return nil, ErrRateLimited
}

func (c *Client) do(ctx context.Context, url string) (body []byte, status int, retryAfter time.Duration, err error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("X-Riot-Token", c.apiKey)

	deadline, ok := ctx.Deadline()
	if ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.Do(req, resp)
	}
	if err != nil {
		return nil, 0, 0, err
	}

	c.updateRateLimit(resp)

	if ra := string(resp.Header.Peek("Retry-After")); ra != "" {
		if secs, convErr := strconv.Atoi(ra); convErr == nil {
			retryAfter = time.Duration(secs) * time.Second
		}
	}

	body = append([]byte(nil), resp.Body()...)
	return body, resp.StatusCode(), retryAfter, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
