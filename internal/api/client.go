package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://fc-pro-number-api.kasra.codes"

// Client interface for testability
type Client interface {
	GetPosition(ctx context.Context, fid int64) (*Record, error)
}

// Record is the viewer's precomputed Pro position.
type Record struct {
	Position  int64     `json:"position"`
	Timestamp time.Time `json:"timestamp"`
}

// Layouts accepted for timestamps without RFC 3339 zone info; these are
// read as UTC.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// UnmarshalJSON accepts any ISO-8601 timestamp the lookup API may emit,
// or epoch milliseconds.
func (r *Record) UnmarshalJSON(b []byte) error {
	var raw struct {
		Position  int64           `json:"position"`
		Timestamp json.RawMessage `json:"timestamp"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	ts, err := parseTimestamp(raw.Timestamp)
	if err != nil {
		return err
	}

	r.Position = raw.Position
	r.Timestamp = ts
	return nil
}

func parseTimestamp(raw json.RawMessage) (time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return time.Time{}, nil
	}

	var ms int64
	if err := json.Unmarshal(raw, &ms); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("timestamp: %w", err)
	}

	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp: unrecognized format %q", s)
}

type HTTPClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	logger     *zap.Logger
}

// NewClient builds a lookup client. A zero timeout leaves requests bounded
// only by their context; ratePerSec <= 0 disables the limiter.
func NewClient(baseURL string, ratePerSec int, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	transport := &http.Transport{
		MaxIdleConns:       100,
		MaxConnsPerHost:    10,
		IdleConnTimeout:    90 * time.Second,
		DisableCompression: false,
	}

	limit := rate.Inf
	burst := 0
	if ratePerSec > 0 {
		limit = rate.Limit(ratePerSec)
		burst = ratePerSec * 2
	}

	return &HTTPClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL: baseURL,
		limiter: rate.NewLimiter(limit, burst),
		logger:  logger,
	}
}

// GetPosition issues a single GET /user?fid=<fid>. It never retries.
func (c *HTTPClient) GetPosition(ctx context.Context, fid int64) (*Record, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	u := c.baseURL + "/user?" + url.Values{"fid": {strconv.FormatInt(fid, 10)}}.Encode()
	c.logger.Debug("requesting", zap.String("url", u))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var rec Record
	if err := json.NewDecoder(resp.Body).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if rec.Position == 0 {
		return nil, ErrNoPosition
	}

	return &rec, nil
}

// Outcome classifies a lookup for logs and metrics only; callers render
// every non-found outcome the same way.
type Outcome string

const (
	OutcomeFound    Outcome = "found"
	OutcomeNoRecord Outcome = "no_record"
	OutcomeFailed   Outcome = "failed"
)

// Lookup is the optional result of fetching a position.
type Lookup struct {
	Record  *Record
	Outcome Outcome
}

// Found reports whether a record is present.
func (l Lookup) Found() bool {
	return l.Record != nil
}

// Fetcher turns client errors into an absent record.
type Fetcher struct {
	client Client
	logger *zap.Logger
}

func NewFetcher(client Client, logger *zap.Logger) *Fetcher {
	return &Fetcher{client: client, logger: logger}
}

// Lookup fetches the record for fid. It never fails: any error resolves to
// a Lookup without a record.
func (f *Fetcher) Lookup(ctx context.Context, fid int64) Lookup {
	rec, err := f.client.GetPosition(ctx, fid)
	switch {
	case err == nil:
		return Lookup{Record: rec, Outcome: OutcomeFound}
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUnexpectedStatus), errors.Is(err, ErrNoPosition):
		f.logger.Debug("no position record", zap.Int64("fid", fid), zap.Error(err))
		return Lookup{Outcome: OutcomeNoRecord}
	default:
		f.logger.Error("error fetching user data", zap.Int64("fid", fid), zap.Error(err))
		return Lookup{Outcome: OutcomeFailed}
	}
}
