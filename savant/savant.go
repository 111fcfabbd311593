// Package savant downloads pitch-level Statcast data from the Baseball Savant
// search export.
package savant

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/statcast"
)

// DefaultBaseURL is the Savant search export endpoint.
const DefaultBaseURL = "https://baseballsavant.mlb.com/statcast_search/csv"

// ChunkDays bounds each request; the export silently truncates large result sets.
const ChunkDays = 5

// Getter is the transport; *httpx.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

type Client struct {
	http    Getter
	baseURL string
	log     *zap.Logger
}

func NewClient(h Getter, baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: h, baseURL: baseURL, log: log.With(zap.String("component", "savant"))}
}

// Chunk is an inclusive date range.
type Chunk struct {
	From, To time.Time
}

// Chunks splits [from, to] into ranges of at most days calendar days.
func Chunks(from, to time.Time, days int) []Chunk {
	if days < 1 {
		days = 1
	}
	var out []Chunk
	for start := from; !start.After(to); start = start.AddDate(0, 0, days) {
		end := start.AddDate(0, 0, days-1)
		if end.After(to) {
			end = to
		}
		out = append(out, Chunk{From: start, To: end})
	}
	return out
}

func (c *Client) searchURL(ch Chunk) string {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", "pitcher")
	q.Set("hfGT", "R|")
	q.Set("game_date_gt", statcast.DateKey(ch.From))
	q.Set("game_date_lt", statcast.DateKey(ch.To))
	q.Set("min_pitches", "0")
	q.Set("min_results", "0")
	return c.baseURL + "?" + q.Encode()
}

// Range downloads every regular-season pitch thrown between from and to inclusive.
func (c *Client) Range(ctx context.Context, from, to time.Time) (statcast.Log, error) {
	var out statcast.Log
	for _, ch := range Chunks(from, to, ChunkDays) {
		body, err := c.http.Get(ctx, c.searchURL(ch))
		if err != nil {
			return nil, fmt.Errorf("savant: %s..%s: %w", statcast.DateKey(ch.From), statcast.DateKey(ch.To), err)
		}
		events, err := Parse(body)
		if err != nil {
			return nil, fmt.Errorf("savant: %s..%s: %w", statcast.DateKey(ch.From), statcast.DateKey(ch.To), err)
		}
		c.log.Info("chunk downloaded",
			zap.String("from", statcast.DateKey(ch.From)),
			zap.String("to", statcast.DateKey(ch.To)),
			zap.Int("pitches", len(events)),
		)
		out = append(out, events...)
	}
	return out, nil
}
