// Package draftkings fetches the day's MLB player prop lines from the
// DraftKings sportsbook content API.
package draftkings

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/evaluate"
)

// DefaultBaseURL is the MLB league on the sportsbook content API.
const DefaultBaseURL = "https://sportsbook-nash.draftkings.com/api/sportscontent/dkusdc/v1/leagues/84240"

// Board is one of the two dashboards a fetch serves.
type Board string

const (
	Pitchers Board = "pitchers"
	Batters  Board = "batters"
)

// ParseBoard validates a board name.
func ParseBoard(s string) (Board, error) {
	switch Board(s) {
	case Pitchers, Batters:
		return Board(s), nil
	}
	return "", fmt.Errorf("draftkings: unknown board %q", s)
}

type subcategory struct {
	category evaluate.Category
	path     string
}

// Market paths per board. The first entry is the primary market: it supplies
// the event list and its failure fails the fetch.
var markets = map[Board][]subcategory{
	Pitchers: {
		{evaluate.Strikeouts, "/categories/1031/subcategories/15221"},
		{evaluate.PitchingOuts, "/categories/1031/subcategories/17413"},
		{evaluate.HitsAllowed, "/categories/1031/subcategories/9886"},
		{evaluate.WalksAllowed, "/categories/1031/subcategories/15219"},
	},
	Batters: {
		{evaluate.TotalBases, "/categories/743/subcategories/6607"},
	},
}

// Getter is the transport; *httpx.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Selection is one priced side of a player prop.
type Selection struct {
	Player   string            `json:"player"`
	Category evaluate.Category `json:"prop"`
	Label    string            `json:"label"`
	Points   float64           `json:"points"`
	Odds     string            `json:"odds"`
}

// Lines is everything one board fetch returned.
type Lines struct {
	Board      Board       `json:"board"`
	FetchedAt  time.Time   `json:"fetchedAt"`
	Selections []Selection `json:"selections"`

	// Opponents maps a starting pitcher's name to the opposing team code.
	Opponents map[string]string `json:"opponents"`

	// OpposingStarters maps a team code to the name of the pitcher starting against it.
	OpposingStarters map[string]string `json:"opposingStarters"`
}

// Client reads prop markets.
type Client struct {
	http    Getter
	baseURL string
	log     *zap.Logger
	now     func() time.Time
}

// NewClient returns a client against DefaultBaseURL unless baseURL is set.
func NewClient(h Getter, baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{http: h, baseURL: baseURL, log: log.With(zap.String("component", "draftkings")), now: time.Now}
}

// BrowserHeaders are sent with every request; the endpoint rejects bare clients.
func BrowserHeaders() http.Header {
	h := http.Header{}
	h.Set("Accept", "application/json")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Cache-Control", "max-age=0")
	h.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/136.0.0.0 Safari/537.36")
	h.Set("Upgrade-Insecure-Requests", "1")
	h.Set("Sec-Fetch-Dest", "document")
	h.Set("Sec-Fetch-Mode", "navigate")
	h.Set("Sec-Fetch-Site", "none")
	h.Set("Sec-Fetch-User", "?1")
	h.Set("Sec-Ch-Ua", `"Chromium";v="136", "Google Chrome";v="136", "Not.A/Brand";v="99"`)
	h.Set("Sec-Ch-Ua-Mobile", "?0")
	h.Set("Sec-Ch-Ua-Platform", `"Windows"`)
	return h
}

// Fetch downloads every market of board.
func (c *Client) Fetch(ctx context.Context, board Board) (*Lines, error) {
	subs, ok := markets[board]
	if !ok {
		return nil, fmt.Errorf("draftkings: unknown board %q", board)
	}

	out := &Lines{
		Board:            board,
		FetchedAt:        c.now().UTC(),
		Opponents:        map[string]string{},
		OpposingStarters: map[string]string{},
	}
	for i, sub := range subs {
		body, err := c.http.Get(ctx, c.baseURL+sub.path)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("draftkings: fetch %s: %w", sub.category, err)
			}
			c.log.Warn("market unavailable, continuing without it",
				zap.String("prop", string(sub.category)), zap.Error(err))
			continue
		}

		m, err := parseMarket(body, sub.category)
		if err != nil {
			if i == 0 {
				return nil, fmt.Errorf("draftkings: parse %s: %w", sub.category, err)
			}
			c.log.Warn("market unreadable, continuing without it",
				zap.String("prop", string(sub.category)), zap.Error(err))
			continue
		}
		if i == 0 {
			out.Opponents = m.opponents
			out.OpposingStarters = m.opposingStarters
		}
		out.Selections = append(out.Selections, m.selections...)
	}

	if board == Batters {
		out.Selections = FilterBatterSelections(out.Selections)
	}
	c.log.Info("lines fetched", zap.String("board", string(board)), zap.Int("selections", len(out.Selections)))
	return out, nil
}
