// Package mlbstats resolves player names to MLBAM ids and current teams
// through the public MLB Stats API.
package mlbstats

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const DefaultBaseURL = "https://statsapi.mlb.com/api/v1"

// ErrPlayerNotFound is returned when a name or id matches nobody.
var ErrPlayerNotFound = errors.New("mlbstats: player not found")

// Getter is the transport; *httpx.Client satisfies it.
type Getter interface {
	GetJSON(ctx context.Context, url string, v any) error
}

// Person is the subset of the people resource the service reads.
type Person struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	Active      bool   `json:"active"`
	CurrentTeam struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"currentTeam"`
	PrimaryPosition struct {
		Name         string `json:"name"`
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
}

// TeamCode returns the Statcast code of the player's current team, or "".
func (p Person) TeamCode() string {
	return TeamAbbreviation(p.CurrentTeam.Name)
}

type peopleResponse struct {
	People []Person `json:"people"`
}

type Client struct {
	http    Getter
	baseURL string
}

func NewClient(h Getter, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{http: h, baseURL: strings.TrimRight(baseURL, "/")}
}

// LookupPlayer finds a player by display name. Active players win over
// retired namesakes.
func (c *Client) LookupPlayer(ctx context.Context, name string) (Person, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Person{}, ErrPlayerNotFound
	}
	u := c.baseURL + "/people/search?" + url.Values{"names": {name}, "hydrate": {"currentTeam"}}.Encode()

	var resp peopleResponse
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		return Person{}, fmt.Errorf("mlbstats: search %q: %w", name, err)
	}
	if len(resp.People) == 0 {
		return Person{}, fmt.Errorf("%w: %q", ErrPlayerNotFound, name)
	}
	for _, p := range resp.People {
		if p.Active {
			return p, nil
		}
	}
	return resp.People[0], nil
}

// PlayerInfo loads a player with the current team hydrated.
func (c *Client) PlayerInfo(ctx context.Context, id int64) (Person, error) {
	u := fmt.Sprintf("%s/people/%d?hydrate=teams,currentTeam", c.baseURL, id)

	var resp peopleResponse
	if err := c.http.GetJSON(ctx, u, &resp); err != nil {
		return Person{}, fmt.Errorf("mlbstats: person %d: %w", id, err)
	}
	if len(resp.People) == 0 {
		return Person{}, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
	}
	return resp.People[0], nil
}

var teamAbbreviations = map[string]string{
	"Arizona Diamondbacks":  "AZ",
	"Atlanta Braves":        "ATL",
	"Baltimore Orioles":     "BAL",
	"Boston Red Sox":        "BOS",
	"Chicago White Sox":     "CWS",
	"Chicago Cubs":          "CHC",
	"Cincinnati Reds":       "CIN",
	"Cleveland Guardians":   "CLE",
	"Colorado Rockies":      "COL",
	"Detroit Tigers":        "DET",
	"Houston Astros":        "HOU",
	"Kansas City Royals":    "KC",
	"Los Angeles Angels":    "LAA",
	"Los Angeles Dodgers":   "LAD",
	"Miami Marlins":         "MIA",
	"Milwaukee Brewers":     "MIL",
	"Minnesota Twins":       "MIN",
	"New York Mets":         "NYM",
	"New York Yankees":      "NYY",
	"Athletics":             "ATH",
	"Oakland Athletics":     "ATH",
	"Philadelphia Phillies": "PHI",
	"Pittsburgh Pirates":    "PIT",
	"San Diego Padres":      "SD",
	"San Francisco Giants":  "SF",
	"Seattle Mariners":      "SEA",
	"St. Louis Cardinals":   "STL",
	"Tampa Bay Rays":        "TB",
	"Texas Rangers":         "TEX",
	"Toronto Blue Jays":     "TOR",
	"Washington Nationals":  "WSH",
}

// TeamAbbreviation maps a full club name to its Statcast code. Unknown names
// return "".
func TeamAbbreviation(name string) string {
	if code, ok := teamAbbreviations[strings.TrimSpace(name)]; ok {
		return code
	}
	return ""
}
