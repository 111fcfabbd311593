package draftkings

import (
	"encoding/json"
	"strings"

	"github.com/somup27/mlbPropModel/evaluate"
	"github.com/somup27/mlbPropModel/odds"
)

type participant struct {
	Name     string `json:"name"`
	Metadata struct {
		ShortName                 string `json:"shortName"`
		StartingPitcherPlayerName string `json:"startingPitcherPlayerName"`
	} `json:"metadata"`
}

type payload struct {
	Events []struct {
		Participants []participant `json:"participants"`
	} `json:"events"`
	Selections []struct {
		Label        string        `json:"label"`
		Points       float64       `json:"points"`
		Participants []participant `json:"participants"`
		DisplayOdds  struct {
			American string `json:"american"`
		} `json:"displayOdds"`
	} `json:"selections"`
}

type market struct {
	selections       []Selection
	opponents        map[string]string
	opposingStarters map[string]string
}

func parseMarket(body []byte, category evaluate.Category) (market, error) {
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return market{}, err
	}

	m := market{opponents: map[string]string{}, opposingStarters: map[string]string{}}
	for _, ev := range p.Events {
		if len(ev.Participants) < 2 {
			continue
		}
		for i := 0; i < 2; i++ {
			starter := ev.Participants[i].Metadata.StartingPitcherPlayerName
			if starter == "" {
				continue
			}
			other := NormalizeTeam(ev.Participants[1-i].Metadata.ShortName)
			m.opponents[starter] = other
			m.opposingStarters[other] = starter
		}
	}

	for _, s := range p.Selections {
		if len(s.Participants) == 0 {
			continue
		}
		m.selections = append(m.selections, Selection{
			Player:   s.Participants[0].Name,
			Category: category,
			Label:    s.Label,
			Points:   s.Points,
			Odds:     s.DisplayOdds.American,
		})
	}
	return m, nil
}

var teamFixes = map[string]string{
	"A's": "ATH",
	"ARI": "AZ",
	"WAS": "WSH",
}

// NormalizeTeam maps sportsbook team codes onto the Statcast codes.
func NormalizeTeam(code string) string {
	code = strings.TrimSpace(code)
	if fixed, ok := teamFixes[code]; ok {
		return fixed
	}
	return code
}

// FilterBatterSelections drops Under sides and heavily juiced lines below 1.5.
func FilterBatterSelections(in []Selection) []Selection {
	out := make([]Selection, 0, len(in))
	for _, s := range in {
		if strings.EqualFold(s.Label, "under") {
			continue
		}
		if s.Points < 1.5 {
			price, err := odds.ParseAmerican(s.Odds)
			if err != nil || price < -150 {
				continue
			}
		}
		out = append(out, s)
	}
	return out
}
