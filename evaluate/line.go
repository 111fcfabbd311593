// Package evaluate turns a player's event history and a sportsbook line into
// five threshold rules and a Target/Pass recommendation.
package evaluate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/somup27/mlbPropModel/stats"
)

// Category is a prop market. Values match the sportsbook and ledger labels.
type Category string

const (
	Strikeouts   Category = "Strikeouts"
	PitchingOuts Category = "Pitching Outs"
	HitsAllowed  Category = "Hits Allowed"
	WalksAllowed Category = "Walks Allowed"
	TotalBases   Category = "Total Bases"
)

// Categories lists every supported market in display order.
var Categories = []Category{Strikeouts, PitchingOuts, HitsAllowed, WalksAllowed, TotalBases}

// ParseCategory accepts a display label or its compact form ("PitchingOuts").
func ParseCategory(s string) (Category, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	for _, c := range Categories {
		if strings.ToLower(strings.ReplaceAll(string(c), " ", "")) == norm {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// ParseDirection accepts "over"/"under" in any case.
func ParseDirection(s string) (stats.Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "over":
		return stats.Over, nil
	case "under":
		return stats.Under, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

// Line is one proposed prop line with its player already resolved.
type Line struct {
	PlayerName string          `json:"player"`
	PlayerID   int64           `json:"playerID"`
	Team       string          `json:"team,omitempty"`
	Opponent   string          `json:"opponent,omitempty"`
	Category   Category        `json:"prop"`
	Value      float64         `json:"line"`
	Direction  stats.Direction `json:"direction"`
	Odds       string          `json:"odds"`

	// OpposingPitcherID is the starter a batter faces; Total Bases only.
	OpposingPitcherID int64 `json:"opposingPitcherID,omitempty"`
}

// Sentinel outcomes. Those matched by NoResult are not faults: callers drop the line.
var (
	ErrInsufficientHistory  = errors.New("evaluate: insufficient history")
	ErrNoEvents             = errors.New("evaluate: no events for player")
	ErrUnsupportedDirection = errors.New("evaluate: direction not supported for category")
	ErrUnknownCategory      = errors.New("evaluate: unknown category")
	ErrInvalidDirection     = errors.New("evaluate: direction must be Over or Under")
)

// NoResult reports whether err means "exclude this line" rather than a failure.
func NoResult(err error) bool {
	return errors.Is(err, ErrInsufficientHistory) ||
		errors.Is(err, ErrNoEvents) ||
		errors.Is(err, ErrUnsupportedDirection)
}
