// Package ledger records placed bets and grades them.
package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/somup27/mlbPropModel/evaluate"
	"github.com/somup27/mlbPropModel/models"
	"github.com/somup27/mlbPropModel/odds"
)

// Grades.
const (
	Win  = "W"
	Loss = "L"
	Push = "P"
)

var (
	ErrAlreadyGraded = errors.New("ledger: bet already graded")
	ErrNotFound      = errors.New("ledger: bet not found")
	ErrInvalidBet    = errors.New("ledger: invalid bet")
	ErrInvalidGrade  = errors.New("ledger: grade must be W, L or P")
)

// ParseGrade accepts W, L or P.
func ParseGrade(s string) (string, error) {
	switch s {
	case Win, Loss, Push:
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidGrade, s)
}

// Payout is the profit of a graded bet. Ungraded bets and unreadable odds pay 0.
func Payout(b models.Bet) decimal.Decimal {
	if b.Grade == nil {
		return decimal.Zero
	}
	switch *b.Grade {
	case Loss:
		return b.Stake.Neg()
	case Win:
		n, err := odds.ParseAmerican(b.Odds)
		if err != nil {
			return decimal.Zero
		}
		return odds.Win(b.Stake, n)
	}
	return decimal.Zero
}

// Validate checks a new bet and normalizes its prop, direction and odds.
// A bet recorded after the game may already carry its grade.
func Validate(b *models.Bet) error {
	if b.Player == "" {
		return fmt.Errorf("%w: player is required", ErrInvalidBet)
	}
	if _, err := time.Parse("2006-01-02", b.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidBet)
	}
	cat, err := evaluate.ParseCategory(b.PropType)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}
	dir, err := evaluate.ParseDirection(b.Direction)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}
	if _, err := odds.ParseAmerican(b.Odds); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBet, err)
	}
	if !b.Stake.IsPositive() {
		return fmt.Errorf("%w: stake must be positive", ErrInvalidBet)
	}
	if b.Line < 0 {
		return fmt.Errorf("%w: line must not be negative", ErrInvalidBet)
	}
	if b.Grade != nil {
		g, err := ParseGrade(*b.Grade)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidBet, err)
		}
		b.Grade = &g
	}
	b.PropType = string(cat)
	b.Direction = string(dir)
	b.Odds = odds.Normalize(b.Odds)
	return nil
}

// Summary aggregates graded bets.
type Summary struct {
	Bets   int             `json:"bets"`
	Wins   int             `json:"wins"`
	Losses int             `json:"losses"`
	Pushes int             `json:"pushes"`
	Staked decimal.Decimal `json:"staked"`
	Profit decimal.Decimal `json:"profit"`
}

// Summarize totals the graded bets among bets.
func Summarize(bets []models.Bet) Summary {
	s := Summary{Staked: decimal.Zero, Profit: decimal.Zero}
	for _, b := range bets {
		if b.Grade == nil {
			continue
		}
		s.Bets++
		switch *b.Grade {
		case Win:
			s.Wins++
		case Loss:
			s.Losses++
		case Push:
			s.Pushes++
		}
		s.Staked = s.Staked.Add(b.Stake)
		s.Profit = s.Profit.Add(Payout(b))
	}
	return s
}
