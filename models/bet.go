package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Bet is a placed wager in the personal ledger. A nil Grade means ungraded.
type Bet struct {
	bun.BaseModel `bun:"table:bets,alias:b"`

	ID        uuid.UUID       `bun:"id,pk,type:uuid" json:"id"`
	Username  string          `bun:"username,notnull" json:"-"`
	Date      string          `bun:"date,notnull,type:date" json:"date"`
	Player    string          `bun:"player,notnull" json:"player"`
	PropType  string          `bun:"prop_type,notnull" json:"propType"`
	Line      float64         `bun:"line,notnull" json:"line"`
	Direction string          `bun:"direction,notnull" json:"direction"`
	Odds      string          `bun:"odds,notnull" json:"odds"`
	Stake     decimal.Decimal `bun:"stake,notnull,type:numeric(12,2)" json:"stake"`
	Grade     *string         `bun:"grade" json:"grade,omitempty"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"timestamp"`
	GradedAt  *time.Time      `bun:"graded_at" json:"gradedAt,omitempty"`
}
