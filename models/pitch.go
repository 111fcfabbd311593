package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Pitch is one Statcast row: a single pitch, with the plate-appearance outcome
// filled in on the final pitch of the at-bat.
type Pitch struct {
	bun.BaseModel `bun:"table:pitches,alias:p"`

	GameID       int64     `bun:"game_pk,pk" json:"gamePk"`
	AtBatNumber  int       `bun:"at_bat_number,pk" json:"atBatNumber"`
	PitchNumber  int       `bun:"pitch_number,pk" json:"pitchNumber"`
	GameDate     time.Time `bun:"game_date,notnull,type:date" json:"gameDate"`
	PitcherID    int64     `bun:"pitcher,notnull" json:"pitcher"`
	BatterID     int64     `bun:"batter,notnull" json:"batter"`
	Events       *string   `bun:"events" json:"events,omitempty"`
	PThrows      string    `bun:"p_throws,notnull" json:"pThrows"`
	Stand        string    `bun:"stand,notnull" json:"stand"`
	HomeTeam     string    `bun:"home_team,notnull" json:"homeTeam"`
	AwayTeam     string    `bun:"away_team,notnull" json:"awayTeam"`
	InningTopBot string    `bun:"inning_topbot,notnull" json:"inningTopbot"`
	BBType       *string   `bun:"bb_type" json:"bbType,omitempty"`
	EstimatedSLG *float64  `bun:"estimated_slg_using_speedangle" json:"estimatedSlg,omitempty"`
	EstimatedBA  *float64  `bun:"estimated_ba_using_speedangle" json:"estimatedBa,omitempty"`
}
