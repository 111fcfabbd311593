package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Player caches a resolved sportsbook name to MLBAM id mapping.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:pl"`

	Name       string    `bun:"name,pk" json:"name"`
	MLBAMID    int64     `bun:"mlbam_id,notnull" json:"mlbamID"`
	FullName   string    `bun:"full_name,notnull" json:"fullName"`
	Team       string    `bun:"team" json:"team,omitempty"`
	Position   string    `bun:"position" json:"position,omitempty"`
	ResolvedAt time.Time `bun:"resolved_at,notnull,default:current_timestamp" json:"resolvedAt"`
}
