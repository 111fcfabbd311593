package evaluate

import (
	"time"

	"github.com/somup27/mlbPropModel/statcast"
)

func gameDay(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

// game builds the pitch rows of one outing. Each plate appearance is a single
// pitch to a new batter; filler rows carry no outcome and only add pitches.
type game struct {
	pitcher  int64
	gameID   int64
	date     time.Time
	hand     statcast.Hand
	home     string
	away     string
	half     statcast.Half
	outcomes []statcast.Code
	pitches  int
}

func (g game) events() statcast.Log {
	hand := g.hand
	if hand == "" {
		hand = statcast.Right
	}
	var out statcast.Log
	for i, c := range g.outcomes {
		out = append(out, statcast.Event{
			PitcherID:   g.pitcher,
			BatterID:    g.gameID*1000 + int64(i),
			GameID:      g.gameID,
			GameDate:    g.date,
			AtBatNumber: i + 1,
			PitchNumber: 1,
			Code:        c,
			PThrows:     hand,
			Stand:       statcast.Right,
			HomeTeam:    g.home,
			AwayTeam:    g.away,
			Half:        g.half,
		})
	}
	last := len(g.outcomes)
	for p := len(out); p < g.pitches; p++ {
		out = append(out, statcast.Event{
			PitcherID:   g.pitcher,
			BatterID:    g.gameID*1000 + int64(last-1),
			GameID:      g.gameID,
			GameDate:    g.date,
			AtBatNumber: last,
			PitchNumber: p + 2,
			PThrows:     hand,
			Stand:       statcast.Right,
			HomeTeam:    g.home,
			AwayTeam:    g.away,
			Half:        g.half,
		})
	}
	return out
}

func repeat(c statcast.Code, n int) []statcast.Code {
	out := make([]statcast.Code, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func concat(parts ...[]statcast.Code) []statcast.Code {
	var out []statcast.Code
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

const (
	aceID      = 100
	otherArmID = 200
)

// aceStarts is three starts against TOR, each with 8 strikeouts, 10 field
// outs and 90 pitches.
func aceStarts(dates ...int) statcast.Log {
	var l statcast.Log
	for i, d := range dates {
		l = append(l, game{
			pitcher:  aceID,
			gameID:   int64(10 + i),
			date:     gameDay(d),
			home:     "NYY",
			away:     "TOR",
			half:     statcast.Top,
			outcomes: concat(repeat(statcast.Strikeout, 8), repeat(statcast.FieldOut, 10)),
			pitches:  90,
		}.events()...)
	}
	return l
}

// bostonVsRighty is BOS batting against another right-hander: 10 plate
// appearances with 3 strikeouts.
func bostonVsRighty() statcast.Log {
	return game{
		pitcher:  otherArmID,
		gameID:   99,
		date:     gameDay(2),
		home:     "TB",
		away:     "BOS",
		half:     statcast.Top,
		outcomes: concat(repeat(statcast.Strikeout, 3), repeat(statcast.FieldOut, 5), repeat(statcast.Single, 2)),
	}.events()
}
