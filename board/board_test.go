package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somup27/mlbPropModel/draftkings"
	"github.com/somup27/mlbPropModel/evaluate"
	"github.com/somup27/mlbPropModel/mlbstats"
	"github.com/somup27/mlbPropModel/models"
	"github.com/somup27/mlbPropModel/statcast"
)

type fakeLines map[draftkings.Board]*draftkings.Lines

func (f fakeLines) Get(_ context.Context, b draftkings.Board) (*draftkings.Lines, error) {
	l, ok := f[b]
	if !ok {
		return nil, errors.New("no lines")
	}
	return l, nil
}

type fakePlayers map[string]models.Player

func (f fakePlayers) Resolve(_ context.Context, name string) (models.Player, error) {
	p, ok := f[name]
	if !ok {
		return models.Player{}, mlbstats.ErrPlayerNotFound
	}
	return p, nil
}

type fakeEvents struct {
	log      statcast.Log
	from, to time.Time
}

func (f *fakeEvents) Range(_ context.Context, from, to time.Time) (statcast.Log, error) {
	f.from, f.to = from, to
	return f.log, nil
}

func day(d int) time.Time {
	return time.Date(2025, time.June, d, 0, 0, 0, 0, time.UTC)
}

// start is one outing for pitcher: 8 strikeouts, 10 field outs and 90 pitches.
func start(pitcher, gameID int64, d int) statcast.Log {
	var l statcast.Log
	for i := 0; i < 90; i++ {
		code := statcast.Code("")
		switch {
		case i < 8:
			code = statcast.Strikeout
		case i < 18:
			code = statcast.FieldOut
		}
		ab := i + 1
		if ab > 18 {
			ab = 18
		}
		l = append(l, statcast.Event{
			PitcherID: pitcher, BatterID: gameID*100 + int64(ab), GameID: gameID, GameDate: day(d),
			AtBatNumber: ab, PitchNumber: i + 1, Code: code, PThrows: statcast.Right, Stand: statcast.Right,
			HomeTeam: "NYY", AwayTeam: "TOR", Half: statcast.Top,
		})
	}
	return l
}

func torontoVsRighty() statcast.Log {
	var l statcast.Log
	for i := 0; i < 10; i++ {
		code := statcast.FieldOut
		if i < 3 {
			code = statcast.Strikeout
		}
		l = append(l, statcast.Event{
			PitcherID: 999, BatterID: int64(5000 + i), GameID: 77, GameDate: day(2),
			AtBatNumber: i + 1, PitchNumber: 1, Code: code, PThrows: statcast.Right,
			HomeTeam: "BAL", AwayTeam: "TOR", Half: statcast.Top,
		})
	}
	return l
}

func TestPitcherBoard(t *testing.T) {
	var log statcast.Log
	log = append(log, start(100, 1, 1)...)
	log = append(log, start(100, 2, 6)...)
	log = append(log, start(100, 3, 11)...)
	log = append(log, torontoVsRighty()...)
	events := &fakeEvents{log: log}

	lines := fakeLines{draftkings.Pitchers: {
		Board: draftkings.Pitchers,
		Selections: []draftkings.Selection{
			{Player: "Gerrit Cole", Category: evaluate.Strikeouts, Label: "Over", Points: 5.5, Odds: "−120"},
			{Player: "Gerrit Cole", Category: evaluate.Strikeouts, Label: "Under", Points: 5.5, Odds: "+100"},
			{Player: "Nobody Known", Category: evaluate.Strikeouts, Label: "Over", Points: 4.5, Odds: "+100"},
			{Player: "Rookie Arm", Category: evaluate.Strikeouts, Label: "Over", Points: 4.5, Odds: "+100"},
		},
		Opponents: map[string]string{"Gerrit Cole": "TOR"},
	}}
	players := fakePlayers{
		"Gerrit Cole": {Name: "Gerrit Cole", MLBAMID: 100, Team: "NYY"},
		"Rookie Arm":  {Name: "Rookie Arm", MLBAMID: 555, Team: "MIA"},
	}

	svc := New(lines, players, events, evaluate.NewEngine(evaluate.Standard), Window{From: day(1)}, nil)
	svc.now = func() time.Time { return time.Date(2025, 6, 20, 15, 4, 0, 0, time.Local) }

	r, err := svc.Run(context.Background(), draftkings.Pitchers)
	require.NoError(t, err)
	assert.Equal(t, day(20), events.to)
	assert.Equal(t, "2025-06-01", r.From)
	assert.Equal(t, "standard", r.Profile)
	assert.Equal(t, 2, r.Skipped)

	require.Len(t, r.Rows, 2)
	over := r.Rows[0]
	assert.Equal(t, "NYY", over.Team)
	assert.Equal(t, "TOR", over.Opponent)
	assert.Equal(t, "-120", over.Odds)
	assert.Equal(t, 5, over.RulePassCount)
	assert.Equal(t, evaluate.Target, over.Recommendation)
	assert.Equal(t, "Under", r.Rows[1].Direction)
	assert.Equal(t, evaluate.Pass, r.Rows[1].Recommendation)

	five, four := r.TopPicks()
	assert.Len(t, five, 1)
	assert.Empty(t, four)
	assert.Len(t, r.Filter(0, evaluate.Pass), 1)
	assert.Len(t, r.Filter(4, ""), 1)
}

func TestBatterBoard(t *testing.T) {
	var log statcast.Log
	for d := 1; d <= 4; d++ {
		log = append(log, statcast.Event{
			PitcherID: 300, BatterID: 7, GameID: int64(d), GameDate: day(d), AtBatNumber: 1, PitchNumber: 1,
			Code: statcast.Double, PThrows: statcast.Right, Stand: statcast.Left, HomeTeam: "NYY", AwayTeam: "BOS", Half: statcast.Bottom,
		})
	}
	events := &fakeEvents{log: log}

	lines := fakeLines{draftkings.Batters: {
		Board: draftkings.Batters,
		Selections: []draftkings.Selection{
			{Player: "Aaron Judge", Category: evaluate.TotalBases, Label: "Over", Points: 1.5, Odds: "+105"},
			{Player: "Free Agent", Category: evaluate.TotalBases, Label: "Over", Points: 1.5, Odds: "+105"},
		},
		OpposingStarters: map[string]string{"NYY": "Brayan Bello"},
	}}
	players := fakePlayers{
		"Aaron Judge":  {Name: "Aaron Judge", MLBAMID: 7, Team: "NYY"},
		"Free Agent":   {Name: "Free Agent", MLBAMID: 8},
		"Brayan Bello": {Name: "Brayan Bello", MLBAMID: 300, Team: "BOS"},
	}

	r, err := New(lines, players, events, evaluate.NewEngine(evaluate.DashboardV2), Window{From: day(1), To: day(30)}, nil).
		Run(context.Background(), draftkings.Batters)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Skipped)
	require.Len(t, r.Rows, 1)
	row := r.Rows[0]
	assert.Equal(t, "BOS", row.Opponent)
	assert.Equal(t, "Brayan Bello", row.OpposingPitcher)
	assert.Equal(t, evaluate.TotalBases, row.Prop)
	assert.Len(t, row.Rules, 5)
}

func TestRunPropagatesLineErrors(t *testing.T) {
	_, err := New(fakeLines{}, fakePlayers{}, &fakeEvents{}, evaluate.NewEngine(evaluate.Standard), Window{}, nil).
		Run(context.Background(), draftkings.Pitchers)
	assert.Error(t, err)
}
