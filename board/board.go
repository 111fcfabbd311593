// Package board runs a dashboard pass: today's lines, resolved players and the
// season's events go in, evaluated rows come out.
package board

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/draftkings"
	"github.com/somup27/mlbPropModel/evaluate"
	"github.com/somup27/mlbPropModel/models"
	"github.com/somup27/mlbPropModel/odds"
	"github.com/somup27/mlbPropModel/statcast"
)

// LineSource returns the lines of a board; *draftkings.Cache satisfies it.
type LineSource interface {
	Get(ctx context.Context, board draftkings.Board) (*draftkings.Lines, error)
}

// PlayerResolver maps a sportsbook name to a player; *mlbstats.Resolver satisfies it.
type PlayerResolver interface {
	Resolve(ctx context.Context, name string) (models.Player, error)
}

// EventSource loads the event log for a date range; *statcast.Store satisfies it.
type EventSource interface {
	Range(ctx context.Context, from, to time.Time) (statcast.Log, error)
}

// UnknownOpponent is shown when the sportsbook lists no opponent for a pitcher.
const UnknownOpponent = "Unknown"

// Row is one evaluated line as the dashboard shows it.
type Row struct {
	Player          string                  `json:"player"`
	PlayerID        int64                   `json:"playerID"`
	Team            string                  `json:"team"`
	Opponent        string                  `json:"opponent"`
	OpposingPitcher string                  `json:"opposingPitcher,omitempty"`
	Prop            evaluate.Category       `json:"prop"`
	Line            float64                 `json:"line"`
	Direction       string                  `json:"direction"`
	Odds            string                  `json:"odds"`
	Stats           []evaluate.Stat         `json:"stats"`
	Rules           []bool                  `json:"rules"`
	RulePassCount   int                     `json:"rulesHit"`
	Recommendation  evaluate.Recommendation `json:"recommendation"`
}

// Report is the output of one run.
type Report struct {
	Board       draftkings.Board `json:"board"`
	Profile     string           `json:"profile"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	LinesAt     time.Time        `json:"linesFetchedAt"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Rows        []Row            `json:"rows"`
	Skipped     int              `json:"skipped"`
}

// Filter keeps rows with at least minRules passes and, when rec is set, that recommendation.
func (r *Report) Filter(minRules int, rec evaluate.Recommendation) []Row {
	out := make([]Row, 0, len(r.Rows))
	for _, row := range r.Rows {
		if row.RulePassCount < minRules {
			continue
		}
		if rec != "" && row.Recommendation != rec {
			continue
		}
		out = append(out, row)
	}
	return out
}

// TopPicks splits the rows that pass all five and exactly four rules.
func (r *Report) TopPicks() (five, four []Row) {
	for _, row := range r.Rows {
		switch row.RulePassCount {
		case 5:
			five = append(five, row)
		case 4:
			four = append(four, row)
		}
	}
	return five, four
}

// Window is the event date range. A zero To means today.
type Window struct {
	From, To time.Time
}

func (w Window) resolve(now time.Time) (time.Time, time.Time) {
	to := w.To
	if to.IsZero() {
		y, m, d := now.Date()
		to = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}
	return w.From, to
}

// Service produces reports.
type Service struct {
	lines   LineSource
	players PlayerResolver
	events  EventSource
	engine  *evaluate.Engine
	window  Window
	log     *zap.Logger
	now     func() time.Time
}

func New(lines LineSource, players PlayerResolver, events EventSource, engine *evaluate.Engine, window Window, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		lines:   lines,
		players: players,
		events:  events,
		engine:  engine,
		window:  window,
		log:     log.With(zap.String("component", "board")),
		now:     time.Now,
	}
}

// Run evaluates every line of board.
func (s *Service) Run(ctx context.Context, board draftkings.Board) (*Report, error) {
	lines, err := s.lines.Get(ctx, board)
	if err != nil {
		return nil, fmt.Errorf("board: lines: %w", err)
	}

	from, to := s.window.resolve(s.now())
	log, err := s.events.Range(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("board: events: %w", err)
	}

	var (
		candidates []candidate
		skipped    int
	)
	switch board {
	case draftkings.Pitchers:
		candidates, skipped = s.pitcherLines(ctx, lines)
	case draftkings.Batters:
		candidates, skipped = s.batterLines(ctx, lines)
	default:
		return nil, fmt.Errorf("board: unknown board %q", board)
	}

	report := &Report{
		Board:       board,
		Profile:     s.engine.Profile().Name,
		From:        statcast.DateKey(from),
		To:          statcast.DateKey(to),
		LinesAt:     lines.FetchedAt,
		GeneratedAt: s.now().UTC(),
		Rows:        []Row{},
	}

	evalLines := make([]evaluate.Line, len(candidates))
	for i, c := range candidates {
		evalLines[i] = c.line
	}
	evaluated, noResult := s.engine.Batch(log, evalLines)
	for _, sk := range noResult {
		if !evaluate.NoResult(sk.Err) {
			s.log.Warn("line not evaluated", zap.String("player", sk.Line.PlayerName), zap.String("prop", string(sk.Line.Category)), zap.Error(sk.Err))
		}
	}

	byLine := make(map[evaluate.Line]string, len(candidates))
	for _, c := range candidates {
		byLine[c.line] = c.opposingPitcher
	}
	for _, ev := range evaluated {
		report.Rows = append(report.Rows, Row{
			Player:          ev.Line.PlayerName,
			PlayerID:        ev.Line.PlayerID,
			Team:            ev.Line.Team,
			Opponent:        ev.Line.Opponent,
			OpposingPitcher: byLine[ev.Line],
			Prop:            ev.Result.Category,
			Line:            ev.Line.Value,
			Direction:       string(ev.Result.Direction),
			Odds:            odds.Normalize(ev.Line.Odds),
			Stats:           ev.Result.Stats,
			Rules:           ev.Result.Rules,
			RulePassCount:   ev.Result.RulePassCount,
			Recommendation:  ev.Result.Recommendation,
		})
	}
	report.Skipped = skipped + len(noResult)

	s.log.Info("board evaluated",
		zap.String("board", string(board)),
		zap.Int("lines", len(lines.Selections)),
		zap.Int("rows", len(report.Rows)),
		zap.Int("skipped", report.Skipped),
		zap.Int("events", len(log)),
	)
	return report, nil
}

type candidate struct {
	line            evaluate.Line
	opposingPitcher string
}

func (s *Service) pitcherLines(ctx context.Context, lines *draftkings.Lines) ([]candidate, int) {
	var out []candidate
	skipped := 0
	for _, sel := range lines.Selections {
		dir, err := evaluate.ParseDirection(sel.Label)
		if err != nil {
			skipped++
			continue
		}
		p, err := s.players.Resolve(ctx, sel.Player)
		if err != nil {
			s.log.Debug("pitcher not resolved", zap.String("player", sel.Player), zap.Error(err))
			skipped++
			continue
		}
		opp, ok := lines.Opponents[sel.Player]
		if !ok {
			opp = UnknownOpponent
		}
		out = append(out, candidate{line: evaluate.Line{
			PlayerName: sel.Player,
			PlayerID:   p.MLBAMID,
			Team:       p.Team,
			Opponent:   opp,
			Category:   sel.Category,
			Value:      sel.Points,
			Direction:  dir,
			Odds:       sel.Odds,
		}})
	}
	return out, skipped
}

func (s *Service) batterLines(ctx context.Context, lines *draftkings.Lines) ([]candidate, int) {
	var out []candidate
	skipped := 0
	for _, sel := range lines.Selections {
		dir, err := evaluate.ParseDirection(sel.Label)
		if err != nil {
			skipped++
			continue
		}
		batter, err := s.players.Resolve(ctx, sel.Player)
		if err != nil {
			s.log.Debug("batter not resolved", zap.String("player", sel.Player), zap.Error(err))
			skipped++
			continue
		}
		starter, ok := lines.OpposingStarters[batter.Team]
		if batter.Team == "" || !ok {
			skipped++
			continue
		}
		pitcher, err := s.players.Resolve(ctx, starter)
		if err != nil {
			s.log.Debug("opposing pitcher not resolved", zap.String("player", starter), zap.Error(err))
			skipped++
			continue
		}
		out = append(out, candidate{
			line: evaluate.Line{
				PlayerName:        sel.Player,
				PlayerID:          batter.MLBAMID,
				Team:              batter.Team,
				Opponent:          pitcher.Team,
				Category:          sel.Category,
				Value:             sel.Points,
				Direction:         dir,
				Odds:              sel.Odds,
				OpposingPitcherID: pitcher.MLBAMID,
			},
			opposingPitcher: starter,
		})
	}
	return out, skipped
}
