package evaluate

import (
	"fmt"

	"github.com/somup27/mlbPropModel/statcast"
	"github.com/somup27/mlbPropModel/stats"
)

// Stat is one named statistic of a result, kept in display order.
type Stat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func lookup(st []Stat, name string) (float64, bool) {
	for _, s := range st {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// Result is the evaluation of one line.
type Result struct {
	Category       Category        `json:"prop"`
	Direction      stats.Direction `json:"direction"`
	Stats          []Stat          `json:"stats"`
	Rules          []bool          `json:"rules"`
	RulePassCount  int             `json:"rulePassCount"`
	Recommendation Recommendation  `json:"recommendation"`
}

// Stat returns a statistic by name.
func (r Result) Stat(name string) (float64, bool) {
	return lookup(r.Stats, name)
}

// Engine evaluates lines against one threshold profile. It holds no mutable
// state and may be shared between goroutines.
type Engine struct {
	profile Profile
}

// NewEngine returns an engine for profile.
func NewEngine(profile Profile) *Engine {
	return &Engine{profile: profile}
}

// Profile returns the profile the engine was built with.
func (e *Engine) Profile() Profile {
	return e.profile
}

// Evaluate computes the statistics and rules for line over the full-season log.
// The log is read, never modified.
func (e *Engine) Evaluate(log statcast.Log, line Line) (Result, error) {
	tp, ok := e.profile.Categories[line.Category]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCategory, line.Category)
	}

	dir := line.Direction
	if dir == "" {
		dir = stats.Over
	}
	if dir != stats.Over && dir != stats.Under {
		return Result{}, fmt.Errorf("%w: %q", ErrInvalidDirection, line.Direction)
	}
	line.Direction = dir

	rules := tp.Over
	if dir == stats.Under {
		if tp.Under == nil {
			return Result{}, fmt.Errorf("%w: %s %s", ErrUnsupportedDirection, line.Category, line.Direction)
		}
		rules = tp.Under
	}

	var (
		st  []Stat
		err error
	)
	switch line.Category {
	case Strikeouts:
		st, err = strikeoutStats(log, line)
	case PitchingOuts:
		st, err = pitchingOutsStats(log, line, tp.DirectionalHitRate)
	case HitsAllowed:
		st, err = hitsAllowedStats(log, line)
	case WalksAllowed:
		st, err = walksAllowedStats(log, line)
	case TotalBases:
		st, err = totalBasesStats(log, line)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownCategory, line.Category)
	}
	if err != nil {
		return Result{}, err
	}

	passed := make([]bool, len(rules))
	for i, r := range rules {
		passed[i] = r.Eval(st, line.Value)
	}
	n := CountPassed(passed)

	return Result{
		Category:       line.Category,
		Direction:      dir,
		Stats:          st,
		Rules:          passed,
		RulePassCount:  n,
		Recommendation: Recommend(n),
	}, nil
}

// Evaluation pairs a line with its result.
type Evaluation struct {
	Line   Line   `json:"line"`
	Result Result `json:"result"`
}

// Skipped records a line that produced no result.
type Skipped struct {
	Line Line
	Err  error
}

// Batch evaluates lines in order. Lines without a result are returned in
// skipped rather than failing the batch.
func (e *Engine) Batch(log statcast.Log, lines []Line) (evaluated []Evaluation, skipped []Skipped) {
	for _, l := range lines {
		res, err := e.Evaluate(log, l)
		if err != nil {
			skipped = append(skipped, Skipped{Line: l, Err: err})
			continue
		}
		evaluated = append(evaluated, Evaluation{Line: l, Result: res})
	}
	return evaluated, skipped
}
