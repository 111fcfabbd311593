package evaluate

import (
	"fmt"
	"sort"
)

// Op is a comparison applied to a statistic.
type Op string

const (
	GT Op = ">"
	GE Op = ">="
	LT Op = "<"
	LE Op = "<="
)

// Check compares one named statistic against a threshold. With PlusLine the
// threshold is the line value plus Value.
type Check struct {
	Stat     string
	Op       Op
	Value    float64
	PlusLine bool
}

// Eval applies the check; a missing statistic fails.
func (c Check) Eval(st []Stat, line float64) bool {
	x, ok := lookup(st, c.Stat)
	if !ok {
		return false
	}
	threshold := c.Value
	if c.PlusLine {
		threshold += line
	}
	switch c.Op {
	case GT:
		return x > threshold
	case GE:
		return x >= threshold
	case LT:
		return x < threshold
	case LE:
		return x <= threshold
	}
	return false
}

// Rule passes when any of its checks passes.
type Rule struct {
	Name string
	Any  []Check
}

func (r Rule) Eval(st []Stat, line float64) bool {
	for _, c := range r.Any {
		if c.Eval(st, line) {
			return true
		}
	}
	return false
}

// ThresholdProfile is the rule set for one category. A nil Under means the
// category only evaluates Over lines.
type ThresholdProfile struct {
	Over  []Rule
	Under []Rule

	// DirectionalHitRate makes the hit-rate statistic count games below the
	// line for Under bets instead of games at or above it.
	DirectionalHitRate bool
}

// Profile is a named set of threshold profiles covering every category.
type Profile struct {
	Name       string
	Categories map[Category]ThresholdProfile
}

const (
	ProfileStandard    = "standard"
	ProfileDashboardV2 = "dashboard-v2"
)

func one(name, stat string, op Op, v float64) Rule {
	return Rule{Name: name, Any: []Check{{Stat: stat, Op: op, Value: v}}}
}

func rel(name, stat string, op Op, v float64) Rule {
	return Rule{Name: name, Any: []Check{{Stat: stat, Op: op, Value: v, PlusLine: true}}}
}

func strikeoutRules(rollingOver, hitOver, rollingUnder, hitUnder float64) ThresholdProfile {
	return ThresholdProfile{
		Over: []Rule{
			one("season_k9", StatSeasonK9, GT, 9.0),
			one("rolling_k9", StatRollingK9, GT, rollingOver),
			one("opp_k_pct", StatOppKPct, GT, 0.24),
			one("median_pitch_count", StatMedianPitchCount, GE, 85),
			one("hit_rate", StatHitRate, GE, hitOver),
		},
		Under: []Rule{
			one("season_k9", StatSeasonK9, LT, 8.0),
			one("rolling_k9", StatRollingK9, LT, rollingUnder),
			one("opp_k_pct", StatOppKPct, LT, 0.21),
			one("median_pitch_count", StatMedianPitchCount, LT, 80),
			one("hit_rate", StatHitRate, LT, hitUnder),
		},
	}
}

func pitchingOutsRules(pitchesOver, hitOver, whipOver, pitchesUnder, hitUnder float64, directional bool) ThresholdProfile {
	return ThresholdProfile{
		Over: []Rule{
			rel("season_outs_per_start", StatSeasonOutsPerStart, GT, 0),
			rel("rolling_outs3", StatRollingOuts3, GT, 0),
			one("avg_pitch_count_3", StatAvgPitchCount3, GE, pitchesOver),
			one("outs_hit_rate", StatOutsHitRate, GE, hitOver),
			one("opp_whip", StatOppWHIP, LE, whipOver),
		},
		Under: []Rule{
			rel("season_outs_per_start", StatSeasonOutsPerStart, LT, 0),
			rel("rolling_outs3", StatRollingOuts3, LT, 0),
			one("avg_pitch_count_3", StatAvgPitchCount3, LE, pitchesUnder),
			one("outs_hit_rate", StatOutsHitRate, LE, hitUnder),
			one("opp_whip", StatOppWHIP, GE, 1.35),
		},
		DirectionalHitRate: directional,
	}
}

var hitsAllowedRules = ThresholdProfile{
	Over: []Rule{
		one("season_h9", StatSeasonH9, GT, 8.5),
		one("rolling_h9", StatRollingH9, GT, 8.8),
		rel("median_hits_allowed", StatMedianHitsAllowed, GE, 0),
		one("opp_avg_vs_hand", StatOppAvgVsHand, GE, 0.255),
		one("ha_hit_rate", StatHAHitRate, GE, 0.65),
	},
	Under: []Rule{
		one("season_h9", StatSeasonH9, LT, 7.5),
		one("rolling_h9", StatRollingH9, LT, 7.2),
		rel("median_hits_allowed", StatMedianHitsAllowed, LT, 0),
		one("opp_avg_vs_hand", StatOppAvgVsHand, LE, 0.24),
		one("ha_hit_rate", StatHAHitRate, LE, 0.35),
	},
}

var walksAllowedRules = ThresholdProfile{
	Over: []Rule{
		one("season_bb9", StatSeasonBB9, GT, 3.2),
		one("rolling_bb9", StatRollingBB9, GT, 3.6),
		rel("median_walks_l3", StatMedianWalksL3, GE, 0),
		one("opp_bb_pct", StatOppBBPct, GT, 0.09),
		one("walks_hit_rate", StatWalksHitRate, GE, 0.65),
	},
	Under: []Rule{
		one("season_bb9", StatSeasonBB9, LT, 2.2),
		one("rolling_bb9", StatRollingBB9, LT, 2.4),
		rel("median_walks_l3", StatMedianWalksL3, LT, 0),
		one("opp_bb_pct", StatOppBBPct, LT, 0.075),
		one("walks_hit_rate", StatWalksHitRate, LE, 0.35),
	},
}

var totalBasesRules = ThresholdProfile{
	Over: []Rule{
		one("hit_rate", StatTBHitRate, GE, 0.65),
		rel("rolling_avg_tb", StatRollingAvgTB, GE, 0.25),
		rel("vs_hand_split", StatVsHandSplit, GE, 0.25),
		{Name: "xslg_or_iso", Any: []Check{
			{Stat: StatAvgXSLG, Op: GE, Value: 0.450},
			{Stat: StatAvgISO, Op: GE, Value: 0.180},
		}},
		{Name: "pitcher_weakness", Any: []Check{
			{Stat: StatPitcherXSLGAllowed, Op: GE, Value: 0.450},
			{Stat: StatPitcherTBAllowedPerPA, Op: GE, Value: 1.0},
		}},
	},
}

// Standard is the rule set of the main pitcher and batter boards.
var Standard = Profile{
	Name: ProfileStandard,
	Categories: map[Category]ThresholdProfile{
		Strikeouts:   strikeoutRules(9.5, 0.65, 8.0, 0.35),
		PitchingOuts: pitchingOutsRules(85, 0.65, 1.11, 83, 0.35, false),
		HitsAllowed:  hitsAllowedRules,
		WalksAllowed: walksAllowedRules,
		TotalBases:   totalBasesRules,
	},
}

// DashboardV2 is the looser strikeout and pitching-outs variant; the other
// categories share the standard thresholds.
var DashboardV2 = Profile{
	Name: ProfileDashboardV2,
	Categories: map[Category]ThresholdProfile{
		Strikeouts:   strikeoutRules(10.0, 0.6, 7.5, 0.4),
		PitchingOuts: pitchingOutsRules(90, 0.6, 1.2, 80, 0.4, true),
		HitsAllowed:  hitsAllowedRules,
		WalksAllowed: walksAllowedRules,
		TotalBases:   totalBasesRules,
	},
}

var profiles = map[string]Profile{
	ProfileStandard:    Standard,
	ProfileDashboardV2: DashboardV2,
}

// ProfileByName returns a built-in profile.
func ProfileByName(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("evaluate: unknown threshold profile %q (have %v)", name, ProfileNames())
	}
	return p, nil
}

// ProfileNames lists the built-in profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
