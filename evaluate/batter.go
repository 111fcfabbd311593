package evaluate

import (
	"sort"

	"github.com/somup27/mlbPropModel/statcast"
	"github.com/somup27/mlbPropModel/stats"
)

// TotalBasesLookback is the number of latest game dates in the batter's rolling window.
const TotalBasesLookback = 10

const (
	StatTBHitRate             = "tb_hit_rate"
	StatRollingAvgTB          = "rolling_avg_tb"
	StatVsHandSplit           = "vs_hand_split"
	StatAvgXSLG               = "avg_xslg"
	StatAvgISO                = "avg_iso"
	StatPitcherXSLGAllowed    = "pitcher_xslg_allowed"
	StatPitcherTBAllowedPerPA = "pitcher_tb_allowed_per_pa"
)

func totalBasesStats(log statcast.Log, line Line) ([]Stat, error) {
	batter := log.ByBatter(line.PlayerID).Sorted()
	pitcher := log.ByPitcher(line.OpposingPitcherID).Sorted()
	if len(batter) == 0 || len(pitcher) == 0 {
		return nil, ErrNoEvents
	}
	pitcherHand := pitcher[0].PThrows
	batterStance := batter[0].Stand

	byDate := totalBasesByDate(batter)
	recent := byDate
	if len(recent) > TotalBasesLookback {
		recent = recent[len(recent)-TotalBasesLookback:]
	}
	over := 0
	for _, tb := range recent {
		if tb > line.Value {
			over++
		}
	}

	split := batter.ThrownBy(pitcherHand)
	batted := split.Filter(statcast.Event.IsBattedBall)
	pitcherSplit := pitcher.FacingStance(batterStance)

	return []Stat{
		{StatTBHitRate, stats.Ratio(float64(over), float64(len(recent)))},
		{StatRollingAvgTB, stats.Mean(recent)},
		{StatVsHandSplit, stats.Mean(totalBasesByDate(split))},
		{StatAvgXSLG, meanXSLG(batted)},
		{StatAvgISO, meanISO(batted)},
		{StatPitcherXSLGAllowed, meanXSLG(pitcherSplit.Filter(statcast.Event.IsBattedBall))},
		{StatPitcherTBAllowedPerPA, totalBasesPerBatterGame(pitcherSplit)},
	}, nil
}

// totalBasesByDate sums total bases per game date, oldest first.
func totalBasesByDate(events statcast.Log) []float64 {
	sums := make(map[string]float64)
	var keys []string
	for _, e := range events {
		k := statcast.DateKey(e.GameDate)
		if _, ok := sums[k]; !ok {
			keys = append(keys, k)
		}
		sums[k] += float64(statcast.BasesFor(e.Code))
	}
	sort.Strings(keys)
	out := make([]float64, len(keys))
	for i, k := range keys {
		out[i] = sums[k]
	}
	return out
}

// totalBasesPerBatterGame averages the total bases allowed to each batter in
// each game, the pitcher-side per-PA proxy.
func totalBasesPerBatterGame(events statcast.Log) float64 {
	type key struct {
		date   string
		batter int64
	}
	sums := make(map[key]float64)
	for _, e := range events {
		sums[key{statcast.DateKey(e.GameDate), e.BatterID}] += float64(statcast.BasesFor(e.Code))
	}
	if len(sums) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range sums {
		total += v
	}
	return total / float64(len(sums))
}

func meanXSLG(events statcast.Log) float64 {
	var xs []float64
	for _, e := range events {
		if e.EstimatedSLG != nil {
			xs = append(xs, *e.EstimatedSLG)
		}
	}
	return stats.Mean(xs)
}

// meanISO averages expected slugging minus expected average over events carrying both.
func meanISO(events statcast.Log) float64 {
	var xs []float64
	for _, e := range events {
		if e.EstimatedSLG != nil && e.EstimatedBA != nil {
			xs = append(xs, *e.EstimatedSLG-*e.EstimatedBA)
		}
	}
	return stats.Mean(xs)
}
