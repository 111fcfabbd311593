// Package stats holds the reducers shared by every prop evaluator. Inputs are
// never modified, and every ratio with a zero denominator is 0.
package stats

import (
	"sort"

	"github.com/somup27/mlbPropModel/statcast"
)

// Direction is the side of a line a bet takes.
type Direction string

const (
	Over  Direction = "Over"
	Under Direction = "Under"
)

// TotalOuts sums the outs recorded across events.
func TotalOuts(events statcast.Log) int {
	n := 0
	for _, e := range events {
		n += statcast.OutsFor(e.Code)
	}
	return n
}

// InningsPitched is total outs over three.
func InningsPitched(events statcast.Log) float64 {
	return float64(TotalOuts(events)) / 3
}

// RatePerNine scales a count to nine innings.
func RatePerNine(count int, inningsPitched float64) float64 {
	if inningsPitched <= 0 {
		return 0
	}
	return float64(count) / inningsPitched * 9
}

// PerNine counts events matching pred and scales by the innings pitched in the same events.
func PerNine(events statcast.Log, pred statcast.Predicate) float64 {
	return RatePerNine(events.Count(pred), InningsPitched(events))
}

// RecentWindow keeps events dated on the n latest distinct game dates. Fewer
// dates than n returns every event.
func RecentWindow(events statcast.Log, n int) statcast.Log {
	dates := events.DistinctDates()
	if len(dates) <= n {
		return events.Filter(func(statcast.Event) bool { return true })
	}
	keep := make(map[string]struct{}, n)
	for _, d := range dates[len(dates)-n:] {
		keep[statcast.DateKey(d)] = struct{}{}
	}
	return events.Filter(func(e statcast.Event) bool {
		_, ok := keep[statcast.DateKey(e.GameDate)]
		return ok
	})
}

// PerGameCount groups events by game and counts the matches of pred in each,
// ordered by game date then game id. Games without a match count 0.
func PerGameCount(events statcast.Log, pred statcast.Predicate) []int {
	type game struct {
		id    int64
		date  string
		count int
	}
	index := make(map[int64]int)
	var games []game
	for _, e := range events {
		i, ok := index[e.GameID]
		if !ok {
			i = len(games)
			index[e.GameID] = i
			games = append(games, game{id: e.GameID, date: statcast.DateKey(e.GameDate)})
		}
		if pred(e) {
			games[i].count++
		}
	}
	sort.SliceStable(games, func(i, j int) bool {
		if games[i].date != games[j].date {
			return games[i].date < games[j].date
		}
		return games[i].id < games[j].id
	})

	out := make([]int, len(games))
	for i, g := range games {
		out[i] = g.count
	}
	return out
}

// PitchesPerGame returns the number of pitch rows in each game.
func PitchesPerGame(events statcast.Log) []int {
	return PerGameCount(events, func(statcast.Event) bool { return true })
}

// NonZero drops zero counts, matching a group-by over only the matching rows.
func NonZero(counts []int) []int {
	out := make([]int, 0, len(counts))
	for _, c := range counts {
		if c != 0 {
			out = append(out, c)
		}
	}
	return out
}

// Last returns the final n counts, or all of them when there are fewer.
func Last(counts []int, n int) []int {
	if len(counts) <= n {
		return counts
	}
	return counts[len(counts)-n:]
}

// Floats converts counts for the float reducers.
func Floats(counts []int) []float64 {
	out := make([]float64, len(counts))
	for i, c := range counts {
		out[i] = float64(c)
	}
	return out
}

// Median of xs; an empty slice is 0.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := make([]float64, len(xs))
	copy(s, xs)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// MedianInts is Median over integer counts.
func MedianInts(counts []int) float64 {
	return Median(Floats(counts))
}

// Mean of xs; an empty slice is 0.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// Ratio divides, returning 0 for a zero denominator.
func Ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// HitRateVsThreshold is the share of games whose count reaches line (Over) or
// stays below it (Under).
func HitRateVsThreshold(counts []int, line float64, dir Direction) float64 {
	if len(counts) == 0 {
		return 0
	}
	return float64(GamesVsThreshold(counts, line, dir)) / float64(len(counts))
}

// GamesVsThreshold counts the games that satisfy the line in direction dir.
func GamesVsThreshold(counts []int, line float64, dir Direction) int {
	n := 0
	for _, c := range counts {
		v := float64(c)
		if (dir == Under && v < line) || (dir != Under && v >= line) {
			n++
		}
	}
	return n
}

// PlateAppearances counts batter changes in chronological order. The first
// event always opens a plate appearance.
func PlateAppearances(events statcast.Log) int {
	sorted := events.Sorted()
	n := 0
	var prev int64
	for i, e := range sorted {
		if i == 0 || e.BatterID != prev {
			n++
		}
		prev = e.BatterID
	}
	return n
}

// OpponentSplit selects the events where team batted against pitchers throwing with hand.
func OpponentSplit(log statcast.Log, team string, hand statcast.Hand) statcast.Log {
	return log.Filter(func(e statcast.Event) bool {
		return e.BattingTeam() == team && e.PThrows == hand
	})
}

// OpponentSplitRate is count(pred) per plate appearance for team batting
// against hand. No plate appearances yields 0.
func OpponentSplitRate(log statcast.Log, team string, hand statcast.Hand, pred statcast.Predicate) float64 {
	split := OpponentSplit(log, team, hand)
	pas := PlateAppearances(split)
	if pas == 0 {
		return 0
	}
	return float64(split.Count(pred)) / float64(pas)
}
