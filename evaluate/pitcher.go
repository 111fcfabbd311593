package evaluate

import (
	"github.com/somup27/mlbPropModel/statcast"
	"github.com/somup27/mlbPropModel/stats"
)

const (
	// RecentGames is the rolling window, in distinct game dates.
	RecentGames = 3

	// MinHistoryDates is required for strikeout and walk evaluation.
	MinHistoryDates = 3

	// FallbackOpponentWHIP is used when the opponent split is empty.
	FallbackOpponentWHIP = 2.0

	// FallbackOpponentAVG is used when the opponent has no at-bats in the split.
	FallbackOpponentAVG = 0.25
)

// Statistic names.
const (
	StatSeasonK9         = "season_k9"
	StatRollingK9        = "rolling_k9"
	StatOppKPct          = "opp_k_pct"
	StatMedianPitchCount = "median_pitch_count"
	StatHitRate          = "hit_rate"

	StatSeasonOutsPerStart = "season_outs_per_start"
	StatRollingOuts3       = "rolling_outs3"
	StatAvgPitchCount3     = "avg_pitch_count_3"
	StatOutsHitRate        = "outs_hit_rate"
	StatOppWHIP            = "opp_whip"

	StatSeasonH9          = "season_h9"
	StatRollingH9         = "rolling_h9"
	StatMedianHitsAllowed = "median_hits_allowed"
	StatOppAvgVsHand      = "opp_avg_vs_hand"
	StatHAHitRate         = "ha_hit_rate"

	StatSeasonBB9     = "season_bb9"
	StatRollingBB9    = "rolling_bb9"
	StatMedianWalksL3 = "median_walks_l3"
	StatOppBBPct      = "opp_bb_pct"
	StatWalksHitRate  = "walks_hit_rate"
)

var (
	isStrikeout = statcast.Is(statcast.Strikeout)
	isWalk      = statcast.Outcome(statcast.IsWalk)
	isHit       = statcast.Outcome(statcast.IsHit)
	isOut       = statcast.Outcome(statcast.IsOut)
	isAtBat     = statcast.Outcome(statcast.IsAtBat)
	isFreePass  = statcast.Outcome(statcast.IsWalkOrHBP)
)

// pitcherHistory returns the pitcher's events in order, the throwing hand and
// the recent window.
func pitcherHistory(log statcast.Log, id int64) (season statcast.Log, hand statcast.Hand, recent statcast.Log) {
	season = log.ByPitcher(id).Sorted()
	if len(season) == 0 {
		return season, "", season
	}
	return season, season[0].PThrows, stats.RecentWindow(season, RecentGames)
}

func strikeoutStats(log statcast.Log, line Line) ([]Stat, error) {
	season, hand, recent := pitcherHistory(log, line.PlayerID)
	if len(season.DistinctDates()) < MinHistoryDates {
		return nil, ErrInsufficientHistory
	}

	perGame := stats.PerGameCount(season, isStrikeout)
	return []Stat{
		{StatSeasonK9, stats.PerNine(season, isStrikeout)},
		{StatRollingK9, stats.PerNine(recent, isStrikeout)},
		{StatOppKPct, stats.OpponentSplitRate(log, line.Opponent, hand, isStrikeout)},
		{StatMedianPitchCount, stats.MedianInts(stats.PitchesPerGame(recent))},
		{StatHitRate, stats.HitRateVsThreshold(perGame, line.Value, stats.Over)},
	}, nil
}

func pitchingOutsStats(log statcast.Log, line Line, directional bool) ([]Stat, error) {
	season, hand, recent := pitcherHistory(log, line.PlayerID)
	if len(season) == 0 {
		return nil, ErrNoEvents
	}

	rolling := 0.0
	if len(recent) > 0 {
		// Divided by the window size, not the games found, so short histories read low.
		rolling = float64(stats.TotalOuts(recent)) / RecentGames
	}

	dir := stats.Over
	if directional && line.Direction == stats.Under {
		dir = stats.Under
	}

	return []Stat{
		{StatSeasonOutsPerStart, stats.Ratio(float64(stats.TotalOuts(season)), float64(season.Games()))},
		{StatRollingOuts3, rolling},
		{StatAvgPitchCount3, stats.MedianInts(stats.PitchesPerGame(recent))},
		{StatOutsHitRate, stats.HitRateVsThreshold(stats.PerGameCount(season, isOut), line.Value, dir)},
		{StatOppWHIP, opponentWHIP(log, line.Opponent, hand)},
	}, nil
}

// opponentWHIP approximates the opponent's WHIP against hand, taking every
// plate appearance as a third of an inning.
func opponentWHIP(log statcast.Log, team string, hand statcast.Hand) float64 {
	split := stats.OpponentSplit(log, team, hand)
	if len(split) == 0 {
		return FallbackOpponentWHIP
	}
	ip := float64(stats.PlateAppearances(split)) / 3
	if ip <= 0 {
		return FallbackOpponentWHIP
	}
	return float64(split.Count(isHit)+split.Count(isFreePass)) / ip
}

func opponentAVG(log statcast.Log, team string, hand statcast.Hand) float64 {
	split := stats.OpponentSplit(log, team, hand)
	ab := split.Count(isAtBat)
	if ab == 0 {
		return FallbackOpponentAVG
	}
	return float64(split.Count(isHit)) / float64(ab)
}

func hitsAllowedStats(log statcast.Log, line Line) ([]Stat, error) {
	season, hand, recent := pitcherHistory(log, line.PlayerID)
	if len(season) == 0 {
		return nil, ErrNoEvents
	}

	// Only games with at least one hit allowed enter the median and the hit rate.
	recentHits := stats.NonZero(stats.PerGameCount(recent, isHit))
	seasonHits := stats.NonZero(stats.PerGameCount(season, isHit))

	return []Stat{
		{StatSeasonH9, stats.PerNine(season, isHit)},
		{StatRollingH9, stats.PerNine(recent, isHit)},
		{StatMedianHitsAllowed, stats.MedianInts(recentHits)},
		{StatOppAvgVsHand, opponentAVG(log, line.Opponent, hand)},
		{StatHAHitRate, stats.HitRateVsThreshold(seasonHits, line.Value, stats.Over)},
	}, nil
}

func walksAllowedStats(log statcast.Log, line Line) ([]Stat, error) {
	season, hand, recent := pitcherHistory(log, line.PlayerID)
	if len(season.DistinctDates()) < MinHistoryDates {
		return nil, ErrInsufficientHistory
	}

	walkGames := stats.NonZero(stats.PerGameCount(season, isWalk))
	hitRate := stats.Ratio(
		float64(stats.GamesVsThreshold(walkGames, line.Value, stats.Over)),
		float64(season.Games()),
	)

	return []Stat{
		{StatSeasonBB9, stats.PerNine(season, isWalk)},
		{StatRollingBB9, stats.PerNine(recent, isWalk)},
		{StatMedianWalksL3, stats.MedianInts(stats.Last(walkGames, RecentGames))},
		{StatOppBBPct, stats.OpponentSplitRate(log, line.Opponent, hand, isWalk)},
		{StatWalksHitRate, hitRate},
	}, nil
}
