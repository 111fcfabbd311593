package statcast

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(d int) time.Time {
	return time.Date(2025, time.April, d, 0, 0, 0, 0, time.UTC)
}

func TestSortedLeavesReceiverUntouched(t *testing.T) {
	l := Log{
		{GameDate: day(3), GameID: 3, AtBatNumber: 1, PitchNumber: 1},
		{GameDate: day(1), GameID: 1, AtBatNumber: 2, PitchNumber: 1},
		{GameDate: day(1), GameID: 1, AtBatNumber: 1, PitchNumber: 2},
		{GameDate: day(1), GameID: 1, AtBatNumber: 1, PitchNumber: 1},
	}
	orig := make(Log, len(l))
	copy(orig, l)

	s := l.Sorted()
	require.Len(t, s, 4)
	assert.Equal(t, orig, l)
	assert.Equal(t, day(1), s[0].GameDate)
	assert.Equal(t, 1, s[0].AtBatNumber)
	assert.Equal(t, 1, s[0].PitchNumber)
	assert.Equal(t, 2, s[1].PitchNumber)
	assert.Equal(t, 2, s[2].AtBatNumber)
	assert.Equal(t, day(3), s[3].GameDate)
}

func TestBattingTeam(t *testing.T) {
	e := Event{HomeTeam: "NYY", AwayTeam: "BOS", Half: Bottom}
	assert.Equal(t, "NYY", e.BattingTeam())
	e.Half = Top
	assert.Equal(t, "BOS", e.BattingTeam())
}

func TestParseHalf(t *testing.T) {
	assert.Equal(t, Bottom, ParseHalf("Bot"))
	assert.Equal(t, Bottom, ParseHalf("Bottom"))
	assert.Equal(t, Top, ParseHalf("Top"))
}

func TestDistinctDatesAndGames(t *testing.T) {
	l := Log{
		{GameDate: day(5), GameID: 50},
		{GameDate: day(2), GameID: 20},
		{GameDate: day(5), GameID: 50},
		{GameDate: day(2), GameID: 21},
	}
	assert.Equal(t, []time.Time{day(2), day(5)}, l.DistinctDates())
	assert.Equal(t, 3, l.Games())
}

func TestFilters(t *testing.T) {
	l := Log{
		{PitcherID: 1, BatterID: 10, PThrows: Right, Stand: Left, GameDate: day(1)},
		{PitcherID: 2, BatterID: 10, PThrows: Left, Stand: Left, GameDate: day(2)},
		{PitcherID: 1, BatterID: 11, PThrows: Right, Stand: Right, GameDate: day(3)},
	}
	assert.Len(t, l.ByPitcher(1), 2)
	assert.Len(t, l.ByBatter(10), 2)
	assert.Len(t, l.ThrownBy(Left), 1)
	assert.Len(t, l.FacingStance(Right), 1)
	assert.Len(t, l.Between(day(2), day(3)), 2)
	assert.Equal(t, Right, l.ByBatter(10).FirstHand())
	assert.Equal(t, Hand(""), Log{}.FirstHand())
}

func TestIsBattedBall(t *testing.T) {
	fly := "fly_ball"
	empty := ""
	assert.True(t, Event{BBType: &fly}.IsBattedBall())
	assert.False(t, Event{BBType: &empty}.IsBattedBall())
	assert.False(t, Event{}.IsBattedBall())
}
