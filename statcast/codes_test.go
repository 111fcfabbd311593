package statcast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutsFor(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{Strikeout, 1},
		{FieldOut, 1},
		{ForceOut, 1},
		{SacBunt, 1},
		{SacFly, 1},
		{FieldersChoiceOut, 1},
		{DoublePlay, 2},
		{GroundedIntoDoublePlay, 2},
		{StrikeoutDoublePlay, 2},
		{SacFlyDoublePlay, 2},
		{TriplePlay, 3},
		{Single, 0},
		{HomeRun, 0},
		{Walk, 0},
		{HitByPitch, 0},
		{"", 0},
		{"catcher_interf", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, OutsFor(tt.code))
		})
	}
}

func TestBasesFor(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{Single, 1},
		{Double, 2},
		{Triple, 3},
		{HomeRun, 4},
		{Walk, 0},
		{Strikeout, 0},
		{"field_error", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, BasesFor(tt.code))
		})
	}
}

func TestClassifierRanges(t *testing.T) {
	codes := []Code{
		Strikeout, FieldOut, ForceOut, SacBunt, SacFly, DoublePlay, GroundedIntoDoublePlay,
		StrikeoutDoublePlay, SacFlyDoublePlay, TriplePlay, FieldersChoiceOut,
		Single, Double, Triple, HomeRun, Walk, HitByPitch, "", "other",
	}
	for _, c := range codes {
		assert.GreaterOrEqual(t, OutsFor(c), 0)
		assert.LessOrEqual(t, OutsFor(c), 3)
		assert.GreaterOrEqual(t, BasesFor(c), 0)
		assert.LessOrEqual(t, BasesFor(c), 4)
	}
}

func TestIsAtBat(t *testing.T) {
	assert.True(t, IsAtBat(Single))
	assert.True(t, IsAtBat(Strikeout))
	assert.True(t, IsAtBat(GroundedIntoDoublePlay))
	assert.False(t, IsAtBat(SacFly))
	assert.False(t, IsAtBat(SacBunt))
	assert.False(t, IsAtBat(Walk))
	assert.False(t, IsAtBat(""))
}

func TestIsWalkOrHBP(t *testing.T) {
	assert.True(t, IsWalkOrHBP(Walk))
	assert.True(t, IsWalkOrHBP(HitByPitch))
	assert.False(t, IsWalkOrHBP(Single))
	assert.False(t, IsWalk(HitByPitch))
}
