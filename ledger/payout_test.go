package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somup27/mlbPropModel/models"
)

func grade(g string) *string { return &g }

func bet(stake string, price string, g *string) models.Bet {
	return models.Bet{
		Date:      "2025-06-01",
		Player:    "Tarik Skubal",
		PropType:  "Strikeouts",
		Line:      6.5,
		Direction: "Over",
		Odds:      price,
		Stake:     decimal.RequireFromString(stake),
		Grade:     g,
	}
}

func TestPayout(t *testing.T) {
	tests := []struct {
		name string
		bet  models.Bet
		want string
	}{
		{"win plus odds", bet("10", "+150", grade(Win)), "15"},
		{"win minus odds", bet("10", "-125", grade(Win)), "8"},
		{"win unicode minus", bet("10", "−200", grade(Win)), "5"},
		{"loss", bet("10", "+150", grade(Loss)), "-10"},
		{"push", bet("10", "-110", grade(Push)), "0"},
		{"ungraded", bet("10", "-110", nil), "0"},
		{"invalid odds", bet("10", "EVEN", grade(Win)), "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Payout(tt.bet)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]models.Bet{
		bet("10", "+150", grade(Win)),
		bet("20", "-110", grade(Loss)),
		bet("5", "-110", grade(Push)),
		bet("50", "-110", nil),
	})
	assert.Equal(t, 3, s.Bets)
	assert.Equal(t, 1, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 1, s.Pushes)
	assert.True(t, decimal.NewFromInt(35).Equal(s.Staked))
	assert.True(t, decimal.NewFromInt(-5).Equal(s.Profit))
}

func TestValidate(t *testing.T) {
	b := bet("10", "−125", nil)
	b.PropType = "pitching outs"
	b.Direction = "under"
	require.NoError(t, Validate(&b))
	assert.Equal(t, "Pitching Outs", b.PropType)
	assert.Equal(t, "Under", b.Direction)
	assert.Equal(t, "-125", b.Odds)

	bad := []func(*models.Bet){
		func(b *models.Bet) { b.Player = "" },
		func(b *models.Bet) { b.Date = "06/01/2025" },
		func(b *models.Bet) { b.PropType = "RBIs" },
		func(b *models.Bet) { b.Direction = "sideways" },
		func(b *models.Bet) { b.Odds = "EVEN" },
		func(b *models.Bet) { b.Stake = decimal.Zero },
		func(b *models.Bet) { b.Grade = grade("X") },
	}
	for i, mutate := range bad {
		b := bet("10", "-110", nil)
		mutate(&b)
		assert.ErrorIs(t, Validate(&b), ErrInvalidBet, i)
	}
}

func TestValidateGradedBet(t *testing.T) {
	b := bet("10", "+150", grade(Win))
	require.NoError(t, Validate(&b))
	require.NotNil(t, b.Grade)
	assert.Equal(t, Win, *b.Grade)

	b = bet("10", "+150", grade("w"))
	assert.ErrorIs(t, Validate(&b), ErrInvalidBet)
}

func TestParseGrade(t *testing.T) {
	for _, g := range []string{Win, Loss, Push} {
		got, err := ParseGrade(g)
		require.NoError(t, err)
		assert.Equal(t, g, got)
	}
	_, err := ParseGrade("X")
	assert.ErrorIs(t, err, ErrInvalidGrade)
}
