package statcast

// Code is a Statcast plate-appearance outcome ("events" column). It is empty
// on every pitch except the last one of an at-bat.
type Code string

const (
	Strikeout              Code = "strikeout"
	FieldOut               Code = "field_out"
	ForceOut               Code = "force_out"
	SacBunt                Code = "sac_bunt"
	SacFly                 Code = "sac_fly"
	DoublePlay             Code = "double_play"
	GroundedIntoDoublePlay Code = "grounded_into_double_play"
	StrikeoutDoublePlay    Code = "strikeout_double_play"
	SacFlyDoublePlay       Code = "sac_fly_double_play"
	TriplePlay             Code = "triple_play"
	FieldersChoiceOut      Code = "fielders_choice_out"
	Single                 Code = "single"
	Double                 Code = "double"
	Triple                 Code = "triple"
	HomeRun                Code = "home_run"
	Walk                   Code = "walk"
	HitByPitch             Code = "hit_by_pitch"
)

var outsByCode = map[Code]int{
	Strikeout:              1,
	FieldOut:               1,
	ForceOut:               1,
	SacBunt:                1,
	SacFly:                 1,
	FieldersChoiceOut:      1,
	DoublePlay:             2,
	GroundedIntoDoublePlay: 2,
	StrikeoutDoublePlay:    2,
	SacFlyDoublePlay:       2,
	TriplePlay:             3,
}

var basesByCode = map[Code]int{
	Single:  1,
	Double:  2,
	Triple:  3,
	HomeRun: 4,
}

// OutsFor returns the outs recorded by an outcome. Unmapped codes record none.
func OutsFor(c Code) int {
	return outsByCode[c]
}

// BasesFor returns the total bases credited to the batter for an outcome.
func BasesFor(c Code) int {
	return basesByCode[c]
}

// IsOut reports whether the outcome recorded at least one out.
func IsOut(c Code) bool {
	return OutsFor(c) > 0
}

func IsHit(c Code) bool {
	return BasesFor(c) > 0
}

func IsWalk(c Code) bool {
	return c == Walk
}

// IsWalkOrHBP counts the free passes that feed WHIP.
func IsWalkOrHBP(c Code) bool {
	return c == Walk || c == HitByPitch
}

// IsAtBat reports whether the outcome is an official at-bat: a hit or an out
// that is not a sacrifice.
func IsAtBat(c Code) bool {
	if IsHit(c) {
		return true
	}
	switch c {
	case SacBunt, SacFly:
		return false
	}
	return IsOut(c)
}
