package statcast

import (
	"sort"
	"time"
)

// Hand is a pitcher's throwing arm or a batter's stance.
type Hand string

const (
	Left  Hand = "L"
	Right Hand = "R"
)

// Half is the half-inning side. Statcast writes the bottom half as "Bot".
type Half string

const (
	Top    Half = "Top"
	Bottom Half = "Bot"
)

// ParseHalf accepts both the Statcast spelling and the long form.
func ParseHalf(s string) Half {
	switch s {
	case "Bot", "Bottom", "bot", "bottom":
		return Bottom
	}
	return Top
}

// DateKey identifies a calendar date independent of clock time and location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// Event is one pitch row of the shared event log. GameDate is a calendar date
// at midnight UTC.
type Event struct {
	PitcherID   int64
	BatterID    int64
	GameID      int64
	GameDate    time.Time
	AtBatNumber int
	PitchNumber int
	Code        Code
	PThrows     Hand
	Stand       Hand
	HomeTeam    string
	AwayTeam    string
	Half        Half

	// Batted-ball fields are nil unless the pitch was put in play.
	BBType       *string
	EstimatedSLG *float64
	EstimatedBA  *float64
}

// BattingTeam is the home team in the bottom half and the away team in the top half.
func (e Event) BattingTeam() string {
	if e.Half == Bottom {
		return e.HomeTeam
	}
	return e.AwayTeam
}

// IsBattedBall reports whether the pitch produced a ball in play.
func (e Event) IsBattedBall() bool {
	return e.BBType != nil && *e.BBType != ""
}

// Predicate selects events.
type Predicate func(Event) bool

// Outcome lifts a code classifier into an event predicate.
func Outcome(f func(Code) bool) Predicate {
	return func(e Event) bool { return f(e.Code) }
}

// Is matches events whose outcome is one of codes.
func Is(codes ...Code) Predicate {
	return func(e Event) bool {
		for _, c := range codes {
			if e.Code == c {
				return true
			}
		}
		return false
	}
}

// Log is a collection of events. Every method returns a new slice and leaves
// the receiver untouched, so one season log can be shared across evaluations.
type Log []Event

// Sorted returns a copy in chronological order: date, game, at-bat, pitch.
func (l Log) Sorted() Log {
	out := make(Log, len(l))
	copy(out, l)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if !a.GameDate.Equal(b.GameDate) {
			return a.GameDate.Before(b.GameDate)
		}
		if a.GameID != b.GameID {
			return a.GameID < b.GameID
		}
		if a.AtBatNumber != b.AtBatNumber {
			return a.AtBatNumber < b.AtBatNumber
		}
		return a.PitchNumber < b.PitchNumber
	})
	return out
}

// Filter returns the events matching pred.
func (l Log) Filter(pred Predicate) Log {
	out := make(Log, 0, len(l)/4)
	for _, e := range l {
		if pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many events match pred.
func (l Log) Count(pred Predicate) int {
	n := 0
	for _, e := range l {
		if pred(e) {
			n++
		}
	}
	return n
}

func (l Log) ByPitcher(id int64) Log {
	return l.Filter(func(e Event) bool { return e.PitcherID == id })
}

func (l Log) ByBatter(id int64) Log {
	return l.Filter(func(e Event) bool { return e.BatterID == id })
}

// ThrownBy keeps pitches from pitchers throwing with hand.
func (l Log) ThrownBy(hand Hand) Log {
	return l.Filter(func(e Event) bool { return e.PThrows == hand })
}

// FacingStance keeps pitches to batters standing on side hand.
func (l Log) FacingStance(hand Hand) Log {
	return l.Filter(func(e Event) bool { return e.Stand == hand })
}

// BattingFor keeps the events where team was at the plate.
func (l Log) BattingFor(team string) Log {
	return l.Filter(func(e Event) bool { return e.BattingTeam() == team })
}

// Between keeps events dated within [from, to].
func (l Log) Between(from, to time.Time) Log {
	return l.Filter(func(e Event) bool {
		return !e.GameDate.Before(from) && !e.GameDate.After(to)
	})
}

// DistinctDates returns the game dates present, ascending.
func (l Log) DistinctDates() []time.Time {
	seen := make(map[string]struct{})
	var dates []time.Time
	for _, e := range l {
		d := e.GameDate
		key := DateKey(d)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// Games returns the number of distinct games present.
func (l Log) Games() int {
	seen := make(map[int64]struct{})
	for _, e := range l {
		seen[e.GameID] = struct{}{}
	}
	return len(seen)
}

// FirstHand returns the throwing hand on the earliest pitch, or "" for an empty log.
func (l Log) FirstHand() Hand {
	if len(l) == 0 {
		return ""
	}
	return l.Sorted()[0].PThrows
}

// FirstStance returns the batting stance on the earliest pitch, or "" for an empty log.
func (l Log) FirstStance() Hand {
	if len(l) == 0 {
		return ""
	}
	return l.Sorted()[0].Stand
}
