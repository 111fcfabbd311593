package statcast

import (
	"context"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/somup27/mlbPropModel/models"
)

// Store reads and writes the pitches table.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Range loads every pitch dated within [from, to] in chronological order.
func (s *Store) Range(ctx context.Context, from, to time.Time) (Log, error) {
	var rows []models.Pitch
	err := s.db.NewSelect().Model(&rows).
		Where("game_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		OrderExpr("game_date, game_pk, at_bat_number, pitch_number").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select pitches: %w", err)
	}

	out := make(Log, len(rows))
	for i := range rows {
		out[i] = FromModel(&rows[i])
	}
	return out, nil
}

// Save inserts events, skipping rows already present so imports can be re-run.
func (s *Store) Save(ctx context.Context, events []Event) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	rows := make([]models.Pitch, len(events))
	for i, e := range events {
		rows[i] = ToModel(e)
	}
	res, err := s.db.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("insert pitches: %w", err)
	}
	n, _ := res.RowsAffected()
	return int(n), nil
}

// FromModel converts a stored row into an Event.
func FromModel(p *models.Pitch) Event {
	e := Event{
		PitcherID:    p.PitcherID,
		BatterID:     p.BatterID,
		GameID:       p.GameID,
		GameDate:     civilDate(p.GameDate),
		AtBatNumber:  p.AtBatNumber,
		PitchNumber:  p.PitchNumber,
		PThrows:      Hand(p.PThrows),
		Stand:        Hand(p.Stand),
		HomeTeam:     p.HomeTeam,
		AwayTeam:     p.AwayTeam,
		Half:         ParseHalf(p.InningTopBot),
		BBType:       p.BBType,
		EstimatedSLG: p.EstimatedSLG,
		EstimatedBA:  p.EstimatedBA,
	}
	if p.Events != nil {
		e.Code = Code(*p.Events)
	}
	return e
}

// ToModel converts an Event into a storable row.
func ToModel(e Event) models.Pitch {
	p := models.Pitch{
		GameID:       e.GameID,
		AtBatNumber:  e.AtBatNumber,
		PitchNumber:  e.PitchNumber,
		GameDate:     e.GameDate,
		PitcherID:    e.PitcherID,
		BatterID:     e.BatterID,
		PThrows:      string(e.PThrows),
		Stand:        string(e.Stand),
		HomeTeam:     e.HomeTeam,
		AwayTeam:     e.AwayTeam,
		InningTopBot: string(e.Half),
		BBType:       e.BBType,
		EstimatedSLG: e.EstimatedSLG,
		EstimatedBA:  e.EstimatedBA,
	}
	if e.Code != "" {
		code := string(e.Code)
		p.Events = &code
	}
	return p
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
