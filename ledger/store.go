package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/somup27/mlbPropModel/models"
)

// Store keeps bets in the bets table, scoped per user.
type Store struct {
	db *bun.DB
}

func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// Add validates and inserts a bet for its Username. A graded bet is filed
// as settled and cannot be graded again.
func (s *Store) Add(ctx context.Context, b *models.Bet) error {
	if err := Validate(b); err != nil {
		return err
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	b.CreatedAt = time.Now().UTC()
	if b.Grade != nil {
		at := b.CreatedAt
		b.GradedAt = &at
	}
	if _, err := s.db.NewInsert().Model(b).Exec(ctx); err != nil {
		return fmt.Errorf("insert bet: %w", err)
	}
	return nil
}

// Grade sets the grade of an ungraded bet. A bet is graded exactly once.
func (s *Store) Grade(ctx context.Context, username string, id uuid.UUID, grade string) (*models.Bet, error) {
	g, err := ParseGrade(grade)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := new(models.Bet)
	res, err := s.db.NewUpdate().Model(b).
		Set("grade = ?", g).
		Set("graded_at = ?", now).
		Where("id = ?", id).
		Where("username = ?", username).
		Where("grade IS NULL").
		Returning("*").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("grade bet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		return b, nil
	}

	existing := new(models.Bet)
	err = s.db.NewSelect().Model(existing).
		Where("id = ?", id).
		Where("username = ?", username).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select bet: %w", err)
	}
	return existing, ErrAlreadyGraded
}

// Ungraded lists open bets in the order they were placed.
func (s *Store) Ungraded(ctx context.Context, username string) ([]models.Bet, error) {
	var bets []models.Bet
	err := s.db.NewSelect().Model(&bets).
		Where("username = ?", username).
		Where("grade IS NULL").
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select ungraded bets: %w", err)
	}
	return bets, nil
}

// Graded lists settled bets, newest bet date first.
func (s *Store) Graded(ctx context.Context, username string) ([]models.Bet, error) {
	var bets []models.Bet
	err := s.db.NewSelect().Model(&bets).
		Where("username = ?", username).
		Where("grade IS NOT NULL").
		OrderExpr("date DESC, created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("select graded bets: %w", err)
	}
	return bets, nil
}

// Profit summarizes every graded bet of username.
func (s *Store) Profit(ctx context.Context, username string) (Summary, error) {
	bets, err := s.Graded(ctx, username)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(bets), nil
}
