package handlers

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/board"
	"github.com/somup27/mlbPropModel/draftkings"
	"github.com/somup27/mlbPropModel/ledger"
	"github.com/somup27/mlbPropModel/models"
)

// Users finds accounts for sign-in.
type Users interface {
	FindUser(ctx context.Context, username string) (*models.User, error)
}

// Boards runs dashboard evaluations; *board.Service satisfies it.
type Boards interface {
	Run(ctx context.Context, b draftkings.Board) (*board.Report, error)
}

// Lines is the sportsbook line cache; *draftkings.Cache satisfies it.
type Lines interface {
	Refresh(ctx context.Context, b draftkings.Board) (*draftkings.Lines, error)
	Invalidate(ctx context.Context, boards ...draftkings.Board) error
}

// Ledger stores bets; *ledger.Store satisfies it.
type Ledger interface {
	Add(ctx context.Context, b *models.Bet) error
	Grade(ctx context.Context, username string, id uuid.UUID, grade string) (*models.Bet, error)
	Ungraded(ctx context.Context, username string) ([]models.Bet, error)
	Graded(ctx context.Context, username string) ([]models.Bet, error)
	Profit(ctx context.Context, username string) (ledger.Summary, error)
}

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	users  Users
	boards Boards
	lines  Lines
	ledger Ledger
	log    *zap.Logger
	JWTKey []byte
}

// New creates a Handler from its collaborators and the JWT signing key.
func New(users Users, boards Boards, lines Lines, bets Ledger, jwtKey []byte, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		users:  users,
		boards: boards,
		lines:  lines,
		ledger: bets,
		log:    log.With(zap.String("component", "handlers")),
		JWTKey: jwtKey,
	}
}
