package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/somup27/mlbPropModel/ledger"
	mw "github.com/somup27/mlbPropModel/middleware"
	"github.com/somup27/mlbPropModel/models"
)

type betRequest struct {
	Date      string          `json:"date"`
	Player    string          `json:"player"`
	PropType  string          `json:"propType"`
	Line      float64         `json:"line"`
	Direction string          `json:"direction"`
	Odds      string          `json:"odds"`
	Stake     decimal.Decimal `json:"stake"`
	Grade     *string         `json:"grade,omitempty"`
}

type gradeRequest struct {
	Grade string `json:"grade"`
}

type betView struct {
	models.Bet
	Profit *decimal.Decimal `json:"profit,omitempty"`
}

func ledgerError(err error) error {
	switch {
	case errors.Is(err, ledger.ErrInvalidBet), errors.Is(err, ledger.ErrInvalidGrade):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, ledger.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, ledger.ErrAlreadyGraded):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

func views(bets []models.Bet) []betView {
	out := make([]betView, len(bets))
	for i, b := range bets {
		out[i] = betView{Bet: b}
		if b.Grade != nil {
			p := ledger.Payout(b)
			out[i].Profit = &p
		}
	}
	return out
}

// Bets lists the caller's bets: ungraded by default, graded with graded=true.
func (h *Handler) Bets(c echo.Context) error {
	graded := false
	if s := c.QueryParam("graded"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "graded must be true or false")
		}
		graded = v
	}

	ctx := c.Request().Context()
	user := mw.Username(c)
	var (
		bets []models.Bet
		err  error
	)
	if graded {
		bets, err = h.ledger.Graded(ctx, user)
	} else {
		bets, err = h.ledger.Ungraded(ctx, user)
	}
	if err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusOK, views(bets))
}

// CreateBet records a placed bet. A grade may be given for a bet entered
// after it settled.
func (h *Handler) CreateBet(c echo.Context) error {
	var req betRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bet := &models.Bet{
		Username:  mw.Username(c),
		Date:      req.Date,
		Player:    req.Player,
		PropType:  req.PropType,
		Line:      req.Line,
		Direction: req.Direction,
		Odds:      req.Odds,
		Stake:     req.Stake,
	}
	if req.Grade != nil && strings.TrimSpace(*req.Grade) != "" {
		g := strings.ToUpper(strings.TrimSpace(*req.Grade))
		bet.Grade = &g
	}
	if err := h.ledger.Add(c.Request().Context(), bet); err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusCreated, views([]models.Bet{*bet})[0])
}

// GradeBet settles a bet as W, L or P.
func (h *Handler) GradeBet(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid bet id")
	}
	var req gradeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bet, err := h.ledger.Grade(c.Request().Context(), mw.Username(c), id, req.Grade)
	if err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusOK, views([]models.Bet{*bet})[0])
}

// Profit returns the caller's running record and profit.
func (h *Handler) Profit(c echo.Context) error {
	s, err := h.ledger.Profit(c.Request().Context(), mw.Username(c))
	if err != nil {
		return ledgerError(err)
	}
	return c.JSON(http.StatusOK, s)
}
