package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/somup27/mlbPropModel/board"
	"github.com/somup27/mlbPropModel/draftkings"
	"github.com/somup27/mlbPropModel/evaluate"
)

type topPicks struct {
	AllRules  []board.Row `json:"allRules"`
	FourRules []board.Row `json:"fourRules"`
}

type boardResponse struct {
	*board.Report
	TopPicks topPicks `json:"topPicks"`
}

// Pitchers evaluates today's pitcher props.
func (h *Handler) Pitchers(c echo.Context) error {
	return h.runBoard(c, draftkings.Pitchers)
}

// Batters evaluates today's batter props.
func (h *Handler) Batters(c echo.Context) error {
	return h.runBoard(c, draftkings.Batters)
}

// runBoard accepts the optional query params minRules (0-5) and
// recommendation (Target or Pass) to filter rows. Top picks always cover the
// whole board.
func (h *Handler) runBoard(c echo.Context, b draftkings.Board) error {
	minRules := 0
	if s := c.QueryParam("minRules"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 || n > 5 {
			return echo.NewHTTPError(http.StatusBadRequest, "minRules must be 0-5")
		}
		minRules = n
	}
	rec := evaluate.Recommendation(c.QueryParam("recommendation"))
	if rec != "" && rec != evaluate.Target && rec != evaluate.Pass {
		return echo.NewHTTPError(http.StatusBadRequest, "recommendation must be Target or Pass")
	}

	report, err := h.boards.Run(c.Request().Context(), b)
	if err != nil {
		h.log.Error("board run failed", zap.String("board", string(b)), zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	five, four := report.TopPicks()
	filtered := *report
	filtered.Rows = report.Filter(minRules, rec)
	return c.JSON(http.StatusOK, boardResponse{
		Report:   &filtered,
		TopPicks: topPicks{AllRules: nonNil(five), FourRules: nonNil(four)},
	})
}

func nonNil(rows []board.Row) []board.Row {
	if rows == nil {
		return []board.Row{}
	}
	return rows
}

// RefreshLines drops cached sportsbook lines and refetches them. The board
// query param limits the refresh to pitchers or batters.
func (h *Handler) RefreshLines(c echo.Context) error {
	boards := []draftkings.Board{draftkings.Pitchers, draftkings.Batters}
	if s := c.QueryParam("board"); s != "" {
		b, err := draftkings.ParseBoard(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		boards = []draftkings.Board{b}
	}

	ctx := c.Request().Context()
	if err := h.lines.Invalidate(ctx, boards...); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	counts := map[string]int{}
	for _, b := range boards {
		lines, err := h.lines.Refresh(ctx, b)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		counts[string(b)] = len(lines.Selections)
	}
	return c.JSON(http.StatusOK, counts)
}
