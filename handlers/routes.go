package handlers

import (
	"github.com/labstack/echo/v4"

	mw "github.com/somup27/mlbPropModel/middleware"
)

// Register mounts every route on e.
func (h *Handler) Register(e *echo.Echo) {
	// Public
	e.GET("/healthz", h.Health)
	e.POST("/api/signin", h.Signin)

	// Protected – require valid JWT in Authorization header
	api := e.Group("/api", mw.JWT(h.JWTKey))
	api.POST("/password-hash", h.PasswordHash)
	api.GET("/pitchers", h.Pitchers)
	api.GET("/batters", h.Batters)
	api.POST("/lines/refresh", h.RefreshLines)
	api.GET("/bets", h.Bets)
	api.POST("/bets", h.CreateBet)
	api.POST("/bets/:id/grade", h.GradeBet)
	api.GET("/bets/profit", h.Profit)
}
