package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

type ResultsHandler struct {
	resultsService service.ResultsService
	sessionService service.SessionService
}

func NewResultsHandler(resultsService service.ResultsService, sessionService service.SessionService) *ResultsHandler {
	return &ResultsHandler{
		resultsService: resultsService,
		sessionService: sessionService,
	}
}

// RegisterPlayerRoutes registers the player-facing summary route
func (h *ResultsHandler) RegisterPlayerRoutes(router *gin.RouterGroup) {
	router.GET("/:code/summary", h.PlayerSummary)
}

// RegisterAdminRoutes registers host-only result routes on the admin-gated group
func (h *ResultsHandler) RegisterAdminRoutes(router *gin.RouterGroup) {
	router.GET("/results", h.AdminResults)
	router.GET("/scorecards", h.Scorecards)
	router.GET("/leaderboard", h.Leaderboard)
	router.POST("/close", h.Close)
}

// AdminResults returns the host dashboard aggregates
// GET /api/sessions/:code/admin/results
func (h *ResultsHandler) AdminResults(c *gin.Context) {
	resp, err := h.resultsService.AdminResults(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeResultsError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PlayerSummary returns the caller's summary/reveal view
// GET /api/sessions/:code/summary
func (h *ResultsHandler) PlayerSummary(c *gin.Context) {
	code := c.Param("code")

	playerID := playerIDFromRequest(c, code)
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Join the session first"})
		return
	}

	resp, err := h.resultsService.PlayerSummary(c.Request.Context(), code, playerID)
	if err != nil {
		if errors.Is(err, service.ErrPlayerNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Join the session first"})
			return
		}
		h.writeResultsError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Scorecards returns every player's scorecard
// GET /api/sessions/:code/admin/scorecards
func (h *ResultsHandler) Scorecards(c *gin.Context) {
	resp, err := h.resultsService.Scorecards(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeResultsError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Leaderboard returns the guess-accuracy leaderboard
// GET /api/sessions/:code/admin/leaderboard
func (h *ResultsHandler) Leaderboard(c *gin.Context) {
	resp, err := h.resultsService.Leaderboard(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.writeResultsError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Close deactivates the session
// POST /api/sessions/:code/admin/close
func (h *ResultsHandler) Close(c *gin.Context) {
	if err := h.sessionService.Close(c.Param("code")); err != nil {
		h.writeResultsError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ResultsHandler) writeResultsError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute results"})
}
