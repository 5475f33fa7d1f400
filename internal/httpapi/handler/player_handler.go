package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

// playerCookieName scopes the player identity cookie to one session, so the
// same phone can sit in several tastings.
func playerCookieName(code string) string {
	return "bbt_player_" + code
}

// playerIDFromRequest resolves the caller's player identity from the session
// cookie, with an X-Player-ID header fallback for non-browser clients.
func playerIDFromRequest(c *gin.Context, code string) string {
	if id, err := c.Cookie(playerCookieName(code)); err == nil && id != "" {
		return id
	}
	return c.GetHeader("X-Player-ID")
}

type PlayerHandler struct {
	playerService service.PlayerService
}

func NewPlayerHandler(playerService service.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// RegisterRoutes registers player-related routes
func (h *PlayerHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/:code/players", h.Join) // Join or resume as a player
}

// Join adds the caller to a session, resuming on a case-insensitive name match
// POST /api/sessions/:code/players
func (h *PlayerHandler) Join(c *gin.Context) {
	code := c.Param("code")

	var req dto.JoinSessionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, resumed, err := h.playerService.JoinOrResume(code, req.Name, req.OrderDirection)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrSessionClosed):
			c.JSON(http.StatusGone, gin.H{"error": "This session is no longer active"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join session"})
		}
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(playerCookieName(code), player.ID, 86400, "/", "", false, true)

	resp := dto.FromModelToPlayerResponse(player)
	resp.Resumed = resumed
	status := http.StatusCreated
	if resumed {
		status = http.StatusOK
	}
	c.JSON(status, resp)
}
