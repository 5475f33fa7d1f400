package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/middleware"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

type SessionHandler struct {
	sessionService service.SessionService
	tokenTTL       time.Duration
}

func NewSessionHandler(sessionService service.SessionService, tokenTTL time.Duration) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		tokenTTL:       tokenTTL,
	}
}

// RegisterRoutes registers session-related routes
func (h *SessionHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("", h.Create)                     // Create a session (host)
	router.GET("/:code", h.Get)                   // Public session lookup
	router.POST("/:code/admin-auth", h.AdminAuth) // Password -> admin token
}

// Create creates a tasting session and signs the host in
// POST /api/sessions
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, token, err := h.sessionService.Create(req.Name, req.BeerCount, req.AdminPassword)
	if err != nil {
		if errors.Is(err, service.ErrCodeExhausted) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "could not generate a unique code, try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	h.setAdminCookie(c, token)
	c.JSON(http.StatusCreated, dto.CreateSessionResponse{
		Session: *dto.FromModelToSessionResponse(session),
		Token:   token,
	})
}

// Get looks up a session by join code
// GET /api/sessions/:code
func (h *SessionHandler) Get(c *gin.Context) {
	session, err := h.sessionService.GetByCode(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToSessionResponse(session))
}

// AdminAuth exchanges the admin password for an admin token cookie
// POST /api/sessions/:code/admin-auth
func (h *SessionHandler) AdminAuth(c *gin.Context) {
	var req dto.AdminAuthDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.sessionService.Authenticate(c.Param("code"), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed"})
		}
		return
	}

	h.setAdminCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"ok": true, "token": token})
}

func (h *SessionHandler) setAdminCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AdminCookieName, token, int(h.tokenTTL.Seconds()), "/", "", false, true)
}
