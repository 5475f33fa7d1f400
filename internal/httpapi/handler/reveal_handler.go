package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

type RevealHandler struct {
	revealService service.RevealService
}

func NewRevealHandler(revealService service.RevealService) *RevealHandler {
	return &RevealHandler{revealService: revealService}
}

// RegisterRoutes registers reveal routes on the admin-gated group
func (h *RevealHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/reveals", h.List)
	router.PUT("/reveals", h.Upsert)
	router.DELETE("/reveals/:beer_number", h.Delete)
}

// Upsert maps a beer number to its real identity
// PUT /api/sessions/:code/admin/reveals
func (h *RevealHandler) Upsert(c *gin.Context) {
	var req dto.UpsertRevealDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reveal, err := h.revealService.Upsert(c.Param("code"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrBeerNumberOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save reveal"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRevealResponse(reveal))
}

// List returns the session's reveals
// GET /api/sessions/:code/admin/reveals
func (h *RevealHandler) List(c *gin.Context) {
	reveals, err := h.revealService.List(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reveals"})
		return
	}

	responses := make([]dto.RevealResponse, 0, len(reveals))
	for i := range reveals {
		responses = append(responses, *dto.FromModelToRevealResponse(&reveals[i]))
	}
	c.JSON(http.StatusOK, gin.H{"reveals": responses})
}

// Delete removes a reveal
// DELETE /api/sessions/:code/admin/reveals/:beer_number
func (h *RevealHandler) Delete(c *gin.Context) {
	beerNumber, err := strconv.Atoi(c.Param("beer_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid beer number"})
		return
	}

	if err := h.revealService.Delete(c.Param("code"), beerNumber); err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Reveal not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete reveal"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
