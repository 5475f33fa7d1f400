package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/dto"
	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

type RatingHandler struct {
	ratingService service.RatingService
}

func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// RegisterRoutes registers rating-related routes
func (h *RatingHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.PUT("/:code/ratings/:beer_number", h.Submit) // Upsert the caller's rating for a beer
	router.GET("/:code/ratings", h.ListMine)            // The caller's own ratings
}

// Submit creates or overwrites the caller's rating for one beer
// PUT /api/sessions/:code/ratings/:beer_number
func (h *RatingHandler) Submit(c *gin.Context) {
	code := c.Param("code")

	beerNumber, err := strconv.Atoi(c.Param("beer_number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid beer number"})
		return
	}

	playerID := playerIDFromRequest(c, code)
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Join the session first"})
		return
	}

	var req dto.SubmitRatingDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rating, err := h.ratingService.Submit(code, playerID, beerNumber, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Join the session first"})
		case errors.Is(err, service.ErrBeerNumberOutOfRange):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save rating"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.FromModelToRatingResponse(rating))
}

// ListMine returns the caller's ratings in beer-number order
// GET /api/sessions/:code/ratings
func (h *RatingHandler) ListMine(c *gin.Context) {
	code := c.Param("code")

	playerID := playerIDFromRequest(c, code)
	if playerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Join the session first"})
		return
	}

	ratings, session, err := h.ratingService.ListForPlayer(code, playerID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrPlayerNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Join the session first"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ratings"})
		}
		return
	}

	responses := make([]dto.RatingResponse, 0, len(ratings))
	for i := range ratings {
		responses = append(responses, *dto.FromModelToRatingResponse(&ratings[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"beer_count": session.BeerCount,
		"ratings":    responses,
	})
}
