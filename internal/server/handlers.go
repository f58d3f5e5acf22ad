package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hakwonmap/academy-reputation/internal/apperr"
)

// handleGetReputation returns every academy document sorted descending
// by reputation_score_100.
func (s *Server) handleGetReputation(c *gin.Context) {
	academies, err := s.store.ListAcademies(c.Request.Context())
	if err != nil {
		apperr.LogError(c, apperr.ToAppError(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"message": "An unexpected error occurred",
		})
		return
	}

	if len(academies) == 0 {
		apperr.LogError(c, apperr.NewNotFoundError("no academy documents in store"))
		c.JSON(http.StatusNotFound, gin.H{"error": "No data found"})
		return
	}

	c.JSON(http.StatusOK, academies)
}

// handleGetReviews returns the raw review documents for one academy,
// matched exactly after trimming surrounding whitespace.
func (s *Server) handleGetReviews(c *gin.Context) {
	raw := c.Query("academy_name")
	if raw == "" {
		apperr.LogError(c, apperr.NewValidationError("academy_name query parameter missing"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Academy name not provided"})
		return
	}
	academyName := strings.TrimSpace(raw)

	reviews, err := s.store.ListReviewsByAcademy(c.Request.Context(), academyName)
	if err != nil {
		apperr.LogError(c, apperr.ToAppError(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   err.Error(),
			"message": "An unexpected error occurred",
		})
		return
	}

	if len(reviews) == 0 {
		apperr.LogError(c, apperr.NewNotFoundError("no reviews for academy "+academyName))
		c.JSON(http.StatusNotFound, gin.H{"error": "No reviews found for this academy"})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
