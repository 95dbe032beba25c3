package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/benchmark"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/iamasit07/connectn/internal/service/game"
)

// statusFor maps domain and service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrGameOver), errors.Is(err, bot.ErrNoLegalMoves):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInvalidBoard),
		errors.Is(err, domain.ErrInvalidColumn),
		errors.Is(err, domain.ErrColumnFull),
		errors.Is(err, domain.ErrInvalidMove),
		errors.Is(err, domain.ErrInvalidPiece),
		errors.Is(err, domain.ErrNotYourTurn),
		errors.Is(err, bot.ErrInvalidDepth),
		errors.Is(err, bot.ErrUnknownStrategy),
		errors.Is(err, benchmark.ErrUnknownExperiment):
		return http.StatusBadRequest
	case errors.Is(err, benchmark.ErrRunNotFound), errors.Is(err, game.ErrSessionNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.Error(err)
		c.AbortWithStatusJSON(status, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
