package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
)

type evaluateResponse struct {
	ToMove string `json:"toMove"`
	Status string `json:"status"`
	Winner string `json:"winner"`
	X      int64  `json:"x"`
	O      int64  `json:"o"`
	Board  string `json:"board"`
}

// Evaluate scores the posted position with the static evaluator for both
// sides. Finished positions are accepted.
func Evaluate(c *gin.Context) {
	var req boardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	g, err := req.replay()
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, evaluateResponse{
		ToMove: g.CurrentPlayer.String(),
		Status: string(g.Status),
		Winner: g.Winner.String(),
		X:      bot.Evaluate(g.Board, domain.PlayerX, domain.PlayerO),
		O:      bot.Evaluate(g.Board, domain.PlayerO, domain.PlayerX),
		Board:  g.Board.String(),
	})
}
