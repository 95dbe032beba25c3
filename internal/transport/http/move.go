package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectn/internal/domain"
	"github.com/iamasit07/connectn/internal/service/bot"
	"github.com/rs/zerolog/log"
)

// SearchLimits holds default depths per strategy and the largest depth a
// request may ask for.
type SearchLimits struct {
	MinimaxDepth   int
	AlphaBetaDepth int
	MaxDepth       int
}

type MoveHandler struct {
	Limits SearchLimits
}

func NewMoveHandler(limits SearchLimits) *MoveHandler {
	return &MoveHandler{Limits: limits}
}

type moveRequest struct {
	boardRequest
	Strategy string `json:"strategy"`
	Depth    int    `json:"depth"`
}

type moveResponse struct {
	Column        int     `json:"column"`
	Row           int     `json:"row"`
	Piece         string  `json:"piece"`
	Value         int64   `json:"value"`
	NodesExpanded int64   `json:"nodesExpanded"`
	NodesPruned   int64   `json:"nodesPruned"`
	ElapsedMs     float64 `json:"elapsedMs"`
}

// BestMove replays the posted moves and searches for the side to move.
func (h *MoveHandler) BestMove(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	strategy := bot.StrategyAlphaBeta
	if req.Strategy != "" {
		s, err := bot.ParseStrategy(req.Strategy)
		if err != nil {
			abortWithError(c, err)
			return
		}
		strategy = s
	}
	depth := req.Depth
	if depth == 0 {
		depth = h.Limits.AlphaBetaDepth
		if strategy == bot.StrategyMinimax {
			depth = h.Limits.MinimaxDepth
		}
	}
	if depth < 1 || (h.Limits.MaxDepth > 0 && depth > h.Limits.MaxDepth) {
		abortWithError(c, fmt.Errorf("%w: %d is outside 1..%d", bot.ErrInvalidDepth, depth, h.Limits.MaxDepth))
		return
	}

	g, err := req.replay()
	if err != nil {
		abortWithError(c, err)
		return
	}
	if g.IsFinished() {
		abortWithError(c, domain.ErrGameOver)
		return
	}

	piece := g.CurrentPlayer
	res, err := bot.Search(g.Board, piece, depth, strategy)
	if err != nil {
		abortWithError(c, err)
		return
	}

	log.Debug().
		Str("strategy", string(strategy)).
		Int("depth", depth).
		Int("column", res.Column).
		Int64("nodes", res.Stats.NodesExpanded).
		Msg("api-move")

	c.JSON(http.StatusOK, moveResponse{
		Column:        res.Column,
		Row:           g.Board.ColumnFill(res.Column),
		Piece:         piece.String(),
		Value:         res.Value,
		NodesExpanded: res.Stats.NodesExpanded,
		NodesPruned:   res.Stats.NodesPruned,
		ElapsedMs:     float64(res.Elapsed.Microseconds()) / 1000,
	})
}
