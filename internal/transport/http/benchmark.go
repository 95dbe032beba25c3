package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectn/internal/service/benchmark"
)

type BenchmarkHandler struct {
	Service *benchmark.Service
}

func NewBenchmarkHandler(svc *benchmark.Service) *BenchmarkHandler {
	return &BenchmarkHandler{Service: svc}
}

type startRunRequest struct {
	Experiment string `json:"experiment" binding:"required"`
	Runs       int    `json:"runs"`
}

const maxRunsPerRequest = 100

// StartRun kicks off an experiment and answers 202 with the run id.
func (h *BenchmarkHandler) StartRun(c *gin.Context) {
	var req startRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	e, err := benchmark.ParseExperiment(req.Experiment)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if req.Runs < 0 || req.Runs > maxRunsPerRequest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "runs must be at most 100"})
		return
	}

	rep, err := h.Service.StartRun(c.Request.Context(), e, req.Runs)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.Header("Location", "/api/benchmarks/"+rep.ID)
	c.JSON(http.StatusAccepted, gin.H{"id": rep.ID, "status": rep.Status})
}

func (h *BenchmarkHandler) GetRun(c *gin.Context) {
	rep, err := h.Service.GetRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *BenchmarkHandler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}
	runs, err := h.Service.ListRuns(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, runs)
}
