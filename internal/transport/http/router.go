package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/connectn/internal/transport/http/middleware"
)

// RouterDeps are the handlers and settings NewRouter mounts.
type RouterDeps struct {
	AllowedOrigins []string
	JWTSecret      string
	Move           *MoveHandler
	Benchmarks     *BenchmarkHandler // nil disables the benchmark routes
	Watch          *WatchHandler
	WebSocket      gin.HandlerFunc
}

func NewRouter(d RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(middleware.CORSMiddleware(d.AllowedOrigins))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.POST("/move", d.Move.BestMove)
	api.POST("/evaluate", Evaluate)
	if d.Watch != nil {
		api.GET("/watch", d.Watch.GetLiveGames)
	}

	if d.Benchmarks != nil {
		protected := api.Group("/benchmarks")
		protected.Use(middleware.BearerAuth(d.JWTSecret))
		{
			protected.POST("", d.Benchmarks.StartRun)
			protected.GET("", d.Benchmarks.ListRuns)
			protected.GET("/:id", d.Benchmarks.GetRun)
		}
	}

	if d.WebSocket != nil {
		router.GET("/ws", d.WebSocket)
	}
	return router
}
