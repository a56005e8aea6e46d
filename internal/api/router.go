package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jengzang/movetank-go/internal/config"
	"github.com/jengzang/movetank-go/internal/handler"
	"github.com/jengzang/movetank-go/internal/middleware"
	"github.com/jengzang/movetank-go/internal/service"
)

// SetupRouter sets up the routes of the playback API
func SetupRouter(cfg *config.Config, svc *service.SceneService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger("/health", "/api/v1/scene"))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Movetank API is running",
		})
	})

	h := handler.NewSceneHandler(svc, cfg)

	api := r.Group("/api/v1")
	{
		api.GET("/dataset", h.GetDataset)
		api.GET("/state", h.GetState)
		api.GET("/scene", h.GetScene)
		api.GET("/frames/:time", h.GetFrame)

		// Controls change the shared playback
		controls := api.Group("")
		controls.Use(middleware.Auth(cfg.Server.JWTSecret))
		controls.Use(middleware.RateLimit(cfg.Server.RateLimit, time.Second))
		{
			controls.POST("/play", h.Play)
			controls.POST("/pause", h.Pause)
			controls.POST("/step", h.Step)
			controls.PUT("/controls", h.UpdateControls)
			controls.PUT("/strategy", h.SetStrategy)
			controls.POST("/hover/:key", h.Hover)
			controls.DELETE("/hover", h.Unhover)
		}
	}

	return r
}
