package routes

import (
	"net/http"

	"project-team-tracker/internal/handlers"
	"project-team-tracker/internal/middleware"
	"project-team-tracker/internal/realtime"
	"project-team-tracker/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Services *services.Services
	Hub      *realtime.Hub
	Logger   *zap.Logger
}

func SetupRoutes(deps Deps) *gin.Engine {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(log.Named("http")), middleware.Metrics())

	// CORS middleware (for frontend integration)
	ginRouter.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "project team tracker is running",
		})
	})
	ginRouter.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if deps.Hub != nil {
		ginRouter.GET("/ws", handlers.WebSocketHandler(deps.Hub, log.Named("ws")))
	}

	tasks := handlers.NewTaskHandler(deps.Services.Tasks)
	members := handlers.NewMemberHandler(deps.Services.Members)

	api := ginRouter.Group("/api")
	{
		api.GET("/tasks", tasks.List)
		api.POST("/tasks", tasks.Create)
		api.GET("/tasks/stats", tasks.Stats)
		api.GET("/tasks/search", tasks.Search)
		api.GET("/tasks/:id", tasks.Get)
		api.PUT("/tasks/:id", tasks.Update)
		api.DELETE("/tasks/:id", tasks.Delete)
		api.DELETE("/tasks/:id/assignees/:mid", tasks.Unassign)

		api.GET("/members", members.List)
		api.POST("/members", members.Create)
		api.GET("/members/stats", members.Stats)
		api.GET("/members/search", members.Search)
		api.GET("/members/:id", members.Get)
		api.PUT("/members/:id", members.Update)
		api.DELETE("/members/:id", members.Delete)
	}

	return ginRouter
}
