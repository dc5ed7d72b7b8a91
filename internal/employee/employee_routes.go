package employee

import (
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	employees := r.Group("/employees")
	employees.Use(middleware.ContextLogger(logger))
	{
		// Registered before /:id so "stats" is not parsed as an id.
		employees.GET("/stats",
			middleware.RateLimitByIP(5, 20),
			handler.Stats,
		)

		employees.GET("",
			middleware.RateLimitByIP(3, 10),
			handler.List,
		)

		employees.GET("/:id",
			middleware.RateLimitByIP(3, 10),
			handler.GetById,
		)

		employees.POST("",
			middleware.RateLimitByIP(1, 3),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByIP(1, 3),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByIP(0.5, 2),
			handler.Delete,
		)
	}
}
