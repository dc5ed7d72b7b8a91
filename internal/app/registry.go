package app

import (
	"database/sql"

	"go-ems/internal/employee"
	"go-ems/internal/messaging/kafka"
	"go-ems/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	minSalary float64,
	logger *zap.Logger,
) error {
	router.Use(middleware.RequestID())

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	employeeService := employee.NewServiceWithOutbox(db, employeeRepo, outboxRepo, rdb, minSalary, logger)

	// --- Handlers ---
	employeeHandler := employee.NewHandlerWithRedis(employeeService, rdb, logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rdb, logger)
	}

	return nil
}
