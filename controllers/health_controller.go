package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthCheck handles GET /api/v1/health
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Heavy Duty Rent API is running",
	})
}

// DatabaseStatus handles GET /api/v1/database/status - checks connectivity
// and lists the tables
func DatabaseStatus(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	db := uow.Session(c.Request.Context())

	// Get the underlying SQL database to check connection
	sqlDB, err := db.DB()
	if err != nil {
		respondErrorCode(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to get database instance")
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		respondErrorCode(c, http.StatusInternalServerError, "DATABASE_CONNECTION_ERROR", "Database connection failed")
		return
	}

	tables, err := db.Migrator().GetTables()
	if err != nil {
		respondErrorCode(c, http.StatusInternalServerError, "DATABASE_QUERY_ERROR", "Failed to query tables")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Database connected",
		"tables":  tables,
	})
}
