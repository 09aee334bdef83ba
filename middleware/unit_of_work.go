package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/repository"
	"gorm.io/gorm"
)

const unitOfWorkKey = "unit_of_work"

// UnitOfWork is a middleware that gives every request its own unit of work
// over the shared connection pool. Anything a handler staged but did not
// commit is discarded when the request ends.
func UnitOfWork(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uow := repository.NewUnitOfWork(db)
		c.Set(unitOfWorkKey, uow)

		c.Next()

		if pending := uow.Pending(); pending > 0 {
			log.Printf("Discarding %d uncommitted operations for %s %s", pending, c.Request.Method, c.FullPath())
			uow.Discard()
		}
	}
}

// GetUnitOfWork extracts the request's unit of work from the Gin context
func GetUnitOfWork(c *gin.Context) (*repository.UnitOfWork, error) {
	value, exists := c.Get(unitOfWorkKey)
	if !exists {
		return nil, &ContextError{Code: "MISSING_UNIT_OF_WORK", Message: "Unit of work not found in context"}
	}

	uow, ok := value.(*repository.UnitOfWork)
	if !ok {
		return nil, &ContextError{Code: "INVALID_UNIT_OF_WORK", Message: "Unit of work is not in the expected format"}
	}

	return uow, nil
}

// RequireUnitOfWork aborts with 500 when the route is not wrapped by UnitOfWork
func RequireUnitOfWork() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := GetUnitOfWork(c); err != nil {
			ctxErr := err.(*ContextError)
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    ctxErr.Code,
					"message": ctxErr.Message,
				},
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// ContextError represents a missing or malformed request-scoped value
type ContextError struct {
	Code    string
	Message string
}

func (e *ContextError) Error() string {
	return e.Message
}
