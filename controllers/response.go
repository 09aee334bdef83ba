package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/middleware"
	"github.com/heavydutyrent/machinery-api/repository"
	"github.com/heavydutyrent/machinery-api/services"
	"github.com/heavydutyrent/machinery-api/utils"
)

func respondSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func respondErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondError maps a service error to its HTTP status and error code
func respondError(c *gin.Context, err error) {
	var (
		notFound    *repository.NotFoundError
		conflict    *repository.ConflictError
		validation  *services.ValidationError
		uploadErr   *utils.FileUploadError
		persistence *repository.PersistenceError
	)

	switch {
	case errors.As(err, &notFound):
		respondErrorCode(c, http.StatusNotFound, "NOT_FOUND", notFound.Error())
	case errors.As(err, &conflict):
		body := gin.H{
			"code":    "CONFLICT",
			"message": conflict.Error(),
		}
		if conflict.Field != "" {
			body["field"] = conflict.Field
		}
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": body})
	case errors.As(err, &validation):
		body := gin.H{
			"code":    "VALIDATION_ERROR",
			"message": validation.Error(),
		}
		if validation.Field != "" {
			body["field"] = validation.Field
		}
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": body})
	case errors.As(err, &uploadErr):
		respondErrorCode(c, http.StatusBadRequest, uploadErr.Code, uploadErr.Message)
	case errors.Is(err, services.ErrStorageUnavailable):
		respondErrorCode(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE", "Image storage is not configured")
	case errors.As(err, &persistence):
		log.Printf("Database error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		respondErrorCode(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to access the database")
	default:
		log.Printf("Unexpected error on %s %s: %v", c.Request.Method, c.FullPath(), err)
		respondErrorCode(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}

// bindJSON parses the request body and writes a 400 when it is invalid
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return false
	}
	return true
}

// parseID reads a numeric path parameter and writes a 400 when it is not one
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}

// unitOfWork returns the request's unit of work and writes a 500 when the
// route is not wrapped by the unit-of-work middleware
func unitOfWork(c *gin.Context) (*repository.UnitOfWork, bool) {
	uow, err := middleware.GetUnitOfWork(c)
	if err != nil {
		var ctxErr *middleware.ContextError
		errors.As(err, &ctxErr)
		respondErrorCode(c, http.StatusInternalServerError, ctxErr.Code, ctxErr.Message)
		return nil, false
	}
	return uow, true
}

// parseQueryID reads a numeric query parameter and writes a 400 when it is not one
func parseQueryID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		respondErrorCode(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
