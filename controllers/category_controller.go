package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/services"
)

// ListCategories handles GET /api/v1/categories
func ListCategories(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	categories, err := services.NewCategoryService(uow).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewCategoryResponses(categories))
}

// GetCategory handles GET /api/v1/categories/:id
func GetCategory(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	category, err := services.NewCategoryService(uow).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewCategoryResponse(*category))
}

// CreateCategory handles POST /api/v1/categories
func CreateCategory(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := services.NewCategoryService(uow).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewCategoryResponse(*category))
}

// UpdateCategory handles PUT /api/v1/categories/:id. machinery_ids replaces
// the category's membership.
func UpdateCategory(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if !bindJSON(c, &req) {
		return
	}

	category, err := services.NewCategoryService(uow).Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewCategoryResponse(*category))
}

// DeleteCategory handles DELETE /api/v1/categories/:id
func DeleteCategory(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewCategoryService(uow).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteCategories handles DELETE /api/v1/categories with a body of ids
func DeleteCategories(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.DeleteRangeRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := services.NewCategoryService(uow).DeleteRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": deleted})
}
