package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/services"
)

// ListSellers handles GET /api/v1/sellers
func ListSellers(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	sellers, err := services.NewSellerService(uow).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewSellerResponses(sellers))
}

// GetSeller handles GET /api/v1/sellers/:id
func GetSeller(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	seller, err := services.NewSellerService(uow).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewSellerResponse(*seller))
}

// CreateSeller handles POST /api/v1/sellers
func CreateSeller(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.SellerRequest
	if !bindJSON(c, &req) {
		return
	}

	seller, err := services.NewSellerService(uow).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewSellerResponse(*seller))
}

// UpdateSeller handles PUT /api/v1/sellers/:id
func UpdateSeller(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.SellerRequest
	if !bindJSON(c, &req) {
		return
	}

	seller, err := services.NewSellerService(uow).Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewSellerResponse(*seller))
}

// DeleteSeller handles DELETE /api/v1/sellers/:id. The seller's machineries
// and their stored images go with it.
func DeleteSeller(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewSellerService(uow).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteSellers handles DELETE /api/v1/sellers with a body of ids
func DeleteSellers(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.DeleteRangeRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := services.NewSellerService(uow).DeleteRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": deleted})
}
