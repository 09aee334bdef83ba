package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/services"
)

// ListBuyers handles GET /api/v1/buyers
func ListBuyers(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	buyers, err := services.NewBuyerService(uow).List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewBuyerResponses(buyers))
}

// GetBuyer handles GET /api/v1/buyers/:id
func GetBuyer(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	buyer, err := services.NewBuyerService(uow).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewBuyerResponse(*buyer))
}

// CreateBuyer handles POST /api/v1/buyers
func CreateBuyer(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.BuyerRequest
	if !bindJSON(c, &req) {
		return
	}

	buyer, err := services.NewBuyerService(uow).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewBuyerResponse(*buyer))
}

// UpdateBuyer handles PUT /api/v1/buyers/:id
func UpdateBuyer(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.BuyerRequest
	if !bindJSON(c, &req) {
		return
	}

	buyer, err := services.NewBuyerService(uow).Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewBuyerResponse(*buyer))
}

// DeleteBuyer handles DELETE /api/v1/buyers/:id. The buyer's orders go with it.
func DeleteBuyer(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewBuyerService(uow).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteBuyers handles DELETE /api/v1/buyers with a body of ids
func DeleteBuyers(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.DeleteRangeRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := services.NewBuyerService(uow).DeleteRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": deleted})
}
