package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/services"
)

// ListMachineries handles GET /api/v1/machineries. An optional seller_id
// query parameter narrows the list to one seller.
func ListMachineries(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	service := services.NewMachineryService(uow)
	var (
		machineries []models.Machinery
		err         error
	)
	if c.Query("seller_id") != "" {
		sellerID, ok := parseQueryID(c, "seller_id")
		if !ok {
			return
		}
		machineries, err = service.ListBySeller(c.Request.Context(), sellerID)
	} else {
		machineries, err = service.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewMachineryResponses(machineries))
}

// GetMachinery handles GET /api/v1/machineries/:id
func GetMachinery(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	machinery, err := services.NewMachineryService(uow).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewMachineryResponse(*machinery))
}

// CreateMachinery handles POST /api/v1/machineries
func CreateMachinery(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.CreateMachineryRequest
	if !bindJSON(c, &req) {
		return
	}

	machinery, err := services.NewMachineryService(uow).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewMachineryResponse(*machinery))
}

// UpdateMachinery handles PUT /api/v1/machineries/:id
func UpdateMachinery(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateMachineryRequest
	if !bindJSON(c, &req) {
		return
	}

	machinery, err := services.NewMachineryService(uow).Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewMachineryResponse(*machinery))
}

// DeleteMachinery handles DELETE /api/v1/machineries/:id
func DeleteMachinery(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewMachineryService(uow).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DeleteMachineries handles DELETE /api/v1/machineries with a body of ids
func DeleteMachineries(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.DeleteRangeRequest
	if !bindJSON(c, &req) {
		return
	}

	deleted, err := services.NewMachineryService(uow).DeleteRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, gin.H{"deleted": deleted})
}
