package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heavydutyrent/machinery-api/dto"
	"github.com/heavydutyrent/machinery-api/models"
	"github.com/heavydutyrent/machinery-api/services"
)

// ListOrders handles GET /api/v1/orders. An optional buyer_id query
// parameter narrows the list to one buyer.
func ListOrders(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	service := services.NewOrderService(uow)
	var (
		orders []models.Order
		err    error
	)
	if c.Query("buyer_id") != "" {
		buyerID, ok := parseQueryID(c, "buyer_id")
		if !ok {
			return
		}
		orders, err = service.ListByBuyer(c.Request.Context(), buyerID)
	} else {
		orders, err = service.List(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewOrderResponses(orders))
}

// GetOrder handles GET /api/v1/orders/:id
func GetOrder(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	order, err := services.NewOrderService(uow).Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewOrderResponse(*order))
}

// CreateOrder handles POST /api/v1/orders
func CreateOrder(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := services.NewOrderService(uow).Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusCreated, dto.NewOrderResponse(*order))
}

// UpdateOrder handles PUT /api/v1/orders/:id. The buyer and creation time
// never change.
func UpdateOrder(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := services.NewOrderService(uow).Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, dto.NewOrderResponse(*order))
}

// DeleteOrder handles DELETE /api/v1/orders/:id
func DeleteOrder(c *gin.Context) {
	uow, ok := unitOfWork(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := services.NewOrderService(uow).Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
