package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"foodieride-api/middleware"
	"foodieride-api/models"
	"foodieride-api/services"

	"github.com/gin-gonic/gin"
)

// PendingTask is a pending food order as a captain sees it.
type PendingTask struct {
	FoodID   uint    `json:"food_id"`
	RestName string  `json:"rest_name"`
	RestLat  float64 `json:"rest_lat"`
	RestLon  float64 `json:"rest_lon"`
	FoodLat  float64 `json:"food_lat"`
	FoodLon  float64 `json:"food_lon"`
	Item     string  `json:"item"`
}

type AcceptRequest struct {
	FoodID string `form:"food_id" json:"food_id" binding:"required,numeric"`
}

// Captain lists pending food orders waiting for a rider
func (h *Handler) Captain(c *gin.Context) {
	orders, err := h.orders.ListPending(c.Request.Context(), models.OrderTypeFood)
	if err != nil {
		renderError(c, err, gin.H{"pending_tasks": []PendingTask{}})
		return
	}

	tasks := make([]PendingTask, 0, len(orders))
	for _, o := range orders {
		tasks = append(tasks, PendingTask{
			FoodID:   o.ID,
			RestName: o.RestName,
			RestLat:  o.RestLat,
			RestLon:  o.RestLon,
			FoodLat:  o.FoodLat,
			FoodLon:  o.FoodLon,
			Item:     o.Item,
		})
	}
	c.JSON(http.StatusOK, gin.H{"count": len(tasks), "pending_tasks": tasks})
}

// Accept assigns the calling captain to a pending order
func (h *Handler) Accept(c *gin.Context) {
	var req AcceptRequest
	if err := c.ShouldBind(&req); err != nil {
		renderError(c, fmt.Errorf("%w: food_id: %v", services.ErrMissingField, err), gin.H{"redirect": "/captain"})
		return
	}
	// numeric admits signs and decimals
	orderID, err := strconv.ParseUint(req.FoodID, 10, 64)
	if err != nil {
		renderError(c, fmt.Errorf("%w: food_id", services.ErrMissingField), gin.H{"redirect": "/captain"})
		return
	}

	order, err := h.orders.Accept(c.Request.Context(), uint(orderID), middleware.GetUserID(c))
	if err != nil {
		renderError(c, err, gin.H{"redirect": "/captain"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Captain assigned to food order (ID: %d)!", order.ID),
		"order":    order,
		"redirect": "/captain",
	})
}
