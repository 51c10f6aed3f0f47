package handlers

import (
	"net/http"

	"foodieride-api/middleware"
	"foodieride-api/services"

	"github.com/gin-gonic/gin"
)

type BookRequest struct {
	OrderType   string `form:"order_type" json:"order_type"`
	Restaurant  string `form:"restaurant" json:"restaurant"`
	FoodAddress string `form:"food_address" json:"food_address"`
	Item        string `form:"item" json:"item"`
}

// Home greets the customer and lists nearby restaurants
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	page := gin.H{"is_logged_in": true}

	username, err := h.auth.Username(ctx, middleware.GetUserID(c))
	if err != nil {
		page["error"] = "Error loading user data"
	} else {
		page["username"] = username
	}
	page["restaurants"] = h.orders.Restaurants(ctx)
	c.JSON(http.StatusOK, page)
}

// Dashboard returns the customer's orders with rider details and notices
func (h *Handler) Dashboard(c *gin.Context) {
	ctx := c.Request.Context()
	customerID := middleware.GetUserID(c)

	restaurants := h.orders.Restaurants(ctx)
	orders, err := h.orders.ListForCustomer(ctx, customerID)
	if err != nil {
		renderError(c, err, gin.H{"restaurants": restaurants, "orders": []any{}})
		return
	}
	notes, err := h.notifier.ForCustomer(ctx, customerID)
	if err != nil {
		renderError(c, err, gin.H{"restaurants": restaurants, "orders": orders})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurants":   restaurants,
		"count":         len(orders),
		"orders":        orders,
		"notifications": notes,
	})
}

// BookPage lists the restaurants a customer can order from
func (h *Handler) BookPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"restaurants": h.orders.Restaurants(c.Request.Context())})
}

// Book places a food order (customer only)
func (h *Handler) Book(c *gin.Context) {
	ctx := c.Request.Context()

	var req BookRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.orders.Create(ctx, middleware.GetUserID(c), services.BookingRequest{
		Type:        req.OrderType,
		Restaurant:  req.Restaurant,
		FoodAddress: req.FoodAddress,
		Item:        req.Item,
	})
	if err != nil {
		renderError(c, err, gin.H{"restaurants": h.orders.Restaurants(ctx)})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Order placed successfully!",
		"order":    order,
		"redirect": "/dashboard",
	})
}
