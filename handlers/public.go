package handlers

import (
	"net/http"

	"foodieride-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports liveness
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "FoodieRide API",
		"version": "1.0.0",
	})
}

// Ride is the rider landing page; riders have no booking flow yet
func (h *Handler) Ride(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Rider page"})
}

// GetStateMachineInfo returns the order lifecycle for informational purposes
func GetStateMachineInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": statemachine.TerminalStates(),
		"description":     "Food order lifecycle state machine",
	})
}
