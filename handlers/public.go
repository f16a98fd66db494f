package handlers

import (
	"net/http"

	"food-delivery-admin/models"
	"food-delivery-admin/statemachine"

	"github.com/gin-gonic/gin"
)

// Health reports liveness of the console itself
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "Delivery Back-Office Console",
		"version": "1.0.0",
	})
}

// GetStateMachineInfo returns the delivery order lifecycle
func GetStateMachineInfo(c *gin.Context) {
	var terminal []models.OrderStatus
	for _, s := range models.AllStatuses {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, s)
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"terminal_states": terminal,
		"description":     "Delivery Order Lifecycle State Machine",
	})
}
