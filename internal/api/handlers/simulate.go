package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home_energy_simulator/internal/api/models"
	"home_energy_simulator/internal/simulator"
)

// SimulateHandler answers day-simulation requests.
type SimulateHandler struct{}

func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// Run handles POST /api/v1/simulate
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	engine := simulator.New(simulator.Options{
		ClipSolar:        req.Options.ClipSolar,
		BinaryAppliances: req.Options.BinaryAppliances,
		HorizonHours:     req.Options.HorizonHours,
		MaxDischargeKW:   req.Options.MaxDischargeKW,
	})

	result, err := engine.Simulate(req.Household(), req.QueryTimeHours)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_CONFIG",
				Message: err.Error(),
			},
		})
		return
	}

	c.JSON(http.StatusOK, result)
}
