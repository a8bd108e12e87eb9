package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"home_energy_simulator/internal/api/models"
	"home_energy_simulator/internal/store"
)

// HouseholdHandler serves the stored household presets.
type HouseholdHandler struct {
	store *store.Store
}

func NewHouseholdHandler(st *store.Store) *HouseholdHandler {
	return &HouseholdHandler{store: st}
}

// List handles GET /api/v1/households
func (h *HouseholdHandler) List(c *gin.Context) {
	presets := h.store.All()
	households := make([]models.HouseholdEntry, 0, len(presets))
	for _, p := range presets {
		households = append(households, models.HouseholdEntry{
			Name:  p.Name,
			Label: p.Label,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"households": households,
		"count":      len(households),
	})
}

// Get handles GET /api/v1/households/:name
func (h *HouseholdHandler) Get(c *gin.Context) {
	name := c.Param("name")
	preset, ok := h.store.Get(name)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "UNKNOWN_PRESET",
				Message: fmt.Sprintf("no household preset named %q", name),
			},
		})
		return
	}

	c.JSON(http.StatusOK, models.HouseholdDetail{
		Name:      preset.Name,
		Label:     preset.Label,
		Household: preset.Household,
	})
}
