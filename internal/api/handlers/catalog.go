package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home_energy_simulator/internal/api/models"
	"home_energy_simulator/internal/model"
	"home_energy_simulator/internal/simulator"
)

// GetCatalog handles GET /api/v1/catalog
func GetCatalog(c *gin.Context) {
	names := model.CatalogNames()
	appliances := make([]models.ApplianceEntry, 0, len(names))
	for _, name := range names {
		info := model.ApplianceCatalog[name]
		appliances = append(appliances, models.ApplianceEntry{
			Name:    string(name),
			Label:   info.Label,
			PowerKW: info.PowerKW,
		})
	}

	c.JSON(http.StatusOK, models.CatalogResponse{
		Appliances:     appliances,
		BaselineLoadKW: model.BaselineLoadKW,
		StepHours:      simulator.StepHours,
	})
}
