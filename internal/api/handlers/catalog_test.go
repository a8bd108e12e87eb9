package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"home_energy_simulator/internal/api/models"
)

func TestGetCatalog(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/v1/catalog", GetCatalog)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CatalogResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	require.Len(t, resp.Appliances, 6)
	assert.Equal(t, "dishwasher", resp.Appliances[0].Name)
	assert.Equal(t, "washing_machine", resp.Appliances[5].Name)
	assert.InDelta(t, 0.15, resp.BaselineLoadKW, 1e-12)
	assert.InDelta(t, 0.1, resp.StepHours, 1e-12)

	for _, a := range resp.Appliances {
		assert.NotEmpty(t, a.Label)
		assert.Greater(t, a.PowerKW, 0.0)
	}
}
