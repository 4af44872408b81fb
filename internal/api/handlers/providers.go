package handlers

import (
	"net/http"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/api/models"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/data"

	"github.com/gin-gonic/gin"
)

// ProvidersHandler serves the built-in sample tariffs
type ProvidersHandler struct{}

// NewProvidersHandler creates a new providers handler
func NewProvidersHandler() *ProvidersHandler {
	return &ProvidersHandler{}
}

// ListProviders handles GET /api/v1/providers
func (h *ProvidersHandler) ListProviders(c *gin.Context) {
	samples := data.SampleProviders()

	infos := make([]models.ProviderInfo, 0, len(samples))
	for _, p := range samples {
		info := models.ProviderInfo{
			Name:          p.Name,
			DailyCharge:   p.DailyCharge,
			GSTApplicable: p.GSTApplicable,
		}
		for _, period := range p.TimePeriods {
			info.Periods = append(info.Periods, analysis.PeriodSummary{
				Name:         period.Name,
				BuyPrice:     period.BuyPrice,
				BuybackPrice: period.BuybackPrice,
			})
		}
		infos = append(infos, info)
	}

	c.JSON(http.StatusOK, gin.H{"providers": infos})
}
