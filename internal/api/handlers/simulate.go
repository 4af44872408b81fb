package handlers

import (
	"net/http"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/api/models"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/simulate"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles single-tariff battery simulation requests
type SimulateHandler struct{}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler() *SimulateHandler {
	return &SimulateHandler{}
}

// RunSimulate handles POST /api/v1/simulate. It runs the series twice, with
// the requested battery and with the no-battery baseline, and reports the
// battery economics between the two.
func (h *SimulateHandler) RunSimulate(c *gin.Context) {
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

	if err := req.Provider.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PROVIDER",
				Message: err.Error(),
			},
		})
		return
	}

	batt, err := model.NewBattery(req.Battery.ToModelParams(), req.Battery.InitialSOC)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_BATTERY",
				Message: err.Error(),
			},
		})
		return
	}

	series := model.Series(req.Series)
	engine := simulate.New()

	withBattery, err := engine.Run(series, req.Provider, batt)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	baseline, err := engine.Run(series, req.Provider, model.NoBattery())
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "SIMULATION_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	resp := models.SimulateResponse{
		Status:    "completed",
		Summary:   analysis.Summarize(withBattery, analysis.Window{}),
		Baseline:  analysis.Summarize(baseline, analysis.Window{}),
		Economics: analysis.CompareEconomics(withBattery, baseline, req.Battery.CapacityKWh, req.Battery.SystemCost),
	}
	if req.IncludeLedger {
		resp.Ledger = models.ConvertLedger(withBattery.Ledger)
	}

	c.JSON(http.StatusOK, resp)
}
