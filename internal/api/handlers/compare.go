package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/analysis"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/api/models"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/compare"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/data"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"

	"github.com/gin-gonic/gin"
)

// CompareHandler handles comparison requests
type CompareHandler struct {
	store *RunStore
}

// NewCompareHandler creates a new compare handler
func NewCompareHandler(store *RunStore) *CompareHandler {
	return &CompareHandler{store: store}
}

// RunCompare handles POST /api/v1/compare
func (h *CompareHandler) RunCompare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	providers, err := h.resolveProviders(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_PROVIDERS",
				Message: err.Error(),
			},
		})
		return
	}

	window, err := parseWindow(req.Options.StartDate, req.Options.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_WINDOW",
				Message: err.Error(),
			},
		})
		return
	}

	opts := compare.Options{Window: window}
	if req.Battery != nil {
		params := req.Battery.ToModelParams()
		opts.Battery = &params
		opts.InitialSOC = req.Battery.InitialSOC
	}

	outcome, err := compare.Run(model.Series(req.Series), providers, opts)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "COMPARE_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	id := h.store.Put(outcome)
	c.JSON(http.StatusOK, h.buildResponse(id, outcome, req.Options.IncludeLedgers))
}

// GetLedger handles GET /api/v1/compare/:id/ledger
func (h *CompareHandler) GetLedger(c *gin.Context) {
	id := c.Param("id")
	outcome, ok := h.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RUN_NOT_FOUND",
				Message: fmt.Sprintf("no comparison run with id %q", id),
			},
		})
		return
	}

	name := c.Query("provider")
	if name == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "MISSING_PROVIDER",
				Message: "query parameter 'provider' is required",
			},
		})
		return
	}

	result, ok := outcome.Results[name]
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "PROVIDER_NOT_FOUND",
				Message: fmt.Sprintf("run %s has no result for provider %q", id, name),
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       id,
		"provider": name,
		"ledger":   models.ConvertLedger(result.Ledger),
	})
}

func (h *CompareHandler) resolveProviders(req models.CompareRequest) ([]*model.Provider, error) {
	if len(req.Providers) > 0 {
		for _, p := range req.Providers {
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("provider %q: %w", p.Name, err)
			}
		}
		return req.Providers, nil
	}
	if req.UseSampleProviders {
		return data.SampleProviders(), nil
	}
	return nil, fmt.Errorf("no providers given; supply providers or set use_sample_providers")
}

func (h *CompareHandler) buildResponse(id string, outcome *compare.Outcome, includeLedgers bool) models.CompareResponse {
	resp := models.CompareResponse{
		ID:       id,
		Status:   "completed",
		Rankings: outcome.Ranked,
	}

	for _, f := range outcome.Failures {
		resp.Failures = append(resp.Failures, models.ProviderFailure{
			Provider: f.Provider,
			Error:    f.Err.Error(),
		})
	}

	if includeLedgers {
		resp.Ledgers = make(map[string][]models.LedgerRow, len(outcome.Results))
		for name, result := range outcome.Results {
			resp.Ledgers[name] = models.ConvertLedger(result.Ledger)
		}
	}

	return resp
}

// parseWindow builds an inclusive date window from YYYY-MM-DD bounds. Empty
// strings leave that side unbounded.
func parseWindow(start, end string) (analysis.Window, error) {
	var w analysis.Window
	if start != "" {
		t, err := time.Parse("2006-01-02", start)
		if err != nil {
			return w, fmt.Errorf("invalid start_date %q: %w", start, err)
		}
		w.Start = t
	}
	if end != "" {
		t, err := time.Parse("2006-01-02", end)
		if err != nil {
			return w, fmt.Errorf("invalid end_date %q: %w", end, err)
		}
		w.End = t
	}
	if !w.Start.IsZero() && !w.End.IsZero() && w.End.Before(w.Start) {
		return w, fmt.Errorf("end_date %s is before start_date %s", end, start)
	}
	return w, nil
}
