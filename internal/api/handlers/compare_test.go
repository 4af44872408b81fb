package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/bstlaurentnz/energy-provider-comparison/internal/api/models"
	"github.com/bstlaurentnz/energy-provider-comparison/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	store := NewRunStore()
	compareHandler := NewCompareHandler(store)
	simulateHandler := NewSimulateHandler()
	providersHandler := NewProvidersHandler()

	api := router.Group("/api/v1")
	api.POST("/compare", compareHandler.RunCompare)
	api.GET("/compare/:id/ledger", compareHandler.GetLedger)
	api.POST("/simulate", simulateHandler.RunSimulate)
	api.GET("/providers", providersHandler.ListProviders)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func requestSeries() []model.Reading {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var series []model.Reading
	for h := 0; h < 24; h++ {
		r := model.Reading{Timestamp: start.Add(time.Duration(h) * time.Hour)}
		if h >= 9 && h < 16 {
			r.PVPowerKW = 2.5
		}
		if h >= 6 && h < 23 {
			r.ConsumptionPowerKW = 1.2
		}
		series = append(series, r)
	}
	return series
}

func TestRunCompareWithSampleProviders(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/v1/compare", models.CompareRequest{
		Series:             requestSeries(),
		UseSampleProviders: true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "completed", resp.Status)
	require.Len(t, resp.Rankings, 3)
	assert.Equal(t, 1, resp.Rankings[0].Rank)
	assert.Empty(t, resp.Ledgers, "ledgers only on request")
}

func TestRunCompareIncludeLedgers(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/v1/compare", models.CompareRequest{
		Series:             requestSeries(),
		UseSampleProviders: true,
		Options:            models.CompareOptions{IncludeLedgers: true},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Ledgers, 3)
	for _, ledger := range resp.Ledgers {
		assert.Len(t, ledger, 24)
	}
}

func TestRunCompareValidation(t *testing.T) {
	router := testRouter()

	// No series.
	w := postJSON(t, router, "/api/v1/compare", models.CompareRequest{UseSampleProviders: true})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Series but no providers and no sample flag.
	w = postJSON(t, router, "/api/v1/compare", models.CompareRequest{Series: requestSeries()})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_PROVIDERS", resp.Error.Code)

	// Malformed window.
	w = postJSON(t, router, "/api/v1/compare", models.CompareRequest{
		Series:             requestSeries(),
		UseSampleProviders: true,
		Options:            models.CompareOptions{StartDate: "January 1st"},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetLedgerRoundTrip(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/v1/compare", models.CompareRequest{
		Series:             requestSeries(),
		UseSampleProviders: true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.CompareResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	name := resp.Rankings[0].Provider
	path := fmt.Sprintf("/api/v1/compare/%s/ledger?provider=%s", resp.ID, url.QueryEscape(name))
	req := httptest.NewRequest(http.MethodGet, path, nil)
	lw := httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	require.Equal(t, http.StatusOK, lw.Code, lw.Body.String())

	var ledgerResp struct {
		Provider string             `json:"provider"`
		Ledger   []models.LedgerRow `json:"ledger"`
	}
	require.NoError(t, json.Unmarshal(lw.Body.Bytes(), &ledgerResp))
	assert.Equal(t, name, ledgerResp.Provider)
	assert.Len(t, ledgerResp.Ledger, 24)

	// Unknown run and unknown provider both 404.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/compare/bogus/ledger?provider=x", nil)
	lw = httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	assert.Equal(t, http.StatusNotFound, lw.Code)

	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/compare/%s/ledger?provider=nope", resp.ID), nil)
	lw = httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	assert.Equal(t, http.StatusNotFound, lw.Code)

	// Missing provider query is a 400.
	req = httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/compare/%s/ledger", resp.ID), nil)
	lw = httptest.NewRecorder()
	router.ServeHTTP(lw, req)
	assert.Equal(t, http.StatusBadRequest, lw.Code)
}

func TestRunSimulate(t *testing.T) {
	router := testRouter()

	provider := &model.Provider{
		Name:        "flat",
		DailyCharge: 1.0,
		TimePeriods: []model.TimeOfUsePeriod{
			{
				Name:         "all",
				BuyPrice:     0.30,
				BuybackPrice: 0.10,
				TimeRanges:   []model.TimeRange{{StartHour: 0, EndHour: 24, Days: []int{0, 1, 2, 3, 4, 5, 6}}},
			},
		},
	}

	w := postJSON(t, router, "/api/v1/simulate", models.SimulateRequest{
		Series:   requestSeries(),
		Provider: provider,
		Battery: models.BatteryConfig{
			CapacityKWh:    10,
			Efficiency:     0.95,
			MaxChargeKW:    5,
			MaxDischargeKW: 5,
			SystemCost:     8000,
		},
		IncludeLedger: true,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "completed", resp.Status)
	assert.LessOrEqual(t, resp.Summary.TotalCost, resp.Baseline.TotalCost)
	assert.InDelta(t, resp.Baseline.TotalEnergyCost-resp.Summary.TotalEnergyCost,
		resp.Economics.Savings, 1e-9)
	assert.Len(t, resp.Ledger, 24)
}

func TestRunSimulateInvalidBattery(t *testing.T) {
	router := testRouter()

	w := postJSON(t, router, "/api/v1/simulate", models.SimulateRequest{
		Series: requestSeries(),
		Provider: &model.Provider{
			Name: "flat",
			TimePeriods: []model.TimeOfUsePeriod{
				{
					Name:       "all",
					BuyPrice:   0.30,
					TimeRanges: []model.TimeRange{{StartHour: 0, EndHour: 24, Days: []int{0}}},
				},
			},
		},
		Battery: models.BatteryConfig{CapacityKWh: 10, Efficiency: 2},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProviders(t *testing.T) {
	router := testRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/providers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Providers []models.ProviderInfo `json:"providers"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Providers, 3)
	assert.NotEmpty(t, resp.Providers[0].Periods)
}

func TestRunStoreEviction(t *testing.T) {
	store := NewRunStore()
	store.limit = 2

	a := store.Put(nil)
	b := store.Put(nil)
	c := store.Put(nil)

	_, ok := store.Get(a)
	assert.False(t, ok, "oldest run evicted")
	_, ok = store.Get(b)
	assert.True(t, ok)
	_, ok = store.Get(c)
	assert.True(t, ok)
}
