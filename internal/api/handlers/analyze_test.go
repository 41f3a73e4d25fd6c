package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tariff-compare/internal/api/models"
	"tariff-compare/internal/config"
	"tariff-compare/internal/model"
	"tariff-compare/internal/prices"
)

func testRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/api/v1/analyze", NewAnalyzeHandler(cfg).Analyze)
	router.GET("/api/v1/tariffs", NewTariffsHandler(cfg).ListTariffs)
	return router
}

func analyzeLogs(year int, month time.Month) []model.MeasurementLog {
	base := time.Date(year, month, 10, 9, 0, 0, 0, time.UTC)
	mk := func(ts time.Time, kwh float64) model.MeasurementLog {
		v := model.CounterValue(kwh * 100000)
		return model.MeasurementLog{DateTimestamp: ts.Unix(), FAEBalanced: &v}
	}
	return []model.MeasurementLog{
		mk(base, 100),
		mk(base.Add(time.Hour), 102),
		mk(base.Add(2*time.Hour), 105),
	}
}

func postAnalyze(t *testing.T, router *gin.Engine, req models.AnalyzeRequest) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	httpReq := httptest.NewRequest(http.MethodPost, "/api/v1/analyze", bytes.NewReader(body))
	httpReq.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, httpReq)
	return w
}

func testServerConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.CacheDir = t.TempDir()
	return &cfg
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Run("inline logs produce a full static comparison", func(t *testing.T) {
		router := testRouter(testServerConfig(t))
		w := postAnalyze(t, router, models.AnalyzeRequest{
			Year:    2025,
			Month:   1,
			Logs:    analyzeLogs(2025, time.January),
			Options: models.AnalyzeOptions{SkipDynamic: true},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.AnalyzeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "ok", resp.Status)
		assert.Equal(t, 2025, resp.Year)
		assert.InDelta(t, 5.0, resp.TotalKWh, 1e-9)
		assert.Equal(t, 2, resp.HourCount)
		require.Len(t, resp.Static, 4)
		assert.Zero(t, resp.Static[0].DeltaToCheapest)
		assert.Nil(t, resp.Dynamic)
		assert.Empty(t, resp.Hourly)
	})

	t.Run("include_hourly echoes the normalized series", func(t *testing.T) {
		router := testRouter(testServerConfig(t))
		w := postAnalyze(t, router, models.AnalyzeRequest{
			Year:    2025,
			Month:   1,
			Logs:    analyzeLogs(2025, time.January),
			Options: models.AnalyzeOptions{SkipDynamic: true, IncludeHourly: true},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.AnalyzeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Hourly, 2)
		assert.InDelta(t, 2.0, resp.Hourly[0].KWh, 1e-9)
		assert.InDelta(t, 3.0, resp.Hourly[1].KWh, 1e-9)
	})

	t.Run("dynamic breakdown computed from a cached price series", func(t *testing.T) {
		cfg := testServerConfig(t)
		seedPriceCache(t, cfg.CacheDir, 2025, time.January)
		router := testRouter(cfg)

		w := postAnalyze(t, router, models.AnalyzeRequest{
			Year:  2025,
			Month: 1,
			Logs:  analyzeLogs(2025, time.January),
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.AnalyzeResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "csv-cache", resp.PriceSource)
		require.NotNil(t, resp.Dynamic)
		assert.Equal(t, model.TariffDynamic, resp.Dynamic.Tariff)
		require.NotNil(t, resp.Dynamic.Dynamic)
		assert.Equal(t, 2, resp.Dynamic.Dynamic.MatchedHours)
	})

	t.Run("invalid month rejected", func(t *testing.T) {
		router := testRouter(testServerConfig(t))
		w := postAnalyze(t, router, models.AnalyzeRequest{
			Year:  2025,
			Month: 13,
			Logs:  analyzeLogs(2025, time.January),
		})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_REQUEST", resp.Error.Code)
	})

	t.Run("no consumption source rejected", func(t *testing.T) {
		router := testRouter(testServerConfig(t))
		w := postAnalyze(t, router, models.AnalyzeRequest{Year: 2025, Month: 1})
		require.Equal(t, http.StatusBadRequest, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "NO_CONSUMPTION_SOURCE", resp.Error.Code)
	})

	t.Run("logs without counters rejected", func(t *testing.T) {
		router := testRouter(testServerConfig(t))
		w := postAnalyze(t, router, models.AnalyzeRequest{
			Year:  2025,
			Month: 1,
			Logs: []model.MeasurementLog{
				{DateTimestamp: time.Date(2025, time.January, 10, 9, 0, 0, 0, time.UTC).Unix()},
			},
			Options: models.AnalyzeOptions{SkipDynamic: true},
		})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "MISSING_COLUMN", resp.Error.Code)
	})
}

// seedPriceCache persists a full month of prices so the acquisition chain
// is satisfied by its first source.
func seedPriceCache(t *testing.T, dir string, year int, month time.Month) {
	t.Helper()
	src := prices.NewSimulatedSource()
	points, err := src.Fetch(year, month)
	require.NoError(t, err)
	require.NoError(t, prices.NewFileCache(dir).Store(year, month, points))
}

func TestTariffsEndpoint(t *testing.T) {
	router := testRouter(testServerConfig(t))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tariffs", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.TariffsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tariffs, 4)
	assert.Equal(t, model.TariffG11, resp.Tariffs[0].ID)
	assert.Equal(t, []model.Zone{model.ZoneAll}, resp.Tariffs[0].Zones())
	for _, def := range resp.Tariffs[1:] {
		assert.ElementsMatch(t, []model.Zone{model.ZoneDay, model.ZoneNight}, def.Zones())
	}
}
