package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tariff-compare/internal/api/models"
	"tariff-compare/internal/config"
	"tariff-compare/internal/consumption"
	"tariff-compare/internal/cost"
	"tariff-compare/internal/model"
	"tariff-compare/internal/prices"
	"tariff-compare/internal/supla"
	"tariff-compare/internal/tariff"
)

// AnalyzeHandler runs monthly tariff analyses.
type AnalyzeHandler struct {
	cfg *config.Config
}

func NewAnalyzeHandler(cfg *config.Config) *AnalyzeHandler {
	return &AnalyzeHandler{cfg: cfg}
}

// Analyze handles POST /api/v1/analyze.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	month := time.Month(req.Month)
	from, to := supla.MonthRangeUTC(req.Year, month)

	logs, errResp := h.loadLogs(&req, from, to)
	if errResp != nil {
		c.JSON(errResp.status, errResp.body)
		return
	}

	hourly, err := consumption.Normalize(logs, from, to)
	if err != nil {
		status := http.StatusUnprocessableEntity
		code := "NORMALIZATION_FAILED"
		switch {
		case errors.Is(err, consumption.ErrEmptyInput):
			code = "EMPTY_INPUT"
		case errors.Is(err, consumption.ErrMissingColumn):
			code = "MISSING_COLUMN"
		}
		c.JSON(status, models.ErrorResponse{
			Error: models.ErrorDetail{Code: code, Message: err.Error()},
		})
		return
	}

	classifier := &tariff.Classifier{SummerWinter: h.cfg.MeterSupportsSummerWinter}
	if h.cfg.UsePolishHolidays {
		classifier.Holidays = tariff.NewPolishHolidays()
	}
	engine := cost.New(classifier)

	static, err := engine.ComputeStatic(hourly, h.cfg)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "COST_ENGINE_FAILED", Message: err.Error()},
		})
		return
	}

	resp := models.AnalyzeResponse{
		Status:    "ok",
		Year:      req.Year,
		Month:     req.Month,
		TotalKWh:  model.TotalKWh(hourly),
		HourCount: len(hourly),
		Static:    static,
	}

	if !req.Options.SkipDynamic {
		pipeline := prices.NewPipeline(prices.NewFileCache(h.cfg.CacheDir))
		points, source, err := pipeline.Acquire(req.Year, month)
		if err != nil {
			// The dynamic tariff is best-effort; the static results stand.
			log.Printf("[API] dynamic price acquisition failed: %v", err)
		} else {
			resp.Dynamic = engine.ComputeDynamic(hourly, points, h.cfg)
			resp.PriceSource = source
		}
	}

	if req.Options.IncludeHourly {
		resp.Hourly = hourly
	}
	c.JSON(http.StatusOK, resp)
}

type handlerError struct {
	status int
	body   models.ErrorResponse
}

func (h *AnalyzeHandler) loadLogs(req *models.AnalyzeRequest, from, to time.Time) ([]model.MeasurementLog, *handlerError) {
	if len(req.Logs) > 0 {
		return req.Logs, nil
	}

	token := h.cfg.Supla.Token
	channel := h.cfg.Supla.ChannelID
	if req.Supla != nil {
		token = req.Supla.Token
		channel = req.Supla.ChannelID
	}
	if token == "" {
		return nil, &handlerError{
			status: http.StatusBadRequest,
			body: models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "NO_CONSUMPTION_SOURCE",
					Message: "provide inline logs or Supla credentials",
				},
			},
		}
	}

	client, err := supla.NewClient(token, "", supla.NewLogCache(h.cfg.CacheDir))
	if err != nil {
		return nil, &handlerError{
			status: http.StatusBadRequest,
			body: models.ErrorResponse{
				Error: models.ErrorDetail{Code: "INVALID_TOKEN", Message: err.Error()},
			},
		}
	}
	logs, err := client.FetchMeasurementLogs(channel, from, to)
	if err != nil {
		return nil, &handlerError{
			status: http.StatusBadGateway,
			body: models.ErrorResponse{
				Error: models.ErrorDetail{Code: "UPSTREAM_ERROR", Message: err.Error()},
			},
		}
	}
	return logs, nil
}
