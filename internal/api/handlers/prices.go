package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"tariff-compare/internal/api/models"
	"tariff-compare/internal/config"
	"tariff-compare/internal/prices"
)

// PricesHandler serves acquired monthly price series.
type PricesHandler struct {
	cfg *config.Config
}

func NewPricesHandler(cfg *config.Config) *PricesHandler {
	return &PricesHandler{cfg: cfg}
}

// GetPrices handles GET /api/v1/prices.
func (h *PricesHandler) GetPrices(c *gin.Context) {
	var req models.PricesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "INVALID_REQUEST", Message: err.Error()},
		})
		return
	}

	pipeline := prices.NewPipeline(prices.NewFileCache(h.cfg.CacheDir))
	points, source, err := pipeline.Acquire(req.Year, time.Month(req.Month))
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{Code: "ACQUISITION_EXHAUSTED", Message: err.Error()},
		})
		return
	}

	c.JSON(http.StatusOK, models.PricesResponse{
		Year:   req.Year,
		Month:  req.Month,
		Source: source,
		Stats:  prices.ComputeStats(points),
		Points: points,
	})
}
