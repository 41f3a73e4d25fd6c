package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tariff-compare/internal/api/models"
	"tariff-compare/internal/config"
	"tariff-compare/internal/model"
)

// TariffsHandler serves the configured tariff definitions.
type TariffsHandler struct {
	cfg *config.Config
}

func NewTariffsHandler(cfg *config.Config) *TariffsHandler {
	return &TariffsHandler{cfg: cfg}
}

// ListTariffs handles GET /api/v1/tariffs.
func (h *TariffsHandler) ListTariffs(c *gin.Context) {
	defs := make([]model.TariffDefinition, 0, len(model.StaticTariffs))
	for _, id := range model.StaticTariffs {
		defs = append(defs, model.TariffDefinition{
			ID:     id,
			Prices: h.cfg.Tariffs[id],
		})
	}
	c.JSON(http.StatusOK, models.TariffsResponse{Tariffs: defs})
}
