package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockmatch/internal/repository"
	"stockmatch/internal/service"
)

// StockHandler expone el catalogo y los resumenes por accion.
type StockHandler struct {
	logger    *zap.Logger
	stocks    repository.StockRepository
	sentiment *service.SentimentService
}

func NewStockHandler(logger *zap.Logger, stocks repository.StockRepository, sentiment *service.SentimentService) *StockHandler {
	return &StockHandler{logger: logger, stocks: stocks, sentiment: sentiment}
}

// ListStocks maneja GET /api/stocks.
func (h *StockHandler) ListStocks(c *gin.Context) {
	stocks, err := h.stocks.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list stocks failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not list stocks", err)
		return
	}
	c.JSON(http.StatusOK, stocks)
}

// GetSummary maneja GET /api/stocks/:ticker/summary.
func (h *StockHandler) GetSummary(c *gin.Context) {
	summary, err := h.sentiment.Summary(c.Request.Context(), c.Param("ticker"), c.ClientIP())
	if err != nil {
		if errors.Is(err, service.ErrStockNotFound) {
			respondError(c, http.StatusNotFound, "stock not found", nil)
			return
		}
		h.logger.Error("stock summary failed", zap.String("ticker", c.Param("ticker")), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not load stock summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
