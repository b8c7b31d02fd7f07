package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockmatch/internal/service"
)

// PortfolioHandler atiende la creacion, lectura y envio del portfolio.
type PortfolioHandler struct {
	logger     *zap.Logger
	portfolios *service.PortfolioService
}

func NewPortfolioHandler(logger *zap.Logger, portfolios *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{logger: logger, portfolios: portfolios}
}

// CreatePortfolio maneja POST /api/portfolio.
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req struct {
		SessionID   string           `json:"sessionId" binding:"required"`
		LikedStocks []string         `json:"likedStocks"`
		TotalValue  *decimal.Decimal `json:"totalValue"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid portfolio request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	view, err := h.portfolios.Create(c.Request.Context(), service.CreatePortfolioInput{
		SessionID:   req.SessionID,
		LikedStocks: req.LikedStocks,
		TotalValue:  req.TotalValue,
	})
	if err != nil {
		if errors.Is(err, service.ErrPortfolioInvalidInput) {
			respondError(c, http.StatusBadRequest, "invalid portfolio", err)
			return
		}
		h.logger.Error("create portfolio failed", zap.String("session_id", req.SessionID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not create portfolio", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// GetPortfolio maneja GET /api/portfolio/:sessionId.
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	view, err := h.portfolios.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, service.ErrPortfolioNotFound) {
			respondError(c, http.StatusNotFound, "portfolio not found", nil)
			return
		}
		h.logger.Error("get portfolio failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not load portfolio", err)
		return
	}

	c.JSON(http.StatusOK, view)
}

// SharePortfolio maneja POST /api/portfolio/:sessionId/share.
func (h *PortfolioHandler) SharePortfolio(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid share request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	err := h.portfolios.Share(c.Request.Context(), c.Param("sessionId"), req.Email)
	switch {
	case err == nil:
		c.JSON(http.StatusAccepted, gin.H{"status": "sent"})
	case errors.Is(err, service.ErrPortfolioNotFound):
		respondError(c, http.StatusNotFound, "portfolio not found", nil)
	case errors.Is(err, service.ErrPortfolioInvalidInput):
		respondError(c, http.StatusBadRequest, "invalid request", err)
	case errors.Is(err, service.ErrShareUnavailable):
		respondError(c, http.StatusServiceUnavailable, "email delivery unavailable", nil)
	default:
		h.logger.Error("share portfolio failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not share portfolio", err)
	}
}
