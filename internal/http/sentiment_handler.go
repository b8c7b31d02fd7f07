package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockmatch/internal/service"
)

// SentimentHandler expone el analisis de sentimiento del portfolio.
type SentimentHandler struct {
	logger    *zap.Logger
	sentiment *service.SentimentService
}

func NewSentimentHandler(logger *zap.Logger, sentiment *service.SentimentService) *SentimentHandler {
	return &SentimentHandler{logger: logger, sentiment: sentiment}
}

// Analyze maneja POST /api/sentiment-analysis.
func (h *SentimentHandler) Analyze(c *gin.Context) {
	var req struct {
		Tickers []string `json:"tickers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid sentiment request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if len(req.Tickers) == 0 {
		respondError(c, http.StatusBadRequest, "invalid request", errors.New("tickers must not be empty"))
		return
	}

	batch, err := h.sentiment.Analyze(c.Request.Context(), req.Tickers, c.ClientIP())
	if err != nil {
		h.logger.Error("sentiment analysis failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not analyze sentiment", err)
		return
	}

	c.JSON(http.StatusOK, batch)
}
