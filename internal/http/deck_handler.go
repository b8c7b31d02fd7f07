package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockmatch/internal/service"
)

// DeckHandler atiende el armado del mazo de cartas.
type DeckHandler struct {
	logger *zap.Logger
	decks  *service.DeckService
}

func NewDeckHandler(logger *zap.Logger, decks *service.DeckService) *DeckHandler {
	return &DeckHandler{logger: logger, decks: decks}
}

// GetStockDeck maneja POST /api/get-stock-deck.
func (h *DeckHandler) GetStockDeck(c *gin.Context) {
	var req struct {
		SessionID  string   `json:"sessionId"`
		Risk       string   `json:"risk"`
		Industries []string `json:"industries"`
		ESG        bool     `json:"esg"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid deck request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	deck, err := h.decks.DeckForRequest(c.Request.Context(), service.DeckRequest{
		SessionID:  req.SessionID,
		Risk:       req.Risk,
		Industries: req.Industries,
		ESG:        req.ESG,
	})
	if err != nil {
		h.logger.Error("build deck failed", zap.String("session_id", req.SessionID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not build stock deck", err)
		return
	}

	c.JSON(http.StatusOK, deck)
}
