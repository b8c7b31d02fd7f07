package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"stockmatch/internal/service"
)

// ProfileHandler guarda y devuelve las respuestas del quiz.
type ProfileHandler struct {
	logger *zap.Logger
	prefs  *service.PreferenceService
}

func NewProfileHandler(logger *zap.Logger, prefs *service.PreferenceService) *ProfileHandler {
	return &ProfileHandler{logger: logger, prefs: prefs}
}

// SaveProfile maneja POST /api/user-profile.
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	var req struct {
		SessionID        string           `json:"sessionId" binding:"required"`
		Risk             string           `json:"risk" binding:"required"`
		Industries       []string         `json:"industries"`
		ESG              bool             `json:"esg"`
		InvestmentAmount *decimal.Decimal `json:"investmentAmount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid user profile request", zap.Error(err))
		respondError(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	pref, err := h.prefs.Save(c.Request.Context(), service.SavePreferenceInput{
		SessionID:        req.SessionID,
		Risk:             req.Risk,
		Industries:       req.Industries,
		ESG:              req.ESG,
		InvestmentAmount: req.InvestmentAmount,
	})
	if err != nil {
		if errors.Is(err, service.ErrPreferenceInvalidInput) {
			respondError(c, http.StatusBadRequest, "invalid user profile", err)
			return
		}
		h.logger.Error("save user profile failed", zap.String("session_id", req.SessionID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not save user profile", err)
		return
	}

	c.JSON(http.StatusOK, pref)
}

// GetProfile maneja GET /api/user-profile/:sessionId.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	pref, err := h.prefs.Get(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, service.ErrPreferenceNotFound) {
			respondError(c, http.StatusNotFound, "user profile not found", nil)
			return
		}
		h.logger.Error("get user profile failed", zap.Error(err))
		respondError(c, http.StatusInternalServerError, "could not load user profile", err)
		return
	}

	c.JSON(http.StatusOK, pref)
}
