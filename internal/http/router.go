package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter configura el router de Gin con middlewares y rutas de la API.
func NewRouter(
	logger *zap.Logger,
	deckH *DeckHandler,
	profileH *ProfileHandler,
	portfolioH *PortfolioHandler,
	sentimentH *SentimentHandler,
	stockH *StockHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.POST("/get-stock-deck", deckH.GetStockDeck)

	api.POST("/user-profile", profileH.SaveProfile)
	api.GET("/user-profile/:sessionId", profileH.GetProfile)

	api.POST("/portfolio", portfolioH.CreatePortfolio)
	api.GET("/portfolio/:sessionId", portfolioH.GetPortfolio)
	api.POST("/portfolio/:sessionId/share", portfolioH.SharePortfolio)

	api.POST("/sentiment-analysis", sentimentH.Analyze)

	api.GET("/stocks", stockH.ListStocks)
	api.GET("/stocks/:ticker/summary", stockH.GetSummary)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		}
		if sessionID := c.Param("sessionId"); sessionID != "" {
			fields = append(fields, zap.String("session_id", sessionID))
		}
		logger.Info("request", fields...)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

// respondError escribe el cuerpo de error {message, error}.
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}
