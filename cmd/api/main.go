package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stockmatch/internal/catalog"
	"stockmatch/internal/config"
	"stockmatch/internal/db"
	"stockmatch/internal/email"
	apihttp "stockmatch/internal/http"
	"stockmatch/internal/llm"
	"stockmatch/internal/repository"
	"stockmatch/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	var (
		prefRepo      repository.PreferenceRepository
		portfolioRepo repository.PortfolioRepository
		stockRepo     repository.StockRepository
	)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		if err := db.Ping(ctx, pool); err != nil {
			logger.Fatal("db ping", zap.Error(err))
		}
		if err := db.Migrate(ctx, pool); err != nil {
			logger.Fatal("db migrate", zap.Error(err))
		}
		prefRepo = repository.NewPgPreferenceRepository(pool)
		portfolioRepo = repository.NewPgPortfolioRepository(pool)
		stockRepo = repository.NewPgStockRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		prefRepo = repository.NewMemoryPreferenceRepository()
		portfolioRepo = repository.NewMemoryPortfolioRepository()
		stockRepo = repository.NewMemoryStockRepository()
	}

	if cfg.SeedCatalog {
		if _, err := service.SeedCatalogIfEmpty(ctx, logger, stockRepo, catalog.Curated()); err != nil {
			logger.Fatal("seed catalog", zap.Error(err))
		}
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	var (
		sentimentCache service.SentimentCache
		aiLimiter      service.AIRateLimiter
	)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			sentimentCache = service.NewRedisSentimentCache(redisClient)
			aiLimiter = service.NewRedisAIRateLimiter(redisClient, cfg.AIRateLimitWindow, cfg.AIRateLimitMax)
		}
		cancel()
	}
	if aiLimiter == nil {
		aiLimiter = service.NewMemoryAIRateLimiter(cfg.AIRateLimitWindow, cfg.AIRateLimitMax)
	}

	llmClient := newLLMClient(ctx, cfg, logger)

	deckSvc := service.NewDeckService(logger, stockRepo, prefRepo, nil, service.DeckOptions{
		Size:             cfg.DeckSize,
		PaddingPerBucket: cfg.DeckPaddingPerBucket,
		ESGMinScore:      cfg.ESGMinScore,
	})
	prefSvc := service.NewPreferenceService(logger, prefRepo, decimal.NewFromFloat(cfg.MinInvestmentAmount))
	portfolioSvc := service.NewPortfolioService(logger, portfolioRepo, stockRepo, prefRepo, emailSender, cfg.PortfolioMinLiked)
	sentimentSvc := service.NewSentimentService(logger, stockRepo, llmClient, sentimentCache, aiLimiter, service.SentimentOptions{
		CacheTTL: cfg.SentimentCacheTTL,
		Timeout:  cfg.LLMTimeout,
	})

	router := apihttp.NewRouter(
		logger,
		apihttp.NewDeckHandler(logger, deckSvc),
		apihttp.NewProfileHandler(logger, prefSvc),
		apihttp.NewPortfolioHandler(logger, portfolioSvc),
		apihttp.NewSentimentHandler(logger, sentimentSvc),
		apihttp.NewStockHandler(logger, stockRepo, sentimentSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Warn("server shutdown", zap.Error(err))
		}
	}()

	logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("llm_provider", cfg.LLMProvider))

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", zap.Error(err))
	}
}

// newLLMClient elige el proveedor. Sin API key o con LLM_PROVIDER=none se usa el fallback local.
func newLLMClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) llm.LLMClient {
	provider := strings.ToLower(strings.TrimSpace(cfg.LLMProvider))
	if provider == "none" || cfg.LLMAPIKey == "" {
		logger.Warn("llm disabled, sentiment will use local fallback", zap.String("provider", provider))
		return llm.DisabledClient{}
	}
	switch provider {
	case "gemini":
		client, err := llm.NewGeminiClient(ctx, cfg.LLMAPIKey, geminiModel(cfg.LLMModel))
		if err != nil {
			logger.Warn("gemini client init failed", zap.Error(err))
			return llm.DisabledClient{}
		}
		return client
	case "openai", "":
		return llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout, logger)
	default:
		logger.Warn("unknown llm provider", zap.String("provider", provider))
		return llm.DisabledClient{}
	}
}

// geminiModel evita mandar el modelo por defecto de OpenAI a Gemini.
func geminiModel(model string) string {
	if strings.HasPrefix(model, "gpt-") {
		return ""
	}
	return model
}
