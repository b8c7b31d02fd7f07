package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	SeedCatalog bool   `env:"SEED_CATALOG" envDefault:"true"`

	LLMProvider string        `env:"LLM_PROVIDER" envDefault:"openai"`
	LLMAPIKey   string        `env:"LLM_API_KEY"`
	LLMBaseURL  string        `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel    string        `env:"LLM_MODEL" envDefault:"gpt-4o-mini"`
	LLMTimeout  time.Duration `env:"LLM_TIMEOUT" envDefault:"20s"`

	DeckSize             int     `env:"DECK_SIZE" envDefault:"15"`
	DeckPaddingPerBucket int     `env:"DECK_PADDING_PER_BUCKET" envDefault:"3"`
	ESGMinScore          float64 `env:"ESG_MIN_SCORE" envDefault:"7.5"`
	PortfolioMinLiked    int     `env:"PORTFOLIO_MIN_LIKED" envDefault:"1"`
	MinInvestmentAmount  float64 `env:"MIN_INVESTMENT_AMOUNT" envDefault:"10"`

	SentimentCacheTTL time.Duration `env:"SENTIMENT_CACHE_TTL" envDefault:"6h"`
	AIRateLimitWindow time.Duration `env:"AI_RATE_LIMIT_WINDOW" envDefault:"1m"`
	AIRateLimitMax    int           `env:"AI_RATE_LIMIT_MAX" envDefault:"20"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPass     string `env:"SMTP_PASS"`
	SMTPFrom     string `env:"SMTP_FROM"`
	SMTPFromName string `env:"SMTP_FROM_NAME" envDefault:"StockMatch"`
	SMTPUseTLS   bool   `env:"SMTP_USE_TLS" envDefault:"false"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
