package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Port     string
	MongoURI string
	RedisURL string

	// Encryption master key (32-byte hex). Required: every stored credential
	// depends on it being stable for the process lifetime.
	EncryptionMasterKey string

	// Embedding provider (OpenAI-compatible /v1/embeddings)
	EmbeddingBaseURL string
	EmbeddingAPIKey  string
	EmbeddingModel   string

	// Chat model used for qualitative profile synthesis. Shares the
	// embedding provider's base URL and key.
	SynthesisModel string

	// External content APIs
	SocialAPIBaseURL string
	VideoAPIBaseURL  string

	// Fetch limits
	FetchBatchSize int
	CrawlMaxPages  int
	CrawlMaxDepth  int

	// Periodic source refresh
	RefreshInterval time.Duration

	// Profile cache TTL (Redis)
	ProfileCacheTTL time.Duration
}

// Load loads configuration from environment variables with defaults
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "3001"),
		MongoURI: getEnv("MONGODB_URI", ""),
		RedisURL: getEnv("REDIS_URL", ""),

		EncryptionMasterKey: getEnv("ENCRYPTION_MASTER_KEY", ""),

		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "https://api.openai.com/v1"),
		EmbeddingAPIKey:  getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),

		SynthesisModel: getEnv("SYNTHESIS_MODEL", "gpt-4o-mini"),

		SocialAPIBaseURL: getEnv("SOCIAL_API_BASE_URL", "https://lunarcrush.com/api4/public"),
		VideoAPIBaseURL:  getEnv("VIDEO_API_BASE_URL", "https://www.googleapis.com/youtube/v3"),

		FetchBatchSize: getIntEnv("FETCH_BATCH_SIZE", 50),
		CrawlMaxPages:  getIntEnv("CRAWL_MAX_PAGES", 10),
		CrawlMaxDepth:  getIntEnv("CRAWL_MAX_DEPTH", 2),

		RefreshInterval: getDurationEnv("REFRESH_INTERVAL", 6*time.Hour),
		ProfileCacheTTL: getDurationEnv("PROFILE_CACHE_TTL", 15*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
