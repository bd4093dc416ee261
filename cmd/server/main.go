package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brandintel/internal/config"
	"brandintel/internal/crypto"
	"brandintel/internal/database"
	"brandintel/internal/fetchers"
	"brandintel/internal/handlers"
	"brandintel/internal/jobs"
	"brandintel/internal/logging"
	"brandintel/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting BrandIntel Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s)", cfg.Port)

	if cfg.MongoURI == "" {
		log.Fatal("❌ MONGODB_URI environment variable is required")
	}
	if cfg.EncryptionMasterKey == "" {
		log.Fatal("❌ ENCRYPTION_MASTER_KEY is required. Generate with: openssl rand -hex 32")
	}

	encryptionService, err := crypto.NewEncryptionService(cfg.EncryptionMasterKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize encryption: %v", err)
	}
	log.Println("✅ Encryption service initialized")

	mongoDB, err := database.NewMongoDB(cfg.MongoURI)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Close(context.Background())

	initCtx, cancelInit := context.WithTimeout(context.Background(), 30*time.Second)
	if err := mongoDB.Initialize(initCtx); err != nil {
		cancelInit()
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}
	cancelInit()
	log.Println("✅ MongoDB connected and indexes ensured")

	// Redis is optional; without it every profile request recomputes
	var redisService *services.RedisService
	if cfg.RedisURL != "" {
		redisService, err = services.NewRedisService(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️ Redis unavailable, profile caching disabled: %v", err)
			redisService = nil
		}
	} else {
		log.Println("⚠️ REDIS_URL not set, profile caching disabled")
	}
	defer redisService.Close()

	// Services
	sourceService := services.NewSourceService(mongoDB, encryptionService)
	contentStore := services.NewContentStoreService(mongoDB)
	embeddingService := services.NewEmbeddingService(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModel)
	memoryService := services.NewMemoryService(mongoDB, embeddingService)

	var synthesizer services.Synthesizer
	if cfg.EmbeddingAPIKey != "" {
		synthesizer = services.NewChatSynthesizer(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.SynthesisModel)
	} else {
		log.Println("⚠️ EMBEDDING_API_KEY not set, qualitative synthesis disabled")
	}
	profileService := services.NewProfileService(contentStore, redisService, synthesizer, cfg.ProfileCacheTTL)

	// Fetchers
	fetchService := fetchers.NewService(contentStore, sourceService, cfg.FetchBatchSize)
	fetchService.Register(fetchers.NewSocialFeedFetcher(cfg.SocialAPIBaseURL))
	fetchService.Register(fetchers.NewVideoChannelFetcher(cfg.VideoAPIBaseURL))
	fetchService.Register(fetchers.NewWebsiteFetcher(cfg.CrawlMaxPages, cfg.CrawlMaxDepth))

	// Periodic source refresh
	refreshScheduler, err := jobs.NewRefreshScheduler(fetchService, sourceService, profileService, cfg.RefreshInterval)
	if err != nil {
		log.Fatalf("❌ Failed to create refresh scheduler: %v", err)
	}
	if err := refreshScheduler.Start(); err != nil {
		log.Fatalf("❌ Failed to start refresh scheduler: %v", err)
	}

	// HTTP surface
	app := fiber.New(fiber.Config{
		AppName:      "BrandIntel",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 6 * time.Minute,
		BodyLimit:    2 * 1024 * 1024,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	sourceHandler := handlers.NewSourceHandler(sourceService)
	contentHandler := handlers.NewContentHandler(fetchService, contentStore, profileService)
	profileHandler := handlers.NewProfileHandler(profileService)
	memoryHandler := handlers.NewMemoryHandler(memoryService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api/v1")
	api.Post("/sources", sourceHandler.ConnectSource)

	brands := api.Group("/brands/:ownerId")
	brands.Get("/sources", sourceHandler.ListSources)
	brands.Delete("/sources/:sourceId", sourceHandler.DisconnectSource)
	brands.Post("/fetch", contentHandler.FetchAll)
	brands.Post("/fetch/:sourceType", contentHandler.FetchSource)
	brands.Get("/content", contentHandler.ListContent)
	brands.Get("/profile", profileHandler.GetProfile)
	brands.Post("/memory", memoryHandler.IngestMemory)
	brands.Post("/memory/search", memoryHandler.SearchMemory)
	brands.Get("/memory/stats", memoryHandler.GetMemoryStats)

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-shutdown
		log.Println("🛑 Shutting down...")

		if err := refreshScheduler.Shutdown(); err != nil {
			log.Printf("⚠️ Scheduler shutdown error: %v", err)
		}
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			log.Printf("⚠️ Server shutdown error: %v", err)
		}
	}()

	log.Printf("🌐 Listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server error: %v", err)
	}

	log.Println("👋 Goodbye")
}
