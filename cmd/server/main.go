package main

import (
	"fmt"
	"log"

	"github.com/SubhajitChakrabort/ProfilePage/adapters/event"
	httpAdapter "github.com/SubhajitChakrabort/ProfilePage/adapters/http"
	"github.com/SubhajitChakrabort/ProfilePage/adapters/media_storage"
	"github.com/SubhajitChakrabort/ProfilePage/adapters/persistence"
	"github.com/SubhajitChakrabort/ProfilePage/internal/application/service"
	contentUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/content"
	memoryUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/memory"
	profileUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/profile"
	sectionUC "github.com/SubhajitChakrabort/ProfilePage/internal/application/usecase/section"
	"github.com/SubhajitChakrabort/ProfilePage/internal/config"
	"github.com/SubhajitChakrabort/ProfilePage/pkg/logger"
)

func main() {
	fmt.Println("Start ProfilePage API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	store, err := media_storage.NewLocalDiskStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("FATAL: cannot initialize uploads directory: %v", err)
	}

	// Redis and Kafka are optional; without them the cache is disabled and
	// media events are skipped.
	var profileCache profileUC.Cache
	if cfg.Redis.Addr != "" {
		redisClient, err := persistence.NewRedisClient(cfg, appLogger)
		if err != nil {
			log.Fatalf("FATAL: cannot connect Redis: %v", err)
		}
		defer redisClient.Close()
		profileCache = persistence.NewRedisProfileCache(redisClient, appLogger)
	} else {
		appLogger.Warn("REDIS_ADDR not set, profile cache disabled")
	}

	var kafkaClient *event.KafkaProducerClient
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaClient, err = event.NewKafkaProducerClient(cfg)
		if err != nil {
			log.Fatalf("FATAL: cannot init Kafka: %v", err)
		}
		defer kafkaClient.Close()
	} else {
		appLogger.Warn("KAFKA_BROKERS not set, media events disabled")
	}

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	contentRepo := persistence.NewPostgresContentRepo(dbPool)
	skillImageRepo := persistence.NewPostgresSkillImageRepo(dbPool)
	sectionRepo := persistence.NewPostgresSectionRepo(dbPool)
	memoryRepo := persistence.NewPostgresMemoryRepo(dbPool)

	// Services
	resolver := service.NewIdentityResolver(userRepo)

	// Use Cases
	profileUseCase := profileUC.NewProfileUseCase(userRepo, sectionRepo, store, resolver, profileCache, kafkaClient, appLogger)
	contentUseCase := contentUC.NewContentUseCase(contentRepo, skillImageRepo, store, resolver, kafkaClient, appLogger)
	sectionUseCase := sectionUC.NewSectionUseCase(sectionRepo, userRepo, store, resolver, profileCache, kafkaClient, appLogger)
	memoryUseCase := memoryUC.NewMemoryUseCase(memoryRepo, store, resolver, kafkaClient, appLogger)

	// HTTP Handlers
	handlers := httpAdapter.Handlers{
		Profile: httpAdapter.NewProfileHandler(profileUseCase, store, appLogger),
		Content: httpAdapter.NewContentHandler(contentUseCase, store),
		Section: httpAdapter.NewSectionHandler(sectionUseCase, store),
		Memory:  httpAdapter.NewMemoryHandler(memoryUseCase, store),
		File:    httpAdapter.NewFileHandler(store, appLogger),
	}

	router := httpAdapter.SetupRouter(handlers, appLogger)

	appLogger.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
