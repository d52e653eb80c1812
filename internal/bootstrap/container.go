package bootstrap

import (
	"context"
	"log"
	"time"

	"placement-mentor-be/internal/config"
	"placement-mentor-be/internal/controller"
	"placement-mentor-be/internal/pkg/logger"
	"placement-mentor-be/internal/repository/cache"
	"placement-mentor-be/internal/repository/implementation"
	"placement-mentor-be/internal/repository/memory"
	"placement-mentor-be/internal/service"
	"placement-mentor-be/pkg/chatbot"
	"placement-mentor-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const cleanupTopicName = "STORY_CLEANUP"

type Container struct {
	// Controllers
	StoryController  controller.IStoryController
	MentorController controller.IMentorController

	// Background services (exposed for main.go to run)
	CleanupService   service.ICleanupService
	ReconcileService service.IReconcileService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	summaryRepo := implementation.NewStorySummaryRepository(db)
	detailRepo := implementation.NewStoryDetailRepository(db)

	// 2. Object store
	assetStore, err := storage.NewGCSAssetStore(
		context.Background(),
		cfg.Storage.Bucket,
		cfg.Storage.CDNDomain,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize asset store: %v", err)
	}

	// 3. Redis aggregate cache (optional; a dead Redis only costs cache hits)
	var rdb *redis.Client
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb = redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (aggregate cache disabled)", err)
		rdb = nil
	}
	storyCache := cache.NewStoryCache(rdb)

	// 4. Event bus for orphan cleanup
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisherService := service.NewPublisherService(cleanupTopicName, pubSub)
	cleanupService := service.NewCleanupService(pubSub, cleanupTopicName, detailRepo, assetStore, sysLogger)

	// 5. Services
	storyService := service.NewStoryService(
		summaryRepo,
		detailRepo,
		assetStore,
		storyCache,
		publisherService,
		sysLogger,
	)

	geminiClient := chatbot.NewGeminiClient(cfg.Keys.GoogleGemini, cfg.Ai.Model)
	queryClient := chatbot.NewQueryClient(
		geminiClient,
		cfg.Ai.MaxAttempts,
		time.Duration(cfg.Ai.BackoffBaseMs)*time.Millisecond,
	)

	sessionRepo := memory.NewSessionRepository()
	mentorService := service.NewMentorService(storyService, sessionRepo, queryClient, sysLogger)

	reconcileService := service.NewReconcileService(detailRepo, sysLogger)

	return &Container{
		StoryController:  controller.NewStoryController(storyService),
		MentorController: controller.NewMentorController(mentorService),
		CleanupService:   cleanupService,
		ReconcileService: reconcileService,
		Logger:           sysLogger,
	}
}
