package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"maplemed-support-be/internal/config"
	"maplemed-support-be/internal/constant"
	"maplemed-support-be/internal/controller"
	"maplemed-support-be/internal/handler"
	"maplemed-support-be/internal/pkg/logger"
	"maplemed-support-be/internal/repository/contract"
	"maplemed-support-be/internal/repository/implementation"
	"maplemed-support-be/internal/repository/memory"
	"maplemed-support-be/internal/service"
	"maplemed-support-be/pkg/database"
	"maplemed-support-be/pkg/llm"
	"maplemed-support-be/pkg/llm/factory"
	pktNats "maplemed-support-be/pkg/nats"
	"maplemed-support-be/pkg/support/orchestrator"
	"maplemed-support-be/pkg/support/router"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
)

type Container struct {
	// Controllers
	SupportController controller.ISupportController
	ChatHandler       *handler.ChatHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for the CLI, which skips the HTTP layer
	SupportService service.ISupportService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the support stack from cfg. Optional infrastructure
// (NATS) degrades to a warning; the configured profile store must connect.
func NewContainer(cfg *config.Config, sysLogger logger.ILogger) (*Container, error) {
	c := &Container{Logger: sysLogger}

	// 1. Completion Service
	provider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:      cfg.Llm.Provider,
		Model:         cfg.Llm.Model,
		OllamaBaseURL: cfg.Llm.OllamaBaseURL,
		GroqBaseURL:   cfg.Llm.GroqBaseURL,
		GroqAPIKey:    cfg.Llm.GroqAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	guarded := llm.NewGuard(provider, cfg.Llm.Timeout)
	sysLogger.Info("Bootstrap", "LLM provider ready", map[string]interface{}{
		"provider": cfg.Llm.Provider,
		"model":    cfg.Llm.Model,
		"timeout":  cfg.Llm.Timeout.String(),
	})

	// 2. Routing core
	orch := orchestrator.New(
		guarded,
		router.NewRouter(router.WithClassifiedEmergencyEscalation(cfg.Router.EscalateClassifiedEmergency)),
		sysLogger,
	)

	// 3. Storage
	sessionRepo := memory.NewSessionRepository(cfg.Session.TTL, cfg.Session.CleanupInterval)
	profileRepo, err := c.newProfileRepository(cfg)
	if err != nil {
		return nil, err
	}

	// 4. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	c.closers = append(c.closers, func() { pubSub.Close() })

	var external service.EventSink
	if cfg.App.NatsEnabled {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("Bootstrap", "NATS unavailable, crisis events stay in process", map[string]interface{}{"error": err.Error()})
		} else {
			external = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	publisherService := service.NewPublisherService(constant.SupportEventsTopic, pubSub, external)
	c.ConsumerService = service.NewConsumerService(pubSub, constant.SupportEventsTopic, logger.NewIsolatedLogger(cfg.App.AuditLogFilePath))

	// 5. Services & Controllers
	c.SupportService = service.NewSupportService(orch, sessionRepo, profileRepo, publisherService, sysLogger)
	c.SupportController = controller.NewSupportController(c.SupportService)
	c.ChatHandler = handler.NewChatHandler(c.SupportService, sysLogger)

	return c, nil
}

func (c *Container) newProfileRepository(cfg *config.Config) (contract.ProfileRepository, error) {
	switch cfg.Session.ProfileStore {
	case "", "memory":
		return memory.NewProfileRepository(), nil

	case "redis":
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		c.closers = append(c.closers, func() { rdb.Close() })
		return implementation.NewRedisProfileRepository(rdb, cfg.Session.ProfileTTL), nil

	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			c.closers = append(c.closers, func() { sqlDB.Close() })
		}
		return implementation.NewProfileRepository(db), nil

	default:
		return nil, fmt.Errorf("unsupported PROFILE_STORE %q", cfg.Session.ProfileStore)
	}
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
