package bootstrap

import (
	"context"
	"fmt"
	"log"

	"notes-web/internal/config"
	"notes-web/internal/controller"
	"notes-web/internal/pkg/logger"
	"notes-web/internal/repository/contract"
	"notes-web/internal/repository/memory"
	"notes-web/internal/repository/redisstore"
	"notes-web/internal/repository/unitofwork"
	"notes-web/internal/service"

	pktNats "notes-web/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController   controller.IAuthController
	NoteController   controller.INoteController
	HealthController controller.IHealthController

	SessionService service.ISessionService
	Logger         logger.ILogger

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	activityLogger logger.ILogger
	closers        []func() error
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	activityLogger := logger.NewIsolatedLogger(cfg.App.ActivityLogFilePath)

	c := &Container{Logger: sysLogger, activityLogger: activityLogger}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}

	// 2. Sessions
	sessionRepo, err := c.newSessionRepository(cfg.Session)
	if err != nil {
		return nil, err
	}
	sessionService := service.NewSessionService(sessionRepo)

	// 3. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermillLogger,
	)
	c.closers = append(c.closers, pubSub.Close)

	var forwarder service.EventForwarder
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn("bootstrap", "NATS unavailable, activity will not be forwarded", map[string]interface{}{"error": err.Error()})
		} else {
			forwarder = natsPub
			c.closers = append(c.closers, func() error { natsPub.Close(); return nil })
		}
	}

	publisherService := service.NewPublisherService(cfg.App.ActivityTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ActivityTopic,
		activityLogger,
		sysLogger,
		forwarder,
	)

	// 4. Services
	authService := service.NewAuthService(uowFactory, sessionService, publisherService, sysLogger, cfg.App.PasswordHashCost)
	noteService := service.NewNoteService(uowFactory, publisherService, sysLogger)

	// 5. Controllers
	c.AuthController = controller.NewAuthController(authService)
	c.NoteController = controller.NewNoteController(noteService, authService)
	c.HealthController = controller.NewHealthController(sqlDB)
	c.SessionService = sessionService
	c.ConsumerService = consumerService

	return c, nil
}

func (c *Container) newSessionRepository(cfg config.SessionConfig) (contract.SessionRepository, error) {
	switch cfg.Store {
	case "", "memory":
		return memory.NewSessionRepository(cfg.TTL), nil
	case "redis":
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.RedisURL}
		}
		rdb := redis.NewClient(opt)
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			_ = rdb.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		c.closers = append(c.closers, rdb.Close)
		return redisstore.NewSessionRepository(rdb, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Store)
	}
}

// Close releases the event bus and external connections, then flushes
// the loggers.
func (c *Container) Close() {
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			c.Logger.Warn("bootstrap", "Failed to close resource", map[string]interface{}{"error": err.Error()})
		}
	}
	_ = c.activityLogger.Sync()
	_ = c.Logger.Sync()
}
