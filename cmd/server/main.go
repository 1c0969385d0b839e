package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/todoflow/backend/api/handler"
	"github.com/todoflow/backend/internal/config"
	"github.com/todoflow/backend/internal/infrastructure/monitor"
	pgInfra "github.com/todoflow/backend/internal/infrastructure/postgres"
	redisInfra "github.com/todoflow/backend/internal/infrastructure/redis"
	"github.com/todoflow/backend/internal/middleware"
	"github.com/todoflow/backend/internal/outbox"
	"github.com/todoflow/backend/internal/router"
	"github.com/todoflow/backend/internal/services"
	"github.com/todoflow/backend/internal/services/lifecycle"
	"github.com/todoflow/backend/internal/store"
	"github.com/todoflow/backend/pkg/httpcontext"
	"github.com/todoflow/backend/pkg/logger"
	"github.com/todoflow/backend/repository"
	"github.com/todoflow/backend/repository/memory"
	pgRepo "github.com/todoflow/backend/repository/postgres"
	authUC "github.com/todoflow/backend/usecase/auth"
	listUC "github.com/todoflow/backend/usecase/list"
	settingsUC "github.com/todoflow/backend/usecase/settings"
	tagUC "github.com/todoflow/backend/usecase/tag"
	taskUC "github.com/todoflow/backend/usecase/task"

	"github.com/jackc/pgx/v5/pgxpool"
	goRedis "github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	// Postgres is optional; without it the compiled-in user directory serves
	// credential checks.
	var pool *pgxpool.Pool
	var users repository.UserDirectory = memory.NewUserDirectory(memory.DemoUsers())
	if cfg.Database.URL != "" {
		if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
			zapLogger.Fatal("migrations failed", zap.Error(err))
		}
		pool, err = pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
		if err != nil {
			zapLogger.Fatal("postgres connection failed", zap.Error(err))
		}
		manager.Register("postgres", func(ctx context.Context) error {
			pool.Close()
			return nil
		})
		users = pgRepo.NewUserDirectory(pool)
	}

	stateBolt, err := store.OpenBolt(cfg.State.Path, "state")
	if err != nil {
		zapLogger.Fatal("failed to open state store", zap.Error(err))
	}
	manager.Register("state_store", func(ctx context.Context) error {
		return stateBolt.Close()
	})

	// Redis is optional; when configured it replaces BoltDB as the client
	// state store.
	var redisClient *goRedis.Client
	var state store.Store = stateBolt
	if cfg.Redis.URL != "" {
		redisClient, err = redisInfra.NewClient(cfg.Redis)
		if err != nil {
			zapLogger.Fatal("redis connection failed", zap.Error(err))
		}
		manager.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
		state = store.NewRedis(redisClient, "state:")
	}

	queue, err := outbox.Open(cfg.Outbox.Path, "outbox")
	if err != nil {
		zapLogger.Fatal("failed to open outbox", zap.Error(err))
	}
	manager.Register("outbox", func(ctx context.Context) error {
		return queue.Close()
	})

	processor := services.NewOutboxProcessor(queue, services.NewLogSink(zapLogger), zapLogger, services.ProcessorConfig{
		Interval:   cfg.Outbox.DrainInterval,
		BatchSize:  cfg.Outbox.BatchSize,
		MaxRetries: cfg.Outbox.MaxRetries,
		Retention:  time.Duration(cfg.Outbox.RetentionHours) * time.Hour,
	})
	processor.Start()
	manager.Register("outbox_processor", func(ctx context.Context) error {
		processor.Stop(ctx)
		return nil
	})

	recorder := services.NewOutboxRecorder(processor)

	mon := monitor.New(state, queue, pool, redisClient, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	taskRepo := memory.NewTaskRepository()
	listRepo := memory.NewListRepository(memory.DemoLists()...)
	tagRepo := memory.NewTagRepository(memory.DemoTags()...)

	authUseCase := authUC.New(users, authUC.Config{
		Pepper:          cfg.Auth.Pepper,
		SessionDuration: cfg.Auth.SessionDuration,
		CookieName:      cfg.Auth.CookieName,
		CookieDays:      cfg.Auth.CookieDays,
		LoginDelay:      cfg.Auth.LoginDelay,
		LoginPath:       cfg.Auth.LoginPath,
	}, zapLogger)
	taskUseCase := taskUC.New(taskRepo, recorder, zapLogger)
	listUseCase := listUC.New(listRepo, state, recorder, zapLogger)
	tagUseCase := tagUC.New(tagRepo, taskRepo, zapLogger)
	settingsUseCase := settingsUC.New(state)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:     apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger),
		Task:     apiHandler.NewTaskHandler(taskUseCase, ctxAdapter, zapLogger),
		List:     apiHandler.NewListHandler(listUseCase, ctxAdapter, zapLogger),
		Tag:      apiHandler.NewTagHandler(tagUseCase, ctxAdapter, zapLogger),
		Settings: apiHandler.NewSettingsHandler(settingsUseCase, ctxAdapter, zapLogger),
		Pages:    apiHandler.NewPagesHandler(ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	guard := middleware.SessionGuard(authUseCase, zapLogger)
	r := router.New(handlers, guard)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
