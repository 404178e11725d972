package main

import (
	"context"
	"errors"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"skillswap/internal/core/auth"
	"skillswap/internal/core/cache"
	"skillswap/internal/core/config"
	"skillswap/internal/core/database"
	"skillswap/internal/core/events"
	"skillswap/internal/core/logger"
	"skillswap/internal/core/obs"
	"skillswap/internal/core/sanitize"
	"skillswap/internal/core/server"
	"skillswap/internal/domain"
	"skillswap/internal/repo"
	"skillswap/internal/service"
	"skillswap/internal/transport/http/handler"
	"skillswap/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		stdlog.Fatalf("load config: %v", err)
	}

	log, cleanup := logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
		Enable:     cfg.Log.Rotate.Enable,
		Filename:   cfg.Log.Rotate.Filename,
		MaxSizeMB:  cfg.Log.Rotate.MaxSizeMB,
		MaxBackups: cfg.Log.Rotate.MaxBackups,
		MaxAgeDays: cfg.Log.Rotate.MaxAgeDays,
		Compress:   cfg.Log.Rotate.Compress,
	})
	defer cleanup()
	undoStdLog := logger.RedirectStdLog(log, zapcore.InfoLevel)
	defer undoStdLog()

	if cfg.App.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	gin.DefaultWriter = logger.ToWriter(log, zapcore.DebugLevel)
	gin.DefaultErrorWriter = logger.ToWriter(log, zapcore.ErrorLevel)

	// Tracing（可选）
	if cfg.Trace.Enabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.Options{
			ServiceName: cfg.App.Name,
			Version:     cfg.App.Version,
			Env:         cfg.App.Env,
			Endpoint:    cfg.Trace.Endpoint,
			Insecure:    cfg.Trace.Insecure,
		})
		if err != nil {
			log.Fatal("init tracer failed", zap.Error(err))
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(ctx)
		}()
		log.Info("tracing enabled", zap.String("endpoint", cfg.Trace.Endpoint))
	}

	// 存储
	store, ping := mustOpenStore(cfg, log)

	// Redis：视图缓存 + token 注销表；未启用时分别退化为不缓存 / 进程内注销表
	var (
		viewCache *cache.Cache
		revoker   auth.Revoker = auth.NewMemoryRevoker()
	)
	if cfg.Redis.Enabled {
		viewCache = cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		err := viewCache.Ping(ctx)
		cancel()
		if err != nil {
			log.Fatal("redis ping failed", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		defer viewCache.Close()
		revoker = auth.NewRedisRevoker(viewCache.RDB)
		log.Info("redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	// 领域事件
	var publisher events.Publisher = events.Noop{}
	if cfg.MQ.Enabled {
		p, err := events.NewAMQPPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatal("amqp connect failed", zap.Error(err))
		}
		defer p.Close()
		publisher = p
		log.Info("event publisher ready", zap.String("exchange", cfg.MQ.Exchange))
	}

	var text sanitize.Sanitizer = sanitize.Passthrough{}
	if cfg.Sanitize.StripHTML {
		text = sanitize.NewStripHTML()
	}
	var policy service.TransitionPolicy = service.Permissive{}
	if cfg.Booking.StrictTransitions {
		policy = service.DefaultTransitions()
	}

	opt := service.Options{
		Log:     log,
		Events:  publisher,
		Cache:   viewCache,
		ViewTTL: time.Duration(cfg.Redis.ViewTTLSec) * time.Second,
		Text:    text,
	}
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}
	identity := service.NewIdentity(store.Users(), jwter, revoker, opt)
	catalog := service.NewCatalog(store.Skills(), opt)
	booking := service.NewBooking(store.Sessions(), policy, opt)
	reviews := service.NewReviews(store.Reviews(), opt)
	market := service.NewMarketplace(store, opt)

	mods := &router.Registry{}
	mods.Register(
		handler.Auth{Identity: identity},
		handler.Profile{Identity: identity},
		handler.Skill{Catalog: catalog, Market: market},
		handler.Session{Booking: booking, Market: market},
		handler.Review{Reviews: reviews, Market: market},
	)

	r := router.NewAPIEngine(log, router.Deps{
		Service: cfg.App.Name,
		Auth:    identity,
		Modules: mods,
		Limits:  cfg.Limits,
		Ping:    ping,
	})

	// HTTP Server
	srv := server.New(cfg.App.HTTP, r)
	addr := srv.Addr
	if el, err := logger.ToStdLogger(log, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = el
	}

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + server.Addr(host4human, cfg.App.HTTP.Port)
	log.Info("skillswap api starting",
		zap.String("addr", addr),
		zap.String("env", cfg.App.Env),
		zap.String("store", cfg.Store.Driver),
		zap.Bool("strict_transitions", cfg.Booking.StrictTransitions),
		zap.String("health", baseURL+"/health"),
		zap.String("metrics", baseURL+"/metrics"),
		zap.String("api_v1", baseURL+"/api/v1"),
	)

	// 异步启动
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error("skillswap api start FAILED", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown", zap.Error(err))
	}
	log.Info("skillswap api stopped gracefully")
}

// mustOpenStore 按 store.driver 选择存储；返回健康检查用的 ping
func mustOpenStore(cfg *config.Config, l *zap.Logger) (domain.Store, func(context.Context) error) {
	if cfg.Store.Driver == "memory" {
		l.Warn("using in-memory store; data is lost on restart")
		return repo.NewMemStore(), nil
	}
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.Store.Driver,
		DSN:                cfg.Store.DSN,
		Username:           cfg.Store.Username,
		Password:           cfg.Store.Password,
		MaxOpenConns:       cfg.Store.MaxOpenConns,
		MaxIdleConns:       cfg.Store.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.Store.ConnMaxLifetimeMin,
		LogLevel:           cfg.Store.LogLevel,
		Log:                l,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	l.Info("database connected", zap.String("driver", cfg.Store.Driver))

	s := repo.NewGormStore(db)
	if cfg.Store.AutoMigrate {
		if err := s.Migrate(); err != nil {
			l.Fatal("automigrate failed", zap.Error(err))
		}
		l.Info("automigrate done")
	}
	sqlDB, err := db.DB()
	if err != nil {
		l.Fatal("db handle", zap.Error(err))
	}
	return s, sqlDB.PingContext
}
