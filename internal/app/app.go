package app

import (
	"context"
	"dark_patterns_game/internal/config"
	"dark_patterns_game/internal/controller"
	"dark_patterns_game/internal/dashboard"
	"dark_patterns_game/internal/repository"
	"dark_patterns_game/internal/service"
	"dark_patterns_game/internal/util"
	"dark_patterns_game/pkg/configwatcher"
	"dark_patterns_game/pkg/database"
	"dark_patterns_game/pkg/logger"
	"dark_patterns_game/pkg/monitoring"
	"dark_patterns_game/pkg/security"
	"dark_patterns_game/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	rateLimiter     *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	stopWatch       context.CancelFunc
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user     *repository.UserRepository
	score    *repository.ScoreRepository
	sessions repository.SessionStore
}

type services struct {
	score   *service.ScoreService
	session *service.SessionService
	feed    *service.LeaderboardFeed
}

type controllers struct {
	score   *controller.ScoreController
	session *controller.SessionController
	pattern *controller.PatternController
	live    *controller.LiveController
	health  *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client, cfg *config.Config) (*repositories, error) {
	sessions, err := repository.NewSessionStore(cfg.Session.Store, rdb, cfg.Session.KeyspacePrefix, cfg.Session.TTL())
	if err != nil {
		return nil, err
	}
	return &repositories{
		user:     repository.NewUserRepository(db),
		score:    repository.NewScoreRepository(db),
		sessions: sessions,
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}
	s.score = service.NewScoreService(repos.user, repos.score)
	s.session = service.NewSessionService(repos.sessions, s.score, cfg.Session.Secret, cfg.Session.TTL())
	s.feed = service.NewLeaderboardFeed(s.score, dashboard.DefaultInterval)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		score:   controller.NewScoreController(s.score),
		session: controller.NewSessionController(s.session),
		pattern: controller.NewPatternController(),
		live:    controller.NewLiveController(s.feed),
		health:  controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	a.rateLimiter = security.NewRateLimiter(cfg.RateLimit.MaxRequests, window)
	router.Use(a.rateLimiter.Middleware())

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// New wires an App around already opened connections. rdb may be nil when
// the memory session store is used.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) (*App, error) {
	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos, err := app.initRepositories(db, rdb, cfg)
	if err != nil {
		return nil, err
	}
	app.services = app.initServices(repos, cfg)
	controllers := app.initControllers(app.services, db, rdb)

	// 监控初始化
	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Recovery())
	if cfg.Server.Mode != gin.ReleaseMode {
		router.Use(gin.Logger())
	}
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, cfg)

	app.RegisterConfigCallback(logger.SetLevel)
	app.services.feed.Start()
	return app, nil
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// release 模式默认不自动迁移，需要 -migrate
	if cfg.Server.Mode != gin.ReleaseMode || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
		logger.Log.Info("Database migrated")
	}

	var rdb *redis.Client
	if cfg.Session.Store == util.SessionStoreRedis {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app, err := New(cfg, db, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to assemble application", zap.Error(err))
	}

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

// watchConfig 监听 configs/config.yaml，变更后依次回调
func (a *App) watchConfig(dir string) {
	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatch = cancel
	go func() {
		err := configwatcher.Watch(ctx, dir, 500*time.Millisecond, func(cfg *config.Config) {
			for _, cb := range a.configCallbacks {
				cb(cfg)
			}
			logger.Log.Info("Configuration reloaded", zap.String("logLevel", logger.CurrentLevel().String()))
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

// Close releases background resources.
func (a *App) Close() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	if a.services != nil {
		a.services.feed.Stop()
		if st, ok := a.services.session.Store.(*repository.MemorySessionStore); ok {
			st.Stop()
		}
	}
	if a.tracer != nil {
		if err := a.tracer.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

func (a *App) Run(configDir string) {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	a.watchConfig(configDir)

	// 启动服务器
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	a.Close()
	logger.Log.Info("Server exiting")
}
