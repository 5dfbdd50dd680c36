package app

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"lgs_prep_backend/internal/config"
	"lgs_prep_backend/internal/controller"
	"lgs_prep_backend/internal/engine"
	"lgs_prep_backend/internal/repository"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/pkg/configwatcher"
	"lgs_prep_backend/pkg/database"
	"lgs_prep_backend/pkg/logger"
	"lgs_prep_backend/pkg/monitoring"
	"lgs_prep_backend/pkg/security"
	"lgs_prep_backend/pkg/tracing"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	aggregator      *engine.Aggregator
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	question   *repository.QuestionRepository
	session    *repository.SessionRepository
	answer     *repository.AnswerRepository
	curriculum *repository.CurriculumRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	exam       *service.ExamService
	dashboard  *service.DashboardService
	question   *service.QuestionService
	curriculum *service.CurriculumService
}

type controllers struct {
	auth       *controller.AuthController
	exam       *controller.ExamController
	dashboard  *controller.DashboardController
	question   *controller.QuestionController
	curriculum *controller.CurriculumController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		question:   repository.NewQuestionRepository(db),
		session:    repository.NewSessionRepository(db),
		answer:     repository.NewAnswerRepository(db),
		curriculum: repository.NewCurriculumRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	selector := engine.NewSelector(repos.question, repos.curriculum, rng)
	sessionEngine := engine.NewSessionEngine(repos.question, repos.answer, repos.session, selector)

	a.aggregator = engine.NewAggregator(cfg.Engine)

	s.exam = service.NewExamService(sessionEngine, repos.session, s.storage)
	s.dashboard = service.NewDashboardService(repos.answer, repos.curriculum, a.aggregator, rdb)
	s.question = service.NewQuestionService(repos.question, s.storage)
	s.curriculum = service.NewCurriculumService(repos.curriculum)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		exam:       controller.NewExamController(s.exam),
		dashboard:  controller.NewDashboardController(s.dashboard),
		question:   controller.NewQuestionController(s.question),
		curriculum: controller.NewCurriculumController(s.curriculum),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(func(c *gin.Context) {
		c.Set("config", a.Config)
		c.Next()
	})

	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	windowMinutes := cfg.RateLimit.WindowMinutes
	if windowMinutes <= 0 {
		windowMinutes = 1
	}
	router.Use(security.RateLimiter(maxRequests, time.Duration(windowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// watchConfig re-applies hot-reloadable settings when the config file
// changes. Only the engine tuning constants take effect without a
// restart; server, database and JWT settings need one.
func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		a.aggregator.UpdateSettings(newCfg.Engine)
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
		logger.Log.Info("Config reloaded, engine settings applied")
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg.Server.Mode)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("lgs-prep-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	}
	return gin.DebugMode
}

func (a *App) Run() {
	defer logger.Log.Sync()

	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
