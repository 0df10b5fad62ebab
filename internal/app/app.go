package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"qna_community_backend/internal/config"
	"qna_community_backend/internal/controller"
	"qna_community_backend/internal/repository"
	"qna_community_backend/internal/service"
	"qna_community_backend/pkg/database"
	"qna_community_backend/pkg/logger"
	"qna_community_backend/pkg/monitoring"
	"qna_community_backend/pkg/security"
	"qna_community_backend/pkg/tracing"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user     *repository.UserRepository
	article  *repository.ArticleRepository
	answer   *repository.AnswerRepository
	comment  *repository.CommentRepository
	file     *repository.FileRepository
	like     *repository.LikeRepository
	bookmark *repository.BookmarkRepository
	category *repository.CategoryRepository
	tag      *repository.TagRepository
}

type services struct {
	auth    *service.AuthService
	user    *service.UserService
	article *service.ArticleService
	answer  *service.AnswerService
	comment *service.CommentService
	storage *service.StorageService
	file    *service.FileService
}

type controllers struct {
	auth    *controller.AuthController
	user    *controller.UserController
	article *controller.ArticleController
	answer  *controller.AnswerController
	comment *controller.CommentController
	file    *controller.FileController
	health  *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		article:  repository.NewArticleRepository(db),
		answer:   repository.NewAnswerRepository(db),
		comment:  repository.NewCommentRepository(db),
		file:     repository.NewFileRepository(db),
		like:     repository.NewLikeRepository(db),
		bookmark: repository.NewBookmarkRepository(db),
		category: repository.NewCategoryRepository(db),
		tag:      repository.NewTagRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.bookmark, repos.article)
	s.comment = service.NewCommentService(repos.comment, repos.article, repos.user, repos.like)
	s.answer = service.NewAnswerService(repos.user, repos.article, repos.answer, repos.file, repos.like, s.comment, db)
	s.article = service.NewArticleService(
		repos.article,
		repos.user,
		repos.answer,
		repos.comment,
		repos.file,
		repos.category,
		repos.tag,
		repos.like,
		repos.bookmark,
		rdb,
		db,
	)
	s.file = service.NewFileService(repos.file, repos.user, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:    controller.NewAuthController(s.auth, s.user),
		user:    controller.NewUserController(s.user, s.file),
		article: controller.NewArticleController(s.article),
		answer:  controller.NewAnswerController(s.answer),
		comment: controller.NewCommentController(s.comment),
		file:    controller.NewFileController(s.file),
		health:  controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.SecureHeaders())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 6000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimitByIP(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(ginMode(cfg.Server.Mode))
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("qna-community", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case "release":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

func (a *App) Run() {
	defer logger.Sync()

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

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
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
