package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtube-go/internal/api/handler"
	"vidtube-go/internal/api/middleware"
	"vidtube-go/internal/api/router"
	"vidtube-go/internal/api/validation"
	"vidtube-go/internal/config"
	"vidtube-go/internal/infra/database"
	infraES "vidtube-go/internal/infra/elasticsearch"
	infraKafka "vidtube-go/internal/infra/kafka"
	infraMinio "vidtube-go/internal/infra/minio"
	infraRedis "vidtube-go/internal/infra/redis"
	"vidtube-go/internal/repository"
	"vidtube-go/internal/service"
	"vidtube-go/internal/worker"
	"vidtube-go/pkg/logger"
	"vidtube-go/pkg/utils"

	_ "vidtube-go/api/openapi"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title VidTube API
// @version 1.0
// @description 视频平台用户与评论 API

// @host 127.0.0.1:8000
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 输入格式: Bearer {token}

func main() {
	// 加载配置文件
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 初始化日志系统
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output, cfg.Log.FilePath); err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 初始化数据库
	if err := database.Init(&cfg.Database, cfg.App.Mode); err != nil {
		logger.Fatal("Failed to init database", zap.Error(err))
	}
	defer database.Close()

	if err := database.AutoMigrate(database.Get()); err != nil {
		logger.Fatal("Failed to auto migrate", zap.Error(err))
	}

	// 初始化Redis（令牌吊销、限流）
	if err := infraRedis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to init redis", zap.Error(err))
	}
	defer infraRedis.Close()

	// 初始化MinIO
	images, err := infraMinio.New(&cfg.MinIO)
	if err != nil {
		logger.Fatal("Failed to init minio", zap.Error(err))
	}

	// Elasticsearch 可选，失败则搜索降级到 DB
	var (
		searcher service.CommentSearcher
		esClient *infraES.Client
	)
	if cfg.Elasticsearch.Enabled {
		esClient, err = infraES.New(&cfg.Elasticsearch)
		if err != nil {
			logger.Warn("Elasticsearch init failed, search will fallback to DB", zap.Error(err))
		} else {
			if err := esClient.InitIndexes(); err != nil {
				logger.Warn("Elasticsearch index init failed", zap.Error(err))
			}
			searcher = esClient
		}
	}

	// Kafka 关闭时事件在进程内同步处理
	var producer *infraKafka.Producer
	if cfg.Kafka.Enabled {
		producer = infraKafka.NewProducer(&cfg.Kafka)
		defer producer.Close()
	}
	var index worker.CommentIndexer
	if esClient != nil {
		index = esClient
	}
	cleanupPub, eventPub := worker.Publishers(cfg.Kafka.Enabled, cfg.Elasticsearch.Enabled, producer, images, index)

	var (
		cleanup service.MediaCleanupPublisher
		events  service.CommentEventPublisher
	)
	if cleanupPub != nil {
		cleanup = cleanupPub
	}
	if eventPub != nil {
		events = eventPub
	}

	if err := validation.Register(); err != nil {
		logger.Fatal("Failed to register validators", zap.Error(err))
	}

	// 初始化依赖（Repository -> Service -> Handler）
	db := database.Get()
	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokens := utils.NewTokenManager(&cfg.JWT)
	blocklist := infraRedis.NewTokenBlocklist(infraRedis.Client)

	authService := service.NewAuthService(userRepo, images, tokens, blocklist)
	userService := service.NewUserService(userRepo, images, cleanup)
	commentService := service.NewCommentService(commentRepo, videoRepo, events, searcher)

	authHandler := handler.NewAuthHandler(authService, &cfg.Cookie, &cfg.Upload)
	userHandler := handler.NewUserHandler(userService, &cfg.Upload)
	commentHandler := handler.NewCommentHandler(commentService)

	gin.SetMode(cfg.App.Mode)
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(corsConfig(&cfg.CORS)))
	r.Use(middleware.ErrorHandler())

	// 指标中间件需先于路由注册
	router.Instrument(r)

	r.GET("/health", healthCheckHandler)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.Setup(r, authHandler, userHandler, commentHandler,
		middleware.AuthRequired(authService),
		middleware.AuthRequired(authService.ForLogout()),
		middleware.AuthRateLimit(infraRedis.Client, &cfg.RateLimit),
	)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Starting application",
		zap.String("name", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("mode", cfg.App.Mode),
		zap.String("addr", addr),
		zap.Bool("kafka", cfg.Kafka.Enabled),
		zap.Bool("elasticsearch", searcher != nil),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Received signal, shutting down", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownDuration())
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
	logger.Info("Server exited")
}

func corsConfig(cfg *config.CORSConfig) cors.Config {
	c := cors.DefaultConfig()
	if len(cfg.AllowOrigins) > 0 {
		c.AllowOrigins = cfg.AllowOrigins
	} else {
		c.AllowOrigins = []string{"http://localhost:3000"}
	}
	c.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	c.AllowCredentials = true
	c.MaxAge = 12 * time.Hour
	return c
}

// healthCheckHandler 健康检查接口
func healthCheckHandler(c *gin.Context) {
	cfg := config.Get()
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   cfg.App.Name,
		"version":   cfg.App.Version,
	})
}
