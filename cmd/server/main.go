package main

import (
	"context"
	"log"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"golang.org/x/time/rate"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"Orion_Tube/internal/config"
	"Orion_Tube/internal/data"
	"Orion_Tube/internal/handler"
	"Orion_Tube/internal/middleware"
	"Orion_Tube/internal/repository"
	"Orion_Tube/internal/router"
	"Orion_Tube/internal/service"
	"Orion_Tube/pkg/logger"
	"Orion_Tube/pkg/media"
	"Orion_Tube/pkg/rabbitmq"
	"Orion_Tube/pkg/redis"
	"Orion_Tube/pkg/search"
	"Orion_Tube/pkg/storage"
)

func main() {
	// 加载.env文件和环境变量
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if err := logger.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法打开日志文件: %v", err)
	}
	if cfg.JWT.Secret == "" {
		logger.Log.Fatal("JWT_SECRET 未配置")
	}
	ctx := context.Background()

	// 初始化Redis
	var redisClient *goredis.Client
	redisClient, err = redis.InitRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Log.Fatalf("无法连接到Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Log.Info("Redis连接成功")

	// RabbitMQ只承担删除失败的存储对象的重试，连不上时降级为只记日志
	var cleanupQueue service.CleanupQueue
	rabbitMQConn, err := rabbitmq.InitRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Log.WithError(err).Warn("无法连接到RabbitMQ，存储清理失败将只记录日志")
	} else {
		defer rabbitMQConn.Close() // 确保程序退出时关闭连接
		if err := rabbitmq.DeclareQueues(rabbitMQConn); err != nil {
			logger.Log.Fatalf("声明队列失败: %v", err)
		}
		cleanupQueue = rabbitmq.NewPublisher(rabbitMQConn)
		logger.Log.Info("RabbitMQ连接成功")
	}

	// TranslateError 让唯一索引冲突统一成 gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(cfg.Mysql.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Log.Fatalf("无法连接到数据库: %v", err)
	}
	logger.Log.Info("数据库连接成功")
	if err := repository.AutoMigrate(db); err != nil {
		logger.Log.Fatalf("数据库迁移失败: %v", err)
	}
	logger.Log.Info("数据库迁移成功")

	var mediaStorage service.MediaStorage
	minioCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	minioStorage, err := storage.NewMinioStorage(minioCtx, storage.Options{
		Endpoint:  cfg.Minio.Endpoint,
		AccessKey: cfg.Minio.AccessKey,
		SecretKey: cfg.Minio.SecretKey,
		UseSSL:    cfg.Minio.UseSSL,
		Bucket:    cfg.Minio.Bucket,
		PublicURL: cfg.Minio.PublicURL,
	})
	cancel()
	if err != nil {
		logger.Log.WithError(err).Warn("MinIO不可用，上传类接口将返回依赖失败")
	} else {
		mediaStorage = minioStorage
		logger.Log.Info("MinIO连接成功")
	}

	var searcher service.VideoSearcher
	esClient, err := search.NewClient(cfg.Elastic.URL)
	if err != nil {
		logger.Log.WithError(err).Warn("Elasticsearch不可用，关键字搜索将返回依赖失败")
	} else {
		searcher = search.NewVideoIndex(esClient, cfg.Elastic.Index)
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, redisClient)
	commentRepo := repository.NewCommentRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	uow := data.NewUnitOfWork(db, videoRepo, commentRepo)
	cascade := service.NewCascade(videoRepo, commentRepo, likeRepo, tweetRepo, mediaStorage, cleanupQueue, searcher)

	userService := service.NewUserService(userRepo, videoRepo, mediaStorage, cfg.JWT.Secret, cfg.JWT.TTL)
	videoService := service.NewVideoService(videoRepo, userRepo, cascade, mediaStorage, cleanupQueue, searcher, media.NewFFProbe())
	commentService := service.NewCommentService(commentRepo, videoRepo, uow, cascade)
	tweetService := service.NewTweetService(tweetRepo, userRepo, cascade)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	subscriptionService := service.NewSubscriptionService(subRepo, userRepo, videoRepo)
	dashboardService := service.NewDashboardService(videoRepo, subRepo)

	handlers := router.Handlers{
		User:         handler.NewUserHandler(userService, cfg.UploadDir),
		Video:        handler.NewVideoHandler(videoService, cfg.UploadDir),
		Comment:      handler.NewCommentHandler(commentService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Like:         handler.NewLikeHandler(likeService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Healthcheck:  handler.NewHealthcheckHandler(),
	}
	limiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	r := router.SetupRouter(handlers, cfg.JWT.Secret, limiter)
	logger.Log.Printf("服务器将在: %s 启动", cfg.Server.Addr)
	if err := r.Run(cfg.Server.Addr); err != nil {
		logger.Log.Fatalf("服务器启动失败: %v", err)
	}
}
