package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "convert_gateway_service/cmd/gateway/docs" // 引入生成的 Swagger 文档
	"convert_gateway_service/internal/api/handlers"
	"convert_gateway_service/internal/api/router"
	authapp "convert_gateway_service/internal/auth/app"
	converterapp "convert_gateway_service/internal/converter/app"
	"convert_gateway_service/pkg/config"
	"convert_gateway_service/pkg/database"
	"convert_gateway_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.Gateway, config.EnvConfig.GatewayLogPath)
	cfg := config.LoadConfig[config.Gateway](config.EnvConfig.Gateway, config.EnvConfig.GatewayYAMLPath)

	// 1. 初始化 MinIO 客戶端（啟動時確認 bucket 存在）
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:   fmt.Sprintf("%s:%d", cfg.MinIO.Host, cfg.MinIO.Port),
		User:       cfg.MinIO.User,
		Password:   cfg.MinIO.Password,
		BucketName: cfg.MinIO.BucketName,
		UseSSL:     cfg.MinIO.UseSSL,

		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: cfg.MinIO.RetryInterval,
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to minio after retries",
			zap.String("address", fmt.Sprintf("[%s:%d]", cfg.MinIO.Host, cfg.MinIO.Port)),
			zap.Error(err),
		)
	}

	// 2. 建立 RabbitMQ 連線管理器（process-wide 單一連線，channel per publish）
	rabbitURL := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.RabbitMQ.User, cfg.RabbitMQ.Password, cfg.RabbitMQ.IP, cfg.RabbitMQ.Port)
	rabbitManager, err := database.NewRabbitManager(database.Connection{
		ConnectStr:    rabbitURL,
		RetryCount:    cfg.RabbitMQ.RetryCount,
		RetryInterval: cfg.RabbitMQ.RetryInterval,
	})
	if err != nil {
		log.Fatalf("RabbitMQ 連線失敗: %v", err)
	}
	defer rabbitManager.Close()

	// 先宣告 durable queue 並綁定 exchange
	if err := rabbitManager.DeclareQueue(cfg.RabbitMQ.Queue, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey); err != nil {
		log.Fatalf("Queue Declare failed: %v", err)
	}

	// 3. 建立 usecase 與 handler（顯式組裝，不靠框架解析）
	authUseCase := authapp.NewAuthUseCase(cfg.AuthService.URL, cfg.AuthService.Timeout)
	converterUseCase := converterapp.NewConverterUseCase(minioClient, rabbitManager, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.RoutingKey)

	authHandler := handlers.NewAuthHandler(authUseCase)
	converterHandler := handlers.NewConverterHandler(converterUseCase, cfg.Converter.DownloadRequiresOwner)

	// 4. 建立 Fiber 應用
	r := fiber.New()

	// 添加日誌中間件
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.GatewayLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r, authHandler, converterHandler, authUseCase)

	// 5. 優雅關閉：收到訊號後停掉 HTTP，defer 收掉連線
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Log.Info("shutting down gateway")
		if err := r.Shutdown(); err != nil {
			logger.Log.Error("server shutdown failed", zap.Error(err))
		}
	}()

	// 6. 啟動 API 服務
	if err := r.Listen(":" + cfg.Port); err != nil {
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}

	logger.Log.Info("gateway stopped")
	logger.Log.Sync()
}
