package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"cafe_pos/internal/global"
	"cafe_pos/internal/logger"
	"cafe_pos/internal/utility"
	"cafe_pos/internal/worker"
)

// initLogger khởi tạo và cấu hình logger cho toàn bộ ứng dụng
func initLogger() {
	if err := logger.Init(nil); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	logger.GetAppLogger().Info("Logger system initialized successfully")
}

// main_thread khởi tạo và chạy Fiber server
func main_thread() {
	app := InitFiberApp()

	cfg := global.MongoDB_ServerConfig
	address := ":" + cfg.Address

	log := logger.GetAppLogger()
	log.WithFields(map[string]interface{}{
		"address":  address,
		"protocol": "HTTP",
	}).Info("Starting Fiber server...")

	listenConfig := fiber.ListenConfig{}
	if err := app.Listen(address, listenConfig); err != nil {
		log.Fatalf("Error in Fiber Listen: %v", err)
	}
}

// Hàm main
func main() {
	// Khởi tạo logger
	initLogger()

	// Khởi tạo các biến toàn cục
	InitGlobal()

	// Khởi tạo registry
	InitRegistry()

	log := logger.GetAppLogger()

	// Khởi tạo và chạy worker thu hồi yêu cầu thanh toán quá hạn
	if global.MongoDB_ServerConfig.PaymentExpiry_Enabled {
		interval := time.Duration(global.MongoDB_ServerConfig.PaymentExpiry_Interval) * time.Second
		expiryWorker, err := worker.NewPaymentExpiryWorker(interval)
		if err != nil {
			log.WithError(err).Error("Failed to create payment expiry worker, continuing without it")
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			utility.GoProtect(func() {
				expiryWorker.Start(ctx)
			})

			log.Info("⏱ [PAYMENT_EXPIRY] Payment Expiry Worker started successfully")
		}
	} else {
		log.Info("⏱ [PAYMENT_EXPIRY] Payment Expiry Worker disabled")
	}

	// Chạy Fiber server trên main thread
	main_thread()
}
