package main

import (
	"github.com/sirupsen/logrus"

	"cafe_pos/config"
	"cafe_pos/internal/database"
	"cafe_pos/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục theo đúng thứ tự phụ thuộc.
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// initColNames khởi tạo tên các collection trong database.
func initColNames() {
	global.MongoDB_ColNames.Orders = "orders"
	global.MongoDB_ColNames.Products = "products"
	global.MongoDB_ColNames.Categories = "categories"
	global.MongoDB_ColNames.DiningTables = "dining_tables"

	logrus.Info("Initialized collection names")
}

// initValidator khởi tạo validator (đăng ký custom validators: no_xss, ...).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server từ file env và biến môi trường.
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB khởi tạo kết nối database.
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}
