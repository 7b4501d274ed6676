package global

import (
	"cafe_pos/config"
	"cafe_pos/internal/broker"
	"cafe_pos/internal/registry"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Orders       string // Tên collection cho đơn hàng
	Products     string // Tên collection cho sản phẩm
	Categories   string // Tên collection cho danh mục sản phẩm
	DiningTables string // Tên collection cho bàn
}

// Các biến toàn cục
var Validate *validator.Validate                                             // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                            // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                               // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName)   // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections

// EventBroker là kênh phối hợp realtime giữa terminal bàn và client nhân viên
// (fan-out best-effort, không persistence — xem internal/broker).
var EventBroker = broker.NewBroker()
