// Package router đăng ký các route thuộc kênh phối hợp (SSE).
package router

import (
	"github.com/gofiber/fiber/v3"

	"cafe_pos/config"
	coordinationhdl "cafe_pos/internal/api/coordination/handler"
	"cafe_pos/internal/api/middleware"
	apirouter "cafe_pos/internal/api/router"
)

// Register đăng ký tất cả route coordination lên v1.
func Register(v1 fiber.Router, r *apirouter.Router, cfg *config.Configuration) error {
	handler := coordinationhdl.NewCoordinationHandler()

	staffMiddleware := []fiber.Handler{middleware.AuthRequired(cfg.JwtSecret)}

	// Stream cho màn hình thu ngân — cần đăng nhập nhân viên
	apirouter.RegisterRouteWithMiddleware(v1, "/coordination", "GET", "/draft-orders", staffMiddleware, handler.HandleDraftOrders)
	apirouter.RegisterRouteWithMiddleware(v1, "/coordination", "GET", "/payment-request", staffMiddleware, handler.HandlePaymentRequest)

	// Stream cho màn hình gọi món của bàn — không yêu cầu đăng nhập
	apirouter.RegisterRouteWithMiddleware(v1, "/coordination", "GET", "/payment-response/:tableId", nil, handler.HandlePaymentResponse)

	return nil
}
