// Package router đăng ký các route thuộc domain order.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"cafe_pos/config"
	"cafe_pos/internal/api/middleware"
	orderhdl "cafe_pos/internal/api/order/handler"
	apirouter "cafe_pos/internal/api/router"
)

// Register đăng ký tất cả route order lên v1.
func Register(v1 fiber.Router, r *apirouter.Router, cfg *config.Configuration) error {
	orderHandler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("tạo OrderHandler: %w", err)
	}

	staffMiddleware := []fiber.Handler{middleware.AuthRequired(cfg.JwtSecret)}
	adminMiddleware := []fiber.Handler{
		middleware.AuthRequired(cfg.JwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
	}

	// Các endpoint từ màn hình gọi món của khách — không yêu cầu đăng nhập
	// POST /orders/submit-draft — khách gửi đơn nháp
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/submit-draft", nil, orderHandler.HandleSubmitDraft)
	// POST /orders/request-payment/:tableId — khách bấm yêu cầu thanh toán
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/request-payment/:tableId", nil, orderHandler.HandleRequestPayment)
	// GET /orders/active/:tableId — màn hình gọi món tải lại đơn đang mở
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/active/:tableId", nil, orderHandler.HandleActiveByTable)
	// PUT /orders/items/:id — khách sửa món của đơn đang mở
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/items/:id", nil, orderHandler.HandleUpdateItems)

	// Các endpoint từ màn hình thu ngân — yêu cầu đăng nhập nhân viên
	// POST /orders/confirm/:id — xác nhận đơn nháp, món vào bếp
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/confirm/:id", staffMiddleware, orderHandler.HandleConfirmOrder)
	// POST /orders/accept-payment/:tableId — chấp nhận thanh toán tiền mặt
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/accept-payment/:tableId", staffMiddleware, orderHandler.HandleAcceptPayment)
	// POST /orders/decline-payment/:tableId — từ chối yêu cầu thanh toán
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/decline-payment/:tableId", staffMiddleware, orderHandler.HandleDeclinePayment)
	// POST /orders/cancel/:id — hủy đơn
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/cancel/:id", staffMiddleware, orderHandler.HandleCancelOrder)
	// GET /orders/status/:status — danh sách đơn theo trạng thái
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/status/:status", staffMiddleware, orderHandler.HandleFindByStatus)
	// GET /orders/table/:tableId — lịch sử đơn của bàn
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/table/:tableId", staffMiddleware, orderHandler.HandleFindByTable)

	// Thống kê bán hàng — chỉ admin
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/stats/top-products", adminMiddleware, orderHandler.HandleTopProducts)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/stats/daily-revenue", adminMiddleware, orderHandler.HandleDailyRevenue)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/stats/revenue-by-category", adminMiddleware, orderHandler.HandleRevenueByCategory)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/stats/top-employees", adminMiddleware, orderHandler.HandleTopEmployees)

	// CRUD đọc chung cho nhân viên
	r.RegisterCRUDRoutes(v1, "/orders", orderHandler, apirouter.CRUDConfig{
		Find: true, FindById: true, Paginate: true, Count: true,
	}, staffMiddleware)

	return nil
}
