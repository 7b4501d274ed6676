// Package router đăng ký các route thuộc domain payment.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"cafe_pos/config"
	"cafe_pos/internal/api/middleware"
	paymenthdl "cafe_pos/internal/api/payment/handler"
	paymentsvc "cafe_pos/internal/api/payment/service"
	apirouter "cafe_pos/internal/api/router"
)

// Register đăng ký tất cả route payment lên v1.
func Register(v1 fiber.Router, r *apirouter.Router, cfg *config.Configuration) error {
	vnpay := paymentsvc.NewVnPayService(cfg)
	paymentHandler, err := paymenthdl.NewPaymentHandler(vnpay)
	if err != nil {
		return fmt.Errorf("tạo PaymentHandler: %w", err)
	}

	staffMiddleware := []fiber.Handler{middleware.AuthRequired(cfg.JwtSecret)}

	// POST /payments/create/:orderId — thu ngân khởi tạo thanh toán VNPay
	apirouter.RegisterRouteWithMiddleware(v1, "/payments", "POST", "/create/:orderId", staffMiddleware, paymentHandler.HandleCreatePayment)

	// GET /bills/vnpay-return — callback từ cổng, không có token nên permitAll;
	// tính xác thực nằm ở chữ ký HMAC trong tham số
	apirouter.RegisterRouteWithMiddleware(v1, "/bills", "GET", "/vnpay-return", nil, paymentHandler.HandleVnPayReturn)

	return nil
}
