// Package router đăng ký các route thuộc domain catalog: products, categories, dining-tables.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"cafe_pos/config"
	cataloghdl "cafe_pos/internal/api/catalog/handler"
	"cafe_pos/internal/api/middleware"
	apirouter "cafe_pos/internal/api/router"
)

// Register đăng ký tất cả route catalog lên v1.
func Register(v1 fiber.Router, r *apirouter.Router, cfg *config.Configuration) error {
	productHandler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("tạo ProductHandler: %w", err)
	}
	categoryHandler, err := cataloghdl.NewCategoryHandler()
	if err != nil {
		return fmt.Errorf("tạo CategoryHandler: %w", err)
	}
	tableHandler, err := cataloghdl.NewDiningTableHandler()
	if err != nil {
		return fmt.Errorf("tạo DiningTableHandler: %w", err)
	}

	staffMiddleware := []fiber.Handler{middleware.AuthRequired(cfg.JwtSecret)}
	adminMiddleware := []fiber.Handler{
		middleware.AuthRequired(cfg.JwtSecret),
		middleware.RequireRole(middleware.RoleAdmin),
	}

	// GET /products/available — menu công khai cho màn hình gọi món của khách
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/available", nil, productHandler.HandleFindAvailable)

	// Đọc catalog cần đăng nhập, ghi catalog chỉ dành cho admin
	r.RegisterCRUDRoutes(v1, "/products", productHandler, apirouter.CRUDConfig{
		Find: true, FindById: true, Paginate: true, Count: true,
	}, staffMiddleware)
	r.RegisterCRUDRoutes(v1, "/products", productHandler, apirouter.CRUDConfig{
		InsOne: true, UpdById: true, DelById: true,
	}, adminMiddleware)

	r.RegisterCRUDRoutes(v1, "/categories", categoryHandler, apirouter.CRUDConfig{
		Find: true, FindById: true, Paginate: true, Count: true,
	}, staffMiddleware)
	r.RegisterCRUDRoutes(v1, "/categories", categoryHandler, apirouter.CRUDConfig{
		InsOne: true, UpdById: true, DelById: true,
	}, adminMiddleware)

	r.RegisterCRUDRoutes(v1, "/dining-tables", tableHandler, apirouter.CRUDConfig{
		Find: true, FindById: true, Paginate: true, Count: true,
	}, staffMiddleware)
	r.RegisterCRUDRoutes(v1, "/dining-tables", tableHandler, apirouter.CRUDConfig{
		InsOne: true, UpdById: true, DelById: true,
	}, adminMiddleware)

	return nil
}
