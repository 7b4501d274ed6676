// Package cataloghdl - Handler CRUD cho domain catalog.
package cataloghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	basehdl "cafe_pos/internal/api/base/handler"
	catalogdto "cafe_pos/internal/api/catalog/dto"
	catalogmodels "cafe_pos/internal/api/catalog/models"
	catalogsvc "cafe_pos/internal/api/catalog/service"
)

// ProductHandler xử lý CRUD món trong menu.
type ProductHandler struct {
	basehdl.BaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo ProductHandler mới.
func NewProductHandler() (*ProductHandler, error) {
	svc, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProductService: %w", err)
	}
	h := &ProductHandler{ProductService: svc}
	h.BaseService = svc
	return h, nil
}

// HandleFindAvailable xử lý GET /products/available — menu cho màn hình gọi món.
func (h *ProductHandler) HandleFindAvailable(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		data, err := h.ProductService.FindAvailable(c.Context())
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleSuccess(c, data)
	})
}

// CategoryHandler xử lý CRUD danh mục món.
type CategoryHandler struct {
	basehdl.BaseHandler[catalogmodels.Category, catalogdto.CategoryCreateInput, catalogdto.CategoryUpdateInput]
	CategoryService *catalogsvc.CategoryService
}

// NewCategoryHandler tạo CategoryHandler mới.
func NewCategoryHandler() (*CategoryHandler, error) {
	svc, err := catalogsvc.NewCategoryService()
	if err != nil {
		return nil, fmt.Errorf("tạo CategoryService: %w", err)
	}
	h := &CategoryHandler{CategoryService: svc}
	h.BaseService = svc
	return h, nil
}

// DiningTableHandler xử lý CRUD bàn trong quán.
type DiningTableHandler struct {
	basehdl.BaseHandler[catalogmodels.DiningTable, catalogdto.DiningTableCreateInput, catalogdto.DiningTableUpdateInput]
	TableService *catalogsvc.DiningTableService
}

// NewDiningTableHandler tạo DiningTableHandler mới.
func NewDiningTableHandler() (*DiningTableHandler, error) {
	svc, err := catalogsvc.NewDiningTableService()
	if err != nil {
		return nil, fmt.Errorf("tạo DiningTableService: %w", err)
	}
	h := &DiningTableHandler{TableService: svc}
	h.BaseService = svc
	return h, nil
}
