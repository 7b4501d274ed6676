// Package catalogsvc - Service cho domain catalog (products, categories, dining_tables).
package catalogsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "cafe_pos/internal/api/base/service"
	catalogmodels "cafe_pos/internal/api/catalog/models"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
)

// ProductService xử lý CRUD món trong menu.
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Product]
}

// NewProductService tạo ProductService mới.
func NewProductService() (*ProductService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Products, common.ErrNotFound)
	}
	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Product](coll),
	}, nil
}

// FindAvailable trả về các món đang bán, dùng cho màn hình gọi món của khách.
func (s *ProductService) FindAvailable(ctx context.Context) ([]catalogmodels.Product, error) {
	return s.Find(ctx, bson.M{"available": true}, nil)
}

// CategoryService xử lý CRUD danh mục món.
type CategoryService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.Category]
}

// NewCategoryService tạo CategoryService mới.
func NewCategoryService() (*CategoryService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Categories)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Categories, common.ErrNotFound)
	}
	return &CategoryService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.Category](coll),
	}, nil
}

// DiningTableService xử lý CRUD bàn trong quán.
type DiningTableService struct {
	*basesvc.BaseServiceMongoImpl[catalogmodels.DiningTable]
}

// NewDiningTableService tạo DiningTableService mới.
func NewDiningTableService() (*DiningTableService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.DiningTables)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.DiningTables, common.ErrNotFound)
	}
	return &DiningTableService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[catalogmodels.DiningTable](coll),
	}, nil
}

// FindByCode tìm bàn theo mã bàn.
func (s *DiningTableService) FindByCode(ctx context.Context, code string) (catalogmodels.DiningTable, error) {
	return s.FindOne(ctx, bson.M{"code": code}, nil)
}
