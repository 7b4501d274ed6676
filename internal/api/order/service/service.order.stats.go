// Package ordersvc - Thống kê bán hàng từ các đơn đã thanh toán (PAID).
package ordersvc

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	ordermodels "cafe_pos/internal/api/order/models"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
)

// TopProductStat số lượng bán ra của một món.
type TopProductStat struct {
	ProductID   primitive.ObjectID `json:"productId" bson:"_id"`
	ProductName string             `json:"productName" bson:"productName"`
	Quantity    int64              `json:"quantity" bson:"quantity"`
	Revenue     int64              `json:"revenue" bson:"revenue"`
}

// DailyRevenueStat doanh thu theo ngày (giờ địa phương của server).
type DailyRevenueStat struct {
	Date       string `json:"date" bson:"_id"` // YYYY-MM-DD
	OrderCount int64  `json:"orderCount" bson:"orderCount"`
	Revenue    int64  `json:"revenue" bson:"revenue"`
}

// CategoryRevenueStat doanh thu theo danh mục món.
type CategoryRevenueStat struct {
	CategoryID   primitive.ObjectID `json:"categoryId" bson:"_id"`
	CategoryName string             `json:"categoryName" bson:"categoryName"`
	Quantity     int64              `json:"quantity" bson:"quantity"`
	Revenue      int64              `json:"revenue" bson:"revenue"`
}

// EmployeeStat số đơn và doanh thu do một nhân viên xác nhận.
type EmployeeStat struct {
	EmployeeID primitive.ObjectID `json:"employeeId" bson:"_id"`
	OrderCount int64              `json:"orderCount" bson:"orderCount"`
	Revenue    int64              `json:"revenue" bson:"revenue"`
}

// paidInRangeMatch stage lọc đơn PAID trong khoảng thời gian [from, to) (Unix millisecond).
// from/to bằng 0 thì bỏ qua cận tương ứng.
func paidInRangeMatch(from, to int64) bson.D {
	cond := bson.M{"status": ordermodels.StatusPaid}
	timeRange := bson.M{}
	if from > 0 {
		timeRange["$gte"] = from
	}
	if to > 0 {
		timeRange["$lt"] = to
	}
	if len(timeRange) > 0 {
		cond["paidAt"] = timeRange
	}
	return bson.D{{Key: "$match", Value: cond}}
}

// aggregate chạy pipeline và decode kết quả vào out.
func (s *OrderService) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := s.Collection().Aggregate(ctx, pipeline)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)
	if err := cursor.All(ctx, out); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// TopSellingProducts trả về các món bán chạy nhất theo số lượng.
func (s *OrderService) TopSellingProducts(ctx context.Context, from, to int64, limit int64) ([]TopProductStat, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		paidInRangeMatch(from, to),
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$group", Value: bson.M{
			"_id":         "$items.productId",
			"productName": bson.M{"$last": "$items.productName"},
			"quantity":    bson.M{"$sum": "$items.quantity"},
			"revenue":     bson.M{"$sum": "$items.subtotal"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	results := make([]TopProductStat, 0)
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DailyRevenue trả về doanh thu theo ngày trong khoảng thời gian.
func (s *OrderService) DailyRevenue(ctx context.Context, from, to int64) ([]DailyRevenueStat, error) {
	pipeline := mongo.Pipeline{
		paidInRangeMatch(from, to),
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$dateToString": bson.M{
				"format": "%Y-%m-%d",
				"date":   bson.M{"$toDate": "$paidAt"},
			}},
			"orderCount": bson.M{"$sum": 1},
			"revenue":    bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	results := make([]DailyRevenueStat, 0)
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// revenueByCategoryPipeline dựng pipeline doanh thu theo danh mục: mở từng
// dòng món, tra products để lấy danh mục, gom theo danh mục rồi tra tên.
// Món đã bị xóa khỏi menu vẫn còn trong đơn cũ thì dòng đó rơi khỏi thống kê
// ($unwind trên lookup rỗng); danh mục đã xóa thì giữ dòng với tên rỗng.
func revenueByCategoryPipeline(from, to int64) mongo.Pipeline {
	return mongo.Pipeline{
		paidInRangeMatch(from, to),
		{{Key: "$unwind", Value: "$items"}},
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Products,
			"localField":   "items.productId",
			"foreignField": "_id",
			"as":           "product",
		}}},
		{{Key: "$unwind", Value: "$product"}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$product.categoryId",
			"quantity": bson.M{"$sum": "$items.quantity"},
			"revenue":  bson.M{"$sum": "$items.subtotal"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         global.MongoDB_ColNames.Categories,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "category",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$category",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"categoryName": "$category.name",
			"quantity":     1,
			"revenue":      1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "revenue", Value: -1}}}},
	}
}

// RevenueByCategory trả về doanh thu gom theo danh mục món.
func (s *OrderService) RevenueByCategory(ctx context.Context, from, to int64) ([]CategoryRevenueStat, error) {
	results := make([]CategoryRevenueStat, 0)
	if err := s.aggregate(ctx, revenueByCategoryPipeline(from, to), &results); err != nil {
		return nil, err
	}
	return results, nil
}

// TopEmployees trả về nhân viên xác nhận nhiều đơn nhất.
func (s *OrderService) TopEmployees(ctx context.Context, from, to int64, limit int64) ([]EmployeeStat, error) {
	if limit <= 0 {
		limit = 10
	}
	pipeline := mongo.Pipeline{
		paidInRangeMatch(from, to),
		{{Key: "$match", Value: bson.M{"employeeId": bson.M{"$ne": nil}}}},
		{{Key: "$group", Value: bson.M{
			"_id":        "$employeeId",
			"orderCount": bson.M{"$sum": 1},
			"revenue":    bson.M{"$sum": "$total"},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "orderCount", Value: -1}}}},
		{{Key: "$limit", Value: limit}},
	}

	results := make([]EmployeeStat, 0)
	if err := s.aggregate(ctx, pipeline, &results); err != nil {
		return nil, err
	}
	return results, nil
}
