package basesvc

import (
	"context"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "cafe_pos/internal/api/base/models"
	"cafe_pos/internal/common"
	"cafe_pos/internal/utility"
)

// BaseServiceMongo định nghĩa các thao tác CRUD chung trên một collection MongoDB.
// Các service nghiệp vụ (order, product, ...) nhúng interface này và bổ sung
// các thao tác riêng của domain.
type BaseServiceMongo[Model any] interface {
	InsertOne(ctx context.Context, data Model) (Model, error)
	FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (Model, error)
	FindOneById(ctx context.Context, id primitive.ObjectID) (Model, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]Model, error)
	FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64) (*basemodels.PaginateResult[Model], error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}) (Model, error)
	UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (Model, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	DeleteById(ctx context.Context, id primitive.ObjectID) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
}

// BaseServiceMongoImpl là cài đặt mặc định của BaseServiceMongo,
// hoạt động trên *mongo.Collection đã được đăng ký trong registry.
type BaseServiceMongoImpl[T any] struct {
	collection *mongo.Collection
}

// NewBaseServiceMongo khởi tạo service CRUD chung cho một collection.
func NewBaseServiceMongo[T any](collection *mongo.Collection) *BaseServiceMongoImpl[T] {
	return &BaseServiceMongoImpl[T]{collection: collection}
}

// Collection trả về collection gốc cho các truy vấn đặc thù (aggregation, ...).
func (h *BaseServiceMongoImpl[T]) Collection() *mongo.Collection {
	return h.collection
}

// InsertOne chèn một document mới, tự gán createdAt / updatedAt (Unix millisecond)
// và loại bỏ các trường chuỗi rỗng để tránh ghi đè giá trị mặc định.
func (h *BaseServiceMongoImpl[T]) InsertOne(ctx context.Context, data T) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	for key, value := range dataMap {
		if str, ok := value.(string); ok && str == "" {
			delete(dataMap, key)
		}
	}

	now := utility.CurrentTimeInMilli()
	dataMap["createdAt"] = now
	dataMap["updatedAt"] = now
	delete(dataMap, "_id")

	result, err := h.collection.InsertOne(ctx, dataMap)
	if err != nil {
		return zero, common.ConvertMongoError(err)
	}

	return h.FindOne(ctx, bson.M{"_id": result.InsertedID}, nil)
}

// FindOne tìm một document theo filter, trả về ErrNotFound nếu không có.
func (h *BaseServiceMongoImpl[T]) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (T, error) {
	var result T
	err := h.collection.FindOne(ctx, filter, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return result, common.ErrNotFound
		}
		return result, common.ConvertMongoError(err)
	}
	return result, nil
}

// FindOneById tìm một document theo ObjectID.
func (h *BaseServiceMongoImpl[T]) FindOneById(ctx context.Context, id primitive.ObjectID) (T, error) {
	return h.FindOne(ctx, bson.M{"_id": id}, nil)
}

// Find trả về toàn bộ document khớp filter.
func (h *BaseServiceMongoImpl[T]) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]T, error) {
	if filter == nil || reflect.ValueOf(filter).IsZero() {
		filter = bson.M{}
	}

	cursor, err := h.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, common.ConvertMongoError(err)
	}
	return results, nil
}

// FindWithPagination trả về một trang dữ liệu kèm tổng số document,
// sắp xếp mới nhất lên đầu theo createdAt.
func (h *BaseServiceMongoImpl[T]) FindWithPagination(ctx context.Context, filter interface{}, page int64, limit int64) (*basemodels.PaginateResult[T], error) {
	if filter == nil {
		filter = bson.M{}
	}
	if page < 0 {
		page = 0
	}
	if limit <= 0 {
		limit = 10
	}

	total, err := h.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	opts := options.Find().
		SetSkip(page * limit).
		SetLimit(limit).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	items, err := h.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	return &basemodels.PaginateResult[T]{
		Items:     items,
		Page:      page,
		Limit:     limit,
		ItemCount: int64(len(items)),
		Total:     total,
	}, nil
}

// UpdateOne cập nhật một document theo filter và trả về bản ghi sau cập nhật.
func (h *BaseServiceMongoImpl[T]) UpdateOne(ctx context.Context, filter interface{}, update interface{}) (T, error) {
	var zero T

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var result T
	err := h.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return zero, common.ErrNotFound
		}
		return zero, common.ConvertMongoError(err)
	}
	return result, nil
}

// UpdateById cập nhật các trường trong data cho document có _id tương ứng,
// tự cập nhật updatedAt và không bao giờ chạm vào _id.
func (h *BaseServiceMongoImpl[T]) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (T, error) {
	var zero T

	dataMap, err := utility.ToMap(data)
	if err != nil {
		return zero, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err)
	}

	delete(dataMap, "_id")
	delete(dataMap, "createdAt")
	dataMap["updatedAt"] = utility.CurrentTimeInMilli()

	return h.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": dataMap})
}

// DeleteOne xoá một document theo filter.
func (h *BaseServiceMongoImpl[T]) DeleteOne(ctx context.Context, filter interface{}) error {
	result, err := h.collection.DeleteOne(ctx, filter)
	if err != nil {
		return common.ConvertMongoError(err)
	}
	if result.DeletedCount == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteById xoá một document theo ObjectID.
func (h *BaseServiceMongoImpl[T]) DeleteById(ctx context.Context, id primitive.ObjectID) error {
	return h.DeleteOne(ctx, bson.M{"_id": id})
}

// CountDocuments đếm số document khớp filter.
func (h *BaseServiceMongoImpl[T]) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	count, err := h.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}
	return count, nil
}

// DocumentExists kiểm tra có ít nhất một document khớp filter hay không.
func (h *BaseServiceMongoImpl[T]) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	count, err := h.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, common.ConvertMongoError(err)
	}
	return count > 0, nil
}
