// Package ordersvc - Service đơn hàng (orders).
package ordersvc

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "cafe_pos/internal/api/base/service"
	catalogsvc "cafe_pos/internal/api/catalog/service"
	orderdto "cafe_pos/internal/api/order/dto"
	ordermodels "cafe_pos/internal/api/order/models"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
	"cafe_pos/internal/logger"
	"cafe_pos/internal/utility"
)

// OrderService xử lý vòng đời đơn hàng.
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[ordermodels.Order]
	productSvc *catalogsvc.ProductService
}

// NewOrderService tạo OrderService mới.
func NewOrderService() (*OrderService, error) {
	coll, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.MongoDB_ColNames.Orders, common.ErrNotFound)
	}
	productSvc, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProductService: %w", err)
	}
	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[ordermodels.Order](coll),
		productSvc:           productSvc,
	}, nil
}

// buildItems chụp giá menu hiện tại cho từng món khách chọn.
// Món không còn bán (available=false) hoặc không tồn tại sẽ bị từ chối.
func (s *OrderService) buildItems(ctx context.Context, inputs []orderdto.OrderItemInput) ([]ordermodels.OrderItem, error) {
	if len(inputs) == 0 {
		return nil, common.ErrOrderEmptyItems
	}

	items := make([]ordermodels.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		productID, err := primitive.ObjectIDFromHex(in.ProductID)
		if err != nil {
			return nil, common.ErrInvalidFormat
		}
		product, err := s.productSvc.FindOneById(ctx, productID)
		if err != nil {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Món %s không tồn tại trong menu", in.ProductID),
				common.StatusBadRequest,
				err,
			)
		}
		if !product.Available {
			return nil, common.NewError(
				common.ErrCodeBusinessOperation,
				fmt.Sprintf("Món %s đã ngừng bán", product.Name),
				common.StatusConflict,
				nil,
			)
		}
		items = append(items, ordermodels.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    in.Quantity,
			UnitPrice:   product.Price,
			Subtotal:    in.Quantity * product.Price,
		})
	}
	return items, nil
}

// activeOrderFilter filter đơn còn sống của một bàn.
func activeOrderFilter(tableID string) bson.M {
	return bson.M{
		"tableId": tableID,
		"status":  bson.M{"$in": ActiveStatuses},
	}
}

// CreateOrder xử lý một lần gửi đơn nháp của bàn. Mỗi bàn chỉ có một đơn
// còn sống tại một thời điểm: bàn trống thì tạo đơn nháp mới, bàn đang có
// đơn nháp thì lần gửi sau thay nội dung đơn nháp đó, bàn có đơn đã vào
// bếp hoặc đang chờ thanh toán thì trả về lỗi 409. Kiểm tra và ghi chạy
// trọn vẹn dưới lock của bàn để hai lần gửi cùng lúc không tạo hai đơn.
func (s *OrderService) CreateOrder(ctx context.Context, input *orderdto.OrderCreateInput) (ordermodels.Order, error) {
	var zero ordermodels.Order

	lock := tableLocks.get(input.TableID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := s.FindOne(ctx, activeOrderFilter(input.TableID), nil)
	hasActive := err == nil
	if err != nil && !common.IsNotFound(err) {
		return zero, err
	}

	updateExisting, err := draftSubmitDecision(hasActive, existing.Status)
	if err != nil {
		return zero, err
	}

	items, err := s.buildItems(ctx, input.Items)
	if err != nil {
		return zero, err
	}

	if updateExisting {
		existing.Items = items
		existing.RecalculateTotal()
		return s.UpdateOne(ctx,
			bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{
				"items":     existing.Items,
				"total":     existing.Total,
				"updatedAt": utility.CurrentTimeInMilli(),
			}},
		)
	}

	order := ordermodels.Order{
		TableID: input.TableID,
		Items:   items,
		Status:  ordermodels.StatusDraft,
	}
	order.RecalculateTotal()

	return s.InsertOne(ctx, order)
}

// ActiveOrderByTable trả về đơn còn sống của bàn, ErrOrderNoActive nếu không có.
func (s *OrderService) ActiveOrderByTable(ctx context.Context, tableID string) (ordermodels.Order, error) {
	order, err := s.FindOne(ctx, activeOrderFilter(tableID), nil)
	if err != nil {
		if common.IsNotFound(err) {
			return order, common.ErrOrderNoActive
		}
		return order, err
	}
	return order, nil
}

// UpdateItems thay danh sách món của đơn đang mở. Đơn ở trạng thái kết thúc
// không được sửa. Chạy dưới lock của đơn để không đua với chuyển trạng thái.
func (s *OrderService) UpdateItems(ctx context.Context, orderID primitive.ObjectID, inputs []orderdto.OrderItemInput) (ordermodels.Order, error) {
	var zero ordermodels.Order

	lock := orderLocks.get(orderID.Hex())
	lock.Lock()
	defer lock.Unlock()

	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, err
	}
	if IsTerminal(order.Status) {
		return zero, common.ErrOrderTerminal
	}

	items, err := s.buildItems(ctx, inputs)
	if err != nil {
		return zero, err
	}

	order.Items = items
	order.RecalculateTotal()

	return s.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"items":     order.Items,
			"total":     order.Total,
			"updatedAt": utility.CurrentTimeInMilli(),
		}},
	)
}

// Transition chuyển trạng thái đơn dưới lock của đơn. Yêu cầu vào trước
// thắng; yêu cầu vào sau thấy trạng thái mới và bị bảng chuyển trạng thái
// từ chối nếu không còn hợp lệ.
func (s *OrderService) Transition(ctx context.Context, orderID primitive.ObjectID, to ordermodels.OrderStatus) (ordermodels.Order, error) {
	var zero ordermodels.Order

	lock := orderLocks.get(orderID.Hex())
	lock.Lock()
	defer lock.Unlock()

	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, err
	}
	if err := ValidateTransition(order.Status, to); err != nil {
		return zero, err
	}

	now := utility.CurrentTimeInMilli()
	set := bson.M{"status": to, "updatedAt": now}
	switch to {
	case ordermodels.StatusPaymentRequested:
		set["paymentRequestedAt"] = now
	case ordermodels.StatusPaid:
		set["paidAt"] = now
	}

	updated, err := s.UpdateOne(ctx, bson.M{"_id": orderID}, bson.M{"$set": set})
	if err != nil {
		return zero, err
	}
	logOrderTransition(orderID, order.Status, to)
	return updated, nil
}

// ConfirmOrder nhân viên xác nhận đơn nháp (DRAFT → SUBMITTED), ghi lại
// nhân viên xác nhận nếu có.
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID primitive.ObjectID, employeeID *primitive.ObjectID) (ordermodels.Order, error) {
	order, err := s.Transition(ctx, orderID, ordermodels.StatusSubmitted)
	if err != nil {
		return order, err
	}
	if employeeID != nil && !employeeID.IsZero() {
		return s.UpdateOne(ctx,
			bson.M{"_id": orderID},
			bson.M{"$set": bson.M{"employeeId": *employeeID, "updatedAt": utility.CurrentTimeInMilli()}},
		)
	}
	return order, nil
}

// Settle chốt đơn sang PAID một cách idempotent: lần gọi đầu áp dụng và trả
// applied=true; các lần sau trên đơn đã PAID trả về đơn hiện tại với
// applied=false, không lỗi. Đơn CANCELLED thì trả về ErrOrderTerminal.
func (s *OrderService) Settle(ctx context.Context, orderID primitive.ObjectID) (ordermodels.Order, bool, error) {
	var zero ordermodels.Order

	lock := orderLocks.get(orderID.Hex())
	lock.Lock()
	defer lock.Unlock()

	order, err := s.FindOneById(ctx, orderID)
	if err != nil {
		return zero, false, err
	}

	apply, err := settleDecision(order.Status)
	if err != nil {
		return zero, false, err
	}
	if !apply {
		return order, false, nil
	}

	now := utility.CurrentTimeInMilli()
	updated, err := s.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": ordermodels.StatusPaid, "paidAt": now, "updatedAt": now}},
	)
	if err != nil {
		return zero, false, err
	}
	logOrderTransition(orderID, order.Status, ordermodels.StatusPaid)
	return updated, true, nil
}

// logOrderTransition ghi audit log cho mỗi lần chuyển trạng thái thành công.
func logOrderTransition(orderID primitive.ObjectID, from, to ordermodels.OrderStatus) {
	logger.GetAuditLogger().WithFields(logrus.Fields{
		"orderId": orderID.Hex(),
		"from":    from,
		"to":      to,
	}).Info("Chuyển trạng thái đơn hàng")
}

// FindByStatus trả về các đơn theo trạng thái, mới nhất trước.
func (s *OrderService) FindByStatus(ctx context.Context, status ordermodels.OrderStatus) ([]ordermodels.Order, error) {
	return s.Find(ctx, bson.M{"status": status}, nil)
}

// FindByTable trả về lịch sử đơn của một bàn, mới nhất trước.
func (s *OrderService) FindByTable(ctx context.Context, tableID string) ([]ordermodels.Order, error) {
	return s.Find(ctx, bson.M{"tableId": tableID}, nil)
}
