// Package orderhdl - Handler cho domain order: vòng đời đơn hàng và phối hợp
// giữa màn hình gọi món của khách và màn hình thu ngân của nhân viên.
package orderhdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "cafe_pos/internal/api/base/handler"
	orderdto "cafe_pos/internal/api/order/dto"
	ordermodels "cafe_pos/internal/api/order/models"
	ordersvc "cafe_pos/internal/api/order/service"
	"cafe_pos/internal/broker"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
	"cafe_pos/internal/logger"
)

// OrderHandler xử lý các endpoint đơn hàng.
type OrderHandler struct {
	basehdl.BaseHandler[ordermodels.Order, orderdto.OrderCreateInput, orderdto.OrderUpdateItemsInput]
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo OrderHandler mới.
func NewOrderHandler() (*OrderHandler, error) {
	svc, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("tạo OrderService: %w", err)
	}
	h := &OrderHandler{OrderService: svc}
	h.BaseService = svc
	return h, nil
}

// HandleSubmitDraft xử lý POST /orders/submit-draft.
// Lưu đơn nháp của bàn (gửi lại khi đơn còn là nháp thì thay nội dung nháp
// cũ) và báo cho màn hình thu ngân biết qua topic draft-orders. Sự kiện chỉ
// mang tính báo hiệu: thu ngân không nhận được thì đơn vẫn nằm trong DB và
// hiện lên ở lần tải danh sách tiếp theo.
func (h *OrderHandler) HandleSubmitDraft(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input orderdto.OrderCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON hoặc không khớp với cấu trúc yêu cầu. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.OrderService.CreateOrder(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		global.EventBroker.Publish(broker.TopicDraftOrders, order)

		h.HandleResponse(c, order, nil)
		return nil
	})
}

// HandleConfirmOrder xử lý POST /orders/confirm/:id — nhân viên xác nhận đơn nháp.
func (h *OrderHandler) HandleConfirmOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var employeeID *primitive.ObjectID
		if userIDStr, ok := c.Locals("user_id").(string); ok && userIDStr != "" {
			if uid, err := primitive.ObjectIDFromHex(userIDStr); err == nil {
				employeeID = &uid
			}
		}

		order, err := h.OrderService.ConfirmOrder(c.Context(), orderID, employeeID)
		if err == nil {
			logger.LogAction("order_confirm", c, map[string]interface{}{
				"resource_type": "order",
				"resource_id":   order.ID.Hex(),
			})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleUpdateItems xử lý PUT /orders/items/:id — thay danh sách món của đơn đang mở.
func (h *OrderHandler) HandleUpdateItems(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var input orderdto.OrderUpdateItemsInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationFormat,
				fmt.Sprintf("Dữ liệu gửi lên không đúng định dạng JSON. Chi tiết: %v", err),
				common.StatusBadRequest,
				err,
			))
			return nil
		}
		if err := h.ValidateInput(&input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err := h.OrderService.UpdateItems(c.Context(), orderID, input.Items)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleCancelOrder xử lý POST /orders/cancel/:id.
func (h *OrderHandler) HandleCancelOrder(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		orderID, err := primitive.ObjectIDFromHex(c.Params("id"))
		if err != nil {
			h.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		order, err := h.OrderService.Transition(c.Context(), orderID, ordermodels.StatusCancelled)
		if err == nil {
			logger.LogAction("order_cancel", c, map[string]interface{}{
				"resource_type": "order",
				"resource_id":   order.ID.Hex(),
			})
		}
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleRequestPayment xử lý POST /orders/request-payment/:tableId.
// Khách bấm yêu cầu thanh toán: đơn của bàn chuyển sang PAYMENT_REQUESTED
// và mã bàn được đẩy lên topic payment-request cho màn hình thu ngân.
// Bàn không có đơn đang hoạt động thì trả lỗi rõ ràng, không nuốt im lặng.
func (h *OrderHandler) HandleRequestPayment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tableID := c.Params("tableId")
		if tableID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		order, err := h.OrderService.ActiveOrderByTable(c.Context(), tableID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		order, err = h.OrderService.Transition(c.Context(), order.ID, ordermodels.StatusPaymentRequested)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		global.EventBroker.Publish(broker.TopicPaymentRequest, tableID)

		h.HandleResponse(c, order, nil)
		return nil
	})
}

// HandleAcceptPayment xử lý POST /orders/accept-payment/:tableId.
// Thu ngân chấp nhận thanh toán tiền mặt: đơn chốt sang PAID và màn hình
// của bàn nhận được "accepted" trên topic payment-response/{tableId}.
func (h *OrderHandler) HandleAcceptPayment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tableID := c.Params("tableId")
		if tableID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		order, err := h.OrderService.ActiveOrderByTable(c.Context(), tableID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prevStatus := order.Status
		order, _, err = h.OrderService.Settle(c.Context(), order.ID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogOrderTransition(c, order.ID.Hex(), string(prevStatus), string(order.Status))
		global.EventBroker.Publish(broker.TopicPaymentResponse(tableID), broker.PaymentAccepted)

		h.HandleResponse(c, order, nil)
		return nil
	})
}

// HandleDeclinePayment xử lý POST /orders/decline-payment/:tableId.
// Thu ngân từ chối yêu cầu thanh toán: đơn quay lại SUBMITTED và màn hình
// của bàn nhận được "rejected".
func (h *OrderHandler) HandleDeclinePayment(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tableID := c.Params("tableId")
		if tableID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		order, err := h.OrderService.ActiveOrderByTable(c.Context(), tableID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		prevStatus := order.Status
		order, err = h.OrderService.Transition(c.Context(), order.ID, ordermodels.StatusSubmitted)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogOrderTransition(c, order.ID.Hex(), string(prevStatus), string(order.Status))
		global.EventBroker.Publish(broker.TopicPaymentResponse(tableID), broker.PaymentRejected)

		h.HandleResponse(c, order, nil)
		return nil
	})
}

// HandleActiveByTable xử lý GET /orders/active/:tableId — màn hình gọi món
// tải lại đơn đang mở của bàn (active edit).
func (h *OrderHandler) HandleActiveByTable(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tableID := c.Params("tableId")
		if tableID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		order, err := h.OrderService.ActiveOrderByTable(c.Context(), tableID)
		h.HandleResponse(c, order, err)
		return nil
	})
}

// HandleFindByStatus xử lý GET /orders/status/:status.
func (h *OrderHandler) HandleFindByStatus(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		status, err := ordersvc.ParseOrderStatus(c.Params("status"))
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}

		orders, err := h.OrderService.FindByStatus(c.Context(), status)
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// HandleFindByTable xử lý GET /orders/table/:tableId — lịch sử đơn của bàn.
func (h *OrderHandler) HandleFindByTable(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		tableID := c.Params("tableId")
		if tableID == "" {
			h.HandleResponse(c, nil, common.ErrRequiredField)
			return nil
		}

		orders, err := h.OrderService.FindByTable(c.Context(), tableID)
		h.HandleResponse(c, orders, err)
		return nil
	})
}

// statsRange đọc from/to/limit từ query string cho các endpoint thống kê.
func statsRange(c fiber.Ctx) (from, to, limit int64) {
	from, _ = strconv.ParseInt(c.Query("from", "0"), 10, 64)
	to, _ = strconv.ParseInt(c.Query("to", "0"), 10, 64)
	limit, _ = strconv.ParseInt(c.Query("limit", "10"), 10, 64)
	return from, to, limit
}

// HandleTopProducts xử lý GET /orders/stats/top-products.
func (h *OrderHandler) HandleTopProducts(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		from, to, limit := statsRange(c)
		stats, err := h.OrderService.TopSellingProducts(c.Context(), from, to, limit)
		h.HandleResponse(c, stats, err)
		return nil
	})
}

// HandleDailyRevenue xử lý GET /orders/stats/daily-revenue.
func (h *OrderHandler) HandleDailyRevenue(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		from, to, _ := statsRange(c)
		stats, err := h.OrderService.DailyRevenue(c.Context(), from, to)
		h.HandleResponse(c, stats, err)
		return nil
	})
}

// HandleRevenueByCategory xử lý GET /orders/stats/revenue-by-category.
func (h *OrderHandler) HandleRevenueByCategory(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		from, to, _ := statsRange(c)
		stats, err := h.OrderService.RevenueByCategory(c.Context(), from, to)
		h.HandleResponse(c, stats, err)
		return nil
	})
}

// HandleTopEmployees xử lý GET /orders/stats/top-employees.
func (h *OrderHandler) HandleTopEmployees(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		from, to, limit := statsRange(c)
		stats, err := h.OrderService.TopEmployees(c.Context(), from, to, limit)
		h.HandleResponse(c, stats, err)
		return nil
	})
}
