// Package paymentsvc - Luồng thanh toán của đơn hàng qua VNPay.
package paymentsvc

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	ordermodels "cafe_pos/internal/api/order/models"
	ordersvc "cafe_pos/internal/api/order/service"
	"cafe_pos/internal/broker"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
)

// PaymentService nối vòng đời đơn hàng với cổng thanh toán.
type PaymentService struct {
	vnpay    *VnPayService
	orderSvc *ordersvc.OrderService
}

// NewPaymentService tạo PaymentService mới.
func NewPaymentService(vnpay *VnPayService) (*PaymentService, error) {
	orderSvc, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("tạo OrderService: %w", err)
	}
	return &PaymentService{vnpay: vnpay, orderSvc: orderSvc}, nil
}

// CreatePayment dựng URL thanh toán VNPay cho đơn hàng.
// Đơn phải đang ở trạng thái PAYMENT_REQUESTED (khách đã bấm yêu cầu thanh toán).
// Mã tham chiếu giao dịch là id đơn hàng ở dạng hex.
func (s *PaymentService) CreatePayment(ctx context.Context, orderID primitive.ObjectID, clientIP string) (string, error) {
	order, err := s.orderSvc.FindOneById(ctx, orderID)
	if err != nil {
		return "", err
	}
	if ordersvc.IsTerminal(order.Status) {
		return "", common.ErrOrderTerminal
	}
	if order.Status != ordermodels.StatusPaymentRequested {
		return "", common.ErrOrderTransition
	}

	orderInfo := fmt.Sprintf("Thanh toan don hang ban %s", order.TableID)
	return s.vnpay.BuildPaymentURL(order.ID.Hex(), order.Total, orderInfo, clientIP, time.Now())
}

// ReturnResult kết quả xử lý callback từ cổng.
type ReturnResult struct {
	Order        ordermodels.Order `json:"order"`
	Applied      bool              `json:"applied"`      // Lần callback này có chốt đơn không
	ResponseCode string            `json:"responseCode"` // vnp_ResponseCode từ cổng
}

// HandleReturn xử lý callback vnpay-return từ cổng thanh toán.
//
// Thứ tự kiểm tra: xác thực chữ ký trước, tra cứu đơn sau — callback giả
// bị chặn trước khi đụng vào dữ liệu. Callback lặp lại trên đơn đã PAID
// được chấp nhận idempotent, không lỗi.
func (s *PaymentService) HandleReturn(ctx context.Context, params map[string]string) (*ReturnResult, error) {
	if err := s.vnpay.VerifyCallback(params); err != nil {
		return nil, err
	}

	txnRef := params["vnp_TxnRef"]
	orderID, err := primitive.ObjectIDFromHex(txnRef)
	if err != nil {
		return nil, common.ErrPaymentRefNotFound
	}
	order, err := s.orderSvc.FindOneById(ctx, orderID)
	if err != nil {
		if common.IsNotFound(err) {
			return nil, common.ErrPaymentRefNotFound
		}
		return nil, err
	}

	responseCode := params["vnp_ResponseCode"]
	if responseCode != "00" {
		// Giao dịch thất bại hoặc khách hủy trên cổng: trả đơn về SUBMITTED
		// để khách yêu cầu thanh toán lại. Đơn đã rời PAYMENT_REQUESTED rồi
		// (vd: đã chốt tiền mặt) thì giữ nguyên và không báo "rejected" —
		// màn hình của bàn đã nhận kết quả thật trước đó.
		if callbackFailureReverts(order.Status) {
			order, err = s.orderSvc.Transition(ctx, orderID, ordermodels.StatusSubmitted)
			if err != nil {
				return nil, err
			}
			global.EventBroker.Publish(broker.TopicPaymentResponse(order.TableID), broker.PaymentRejected)
		}
		return &ReturnResult{Order: order, Applied: false, ResponseCode: responseCode}, nil
	}

	order, applied, err := s.orderSvc.Settle(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if applied {
		global.EventBroker.Publish(broker.TopicPaymentResponse(order.TableID), broker.PaymentAccepted)
	}
	return &ReturnResult{Order: order, Applied: applied, ResponseCode: responseCode}, nil
}

// callbackFailureReverts chỉ đơn còn đang chờ cổng mới bị trả về SUBMITTED
// khi cổng báo thất bại; các trạng thái khác giữ nguyên.
func callbackFailureReverts(status ordermodels.OrderStatus) bool {
	return status == ordermodels.StatusPaymentRequested
}
