// Package worker - PaymentExpiryWorker thu hồi yêu cầu thanh toán quá hạn.
//
// Khách bấm yêu cầu thanh toán rồi bỏ đi: đơn kẹt ở PAYMENT_REQUESTED và bàn
// bị khóa vô hạn. Worker quét định kỳ các đơn PAYMENT_REQUESTED quá cửa sổ
// thanh toán và trả chúng về SUBMITTED qua đúng đường chuyển trạng thái có
// lock — không đua với callback cổng thanh toán đến muộn.
package worker

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	ordermodels "cafe_pos/internal/api/order/models"
	ordersvc "cafe_pos/internal/api/order/service"
	"cafe_pos/internal/broker"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
	"cafe_pos/internal/logger"
	"cafe_pos/internal/utility"
)

// paymentWindow cửa sổ chờ thanh toán, khớp với vnp_ExpireDate gửi lên cổng.
const paymentWindow = 15 * time.Minute

// PaymentExpiryWorker worker thu hồi yêu cầu thanh toán quá hạn.
type PaymentExpiryWorker struct {
	orderService *ordersvc.OrderService
	interval     time.Duration
}

// NewPaymentExpiryWorker tạo worker mới.
func NewPaymentExpiryWorker(interval time.Duration) (*PaymentExpiryWorker, error) {
	orderService, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, err
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &PaymentExpiryWorker{
		orderService: orderService,
		interval:     interval,
	}, nil
}

// Start chạy worker trong vòng lặp cho đến khi ctx bị hủy.
func (w *PaymentExpiryWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(logrus.Fields{
		"interval": w.interval.String(),
		"window":   paymentWindow.String(),
	}).Info("⏱ [PAYMENT_EXPIRY] Starting Payment Expiry Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("⏱ [PAYMENT_EXPIRY] Payment Expiry Worker stopped")
			return
		case <-ticker.C:
			w.runSweep(ctx, log)
		}
	}
}

// runSweep một lượt quét: tìm đơn quá hạn và trả về SUBMITTED từng đơn.
func (w *PaymentExpiryWorker) runSweep(ctx context.Context, log *logrus.Logger) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{
				"panic": r,
			}).Error("⏱ [PAYMENT_EXPIRY] Panic khi quét, sẽ tiếp tục lần chạy tiếp theo")
		}
	}()

	cutoff := utility.UnixMilli(time.Now().Add(-paymentWindow))
	filter := bson.M{
		"status":             ordermodels.StatusPaymentRequested,
		"paymentRequestedAt": bson.M{"$gt": 0, "$lt": cutoff},
	}

	expired, err := w.orderService.Find(ctx, filter, nil)
	if err != nil {
		log.WithError(err).Error("⏱ [PAYMENT_EXPIRY] Lỗi tìm đơn quá hạn")
		return
	}

	for _, order := range expired {
		// Transition kiểm tra lại trạng thái dưới lock: callback cổng vừa
		// chốt đơn xong thì chuyển tiếp này bị từ chối, bỏ qua là đúng.
		_, err := w.orderService.Transition(ctx, order.ID, ordermodels.StatusSubmitted)
		if err != nil {
			if !common.IsNotFound(err) {
				log.WithError(err).WithFields(logrus.Fields{
					"orderId": order.ID.Hex(),
				}).Debug("⏱ [PAYMENT_EXPIRY] Đơn đã đổi trạng thái trước khi thu hồi, bỏ qua")
			}
			continue
		}

		global.EventBroker.Publish(broker.TopicPaymentResponse(order.TableID), broker.PaymentRejected)

		log.WithFields(logrus.Fields{
			"orderId": order.ID.Hex(),
			"tableId": order.TableID,
		}).Info("⏱ [PAYMENT_EXPIRY] Thu hồi yêu cầu thanh toán quá hạn")
	}
}
