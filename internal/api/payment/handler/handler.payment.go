// Package paymenthdl - Handler cho domain payment.
package paymenthdl

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "cafe_pos/internal/api/base/handler"
	paymentsvc "cafe_pos/internal/api/payment/service"
	"cafe_pos/internal/common"
	"cafe_pos/internal/logger"
)

// PaymentHandler xử lý tạo thanh toán và callback từ cổng.
type PaymentHandler struct {
	PaymentService *paymentsvc.PaymentService
}

// NewPaymentHandler tạo PaymentHandler mới.
func NewPaymentHandler(vnpay *paymentsvc.VnPayService) (*PaymentHandler, error) {
	svc, err := paymentsvc.NewPaymentService(vnpay)
	if err != nil {
		return nil, fmt.Errorf("tạo PaymentService: %w", err)
	}
	return &PaymentHandler{PaymentService: svc}, nil
}

// HandleCreatePayment xử lý POST /payments/create/:orderId.
// Trả về URL thanh toán VNPay để client chuyển hướng khách sang cổng.
func (h *PaymentHandler) HandleCreatePayment(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		orderID, err := primitive.ObjectIDFromHex(c.Params("orderId"))
		if err != nil {
			return basehdl.HandleError(c, common.ErrInvalidFormat)
		}

		payURL, err := h.PaymentService.CreatePayment(c.Context(), orderID, c.IP())
		if err != nil {
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleSuccess(c, fiber.Map{"paymentUrl": payURL})
	})
}

// HandleVnPayReturn xử lý GET /bills/vnpay-return — callback từ cổng thanh toán.
// Mọi tham số vnp_* nằm trong query string.
func (h *PaymentHandler) HandleVnPayReturn(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		params := c.Queries()

		result, err := h.PaymentService.HandleReturn(c.Context(), params)
		if err != nil {
			// Callback giả hoặc trỏ tới giao dịch không tồn tại đều đáng ghi
			// lại kèm IP; chỉ ghi mã tham chiếu, không ghi chữ ký hay secret.
			switch {
			case errors.Is(err, common.ErrPaymentHashInvalid):
				logger.LogPaymentSecurityEvent(c, "hash_mismatch", params["vnp_TxnRef"])
			case errors.Is(err, common.ErrPaymentRefNotFound):
				logger.LogPaymentSecurityEvent(c, "ref_not_found", params["vnp_TxnRef"])
			}
			return basehdl.HandleError(c, err)
		}
		return basehdl.HandleSuccess(c, result)
	})
}
