// Package coordinationhdl - Cầu nối SSE giữa kênh phối hợp trong process và client.
//
// Màn hình thu ngân subscribe draft-orders và payment-request; màn hình gọi món
// của từng bàn subscribe payment-response/{tableId}. Mỗi kết nối SSE là một
// subscriber trên broker; client rớt kết nối thì subscriber bị gỡ, các
// subscriber khác không bị ảnh hưởng.
package coordinationhdl

import (
	"bufio"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"github.com/valyala/fasthttp"

	"cafe_pos/internal/broker"
	"cafe_pos/internal/common"
	"cafe_pos/internal/global"
	"cafe_pos/internal/logger"
)

// CoordinationHandler phục vụ các stream SSE của kênh phối hợp.
type CoordinationHandler struct {
	broker *broker.Broker
}

// NewCoordinationHandler tạo CoordinationHandler trên broker dùng chung.
func NewCoordinationHandler() *CoordinationHandler {
	return &CoordinationHandler{broker: global.EventBroker}
}

// streamTopic mở một kết nối SSE đẩy mọi message của topic xuống client.
func (h *CoordinationHandler) streamTopic(c fiber.Ctx, topic string) error {
	c.Set("Content-Type", "text/event-stream")
	c.Set("Cache-Control", "no-cache")
	c.Set("Connection", "keep-alive")

	sub := h.broker.Subscribe(topic)

	c.RequestCtx().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer h.broker.Unsubscribe(sub)

		for payload := range sub.C() {
			raw, err := json.Marshal(payload)
			if err != nil {
				logger.GetAppLogger().WithFields(logrus.Fields{
					"topic": topic,
					"error": err,
				}).Warn("Không serialize được message SSE")
				continue
			}
			if _, err := fmt.Fprintf(w, "data: %s\n\n", raw); err != nil {
				return // client đã rớt kết nối
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}

// HandleDraftOrders xử lý GET /coordination/draft-orders — màn hình thu ngân
// nhận đơn nháp mới gửi lên.
func (h *CoordinationHandler) HandleDraftOrders(c fiber.Ctx) error {
	return h.streamTopic(c, broker.TopicDraftOrders)
}

// HandlePaymentRequest xử lý GET /coordination/payment-request — màn hình thu
// ngân nhận mã bàn đang yêu cầu thanh toán.
func (h *CoordinationHandler) HandlePaymentRequest(c fiber.Ctx) error {
	return h.streamTopic(c, broker.TopicPaymentRequest)
}

// HandlePaymentResponse xử lý GET /coordination/payment-response/:tableId —
// màn hình gọi món của bàn chờ kết quả thanh toán.
func (h *CoordinationHandler) HandlePaymentResponse(c fiber.Ctx) error {
	tableID := c.Params("tableId")
	if tableID == "" {
		return c.Status(common.StatusBadRequest).JSON(fiber.Map{
			"code":    common.ErrCodeValidationInput.Code,
			"message": "Thiếu mã bàn",
			"status":  "error",
		})
	}
	return h.streamTopic(c, broker.TopicPaymentResponse(tableID))
}
