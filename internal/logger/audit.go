package logger

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// AuditAction log một hành động audit
type AuditAction struct {
	Action       string                 `json:"action"`        // Tên hành động (ví dụ: "order_transition", "payment_hash_mismatch")
	UserID       string                 `json:"user_id"`       // ID nhân viên thực hiện (rỗng nếu là callback bên ngoài)
	ResourceID   string                 `json:"resource_id"`   // ID tài nguyên bị ảnh hưởng
	ResourceType string                 `json:"resource_type"` // Loại tài nguyên (ví dụ: "order", "payment")
	IP           string                 `json:"ip"`            // IP address
	UserAgent    string                 `json:"user_agent"`    // User agent
	Details      map[string]interface{} `json:"details"`       // Chi tiết bổ sung
	Timestamp    time.Time              `json:"timestamp"`     // Thời gian
}

// LogAction log một hành động audit
func LogAction(action string, c fiber.Ctx, details map[string]interface{}) {
	auditLogger := GetAuditLogger()

	if details == nil {
		details = make(map[string]interface{})
	}

	audit := AuditAction{
		Action:    action,
		IP:        c.IP(),
		UserAgent: c.Get("User-Agent"),
		Details:   details,
		Timestamp: time.Now(),
	}

	// Lấy user ID từ context nếu có
	if userID := c.Locals("user_id"); userID != nil {
		if uid, ok := userID.(string); ok {
			audit.UserID = uid
		}
	}

	// Lấy request ID
	if requestID := c.Get("X-Request-ID"); requestID != "" {
		audit.Details["request_id"] = requestID
	}

	auditLogger.WithFields(logrus.Fields{
		"action":        audit.Action,
		"user_id":       audit.UserID,
		"resource_id":   audit.ResourceID,
		"resource_type": audit.ResourceType,
		"ip":            audit.IP,
		"user_agent":    audit.UserAgent,
		"details":       audit.Details,
		"timestamp":     audit.Timestamp,
	}).Info("Audit log")
}

// LogOrderTransition log một lần chuyển trạng thái đơn hàng
func LogOrderTransition(c fiber.Ctx, orderID string, from string, to string) {
	LogAction("order_transition", c, map[string]interface{}{
		"resource_type": "order",
		"resource_id":   orderID,
		"from":          from,
		"to":            to,
	})
}

// LogPaymentSecurityEvent log một sự kiện bảo mật của luồng thanh toán
// (hash mismatch, mã giao dịch không tồn tại). Tuyệt đối không ghi secret
// hay hash tính lại vào details — chỉ mô tả sự kiện.
func LogPaymentSecurityEvent(c fiber.Ctx, event string, txnRef string) {
	LogAction("payment_"+event, c, map[string]interface{}{
		"resource_type": "payment",
		"txn_ref":       txnRef,
	})
}
