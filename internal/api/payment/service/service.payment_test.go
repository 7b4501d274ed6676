package paymentsvc

import (
	"testing"

	"github.com/stretchr/testify/assert"

	ordermodels "cafe_pos/internal/api/order/models"
)

// Cổng báo thất bại: chỉ đơn còn đang chờ cổng mới bị trả về SUBMITTED và
// mới được báo "rejected" cho màn hình bàn. Đơn đã chốt tiền mặt (PAID) hay
// đã rời PAYMENT_REQUESTED theo đường khác thì callback đến muộn phải im lặng.
func TestCallbackThatBaiChiTraVeDonDangChoCong(t *testing.T) {
	assert.True(t, callbackFailureReverts(ordermodels.StatusPaymentRequested))

	for _, status := range []ordermodels.OrderStatus{
		ordermodels.StatusDraft,
		ordermodels.StatusSubmitted,
		ordermodels.StatusPaid,
		ordermodels.StatusCancelled,
	} {
		assert.False(t, callbackFailureReverts(status), "%s", status)
	}
}
