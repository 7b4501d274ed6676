// Package ordersvc - Vòng đời trạng thái đơn hàng.
//
// Mọi thay đổi trạng thái đều phải đi qua bảng chuyển trạng thái ở đây,
// dưới lock theo từng đơn: hai yêu cầu chuyển trạng thái cùng lúc trên
// một đơn thì yêu cầu vào trước thắng, yêu cầu sau bị từ chối.
package ordersvc

import (
	"sync"

	ordermodels "cafe_pos/internal/api/order/models"
	"cafe_pos/internal/common"
)

// statusTransitions bảng chuyển trạng thái hợp lệ.
var statusTransitions = map[ordermodels.OrderStatus][]ordermodels.OrderStatus{
	ordermodels.StatusDraft: {
		ordermodels.StatusSubmitted,
		ordermodels.StatusCancelled,
	},
	ordermodels.StatusSubmitted: {
		ordermodels.StatusPaymentRequested,
		ordermodels.StatusPaid, // thu ngân chấp nhận tiền mặt, không qua cổng
		ordermodels.StatusCancelled,
	},
	ordermodels.StatusPaymentRequested: {
		ordermodels.StatusPaid,
		ordermodels.StatusSubmitted, // nhân viên từ chối / giao dịch thất bại / quá hạn chờ
		ordermodels.StatusCancelled,
	},
	// PAID và CANCELLED là trạng thái kết thúc, không có chuyển tiếp
	ordermodels.StatusPaid:      {},
	ordermodels.StatusCancelled: {},
}

// ActiveStatuses các trạng thái mà đơn còn "sống" — bàn đang bận.
var ActiveStatuses = []ordermodels.OrderStatus{
	ordermodels.StatusDraft,
	ordermodels.StatusSubmitted,
	ordermodels.StatusPaymentRequested,
}

// IsTerminal kiểm tra trạng thái kết thúc (không thể thay đổi gì thêm).
func IsTerminal(status ordermodels.OrderStatus) bool {
	return status == ordermodels.StatusPaid || status == ordermodels.StatusCancelled
}

// CanTransition kiểm tra chuyển trạng thái from → to có hợp lệ không.
func CanTransition(from, to ordermodels.OrderStatus) bool {
	for _, allowed := range statusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition trả về lỗi nghiệp vụ tương ứng nếu chuyển trạng thái không hợp lệ.
func ValidateTransition(from, to ordermodels.OrderStatus) error {
	if IsTerminal(from) {
		return common.ErrOrderTerminal
	}
	if !CanTransition(from, to) {
		return common.ErrOrderTransition
	}
	return nil
}

// settleDecision quyết định chốt tiền từ trạng thái hiện tại của đơn:
// PAID thì bỏ qua không lỗi (callback gửi lại, hoặc tiền mặt đã chốt trước),
// CANCELLED thì từ chối hẳn, còn lại theo bảng chuyển trạng thái.
func settleDecision(status ordermodels.OrderStatus) (apply bool, err error) {
	switch status {
	case ordermodels.StatusPaid:
		return false, nil
	case ordermodels.StatusCancelled:
		return false, common.ErrOrderTerminal
	}
	if !CanTransition(status, ordermodels.StatusPaid) {
		return false, common.ErrOrderTransition
	}
	return true, nil
}

// draftSubmitDecision quyết định xử lý một lần gửi đơn nháp của bàn:
// bàn trống thì tạo đơn mới, bàn đang có đơn nháp thì lần gửi sau thay
// nội dung đơn nháp đó (khách sửa món rồi gửi lại), bàn có đơn đã vào
// bếp hoặc đang chờ thanh toán thì từ chối.
func draftSubmitDecision(hasActive bool, activeStatus ordermodels.OrderStatus) (updateExisting bool, err error) {
	if !hasActive {
		return false, nil
	}
	if activeStatus == ordermodels.StatusDraft {
		return true, nil
	}
	return false, common.ErrOrderTableBusy
}

// ParseOrderStatus parse chuỗi trạng thái từ client.
func ParseOrderStatus(s string) (ordermodels.OrderStatus, error) {
	switch ordermodels.OrderStatus(s) {
	case ordermodels.StatusDraft,
		ordermodels.StatusSubmitted,
		ordermodels.StatusPaymentRequested,
		ordermodels.StatusPaid,
		ordermodels.StatusCancelled:
		return ordermodels.OrderStatus(s), nil
	}
	return "", common.ErrInvalidInput
}

// lockArena cấp phát mutex theo key (id đơn hàng), mỗi đơn một mutex.
// Mutex được giữ lại cho lần dùng sau; số đơn trong một phiên phục vụ
// đủ nhỏ để không cần thu hồi.
type lockArena struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newLockArena() *lockArena {
	return &lockArena{locks: make(map[string]*sync.Mutex)}
}

// get trả về mutex cho key, tạo mới nếu chưa có.
func (a *lockArena) get(key string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()
	lock, ok := a.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[key] = lock
	}
	return lock
}

// orderLocks arena dùng chung cho mọi thao tác đổi trạng thái đơn trong process.
var orderLocks = newLockArena()

// tableLocks arena theo mã bàn, giữ bất biến mỗi bàn một đơn còn sống:
// kiểm-tra-rồi-ghi khi tạo đơn phải chạy trọn vẹn dưới lock của bàn.
var tableLocks = newLockArena()
