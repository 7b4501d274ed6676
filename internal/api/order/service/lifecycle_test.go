package ordersvc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	ordermodels "cafe_pos/internal/api/order/models"
	"cafe_pos/internal/common"
)

func TestBangChuyenTrangThai(t *testing.T) {
	cases := []struct {
		from, to ordermodels.OrderStatus
		ok       bool
	}{
		{ordermodels.StatusDraft, ordermodels.StatusSubmitted, true},
		{ordermodels.StatusDraft, ordermodels.StatusCancelled, true},
		{ordermodels.StatusDraft, ordermodels.StatusPaid, false},
		{ordermodels.StatusDraft, ordermodels.StatusPaymentRequested, false},
		{ordermodels.StatusSubmitted, ordermodels.StatusPaymentRequested, true},
		{ordermodels.StatusSubmitted, ordermodels.StatusCancelled, true},
		{ordermodels.StatusSubmitted, ordermodels.StatusPaid, true}, // tiền mặt, không qua cổng
		{ordermodels.StatusSubmitted, ordermodels.StatusDraft, false},
		{ordermodels.StatusPaymentRequested, ordermodels.StatusPaid, true},
		{ordermodels.StatusPaymentRequested, ordermodels.StatusSubmitted, true},
		{ordermodels.StatusPaymentRequested, ordermodels.StatusCancelled, true},
		{ordermodels.StatusPaymentRequested, ordermodels.StatusDraft, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.ok, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

// Đơn đã PAID hay CANCELLED thì không chuyển đi đâu được nữa.
func TestTrangThaiKetThucBatBien(t *testing.T) {
	all := []ordermodels.OrderStatus{
		ordermodels.StatusDraft,
		ordermodels.StatusSubmitted,
		ordermodels.StatusPaymentRequested,
		ordermodels.StatusPaid,
		ordermodels.StatusCancelled,
	}

	for _, terminal := range []ordermodels.OrderStatus{ordermodels.StatusPaid, ordermodels.StatusCancelled} {
		assert.True(t, IsTerminal(terminal))
		for _, to := range all {
			assert.False(t, CanTransition(terminal, to), "%s -> %s", terminal, to)
			assert.ErrorIs(t, ValidateTransition(terminal, to), common.ErrOrderTerminal)
		}
	}
}

func TestValidateTransitionPhanLoaiLoi(t *testing.T) {
	assert.NoError(t, ValidateTransition(ordermodels.StatusDraft, ordermodels.StatusSubmitted))
	assert.ErrorIs(t, ValidateTransition(ordermodels.StatusDraft, ordermodels.StatusPaid), common.ErrOrderTransition)
	assert.ErrorIs(t, ValidateTransition(ordermodels.StatusPaid, ordermodels.StatusSubmitted), common.ErrOrderTerminal)
}

// Chốt tiền phải idempotent: đơn đã PAID thì bỏ qua không lỗi, đơn CANCELLED
// từ chối hẳn, đơn SUBMITTED (tiền mặt) và PAYMENT_REQUESTED đều chốt được.
func TestSettleDecision(t *testing.T) {
	apply, err := settleDecision(ordermodels.StatusPaid)
	assert.NoError(t, err)
	assert.False(t, apply)

	_, err = settleDecision(ordermodels.StatusCancelled)
	assert.ErrorIs(t, err, common.ErrOrderTerminal)

	apply, err = settleDecision(ordermodels.StatusSubmitted)
	assert.NoError(t, err)
	assert.True(t, apply)

	apply, err = settleDecision(ordermodels.StatusPaymentRequested)
	assert.NoError(t, err)
	assert.True(t, apply)

	_, err = settleDecision(ordermodels.StatusDraft)
	assert.ErrorIs(t, err, common.ErrOrderTransition)
}

// Gửi đơn nháp: bàn trống tạo mới, bàn còn nháp thì thay nội dung nháp,
// bàn có đơn đã vào bếp hoặc đang chờ thanh toán thì báo bận.
func TestDraftSubmitDecision(t *testing.T) {
	update, err := draftSubmitDecision(false, "")
	assert.NoError(t, err)
	assert.False(t, update)

	update, err = draftSubmitDecision(true, ordermodels.StatusDraft)
	assert.NoError(t, err)
	assert.True(t, update)

	for _, status := range []ordermodels.OrderStatus{
		ordermodels.StatusSubmitted,
		ordermodels.StatusPaymentRequested,
	} {
		_, err = draftSubmitDecision(true, status)
		assert.ErrorIs(t, err, common.ErrOrderTableBusy, "%s", status)
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("PAYMENT_REQUESTED")
	assert.NoError(t, err)
	assert.Equal(t, ordermodels.StatusPaymentRequested, status)

	_, err = ParseOrderStatus("paid")
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	_, err = ParseOrderStatus("")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

// Cùng key phải trả về đúng một mutex, kể cả khi nhiều goroutine xin cùng lúc.
func TestLockArenaMotMutexMoiKey(t *testing.T) {
	arena := newLockArena()

	first := arena.get("don-1")
	assert.Same(t, first, arena.get("don-1"))
	assert.NotSame(t, first, arena.get("don-2"))

	const n = 50
	got := make([]*sync.Mutex, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = arena.get("don-dong-thoi")
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		assert.Same(t, got[0], got[i])
	}
}

// Nhiều lần gửi đơn nháp đồng thời cho cùng một bàn trống: kiểm-tra-rồi-ghi
// chạy dưới lock của bàn nên chỉ đúng một đơn mới được tạo, các lần còn lại
// thấy đơn nháp vừa tạo và đi theo nhánh thay nội dung.
func TestMoiBanMotDonConSong(t *testing.T) {
	arena := newLockArena()
	active := make(map[string]ordermodels.OrderStatus)

	submit := func(tableID string) (created bool, err error) {
		lock := arena.get(tableID)
		lock.Lock()
		defer lock.Unlock()

		status, hasActive := active[tableID]
		updateExisting, err := draftSubmitDecision(hasActive, status)
		if err != nil {
			return false, err
		}
		if updateExisting {
			return false, nil
		}
		active[tableID] = ordermodels.StatusDraft
		return true, nil
	}

	const n = 20
	createdCount := make([]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := submit("ban-7")
			assert.NoError(t, err)
			createdCount[i] = created
		}(i)
	}
	wg.Wait()

	total := 0
	for _, created := range createdCount {
		if created {
			total++
		}
	}
	assert.Equal(t, 1, total)
}

// Hai yêu cầu đổi trạng thái chạy song song trên cùng một đơn: chỉ yêu cầu
// giữ lock trước được áp dụng, yêu cầu sau thấy trạng thái mới và bị từ chối.
func TestYeuCauVaoTruocThang(t *testing.T) {
	arena := newLockArena()
	status := ordermodels.StatusPaymentRequested

	apply := func(to ordermodels.OrderStatus) error {
		lock := arena.get("don-42")
		lock.Lock()
		defer lock.Unlock()
		if err := ValidateTransition(status, to); err != nil {
			return err
		}
		status = to
		return nil
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	targets := []ordermodels.OrderStatus{ordermodels.StatusPaid, ordermodels.StatusCancelled}
	for i := range targets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = apply(targets[i])
		}(i)
	}
	wg.Wait()

	var okCount, rejected int
	for _, err := range results {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, common.ErrOrderTerminal)
			rejected++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, rejected)
	assert.True(t, IsTerminal(status))
}
