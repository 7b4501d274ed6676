package paymentsvc

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe_pos/internal/common"
)

func newTestVnPay() *VnPayService {
	return NewVnPayServiceWithConfig(VnPayConfig{
		TmnCode:    "TEST0001",
		HashSecret: "bimatdungchung",
		PayURL:     "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
		ReturnURL:  "http://localhost:8080/api/v1/bills/vnpay-return",
	})
}

// giaCallbackTuCong dựng bộ tham số như cổng gửi về: chữ ký tính trên các
// tham số chiều về, không có vnp_SecureHashType.
func giaCallbackTuCong(secret string, params map[string]string) map[string]string {
	out := make(map[string]string, len(params)+1)
	for k, v := range params {
		out[k] = v
	}
	out["vnp_SecureHash"] = hmacSHA512(secret, BuildHashData(out))
	return out
}

// Chuỗi ký phải xác định: cùng tham số thì cùng chuỗi, key sắp xếp tăng dần,
// giá trị rỗng và vnp_SecureHash bị loại.
func TestBuildHashDataXacDinh(t *testing.T) {
	params := map[string]string{
		"vnp_TxnRef":     "42",
		"vnp_Amount":     "8500000",
		"vnp_Command":    "pay",
		"vnp_OrderInfo":  "",
		"vnp_SecureHash": "abc",
	}

	got := BuildHashData(params)
	assert.Equal(t, "vnp_Amount=8500000&vnp_Command=pay&vnp_TxnRef=42", got)
	assert.Equal(t, got, BuildHashData(params))
}

// Đơn 85.000 VND: cổng yêu cầu nhân 100, đủ bộ tham số cố định kể cả
// vnp_SecureHashType, chữ ký đính kèm tính trên chính các tham số gửi đi.
func TestBuildPaymentURLDonHang(t *testing.T) {
	svc := newTestVnPay()
	now := time.Date(2026, 3, 14, 10, 30, 0, 0, time.Local)

	payURL, err := svc.BuildPaymentURL("1042", 85000, "Thanh toan don hang ban A1", "192.168.1.10", now)
	require.NoError(t, err)

	parsed, err := url.Parse(payURL)
	require.NoError(t, err)
	query, err := url.ParseQuery(parsed.RawQuery)
	require.NoError(t, err)

	assert.Equal(t, "8500000", query.Get("vnp_Amount"))
	assert.Equal(t, "1042", query.Get("vnp_TxnRef"))
	assert.Equal(t, "pay", query.Get("vnp_Command"))
	assert.Equal(t, "2.1.0", query.Get("vnp_Version"))
	assert.Equal(t, "VND", query.Get("vnp_CurrCode"))
	assert.Equal(t, "SHA512", query.Get("vnp_SecureHashType"))
	assert.Equal(t, "20260314103000", query.Get("vnp_CreateDate"))
	assert.Equal(t, "20260314104500", query.Get("vnp_ExpireDate")) // +15 phút
	assert.Equal(t, 128, len(query.Get("vnp_SecureHash")))         // SHA-512 hex

	// Key sắp xếp tăng dần nên query luôn mở đầu bằng vnp_Amount
	rawQuery := strings.SplitN(payURL, "?", 2)[1]
	assert.True(t, strings.HasPrefix(rawQuery, "vnp_Amount=8500000&vnp_Command=pay&"))

	// Tính lại chữ ký từ các tham số gửi đi (chuỗi ký chiều đi giữ cả
	// vnp_SecureHashType, chỉ loại vnp_SecureHash) phải khớp chữ ký đính kèm
	sent := make(map[string]string, len(query))
	for k := range query {
		sent[k] = query.Get(k)
	}
	assert.Equal(t, hmacSHA512("bimatdungchung", BuildHashData(sent)), query.Get("vnp_SecureHash"))
}

func TestBuildPaymentURLDauVaoKhongHopLe(t *testing.T) {
	svc := newTestVnPay()

	_, err := svc.BuildPaymentURL("", 85000, "x", "1.2.3.4", time.Now())
	assert.ErrorIs(t, err, common.ErrRequiredField)

	_, err = svc.BuildPaymentURL("1042", 0, "x", "1.2.3.4", time.Now())
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

// Callback ký đúng bằng secret dùng chung thì xác thực pass.
func TestVerifyCallbackHopLe(t *testing.T) {
	svc := newTestVnPay()

	params := giaCallbackTuCong("bimatdungchung", map[string]string{
		"vnp_TxnRef":        "66f1a2b3c4d5e6f7a8b9c0d1",
		"vnp_Amount":        "8500000",
		"vnp_ResponseCode":  "00",
		"vnp_TransactionNo": "14226112",
	})

	assert.NoError(t, svc.VerifyCallback(params))
}

// Sửa một tham số sau khi ký thì xác thực phải thất bại.
func TestVerifyCallbackThamSoBiSua(t *testing.T) {
	svc := newTestVnPay()

	params := giaCallbackTuCong("bimatdungchung", map[string]string{
		"vnp_TxnRef":       "66f1a2b3c4d5e6f7a8b9c0d1",
		"vnp_Amount":       "8500000",
		"vnp_ResponseCode": "00",
	})

	params["vnp_Amount"] = "100" // khách tự giảm giá
	assert.ErrorIs(t, svc.VerifyCallback(params), common.ErrPaymentHashInvalid)
}

// Callback ký bằng secret khác (kẻ giả mạo không biết secret) bị từ chối.
func TestVerifyCallbackSaiSecret(t *testing.T) {
	svc := newTestVnPay()

	params := giaCallbackTuCong("secret-khac", map[string]string{
		"vnp_TxnRef":       "66f1a2b3c4d5e6f7a8b9c0d1",
		"vnp_ResponseCode": "00",
	})

	assert.ErrorIs(t, svc.VerifyCallback(params), common.ErrPaymentHashInvalid)
}

// So sánh chữ ký không phân biệt hoa thường, và vnp_SecureHashType nếu cổng
// có gửi kèm thì bị loại khỏi dữ liệu ký chiều về.
func TestVerifyCallbackHoaThuongVaSecureHashType(t *testing.T) {
	svc := newTestVnPay()

	params := giaCallbackTuCong("bimatdungchung", map[string]string{
		"vnp_TxnRef":       "66f1a2b3c4d5e6f7a8b9c0d1",
		"vnp_ResponseCode": "00",
	})

	params["vnp_SecureHash"] = strings.ToUpper(params["vnp_SecureHash"])
	params["vnp_SecureHashType"] = "HmacSHA512"

	assert.NoError(t, svc.VerifyCallback(params))
}

func TestVerifyCallbackThieuChuKy(t *testing.T) {
	svc := newTestVnPay()
	err := svc.VerifyCallback(map[string]string{"vnp_TxnRef": "1042"})
	assert.ErrorIs(t, err, common.ErrPaymentHashInvalid)
}
