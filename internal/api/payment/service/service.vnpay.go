// Package paymentsvc - Tích hợp cổng thanh toán VNPay.
//
// Chuỗi ký (hash data) được dựng từ các tham số vnp_* theo đúng quy tắc của
// cổng: sắp xếp key tăng dần, bỏ giá trị rỗng, bỏ vnp_SecureHash, nối thành
// key=value&... ở dạng thô (không URL-encode), rồi HMAC-SHA512 với secret.
// Query string gửi đi được encode riêng, không dùng lại chuỗi ký.
package paymentsvc

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"cafe_pos/config"
	"cafe_pos/internal/common"
)

// Các hằng số giao thức VNPay.
const (
	vnpVersion        = "2.1.0"
	vnpCommand        = "pay"
	vnpCurrCode       = "VND"
	vnpLocale         = "vn"
	vnpOrderType      = "other"
	vnpSecureHashType = "SHA512"

	// Thời gian khách được phép hoàn tất thanh toán trên cổng
	paymentWindow = 15 * time.Minute

	// Layout thời gian của VNPay: yyyyMMddHHmmss
	vnpTimeLayout = "20060102150405"
)

// VnPayConfig cấu hình kết nối cổng. HashSecret không bao giờ được ghi ra
// log hay đưa vào response.
type VnPayConfig struct {
	TmnCode    string
	HashSecret string
	PayURL     string
	ReturnURL  string
}

// VnPayService dựng URL thanh toán và xác thực callback từ cổng.
type VnPayService struct {
	cfg VnPayConfig
}

// NewVnPayService tạo VnPayService từ cấu hình ứng dụng.
func NewVnPayService(appCfg *config.Configuration) *VnPayService {
	return &VnPayService{cfg: VnPayConfig{
		TmnCode:    appCfg.VNPay_TmnCode,
		HashSecret: appCfg.VNPay_HashSecret,
		PayURL:     appCfg.VNPay_PayURL,
		ReturnURL:  appCfg.VNPay_ReturnURL,
	}}
}

// NewVnPayServiceWithConfig tạo VnPayService với config trực tiếp.
func NewVnPayServiceWithConfig(cfg VnPayConfig) *VnPayService {
	return &VnPayService{cfg: cfg}
}

// hmacSHA512 ký data bằng secret, trả về hex chữ thường.
func hmacSHA512(secret, data string) string {
	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(data))
	return hex.EncodeToString(mac.Sum(nil))
}

// BuildHashData dựng chuỗi ký chuẩn từ map tham số: sắp xếp key, bỏ giá trị
// rỗng và vnp_SecureHash, nối key=value& ở dạng thô.
func BuildHashData(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" || k == "vnp_SecureHash" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(params[k])
	}
	return sb.String()
}

// buildQuery dựng query string gửi đi, URL-encode từng key và value,
// theo đúng thứ tự key của chuỗi ký.
func buildQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, v := range params {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(k))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}
	return sb.String()
}

// BuildPaymentURL dựng URL chuyển hướng khách sang cổng thanh toán.
// amount là tổng tiền VND; cổng yêu cầu nhân 100 khi truyền đi.
// txnRef là mã tham chiếu giao dịch — dùng id đơn hàng.
func (s *VnPayService) BuildPaymentURL(txnRef string, amount int64, orderInfo string, clientIP string, now time.Time) (string, error) {
	if txnRef == "" {
		return "", common.ErrRequiredField
	}
	if amount <= 0 {
		return "", common.ErrInvalidInput
	}
	if clientIP == "" {
		clientIP = "127.0.0.1"
	}

	params := map[string]string{
		"vnp_Version":    vnpVersion,
		"vnp_Command":    vnpCommand,
		"vnp_TmnCode":    s.cfg.TmnCode,
		"vnp_Amount":     strconv.FormatInt(amount*100, 10),
		"vnp_CurrCode":   vnpCurrCode,
		"vnp_TxnRef":     txnRef,
		"vnp_OrderInfo":  orderInfo,
		"vnp_OrderType":  vnpOrderType,
		"vnp_Locale":     vnpLocale,
		"vnp_ReturnUrl":  s.cfg.ReturnURL,
		"vnp_IpAddr":     clientIP,
		"vnp_CreateDate": now.Format(vnpTimeLayout),
		"vnp_ExpireDate": now.Add(paymentWindow).Format(vnpTimeLayout),
		// Tham số chiều đi nằm trong cả chuỗi ký lẫn query; chiều về cổng
		// không gửi lại nó nên VerifyCallback loại nó khỏi dữ liệu ký.
		"vnp_SecureHashType": vnpSecureHashType,
	}

	hashData := BuildHashData(params)
	secureHash := hmacSHA512(s.cfg.HashSecret, hashData)

	return fmt.Sprintf("%s?%s&vnp_SecureHash=%s", s.cfg.PayURL, buildQuery(params), secureHash), nil
}

// VerifyCallback xác thực tính toàn vẹn của tham số callback từ cổng.
// Bỏ vnp_SecureHash và vnp_SecureHashType khỏi dữ liệu ký, tính lại chữ ký
// và so sánh không phân biệt hoa thường. Trả về ErrPaymentHashInvalid khi
// chữ ký sai hoặc thiếu — message trả ra ngoài là message chung, không nói
// rõ sai ở đâu.
func (s *VnPayService) VerifyCallback(params map[string]string) error {
	received := params["vnp_SecureHash"]
	if received == "" {
		return common.ErrPaymentHashInvalid
	}

	filtered := make(map[string]string, len(params))
	for k, v := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		filtered[k] = v
	}

	expected := hmacSHA512(s.cfg.HashSecret, BuildHashData(filtered))
	if !strings.EqualFold(expected, received) {
		return common.ErrPaymentHashInvalid
	}
	return nil
}
