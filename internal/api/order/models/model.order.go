// Package models - Order thuộc domain order (orders).
// Một đơn hàng gắn với một bàn, đi qua vòng đời:
// DRAFT → SUBMITTED → PAYMENT_REQUESTED → PAID, với CANCELLED là nhánh hủy.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderStatus trạng thái vòng đời của đơn hàng.
type OrderStatus string

const (
	// StatusDraft đơn đang được khách ghép món trên màn hình gọi món.
	StatusDraft OrderStatus = "DRAFT"
	// StatusSubmitted đơn đã được nhân viên xác nhận, món đã vào bếp.
	StatusSubmitted OrderStatus = "SUBMITTED"
	// StatusPaymentRequested khách đã bấm yêu cầu thanh toán, chờ quyết định.
	StatusPaymentRequested OrderStatus = "PAYMENT_REQUESTED"
	// StatusPaid đơn đã thu tiền xong. Trạng thái kết thúc.
	StatusPaid OrderStatus = "PAID"
	// StatusCancelled đơn bị hủy. Trạng thái kết thúc.
	StatusCancelled OrderStatus = "CANCELLED"
)

// OrderItem một dòng món trong đơn. Giá được chụp lại tại thời điểm
// thêm món, không đổi theo giá menu về sau.
type OrderItem struct {
	ProductID   primitive.ObjectID `json:"productId" bson:"productId"`
	ProductName string             `json:"productName" bson:"productName"`
	Quantity    int64              `json:"quantity" bson:"quantity"`
	UnitPrice   int64              `json:"unitPrice" bson:"unitPrice"` // VND tại thời điểm thêm món
	Subtotal    int64              `json:"subtotal" bson:"subtotal"`   // Quantity * UnitPrice
}

// Order một đơn hàng (orders).
type Order struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	TableID    string              `json:"tableId" bson:"tableId" index:"single:1,compound:order_table_status"`
	EmployeeID *primitive.ObjectID `json:"employeeId,omitempty" bson:"employeeId,omitempty" index:"single:1"` // Nhân viên xác nhận đơn
	Items      []OrderItem         `json:"items" bson:"items"`
	Status     OrderStatus         `json:"status" bson:"status" index:"single:1,compound:order_table_status"`
	Total      int64               `json:"total" bson:"total"` // Tổng tiền VND, luôn tính lại từ Items

	PaymentRequestedAt int64 `json:"paymentRequestedAt,omitempty" bson:"paymentRequestedAt,omitempty"`
	PaidAt             int64 `json:"paidAt,omitempty" bson:"paidAt,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}

// RecalculateTotal tính lại subtotal từng dòng và tổng tiền của đơn.
func (o *Order) RecalculateTotal() {
	var total int64
	for i := range o.Items {
		o.Items[i].Subtotal = o.Items[i].Quantity * o.Items[i].UnitPrice
		total += o.Items[i].Subtotal
	}
	o.Total = total
}
