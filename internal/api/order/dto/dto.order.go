// Package dto - DTO cho domain order.
package dto

// OrderItemInput một dòng món khách chọn. Giá lấy từ menu tại server,
// client không được gửi giá.
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required,len=24,hexadecimal"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
}

// OrderCreateInput dữ liệu tạo đơn nháp mới cho một bàn.
type OrderCreateInput struct {
	TableID string           `json:"tableId" validate:"required,no_xss"`
	Items   []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderUpdateItemsInput dữ liệu thay danh sách món của đơn đang mở.
type OrderUpdateItemsInput struct {
	Items []OrderItemInput `json:"items" validate:"required,min=1,dive"`
}

// OrderConfirmInput nhân viên xác nhận đơn nháp (DRAFT → SUBMITTED).
type OrderConfirmInput struct {
	EmployeeID string `json:"employeeId,omitempty" validate:"omitempty,len=24,hexadecimal"`
}
