// Package dto - DTO cho domain catalog (product, category, dining table).
package dto

// ProductCreateInput dữ liệu tạo món mới trong menu.
type ProductCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price       int64  `json:"price" validate:"required,gt=0"` // Đơn giá VND
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryID  string `json:"categoryId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Available   bool   `json:"available"`
}

// ProductUpdateInput dữ liệu cập nhật món.
type ProductUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
	Price       int64  `json:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL    string `json:"imageUrl,omitempty" validate:"omitempty,url"`
	CategoryID  string `json:"categoryId,omitempty" validate:"omitempty,len=24,hexadecimal"`
	Available   *bool  `json:"available,omitempty"`
}

// CategoryCreateInput dữ liệu tạo danh mục mới.
type CategoryCreateInput struct {
	Name        string `json:"name" validate:"required,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
}

// CategoryUpdateInput dữ liệu cập nhật danh mục.
type CategoryUpdateInput struct {
	Name        string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Description string `json:"description,omitempty" validate:"omitempty,no_xss"`
}

// DiningTableCreateInput dữ liệu tạo bàn mới.
type DiningTableCreateInput struct {
	Code     string `json:"code" validate:"required,no_xss"`
	Name     string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Capacity int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Active   bool   `json:"active"`
}

// DiningTableUpdateInput dữ liệu cập nhật bàn.
type DiningTableUpdateInput struct {
	Name     string `json:"name,omitempty" validate:"omitempty,no_xss"`
	Capacity int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
	Active   *bool  `json:"active,omitempty"`
}
