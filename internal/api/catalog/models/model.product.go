// Package models - Product thuộc domain catalog (products).
// Lưu món trong menu của quán: tên, giá bán (VND), hình ảnh, danh mục.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product một món trong menu (products).
type Product struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name        string             `json:"name" bson:"name" index:"single:1"`
	Description string             `json:"description,omitempty" bson:"description,omitempty"`
	Price       int64              `json:"price" bson:"price"` // Đơn giá VND, số nguyên
	ImageURL    string             `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	CategoryID  primitive.ObjectID `json:"categoryId,omitempty" bson:"categoryId,omitempty" index:"single:1"`
	Available   bool               `json:"available" bson:"available"` // Món còn bán hay tạm ngừng

	CreatedAt int64 `json:"createdAt" bson:"createdAt" index:"single:1"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
