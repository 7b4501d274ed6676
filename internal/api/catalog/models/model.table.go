// Package models - DiningTable thuộc domain catalog (dining_tables).
// Bàn trong quán, định danh bằng mã bàn do quán tự đặt (vd: "A1", "tang2-05").
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DiningTable một bàn trong quán (dining_tables).
type DiningTable struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Code     string `json:"code" bson:"code" index:"single:1"` // Mã bàn, duy nhất trong quán
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Capacity int    `json:"capacity,omitempty" bson:"capacity,omitempty"`
	Active   bool   `json:"active" bson:"active"` // Bàn đang sử dụng hay đã cất

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
