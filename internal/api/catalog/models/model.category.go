// Package models - Category thuộc domain catalog (categories).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category danh mục món trong menu (categories).
type Category struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	Name        string `json:"name" bson:"name" index:"single:1"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
