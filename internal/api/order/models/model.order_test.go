package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecalculateTotal(t *testing.T) {
	order := Order{
		Items: []OrderItem{
			{ProductName: "Cà phê sữa", Quantity: 2, UnitPrice: 25000},
			{ProductName: "Bạc xỉu", Quantity: 1, UnitPrice: 35000},
		},
	}

	order.RecalculateTotal()

	assert.Equal(t, int64(50000), order.Items[0].Subtotal)
	assert.Equal(t, int64(35000), order.Items[1].Subtotal)
	assert.Equal(t, int64(85000), order.Total)
}

func TestRecalculateTotalDonRong(t *testing.T) {
	order := Order{Total: 99999}
	order.RecalculateTotal()
	assert.Equal(t, int64(0), order.Total)
}
