package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCart_SerializesEmptyItems(t *testing.T) {
	cart := NewCart("u-1")

	data, err := json.Marshal(cart)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"items":[]`)
	assert.Contains(t, string(data), `"totalAmount":0`)
}

func TestCart_FindItemIndex(t *testing.T) {
	cart := NewCart("u-1")
	cart.Items = []CartItem{
		{ProductID: "p-1", Name: "Laptop", Price: 999, Quantity: 1},
		{ProductID: "p-2", Name: "Mouse", Price: 25, Quantity: 2},
	}

	assert.Equal(t, 0, cart.FindItemIndex("p-1"))
	assert.Equal(t, 1, cart.FindItemIndex("p-2"))
	assert.Equal(t, -1, cart.FindItemIndex("p-3"))
}

func TestCart_ItemCount(t *testing.T) {
	cart := NewCart("u-1")
	assert.Equal(t, 0, cart.ItemCount())

	cart.Items = []CartItem{
		{ProductID: "p-1", Quantity: 1},
		{ProductID: "p-2", Quantity: 3},
	}
	assert.Equal(t, 4, cart.ItemCount())
}

func TestCart_Recalculate(t *testing.T) {
	cart := NewCart("u-1")
	cart.Items = []CartItem{
		{ProductID: "p-1", Price: 999.50, Quantity: 2},
		{ProductID: "p-2", Price: 25, Quantity: 1},
	}

	cart.Recalculate()
	assert.InDelta(t, 2024.0, cart.TotalAmount, 1e-9)

	cart.Items = nil
	cart.Recalculate()
	assert.Zero(t, cart.TotalAmount)
}
