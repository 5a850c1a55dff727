package cart

import (
	"testing"

	"donut-store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glazed(qty int) model.CartItem {
	return model.CartItem{ID: "donut-glazed", Name: "Classic Glazed", Price: 15000, Quantity: qty}
}

func frosted(qty int) model.CartItem {
	return model.CartItem{ID: "donut-frosted", Name: "Chocolate Frosted", Price: 18000, Quantity: qty}
}

func TestCart_Add_NewItem(t *testing.T) {
	c := Cart{}

	c, err := c.Add(glazed(2))
	require.NoError(t, err)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 2, c.Quantity("donut-glazed"))
	assert.Equal(t, int64(30000), c.Total())
}

func TestCart_Add_MergesExistingItem(t *testing.T) {
	c := Cart{}

	c, err := c.Add(glazed(2))
	require.NoError(t, err)
	c, err = c.Add(glazed(3))
	require.NoError(t, err)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 5, c.Quantity("donut-glazed"))
}

func TestCart_Add_RejectsInvalidQuantity(t *testing.T) {
	c := Cart{}

	for _, qty := range []int{0, -1, -100} {
		_, err := c.Add(glazed(qty))
		assert.ErrorIs(t, err, model.ErrInvalidQuantity, "quantity %d", qty)
	}

	assert.True(t, c.Empty())
}

func TestCart_Add_DoesNotMutateReceiver(t *testing.T) {
	original, err := Cart{}.Add(glazed(1))
	require.NoError(t, err)

	updated, err := original.Add(frosted(2))
	require.NoError(t, err)
	updated2, err := original.Add(glazed(5))
	require.NoError(t, err)

	assert.Len(t, original.Items, 1)
	assert.Equal(t, 1, original.Quantity("donut-glazed"))
	assert.Len(t, updated.Items, 2)
	assert.Equal(t, 6, updated2.Quantity("donut-glazed"))
}

func TestCart_UpdateQuantity(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)

	c = c.UpdateQuantity("donut-glazed", 7)

	assert.Equal(t, 7, c.Quantity("donut-glazed"))
	assert.Equal(t, int64(105000), c.Total())
}

func TestCart_UpdateQuantity_ZeroRemovesItem(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)
	c, err = c.Add(frosted(1))
	require.NoError(t, err)

	c = c.UpdateQuantity("donut-glazed", 0)

	assert.Equal(t, 0, c.Quantity("donut-glazed"))
	assert.Equal(t, 1, c.Quantity("donut-frosted"))
	assert.Len(t, c.Items, 1)
}

func TestCart_UpdateQuantity_NegativeRemovesItem(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)

	c = c.UpdateQuantity("donut-glazed", -3)

	assert.True(t, c.Empty())
}

func TestCart_UpdateQuantity_UnknownIDIsNoOp(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)

	next := c.UpdateQuantity("donut-unknown", 5)

	assert.Equal(t, c.Items, next.Items)
}

func TestCart_Remove(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)
	c, err = c.Add(frosted(1))
	require.NoError(t, err)

	c = c.Remove("donut-glazed")

	assert.Len(t, c.Items, 1)
	assert.Equal(t, "donut-frosted", c.Items[0].ID)
}

func TestCart_Remove_UnknownIDIsNoOp(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)

	next := c.Remove("donut-unknown")

	assert.Equal(t, c.Items, next.Items)
}

func TestCart_Clear(t *testing.T) {
	c, err := Cart{}.Add(glazed(2))
	require.NoError(t, err)

	c = c.Clear()

	assert.True(t, c.Empty())
	assert.Equal(t, int64(0), c.Total())
}

func TestCart_Total_MultipleItems(t *testing.T) {
	c, err := Cart{}.Add(glazed(2)) // 30000
	require.NoError(t, err)
	c, err = c.Add(frosted(3)) // 54000
	require.NoError(t, err)

	assert.Equal(t, int64(84000), c.Total())
}

func TestCart_Quantity_AbsentItemIsZero(t *testing.T) {
	assert.Equal(t, 0, Cart{}.Quantity("donut-glazed"))
}
