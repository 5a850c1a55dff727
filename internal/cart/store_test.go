package cart

import (
	"context"
	"sync"
	"testing"

	"donut-store/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_GetUnknownSessionReturnsEmptyCart(t *testing.T) {
	store := NewMemoryStore()

	c, err := store.Get(context.Background(), "nobody")

	require.NoError(t, err)
	assert.True(t, c.Empty())
}

func TestMemoryStore_SaveAndGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, err := Cart{}.Add(model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 2})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "session-1", c))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity("donut-glazed"))
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, err := Cart{}.Add(model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "session-1", c))

	other, err := store.Get(ctx, "session-2")
	require.NoError(t, err)
	assert.True(t, other.Empty())
}

func TestMemoryStore_Clear(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, err := Cart{}.Add(model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "session-1", c))
	require.NoError(t, store.Clear(ctx, "session-1"))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.True(t, got.Empty())
}

func TestMemoryStore_GetHandsOutCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	c, err := Cart{}.Add(model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, "session-1", c))

	got, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, err := store.Get(ctx, "session-1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Quantity("donut-glazed"))
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			c, err := Cart{}.Add(model.CartItem{ID: "donut-glazed", Price: 15000, Quantity: 1})
			assert.NoError(t, err)
			assert.NoError(t, store.Save(ctx, "shared", c))
			_, err = store.Get(ctx, "shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
