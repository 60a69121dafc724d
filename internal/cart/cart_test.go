package cart_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ctstudio/internal/cart"
)

func TestAddAccumulatesQuantity(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ID: "1", Name: "Starter Website", Price: 499})
	c.Add(cart.Item{ID: "1", Name: "Starter Website", Price: 499})
	c.Add(cart.Item{ID: "4", Name: "Premium SEO Paket", Price: 299})

	require.Len(t, c.Items, 2)
	require.Equal(t, 2, c.Quantity("1"))
	require.Equal(t, 3, c.TotalItems)
	require.InDelta(t, 499*2+299, c.TotalPrice, 0.001)
}

func TestTotalsFollowEveryMutation(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ID: "2", Name: "Business Website", Price: 999})
	c.SetQuantity("2", 3)
	require.Equal(t, 3, c.TotalItems)
	require.InDelta(t, 2997, c.TotalPrice, 0.001)

	c.Remove("2")
	require.Empty(t, c.Items)
	require.Equal(t, 0, c.TotalItems)
	require.Zero(t, c.TotalPrice)
}

func TestSetQuantityBelowOneRemoves(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ID: "6", Name: "Wartung & Support", Price: 49})
	c.SetQuantity("6", 0)
	require.False(t, c.Contains("6"))
	require.Equal(t, 0, c.TotalItems)
}

func TestClear(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ID: "3", Name: "E-Commerce Lösung", Price: 1499})
	c.Clear()
	require.Empty(t, c.Items)
	require.Equal(t, 0, c.TotalItems)
	require.Zero(t, c.TotalPrice)
}

func TestEncodeStoresItemsOnly(t *testing.T) {
	c := cart.New()
	c.Add(cart.Item{ID: "5", Name: "Logo & Branding", Price: 399})
	data, err := c.Encode()
	require.NoError(t, err)
	require.NotContains(t, string(data), "totalPrice")
}

func TestDecodeRecomputesTotals(t *testing.T) {
	// Persisted payload carries no totals; a tampered or stale copy cannot
	// smuggle them back in.
	raw := []byte(`[{"id":"2","name":"Business Website","price":999,"quantity":2}]`)
	c, err := cart.Decode(raw)
	require.NoError(t, err)
	require.Equal(t, 2, c.TotalItems)
	require.InDelta(t, 1998, c.TotalPrice, 0.001)
}

func TestDecodeEmptyAndInvalid(t *testing.T) {
	c, err := cart.Decode(nil)
	require.NoError(t, err)
	require.NotNil(t, c.Items)
	require.Empty(t, c.Items)

	_, err = cart.Decode([]byte(`{not json`))
	require.Error(t, err)
}
