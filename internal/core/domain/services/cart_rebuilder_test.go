package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartRebuilder_Rebuild(t *testing.T) {
	p := newParties(t)
	o := newOrder(t, p, order.Pending)
	rebuilder := services.NewCartRebuilder()

	product := func(id string, cents int64, stock int) catalog.Product {
		prod, err := catalog.NewProduct(id, "Product "+id, "", kernel.MoneyFromCents(cents), stock, p.owner.ID())
		require.NoError(t, err)
		return prod
	}

	t.Run("should use current prices and clamp to stock", func(t *testing.T) {
		c, dropped, err := rebuilder.Rebuild(o, map[string]catalog.Product{
			"1": product("1", 650, 10),
			"3": product("3", 299, 2),
		})

		require.NoError(t, err)
		assert.Empty(t, dropped)
		apples, ok := c.Line("1")
		require.True(t, ok)
		assert.Equal(t, 2, apples.Quantity())
		assert.Equal(t, "6.50", apples.UnitPrice().String())
		pears, ok := c.Line("3")
		require.True(t, ok)
		assert.Equal(t, 2, pears.Quantity())
		assert.Equal(t, 4, c.TotalItems())
	})

	t.Run("should drop missing and sold out products", func(t *testing.T) {
		c, dropped, err := rebuilder.Rebuild(o, map[string]catalog.Product{
			"3": product("3", 299, 0),
		})

		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"1", "3"}, dropped)
		assert.True(t, c.IsEmpty())
	})
}
