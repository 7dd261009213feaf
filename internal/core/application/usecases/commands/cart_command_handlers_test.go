package commands_test

import (
	"math"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartCommandHandler(t *testing.T) {
	t.Run("should merge repeated adds and clamp at stock", func(t *testing.T) {
		e := newEnv(t)
		h := e.cartHandler()

		for _, qty := range []int{3, 4} {
			cmd, err := commands.NewAddCartItemCommand(sessionKey, "3", qty)
			require.NoError(t, err)
			_, err = h.AddItem(t.Context(), cmd)
			require.NoError(t, err)
		}

		c, err := e.carts.Get(t.Context(), sessionKey)
		require.NoError(t, err)
		line, ok := c.Line("3")
		require.True(t, ok)
		assert.Equal(t, 5, line.Quantity())
		assert.Equal(t, "Pears", line.Name())
		assert.Equal(t, "14.95", c.TotalPrice().String())
	})

	t.Run("should fail for unknown products", func(t *testing.T) {
		e := newEnv(t)
		cmd, err := commands.NewAddCartItemCommand(sessionKey, "404", 1)
		require.NoError(t, err)

		_, err = e.cartHandler().AddItem(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should fail for sold out products", func(t *testing.T) {
		e := newEnv(t)
		e.addProduct(t, "9", "Figs", 100, 0, e.owner.ID())
		cmd, err := commands.NewAddCartItemCommand(sessionKey, "9", 1)
		require.NoError(t, err)

		_, err = e.cartHandler().AddItem(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrInsufficientStock)
	})

	t.Run("should update, remove and clear", func(t *testing.T) {
		e := newEnv(t)
		e.fillCart(t)
		h := e.cartHandler()

		update, err := commands.NewUpdateCartItemQuantityCommand(sessionKey, "1", 4)
		require.NoError(t, err)
		c, err := h.UpdateQuantity(t.Context(), update)
		require.NoError(t, err)
		assert.Equal(t, 5, c.TotalItems())

		tooMany, err := commands.NewUpdateCartItemQuantityCommand(sessionKey, "1", 11)
		require.NoError(t, err)
		_, err = h.UpdateQuantity(t.Context(), tooMany)
		require.ErrorIs(t, err, errs.ErrInsufficientStock)
		require.ErrorIs(t, err, errs.ErrValidation)

		zero, err := commands.NewUpdateCartItemQuantityCommand(sessionKey, "1", 0)
		require.NoError(t, err)
		_, err = h.UpdateQuantity(t.Context(), zero)
		require.ErrorIs(t, err, errs.ErrValidation)

		remove, err := commands.NewRemoveCartItemCommand(sessionKey, "1")
		require.NoError(t, err)
		c, err = h.RemoveItem(t.Context(), remove)
		require.NoError(t, err)
		assert.Equal(t, 1, c.TotalItems())

		clearCmd, err := commands.NewClearCartCommand(sessionKey)
		require.NoError(t, err)
		c, err = h.Clear(t.Context(), clearCmd)
		require.NoError(t, err)
		assert.True(t, c.IsEmpty())

		stored, err := e.carts.Get(t.Context(), sessionKey)
		require.NoError(t, err)
		assert.True(t, stored.IsEmpty())
	})
}

func TestCartCommands_Validation(t *testing.T) {
	_, err := commands.NewAddCartItemCommand("", "1", 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewAddCartItemCommand(sessionKey, "1", 0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewAddCartItemCommand(sessionKey, "1", math.MaxInt)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewRemoveCartItemCommand(sessionKey, " ")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = commands.NewCartCommandHandler(nil, nil).AddItem(t.Context(), commands.AddCartItemCommand{})
	require.ErrorIs(t, err, commands.ErrAddCartItemCommandIsNotConstructed)
}
