package addressrepo_test

import (
	"testing"

	"fulfillment/internal/adapters/out/postgres/addressrepo"
	"fulfillment/internal/adapters/out/postgres/testdb"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func address(t *testing.T, street string) kernel.Address {
	t.Helper()
	a, err := kernel.NewAddress("Ada Lovelace", street, "Springfield", "12345", "+1 555 0100")
	require.NoError(t, err)
	return a
}

func TestGormAddressBook(t *testing.T) {
	t.Run("should return only the customer's own address", func(t *testing.T) {
		book := addressrepo.NewGormAddressBook(testdb.New(t))
		customer, stranger, id := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, book.Save(t.Context(), id, customer, address(t, "1 Main St"), false))

		got, err := book.Get(t.Context(), customer, id)
		require.NoError(t, err)
		assert.Equal(t, "1 Main St", got.Street())

		_, err = book.Get(t.Context(), stranger, id)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should move the default flag", func(t *testing.T) {
		book := addressrepo.NewGormAddressBook(testdb.New(t))
		customer := kernel.NewUUID()
		require.NoError(t, book.Save(t.Context(), kernel.NewUUID(), customer, address(t, "1 Main St"), true))
		require.NoError(t, book.Save(t.Context(), kernel.NewUUID(), customer, address(t, "2 Side St"), true))

		got, err := book.GetDefault(t.Context(), customer)

		require.NoError(t, err)
		assert.Equal(t, "2 Side St", got.Street())
	})

	t.Run("should return not found without a default", func(t *testing.T) {
		book := addressrepo.NewGormAddressBook(testdb.New(t))
		customer := kernel.NewUUID()
		require.NoError(t, book.Save(t.Context(), kernel.NewUUID(), customer, address(t, "1 Main St"), false))

		_, err := book.GetDefault(t.Context(), customer)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}
