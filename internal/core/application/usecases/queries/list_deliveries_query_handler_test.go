package queries_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listDeliveries(t *testing.T, w world, as kernel.Actor, status *delivery.Status) (pagination.Page[queries.DeliveryView], error) {
	t.Helper()
	q, err := queries.NewListDeliveriesQuery(as, status, 1, 10)
	require.NoError(t, err)
	return queries.NewListDeliveriesQueryHandler(w.db).Handle(t.Context(), q)
}

func TestListDeliveriesQueryHandler(t *testing.T) {
	w := newWorld(t)
	otherAgent := actor(t, kernel.RoleAgent)

	o1 := w.place(t, w.customer, w.owner, day, "Apples")
	w.process(t, o1, w.owner)
	d1 := w.assign(t, o1, w.agent)

	o2 := w.place(t, w.stranger, w.owner, day.Add(time.Hour), "Pears")
	w.process(t, o2, w.owner)
	d2 := w.assign(t, o2, otherAgent)

	_, err := d2.Advance(otherAgent, day.Add(3*time.Hour))
	require.NoError(t, err)
	require.NoError(t, w.deliveries.Update(t.Context(), d2))

	t.Run("should list the agent's own deliveries", func(t *testing.T) {
		page, err := listDeliveries(t, w, w.agent, nil)

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		view := page.Items[0]
		assert.True(t, view.ID.IsEqual(d1.ID()))
		assert.True(t, view.OrderID.IsEqual(o1.ID()))
		assert.Equal(t, delivery.Assigned, view.Status)
		assert.Equal(t, "1 Main St", view.Dropoff.Street)
		require.Len(t, view.Timestamps, 1)
		assert.True(t, view.Timestamps[0].At.Equal(view.AssignedAt))
	})

	t.Run("should list the owner's deliveries newest first", func(t *testing.T) {
		page, err := listDeliveries(t, w, w.owner, nil)

		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		assert.True(t, page.Items[0].ID.IsEqual(d2.ID()))
		assert.Equal(t, int64(2), page.Total)
		require.Len(t, page.Items[0].Timestamps, 2)
		assert.Equal(t, delivery.Accepted, page.Items[0].Timestamps[1].Status)
	})

	t.Run("should list deliveries of the customer's orders", func(t *testing.T) {
		page, err := listDeliveries(t, w, w.stranger, nil)

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.True(t, page.Items[0].ID.IsEqual(d2.ID()))
	})

	t.Run("should filter by status", func(t *testing.T) {
		status := delivery.Accepted

		page, err := listDeliveries(t, w, w.owner, &status)

		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.True(t, page.Items[0].ID.IsEqual(d2.ID()))
	})

	t.Run("should refuse the system actor", func(t *testing.T) {
		_, err := listDeliveries(t, w, kernel.SystemActor(), nil)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
	})
}
