package order_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)

func price(t *testing.T, amount float64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromFloat(amount)
	require.NoError(t, err)
	return m
}

func item(t *testing.T, amount float64, quantity int) order.Item {
	t.Helper()
	i, err := order.NewItem(kernel.NewUUID(), "Notebook", price(t, amount), quantity)
	require.NoError(t, err)
	return i
}

func guest(t *testing.T) order.Customer {
	t.Helper()
	c, err := order.GuestCustomer(order.GuestProfile{Name: "Amina", Phone: "0550123456"})
	require.NoError(t, err)
	return c
}

func homeDelivery() order.DeliveryDetails {
	return order.DeliveryDetails{
		Type:    order.Delivery,
		Address: "12 rue Didouche Mourad",
		Phone:   "0550123456",
		Region:  "Alger",
	}
}

func newOrder(t *testing.T, details order.DeliveryDetails) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), guest(t), []order.Item{item(t, 500, 2)}, details, placedAt)
	require.NoError(t, err)
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("creates a pending order", func(t *testing.T) {
		o := newOrder(t, homeDelivery())

		require.NoError(t, o.Validate())
		assert.Equal(t, order.Pending, o.Status())
		assert.True(t, o.IsGuestOrder())
		assert.Nil(t, o.AssignedAdmin())
		assert.False(t, o.HasTracking())
		assert.Equal(t, int64(0), o.Version())
		assert.Equal(t, "1000.00", o.Total().String())
	})

	t.Run("sums every line", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), guest(t),
			[]order.Item{item(t, 500, 2), item(t, 120.5, 3)},
			order.DeliveryDetails{Type: order.Pickup}, placedAt)

		require.NoError(t, err)
		assert.Equal(t, "1361.50", o.Total().String())
	})

	t.Run("requires items", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), guest(t), nil, homeDelivery(), placedAt)

		require.ErrorIs(t, err, order.ErrItemsAreRequired)
	})

	t.Run("rejects a zero item", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), guest(t), []order.Item{{}}, homeDelivery(), placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires delivery fields for delivery orders", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), guest(t), []order.Item{item(t, 1, 1)},
			order.DeliveryDetails{Type: order.Delivery, Address: "x"}, placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("requires a constructed customer", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.Customer{}, []order.Item{item(t, 1, 1)},
			homeDelivery(), placedAt)

		require.ErrorIs(t, err, order.ErrCustomerIsNotConstructed)
	})

	t.Run("joins every validation error", func(t *testing.T) {
		_, err := order.NewOrder(kernel.UUID{}, order.Customer{}, nil, order.DeliveryDetails{}, time.Time{})

		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrCustomerIsNotConstructed)
		assert.ErrorIs(t, err, order.ErrItemsAreRequired)
		assert.Contains(t, err.Error(), "createdAt")
	})
}

func TestOrder_Validate(t *testing.T) {
	var nilOrder *order.Order
	require.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)

	zero := &order.Order{}
	require.ErrorIs(t, zero.Validate(), order.ErrOrderIsNotConstructed)
}

func TestOrder_Lifecycle(t *testing.T) {
	admin := kernel.NewUUID()

	t.Run("delivery order ships out after ready", func(t *testing.T) {
		o := newOrder(t, homeDelivery())

		require.NoError(t, o.Accept(admin))
		assert.True(t, o.IsAssignedTo(admin))
		assert.True(t, o.AwaitsDispatch())

		require.NoError(t, o.MarkReady(admin))
		require.NoError(t, o.ShipOut("ORDER_x_202503140926"))
		assert.Equal(t, order.OutForDelivery, o.Status())
		assert.False(t, o.AwaitsDispatch())

		require.NoError(t, o.MarkDelivered(kernel.NewUUID()))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("ready delivery order without tracking accepts mark ready again", func(t *testing.T) {
		o := newOrder(t, homeDelivery())
		require.NoError(t, o.Accept(admin))
		require.NoError(t, o.MarkReady(admin))

		other := kernel.NewUUID()
		require.NoError(t, o.MarkReady(other))

		assert.Equal(t, order.Ready, o.Status())
		assert.True(t, o.IsAssignedTo(other))
		assert.True(t, o.AwaitsDispatch())
	})

	t.Run("ready pickup order rejects mark ready again", func(t *testing.T) {
		o := newOrder(t, order.DeliveryDetails{Type: order.Pickup})
		require.NoError(t, o.Accept(admin))
		require.NoError(t, o.MarkReady(admin))

		require.ErrorIs(t, o.MarkReady(admin), order.ErrInvalidTransition)
		assert.False(t, o.AwaitsDispatch())
	})

	t.Run("pickup orders cannot ship out", func(t *testing.T) {
		o := newOrder(t, order.DeliveryDetails{Type: order.Pickup})
		require.NoError(t, o.Accept(admin))
		require.NoError(t, o.MarkReady(admin))

		require.ErrorIs(t, o.ShipOut("T-1"), order.ErrInvalidTransition)
		assert.False(t, o.HasTracking())
	})

	t.Run("pickup order is delivered only by its assigned admin", func(t *testing.T) {
		o := newOrder(t, order.DeliveryDetails{Type: order.Pickup})
		require.NoError(t, o.Accept(admin))
		require.NoError(t, o.MarkReady(admin))

		require.ErrorIs(t, o.MarkDelivered(kernel.NewUUID()), order.ErrInvalidTransition)
		assert.Equal(t, order.Ready, o.Status())

		require.NoError(t, o.MarkDelivered(admin))
		assert.Equal(t, order.Delivered, o.Status())
	})

	t.Run("rejected events leave the order unchanged", func(t *testing.T) {
		o := newOrder(t, homeDelivery())
		require.NoError(t, o.Decline(admin))

		for _, fire := range []func() error{
			func() error { return o.Accept(kernel.NewUUID()) },
			func() error { return o.Decline(kernel.NewUUID()) },
			func() error { return o.MarkReady(kernel.NewUUID()) },
			func() error { return o.MarkDelivered(kernel.NewUUID()) },
		} {
			require.ErrorIs(t, fire(), order.ErrInvalidTransition)
			assert.Equal(t, order.Declined, o.Status())
			assert.True(t, o.IsAssignedTo(admin))
		}
	})

	t.Run("reassign works in any status", func(t *testing.T) {
		o := newOrder(t, homeDelivery())
		require.NoError(t, o.Decline(admin))

		other := kernel.NewUUID()
		require.NoError(t, o.Reassign(other))

		assert.Equal(t, order.Declined, o.Status())
		assert.True(t, o.IsAssignedTo(other))
	})

	t.Run("rejects a nil admin id", func(t *testing.T) {
		o := newOrder(t, homeDelivery())

		require.ErrorIs(t, o.Accept(kernel.UUID{}), kernel.ErrUUIDIsNotConstructed)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("AdvanceVersion counts commits", func(t *testing.T) {
		o := newOrder(t, homeDelivery())
		o.AdvanceVersion()
		o.AdvanceVersion()

		assert.Equal(t, int64(2), o.Version())
	})
}

func TestRestoreOrder(t *testing.T) {
	admin := kernel.NewUUID()
	customerID := kernel.NewUUID()
	registered, err := order.RegisteredCustomer(customerID)
	require.NoError(t, err)
	items := []order.Item{item(t, 500, 2)}

	t.Run("restores a shipped order", func(t *testing.T) {
		id := kernel.NewUUID()
		o, err := order.RestoreOrder(id, registered, items, homeDelivery(), order.OutForDelivery,
			&admin, "ORDER_1", placedAt, 3)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.False(t, o.IsGuestOrder())
		assert.True(t, o.Customer().IsCustomer(customerID))
		assert.Equal(t, "ORDER_1", o.TrackingID())
		assert.Equal(t, int64(3), o.Version())
	})

	t.Run("requires an admin outside pending", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), registered, items, homeDelivery(), order.Accepted,
			nil, "", placedAt, 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects tracking on pickup orders", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), registered, items, order.DeliveryDetails{Type: order.Pickup},
			order.Delivered, &admin, "ORDER_1", placedAt, 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("requires tracking once out for delivery", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), registered, items, homeDelivery(), order.OutForDelivery,
			&admin, "", placedAt, 1)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), registered, items, homeDelivery(), order.Unknown,
			&admin, "", placedAt, 1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects negative version", func(t *testing.T) {
		_, err := order.RestoreOrder(kernel.NewUUID(), registered, items, homeDelivery(), order.Pending,
			nil, "", placedAt, -1)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestCustomer(t *testing.T) {
	t.Run("guest requires name and phone", func(t *testing.T) {
		_, err := order.GuestCustomer(order.GuestProfile{Email: "a@b.dz"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "guestName")
		assert.Contains(t, err.Error(), "guestPhone")
	})

	t.Run("guest has no customer id", func(t *testing.T) {
		c := guest(t)

		_, ok := c.ID()
		assert.False(t, ok)
		profile, ok := c.Guest()
		assert.True(t, ok)
		assert.Equal(t, "Amina", profile.Name)
	})

	t.Run("registered customer has no guest profile", func(t *testing.T) {
		c, err := order.RegisteredCustomer(kernel.NewUUID())
		require.NoError(t, err)

		_, ok := c.Guest()
		assert.False(t, ok)
		assert.False(t, c.IsGuest())
	})
}

func TestNewItem(t *testing.T) {
	_, err := order.NewItem(kernel.NewUUID(), "Pen", price(t, 10), 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = order.NewItem(kernel.NewUUID(), " ", price(t, 10), 1)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	i, err := order.NewItem(kernel.NewUUID(), "Pen", price(t, 10), 4)
	require.NoError(t, err)
	assert.Equal(t, "40.00", i.Subtotal().String())
}
