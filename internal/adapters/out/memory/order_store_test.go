package memory_test

import (
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuestOrder(t *testing.T, createdAt time.Time) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromFloat(500)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Notebook", price, 2)
	require.NoError(t, err)
	guest, err := order.GuestCustomer(order.GuestProfile{Name: "Amina", Phone: "0550123456"})
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), guest, []order.Item{item}, order.DeliveryDetails{
		Type:    order.Delivery,
		Address: "12 rue Didouche Mourad",
		Phone:   "0550123456",
		Region:  "Alger",
	}, createdAt)
	require.NoError(t, err)
	return o
}

func newRegisteredOrder(t *testing.T, customerID kernel.UUID, createdAt time.Time) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromFloat(120)
	require.NoError(t, err)
	item, err := order.NewItem(kernel.NewUUID(), "Pen", price, 1)
	require.NoError(t, err)
	customer, err := order.RegisteredCustomer(customerID)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Item{item},
		order.DeliveryDetails{Type: order.Pickup}, createdAt)
	require.NoError(t, err)
	return o
}

func TestOrderRepository_AddAndGet(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewOrderStore())
	o := newGuestOrder(t, time.Now())

	require.NoError(t, repo.Add(ctx, o))

	got, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.True(t, got.IsEqual(o))
	assert.Equal(t, order.Pending, got.Status())
	assert.Equal(t, "1000.00", got.Total().String())
	assert.True(t, got.IsGuestOrder())

	t.Run("duplicate add fails", func(t *testing.T) {
		require.ErrorIs(t, repo.Add(ctx, o), errs.ErrValueIsInvalid)
	})

	t.Run("unknown id is not found", func(t *testing.T) {
		_, err := repo.Get(ctx, kernel.NewUUID())
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("returned aggregates are copies", func(t *testing.T) {
		got, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		require.NoError(t, got.Accept(kernel.NewUUID()))

		again, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Pending, again.Status())
	})
}

func TestOrderRepository_Finders(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewOrderStore())
	customerID := kernel.NewUUID()
	admin := kernel.NewUUID()
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	oldest := newRegisteredOrder(t, customerID, base)
	middle := newGuestOrder(t, base.Add(time.Hour))
	newest := newRegisteredOrder(t, customerID, base.Add(2*time.Hour))
	for _, o := range []*order.Order{middle, oldest, newest} {
		require.NoError(t, repo.Add(ctx, o))
	}

	require.NoError(t, middle.Accept(admin))
	require.NoError(t, repo.CompareAndSetStatus(ctx, middle, order.Pending))

	t.Run("by customer newest first", func(t *testing.T) {
		got, err := repo.FindByCustomer(ctx, customerID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].IsEqual(newest))
		assert.True(t, got[1].IsEqual(oldest))
	})

	t.Run("by status", func(t *testing.T) {
		pending := order.Pending
		got, err := repo.FindByStatus(ctx, &pending)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].IsEqual(newest))

		all, err := repo.FindByStatus(ctx, nil)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.True(t, all[1].IsEqual(middle))
	})

	t.Run("by assigned admin", func(t *testing.T) {
		got, err := repo.FindByAssignedAdmin(ctx, admin)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].IsEqual(middle))
	})
}

func TestOrderRepository_CompareAndSetStatus(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewOrderRepository(memory.NewOrderStore())
	o := newGuestOrder(t, time.Now())
	require.NoError(t, repo.Add(ctx, o))

	t.Run("writes and bumps version", func(t *testing.T) {
		loaded, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		admin := kernel.NewUUID()
		require.NoError(t, loaded.Accept(admin))

		require.NoError(t, repo.CompareAndSetStatus(ctx, loaded, order.Pending))
		assert.Equal(t, int64(1), loaded.Version())

		stored, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Accepted, stored.Status())
		assert.True(t, stored.IsAssignedTo(admin))
		assert.Equal(t, int64(1), stored.Version())
	})

	t.Run("stale status loses", func(t *testing.T) {
		stale, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		require.NoError(t, stale.Reassign(kernel.NewUUID()))

		err = repo.CompareAndSetStatus(ctx, stale, order.Pending)
		require.ErrorIs(t, err, ports.ErrConcurrentModification)
	})

	t.Run("stale version loses even with same status", func(t *testing.T) {
		first, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		second, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)

		require.NoError(t, first.Reassign(kernel.NewUUID()))
		require.NoError(t, repo.CompareAndSetStatus(ctx, first, order.Accepted))

		require.NoError(t, second.Reassign(kernel.NewUUID()))
		err = repo.CompareAndSetStatus(ctx, second, order.Accepted)
		require.ErrorIs(t, err, ports.ErrConcurrentModification)

		stored, err := repo.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.True(t, stored.IsAssignedTo(*first.AssignedAdmin()))
	})

	t.Run("missing order is not found", func(t *testing.T) {
		ghost := newGuestOrder(t, time.Now())
		require.NoError(t, ghost.Accept(kernel.NewUUID()))

		err := repo.CompareAndSetStatus(ctx, ghost, order.Pending)
		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestOrderRepository_ConcurrentCompareAndSet(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	repo := memory.NewOrderRepository(store)
	o := newGuestOrder(t, time.Now())
	require.NoError(t, repo.Add(ctx, o))

	const racers = 20
	var (
		wg      sync.WaitGroup
		wins    atomic.Int32
		winner  atomic.Value
		start   = make(chan struct{})
		factory = memory.NewUnitOfWorkFactory(store)
	)

	for range racers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			admin := kernel.NewUUID()
			uow := factory.Create()
			if !assert.NoError(t, uow.Begin(ctx)) {
				return
			}
			defer func() { _ = uow.Rollback(ctx) }()

			loaded, err := uow.OrderRepository().Get(ctx, o.ID())
			if err != nil {
				return
			}
			<-start
			if loaded.Accept(admin) != nil {
				return
			}
			if uow.OrderRepository().CompareAndSetStatus(ctx, loaded, order.Pending) != nil {
				return
			}
			if uow.Commit(ctx) == nil {
				wins.Add(1)
				winner.Store(admin)
			}
		}()
	}
	close(start)
	wg.Wait()

	require.Equal(t, int32(1), wins.Load())
	stored, err := repo.Get(ctx, o.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Accepted, stored.Status())
	assert.True(t, stored.IsAssignedTo(winner.Load().(kernel.UUID)))
	assert.Equal(t, int64(1), stored.Version())
}

func TestOrderRepository_Delete(t *testing.T) {
	ctx := t.Context()
	store := memory.NewOrderStore()
	repo := memory.NewOrderRepository(store)
	o := newGuestOrder(t, time.Now())
	require.NoError(t, repo.Add(ctx, o))

	require.NoError(t, repo.Delete(ctx, o.ID()))
	assert.Equal(t, 0, store.Len())

	require.ErrorIs(t, repo.Delete(ctx, o.ID()), errs.ErrObjectNotFound)
}

func TestUnitOfWork(t *testing.T) {
	ctx := t.Context()

	t.Run("rollback discards buffered writes", func(t *testing.T) {
		store := memory.NewOrderStore()
		uow := memory.NewUnitOfWorkFactory(store).Create()
		require.NoError(t, uow.Begin(ctx))

		require.NoError(t, uow.OrderRepository().Add(ctx, newGuestOrder(t, time.Now())))
		assert.Equal(t, 0, store.Len())

		require.NoError(t, uow.Rollback(ctx))
		assert.Equal(t, 0, store.Len())
	})

	t.Run("commit applies buffered writes", func(t *testing.T) {
		store := memory.NewOrderStore()
		uow := memory.NewUnitOfWorkFactory(store).Create()
		require.NoError(t, uow.Begin(ctx))

		require.NoError(t, uow.OrderRepository().Add(ctx, newGuestOrder(t, time.Now())))
		require.NoError(t, uow.Commit(ctx))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("commit fails when the record changed after the buffered write", func(t *testing.T) {
		store := memory.NewOrderStore()
		direct := memory.NewOrderRepository(store)
		o := newGuestOrder(t, time.Now())
		require.NoError(t, direct.Add(ctx, o))

		uow := memory.NewUnitOfWorkFactory(store).Create()
		require.NoError(t, uow.Begin(ctx))
		loaded, err := uow.OrderRepository().Get(ctx, o.ID())
		require.NoError(t, err)
		require.NoError(t, loaded.Accept(kernel.NewUUID()))
		require.NoError(t, uow.OrderRepository().CompareAndSetStatus(ctx, loaded, order.Pending))

		rival, err := direct.Get(ctx, o.ID())
		require.NoError(t, err)
		require.NoError(t, rival.Decline(kernel.NewUUID()))
		require.NoError(t, direct.CompareAndSetStatus(ctx, rival, order.Pending))

		require.ErrorIs(t, uow.Commit(ctx), ports.ErrConcurrentModification)
		stored, err := direct.Get(ctx, o.ID())
		require.NoError(t, err)
		assert.Equal(t, order.Declined, stored.Status())
	})

	t.Run("commit and rollback need begin", func(t *testing.T) {
		uow := memory.NewUnitOfWorkFactory(memory.NewOrderStore()).Create()

		require.ErrorIs(t, uow.Commit(ctx), memory.ErrNoActiveTransaction)
		require.ErrorIs(t, uow.Rollback(ctx), memory.ErrNoActiveTransaction)
	})
}

func TestCatalogAndDirectory(t *testing.T) {
	ctx := t.Context()
	price, err := kernel.MoneyFromFloat(500)
	require.NoError(t, err)
	product, err := catalog.NewProduct(kernel.NewUUID(), "Notebook", price, 3)
	require.NoError(t, err)
	user, err := identity.NewUser(kernel.NewUUID(), "Karim", "", "", "Oran", identity.RoleAdmin)
	require.NoError(t, err)

	c := memory.NewCatalog(product)
	d := memory.NewDirectory(user)

	got, err := c.Get(ctx, product.ID())
	require.NoError(t, err)
	assert.Equal(t, "Notebook", got.Title())
	_, err = c.Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	gotUser, err := d.Get(ctx, user.ID())
	require.NoError(t, err)
	assert.True(t, gotUser.IsStaff())
	_, err = d.Get(ctx, kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestLoadSeed(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	userID := kernel.NewUUID()
	fixture := `{
		"products": [{"id": "` + productID.String() + `", "title": "Notebook", "price": 500, "stock": 10}],
		"users": [{"id": "` + userID.String() + `", "fullName": "Karim", "region": "Oran", "roles": ["super_admin"]}]
	}`

	c := memory.NewCatalog()
	d := memory.NewDirectory()
	require.NoError(t, memory.LoadSeed(strings.NewReader(fixture), c, d))

	p, err := c.Get(ctx, productID)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Stock())

	u, err := d.Get(ctx, userID)
	require.NoError(t, err)
	assert.True(t, u.IsSuperAdmin())

	t.Run("reports bad entries", func(t *testing.T) {
		bad := `{"products": [{"id": "nope", "title": "x"}], "users": [{"id": "` + userID.String() + `", "roles": ["pilot"]}]}`

		err := memory.LoadSeed(strings.NewReader(bad), memory.NewCatalog(), memory.NewDirectory())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "product nope")
		assert.Contains(t, err.Error(), "user "+userID.String())
	})
}
