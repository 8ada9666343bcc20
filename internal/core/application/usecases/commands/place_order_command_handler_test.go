package commands_test

import (
	"errors"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	customer := newCustomerUser(t)
	notebook := newProduct(t, "Notebook", 500, 0)
	pen := newProduct(t, "Pen", 75.5, 3)

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customer.ID(), []commands.PlaceOrderItem{
		{
			OrderLine: commands.OrderLine{ProductID: notebook.ID(), Quantity: 2},
			Delivery:  order.DeliveryDetails{Type: order.Delivery, Address: "5 boulevard de la Soummam"},
		},
		{OrderLine: commands.OrderLine{ProductID: pen.ID(), Quantity: 1}},
	})
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, notebook.ID()).Return(notebook, nil).Once()
	catalog.On("Get", ctx, pen.ID()).Return(pen, nil).Once()

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	recorder := &recorderSpy{}
	handler := commands.NewPlaceOrderCommandHandler(factory, catalog, users, fixedClock(), recorder, discardLogger())

	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Pending, o.Status())
	assert.False(t, o.IsGuestOrder())
	assert.True(t, o.Customer().IsCustomer(customer.ID()))
	assert.Equal(t, "1075.50", o.Total().String())
	assert.Equal(t, fixedClock()(), o.CreatedAt())

	delivery := o.Delivery()
	assert.Equal(t, order.Delivery, delivery.Type)
	assert.Equal(t, "Oran", delivery.Region, "region falls back to the customer profile")
	assert.Equal(t, "0770111222", delivery.Phone, "phone falls back to the customer profile")

	items := o.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Notebook", items[0].Title())
	assert.Equal(t, "500.00", items[0].UnitPrice().String())

	assert.Equal(t, []string{"place:ok"}, recorder.transitions)
	mock.AssertExpectationsForObjects(t, users, catalog, repo, uow, factory)
}

func TestPlaceOrderCommandHandler_Handle_UnknownProduct(t *testing.T) {
	ctx := t.Context()
	customer := newCustomerUser(t)
	productID := kernel.NewUUID()

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), customer.ID(), []commands.PlaceOrderItem{{
		OrderLine: commands.OrderLine{ProductID: productID, Quantity: 1},
		Delivery:  order.DeliveryDetails{Type: order.Pickup},
	}})
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", ctx, customer.ID()).Return(customer, nil).Once()
	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, productID).Return(nil, errs.NewObjectNotFoundError("product", productID.String())).Once()
	factory := new(MockUoWFactory)
	recorder := &recorderSpy{}

	handler := commands.NewPlaceOrderCommandHandler(factory, catalog, users, fixedClock(), recorder, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	factory.AssertNotCalled(t, "Create")
	assert.Equal(t, []string{"place:not_found"}, recorder.transitions)
}

func TestPlaceOrderCommandHandler_Handle_DeliveryWithoutRegion(t *testing.T) {
	ctx := t.Context()
	customer := newCustomerUser(t)
	notebook := newProduct(t, "Notebook", 500, 10)

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), kernel.NewUUID(), []commands.PlaceOrderItem{{
		OrderLine: commands.OrderLine{ProductID: notebook.ID(), Quantity: 1},
		Delivery:  order.DeliveryDetails{Type: order.Delivery},
	}})
	require.NoError(t, err)

	users := new(MockUserDirectory)
	users.On("Get", ctx, cmd.CustomerID()).Return(customer, nil).Once()
	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, notebook.ID()).Return(notebook, nil).Once()
	factory := new(MockUoWFactory)

	handler := commands.NewPlaceOrderCommandHandler(factory, catalog, users, fixedClock(), &recorderSpy{}, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrValueIsRequired, "address is still missing")
	factory.AssertNotCalled(t, "Create")
}

func TestPlaceGuestOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	notebook := newProduct(t, "Notebook", 500, 5)

	cmd, err := commands.NewPlaceGuestOrderCommand(kernel.NewUUID(),
		order.GuestProfile{Name: "Amina", Phone: "0550123456"},
		order.Delivery, "12 rue Didouche Mourad", "Alger",
		[]commands.OrderLine{{ProductID: notebook.ID(), Quantity: 2}})
	require.NoError(t, err)

	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, notebook.ID()).Return(notebook, nil).Once()
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceGuestOrderCommandHandler(factory, catalog, fixedClock(), &recorderSpy{}, discardLogger())
	o, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, o.IsGuestOrder())
	assert.Equal(t, "1000.00", o.Total().String())
	guest, ok := o.Customer().Guest()
	require.True(t, ok)
	assert.Equal(t, "Amina", guest.Name)
	mock.AssertExpectationsForObjects(t, catalog, repo, uow, factory)
}

func TestPlaceGuestOrderCommandHandler_Handle_InsufficientStock(t *testing.T) {
	ctx := t.Context()
	notebook := newProduct(t, "Notebook", 500, 1)

	cmd, err := commands.NewPlaceGuestOrderCommand(kernel.NewUUID(),
		order.GuestProfile{Name: "Amina", Phone: "0550123456"},
		order.Pickup, "", "",
		[]commands.OrderLine{{ProductID: notebook.ID(), Quantity: 2}})
	require.NoError(t, err)

	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, notebook.ID()).Return(notebook, nil).Once()
	factory := new(MockUoWFactory)
	recorder := &recorderSpy{}

	handler := commands.NewPlaceGuestOrderCommandHandler(factory, catalog, fixedClock(), recorder, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Notebook")
	factory.AssertNotCalled(t, "Create")
	assert.Equal(t, []string{"place_guest:insufficient_stock"}, recorder.transitions)
}

func TestPlaceGuestOrderCommandHandler_Handle_AddFails(t *testing.T) {
	ctx := t.Context()
	notebook := newProduct(t, "Notebook", 500, 5)
	cmd, err := commands.NewPlaceGuestOrderCommand(kernel.NewUUID(),
		order.GuestProfile{Name: "Amina", Phone: "0550123456"},
		order.Pickup, "", "",
		[]commands.OrderLine{{ProductID: notebook.ID(), Quantity: 1}})
	require.NoError(t, err)

	catalog := new(MockProductCatalog)
	catalog.On("Get", ctx, notebook.ID()).Return(notebook, nil).Once()
	repo := new(MockOrderRepository)
	repo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(errors.New("db down")).Once()
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceGuestOrderCommandHandler(factory, catalog, fixedClock(), &recorderSpy{}, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "db down")
	uow.AssertNotCalled(t, "Commit", ctx)
	uow.AssertExpectations(t)
}
