package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order not built by NewOrder
	// or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
	// ErrItemsAreRequired is returned when an order has no lines.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of the fulfillment lifecycle.
//
// Invariants held by every constructor and transition:
//   - at least one item, each with a positive quantity
//   - delivery address, phone and region present for Delivery orders
//   - a tracking id only on Delivery orders, and always once OutForDelivery
//   - an assigned admin once the order has left Pending
//
// version counts committed mutations. Repositories use it, together with the
// status, as the precondition of their conditional write.
type Order struct {
	id            kernel.UUID
	customer      Customer
	items         []Item
	status        Status
	delivery      DeliveryDetails
	assignedAdmin *kernel.UUID
	trackingID    string
	createdAt     time.Time
	version       int64
	guard         guard.ConstructorGuard
}

// NewOrder creates a Pending order.
//
// Example:
//
//	customer, _ := order.GuestCustomer(order.GuestProfile{Name: "Amina", Phone: "0550123456"})
//	item, _ := order.NewItem(productID, "Notebook", price, 2)
//	o, err := order.NewOrder(kernel.NewUUID(), customer, []order.Item{item}, order.DeliveryDetails{
//	    Type:    order.Delivery,
//	    Address: "12 rue Didouche Mourad",
//	    Phone:   "0550123456",
//	    Region:  "Alger",
//	}, time.Now())
func NewOrder(
	id kernel.UUID,
	customer Customer,
	items []Item,
	delivery DeliveryDetails,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setDelivery(delivery),
		o.setCreatedAt(createdAt),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds an order from storage and re-checks every invariant.
func RestoreOrder(
	id kernel.UUID,
	customer Customer,
	items []Item,
	delivery DeliveryDetails,
	status Status,
	assignedAdmin *kernel.UUID,
	trackingID string,
	createdAt time.Time,
	version int64,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setItems(items),
		o.setDelivery(delivery),
		o.setCreatedAt(createdAt),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}
	o.status = status

	if assignedAdmin != nil {
		if err := assignedAdmin.Validate(); err != nil {
			return nil, err
		}
		adminID := *assignedAdmin
		o.assignedAdmin = &adminID
	}
	o.trackingID = strings.TrimSpace(trackingID)

	if err := o.checkState(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate fails for an Order that bypassed the constructors.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by id.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID            { return o.id }
func (o *Order) Customer() Customer         { return o.customer }
func (o *Order) IsGuestOrder() bool         { return o.customer.IsGuest() }
func (o *Order) Items() []Item              { return slices.Clone(o.items) }
func (o *Order) Status() Status             { return o.status }
func (o *Order) Delivery() DeliveryDetails  { return o.delivery }
func (o *Order) DeliveryType() DeliveryType { return o.delivery.Type }
func (o *Order) TrackingID() string         { return o.trackingID }
func (o *Order) CreatedAt() time.Time       { return o.createdAt }
func (o *Order) Version() int64             { return o.version }
func (o *Order) HasTracking() bool          { return o.trackingID != "" }
func (o *Order) AssignedAdmin() *kernel.UUID {
	if o.assignedAdmin == nil {
		return nil
	}
	id := *o.assignedAdmin
	return &id
}

// Total is the sum of every line's unit price times quantity.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, item := range o.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// AwaitsDispatch reports whether a courier shipment should be requested:
// a Delivery order that is Accepted, or Ready after a failed dispatch.
func (o *Order) AwaitsDispatch() bool {
	if o.delivery.Type != Delivery || o.HasTracking() {
		return false
	}
	return o.status == Accepted || o.status == Ready
}

// Accept moves the order to Accepted and records the acting admin.
func (o *Order) Accept(adminID kernel.UUID) error {
	return o.transition(adminID, Status.Accept)
}

// Decline moves the order to Declined and records the acting admin.
func (o *Order) Decline(adminID kernel.UUID) error {
	return o.transition(adminID, Status.Decline)
}

// MarkReady moves an Accepted order to Ready. A Delivery order already Ready
// without a tracking id accepts the event again so dispatch can be retried;
// the status is left unchanged in that case.
func (o *Order) MarkReady(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	if o.status == Ready && o.AwaitsDispatch() {
		o.assignedAdmin = &adminID
		return nil
	}
	return o.transition(adminID, Status.MarkReady)
}

// ShipOut records the courier tracking id and moves a Ready Delivery order
// to OutForDelivery.
func (o *Order) ShipOut(trackingID string) error {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return errs.NewValueIsRequiredError("trackingID")
	}
	if o.delivery.Type != Delivery {
		return fmt.Errorf("%w: %s orders are not shipped by courier", ErrInvalidTransition, o.delivery.Type)
	}
	if o.HasTracking() {
		return fmt.Errorf("%w: order already has tracking id %s", ErrInvalidTransition, o.trackingID)
	}

	next, err := o.status.ShipOut()
	if err != nil {
		return err
	}
	o.status = next
	o.trackingID = trackingID
	return nil
}

// MarkDelivered closes the order. Pickup orders may only be closed by the
// admin they are assigned to; the staff check for Delivery orders belongs to
// the caller.
func (o *Order) MarkDelivered(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}
	if o.delivery.Type == Pickup && !o.IsAssignedTo(actorID) {
		return fmt.Errorf("%w: pickup order %s can only be delivered by its assigned admin",
			ErrInvalidTransition, o.id)
	}

	next, err := o.status.MarkDelivered()
	if err != nil {
		return err
	}
	o.status = next
	return nil
}

// Reassign replaces the assigned admin in any status.
func (o *Order) Reassign(adminID kernel.UUID) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	o.assignedAdmin = &adminID
	return nil
}

// IsAssignedTo reports whether adminID last acted on the order.
func (o *Order) IsAssignedTo(adminID kernel.UUID) bool {
	return o.assignedAdmin != nil && o.assignedAdmin.IsEqual(adminID)
}

// AdvanceVersion is called by repositories after a successful conditional
// write so the in-memory aggregate matches the stored one.
func (o *Order) AdvanceVersion() {
	o.version++
}

func (o *Order) transition(adminID kernel.UUID, event func(Status) (Status, error)) error {
	if err := adminID.Validate(); err != nil {
		return err
	}
	next, err := event(o.status)
	if err != nil {
		return err
	}
	o.status = next
	o.assignedAdmin = &adminID
	return nil
}

func (o *Order) checkState() error {
	var errList []error
	if o.status != Pending && o.assignedAdmin == nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(
			"assignedAdmin",
			fmt.Errorf("order in %s status has no assigned admin", o.status),
		))
	}
	if o.trackingID != "" && o.delivery.Type != Delivery {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"trackingID",
			fmt.Errorf("%s orders cannot carry a tracking id", o.delivery.Type),
		))
	}
	if o.status == OutForDelivery && o.trackingID == "" {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause(
			"trackingID",
			errors.New("order out for delivery has no tracking id"),
		))
	}
	return errors.Join(errList...)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomer(customer Customer) error {
	if err := customer.Validate(); err != nil {
		return err
	}
	o.customer = customer
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		if item.quantity <= 0 || item.productID.Validate() != nil {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("item %d was not created via NewItem", i))
		}
	}
	o.items = slices.Clone(items)
	return nil
}

func (o *Order) setDelivery(delivery DeliveryDetails) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	o.delivery = delivery.normalized()
	return nil
}

func (o *Order) setCreatedAt(createdAt time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	o.createdAt = createdAt.UTC()
	return nil
}

func (o *Order) setVersion(version int64) error {
	if version < 0 {
		return errs.NewValueIsOutOfRangeError("version", version, 0, "max int64")
	}
	o.version = version
	return nil
}
