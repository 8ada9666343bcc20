// Package memory keeps orders, products and users in process memory. It
// backs the unit tests and the STORAGE_DRIVER=memory mode, and obeys the same
// repository contracts as the postgres adapters.
package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// orderRecord is the stored form of an order. Every field is a value or an
// immutable domain value, so records can be copied freely.
type orderRecord struct {
	id            kernel.UUID
	customer      order.Customer
	items         []order.Item
	delivery      order.DeliveryDetails
	status        order.Status
	assignedAdmin *kernel.UUID
	trackingID    string
	createdAt     time.Time
	version       int64
	seq           uint64
}

func recordFrom(o *order.Order) orderRecord {
	return orderRecord{
		id:            o.ID(),
		customer:      o.Customer(),
		items:         o.Items(),
		delivery:      o.Delivery(),
		status:        o.Status(),
		assignedAdmin: o.AssignedAdmin(),
		trackingID:    o.TrackingID(),
		createdAt:     o.CreatedAt(),
		version:       o.Version(),
	}
}

func (r orderRecord) toDomain() (*order.Order, error) {
	return order.RestoreOrder(r.id, r.customer, r.items, r.delivery, r.status,
		r.assignedAdmin, r.trackingID, r.createdAt, r.version)
}

// OrderStore is the shared order table. All access is serialised by one
// mutex, so conflicting writes to a record never interleave.
type OrderStore struct {
	mu      sync.Mutex
	orders  map[uuid.UUID]orderRecord
	nextSeq uint64
}

func NewOrderStore() *OrderStore {
	return &OrderStore{orders: map[uuid.UUID]orderRecord{}}
}

// Len returns the number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func (s *OrderStore) get(id kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	rec, ok := s.orders[id.Bytes()]
	s.mu.Unlock()
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return rec.toDomain()
}

func (s *OrderStore) find(match func(orderRecord) bool) ([]*order.Order, error) {
	s.mu.Lock()
	recs := make([]orderRecord, 0, len(s.orders))
	for _, rec := range s.orders {
		if match(rec) {
			recs = append(recs, rec)
		}
	}
	s.mu.Unlock()

	slices.SortFunc(recs, func(a, b orderRecord) int {
		if c := b.createdAt.Compare(a.createdAt); c != 0 {
			return c
		}
		return cmp.Compare(b.seq, a.seq)
	})

	out := make([]*order.Order, 0, len(recs))
	for _, rec := range recs {
		o, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

// apply runs ops atomically: every precondition is checked under the lock
// before anything is written.
func (s *OrderStore) apply(ops []storeOp) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, op := range ops {
		if err := op.check(s.orders); err != nil {
			return err
		}
	}
	for _, op := range ops {
		s.nextSeq++
		op.write(s.orders, s.nextSeq)
	}
	return nil
}

type storeOp interface {
	check(orders map[uuid.UUID]orderRecord) error
	write(orders map[uuid.UUID]orderRecord, seq uint64)
}

type addOp struct{ rec orderRecord }

func (op addOp) check(orders map[uuid.UUID]orderRecord) error {
	if _, exists := orders[op.rec.id.Bytes()]; exists {
		return errs.NewValueIsInvalidError("order " + op.rec.id.String() + " already exists")
	}
	return nil
}

func (op addOp) write(orders map[uuid.UUID]orderRecord, seq uint64) {
	rec := op.rec
	rec.seq = seq
	orders[rec.id.Bytes()] = rec
}

type casOp struct {
	rec             orderRecord
	expectedStatus  order.Status
	expectedVersion int64
}

func (op casOp) check(orders map[uuid.UUID]orderRecord) error {
	stored, ok := orders[op.rec.id.Bytes()]
	if !ok {
		return errs.NewObjectNotFoundError("order", op.rec.id.String())
	}
	if stored.status != op.expectedStatus || stored.version != op.expectedVersion {
		return ports.ErrConcurrentModification
	}
	return nil
}

func (op casOp) write(orders map[uuid.UUID]orderRecord, _ uint64) {
	stored := orders[op.rec.id.Bytes()]
	stored.status = op.rec.status
	stored.assignedAdmin = op.rec.assignedAdmin
	stored.trackingID = op.rec.trackingID
	stored.version = op.expectedVersion + 1
	orders[op.rec.id.Bytes()] = stored
}

type deleteOp struct{ id kernel.UUID }

func (op deleteOp) check(orders map[uuid.UUID]orderRecord) error {
	if _, ok := orders[op.id.Bytes()]; !ok {
		return errs.NewObjectNotFoundError("order", op.id.String())
	}
	return nil
}

func (op deleteOp) write(orders map[uuid.UUID]orderRecord, _ uint64) {
	delete(orders, op.id.Bytes())
}

// OrderRepository reads the store directly and sends writes either straight
// to the store or, inside a unit of work, to its pending list.
type OrderRepository struct {
	store *OrderStore
	uow   *UnitOfWork
}

var _ ports.OrderRepository = (*OrderRepository)(nil)

// NewOrderRepository returns a repository that writes through immediately.
func NewOrderRepository(store *OrderStore) *OrderRepository {
	return &OrderRepository{store: store}
}

func (r *OrderRepository) Add(_ context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	return r.submit(addOp{rec: recordFrom(aggregate)})
}

func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.store.get(id)
}

func (r *OrderRepository) FindByCustomer(_ context.Context, customerID kernel.UUID) ([]*order.Order, error) {
	return r.store.find(func(rec orderRecord) bool {
		return rec.customer.IsCustomer(customerID)
	})
}

func (r *OrderRepository) FindByStatus(_ context.Context, status *order.Status) ([]*order.Order, error) {
	return r.store.find(func(rec orderRecord) bool {
		return status == nil || rec.status == *status
	})
}

func (r *OrderRepository) FindByAssignedAdmin(_ context.Context, adminID kernel.UUID) ([]*order.Order, error) {
	return r.store.find(func(rec orderRecord) bool {
		return rec.assignedAdmin != nil && rec.assignedAdmin.IsEqual(adminID)
	})
}

func (r *OrderRepository) CompareAndSetStatus(_ context.Context, aggregate *order.Order, expected order.Status) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	op := casOp{rec: recordFrom(aggregate), expectedStatus: expected, expectedVersion: aggregate.Version()}
	if err := r.submit(op); err != nil {
		return err
	}
	aggregate.AdvanceVersion()
	return nil
}

func (r *OrderRepository) Delete(_ context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	return r.submit(deleteOp{id: id})
}

// submit checks op against the current store state right away so callers
// learn about conflicts early; inside a unit of work the write is deferred
// to Commit, which checks again.
func (r *OrderRepository) submit(op storeOp) error {
	if r.uow == nil || !r.uow.active {
		return r.store.apply([]storeOp{op})
	}

	r.store.mu.Lock()
	err := op.check(r.store.orders)
	r.store.mu.Unlock()
	if err != nil {
		return err
	}
	r.uow.pending = append(r.uow.pending, op)
	return nil
}
