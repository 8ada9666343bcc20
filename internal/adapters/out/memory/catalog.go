package memory

import (
	"context"
	"sync"

	"fulfillment/internal/core/domain/model/catalog"
	"fulfillment/internal/core/domain/model/identity"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
)

// Catalog is an in-memory ProductCatalog.
type Catalog struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*catalog.Product
}

var _ ports.ProductCatalog = (*Catalog)(nil)

func NewCatalog(products ...*catalog.Product) *Catalog {
	c := &Catalog{products: map[uuid.UUID]*catalog.Product{}}
	for _, p := range products {
		c.Put(p)
	}
	return c
}

// Put adds or replaces a product.
func (c *Catalog) Put(p *catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.products[p.ID().Bytes()] = p
}

func (c *Catalog) Get(_ context.Context, id kernel.UUID) (*catalog.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.products[id.Bytes()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("product", id.String())
	}
	return p, nil
}

// Directory is an in-memory UserDirectory.
type Directory struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*identity.User
}

var _ ports.UserDirectory = (*Directory)(nil)

func NewDirectory(users ...*identity.User) *Directory {
	d := &Directory{users: map[uuid.UUID]*identity.User{}}
	for _, u := range users {
		d.Put(u)
	}
	return d
}

// Put adds or replaces a user.
func (d *Directory) Put(u *identity.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[u.ID().Bytes()] = u
}

func (d *Directory) Get(_ context.Context, id kernel.UUID) (*identity.User, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	u, ok := d.users[id.Bytes()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id.String())
	}
	return u, nil
}
