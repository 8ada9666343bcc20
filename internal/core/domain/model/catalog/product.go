// Package catalog carries the point-in-time product view the order core needs
// at placement: title, unit price and available stock.
package catalog

import (
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Product is a read-only snapshot of a catalog entry.
type Product struct {
	id    kernel.UUID
	title string
	price kernel.Money
	stock int
}

// NewProduct validates a catalog snapshot.
func NewProduct(id kernel.UUID, title string, price kernel.Money, stock int) (*Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if stock < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", stock))
	}
	return &Product{id: id, title: title, price: price, stock: stock}, nil
}

func (p *Product) ID() kernel.UUID     { return p.id }
func (p *Product) Title() string       { return p.title }
func (p *Product) Price() kernel.Money { return p.price }
func (p *Product) Stock() int          { return p.stock }

// HasStock reports whether quantity units are currently available.
func (p *Product) HasStock(quantity int) bool {
	return quantity <= p.stock
}
