package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// Item is an order line with the product title and unit price captured at
// placement.
type Item struct {
	productID kernel.UUID
	title     string
	unitPrice kernel.Money
	quantity  int
}

// NewItem validates an order line. Quantity must be positive.
func NewItem(productID kernel.UUID, title string, unitPrice kernel.Money, quantity int) (Item, error) {
	title = strings.TrimSpace(title)

	var errList []error
	if err := productID.Validate(); err != nil {
		errList = append(errList, err)
	}
	if title == "" {
		errList = append(errList, errs.NewValueIsRequiredError("title"))
	}
	if quantity <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"quantity",
			fmt.Errorf("%d is not greater than 0", quantity),
		))
	}
	if err := errors.Join(errList...); err != nil {
		return Item{}, err
	}

	return Item{productID: productID, title: title, unitPrice: unitPrice, quantity: quantity}, nil
}

func (i Item) ProductID() kernel.UUID  { return i.productID }
func (i Item) Title() string           { return i.title }
func (i Item) UnitPrice() kernel.Money { return i.unitPrice }
func (i Item) Quantity() int           { return i.quantity }

// Subtotal is unit price times quantity.
func (i Item) Subtotal() kernel.Money {
	return i.unitPrice.Times(i.quantity)
}
