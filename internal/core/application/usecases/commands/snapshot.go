package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// snapshotItems resolves each line against the catalog and captures title
// and current price. With checkStock set, a line asking for more than the
// available stock fails with ErrInsufficientStock.
func snapshotItems(
	ctx context.Context,
	catalog ports.ProductCatalog,
	lines []OrderLine,
	checkStock bool,
) ([]order.Item, error) {
	items := make([]order.Item, 0, len(lines))
	for _, line := range lines {
		product, err := catalog.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}

		if checkStock && !product.HasStock(line.Quantity) {
			return nil, fmt.Errorf("%w for product %q: requested %d, available %d",
				ErrInsufficientStock, product.Title(), line.Quantity, product.Stock())
		}

		item, err := order.NewItem(product.ID(), product.Title(), product.Price(), line.Quantity)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
