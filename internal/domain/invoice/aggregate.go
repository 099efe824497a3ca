package invoice

import (
	"github.com/xenking/fira-bridge/internal/domain/order"
)

// AggregateLines groups an order's positions into fiscal line items, one per
// distinct fiscal product identifier. Positions without a fiscal product
// identifier are excluded entirely. Quantity is the count of positions per
// identifier; unit price and name are taken from the first position seen for
// that identifier, so re-grouping the same positions in the same input order
// is deterministic. Lines are returned in first-seen order.
//
// Positions that share an identifier are assumed to share a price. When they
// do not, the first price silently wins. That mirrors how the fiscal product
// mapping is meant to be used (one identifier per price point) and is relied
// upon downstream; do not average.
func AggregateLines(positions []order.Position) []LineItem {
	index := make(map[string]int)
	lines := make([]LineItem, 0, len(positions))

	for _, pos := range positions {
		code, ok := pos.FiscalProductID()
		if !ok {
			continue
		}
		if i, seen := index[code]; seen {
			lines[i].Quantity++
			continue
		}
		index[code] = len(lines)
		lines = append(lines, LineItem{
			ProductCode: code,
			Quantity:    1,
			UnitPrice:   pos.Price,
			Name:        pos.Item.DisplayName(),
		})
	}

	return lines
}
