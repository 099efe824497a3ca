// Package order holds the read-only view of a paid order as delivered by the
// host commerce platform. Nothing in this package is persisted or mutated;
// the webhook payload is decoded into these types and handed to the invoice
// pipeline.
package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// MetaFiscalProductID is the catalog item metadata key carrying the fiscal
// product identifier understood by the FIRA service.
const MetaFiscalProductID = "FIRAID"

// NonFiscalSentinel marks a catalog item as not fiscally reportable.
// An absent or empty metadata value means the same thing.
const NonFiscalSentinel = "-1"

// Order is a snapshot of a paid order.
type Order struct {
	ID        int64
	Code      string
	Total     decimal.Decimal
	Currency  string
	CreatedAt time.Time
	Positions []Position
}

// Position is a single purchased unit. Price is tax-inclusive.
type Position struct {
	Price decimal.Decimal
	Item  Item
}

// Item is the catalog item a position was sold from.
type Item struct {
	Name         string
	InternalName string
	Metadata     map[string]string
}

// FiscalProductID returns the fiscal product identifier of the position's
// item. ok is false when the item is not fiscally reportable: the metadata
// key is absent, empty, or set to the sentinel value.
func (p Position) FiscalProductID() (id string, ok bool) {
	id = p.Item.Metadata[MetaFiscalProductID]
	if id == "" || id == NonFiscalSentinel {
		return "", false
	}
	return id, true
}

// DisplayName returns the item's internal name when set, otherwise its
// customer-facing name.
func (i Item) DisplayName() string {
	if i.InternalName != "" {
		return i.InternalName
	}
	return i.Name
}
