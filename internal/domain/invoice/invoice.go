// Package invoice implements the order-to-invoice pipeline: eligibility
// filtering, line-item aggregation, totals calculation, submission to the
// fiscal service, and outcome classification.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FlatTaxRate is the single fiscal tax rate applied to every line item.
// Prices coming from the platform are tax-inclusive at this rate.
var FlatTaxRate = decimal.New(5, -2)

// LineItem is one aggregated fiscal line: all positions of an order that
// share a fiscal product identifier collapse into a single line.
type LineItem struct {
	ProductCode string
	Quantity    int
	UnitPrice   decimal.Decimal
	Name        string
}

// Totals holds the invoice-level aggregates, rounded to 2 decimal places.
// Gross is tax-inclusive, Net is tax-exclusive, Tax is the difference.
type Totals struct {
	Gross decimal.Decimal
	Net   decimal.Decimal
	Tax   decimal.Decimal
}

// Invoice is the fully derived invoice, ready to be submitted.
type Invoice struct {
	OrderID   int64
	OrderCode string
	Currency  string
	CreatedAt time.Time
	Lines     []LineItem
	Totals    Totals
}

// FiscalResult carries the identifiers returned by the fiscal service on a
// successful registration. Fields the service omitted hold placeholders.
type FiscalResult struct {
	InvoiceNumber      string
	InvoiceFirstNumber string
	BusinessPremise    string
	PaymentTerminal    string
	JIR                string
}

// RejectedError is returned by a Submitter when the fiscal service was
// reachable but declined the request. Body is the raw response body, kept
// verbatim for manual follow-up.
type RejectedError struct {
	Status int
	Body   string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("fiscal service rejected request: status %d: %s", e.Status, e.Body)
}

// Submitter registers a derived invoice with the external fiscal service.
// A nil error means the invoice was fiscalized. A *RejectedError means the
// service declined it; any other error is a transport-level failure.
type Submitter interface {
	Submit(ctx context.Context, inv *Invoice) (*FiscalResult, error)
}

// AuditEntry is one append-only audit record tied to an order.
type AuditEntry struct {
	OrderID   int64
	OrderCode string
	Kind      string
	Message   string
}

// AuditLog appends audit entries to the host's audit storage.
type AuditLog interface {
	Append(ctx context.Context, entry AuditEntry) error
}
