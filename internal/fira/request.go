package fira

import (
	"encoding/json"

	"github.com/xenking/fira-bridge/internal/domain/invoice"
)

// createdAtLayout is the timestamp format FIRA expects: combined date and
// time, second precision, UTC with a literal Z.
const createdAtLayout = "2006-01-02T15:04:05Z"

// billingCountry is hard-coded: every order is assumed to originate from
// Croatia. Revisit if the webshop ever sells into another jurisdiction.
const billingCountry = "HR"

// Fixed payload discriminators for the custom-webshop integration.
const (
	webshopType = "CUSTOM"
	paymentType = "KARTICA"
)

// invoiceRequest is the wire shape of a FIRA webshop order registration.
// Monetary fields are JSON numbers; decimals are rendered via json.Number to
// avoid float round-tripping.
type invoiceRequest struct {
	WebshopOrderID     int64          `json:"webshopOrderId"`
	WebshopType        string         `json:"webshopType"`
	WebshopOrderNumber string         `json:"webshopOrderNumber"`
	InvoiceType        string         `json:"invoiceType"`
	CreatedAt          string         `json:"createdAt"`
	Currency           string         `json:"currency"`
	PaymentType        string         `json:"paymentType"`
	TaxesIncluded      bool           `json:"taxesIncluded"`
	Brutto             json.Number    `json:"brutto"`
	Netto              json.Number    `json:"netto"`
	TaxValue           json.Number    `json:"taxValue"`
	BillingAddress     billingAddress `json:"billingAddress"`
	LineItems          []lineItem     `json:"lineItems"`
}

type billingAddress struct {
	Country string `json:"country"`
}

// lineItem repeats the fiscal identifier as both productCode and lineItemId,
// matching what the FIRA API expects for custom webshops.
type lineItem struct {
	ProductCode string      `json:"productCode"`
	LineItemID  string      `json:"lineItemId"`
	Quantity    int         `json:"quantity"`
	Price       json.Number `json:"price"`
	Name        string      `json:"name"`
	TaxRate     json.Number `json:"taxRate"`
}

// buildRequest maps a derived invoice onto the FIRA wire shape. Pure field
// mapping; all business decisions happened upstream.
func buildRequest(inv *invoice.Invoice, invoiceType string) invoiceRequest {
	taxRate := json.Number(invoice.FlatTaxRate.String())

	items := make([]lineItem, len(inv.Lines))
	for i, li := range inv.Lines {
		items[i] = lineItem{
			ProductCode: li.ProductCode,
			LineItemID:  li.ProductCode,
			Quantity:    li.Quantity,
			Price:       json.Number(li.UnitPrice.String()),
			Name:        li.Name,
			TaxRate:     taxRate,
		}
	}

	return invoiceRequest{
		WebshopOrderID:     inv.OrderID,
		WebshopType:        webshopType,
		WebshopOrderNumber: inv.OrderCode,
		InvoiceType:        invoiceType,
		CreatedAt:          inv.CreatedAt.UTC().Format(createdAtLayout),
		Currency:           inv.Currency,
		PaymentType:        paymentType,
		TaxesIncluded:      true,
		Brutto:             json.Number(inv.Totals.Gross.StringFixed(2)),
		Netto:              json.Number(inv.Totals.Net.StringFixed(2)),
		TaxValue:           json.Number(inv.Totals.Tax.StringFixed(2)),
		BillingAddress:     billingAddress{Country: billingCountry},
		LineItems:          items,
	}
}
