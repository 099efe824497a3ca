// Package fira is the HTTP client for the FIRA fiscal invoicing API.
package fira

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/fira-bridge/internal/domain/invoice"
)

// apiKeyHeader authenticates requests against the FIRA API.
const apiKeyHeader = "FIRA-Api-Key"

// maxResponseBytes bounds how much of a response body is read. Rejection
// bodies are carried verbatim into the audit log, so keep them finite.
const maxResponseBytes = 1 << 20

// Placeholders used when the success response omits optional fields.
const (
	placeholderInvoiceNumber = "Unknown"
	placeholderJIR           = "N/A"
)

var _ invoice.Submitter = (*Client)(nil)

// Config holds the FIRA API connection settings.
type Config struct {
	// URL is the webshop order registration endpoint.
	URL string
	// APIKey is the merchant's FIRA API key. Required.
	APIKey string
	// InvoiceType selects the fiscal document type, e.g. "PONUDA".
	InvoiceType string
	// Timeout bounds each submission attempt. Zero means no timeout.
	Timeout time.Duration
}

// Client submits invoices to FIRA. It implements invoice.Submitter.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a Client from the given configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// Submit registers the invoice with FIRA. On HTTP 200 it returns the parsed
// fiscal identifiers, substituting placeholders for absent optional fields.
// Any other status yields *invoice.RejectedError with the raw body; request
// construction, network, and response parsing faults are returned as plain
// errors and classified as transport failures by the caller.
func (c *Client) Submit(ctx context.Context, inv *invoice.Invoice) (*invoice.FiscalResult, error) {
	body, err := json.Marshal(buildRequest(inv, c.cfg.InvoiceType))
	if err != nil {
		return nil, errors.Wrap(err, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apiKeyHeader, c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &invoice.RejectedError{
			Status: resp.StatusCode,
			Body:   string(respBody),
		}
	}

	result, err := parseResult(respBody)
	if err != nil {
		return nil, errors.Wrap(err, "parse response")
	}
	return result, nil
}

// parseResult decodes the success response field by field, tolerating
// unknown keys and absent fields. FIRA does not guarantee a fully populated
// body, so absence is mapped to placeholders rather than treated as an
// error.
func parseResult(body []byte) (*invoice.FiscalResult, error) {
	result := &invoice.FiscalResult{
		InvoiceNumber: placeholderInvoiceNumber,
		JIR:           placeholderJIR,
	}

	d := jx.DecodeBytes(body)
	if err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "invoiceNumber":
			s, err := d.Str()
			if err != nil {
				return err
			}
			result.InvoiceNumber = s
		case "invoiceFirstNumber":
			s, err := d.Str()
			if err != nil {
				return err
			}
			result.InvoiceFirstNumber = s
		case "businessPremise":
			s, err := d.Str()
			if err != nil {
				return err
			}
			result.BusinessPremise = s
		case "paymentTerminal":
			s, err := d.Str()
			if err != nil {
				return err
			}
			result.PaymentTerminal = s
		case "jir":
			s, err := d.Str()
			if err != nil {
				return err
			}
			result.JIR = s
		default:
			return d.Skip()
		}
		return nil
	}); err != nil {
		return nil, err
	}

	return result, nil
}
