package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/fira-bridge/internal/domain/invoice"
)

// --- Mock implementations ---

type mockSubmitter struct {
	result *invoice.FiscalResult
	err    error
	calls  int
}

func (m *mockSubmitter) Submit(_ context.Context, _ *invoice.Invoice) (*invoice.FiscalResult, error) {
	m.calls++
	return m.result, m.err
}

type mockAuditLog struct {
	entries []invoice.AuditEntry
}

func (m *mockAuditLog) Append(_ context.Context, e invoice.AuditEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

// --- Helpers ---

const paidEvent = `{
	"event": "order.paid",
	"order": {
		"id": 42,
		"code": "QX7PL",
		"total": "20.00",
		"currency": "EUR",
		"createdAt": "2026-03-14T09:26:53Z",
		"positions": [
			{"price": "10.00", "item": {"name": "Ticket", "metadata": {"FIRAID": "A"}}},
			{"price": "10.00", "item": {"name": "Ticket", "metadata": {"FIRAID": "A"}}}
		]
	}
}`

func newWebhook(sub *mockSubmitter, audit *mockAuditLog) *Webhook {
	return NewWebhook(invoice.NewService(sub, audit))
}

func post(t *testing.T, h *Webhook, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhooks/order-paid", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.OrderPaid(rec, req)
	return rec
}

func decodeAck(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var ack map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))
	return ack
}

// --- Tests ---

func TestOrderPaid_Success(t *testing.T) {
	sub := &mockSubmitter{result: &invoice.FiscalResult{InvoiceNumber: "X1", JIR: "j1"}}
	audit := &mockAuditLog{}

	rec := post(t, newWebhook(sub, audit), paidEvent)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", decodeAck(t, rec)["outcome"])
	assert.Equal(t, 1, sub.calls)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, "QX7PL", audit.entries[0].OrderCode)
}

func TestOrderPaid_ZeroTotalAcknowledged(t *testing.T) {
	sub := &mockSubmitter{}
	rec := post(t, newWebhook(sub, &mockAuditLog{}), strings.Replace(paidEvent, `"total": "20.00"`, `"total": "0"`, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "skipped", decodeAck(t, rec)["outcome"])
	assert.Zero(t, sub.calls)
}

func TestOrderPaid_SubmitterFailureStillOK(t *testing.T) {
	// A fiscal service outage is the pipeline's problem, not the host
	// platform's: the webhook must still acknowledge the delivery.
	sub := &mockSubmitter{err: context.DeadlineExceeded}
	rec := post(t, newWebhook(sub, &mockAuditLog{}), paidEvent)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "transport_failure", decodeAck(t, rec)["outcome"])
}

func TestOrderPaid_MalformedPayload(t *testing.T) {
	rec := post(t, newWebhook(&mockSubmitter{}, &mockAuditLog{}), `{"order":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderPaid_MissingOrderCode(t *testing.T) {
	rec := post(t, newWebhook(&mockSubmitter{}, &mockAuditLog{}), `{"event":"order.paid","order":{"id":1}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderPaid_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/webhooks/order-paid", nil)
	rec := httptest.NewRecorder()
	newWebhook(&mockSubmitter{}, &mockAuditLog{}).OrderPaid(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
