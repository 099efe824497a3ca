// Package handler exposes the inbound HTTP surface of the bridge: the
// order-paid webhook called by the host commerce platform.
package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"

	"github.com/xenking/fira-bridge/internal/domain/invoice"
	"github.com/xenking/fira-bridge/internal/domain/order"
)

// maxEventBytes bounds the accepted webhook payload size.
const maxEventBytes = 1 << 20

// orderPaidEvent is the wire shape of the host platform's order-paid webhook.
type orderPaidEvent struct {
	Event string       `json:"event"`
	Order orderPayload `json:"order"`
}

type orderPayload struct {
	ID        int64             `json:"id"`
	Code      string            `json:"code"`
	Total     decimal.Decimal   `json:"total"`
	Currency  string            `json:"currency"`
	CreatedAt time.Time         `json:"createdAt"`
	Positions []positionPayload `json:"positions"`
}

type positionPayload struct {
	Price decimal.Decimal `json:"price"`
	Item  itemPayload     `json:"item"`
}

type itemPayload struct {
	Name         string            `json:"name"`
	InternalName string            `json:"internalName"`
	Metadata     map[string]string `json:"metadata"`
}

// Webhook handles order-paid events by running the invoice pipeline.
type Webhook struct {
	invoices *invoice.Service
}

// NewWebhook creates the webhook handler backed by the invoice service.
func NewWebhook(invoices *invoice.Service) *Webhook {
	return &Webhook{invoices: invoices}
}

// OrderPaid is the handler for POST /webhooks/order-paid. Once the payload
// decodes, it always answers 200: the pipeline classifies its own failures
// and the host platform must never see an invoicing problem as a webhook
// delivery failure.
func (h *Webhook) OrderPaid(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxEventBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body")
		return
	}

	var ev orderPaidEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		writeError(w, http.StatusBadRequest, "malformed event payload")
		return
	}
	if ev.Order.Code == "" {
		writeError(w, http.StatusBadRequest, "order code is required")
		return
	}

	out := h.invoices.Process(r.Context(), toDomain(ev.Order))
	writeOutcome(w, out)
}

// toDomain converts the webhook payload to the read-only domain order.
func toDomain(p orderPayload) *order.Order {
	positions := make([]order.Position, len(p.Positions))
	for i, pos := range p.Positions {
		positions[i] = order.Position{
			Price: pos.Price,
			Item: order.Item{
				Name:         pos.Item.Name,
				InternalName: pos.Item.InternalName,
				Metadata:     pos.Item.Metadata,
			},
		}
	}
	return &order.Order{
		ID:        p.ID,
		Code:      p.Code,
		Total:     p.Total,
		Currency:  p.Currency,
		CreatedAt: p.CreatedAt,
		Positions: positions,
	}
}

// writeOutcome acknowledges the event with the outcome classification.
func writeOutcome(w http.ResponseWriter, out invoice.Outcome) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("outcome", func(e *jx.Encoder) { e.Str(string(out.Kind)) })
		e.Field("summary", func(e *jx.Encoder) { e.Str(out.Summary()) })
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(e.Bytes())
}

func writeError(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Int(status) })
		e.Field("message", func(e *jx.Encoder) { e.Str(msg) })
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}
