package invoice

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/fira-bridge/internal/domain/order"
)

// Service runs the order-to-invoice pipeline: filter, aggregate, calculate,
// submit, classify, record.
type Service struct {
	submitter Submitter
	audit     AuditLog
}

// NewService creates a Service with the given fiscal submitter and audit log.
func NewService(submitter Submitter, audit AuditLog) *Service {
	return &Service{
		submitter: submitter,
		audit:     audit,
	}
}

// Process handles one paid order and returns the classified outcome. It
// never returns an error: rejections and transport failures are terminal
// outcomes, not faults, and must not bubble into the host's event handling.
// Every invocation writes exactly one audit entry and one log line.
func (s *Service) Process(ctx context.Context, o *order.Order) Outcome {
	if o.Total.IsZero() {
		return s.finish(ctx, o, Outcome{Kind: OutcomeSkipped, Reason: SkipZeroTotal})
	}

	lines := AggregateLines(o.Positions)
	if len(lines) == 0 {
		return s.finish(ctx, o, Outcome{Kind: OutcomeSkipped, Reason: SkipNoFiscalItems})
	}

	inv := &Invoice{
		OrderID:   o.ID,
		OrderCode: o.Code,
		Currency:  o.Currency,
		CreatedAt: o.CreatedAt,
		Lines:     lines,
		Totals:    CalculateTotals(lines),
	}

	result, err := s.submitter.Submit(ctx, inv)
	return s.finish(ctx, o, classify(result, err))
}

// classify maps the submitter result to a terminal outcome.
func classify(result *FiscalResult, err error) Outcome {
	if err == nil {
		return Outcome{Kind: OutcomeSuccess, Fiscal: result}
	}

	var rejected *RejectedError
	if errors.As(err, &rejected) {
		return Outcome{Kind: OutcomeRejected, Status: rejected.Status, Body: rejected.Body}
	}

	return Outcome{Kind: OutcomeTransportFailure, Err: err.Error()}
}

// finish writes the audit entry and diagnostic log line for an outcome.
// Both effects are best-effort: an audit write failure is logged and
// swallowed so that recording can never fail the invocation itself.
func (s *Service) finish(ctx context.Context, o *order.Order, out Outcome) Outcome {
	lg := zctx.From(ctx).With(
		zap.Int64("order_id", o.ID),
		zap.String("order_code", o.Code),
		zap.String("outcome", string(out.Kind)),
	)

	switch out.Kind {
	case OutcomeSkipped:
		lg.Info("Invoice skipped", zap.String("reason", out.Reason))
	case OutcomeSuccess:
		lg.Info("Invoice fiscalized",
			zap.String("invoice_number", out.Fiscal.InvoiceNumber),
			zap.String("jir", out.Fiscal.JIR),
		)
	case OutcomeRejected:
		lg.Warn("Invoice rejected",
			zap.Int("status", out.Status),
			zap.String("body", out.Body),
		)
	case OutcomeTransportFailure:
		lg.Error("Invoice submission failed", zap.String("error", out.Err))
	}

	entry := AuditEntry{
		OrderID:   o.ID,
		OrderCode: o.Code,
		Kind:      string(out.Kind),
		Message:   out.Summary(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		lg.Error("Audit append failed", zap.Error(err))
	}

	return out
}
