package invoice

import "fmt"

// OutcomeKind classifies how an invocation of the pipeline ended.
type OutcomeKind string

const (
	// OutcomeSkipped means the order did not warrant an invoice; no request
	// was made.
	OutcomeSkipped OutcomeKind = "skipped"
	// OutcomeSuccess means the fiscal service registered the invoice.
	OutcomeSuccess OutcomeKind = "success"
	// OutcomeRejected means the fiscal service was reachable but declined
	// the request.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeTransportFailure means the request never produced a usable
	// response.
	OutcomeTransportFailure OutcomeKind = "transport_failure"
)

// Skip reasons for OutcomeSkipped.
const (
	SkipZeroTotal     = "order total is 0"
	SkipNoFiscalItems = "no fiscally reportable items"
)

// Outcome is the terminal record of one pipeline invocation. Exactly one of
// the kind-specific fields is populated. Outcomes are created once, written
// to the audit log, and never mutated.
type Outcome struct {
	Kind OutcomeKind

	// Reason is set for OutcomeSkipped.
	Reason string
	// Fiscal is set for OutcomeSuccess.
	Fiscal *FiscalResult
	// Status and Body are set for OutcomeRejected; Body is verbatim.
	Status int
	Body   string
	// Err is set for OutcomeTransportFailure.
	Err string
}

// Summary renders the single-line classification string written to the
// audit log.
func (o Outcome) Summary() string {
	switch o.Kind {
	case OutcomeSkipped:
		return fmt.Sprintf("FIRA invoice not created: %s", o.Reason)
	case OutcomeSuccess:
		return fmt.Sprintf("FIRA invoice created: racun %s-%s-%s, JIR %s",
			o.Fiscal.InvoiceFirstNumber, o.Fiscal.BusinessPremise, o.Fiscal.PaymentTerminal, o.Fiscal.JIR)
	case OutcomeRejected:
		return fmt.Sprintf("FIRA invoice rejected: status %d: %s", o.Status, o.Body)
	case OutcomeTransportFailure:
		return fmt.Sprintf("FIRA invoice submission failed: %s", o.Err)
	}
	return "unknown outcome"
}
