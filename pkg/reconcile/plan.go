package reconcile

import "fmt"

// Actions recorded on planned operations.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// PlannedOperation is one planned remote mutation. The ordered sequence of
// these across a run is the system's externally meaningful output; the
// pipeline itself never applies them. RequestBody stays a structured value so
// a downstream replayer can inspect or amend it before applying.
type PlannedOperation struct {
	HTTPMethod  string         `json:"http_method"`
	URL         string         `json:"url"`
	RequestBody map[string]any `json:"request_body"`
	Name        string         `json:"name"`
	Action      string         `json:"action"`

	// Reasons names the fields that motivated an update. Diagnostic only;
	// it is not part of the replayable log format.
	Reasons []string `json:"-"`
}

// Counters aggregates what a reconciliation run decided.
type Counters struct {
	Updated int
	Created int
	Skipped int
}

// Plan is the ordered operation list plus counters for one resource run.
type Plan struct {
	Operations []PlannedOperation
	Counters   Counters
}

// HasOperations reports whether the plan contains any work.
func (p *Plan) HasOperations() bool {
	return len(p.Operations) > 0
}

// Summary returns a human-readable one-liner for run diagnostics.
func (p *Plan) Summary() string {
	return fmt.Sprintf("%d updates, %d creates, %d skipped (%d operations)",
		p.Counters.Updated, p.Counters.Created, p.Counters.Skipped, len(p.Operations))
}

func (p *Plan) append(op PlannedOperation) {
	p.Operations = append(p.Operations, op)
}
