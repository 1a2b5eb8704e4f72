package port

import "context"

// WorkflowTrigger abstracts the outbound webhook that hands a document to the
// external validation workflow. Invoke posts the payload as JSON, is bounded
// by the client's timeout, and returns an error on any non-2xx response.
// Delivery is fire-and-forget from the caller's perspective: no retries are
// performed here.
type WorkflowTrigger interface {
	Invoke(ctx context.Context, webhookURL string, payload map[string]interface{}) (map[string]interface{}, error)
}
