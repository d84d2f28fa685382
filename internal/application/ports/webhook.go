package ports

import "context"

// AuditEvent describes an authentication or authorization outcome worth
// shipping to an external sink.
type AuditEvent struct {
	Event   string `json:"event"`
	UserID  string `json:"user_id,omitempty"`
	Method  string `json:"method,omitempty"`
	IP      string `json:"ip,omitempty"`
	Success bool   `json:"success"`
	Err     string `json:"error,omitempty"`
}

// WebhookEmitter delivers audit events to a configured endpoint. Delivery is
// best effort; emit failures must never fail the request that produced them.
type WebhookEmitter interface {
	Emit(ctx context.Context, event AuditEvent) error
}
