package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger mencatat kejadian operasional (shutdown, hasil batch payslip).
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
