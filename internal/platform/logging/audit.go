package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit describes a mutation of a stored card resource.
type Audit struct {
	Action       string // "save", "delete"
	UserID       string
	ResourceType string // "template", "profile"
	ResourceID   string
	Err          error
}

// LogAudit writes a structured audit entry. Failures are recorded with a
// category instead of the raw error text.
func LogAudit(ctx context.Context, a Audit, categorize func(error) string) {
	result := "success"
	fields := []zap.Field{
		zap.String("audit.action", a.Action),
		zap.String("audit.user_id", a.UserID),
		zap.String("audit.resource_type", a.ResourceType),
		zap.String("audit.resource_id", a.ResourceID),
	}
	if a.Err != nil {
		result = "failure"
		category := "internal_error"
		if categorize != nil {
			category = categorize(a.Err)
		}
		fields = append(fields, zap.String("audit.error", category))
	}
	fields = append(fields, zap.String("audit.result", result))
	LoggerFromContext(ctx).Info("audit event", fields...)
}
