package domain

import "time"

// AuditAction names a privileged change to the users collection.
type AuditAction string

const (
	AuditUserRegistered AuditAction = "user.registered"
	AuditUserPromoted   AuditAction = "user.promoted"
	AuditUserDeleted    AuditAction = "user.deleted"
)

// AuditEvent records who changed which account and when.
// Actor is empty when the route that triggered it carries no auth gate.
type AuditEvent struct {
	Action AuditAction
	Target string
	Actor  string
	At     time.Time
}
