package domain

// DenyReason classifies why an authorization request was refused. The guard
// reports the most specific reason it is allowed to reveal: a capability
// denial is reported before a scope denial so a caller without the
// capability learns nothing about store assignments.
type DenyReason string

const (
	DenyUnauthenticated DenyReason = "unauthenticated"
	DenyForbidden       DenyReason = "forbidden"
	DenyOutOfScope      DenyReason = "out_of_scope"
)

// Decision is the outcome of a single authorization check.
type Decision struct {
	Allowed       bool
	Reason        DenyReason
	UserID        string
	IsSystemAdmin bool
}

// Err maps a denial to its sentinel error; nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	switch d.Reason {
	case DenyForbidden:
		return ErrForbidden
	case DenyOutOfScope:
		return ErrOutOfScope
	default:
		return ErrSessionInvalid
	}
}
