package model

// Status is the lifecycle stage of a Document.
// Submitted is the only initial value; Approved and Rejected are terminal.
type Status string

const (
	StatusSubmitted Status = "submitted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusSubmitted, StatusApproved, StatusRejected}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no transition can leave s.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// CanTransition reports whether moving from s to next is allowed.
func (s Status) CanTransition(next Status) bool {
	switch s {
	case StatusSubmitted:
		return next == StatusApproved || next == StatusRejected
	default:
		return false
	}
}
