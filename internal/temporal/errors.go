package temporal

// InvariantViolation reports an event whose fields cannot describe a real
// schedule, e.g. an end at or before its start.
type InvariantViolation struct {
	Reason string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Reason
}
