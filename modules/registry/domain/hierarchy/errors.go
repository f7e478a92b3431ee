package hierarchy

// ErrorKind classifies a hierarchy validation failure.
type ErrorKind string

const (
	ErrorKindInvalidIdentifier   ErrorKind = "invalid_identifier"
	ErrorKindMissingName         ErrorKind = "missing_name"
	ErrorKindDuplicateIdentifier ErrorKind = "duplicate_identifier"
	ErrorKindUnknownParent       ErrorKind = "unknown_parent"
	ErrorKindCycleDetected       ErrorKind = "cycle_detected"
	ErrorKindHasChildren         ErrorKind = "has_children"
)

// Error reports which check failed and the field and identifier it failed on.
// Callers inspect Kind to decide how to surface the failure.
type Error struct {
	Kind  ErrorKind
	Field string
	ABN   string
}

func (e *Error) Error() string {
	msg := "hierarchy: " + string(e.Kind)
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.ABN != "" {
		msg += "=" + e.ABN
	}
	return msg
}
