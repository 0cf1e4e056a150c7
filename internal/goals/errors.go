package goals

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGoalKind is returned for a kind tag outside the five known variants.
	ErrInvalidGoalKind = errors.New("invalid goal kind")
	// ErrMalformedRecord is returned for a persisted line that cannot be split into a goal.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrInvalidNumericField is returned when an integer field does not parse.
	ErrInvalidNumericField = errors.New("invalid numeric field")
	// ErrSourceUnavailable is returned when a goal source cannot be opened or read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrDestinationUnwritable is returned when a goal destination cannot be created or replaced.
	ErrDestinationUnwritable = errors.New("destination unwritable")
)

// RecordError reports a persisted record that failed to parse
type RecordError struct {
	Line    int
	Text    string
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	prefix := "record error"
	if e.Line > 0 {
		prefix = fmt.Sprintf("record error on line %d", e.Line)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
