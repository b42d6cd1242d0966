package assessment

import (
	"errors"
	"fmt"
)

var (
	// ErrNoGold is returned when no gold diagnosis can be resolved for a
	// submission: no scenario or case matched and retrieval found nothing.
	ErrNoGold = errors.New("no gold diagnosis")

	// ErrUnknownDiagnosis is returned when a resolved gold diagnosis id is not
	// part of the taxonomy.
	ErrUnknownDiagnosis = errors.New("unknown diagnosis")
)

// ValidationError describes one problem with learner input. Submissions
// report every problem at once, joined with errors.Join.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors unpacks the individual problems from an error returned by
// Submission.Validate. It returns nil for errors that carry none.
func ValidationErrors(err error) []*ValidationError {
	if err == nil {
		return nil
	}
	var out []*ValidationError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, ValidationErrors(e)...)
		}
		return out
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		out = append(out, ve)
	}
	return out
}
