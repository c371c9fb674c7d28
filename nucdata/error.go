package nucdata

import "fmt"

// BuildError reports why BuildStore refused to build a Store. It is the
// only error nucdata returns; everything downstream of a built Store
// reports lookup misses as empty results, never as errors (spec §7).
type BuildError struct {
	Reason   string
	InnerErr error
}

func (e *BuildError) Error() string {
	if e.InnerErr != nil {
		return fmt.Sprintf("nucdata: %s: %v", e.Reason, e.InnerErr)
	}
	return fmt.Sprintf("nucdata: %s", e.Reason)
}

func (e *BuildError) Unwrap() error {
	return e.InnerErr
}
