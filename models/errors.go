package models

import "fmt"

// ValidationError reports an invalid user-supplied value, such as a
// non-positive or implausible biometric field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ClassificationError wraps a failure of the image classification backend.
// It always propagates to the caller: a meal cannot be logged without a
// resolved label, and fabricating one would corrupt the ledger.
type ClassificationError struct {
	Backend string
	Err     error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed (%s): %v", e.Backend, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// PersistenceError wraps a durable-store write failure. It surfaces to the
// caller so a save action is either confirmed or explicitly fails.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
