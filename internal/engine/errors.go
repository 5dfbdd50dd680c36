package engine

import "errors"

var (
	// ErrInvalidScope rejects session-start parameters: unknown mode, a mode
	// that requires a subject/topic scope without one, or a non-positive
	// target count.
	ErrInvalidScope = errors.New("invalid exam scope")

	// ErrInvalidSubmission rejects an answer that is out of order, a
	// duplicate, or references an item other than the current one. The
	// ledger is never touched on this path.
	ErrInvalidSubmission = errors.New("invalid answer submission")

	// ErrNoEligibleItem signals selector exhaustion. During submission it is
	// converted into normal early completion and never reaches the caller.
	ErrNoEligibleItem = errors.New("no eligible item remains")

	// ErrNotOwner rejects a submission against a session that belongs to
	// a different student.
	ErrNotOwner = errors.New("session owned by another student")

	// ErrNotFound covers unknown sessions, items, and students.
	ErrNotFound = errors.New("not found")
)
