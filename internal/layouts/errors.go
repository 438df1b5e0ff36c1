package layouts

import (
	"errors"
	"fmt"
)

// ErrLayoutNotFound is returned when a sync or read targets an unknown layout
var ErrLayoutNotFound = errors.New("venue layout not found")

// VersionConflictError is returned when a sync carries a stale version
// token. It reports who holds the current version so clients can show a
// meaningful conflict prompt.
type VersionConflictError struct {
	CurrentVersion   int
	RequestedVersion int
	LastEditedBy     string
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("layout version conflict: current version %d, requested %d (last edited by %s)",
		e.CurrentVersion, e.RequestedVersion, e.LastEditedBy)
}
