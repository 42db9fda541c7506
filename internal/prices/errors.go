package prices

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSaveInFlight is returned when Save is called while a save is running.
	ErrSaveInFlight = errors.New("a save is already in progress")
	// ErrSessionClosed is returned when Save is called after a successful save.
	ErrSessionClosed = errors.New("editing session already saved")
	// ErrReloadRequired is returned when a price created by a partially
	// failed save is changed or removed before the station is loaded again.
	ErrReloadRequired = errors.New("price was created without a known id, reload the station to change it")
)

// PendingEditError is returned when entries are still open for editing.
type PendingEditError struct {
	IDs []ID
}

func (e *PendingEditError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = id.String()
	}
	return fmt.Sprintf("finish editing all fields before saving (open: %s)", strings.Join(ids, ", "))
}

// MalformedPriceError is returned when a price value is not a number.
type MalformedPriceError struct {
	ID    ID
	Label string
	Value string
	Err   error
}

func (e *MalformedPriceError) Error() string {
	return fmt.Sprintf("malformed price %q for %q: %v", e.Value, e.Label, e.Err)
}

func (e *MalformedPriceError) Unwrap() error { return e.Err }

// Step names one of the bulk calls of a submission.
type Step string

const (
	StepUpdate Step = "update"
	StepCreate Step = "create"
	StepDelete Step = "delete"
)

// SyncError is returned when one of the bulk calls fails. Calls issued before
// Step have already been applied remotely.
type SyncError struct {
	Step Step
	Err  error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("error saving prices (%s): %v", e.Step, e.Err)
}

func (e *SyncError) Unwrap() error { return e.Err }
