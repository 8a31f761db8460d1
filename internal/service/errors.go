package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/mealfund/internal/plancheck"
)

// ErrSyncFailed marks a save that passed validation but could not be
// persisted. The in-memory plan is intact and the save can be retried.
var ErrSyncFailed = errors.New("save failed, retry")

// ErrSessionDetached is returned by Save on a session that was not opened
// through a PhaseEditService.
var ErrSessionDetached = errors.New("edit session is not attached to a phase store")

// ErrSessionChanged is returned by Apply when phases were added or removed
// between Prepare and Apply. The save itself went through.
var ErrSessionChanged = errors.New("phases changed while saving, save again")

// SaveBlockedError is returned when the validation gate refuses a save.
type SaveBlockedError struct {
	Result plancheck.Result
}

func (e *SaveBlockedError) Error() string {
	return fmt.Sprintf("save blocked (%d problems): %s", len(e.Result.Errors), strings.Join(e.Result.Errors, "; "))
}

// Messages returns the blocking messages in validator order.
func (e *SaveBlockedError) Messages() []string {
	return e.Result.Errors
}

func blocked(violations []plancheck.Violation) error {
	if len(violations) == 0 {
		return nil
	}
	return &SaveBlockedError{Result: plancheck.NewResult(violations)}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
