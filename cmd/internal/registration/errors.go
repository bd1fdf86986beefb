package registration

import (
	"errors"
	"fmt"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"slices"
	"strings"
)

var (
	ErrMissingLessorContext = errors.New("lessor context is missing its company or address id")
	ErrUnresolvedReference  = errors.New("step references an id that was never produced")
	ErrIDReassigned         = errors.New("id already assigned for this run")
	ErrInvalidPlan          = errors.New("invalid registration plan")
)

// Phase tells whether a run failed while looking records up or while creating them.
type Phase string

const (
	PhaseResolve Phase = "resolve"
	PhaseExecute Phase = "execute"
)

// ResolutionFailed means a lookup could not tell whether a record exists.
// It is never treated as "not found": creating a record on a transport error
// would duplicate whatever the store already has.
type ResolutionFailed struct {
	Kind  Kind
	Key   string
	Cause error
}

func (e *ResolutionFailed) Error() string {
	return fmt.Sprintf("could not look up %s %q: %v", kindLabel(e.Kind), e.Key, e.Cause)
}

func (e *ResolutionFailed) Unwrap() error {
	return e.Cause
}

// CreationFailed means the store refused, or never answered, a creation call.
type CreationFailed struct {
	Kind      Kind
	Operation string
	Cause     error
}

func (e *CreationFailed) Error() string {
	return fmt.Sprintf("could not register %s: %v", kindLabel(e.Kind), e.Cause)
}

func (e *CreationFailed) Unwrap() error {
	return e.Cause
}

// IncompleteFormError lists the fields a record needs but the form left blank.
type IncompleteFormError struct {
	Kind   Kind
	Fields []string
}

func incomplete(kind Kind, fields []string) error {
	if len(fields) == 0 {
		return nil
	}
	slices.Sort(fields)
	return &IncompleteFormError{Kind: kind, Fields: fields}
}

func (e *IncompleteFormError) Error() string {
	return fmt.Sprintf("%s is missing required fields: %s", kindLabel(e.Kind), strings.Join(e.Fields, ", "))
}

// Created is a record a run persisted. After a failure these are orphans in
// the store and have to be reconciled by hand.
type Created struct {
	Step int
	Slot Slot
	Kind Kind
	ID   string
}

// RegistrationFailed is the only error a run returns once it has started.
// Step is -1 when the run stopped before executing any step.
type RegistrationFailed struct {
	Phase   Phase
	Step    int
	Slot    Slot
	Kind    Kind
	Cause   error
	Created []Created
}

func (e *RegistrationFailed) Error() string {
	if e.Step < 0 {
		return fmt.Sprintf("registration failed: %v", e.Cause)
	}
	return fmt.Sprintf("registration failed at step %d (%s): %v", e.Step, kindLabel(e.Kind), e.Cause)
}

func (e *RegistrationFailed) Unwrap() error {
	return e.Cause
}

// Message is the innermost error text, the one worth showing to a user.
// Messages sent by the remote store are passed through untouched.
func (e *RegistrationFailed) Message() string {
	var remote *commands.RemoteError
	if errors.As(e.Cause, &remote) && remote.Message != "" {
		return remote.Message
	}

	var incompleteErr *IncompleteFormError
	if errors.As(e.Cause, &incompleteErr) {
		return incompleteErr.Error()
	}

	err := e.Cause
	for {
		var next error
		switch typed := err.(type) {
		case *ResolutionFailed:
			next = typed.Cause
		case *CreationFailed:
			next = typed.Cause
		}
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

func kindLabel(k Kind) string {
	switch k {
	case KindAddress:
		return "address"
	case KindResponsibleParty:
		return "responsible party"
	case KindLessorCompany:
		return "lessor company"
	case KindLesseeCompany:
		return "lessee company"
	case KindMachine:
		return "machine"
	case KindContract:
		return "contract"
	default:
		return strings.ToLower(string(k))
	}
}
