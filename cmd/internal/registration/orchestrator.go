package registration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
)

// Outcome is the result of a successful registration.
type Outcome struct {
	ContractID string
	// IDs holds every slot of the run, seeds included.
	IDs      map[Slot]string
	Created  []Created
	Reused   map[Slot]string
	Document *Document
}

type Orchestrator struct {
	invoker  commands.Invoker
	resolver *Resolver
}

func NewOrchestrator(invoker commands.Invoker) *Orchestrator {
	return &Orchestrator{
		invoker:  invoker,
		resolver: NewResolver(invoker),
	}
}

// Register resolves every record of the form, then creates whatever is
// missing, one step at a time, ending with the contract.
//
// The first failure stops the run. Nothing is retried or rolled back: the
// returned *RegistrationFailed lists the records created so far. Running the
// same form again reuses the lessee and machine but creates new addresses
// and parties.
//
// Cancelling ctx stops the run before its next step. A call already sent to
// the store is left to finish on its own and its answer is dropped.
func (o *Orchestrator) Register(
	ctx context.Context,
	snap FormSnapshot,
	lessor *entity.LessorContext,
	observers ...Observer,
) (*Outcome, error) {
	notify := Observers(observers)

	seeds, err := Seeds(lessor)
	if err != nil {
		return nil, o.fail(ctx, notify, PhaseResolve, nil, 0, KindLessorCompany, err, nil)
	}

	res, err := o.resolver.ResolveAll(ctx, snap)
	if err != nil {
		kind := KindContract
		var resolveErr *ResolutionFailed
		var formErr *IncompleteFormError
		switch {
		case errors.As(err, &resolveErr):
			kind = resolveErr.Kind
		case errors.As(err, &formErr):
			kind = formErr.Kind
		}
		return nil, o.fail(ctx, notify, PhaseResolve, nil, 0, kind, err, nil)
	}

	plan, err := BuildPlan(seeds, res)
	if err != nil {
		return nil, o.fail(ctx, notify, PhaseResolve, nil, 0, KindContract, err, nil)
	}

	run := newRunState(plan.Seeds)
	total := len(plan.Steps)
	for _, step := range plan.Steps {
		if err = ctx.Err(); err != nil {
			return nil, o.fail(ctx, notify, PhaseExecute, &step, total, step.Kind, err, run.created)
		}
		notify.OnEvent(ctx, Event{Type: EventStepStarted, Phase: PhaseExecute, Step: step.Index, Total: total, Slot: step.Slot, Kind: step.Kind})

		if step.Reused() {
			if err = run.publishAll(step.Publish); err != nil {
				return nil, o.fail(ctx, notify, PhaseExecute, &step, total, step.Kind, err, run.created)
			}
			notify.OnEvent(ctx, Event{Type: EventStepPublished, Phase: PhaseExecute, Step: step.Index, Total: total, Slot: step.Slot, Kind: step.Kind, ID: step.Publish[step.Slot]})
			continue
		}

		id, err := o.execute(ctx, run, step)
		if err != nil {
			return nil, o.fail(ctx, notify, PhaseExecute, &step, total, step.Kind, err, run.created)
		}
		if err = run.record(step, id); err != nil {
			return nil, o.fail(ctx, notify, PhaseExecute, &step, total, step.Kind, err, run.created)
		}
		notify.OnEvent(ctx, Event{Type: EventStepCreated, Phase: PhaseExecute, Step: step.Index, Total: total, Slot: step.Slot, Kind: step.Kind, ID: id})
	}

	ids := maps.Clone(run.ids)
	outcome := &Outcome{
		ContractID: ids[SlotContract],
		IDs:        ids,
		Created:    run.created,
		Reused:     run.reused,
		Document:   assembleDocument(lessor, res, maps.Clone(ids)),
	}
	notify.OnEvent(ctx, Event{Type: EventRunSucceeded, Phase: PhaseExecute, Step: -1, Total: total, Slot: SlotContract, Kind: KindContract, ID: outcome.ContractID})
	return outcome, nil
}

// execute is the only place a run writes to the store.
func (o *Orchestrator) execute(ctx context.Context, run *runState, step Step) (string, error) {
	args, err := run.bind(step)
	if err != nil {
		return "", err
	}

	type answer struct {
		raw json.RawMessage
		err error
	}
	done := make(chan answer, 1)
	go func() {
		raw, err := o.invoker.Invoke(context.WithoutCancel(ctx), step.Operation, args)
		done <- answer{raw: raw, err: err}
	}()

	var ans answer
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case ans = <-done:
	}

	if ans.err != nil {
		return "", &CreationFailed{Kind: step.Kind, Operation: step.Operation, Cause: ans.err}
	}
	id, err := commands.DecodeID(ans.raw)
	if err != nil {
		return "", &CreationFailed{Kind: step.Kind, Operation: step.Operation, Cause: err}
	}
	return id, nil
}

func (o *Orchestrator) fail(
	ctx context.Context,
	notify Observers,
	phase Phase,
	step *Step,
	total int,
	kind Kind,
	cause error,
	created []Created,
) *RegistrationFailed {
	failed := &RegistrationFailed{
		Phase:   phase,
		Step:    -1,
		Kind:    kind,
		Cause:   cause,
		Created: append([]Created(nil), created...),
	}
	if step != nil {
		failed.Step = step.Index
		failed.Slot = step.Slot
	}

	notify.OnEvent(ctx, Event{Type: EventRunFailed, Phase: phase, Step: failed.Step, Total: total, Slot: failed.Slot, Kind: kind, Err: failed})
	return failed
}

// runState is the id table of a single run. Ids can be added, never changed.
type runState struct {
	ids     map[Slot]string
	reused  map[Slot]string
	created []Created
}

func newRunState(seeds map[Slot]string) *runState {
	return &runState{
		ids:    maps.Clone(seeds),
		reused: map[Slot]string{},
	}
}

func (r *runState) set(slot Slot, id string) error {
	if prev, ok := r.ids[slot]; ok {
		return fmt.Errorf("%w: %s is %q, refusing %q", ErrIDReassigned, slot, prev, id)
	}
	r.ids[slot] = id
	return nil
}

func (r *runState) publishAll(publish map[Slot]string) error {
	for slot, id := range publish {
		if err := r.set(slot, id); err != nil {
			return err
		}
		r.reused[slot] = id
	}
	return nil
}

func (r *runState) record(step Step, id string) error {
	if err := r.set(step.Slot, id); err != nil {
		return err
	}
	r.created = append(r.created, Created{Step: step.Index, Slot: step.Slot, Kind: step.Kind, ID: id})
	return nil
}

// bind copies the step payload and fills in the ids it references. A missing
// or empty id stops the step before anything is sent.
func (r *runState) bind(step Step) (commands.Args, error) {
	args := step.Payload.Clone()
	for arg, slot := range step.Inputs {
		id := r.ids[slot]
		if id == "" {
			return nil, fmt.Errorf("%w: %s needs %s for %q", ErrUnresolvedReference, step.Slot, slot, arg)
		}
		args[arg] = id
	}
	return args, nil
}
