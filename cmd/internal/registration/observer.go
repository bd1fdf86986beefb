package registration

import "context"

type EventType string

const (
	EventStepStarted   EventType = "STEP_STARTED"
	EventStepPublished EventType = "STEP_PUBLISHED"
	EventStepCreated   EventType = "STEP_CREATED"
	EventRunFailed     EventType = "RUN_FAILED"
	EventRunSucceeded  EventType = "RUN_SUCCEEDED"
)

// Event reports progress of a run. Step is -1 for events not tied to a step.
type Event struct {
	Type  EventType
	Phase Phase
	Step  int
	Total int
	Slot  Slot
	Kind  Kind
	ID    string
	Err   error
}

// Observer is told about every step of a run, synchronously and in order.
// Observers must not block: the run waits for them.
type Observer interface {
	OnEvent(ctx context.Context, ev Event)
}

type ObserverFunc func(ctx context.Context, ev Event)

func (f ObserverFunc) OnEvent(ctx context.Context, ev Event) {
	f(ctx, ev)
}

// Observers fans an event out to every non-nil observer.
type Observers []Observer

func (o Observers) OnEvent(ctx context.Context, ev Event) {
	for _, obs := range o {
		if obs != nil {
			obs.OnEvent(ctx, ev)
		}
	}
}
