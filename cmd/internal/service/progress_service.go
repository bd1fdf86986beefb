package service

import (
	"context"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/domain/events"
	"rentalcontracts/cmd/internal/infrastructure/aws/websocket"
	"rentalcontracts/cmd/internal/registration"
	"rentalcontracts/cmd/internal/utils/uid"

	"github.com/labstack/gommon/log"
)

// Events queued per run before new ones are dropped.
const progressBuffer = 64

// ProgressService pushes registration progress to the caller's websocket.
type ProgressService struct {
	Gateway websocket.GatewayClient
}

func NewProgressService(gateway websocket.GatewayClient) *ProgressService {
	return &ProgressService{Gateway: gateway}
}

func (s *ProgressService) DispatchToConnection(ctx context.Context, connID string, evt events.SocketEvent) {
	envelope := &contract.OutgoingSocketMessage{
		Type: evt.GetType(),
		Data: evt,
	}
	_ = s.Gateway.PostToConnection(ctx, connID, envelope)
}

// Observer returns a registration observer forwarding the run's events to
// connID, in order, from a single background sender. The run never waits on
// the gateway: when the queue is full events are dropped.
func (s *ProgressService) Observer(runID int64, connID string) registration.Observer {
	if connID == "" {
		return nil
	}

	queue := make(chan events.SocketEvent, progressBuffer)
	go func() {
		for evt := range queue {
			s.DispatchToConnection(context.Background(), connID, evt)
		}
	}()

	run := uid.Format(runID)
	return registration.ObserverFunc(func(_ context.Context, ev registration.Event) {
		evt, terminal := toSocketEvent(run, ev)
		if evt != nil {
			select {
			case queue <- evt:
			default:
				log.Warnf("run %s: progress queue full, dropping %s", run, ev.Type)
			}
		}
		if terminal {
			close(queue)
		}
	})
}

func toSocketEvent(runID string, ev registration.Event) (events.SocketEvent, bool) {
	switch ev.Type {
	case registration.EventStepCreated, registration.EventStepPublished:
		return &events.RegistrationStep{
			RunID:    runID,
			Step:     ev.Step,
			Total:    ev.Total,
			Slot:     string(ev.Slot),
			Kind:     string(ev.Kind),
			RecordID: ev.ID,
			Reused:   ev.Type == registration.EventStepPublished,
		}, false

	case registration.EventRunSucceeded:
		return &events.RegistrationSucceeded{RunID: runID, ContractID: ev.ID}, true

	case registration.EventRunFailed:
		failed := &events.RegistrationFailed{
			RunID: runID,
			Phase: string(ev.Phase),
			Kind:  string(ev.Kind),
		}
		if ev.Step >= 0 {
			step := ev.Step
			failed.Step = &step
		}
		failed.Message = failureMessage(ev.Err)
		return failed, true
	}
	return nil, false
}
