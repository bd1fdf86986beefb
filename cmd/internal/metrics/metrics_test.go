package metrics

import (
	"context"
	"rentalcontracts/cmd/internal/registration"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegistrationObserver(t *testing.T) {
	m := New(prometheus.NewRegistry())
	ctx := context.Background()

	ok := m.Observer()
	ok.OnEvent(ctx, registration.Event{Type: registration.EventStepStarted, Kind: registration.KindAddress})
	ok.OnEvent(ctx, registration.Event{Type: registration.EventStepCreated, Kind: registration.KindAddress})
	ok.OnEvent(ctx, registration.Event{Type: registration.EventStepPublished, Kind: registration.KindMachine})
	ok.OnEvent(ctx, registration.Event{Type: registration.EventRunSucceeded, Phase: registration.PhaseExecute})

	failed := &registration.RegistrationFailed{
		Phase: registration.PhaseExecute,
		Step:  3,
		Created: []registration.Created{
			{Step: 0, Kind: registration.KindAddress, ID: "address-1"},
			{Step: 1, Kind: registration.KindAddress, ID: "address-2"},
		},
	}
	bad := m.Observer()
	bad.OnEvent(ctx, registration.Event{Type: registration.EventRunFailed, Phase: registration.PhaseExecute, Err: failed})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("ADDRESS", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Steps.WithLabelValues("MACHINE", "reused")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("succeeded", "execute")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("failed", "execute")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Orphans))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RunDuration))
}
