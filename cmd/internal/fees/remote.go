package fees

import (
	"context"
	"encoding/json"
	"fmt"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
)

// RemoteSource asks the store for a machine's rates. The store may answer a
// table keyed by unit ({"DAY": 40, "MONTH": 1000}) or a single monthly rate,
// which is spread over the other units with MonthlyBasis.
type RemoteSource struct {
	invoker commands.Invoker
}

func NewRemoteSource(invoker commands.Invoker) *RemoteSource {
	return &RemoteSource{invoker: invoker}
}

func (s *RemoteSource) Rates(ctx context.Context, machine *entity.Machine) (RateTable, error) {
	raw, err := s.invoker.Invoke(ctx, commands.OpMachineRentValue, commands.Args{
		"machine_id":    machine.ID,
		"serial_number": machine.SerialNumber,
	})
	if err != nil {
		return nil, err
	}

	var table map[string]json.Number
	if err = json.Unmarshal(raw, &table); err == nil {
		return parseTable(table)
	}

	monthly, err := commands.DecodeFloat(raw)
	if err != nil {
		return nil, err
	}
	return MonthlyBasis(monthly), nil
}

func parseTable(table map[string]json.Number) (RateTable, error) {
	out := make(RateTable, len(table))
	for key, val := range table {
		unit := ParseUnit(key)
		if !unit.Valid() {
			continue
		}
		rate, err := val.Float64()
		if err != nil {
			return nil, fmt.Errorf("rate for %s: %w", key, err)
		}
		out[unit] = rate
	}
	if len(out) == 0 {
		return nil, commands.ErrNotFound
	}
	return out, nil
}
