package service

import (
	"context"
	"errors"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/fees"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/utils/apierror"
	"strings"

	"github.com/labstack/gommon/log"
)

type MachineFinder interface {
	LookupMachine(ctx context.Context, serial string) (*entity.Machine, error)
}

type QuoteService struct {
	Machines MachineFinder
	Rates    fees.RateSource
}

func NewQuoteService(machines MachineFinder, rates fees.RateSource) *QuoteService {
	return &QuoteService{Machines: machines, Rates: rates}
}

// Quote prices a rental of quantity units of a registered machine. An
// unselected unit or a non-positive quantity quotes as zero, like an
// untouched form.
func (s *QuoteService) Quote(ctx context.Context, serial, unit string, quantity float64) (*contract.QuoteResponse, apierror.ErrorResponse) {
	u := fees.ParseUnit(unit)
	serial = strings.TrimSpace(serial)
	machine, err := s.Machines.LookupMachine(ctx, serial)
	if err != nil {
		log.Errorf("failed to look up machine %s: %v", serial, err)
		return nil, apierror.RemoteStoreError
	}
	if machine == nil {
		return nil, apierror.MachineNotFoundError
	}

	var rates fees.RateTable
	if u.Valid() {
		rates, err = s.Rates.Rates(ctx, machine)
	}
	if err != nil {
		if errors.Is(err, commands.ErrNotFound) {
			return nil, apierror.RatesNotFoundError
		}
		log.Errorf("failed to fetch rates of machine %s: %v", serial, err)
		return nil, apierror.RemoteStoreError
	}

	q := fees.Calculate(rates, u, quantity)
	return &contract.QuoteResponse{
		MachineID:    machine.ID,
		SerialNumber: machine.SerialNumber,
		MachineName:  machine.Name,
		Unit:         string(q.Unit),
		Quantity:     q.Quantity,
		UnitRate:     q.UnitRate,
		Total:        q.Total,
		Display:      q.Display(),
	}, nil
}
