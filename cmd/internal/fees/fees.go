// Package fees turns a machine's rental rate and a lease term into a price.
package fees

import (
	"context"
	"math"
	"rentalcontracts/cmd/internal/domain/entity"
)

// MaintenanceSurcharge is applied to every quote to cover post-rental upkeep.
const MaintenanceSurcharge = 1.05

// Ratios used by MonthlyBasis to derive the other units from a monthly rate.
const (
	WeeksPerMonth = 4.345
	DaysPerMonth  = 30.0
	HoursPerMonth = 720.0
)

// RateTable holds the value of one unit of each term, as handed out by a rate source.
// The calculator never derives a rate on its own: units missing from the
// table quote as zero.
type RateTable map[Unit]float64

// MonthlyBasis derives the per-unit table from a monthly base rate.
func MonthlyBasis(monthly float64) RateTable {
	return RateTable{
		UnitMonth: monthly,
		UnitWeek:  monthly / WeeksPerMonth,
		UnitDay:   monthly / DaysPerMonth,
		UnitHour:  monthly / HoursPerMonth,
	}
}

// RateSource hands out the rate table for a machine.
type RateSource interface {
	Rates(ctx context.Context, machine *entity.Machine) (RateTable, error)
}

// MonthlyBasisSource builds the table from the machine's own monthly rate.
type MonthlyBasisSource struct{}

func (MonthlyBasisSource) Rates(_ context.Context, machine *entity.Machine) (RateTable, error) {
	return MonthlyBasis(machine.MonthlyRate), nil
}

type Quote struct {
	Unit     Unit
	Quantity float64
	UnitRate float64
	// Total keeps full precision; it is what goes into a contract.
	Total float64
}

// Display is the total rounded to cents, for showing to users.
func (q Quote) Display() float64 {
	return RoundCents(q.Total)
}

// Calculate prices quantity units of the given term. An unselected unit or a
// non-positive quantity yields a zero quote, never an error.
func Calculate(rates RateTable, unit Unit, quantity float64) Quote {
	q := Quote{Unit: unit, Quantity: quantity}
	if !unit.Valid() || quantity <= 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return q
	}

	q.UnitRate = rates[unit]
	q.Total = q.UnitRate * quantity * MaintenanceSurcharge
	return q
}

// QuoteMonthly prices quantity units against a monthly base rate.
func QuoteMonthly(baseMonthly float64, unit Unit, quantity float64) Quote {
	return Calculate(MonthlyBasis(baseMonthly), unit, quantity)
}

func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
