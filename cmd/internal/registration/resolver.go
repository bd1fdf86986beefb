package registration

import (
	"context"
	"errors"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/fees"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/utils"
	"strings"
)

// Resolution is what a run knows about one record before executing anything:
// either it already exists (Reused, with its id and the ids it points to) or
// it has to be created from Payload.
type Resolution struct {
	Kind    Kind
	Reused  bool
	ID      string
	Nested  map[Slot]string
	Payload commands.Args

	// The record as the store has it when reused, or as it will be created.
	Company *entity.Company
	Address *entity.Address
	Party   *entity.ResponsibleParty
	Machine *entity.Machine
}

func reused(kind Kind, id string) Resolution {
	return Resolution{Kind: kind, Reused: true, ID: id}
}

func pending(kind Kind, payload commands.Args) Resolution {
	return Resolution{Kind: kind, Payload: payload}
}

// Resolutions holds one resolution per record a registration touches.
// When the lessee is reused its address and admin are left zero: they
// already exist and the lessee resolution carries their ids in Nested.
type Resolutions struct {
	LessorAdminAddress Resolution
	LessorAdmin        Resolution
	LesseeAdminAddress Resolution
	LesseeAdmin        Resolution
	LesseeAddress      Resolution
	Lessee             Resolution
	Machine            Resolution
	Contract           Resolution
}

type Resolver struct {
	invoker commands.Invoker
}

func NewResolver(invoker commands.Invoker) *Resolver {
	return &Resolver{invoker: invoker}
}

// LookupCompany finds a company by tax id. Nothing matching is (nil, nil);
// any other failure is a ResolutionFailed.
func (r *Resolver) LookupCompany(ctx context.Context, role entity.CompanyRole, taxID string) (*entity.Company, error) {
	kind := companyKind(role)
	raw, err := r.invoker.Invoke(ctx, commands.OpCompanyLookupByTaxID, commands.Args{
		"tax_id": taxID,
		"role":   strings.ToLower(string(role)),
	})
	record, err := decodeLookup[commands.CompanyRecord](raw, err)
	if err != nil {
		return nil, &ResolutionFailed{Kind: kind, Key: taxID, Cause: err}
	}
	if record == nil {
		return nil, nil
	}

	if strings.TrimSpace(record.ID) == "" {
		return nil, &ResolutionFailed{Kind: kind, Key: taxID, Cause: commands.ErrEmptyID}
	}
	company := record.ToDomain()
	company.Role = role
	return company, nil
}

// ResolveCompany looks a company up by tax id. A lookup that matches nothing
// yields a pending creation; any other failure is a ResolutionFailed.
func (r *Resolver) ResolveCompany(ctx context.Context, role entity.CompanyRole, form CompanyForm) (Resolution, error) {
	kind := companyKind(role)
	taxID := utils.OnlyDigits(form.TaxID)
	if taxID == "" {
		return Resolution{}, incomplete(kind, []string{"tax_id"})
	}

	company, err := r.LookupCompany(ctx, role, taxID)
	if err != nil {
		return Resolution{}, err
	}

	if company != nil {
		res := reused(kind, company.ID)
		res.Company = company
		res.Nested = nestedCompanyIDs(role, company)
		return res, nil
	}

	if err = incomplete(kind, form.missing()); err != nil {
		return Resolution{}, err
	}
	res := pending(kind, form.args(role))
	res.Company = form.draft(role)
	return res, nil
}

// LookupMachine finds a machine by serial number, with the same outcomes as
// LookupCompany.
func (r *Resolver) LookupMachine(ctx context.Context, serial string) (*entity.Machine, error) {
	raw, err := r.invoker.Invoke(ctx, commands.OpMachineLookupBySerial, commands.Args{"serial_number": serial})
	record, err := decodeLookup[commands.MachineRecord](raw, err)
	if err != nil {
		return nil, &ResolutionFailed{Kind: KindMachine, Key: serial, Cause: err}
	}
	if record == nil {
		return nil, nil
	}

	if strings.TrimSpace(record.ID) == "" {
		return nil, &ResolutionFailed{Kind: KindMachine, Key: serial, Cause: commands.ErrEmptyID}
	}

	machine, err := record.ToDomain()
	if err != nil {
		return nil, &ResolutionFailed{Kind: KindMachine, Key: serial, Cause: err}
	}
	return machine, nil
}

// ResolveMachine looks a machine up by serial number. Not found yields a
// pending creation built from the form.
func (r *Resolver) ResolveMachine(ctx context.Context, form MachineForm) (Resolution, error) {
	serial := strings.TrimSpace(form.SerialNumber)
	if serial == "" {
		return Resolution{}, incomplete(KindMachine, []string{"serial_number"})
	}

	machine, err := r.LookupMachine(ctx, serial)
	if err != nil {
		return Resolution{}, err
	}

	if machine != nil {
		res := reused(KindMachine, machine.ID)
		res.Machine = machine
		return res, nil
	}

	if err = incomplete(KindMachine, form.missing()); err != nil {
		return Resolution{}, err
	}
	res := pending(KindMachine, form.args())
	res.Machine = form.draft()
	return res, nil
}

// LookupAddress fetches an address that is known to exist.
func (r *Resolver) LookupAddress(ctx context.Context, id string) (*entity.Address, error) {
	raw, err := r.invoker.Invoke(ctx, commands.OpAddressLookupByID, commands.Args{"id": id})
	record, err := decodeLookup[commands.AddressRecord](raw, err)
	if err == nil && record == nil {
		err = commands.ErrNotFound
	}
	if err != nil {
		return nil, &ResolutionFailed{Kind: KindAddress, Key: id, Cause: err}
	}

	address := record.ToDomain()
	if address.ID == "" {
		address.ID = id
	}
	return address, nil
}

// ResolveAddress always yields a pending creation: addresses have no natural key.
func (r *Resolver) ResolveAddress(form AddressForm) (Resolution, error) {
	if err := incomplete(KindAddress, form.missing()); err != nil {
		return Resolution{}, err
	}
	res := pending(KindAddress, form.args())
	address := form.draft()
	res.Address = &address
	return res, nil
}

// ResolveParty always yields a pending creation. The national id is sent as
// digits only.
func (r *Resolver) ResolveParty(form PartyForm) (Resolution, error) {
	if err := incomplete(KindResponsibleParty, form.missing()); err != nil {
		return Resolution{}, err
	}
	res := pending(KindResponsibleParty, form.args())
	party := form.draft()
	res.Party = &party
	return res, nil
}

// ResolveContract builds the contract payload. Without an explicit monthly
// value the contract is priced as one month of the machine's rate.
func (r *Resolver) ResolveContract(terms ContractTerms, machine Resolution) (Resolution, error) {
	if err := incomplete(KindContract, terms.missing()); err != nil {
		return Resolution{}, err
	}

	monthly := terms.MonthlyValue
	if monthly <= 0 && machine.Machine != nil {
		monthly = fees.QuoteMonthly(machine.Machine.MonthlyRate, fees.UnitMonth, 1).Total
	}
	return pending(KindContract, terms.args(monthly)), nil
}

// ResolveAll runs every lookup of a registration, one at a time, and builds
// the creation payloads for whatever was not found.
func (r *Resolver) ResolveAll(ctx context.Context, snap FormSnapshot) (*Resolutions, error) {
	out := &Resolutions{}

	var err error
	if out.Lessee, err = r.ResolveCompany(ctx, entity.RoleLessee, snap.Lessee); err != nil {
		return nil, err
	}
	if out.Machine, err = r.ResolveMachine(ctx, snap.Machine); err != nil {
		return nil, err
	}

	if out.Lessee.Reused {
		if id := out.Lessee.Nested[SlotLesseeAddress]; id != "" {
			if out.Lessee.Address, err = r.LookupAddress(ctx, id); err != nil {
				return nil, err
			}
		}
	} else {
		if out.LesseeAdminAddress, err = r.ResolveAddress(snap.Lessee.Admin.Address); err != nil {
			return nil, err
		}
		if out.LesseeAddress, err = r.ResolveAddress(snap.Lessee.Address); err != nil {
			return nil, err
		}
		if out.LesseeAdmin, err = r.ResolveParty(snap.Lessee.Admin); err != nil {
			return nil, err
		}
	}

	if out.LessorAdminAddress, err = r.ResolveAddress(snap.LessorAdmin.Address); err != nil {
		return nil, err
	}
	if out.LessorAdmin, err = r.ResolveParty(snap.LessorAdmin); err != nil {
		return nil, err
	}
	if out.Contract, err = r.ResolveContract(snap.Terms, out.Machine); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeLookup folds the two ways of saying "nothing matched" (ErrNotFound
// or an empty result) into a nil record with a nil error.
func decodeLookup[T any](raw []byte, err error) (*T, error) {
	if err != nil {
		if errors.Is(err, commands.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	record, err := commands.DecodeFirst[T](raw)
	if errors.Is(err, commands.ErrNotFound) {
		return nil, nil
	}
	return record, err
}

func nestedCompanyIDs(role entity.CompanyRole, company *entity.Company) map[Slot]string {
	addressSlot, partySlot := SlotLesseeAddress, SlotLesseeAdmin
	if role == entity.RoleLessor {
		addressSlot, partySlot = SlotLessorAddress, SlotLessorAdmin
	}

	nested := map[Slot]string{}
	if company.AddressID != "" {
		nested[addressSlot] = company.AddressID
	}
	if company.PartyID != "" {
		nested[partySlot] = company.PartyID
	}
	return nested
}
