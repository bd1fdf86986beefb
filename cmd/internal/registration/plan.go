package registration

import (
	"fmt"
	"maps"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
)

// Step is one unit of work of a run. It is a plain value: executing it needs
// nothing but the ids produced by earlier steps.
//
// A step either creates a record (Operation, Payload and Inputs set) or, for
// records that already exist, only publishes known ids (Publish set).
type Step struct {
	Index     int
	Slot      Slot
	Kind      Kind
	Operation string
	Payload   commands.Args
	// Inputs maps a payload argument to the slot whose id fills it.
	Inputs  map[string]Slot
	Publish map[Slot]string
}

func (s Step) Reused() bool {
	return s.Publish != nil
}

// Plan is the ordered list of steps of a run, plus the ids known before it starts.
type Plan struct {
	Seeds map[Slot]string
	Steps []Step
}

// Seeds returns the ids a run starts with: the lessor company and its
// address, which every contract points to and no run ever creates.
func Seeds(lessor *entity.LessorContext) (map[Slot]string, error) {
	if lessor == nil || lessor.LessorID == "" || lessor.AddressID == "" {
		return nil, ErrMissingLessorContext
	}
	return map[Slot]string{
		SlotLessor:        lessor.LessorID,
		SlotLessorAddress: lessor.AddressID,
	}, nil
}

// BuildPlan orders the creations so that every record comes after the ones
// it references: addresses, then parties, then the lessee, the machine and
// finally the contract. A reused lessee drops its address and party steps.
func BuildPlan(seeds map[Slot]string, res *Resolutions) (*Plan, error) {
	p := &Plan{Seeds: maps.Clone(seeds)}
	lesseeReused := res.Lessee.Reused

	p.create(SlotLessorAdminAddress, res.LessorAdminAddress, commands.OpAddressCreate, nil)
	if !lesseeReused {
		p.create(SlotLesseeAdminAddress, res.LesseeAdminAddress, commands.OpAddressCreate, nil)
		p.create(SlotLesseeAddress, res.LesseeAddress, commands.OpAddressCreate, nil)
	}

	p.create(SlotLessorAdmin, res.LessorAdmin, commands.OpPartyCreate, map[string]Slot{
		"address_id": SlotLessorAdminAddress,
	})
	if !lesseeReused {
		p.create(SlotLesseeAdmin, res.LesseeAdmin, commands.OpPartyCreate, map[string]Slot{
			"address_id": SlotLesseeAdminAddress,
		})
	}

	p.resolve(SlotLessee, res.Lessee, commands.OpCompanyCreate, map[string]Slot{
		"address_id": SlotLesseeAddress,
		"party_id":   SlotLesseeAdmin,
	})
	p.resolve(SlotMachine, res.Machine, commands.OpMachineCreate, nil)

	p.create(SlotContract, res.Contract, commands.OpContractCreate, map[string]Slot{
		"lessee_id":         SlotLessee,
		"lessor_id":         SlotLessor,
		"machine_id":        SlotMachine,
		"pickup_address_id": SlotLessorAddress,
	})

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plan) resolve(slot Slot, res Resolution, op string, inputs map[string]Slot) {
	if !res.Reused {
		p.create(slot, res, op, inputs)
		return
	}

	publish := map[Slot]string{slot: res.ID}
	for nested, id := range res.Nested {
		publish[nested] = id
	}
	p.Steps = append(p.Steps, Step{
		Index:   len(p.Steps),
		Slot:    slot,
		Kind:    res.Kind,
		Publish: publish,
	})
}

func (p *Plan) create(slot Slot, res Resolution, op string, inputs map[string]Slot) {
	p.Steps = append(p.Steps, Step{
		Index:     len(p.Steps),
		Slot:      slot,
		Kind:      res.Kind,
		Operation: op,
		Payload:   res.Payload,
		Inputs:    inputs,
	})
}

// Validate checks that every slot is produced once and that every input is
// produced by a seed or by an earlier step.
func (p *Plan) Validate() error {
	produced := make(map[Slot]int, len(p.Seeds)+len(p.Steps))
	for slot, id := range p.Seeds {
		if id == "" {
			return fmt.Errorf("%w: seed %s has no id", ErrInvalidPlan, slot)
		}
		produced[slot] = -1
	}

	for i, step := range p.Steps {
		if step.Index != i {
			return fmt.Errorf("%w: step %d is out of order", ErrInvalidPlan, step.Index)
		}

		if step.Reused() {
			for slot, id := range step.Publish {
				if id == "" {
					return fmt.Errorf("%w: step %d publishes an empty id for %s", ErrInvalidPlan, i, slot)
				}
				if err := claim(produced, slot, i); err != nil {
					return err
				}
			}
			continue
		}

		if step.Operation == "" || step.Kind == "" {
			return fmt.Errorf("%w: step %d (%s) has nothing to execute", ErrInvalidPlan, i, step.Slot)
		}
		for arg, slot := range step.Inputs {
			if _, ok := produced[slot]; !ok {
				return fmt.Errorf("%w: step %d needs %s for %q before it is produced", ErrInvalidPlan, i, slot, arg)
			}
		}
		if err := claim(produced, step.Slot, i); err != nil {
			return err
		}
	}
	return nil
}

func claim(produced map[Slot]int, slot Slot, step int) error {
	if prev, ok := produced[slot]; ok {
		return fmt.Errorf("%w: %s is produced by step %d and step %d", ErrInvalidPlan, slot, prev, step)
	}
	produced[slot] = step
	return nil
}
