package registration

import (
	"context"
	"encoding/json"
	"fmt"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"sync"
)

type recordedCall struct {
	Op   string
	Args commands.Args
}

// fakeStore is an in-memory remote store that remembers what it created, so
// a second registration of the same form finds the lessee and the machine.
type fakeStore struct {
	mu    sync.Mutex
	seq   int
	calls []recordedCall

	companies map[string]commands.CompanyRecord
	machines  map[string]commands.MachineRecord
	addresses map[string]commands.AddressRecord

	// hooks replace the default behavior of an operation.
	hooks map[string]func(args commands.Args) (json.RawMessage, error)
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		companies: map[string]commands.CompanyRecord{},
		machines:  map[string]commands.MachineRecord{},
		addresses: map[string]commands.AddressRecord{},
		hooks:     map[string]func(args commands.Args) (json.RawMessage, error){},
	}
}

func (s *fakeStore) failOn(op string, err error) {
	s.hooks[op] = func(commands.Args) (json.RawMessage, error) {
		return nil, err
	}
}

func (s *fakeStore) Invoke(_ context.Context, op string, args commands.Args) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls = append(s.calls, recordedCall{Op: op, Args: args.Clone()})
	if hook, ok := s.hooks[op]; ok {
		return hook(args)
	}

	switch op {
	case commands.OpCompanyLookupByTaxID:
		rec, ok := s.companies[args["tax_id"].(string)]
		if !ok {
			return nil, commands.ErrNotFound
		}
		return json.Marshal(rec)

	case commands.OpMachineLookupBySerial:
		rec, ok := s.machines[args["serial_number"].(string)]
		if !ok {
			// Some backends answer an empty list instead of an error.
			return json.RawMessage("[]"), nil
		}
		return json.Marshal([]commands.MachineRecord{rec})

	case commands.OpAddressLookupByID:
		rec, ok := s.addresses[args["id"].(string)]
		if !ok {
			return json.RawMessage("null"), nil
		}
		return json.Marshal(rec)

	case commands.OpAddressCreate:
		id := s.nextID("address")
		s.addresses[id] = commands.AddressRecord{
			ID:         id,
			Street:     args["street"].(string),
			Number:     args["number"].(string),
			City:       args["city"].(string),
			State:      args["state"].(string),
			PostalCode: args["postal_code"].(string),
		}
		return json.Marshal(id)

	case commands.OpCompanyCreate:
		id := s.nextID("company")
		taxID := args["tax_id"].(string)
		s.companies[taxID] = commands.CompanyRecord{
			ID:        id,
			Role:      args["role"].(string),
			LegalName: args["legal_name"].(string),
			TaxID:     taxID,
			AddressID: args["address_id"].(string),
			PartyID:   args["party_id"].(string),
		}
		return json.Marshal(map[string]string{"id": id})

	case commands.OpMachineCreate:
		id := s.nextID("machine")
		serial := args["serial_number"].(string)
		s.machines[serial] = commands.MachineRecord{
			ID:           id,
			Name:         args["name"].(string),
			SerialNumber: serial,
			MonthlyRate:  json.Number(fmt.Sprint(args["monthly_rate"])),
		}
		return json.Marshal(id)

	case commands.OpPartyCreate:
		return json.Marshal(s.nextID("party"))

	case commands.OpContractCreate:
		return json.Marshal(s.nextID("contract"))
	}
	return nil, &commands.RemoteError{Operation: op, Code: commands.CodeMethodNotFound, Message: "method not found"}
}

func (s *fakeStore) nextID(prefix string) string {
	s.seq++
	return fmt.Sprintf("%s-%d", prefix, s.seq)
}

func (s *fakeStore) ops() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.calls))
	for _, c := range s.calls {
		out = append(out, c.Op)
	}
	return out
}

func (s *fakeStore) count(op string) int {
	n := 0
	for _, o := range s.ops() {
		if o == op {
			n++
		}
	}
	return n
}

func (s *fakeStore) argsOf(op string) []commands.Args {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []commands.Args
	for _, c := range s.calls {
		if c.Op == op {
			out = append(out, c.Args)
		}
	}
	return out
}

func (s *fakeStore) creations() int {
	return s.count(commands.OpAddressCreate) +
		s.count(commands.OpPartyCreate) +
		s.count(commands.OpCompanyCreate) +
		s.count(commands.OpMachineCreate) +
		s.count(commands.OpContractCreate)
}

func validSnapshot() FormSnapshot {
	return FormSnapshot{
		LessorAdmin: PartyForm{
			Name:             "Maria Souza",
			NationalID:       "529.982.247-25",
			IssuingAuthority: "SSP/SP",
			MaritalStatus:    "married",
			Nationality:      "brazilian",
			Address: AddressForm{
				Street:     "Rua das Flores",
				Number:     "120",
				City:       "Campinas",
				State:      "sp",
				PostalCode: "13010-000",
			},
		},
		Lessee: CompanyForm{
			LegalName: "Obras Horizonte Ltda",
			TaxID:     "11.222.333/0001-81",
			Address: AddressForm{
				Street:     "Av. Brasil",
				Number:     "900",
				Complement: "Galpao 2",
				City:       "Sorocaba",
				State:      "SP",
				PostalCode: "18035-000",
			},
			Admin: PartyForm{
				Name:             "Joao Lima",
				NationalID:       "52998224725",
				IssuingAuthority: "SSP/SP",
				MaritalStatus:    "single",
				Nationality:      "brazilian",
				Address: AddressForm{
					Street:     "Rua Sete",
					Number:     "7",
					City:       "Sorocaba",
					State:      "SP",
					PostalCode: "18035-100",
				},
			},
		},
		Machine: MachineForm{
			Name:         "Retroescavadeira 416F",
			SerialNumber: "CAT416F-0001",
			MonthlyRate:  1000,
		},
		Terms: ContractTerms{
			LeaseTermMonths:     6,
			PickupDate:          "2026-11-01",
			DueDate:             "2026-12-01",
			LateFeePercent:      2,
			LateInterestPercent: 1,
			TransferNotice:      "30 days",
			ReturnDeadline:      "2027-05-01",
			VenueCity:           "Campinas",
			ContractDate:        "2026-10-16",
		},
	}
}

func lessorContext() *entity.LessorContext {
	return &entity.LessorContext{
		UserSub:       "user-1",
		LessorID:      "lessor-1",
		TaxID:         "11444777000161",
		LegalName:     "Locadora Paulista SA",
		BankName:      "Banco do Brasil",
		AccountNumber: "12345-6",
		BranchNumber:  "0001",
		AddressID:     "lessor-address-1",
		AddressStreet: "Rod. Anhanguera",
		AddressNumber: "km 100",
		AddressCity:   "Campinas",
		AddressState:  "SP",
	}
}
