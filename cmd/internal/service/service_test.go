package service

import (
	"context"
	"encoding/json"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/domain/sqlite"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/utils/validators"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := sqlite.Init("file::memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func newValidator(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	require.NoError(t, validators.Register(v))
	return v
}

// scriptedStore answers operations from a fixed table and counts calls.
type scriptedStore struct {
	mu      sync.Mutex
	answers map[string]func(args commands.Args) (json.RawMessage, error)
	calls   map[string]int
}

func newScriptedStore() *scriptedStore {
	return &scriptedStore{
		answers: map[string]func(args commands.Args) (json.RawMessage, error){},
		calls:   map[string]int{},
	}
}

func (s *scriptedStore) on(op string, fn func(args commands.Args) (json.RawMessage, error)) {
	s.answers[op] = fn
}

func (s *scriptedStore) reply(op string, v any) {
	s.on(op, func(commands.Args) (json.RawMessage, error) {
		return json.Marshal(v)
	})
}

func (s *scriptedStore) fail(op string, err error) {
	s.on(op, func(commands.Args) (json.RawMessage, error) {
		return nil, err
	})
}

func (s *scriptedStore) count(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *scriptedStore) Invoke(_ context.Context, op string, args commands.Args) (json.RawMessage, error) {
	s.mu.Lock()
	s.calls[op]++
	fn, ok := s.answers[op]
	s.mu.Unlock()

	if !ok {
		return nil, &commands.RemoteError{Operation: op, Code: commands.CodeMethodNotFound, Message: "method not found"}
	}
	return fn(args)
}

func lessorFixture() *entity.LessorContext {
	return &entity.LessorContext{
		UserSub:       "user-1",
		LessorID:      "lessor-1",
		TaxID:         "11444777000161",
		LegalName:     "Locadora Paulista SA",
		AddressID:     "lessor-address-1",
		AddressStreet: "Rod. Anhanguera",
		AddressNumber: "km 100",
		AddressCity:   "Campinas",
		AddressState:  "SP",
	}
}

func validRequest() *contract.ContractRequest {
	return &contract.ContractRequest{
		LessorAdmin: &contract.PartyRequest{
			Name:             "Maria Souza",
			NationalID:       "529.982.247-25",
			IssuingAuthority: "SSP/SP",
			MaritalStatus:    "married",
			Nationality:      "brazilian",
			Address: &contract.AddressRequest{
				Street:     "Rua das Flores",
				Number:     "120",
				City:       "Campinas",
				State:      "SP",
				PostalCode: "13010-000",
			},
		},
		Lessee: &contract.LesseeRequest{
			LegalName: "Obras Horizonte Ltda",
			TaxID:     "11.222.333/0001-81",
			Address: &contract.AddressRequest{
				Street:     "Av. Brasil",
				Number:     "900",
				City:       "Sorocaba",
				State:      "SP",
				PostalCode: "18035-000",
			},
			Admin: &contract.PartyRequest{
				Name:             "Joao Lima",
				NationalID:       "52998224725",
				IssuingAuthority: "SSP/SP",
				MaritalStatus:    "single",
				Nationality:      "brazilian",
				Address: &contract.AddressRequest{
					Street:     "Rua Sete",
					Number:     "7",
					City:       "Sorocaba",
					State:      "SP",
					PostalCode: "18035100",
				},
			},
		},
		Machine: &contract.MachineRequest{
			Name:         "Retroescavadeira 416F",
			SerialNumber: "CAT416F-0001",
			MonthlyRate:  1000,
		},
		Terms: &contract.TermsRequest{
			LeaseTermMonths:     6,
			PickupDate:          "2026-11-01",
			DueDate:             "2026-12-01",
			LateFeePercent:      2,
			LateInterestPercent: 1,
			VenueCity:           "Campinas",
			ContractDate:        "2026-10-16",
		},
	}
}
