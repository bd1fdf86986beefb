package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"rentalcontracts/cmd/internal/domain/entity"
	"strconv"
	"strings"
)

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  Args   `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// IsEmpty reports whether a result carries nothing: null, "", [] or {}.
// The remote store answers lookups that match nothing this way.
func IsEmpty(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	switch string(trimmed) {
	case "", "null", `""`, "[]", "{}":
		return true
	}
	return false
}

// DecodeID reads the id returned by a creation call. Both a bare string
// ("abc") and an object ({"id": "abc"}) are accepted.
func DecodeID(raw json.RawMessage) (string, error) {
	if IsEmpty(raw) {
		return "", ErrEmptyID
	}

	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		return nonEmptyID(id)
	}

	var wrapper struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return "", fmt.Errorf("unexpected id payload: %s", string(raw))
	}
	if IsEmpty(wrapper.ID) {
		return "", ErrEmptyID
	}

	// Some operations answer with numeric ids.
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(wrapper.ID))
	dec.UseNumber()
	if err := dec.Decode(&num); err == nil {
		return nonEmptyID(num.String())
	}
	if err := json.Unmarshal(wrapper.ID, &id); err != nil {
		return "", fmt.Errorf("unexpected id payload: %s", string(raw))
	}
	return nonEmptyID(id)
}

func nonEmptyID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrEmptyID
	}
	return id, nil
}

// DecodeFirst unmarshals a lookup result that is either a single object or a
// list of objects; for lists only the first element is used.
// It returns ErrNotFound for empty results.
func DecodeFirst[T any](raw json.RawMessage) (*T, error) {
	if IsEmpty(raw) {
		return nil, ErrNotFound
	}

	trimmed := bytes.TrimSpace(raw)
	if trimmed[0] == '[' {
		var list []*T
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, err
		}
		if len(list) == 0 || list[0] == nil {
			return nil, ErrNotFound
		}
		return list[0], nil
	}

	var out T
	if err := json.Unmarshal(trimmed, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DecodeFloat reads a numeric result that may have been sent as a number or a string.
func DecodeFloat(raw json.RawMessage) (float64, error) {
	if IsEmpty(raw) {
		return 0, ErrNotFound
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("unexpected numeric payload: %s", string(raw))
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", "."), 64)
	if err != nil {
		return 0, errors.Join(fmt.Errorf("unexpected numeric payload: %s", string(raw)), err)
	}
	return f, nil
}

type CompanyRecord struct {
	ID            string `json:"id"`
	Role          string `json:"role"`
	LegalName     string `json:"legal_name"`
	TaxID         string `json:"tax_id"`
	BankName      string `json:"bank_name"`
	AccountNumber string `json:"account_number"`
	BranchNumber  string `json:"branch_number"`
	AddressID     string `json:"address_id"`
	PartyID       string `json:"party_id"`
}

func (c *CompanyRecord) ToDomain() *entity.Company {
	return &entity.Company{
		ID:            c.ID,
		Role:          translateRole(c.Role),
		LegalName:     c.LegalName,
		TaxID:         c.TaxID,
		BankName:      c.BankName,
		AccountNumber: c.AccountNumber,
		BranchNumber:  c.BranchNumber,
		AddressID:     c.AddressID,
		PartyID:       c.PartyID,
	}
}

type MachineRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	SerialNumber string      `json:"serial_number"`
	MonthlyRate  json.Number `json:"monthly_rate"`
}

// ToDomain fails on a monthly rate that is present but not a number. A
// missing rate maps to zero.
func (m *MachineRecord) ToDomain() (*entity.Machine, error) {
	var rate float64
	if m.MonthlyRate != "" {
		var err error
		if rate, err = m.MonthlyRate.Float64(); err != nil {
			return nil, fmt.Errorf("machine %s: invalid monthly rate %q: %w", m.ID, m.MonthlyRate.String(), err)
		}
	}
	return &entity.Machine{
		ID:           m.ID,
		Name:         m.Name,
		SerialNumber: m.SerialNumber,
		MonthlyRate:  rate,
	}, nil
}

type AddressRecord struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

func (a *AddressRecord) ToDomain() *entity.Address {
	return &entity.Address{
		ID:         a.ID,
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		City:       a.City,
		State:      strings.ToUpper(a.State),
		PostalCode: a.PostalCode,
	}
}

func translateRole(role string) entity.CompanyRole {
	switch strings.ToUpper(role) {
	case "LESSOR", "LOCADORA":
		return entity.RoleLessor
	case "LESSEE", "LOCATARIO", "LOCATÁRIO":
		return entity.RoleLessee
	default:
		return entity.CompanyRole(strings.ToUpper(role))
	}
}
