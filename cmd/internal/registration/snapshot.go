package registration

import (
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/utils"
	"strings"
)

// FormSnapshot is the registration form as submitted. It is read once, when
// the run resolves its entities, and never again.
type FormSnapshot struct {
	LessorAdmin PartyForm
	Lessee      CompanyForm
	Machine     MachineForm
	Terms       ContractTerms
}

type AddressForm struct {
	Street     string
	Number     string
	Complement string
	City       string
	State      string
	PostalCode string
}

type PartyForm struct {
	Name             string
	NationalID       string
	IssuingAuthority string
	MaritalStatus    string
	Nationality      string
	Address          AddressForm
}

type CompanyForm struct {
	LegalName string
	TaxID     string

	BankName      string
	AccountNumber string
	BranchNumber  string

	Address AddressForm
	Admin   PartyForm
}

type MachineForm struct {
	Name         string
	SerialNumber string
	MonthlyRate  float64
}

// ContractTerms are the contract fields that do not reference other records.
// A zero MonthlyValue is filled in from the machine's monthly rate.
type ContractTerms struct {
	LeaseTermMonths     int
	PickupDate          string
	MonthlyValue        float64
	DueDate             string
	LateFeePercent      float64
	LateInterestPercent float64
	TransferNotice      string
	ReturnDeadline      string
	VenueCity           string
	ContractDate        string
}

func (a AddressForm) missing() []string {
	return blank(map[string]string{
		"street":      a.Street,
		"number":      a.Number,
		"city":        a.City,
		"state":       a.State,
		"postal_code": a.PostalCode,
	})
}

func (a AddressForm) args() commands.Args {
	return commands.Args{
		"street":      a.Street,
		"number":      a.Number,
		"complement":  a.Complement,
		"city":        a.City,
		"state":       strings.ToUpper(a.State),
		"postal_code": utils.OnlyDigits(a.PostalCode),
	}
}

func (a AddressForm) draft() entity.Address {
	return entity.Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		City:       a.City,
		State:      strings.ToUpper(a.State),
		PostalCode: utils.OnlyDigits(a.PostalCode),
	}
}

// Every party field is mandatory: the contract is signed on their behalf.
func (p PartyForm) missing() []string {
	return blank(map[string]string{
		"name":              p.Name,
		"national_id":       utils.OnlyDigits(p.NationalID),
		"issuing_authority": p.IssuingAuthority,
		"marital_status":    p.MaritalStatus,
		"nationality":       p.Nationality,
	})
}

func (p PartyForm) args() commands.Args {
	return commands.Args{
		"name":              p.Name,
		"national_id":       utils.OnlyDigits(p.NationalID),
		"issuing_authority": p.IssuingAuthority,
		"marital_status":    p.MaritalStatus,
		"nationality":       p.Nationality,
	}
}

func (p PartyForm) draft() entity.ResponsibleParty {
	return entity.ResponsibleParty{
		Name:             p.Name,
		NationalID:       utils.OnlyDigits(p.NationalID),
		IssuingAuthority: p.IssuingAuthority,
		MaritalStatus:    p.MaritalStatus,
		Nationality:      p.Nationality,
	}
}

func (c CompanyForm) missing() []string {
	return blank(map[string]string{
		"legal_name": c.LegalName,
		"tax_id":     utils.OnlyDigits(c.TaxID),
	})
}

func (c CompanyForm) args(role entity.CompanyRole) commands.Args {
	args := commands.Args{
		"role":       strings.ToLower(string(role)),
		"legal_name": c.LegalName,
		"tax_id":     utils.OnlyDigits(c.TaxID),
	}
	if role == entity.RoleLessor {
		args["bank_name"] = c.BankName
		args["account_number"] = c.AccountNumber
		args["branch_number"] = c.BranchNumber
	}
	return args
}

func (c CompanyForm) draft(role entity.CompanyRole) *entity.Company {
	company := &entity.Company{
		Role:      role,
		LegalName: c.LegalName,
		TaxID:     utils.OnlyDigits(c.TaxID),
	}
	if role == entity.RoleLessor {
		company.BankName = c.BankName
		company.AccountNumber = c.AccountNumber
		company.BranchNumber = c.BranchNumber
	}
	return company
}

func (m MachineForm) missing() []string {
	out := blank(map[string]string{
		"name":          m.Name,
		"serial_number": m.SerialNumber,
	})
	if m.MonthlyRate <= 0 {
		out = append(out, "monthly_rate")
	}
	return out
}

func (m MachineForm) args() commands.Args {
	return commands.Args{
		"name":          m.Name,
		"serial_number": m.SerialNumber,
		"monthly_rate":  m.MonthlyRate,
	}
}

func (m MachineForm) draft() *entity.Machine {
	return &entity.Machine{
		Name:         m.Name,
		SerialNumber: m.SerialNumber,
		MonthlyRate:  m.MonthlyRate,
	}
}

func (t ContractTerms) args(monthlyValue float64) commands.Args {
	return commands.Args{
		"lease_term_months":     t.LeaseTermMonths,
		"pickup_date":           t.PickupDate,
		"monthly_value":         monthlyValue,
		"due_date":              t.DueDate,
		"late_fee_percent":      t.LateFeePercent,
		"late_interest_percent": t.LateInterestPercent,
		"transfer_notice":       t.TransferNotice,
		"return_deadline":       t.ReturnDeadline,
		"venue_city":            t.VenueCity,
		"contract_date":         t.ContractDate,
	}
}

func (t ContractTerms) missing() []string {
	out := blank(map[string]string{
		"pickup_date":   t.PickupDate,
		"due_date":      t.DueDate,
		"venue_city":    t.VenueCity,
		"contract_date": t.ContractDate,
	})
	if t.LeaseTermMonths <= 0 {
		out = append(out, "lease_term_months")
	}
	return out
}

func blank(fields map[string]string) []string {
	var out []string
	for name, val := range fields {
		if strings.TrimSpace(val) == "" {
			out = append(out, name)
		}
	}
	return out
}
