package entity

type CompanyRole string

const (
	RoleLessor CompanyRole = "LESSOR"
	RoleLessee CompanyRole = "LESSEE"
)

// Company is a lessor or lessee as known by the remote store.
//
// TaxID (the CNPJ, digits only) is the natural key: it is unique across the
// store and is what we look a company up by before ever creating one.
type Company struct {
	ID        string      `json:"id"`
	Role      CompanyRole `json:"role"`
	LegalName string      `json:"legal_name"`
	TaxID     string      `json:"tax_id"`

	// Banking fields are only ever filled for lessors.
	BankName      string `json:"bank_name,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	BranchNumber  string `json:"branch_number,omitempty"`

	AddressID string `json:"address_id"`
	PartyID   string `json:"party_id"`
}
