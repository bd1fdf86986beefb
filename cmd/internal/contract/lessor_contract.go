package contract

type AddressResponse struct {
	ID         string `json:"id"`
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
}

type LessorResponse struct {
	ID            string           `json:"id"`
	LegalName     string           `json:"legal_name"`
	TaxID         string           `json:"tax_id"`
	BankName      string           `json:"bank_name"`
	AccountNumber string           `json:"account_number"`
	BranchNumber  string           `json:"branch_number"`
	Address       *AddressResponse `json:"address"`
	CachedAt      string           `json:"cached_at"`
}
