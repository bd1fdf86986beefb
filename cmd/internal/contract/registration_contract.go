package contract

import "rentalcontracts/cmd/internal/registration"

type AddressRequest struct {
	Street     string `json:"street" validate:"required,max=120"`
	Number     string `json:"number" validate:"required,max=20"`
	Complement string `json:"complement" validate:"max=60"`
	City       string `json:"city" validate:"required,max=80"`
	State      string `json:"state" validate:"required,uf"`
	PostalCode string `json:"postal_code" validate:"required,cep"`
}

type PartyRequest struct {
	Name             string          `json:"name" validate:"required,max=120"`
	NationalID       string          `json:"national_id" validate:"required,cpf"`
	IssuingAuthority string          `json:"issuing_authority" validate:"required,max=30"`
	MaritalStatus    string          `json:"marital_status" validate:"required,max=30"`
	Nationality      string          `json:"nationality" validate:"required,max=40"`
	Address          *AddressRequest `json:"address" validate:"required"`
}

// LesseeRequest only needs the tax id when the lessee is already registered;
// everything else is required once the lookup misses.
type LesseeRequest struct {
	LegalName string          `json:"legal_name" validate:"max=150"`
	TaxID     string          `json:"tax_id" validate:"required,cnpj"`
	Address   *AddressRequest `json:"address"`
	Admin     *PartyRequest   `json:"admin"`
}

type MachineRequest struct {
	Name         string  `json:"name" validate:"max=120"`
	SerialNumber string  `json:"serial_number" validate:"required,nospaces,max=60"`
	MonthlyRate  float64 `json:"monthly_rate" validate:"gte=0"`
}

type TermsRequest struct {
	LeaseTermMonths     int     `json:"lease_term_months" validate:"required,gt=0,lte=120"`
	PickupDate          string  `json:"pickup_date" validate:"required,datetime=2006-01-02"`
	MonthlyValue        float64 `json:"monthly_value" validate:"gte=0"`
	DueDate             string  `json:"due_date" validate:"required,datetime=2006-01-02"`
	LateFeePercent      float64 `json:"late_fee_percent" validate:"gte=0,lte=100"`
	LateInterestPercent float64 `json:"late_interest_percent" validate:"gte=0,lte=100"`
	TransferNotice      string  `json:"transfer_notice" validate:"max=200"`
	ReturnDeadline      string  `json:"return_deadline" validate:"max=60"`
	VenueCity           string  `json:"venue_city" validate:"required,max=80"`
	ContractDate        string  `json:"contract_date" validate:"required,datetime=2006-01-02"`
}

type ContractRequest struct {
	LessorAdmin *PartyRequest   `json:"lessor_admin" validate:"required"`
	Lessee      *LesseeRequest  `json:"lessee" validate:"required"`
	Machine     *MachineRequest `json:"machine" validate:"required"`
	Terms       *TermsRequest   `json:"terms" validate:"required"`
}

type CreatedRecordResponse struct {
	Step int    `json:"step"`
	Slot string `json:"slot"`
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

type ContractResponse struct {
	RunID      string                   `json:"run_id"`
	ContractID string                   `json:"contract_id"`
	IDs        map[string]string        `json:"ids"`
	Created    []*CreatedRecordResponse `json:"created"`
	Reused     map[string]string        `json:"reused"`
	Document   *registration.Document   `json:"document"`
}

type RunStepResponse struct {
	Step     int    `json:"step"`
	Slot     string `json:"slot"`
	Kind     string `json:"kind"`
	RecordID string `json:"record_id,omitempty"`
	Reused   bool   `json:"reused"`
}

type RunResponse struct {
	ID         string             `json:"id"`
	Status     string             `json:"status"`
	ContractID string             `json:"contract_id,omitempty"`
	FailedStep *int               `json:"failed_step,omitempty"`
	FailedKind string             `json:"failed_kind,omitempty"`
	Error      string             `json:"error,omitempty"`
	Steps      []*RunStepResponse `json:"steps"`
	CreatedAt  string             `json:"created_at"`
	UpdatedAt  string             `json:"updated_at"`
}
