package entity

// Contract is created exactly once per registration, after every id it
// references has been resolved.
type Contract struct {
	ID                  string  `json:"id"`
	LesseeID            string  `json:"lessee_id"`
	LessorID            string  `json:"lessor_id"`
	MachineID           string  `json:"machine_id"`
	PickupAddressID     string  `json:"pickup_address_id"`
	LeaseTermMonths     int     `json:"lease_term_months"`
	PickupDate          string  `json:"pickup_date"`
	MonthlyValue        float64 `json:"monthly_value"`
	DueDate             string  `json:"due_date"`
	LateFeePercent      float64 `json:"late_fee_percent"`
	LateInterestPercent float64 `json:"late_interest_percent"`
	TransferNotice      string  `json:"transfer_notice"`
	ReturnDeadline      string  `json:"return_deadline"`
	VenueCity           string  `json:"venue_city"`
	ContractDate        string  `json:"contract_date"`
}
