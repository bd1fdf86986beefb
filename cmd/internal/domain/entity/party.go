package entity

// ResponsibleParty is the administrator or partner allowed to sign for a company.
// Each party owns exactly one address, which is never shared with another party.
type ResponsibleParty struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	NationalID       string `json:"national_id"`
	IssuingAuthority string `json:"issuing_authority"`
	MaritalStatus    string `json:"marital_status"`
	Nationality      string `json:"nationality"`
	AddressID        string `json:"address_id"`
}
