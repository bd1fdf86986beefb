package contract

type RegistryCompanyResponse struct {
	TaxID     string                   `json:"tax_id"`
	LegalName string                   `json:"legal_name"`
	TradeName string                   `json:"trade_name"`
	Status    string                   `json:"status"`
	Address   *RegistryAddressResponse `json:"address"`
	Cached    bool                     `json:"cached"`
}

type RegistryAddressResponse struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
}
