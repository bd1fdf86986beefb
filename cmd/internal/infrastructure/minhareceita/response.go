package minhareceita

import (
	"rentalcontracts/cmd/internal/domain/entity"
	"strings"
)

type companyResponse struct {
	CNPJ               string `json:"cnpj"`
	LegalName          string `json:"razao_social"`
	TradeName          string `json:"nome_fantasia"`
	RegistrationStatus string `json:"descricao_situacao_cadastral"`

	AddressType         string `json:"descricao_tipo_de_logradouro"`
	AddressStreetName   string `json:"logradouro"`
	AddressNumber       string `json:"numero"`
	AddressComplement   string `json:"complemento"`
	AddressNeighborhood string `json:"bairro"`
	AddressCity         string `json:"municipio"`
	AddressState        string `json:"uf"`
	AddressPostalCode   string `json:"cep"`
}

func (c *companyResponse) ToDomain() *entity.RegistryCompany {
	street := strings.TrimSpace(c.AddressType + " " + c.AddressStreetName)

	return &entity.RegistryCompany{
		TaxID:               c.CNPJ,
		Found:               true,
		LegalName:           c.LegalName,
		TradeName:           c.TradeName,
		RegStatus:           translateStatus(c.RegistrationStatus),
		AddressStreet:       street,
		AddressNumber:       c.AddressNumber,
		AddressComplement:   c.AddressComplement,
		AddressNeighborhood: c.AddressNeighborhood,
		AddressCity:         c.AddressCity,
		AddressState:        strings.ToUpper(c.AddressState),
		AddressPostalCode:   c.AddressPostalCode,
	}
}

func translateStatus(status string) entity.RegStatus {
	switch strings.ToUpper(status) {
	case "ATIVA":
		return entity.StatusActive
	case "BAIXADA":
		return entity.StatusClosed
	case "SUSPENSA":
		return entity.StatusSuspended
	case "INAPTA":
		return entity.StatusUnfit
	default:
		return entity.StatusUnknown
	}
}
