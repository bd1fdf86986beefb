package service

import (
	"context"
	"errors"
	"github.com/labstack/gommon/log"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/minhareceita"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/apierror"
)

type RegistryCompanyRepository interface {
	Save(company *entity.RegistryCompany) error
	FindByTaxID(taxID string) (*entity.RegistryCompany, error)
}

type RegistryClient interface {
	GetByCNPJ(ctx context.Context, cnpj string) (*entity.RegistryCompany, error)
}

// RegistryService prefills the lessee form from the public company registry.
type RegistryService struct {
	Client      RegistryClient
	CompanyRepo RegistryCompanyRepository
}

func NewRegistryService(client RegistryClient, companyRepo RegistryCompanyRepository) *RegistryService {
	return &RegistryService{
		Client:      client,
		CompanyRepo: companyRepo,
	}
}

func (s *RegistryService) GetCompanyByCNPJ(ctx context.Context, cnpj string) (*contract.RegistryCompanyResponse, apierror.ErrorResponse) {
	cnpj = utils.OnlyDigits(cnpj)
	if !utils.IsCNPJValid(cnpj) {
		return nil, apierror.InvalidCNPJError
	}

	company, fromCache, err := s.findCompany(ctx, cnpj)
	if err != nil {
		return nil, err
	}
	return toRegistryCompanyResp(company, fromCache), nil
}

// findCompany is a utility function that will try to resolve the CNPJ into a company.
// It returns the company, a boolean (true = cached, false = API fetch) and a possible error response.
func (s *RegistryService) findCompany(ctx context.Context, cnpj string) (*entity.RegistryCompany, bool, apierror.ErrorResponse) {
	cached, err := s.CompanyRepo.FindByTaxID(cnpj)
	if err != nil {
		log.Errorf("failed to find registry company by cnpj %s: %v", cnpj, err)
		return nil, false, apierror.InternalServerError
	}

	if cached != nil {
		if cached.Found {
			return cached, true, nil
		}
		return nil, false, apierror.NotFoundError
	}

	// Cache miss
	company, apierr := s.fetchFromAPI(ctx, cnpj)
	if apierr != nil {
		return nil, false, apierr
	}

	if err = s.CompanyRepo.Save(company); err != nil {
		// The lookup itself worked, only the cache did not.
		log.Errorf("failed to save registry cache for CNPJ %s: %v", cnpj, err)
	}
	return company, false, nil
}

func (s *RegistryService) fetchFromAPI(ctx context.Context, cnpj string) (*entity.RegistryCompany, apierror.ErrorResponse) {
	company, err := s.Client.GetByCNPJ(ctx, cnpj)
	if err != nil {
		if errors.Is(err, minhareceita.ErrNotFound) {
			s.cacheNegativeResult(cnpj)
			return nil, apierror.NotFoundError
		}
		log.Errorf("failed to fetch registry company by cnpj %s: %v", cnpj, err)
		return nil, apierror.RegistryUnavailableError
	}

	company.TaxID = cnpj
	company.Found = true
	company.CachedAt = utils.NowUTC()
	return company, nil
}

func (s *RegistryService) cacheNegativeResult(cnpj string) {
	empty := &entity.RegistryCompany{
		TaxID:    cnpj,
		Found:    false,
		CachedAt: utils.NowUTC(),
	}
	if err := s.CompanyRepo.Save(empty); err != nil {
		log.Warnf("failed to cache missing CNPJ %s: %v", cnpj, err)
	}
}

func toRegistryCompanyResp(c *entity.RegistryCompany, cached bool) *contract.RegistryCompanyResponse {
	return &contract.RegistryCompanyResponse{
		TaxID:     c.TaxID,
		LegalName: c.LegalName,
		TradeName: c.TradeName,
		Status:    string(c.RegStatus),
		Address: &contract.RegistryAddressResponse{
			Street:       c.AddressStreet,
			Number:       c.AddressNumber,
			Complement:   c.AddressComplement,
			Neighborhood: c.AddressNeighborhood,
			City:         c.AddressCity,
			State:        c.AddressState,
			PostalCode:   c.AddressPostalCode,
		},
		Cached: cached,
	}
}
