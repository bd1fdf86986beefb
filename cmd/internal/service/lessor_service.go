package service

import (
	"context"
	"encoding/json"
	"errors"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/registration"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/apierror"
	"strings"
	"time"

	"github.com/labstack/gommon/log"
)

type LessorContextRepository interface {
	FindBySub(sub string) (*entity.LessorContext, error)
	Save(lessor *entity.LessorContext) error
}

// LessorService loads the signed-in user's lessor company and address and
// keeps them cached locally for TTL.
type LessorService struct {
	Repo     LessorContextRepository
	Invoker  commands.Invoker
	Resolver *registration.Resolver
	TTL      time.Duration
}

func NewLessorService(repo LessorContextRepository, invoker commands.Invoker, ttl time.Duration) *LessorService {
	return &LessorService{
		Repo:     repo,
		Invoker:  invoker,
		Resolver: registration.NewResolver(invoker),
		TTL:      ttl,
	}
}

func (s *LessorService) GetLessor(ctx context.Context, sub string) (*contract.LessorResponse, apierror.ErrorResponse) {
	lessor, apierr := s.Load(ctx, sub)
	if apierr != nil {
		return nil, apierr
	}
	return toLessorResponse(lessor), nil
}

func (s *LessorService) Load(ctx context.Context, sub string) (*entity.LessorContext, apierror.ErrorResponse) {
	cached, err := s.Repo.FindBySub(sub)
	if err != nil {
		log.Errorf("failed to read cached lessor for %s: %v", sub, err)
		return nil, apierror.InternalServerError
	}

	if cached != nil && !s.expired(cached) {
		return cached, nil
	}

	lessor, err := s.fetch(ctx, sub)
	if err != nil {
		return nil, lessorError(sub, err)
	}

	if err = s.Repo.Save(lessor); err != nil {
		log.Errorf("failed to cache lessor for %s: %v", sub, err)
	}
	return lessor, nil
}

func (s *LessorService) expired(l *entity.LessorContext) bool {
	return utils.NowUTC()-l.CachedAt > s.TTL.Milliseconds()
}

// fetch follows user -> lessor tax id -> lessor company -> company address.
// Every hop has to succeed; a lessor without its address is unusable.
func (s *LessorService) fetch(ctx context.Context, sub string) (*entity.LessorContext, error) {
	raw, err := s.Invoker.Invoke(ctx, commands.OpUserTaxID, commands.Args{"user_id": sub})
	if err == nil {
		var taxID string
		taxID, err = decodeTaxID(raw)
		if err == nil {
			return s.fetchCompany(ctx, sub, taxID)
		}
	}
	return nil, &registration.ResolutionFailed{Kind: registration.KindLessorCompany, Key: sub, Cause: err}
}

func (s *LessorService) fetchCompany(ctx context.Context, sub, taxID string) (*entity.LessorContext, error) {
	company, err := s.Resolver.LookupCompany(ctx, entity.RoleLessor, taxID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, &registration.ResolutionFailed{Kind: registration.KindLessorCompany, Key: taxID, Cause: commands.ErrNotFound}
	}
	if company.AddressID == "" {
		return nil, &registration.ResolutionFailed{Kind: registration.KindAddress, Key: company.ID, Cause: commands.ErrNotFound}
	}

	address, err := s.Resolver.LookupAddress(ctx, company.AddressID)
	if err != nil {
		return nil, err
	}

	return &entity.LessorContext{
		UserSub:           sub,
		LessorID:          company.ID,
		TaxID:             company.TaxID,
		LegalName:         company.LegalName,
		BankName:          company.BankName,
		AccountNumber:     company.AccountNumber,
		BranchNumber:      company.BranchNumber,
		AddressID:         company.AddressID,
		AddressStreet:     address.Street,
		AddressNumber:     address.Number,
		AddressComplement: address.Complement,
		AddressCity:       address.City,
		AddressState:      address.State,
		AddressPostalCode: address.PostalCode,
		CachedAt:          utils.NowUTC(),
	}, nil
}

// decodeTaxID accepts "11444777000161" or {"tax_id": "..."}.
func decodeTaxID(raw json.RawMessage) (string, error) {
	if commands.IsEmpty(raw) {
		return "", commands.ErrNotFound
	}

	var taxID string
	if err := json.Unmarshal(raw, &taxID); err != nil {
		var wrapper struct {
			TaxID string `json:"tax_id"`
		}
		if err = json.Unmarshal(raw, &wrapper); err != nil {
			return "", err
		}
		taxID = wrapper.TaxID
	}

	taxID = utils.OnlyDigits(strings.TrimSpace(taxID))
	if taxID == "" {
		return "", commands.ErrNotFound
	}
	return taxID, nil
}

func lessorError(sub string, err error) apierror.ErrorResponse {
	if errors.Is(err, commands.ErrNotFound) {
		var resolution *registration.ResolutionFailed
		if errors.As(err, &resolution) && resolution.Kind == registration.KindAddress {
			log.Warnf("lessor of %s points to a missing address: %v", sub, err)
			return apierror.LessorAddressError
		}
		log.Warnf("no lessor registered for %s: %v", sub, err)
		return apierror.LessorNotFoundError
	}

	log.Errorf("failed to load lessor for %s: %v", sub, err)
	return apierror.RemoteStoreError
}

func toLessorResponse(l *entity.LessorContext) *contract.LessorResponse {
	address := l.Address()
	company := l.Company()
	return &contract.LessorResponse{
		ID:            company.ID,
		LegalName:     company.LegalName,
		TaxID:         company.TaxID,
		BankName:      company.BankName,
		AccountNumber: company.AccountNumber,
		BranchNumber:  company.BranchNumber,
		Address: &contract.AddressResponse{
			ID:         address.ID,
			Street:     address.Street,
			Number:     address.Number,
			Complement: address.Complement,
			City:       address.City,
			State:      address.State,
			PostalCode: address.PostalCode,
		},
		CachedAt: utils.FormatEpoch(l.CachedAt),
	}
}
