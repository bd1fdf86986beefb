package service

import (
	"context"
	"errors"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/domain/sqlite/repository"
	"rentalcontracts/cmd/internal/infrastructure/minhareceita"
	"rentalcontracts/cmd/internal/utils/apierror"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	company *entity.RegistryCompany
	err     error
	calls   int
}

func (f *fakeRegistry) GetByCNPJ(context.Context, string) (*entity.RegistryCompany, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	c := *f.company
	return &c, nil
}

func TestRegistryService_GetCompanyByCNPJ(t *testing.T) {
	t.Run("ok: fetched then cached", func(t *testing.T) {
		client := &fakeRegistry{company: &entity.RegistryCompany{
			LegalName:   "Obras Horizonte Ltda",
			RegStatus:   entity.StatusActive,
			AddressCity: "Sorocaba",
		}}
		svc := NewRegistryService(client, repository.NewRegistryCompanyRepository(openDB(t)))

		resp, apierr := svc.GetCompanyByCNPJ(context.Background(), "11.222.333/0001-81")
		require.Nil(t, apierr)
		assert.Equal(t, "11222333000181", resp.TaxID)
		assert.Equal(t, "Sorocaba", resp.Address.City)
		assert.False(t, resp.Cached)

		resp, apierr = svc.GetCompanyByCNPJ(context.Background(), "11222333000181")
		require.Nil(t, apierr)
		assert.True(t, resp.Cached)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("err: invalid cnpj", func(t *testing.T) {
		client := &fakeRegistry{}
		svc := NewRegistryService(client, repository.NewRegistryCompanyRepository(openDB(t)))

		_, apierr := svc.GetCompanyByCNPJ(context.Background(), "11222333000182")
		assert.Equal(t, apierror.InvalidCNPJError, apierr)
		assert.Zero(t, client.calls)
	})

	t.Run("err: not found is cached", func(t *testing.T) {
		client := &fakeRegistry{err: minhareceita.ErrNotFound}
		svc := NewRegistryService(client, repository.NewRegistryCompanyRepository(openDB(t)))

		_, apierr := svc.GetCompanyByCNPJ(context.Background(), "11222333000181")
		assert.Equal(t, apierror.NotFoundError, apierr)
		_, apierr = svc.GetCompanyByCNPJ(context.Background(), "11222333000181")
		assert.Equal(t, apierror.NotFoundError, apierr)
		assert.Equal(t, 1, client.calls)
	})

	t.Run("err: registry down", func(t *testing.T) {
		client := &fakeRegistry{err: errors.New("503")}
		svc := NewRegistryService(client, repository.NewRegistryCompanyRepository(openDB(t)))

		_, apierr := svc.GetCompanyByCNPJ(context.Background(), "11222333000181")
		assert.Equal(t, apierror.RegistryUnavailableError, apierr)
	})
}
