package commands

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rpcServer(t *testing.T, handle func(req rpcRequest) (int, string)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req rpcRequest
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "2.0", req.JSONRPC)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		status, payload := handle(req)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientInvoke(t *testing.T) {
	t.Run("ok: result is returned raw", func(t *testing.T) {
		srv := rpcServer(t, func(req rpcRequest) (int, string) {
			assert.Equal(t, OpAddressCreate, req.Method)
			assert.Equal(t, "Rua A", req.Params["street"])
			return http.StatusOK, `{"jsonrpc":"2.0","id":1,"result":"addr-1"}`
		})

		raw, err := NewClient(srv.URL, time.Second).Invoke(context.Background(), OpAddressCreate, Args{"street": "Rua A"})
		require.NoError(t, err)

		id, err := DecodeID(raw)
		require.NoError(t, err)
		assert.Equal(t, "addr-1", id)
	})

	t.Run("ok: request ids increase", func(t *testing.T) {
		var seen []uint64
		srv := rpcServer(t, func(req rpcRequest) (int, string) {
			seen = append(seen, req.ID)
			return http.StatusOK, `{"jsonrpc":"2.0","result":null}`
		})

		c := NewClient(srv.URL, time.Second)
		for i := 0; i < 3; i++ {
			_, err := c.Invoke(context.Background(), OpUserTaxID, nil)
			require.NoError(t, err)
		}
		assert.Equal(t, []uint64{1, 2, 3}, seen)
	})

	t.Run("err: not found code matches ErrNotFound", func(t *testing.T) {
		srv := rpcServer(t, func(rpcRequest) (int, string) {
			return http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32004,"message":"company not found"}}`
		})

		_, err := NewClient(srv.URL, time.Second).Invoke(context.Background(), OpCompanyLookupByTaxID, Args{"tax_id": "1"})
		assert.ErrorIs(t, err, ErrNotFound)

		var remote *RemoteError
		require.True(t, errors.As(err, &remote))
		assert.Equal(t, "company not found", remote.Message)
	})

	t.Run("err: http 404 is a transport failure", func(t *testing.T) {
		srv := rpcServer(t, func(rpcRequest) (int, string) {
			return http.StatusNotFound, ""
		})

		_, err := NewClient(srv.URL, time.Second).Invoke(context.Background(), OpMachineLookupBySerial, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "404")
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("err: other remote errors are not ErrNotFound", func(t *testing.T) {
		srv := rpcServer(t, func(rpcRequest) (int, string) {
			return http.StatusOK, `{"jsonrpc":"2.0","id":1,"error":{"code":-32603,"message":"Sócio já está cadastrado"}}`
		})

		_, err := NewClient(srv.URL, time.Second).Invoke(context.Background(), OpPartyCreate, nil)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
		assert.Contains(t, err.Error(), "Sócio já está cadastrado")
	})

	t.Run("err: unexpected status", func(t *testing.T) {
		srv := rpcServer(t, func(rpcRequest) (int, string) {
			return http.StatusBadGateway, "upstream down"
		})

		_, err := NewClient(srv.URL, time.Second).Invoke(context.Background(), OpContractCreate, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
		assert.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("err: unreachable endpoint", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := NewClient(url, time.Second).Invoke(context.Background(), OpAddressCreate, nil)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNotFound))
	})
}

func TestDecodeID(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
		err  error
	}{
		{name: "bare string", raw: `"abc"`, want: "abc"},
		{name: "object with string id", raw: `{"id":"abc"}`, want: "abc"},
		{name: "object with numeric id", raw: `{"id":42}`, want: "42"},
		{name: "null", raw: `null`, err: ErrEmptyID},
		{name: "blank string", raw: `"  "`, err: ErrEmptyID},
		{name: "object without id", raw: `{"name":"x"}`, err: ErrEmptyID},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := DecodeID(json.RawMessage(tc.raw))
			if tc.err != nil {
				assert.ErrorIs(t, err, tc.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestDecodeFirst(t *testing.T) {
	rec, err := DecodeFirst[CompanyRecord](json.RawMessage(`[{"id":"c-1","role":"locatario","tax_id":"11222333000181"}]`))
	require.NoError(t, err)
	assert.Equal(t, "c-1", rec.ID)
	assert.Equal(t, "LESSEE", string(rec.ToDomain().Role))

	_, err = DecodeFirst[CompanyRecord](json.RawMessage(`[]`))
	assert.ErrorIs(t, err, ErrNotFound)

	record, err := DecodeFirst[MachineRecord](json.RawMessage(`{"id":"m-1","monthly_rate":1500.5}`))
	require.NoError(t, err)
	machine, err := record.ToDomain()
	require.NoError(t, err)
	assert.Equal(t, 1500.5, machine.MonthlyRate)
}

func TestMachineRecordToDomain(t *testing.T) {
	t.Run("ok: missing rate is zero", func(t *testing.T) {
		machine, err := (&MachineRecord{ID: "m-1"}).ToDomain()
		require.NoError(t, err)
		assert.Zero(t, machine.MonthlyRate)
	})

	t.Run("err: malformed rate", func(t *testing.T) {
		_, err := (&MachineRecord{ID: "m-1", MonthlyRate: json.Number("1.500,00")}).ToDomain()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid monthly rate")
	})
}

func TestDecodeFloat(t *testing.T) {
	f, err := DecodeFloat(json.RawMessage(`"1.234,5"`))
	assert.Error(t, err)
	assert.Zero(t, f)

	f, err = DecodeFloat(json.RawMessage(`"99,90"`))
	require.NoError(t, err)
	assert.Equal(t, 99.9, f)

	f, err = DecodeFloat(json.RawMessage(`12.5`))
	require.NoError(t, err)
	assert.Equal(t, 12.5, f)
}
