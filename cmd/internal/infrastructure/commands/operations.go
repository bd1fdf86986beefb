package commands

import (
	"context"
	"encoding/json"
)

// Operations understood by the remote store.
const (
	OpAddressLookupByID     = "address-lookup-by-id"
	OpAddressCreate         = "address-create"
	OpPartyCreate           = "party-create"
	OpCompanyLookupByTaxID  = "company-lookup-by-tax-id"
	OpCompanyCreate         = "company-create"
	OpMachineLookupBySerial = "machine-lookup-by-serial"
	OpMachineCreate         = "machine-create"
	OpContractCreate        = "contract-create"
	OpMachineRentValue      = "machine-rent-value"
	OpUserTaxID             = "user-tax-id"
)

// Args is the flat argument bag sent along with an operation.
type Args map[string]any

// Clone returns a shallow copy, so callers can add fields without touching the original.
func (a Args) Clone() Args {
	out := make(Args, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Invoker calls a named operation on the remote store.
//
// Lookups that match nothing must fail with an error wrapping ErrNotFound (or
// return an empty result); any other error means the call itself failed.
type Invoker interface {
	Invoke(ctx context.Context, operation string, args Args) (json.RawMessage, error)
}

// InvokerFunc adapts a plain function to the Invoker interface.
type InvokerFunc func(ctx context.Context, operation string, args Args) (json.RawMessage, error)

func (f InvokerFunc) Invoke(ctx context.Context, operation string, args Args) (json.RawMessage, error) {
	return f(ctx, operation, args)
}
