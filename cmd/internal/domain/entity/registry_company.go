package entity

type RegStatus string

const (
	StatusActive    RegStatus = "ACTIVE"
	StatusClosed    RegStatus = "CLOSED"
	StatusSuspended RegStatus = "SUSPENDED"
	StatusUnfit     RegStatus = "UNFIT"
	StatusUnknown   RegStatus = "UNKNOWN"
)

// RegistryCompany is a company as published by the federal revenue registry.
// It only prefills the lessee form; the remote store stays the source of truth.
//
// Lookups that found nothing are cached too (Found = false), so a mistyped
// tax id does not hit the registry again until the entry expires.
type RegistryCompany struct {
	TaxID     string `gorm:"primaryKey"`
	Found     bool   `gorm:"not null"`
	LegalName string
	TradeName string
	RegStatus RegStatus

	AddressStreet       string
	AddressNumber       string
	AddressComplement   string
	AddressNeighborhood string
	AddressCity         string
	AddressState        string
	AddressPostalCode   string

	CachedAt int64 `gorm:"not null;index"`
}
