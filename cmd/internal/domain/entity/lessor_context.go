package entity

// LessorContext is the signed-in user's lessor company together with its
// registered address. It is cached locally per user so that every page does
// not have to hit the remote store again.
type LessorContext struct {
	UserSub string `gorm:"primaryKey"`

	LessorID      string `gorm:"not null"`
	TaxID         string `gorm:"not null;index"`
	LegalName     string `gorm:"not null"`
	BankName      string
	AccountNumber string
	BranchNumber  string

	AddressID         string `gorm:"not null"`
	AddressStreet     string
	AddressNumber     string
	AddressComplement string
	AddressCity       string
	AddressState      string
	AddressPostalCode string

	CachedAt int64 `gorm:"not null;autoUpdateTime:false"`
}

func (l *LessorContext) Address() Address {
	return Address{
		ID:         l.AddressID,
		Street:     l.AddressStreet,
		Number:     l.AddressNumber,
		Complement: l.AddressComplement,
		City:       l.AddressCity,
		State:      l.AddressState,
		PostalCode: l.AddressPostalCode,
	}
}

func (l *LessorContext) Company() Company {
	return Company{
		ID:            l.LessorID,
		Role:          RoleLessor,
		LegalName:     l.LegalName,
		TaxID:         l.TaxID,
		BankName:      l.BankName,
		AccountNumber: l.AccountNumber,
		BranchNumber:  l.BranchNumber,
		AddressID:     l.AddressID,
	}
}
