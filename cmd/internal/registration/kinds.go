// Package registration turns one "register a rental contract" request into the
// ordered chain of record creations the remote store needs, and runs it.
//
// The remote store has no transactions. Every step either publishes an id that
// is already known (a reused company or machine) or creates exactly one record,
// and a run stops at the first failure without undoing anything.
package registration

import "rentalcontracts/cmd/internal/domain/entity"

// Kind is the type of record a step deals with.
type Kind string

const (
	KindAddress          Kind = "ADDRESS"
	KindResponsibleParty Kind = "RESPONSIBLE_PARTY"
	KindLessorCompany    Kind = "LESSOR_COMPANY"
	KindLesseeCompany    Kind = "LESSEE_COMPANY"
	KindMachine          Kind = "MACHINE"
	KindContract         Kind = "CONTRACT"
)

func companyKind(role entity.CompanyRole) Kind {
	if role == entity.RoleLessor {
		return KindLessorCompany
	}
	return KindLesseeCompany
}

// Slot names one id produced during a run. Later steps refer to slots, never
// to the step that filled them.
type Slot string

const (
	// Seeded from the lessor context, never created by a run.
	SlotLessor        Slot = "lessor"
	SlotLessorAddress Slot = "lessor_address"

	SlotLessorAdminAddress Slot = "lessor_admin_address"
	SlotLessorAdmin        Slot = "lessor_admin"
	SlotLesseeAdminAddress Slot = "lessee_admin_address"
	SlotLesseeAdmin        Slot = "lessee_admin"
	SlotLesseeAddress      Slot = "lessee_address"
	SlotLessee             Slot = "lessee"
	SlotMachine            Slot = "machine"
	SlotContract           Slot = "contract"
)
