package registration

import (
	"context"
	"rentalcontracts/cmd/internal/domain/entity"
)

// Document is everything a contract renderer needs, denormalised so that it
// never has to go back to the store.
type Document struct {
	ContractID string          `json:"contract_id"`
	IDs        map[Slot]string `json:"ids"`

	Lessor        entity.Company          `json:"lessor"`
	LessorAddress entity.Address          `json:"lessor_address"`
	LessorAdmin   entity.ResponsibleParty `json:"lessor_admin"`

	Lessee        entity.Company          `json:"lessee"`
	LesseeAddress entity.Address          `json:"lessee_address"`
	LesseeAdmin   entity.ResponsibleParty `json:"lessee_admin"`

	Machine  entity.Machine  `json:"machine"`
	Contract entity.Contract `json:"contract"`
}

// DocumentSink receives the document of every successful registration.
type DocumentSink interface {
	Publish(ctx context.Context, doc *Document) error
}

func assembleDocument(lessor *entity.LessorContext, res *Resolutions, ids map[Slot]string) *Document {
	doc := &Document{
		ContractID:    ids[SlotContract],
		IDs:           ids,
		Lessor:        lessor.Company(),
		LessorAddress: lessor.Address(),
	}

	if res.LessorAdmin.Party != nil {
		doc.LessorAdmin = *res.LessorAdmin.Party
	}
	doc.LessorAdmin.ID = ids[SlotLessorAdmin]
	doc.LessorAdmin.AddressID = ids[SlotLessorAdminAddress]
	doc.Lessor.PartyID = ids[SlotLessorAdmin]

	if res.Lessee.Company != nil {
		doc.Lessee = *res.Lessee.Company
	}
	doc.Lessee.ID = ids[SlotLessee]
	doc.Lessee.AddressID = ids[SlotLesseeAddress]
	doc.Lessee.PartyID = ids[SlotLesseeAdmin]

	switch {
	case res.Lessee.Address != nil:
		doc.LesseeAddress = *res.Lessee.Address
	case res.LesseeAddress.Address != nil:
		doc.LesseeAddress = *res.LesseeAddress.Address
	}
	doc.LesseeAddress.ID = ids[SlotLesseeAddress]

	if res.LesseeAdmin.Party != nil {
		doc.LesseeAdmin = *res.LesseeAdmin.Party
		doc.LesseeAdmin.AddressID = ids[SlotLesseeAdminAddress]
	}
	doc.LesseeAdmin.ID = ids[SlotLesseeAdmin]

	if res.Machine.Machine != nil {
		doc.Machine = *res.Machine.Machine
	}
	doc.Machine.ID = ids[SlotMachine]

	doc.Contract = contractFromPayload(res.Contract.Payload)
	doc.Contract.ID = ids[SlotContract]
	doc.Contract.LesseeID = ids[SlotLessee]
	doc.Contract.LessorID = ids[SlotLessor]
	doc.Contract.MachineID = ids[SlotMachine]
	doc.Contract.PickupAddressID = ids[SlotLessorAddress]
	return doc
}

func contractFromPayload(p map[string]any) entity.Contract {
	str := func(key string) string {
		s, _ := p[key].(string)
		return s
	}
	num := func(key string) float64 {
		f, _ := p[key].(float64)
		return f
	}
	months, _ := p["lease_term_months"].(int)

	return entity.Contract{
		LeaseTermMonths:     months,
		PickupDate:          str("pickup_date"),
		MonthlyValue:        num("monthly_value"),
		DueDate:             str("due_date"),
		LateFeePercent:      num("late_fee_percent"),
		LateInterestPercent: num("late_interest_percent"),
		TransferNotice:      str("transfer_notice"),
		ReturnDeadline:      str("return_deadline"),
		VenueCity:           str("venue_city"),
		ContractDate:        str("contract_date"),
	}
}
