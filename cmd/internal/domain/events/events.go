package events

import "rentalcontracts/cmd/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

// RegistrationStep is pushed after every step of a registration run.
type RegistrationStep struct {
	RunID    string `json:"run_id"`
	Step     int    `json:"step"`
	Total    int    `json:"total"`
	Slot     string `json:"slot"`
	Kind     string `json:"kind"`
	RecordID string `json:"record_id"`
	Reused   bool   `json:"reused"`
}

func (e *RegistrationStep) GetType() contract.EventType {
	return contract.EventRegistrationStep
}

type RegistrationFailed struct {
	RunID   string `json:"run_id"`
	Phase   string `json:"phase"`
	Step    *int   `json:"step,omitempty"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

func (e *RegistrationFailed) GetType() contract.EventType {
	return contract.EventRegistrationFailed
}

type RegistrationSucceeded struct {
	RunID      string `json:"run_id"`
	ContractID string `json:"contract_id"`
}

func (e *RegistrationSucceeded) GetType() contract.EventType {
	return contract.EventRegistrationSucceeded
}
