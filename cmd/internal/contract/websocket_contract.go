package contract

type EventType string

const (
	EventRegistrationStep      EventType = "REGISTRATION_STEP"
	EventRegistrationFailed    EventType = "REGISTRATION_FAILED"
	EventRegistrationSucceeded EventType = "REGISTRATION_SUCCEEDED"
)

// OutgoingSocketMessage is what we send to the Client
type OutgoingSocketMessage struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
