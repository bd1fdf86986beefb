package apierror

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"net/http"
	"strings"
)

// ErrorResponse abstracts all API error responses to the user.
//
// This interface does not implement `error`, since its only purpose
// is to be used for API responses and not for logging circumstances.
//
// In general, the whole ErrorResponse can be sent for serialization.
type ErrorResponse interface {
	// Code is the HTTP status code to be returned.
	Code() int
}

type APIError struct {
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (a *APIError) Code() int {
	return a.Status
}

type StructuredError struct {
	Errors map[string][]string `json:"errors"`
	Status int                 `json:"-"`
}

func (s *StructuredError) Code() int {
	return s.Status
}

func (s *StructuredError) Add(field, problem string) {
	s.Errors[field] = append(s.Errors[field], problem)
}

// CreatedRecord is a record that made it into the remote store before a
// registration stopped.
type CreatedRecord struct {
	Step int    `json:"step"`
	Slot string `json:"slot"`
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// RegistrationError is returned when a contract registration stops midway.
// Message is the underlying failure and is shown to the user as is.
type RegistrationError struct {
	Message string          `json:"message"`
	RunID   string          `json:"run_id,omitempty"`
	Phase   string          `json:"phase"`
	Step    *int            `json:"step,omitempty"`
	Slot    string          `json:"slot,omitempty"`
	Kind    string          `json:"kind,omitempty"`
	Created []CreatedRecord `json:"created"`
	Status  int             `json:"-"`
}

func (r *RegistrationError) Code() int {
	return r.Status
}

var (
	MalformedJSONError  = NewSimple(400, "Malformed JSON body")
	InternalServerError = NewSimple(500, "Internal server error")

	NotFoundError  = NewSimple(404, "Resource not found")
	InvalidIDError = NewSimple(400, "The provided ID is invalid, IDs are usually int64 > 0")

	/*
	 * Used for authentications
	 */
	UnauthorizedError     = NewSimple(401, "Unauthorized")
	InvalidAuthTokenError = NewSimple(401, "Invalid or expired authentication token")

	/*
	 * Used for registrations
	 */
	LessorNotFoundError  = NewSimple(404, "No lessor company is registered for this user")
	LessorAddressError   = NewSimple(409, "The lessor company has no registered address")
	MachineNotFoundError = NewSimple(404, "Machine not found")
	RunNotFoundError     = NewSimple(404, "Registration run not found")
	RemoteStoreError     = NewSimple(502, "The contract store could not be reached, try again later")
	RatesNotFoundError   = NewSimple(404, "No rental rates are registered for this machine")

	InvalidCNPJError         = NewSimple(400, "The provided CNPJ is invalid")
	RegistryUnavailableError = NewSimple(502, "The company registry could not be reached, try again later")
)

func FromValidationError(err error) *StructuredError {
	var ve validator.ValidationErrors
	ok := errors.As(err, &ve)
	if !ok {
		return nil
	}

	problems := map[string][]string{}
	for _, fe := range ve {
		field := fieldPath(fe)

		switch fe.Tag() {
		case "required":
			problems[field] = append(problems[field], "This field is required")
		case "min":
			problems[field] = append(problems[field], "Value is too short, min: "+fe.Param())
		case "max":
			problems[field] = append(problems[field], "Value is too long, max: "+fe.Param())
		case "gt", "gte":
			problems[field] = append(problems[field], "Value must be greater than "+fe.Param())
		case "cnpj":
			problems[field] = append(problems[field], "Value must be a valid CNPJ")
		case "cpf":
			problems[field] = append(problems[field], "Value must be a valid CPF")
		case "uf":
			problems[field] = append(problems[field], "Value must be a two-letter Brazilian state")
		case "cep":
			problems[field] = append(problems[field], "Value must be a valid postal code (CEP)")
		case "nospaces":
			problems[field] = append(problems[field], "Value must not contain whitespaces")
		case "datetime":
			problems[field] = append(problems[field], "Value must be a date formatted as "+fe.Param())

		default:
			problems[field] = append(problems[field], "Invalid value provided")
		}
	}

	return &StructuredError{
		Errors: problems,
		Status: http.StatusBadRequest,
	}
}

// fieldPath turns "ContractRequest.Lessee.Admin.Name" into "lessee.admin.name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	if ns == "" {
		ns = fe.Field()
	}
	return strings.ToLower(ns)
}

func NewSimple(status int, msg string, args ...any) *APIError {
	if len(args) > 0 {
		msg = fmt.Sprintf(msg, args...)
	}
	return &APIError{Status: status, Message: msg}
}

func NewStructured(code int) *StructuredError {
	return &StructuredError{
		Errors: make(map[string][]string),
		Status: code,
	}
}

func NewInvalidParamTypeError(name, dataType string) *APIError {
	return NewSimple(http.StatusBadRequest, "Parameter '%s' has invalid type, expected: %s", name, dataType)
}
