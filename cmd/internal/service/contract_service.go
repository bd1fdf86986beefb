package service

import (
	"context"
	"errors"
	"net/http"
	"rentalcontracts/cmd/internal/contract"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/infrastructure/commands"
	"rentalcontracts/cmd/internal/registration"
	"rentalcontracts/cmd/internal/utils"
	"rentalcontracts/cmd/internal/utils/apierror"
	"rentalcontracts/cmd/internal/utils/uid"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type Registrar interface {
	Register(
		ctx context.Context,
		snap registration.FormSnapshot,
		lessor *entity.LessorContext,
		observers ...registration.Observer,
	) (*registration.Outcome, error)
}

type LessorLoader interface {
	Load(ctx context.Context, sub string) (*entity.LessorContext, apierror.ErrorResponse)
}

type ProgressNotifier interface {
	Observer(runID int64, connID string) registration.Observer
}

type RunMetrics interface {
	Observer() registration.Observer
}

type DefaultContractService struct {
	Registrar Registrar
	Lessors   LessorLoader
	RunRepo   RunRepository
	Progress  ProgressNotifier
	Metrics   RunMetrics
	Sink      registration.DocumentSink
	Validate  *validator.Validate
}

func NewContractService(
	registrar Registrar,
	lessors LessorLoader,
	runRepo RunRepository,
	progress ProgressNotifier,
	metrics RunMetrics,
	sink registration.DocumentSink,
	validate *validator.Validate,
) *DefaultContractService {
	return &DefaultContractService{
		Registrar: registrar,
		Lessors:   lessors,
		RunRepo:   runRepo,
		Progress:  progress,
		Metrics:   metrics,
		Sink:      sink,
		Validate:  validate,
	}
}

func (s *DefaultContractService) RegisterContract(
	ctx context.Context,
	sub, connID string,
	req *contract.ContractRequest,
) (*contract.ContractResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := s.Validate.Struct(req); valerr != nil {
		if structured := apierror.FromValidationError(valerr); structured != nil {
			return nil, structured
		}
		return nil, apierror.MalformedJSONError
	}

	lessor, apierr := s.Lessors.Load(ctx, sub)
	if apierr != nil {
		return nil, apierr
	}

	journal, err := startRunJournal(s.RunRepo, uid.Generate(), sub)
	if err != nil {
		log.Errorf("failed to open registration run for %s: %v", sub, err)
		return nil, apierror.InternalServerError
	}
	runID := journal.run.ID

	observers := []registration.Observer{journal}
	if s.Progress != nil {
		observers = append(observers, s.Progress.Observer(runID, connID))
	}
	if s.Metrics != nil {
		observers = append(observers, s.Metrics.Observer())
	}

	log.Infof("run %d: registering contract of lessee %s, machine %s", runID, req.Lessee.TaxID, req.Machine.SerialNumber)
	outcome, err := s.Registrar.Register(ctx, toSnapshot(req), lessor, observers...)
	if err != nil {
		return nil, registrationError(runID, err)
	}

	log.Infof("run %d: contract %s registered, %d records created", runID, outcome.ContractID, len(outcome.Created))
	if s.Sink != nil && outcome.Document != nil {
		go s.publishDocument(context.WithoutCancel(ctx), runID, outcome.Document)
	}
	return toContractResponse(runID, outcome), nil
}

func (s *DefaultContractService) GetRun(sub string, id int64) (*contract.RunResponse, apierror.ErrorResponse) {
	run, err := s.RunRepo.FindByID(id, sub)
	if err != nil {
		log.Errorf("failed to fetch run %d: %v", id, err)
		return nil, apierror.InternalServerError
	}

	if run == nil {
		return nil, apierror.RunNotFoundError
	}
	return toRunResponse(run), nil
}

// publishDocument hands the document over to the renderer. The contract is
// already registered, so a failure here is only logged.
func (s *DefaultContractService) publishDocument(ctx context.Context, runID int64, doc *registration.Document) {
	if err := s.Sink.Publish(ctx, doc); err != nil {
		log.Errorf("run %d: failed to publish document of contract %s: %v", runID, doc.ContractID, err)
	}
}

func registrationError(runID int64, err error) apierror.ErrorResponse {
	var failed *registration.RegistrationFailed
	if !errors.As(err, &failed) {
		log.Errorf("run %d: unexpected registration error: %v", runID, err)
		return apierror.InternalServerError
	}

	status := registrationStatus(failed)
	if status >= http.StatusInternalServerError {
		log.Errorf("run %d: %v (%d records left behind)", runID, failed, len(failed.Created))
	} else {
		log.Warnf("run %d: %v", runID, failed)
	}

	resp := &apierror.RegistrationError{
		Message: failed.Message(),
		RunID:   uid.Format(runID),
		Phase:   string(failed.Phase),
		Slot:    string(failed.Slot),
		Kind:    string(failed.Kind),
		Created: make([]apierror.CreatedRecord, 0, len(failed.Created)),
		Status:  status,
	}
	if failed.Step >= 0 {
		step := failed.Step
		resp.Step = &step
	}
	for _, c := range failed.Created {
		resp.Created = append(resp.Created, apierror.CreatedRecord{
			Step: c.Step,
			Slot: string(c.Slot),
			Kind: string(c.Kind),
			ID:   c.ID,
		})
	}
	return resp
}

func registrationStatus(err error) int {
	var formErr *registration.IncompleteFormError
	var remote *commands.RemoteError
	switch {
	case errors.As(err, &formErr):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	case errors.As(err, &remote) && remote.Code == commands.CodeInvalidParams:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// failureMessage is what users get to read about a failed run.
func failureMessage(err error) string {
	if err == nil {
		return ""
	}

	var failed *registration.RegistrationFailed
	if errors.As(err, &failed) {
		return failed.Message()
	}
	return err.Error()
}

func toSnapshot(req *contract.ContractRequest) registration.FormSnapshot {
	snap := registration.FormSnapshot{
		LessorAdmin: toPartyForm(req.LessorAdmin),
		Lessee: registration.CompanyForm{
			LegalName: req.Lessee.LegalName,
			TaxID:     req.Lessee.TaxID,
			Address:   toAddressForm(req.Lessee.Address),
			Admin:     toPartyForm(req.Lessee.Admin),
		},
		Machine: registration.MachineForm{
			Name:         req.Machine.Name,
			SerialNumber: req.Machine.SerialNumber,
			MonthlyRate:  req.Machine.MonthlyRate,
		},
	}

	terms := req.Terms
	snap.Terms = registration.ContractTerms{
		LeaseTermMonths:     terms.LeaseTermMonths,
		PickupDate:          terms.PickupDate,
		MonthlyValue:        terms.MonthlyValue,
		DueDate:             terms.DueDate,
		LateFeePercent:      terms.LateFeePercent,
		LateInterestPercent: terms.LateInterestPercent,
		TransferNotice:      terms.TransferNotice,
		ReturnDeadline:      terms.ReturnDeadline,
		VenueCity:           terms.VenueCity,
		ContractDate:        terms.ContractDate,
	}
	return snap
}

func toPartyForm(p *contract.PartyRequest) registration.PartyForm {
	if p == nil {
		return registration.PartyForm{}
	}
	return registration.PartyForm{
		Name:             p.Name,
		NationalID:       p.NationalID,
		IssuingAuthority: p.IssuingAuthority,
		MaritalStatus:    p.MaritalStatus,
		Nationality:      p.Nationality,
		Address:          toAddressForm(p.Address),
	}
}

func toAddressForm(a *contract.AddressRequest) registration.AddressForm {
	if a == nil {
		return registration.AddressForm{}
	}
	return registration.AddressForm{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		City:       a.City,
		State:      a.State,
		PostalCode: a.PostalCode,
	}
}

func toContractResponse(runID int64, outcome *registration.Outcome) *contract.ContractResponse {
	resp := &contract.ContractResponse{
		RunID:      uid.Format(runID),
		ContractID: outcome.ContractID,
		IDs:        slotMap(outcome.IDs),
		Created:    make([]*contract.CreatedRecordResponse, 0, len(outcome.Created)),
		Reused:     slotMap(outcome.Reused),
		Document:   outcome.Document,
	}
	for _, c := range outcome.Created {
		resp.Created = append(resp.Created, &contract.CreatedRecordResponse{
			Step: c.Step,
			Slot: string(c.Slot),
			Kind: string(c.Kind),
			ID:   c.ID,
		})
	}
	return resp
}

func slotMap(in map[registration.Slot]string) map[string]string {
	out := make(map[string]string, len(in))
	for slot, id := range in {
		out[string(slot)] = id
	}
	return out
}

func toRunResponse(run *entity.RegistrationRun) *contract.RunResponse {
	resp := &contract.RunResponse{
		ID:         uid.Format(run.ID),
		Status:     string(run.Status),
		ContractID: run.ContractID,
		FailedStep: run.FailedStep,
		FailedKind: run.FailedKind,
		Error:      run.Error,
		Steps:      make([]*contract.RunStepResponse, 0, len(run.Steps)),
		CreatedAt:  utils.FormatEpoch(run.CreatedAt),
		UpdatedAt:  utils.FormatEpoch(run.UpdatedAt),
	}
	for _, s := range run.Steps {
		resp.Steps = append(resp.Steps, &contract.RunStepResponse{
			Step:     s.StepIndex,
			Slot:     s.Slot,
			Kind:     s.Kind,
			RecordID: s.RecordID,
			Reused:   s.Reused,
		})
	}
	return resp
}
