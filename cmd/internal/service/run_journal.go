package service

import (
	"context"
	"rentalcontracts/cmd/internal/domain/entity"
	"rentalcontracts/cmd/internal/registration"
	"rentalcontracts/cmd/internal/utils"

	"github.com/labstack/gommon/log"
)

type RunRepository interface {
	Create(run *entity.RegistrationRun) error
	Save(run *entity.RegistrationRun) error
	SaveStep(step *entity.RunStep) error
	FindByID(id int64, sub string) (*entity.RegistrationRun, error)
}

// runJournal records every step of a run as it happens, so that a failed
// run still tells which records it left in the remote store.
type runJournal struct {
	repo RunRepository
	run  *entity.RegistrationRun
}

func startRunJournal(repo RunRepository, id int64, sub string) (*runJournal, error) {
	now := utils.NowUTC()
	run := &entity.RegistrationRun{
		ID:        id,
		UserSub:   sub,
		Status:    entity.RunStatusRunning,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := repo.Create(run); err != nil {
		return nil, err
	}
	return &runJournal{repo: repo, run: run}, nil
}

func (j *runJournal) OnEvent(_ context.Context, ev registration.Event) {
	var err error
	switch ev.Type {
	case registration.EventStepCreated, registration.EventStepPublished:
		err = j.repo.SaveStep(&entity.RunStep{
			RunID:     j.run.ID,
			StepIndex: ev.Step,
			Slot:      string(ev.Slot),
			Kind:      string(ev.Kind),
			RecordID:  ev.ID,
			Reused:    ev.Type == registration.EventStepPublished,
			CreatedAt: utils.NowUTC(),
		})

	case registration.EventRunSucceeded:
		j.run.Status = entity.RunStatusSucceeded
		j.run.ContractID = ev.ID
		err = j.finish()

	case registration.EventRunFailed:
		j.run.Status = entity.RunStatusFailed
		j.run.FailedKind = string(ev.Kind)
		j.run.Error = failureMessage(ev.Err)
		if ev.Step >= 0 {
			step := ev.Step
			j.run.FailedStep = &step
		}
		err = j.finish()
	}

	if err != nil {
		log.Errorf("run %d: failed to journal %s: %v", j.run.ID, ev.Type, err)
	}
}

func (j *runJournal) finish() error {
	j.run.UpdatedAt = utils.NowUTC()
	return j.repo.Save(j.run)
}
