package entity

type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusSucceeded RunStatus = "SUCCEEDED"
	RunStatusFailed    RunStatus = "FAILED"
)

// RegistrationRun journals one contract registration attempt. Failed runs are
// kept around on purpose: their steps list the records that were created before
// the failure and are now orphaned in the remote store.
type RegistrationRun struct {
	ID         int64     `gorm:"primaryKey;autoIncrement:false"`
	UserSub    string    `gorm:"not null;index"`
	Status     RunStatus `gorm:"not null"`
	ContractID string
	FailedStep *int
	FailedKind string
	Error      string
	CreatedAt  int64 `gorm:"not null"`
	UpdatedAt  int64 `gorm:"not null;autoUpdateTime:false"`

	// Relationships
	Steps []*RunStep `gorm:"foreignKey:RunID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

type RunStep struct {
	ID        int    `gorm:"primaryKey"`
	RunID     int64  `gorm:"not null;index"`
	StepIndex int    `gorm:"not null"`
	Slot      string `gorm:"not null"`
	Kind      string `gorm:"not null"`
	RecordID  string
	Reused    bool `gorm:"not null;default:false"`
	Error     string
	CreatedAt int64 `gorm:"not null"`
}
