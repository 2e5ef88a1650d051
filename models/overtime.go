package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"worldpav/overtime"
)

// OvertimeEntry is a worker's recorded overtime for one shift. Hours and
// amount are always derived from the clock times; they are never taken from
// the caller.
type OvertimeEntry struct {
	ID             uuid.UUID             `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	WorkerID       uuid.UUID             `gorm:"type:uuid;not null;index" json:"worker_id"`
	Worker         *Worker               `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Date           time.Time             `gorm:"not null;type:date;index" json:"-"`
	ShiftType      overtime.PayShiftType `gorm:"not null;size:20" json:"shift_type"`
	OvertimeHours  float64               `gorm:"not null;check:chk_overtime_entries_hours_positive,overtime_hours > 0" json:"overtime_hours"`
	ComputedAmount decimal.Decimal       `gorm:"type:numeric(12,2);not null" json:"computed_amount"`
	EntryTime      *string               `gorm:"type:time" json:"entry_time,omitempty"`
	ExitTime       *string               `gorm:"type:time" json:"exit_time,omitempty"`
}

// Columns that an older schema may be missing.
const (
	ColumnEntryTime = "entry_time"
	ColumnExitTime  = "exit_time"
)

func (e *OvertimeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// DateString returns the civil date as YYYY-MM-DD.
func (e *OvertimeEntry) DateString() string {
	return e.Date.Format(overtime.DateLayout)
}

// Line adapts the entry for summaries.
func (e *OvertimeEntry) Line() overtime.Line {
	name := ""
	if e.Worker != nil {
		name = e.Worker.Name
	}
	return overtime.Line{Worker: name, Shift: e.ShiftType, Hours: e.OvertimeHours, Amount: e.ComputedAmount}
}

type OvertimeFilter struct {
	CompanyID uuid.UUID
	From      *time.Time
	To        *time.Time
	Name      string
	TeamID    *uuid.UUID
}
