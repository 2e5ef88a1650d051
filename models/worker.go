package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Worker is a crew member whose overtime is recorded. Workers are maintained
// elsewhere; this service only reads them.
type Worker struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"company_id"`
	TeamID      *uuid.UUID      `gorm:"type:uuid;index" json:"team_id"`
	Team        *Team           `gorm:"foreignKey:TeamID" json:"team,omitempty"`
	Name        string          `gorm:"not null;size:200" json:"name"`
	MonthlyWage decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"monthly_wage"`
	Active      bool            `gorm:"default:true" json:"active"`
}

func (w *Worker) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
