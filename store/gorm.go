package store

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"worldpav/models"
)

// GormWriter writes overtime entries through gorm.
type GormWriter struct {
	db *gorm.DB
}

func NewGormWriter(db *gorm.DB) *GormWriter {
	return &GormWriter{db: db}
}

func (w *GormWriter) Create(ctx context.Context, entry *models.OvertimeEntry, omit ...string) error {
	return w.db.WithContext(ctx).
		Omit(append(omit, clause.Associations)...).
		Create(entry).Error
}

// Update overwrites every column of an existing entry except created_at.
func (w *GormWriter) Update(ctx context.Context, entry *models.OvertimeEntry, omit ...string) error {
	result := w.db.WithContext(ctx).
		Model(entry).
		Select("*").
		Omit(append(omit, "created_at", clause.Associations)...).
		Updates(entry)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Repository serves the read side and the unconditional delete, always
// scoped to one company.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindWorker loads a worker reachable from companyID.
func (r *Repository) FindWorker(ctx context.Context, companyID, workerID uuid.UUID) (*models.Worker, error) {
	var w models.Worker
	if err := r.db.WithContext(ctx).First(&w, "id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, newError(CategoryWorkerNotFound, err)
		}
		return nil, Classify(err)
	}
	if w.CompanyID != companyID {
		return nil, newError(CategoryOwnership, nil)
	}
	return &w, nil
}

func (r *Repository) FindEntry(ctx context.Context, companyID, id uuid.UUID) (*models.OvertimeEntry, error) {
	var e models.OvertimeEntry
	err := r.db.WithContext(ctx).
		Joins("Worker").
		Where(`"Worker"."company_id" = ?`, companyID).
		First(&e, "overtime_entries.id = ?", id).Error
	if err != nil {
		return nil, Classify(err)
	}
	return &e, nil
}

func (r *Repository) ListEntries(ctx context.Context, f models.OvertimeFilter) ([]models.OvertimeEntry, error) {
	query := r.db.WithContext(ctx).
		Joins("Worker").
		Where(`"Worker"."company_id" = ?`, f.CompanyID)

	if f.From != nil {
		query = query.Where("overtime_entries.date >= ?", *f.From)
	}
	if f.To != nil {
		query = query.Where("overtime_entries.date <= ?", *f.To)
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		query = query.Where(`"Worker"."name" ILIKE ?`, "%"+name+"%")
	}
	if f.TeamID != nil {
		query = query.Where(`"Worker"."team_id" = ?`, *f.TeamID)
	}

	var entries []models.OvertimeEntry
	err := query.
		Order("overtime_entries.date desc").
		Order("overtime_entries.created_at desc").
		Find(&entries).Error
	return entries, Classify(err)
}

// DeleteEntry removes an entry. Deletion is not validated beyond company scope.
func (r *Repository) DeleteEntry(ctx context.Context, companyID, id uuid.UUID) error {
	workers := r.db.Model(&models.Worker{}).Select("id").Where("company_id = ?", companyID)
	result := r.db.WithContext(ctx).
		Where("id = ? AND worker_id IN (?)", id, workers).
		Delete(&models.OvertimeEntry{})
	if result.Error != nil {
		return Classify(result.Error)
	}
	if result.RowsAffected == 0 {
		return newError(CategoryNotFound, gorm.ErrRecordNotFound)
	}
	return nil
}

// ListWorkers returns the company's active workers, optionally limited to one team.
func (r *Repository) ListWorkers(ctx context.Context, companyID uuid.UUID, teamID *uuid.UUID) ([]models.Worker, error) {
	query := r.db.WithContext(ctx).
		Preload("Team").
		Where("company_id = ? AND active = ?", companyID, true)
	if teamID != nil {
		query = query.Where("team_id = ?", *teamID)
	}

	var workers []models.Worker
	err := query.Order("name asc").Find(&workers).Error
	return workers, Classify(err)
}

func (r *Repository) ListTeams(ctx context.Context, companyID uuid.UUID) ([]models.Team, error) {
	var teams []models.Team
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("name asc").
		Find(&teams).Error
	return teams, Classify(err)
}
