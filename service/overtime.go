package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"worldpav/models"
	"worldpav/overtime"
	"worldpav/store"
)

// WorkerDirectory resolves the worker an entry belongs to.
type WorkerDirectory interface {
	FindWorker(ctx context.Context, companyID, workerID uuid.UUID) (*models.Worker, error)
	FindEntry(ctx context.Context, companyID, id uuid.UUID) (*models.OvertimeEntry, error)
}

// EntrySaver persists a validated entry.
type EntrySaver interface {
	Save(ctx context.Context, entry *models.OvertimeEntry) error
}

// Request is the raw form input for one entry.
type Request struct {
	WorkerID uuid.UUID
	Date     string
	Entry    string
	Exit     string
	Shift    overtime.PayShiftType
}

// Validation is the payload sent back on every input change.
type Validation struct {
	Valid   bool             `json:"valid"`
	Problem overtime.Problem `json:"problem,omitempty"`
	Reason  string           `json:"reason,omitempty"`
	Preview overtime.Preview `json:"preview"`
}

// RejectedError is returned by Submit when the gate refuses the input. The
// store is not called in that case.
type RejectedError struct {
	Validation Validation
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("overtime entry rejected (%s): %s", e.Validation.Problem, e.Validation.Reason)
}

// OvertimeService runs the computation, the gate and the store in order.
type OvertimeService struct {
	gate    *overtime.Gate
	workers WorkerDirectory
	saver   EntrySaver
}

func NewOvertimeService(gate *overtime.Gate, workers WorkerDirectory, saver EntrySaver) *OvertimeService {
	return &OvertimeService{gate: gate, workers: workers, saver: saver}
}

// Preview validates the input against the worker's current wage.
func (s *OvertimeService) Preview(ctx context.Context, caller *models.User, req Request) (Validation, error) {
	worker, err := s.workers.FindWorker(ctx, caller.CompanyID, req.WorkerID)
	if err != nil {
		return Validation{}, err
	}
	return s.validate(worker, req), nil
}

// Create records a new entry.
func (s *OvertimeService) Create(ctx context.Context, caller *models.User, req Request) (*models.OvertimeEntry, error) {
	return s.submit(ctx, caller, nil, req)
}

// Update recomputes and overwrites an existing entry.
func (s *OvertimeService) Update(ctx context.Context, caller *models.User, id uuid.UUID, req Request) (*models.OvertimeEntry, error) {
	existing, err := s.workers.FindEntry(ctx, caller.CompanyID, id)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, caller, existing, req)
}

func (s *OvertimeService) submit(ctx context.Context, caller *models.User, existing *models.OvertimeEntry, req Request) (*models.OvertimeEntry, error) {
	worker, err := s.workers.FindWorker(ctx, caller.CompanyID, req.WorkerID)
	if err != nil {
		return nil, err
	}
	if !caller.CanManageOvertimeFor(worker) {
		return nil, store.ErrOwnership
	}

	v := s.validate(worker, req)
	if !v.Valid {
		return nil, &RejectedError{Validation: v}
	}

	date, err := time.Parse(overtime.DateLayout, req.Date)
	if err != nil {
		return nil, &RejectedError{Validation: v}
	}

	entry := &models.OvertimeEntry{}
	if existing != nil {
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
	}
	entry.WorkerID = worker.ID
	entry.Date = date
	entry.ShiftType = req.Shift
	entry.OvertimeHours = v.Preview.OvertimeHours
	entry.ComputedAmount = v.Preview.ComputedAmount.Round(2)
	entry.EntryTime = clock(req.Entry)
	entry.ExitTime = clock(req.Exit)

	// A dismissed form does not abort the write; it completes or fails on its own.
	if err := s.saver.Save(context.WithoutCancel(ctx), entry); err != nil {
		return nil, err
	}

	zerolog.Ctx(ctx).Info().
		Str("entry_id", entry.ID.String()).
		Str("worker_id", worker.ID.String()).
		Float64("hours", entry.OvertimeHours).
		Str("amount", entry.ComputedAmount.StringFixed(2)).
		Msg("overtime entry saved")

	entry.Worker = worker
	return entry, nil
}

func (s *OvertimeService) validate(worker *models.Worker, req Request) Validation {
	verdict := s.gate.Evaluate(overtime.Input{
		Date:        req.Date,
		Entry:       req.Entry,
		Exit:        req.Exit,
		Shift:       req.Shift,
		MonthlyWage: worker.MonthlyWage,
	})
	return Validation{
		Valid:   verdict.Valid(),
		Problem: verdict.Problem,
		Reason:  verdict.Reason,
		Preview: verdict.Preview,
	}
}

// clock normalises a validated HH:MM value for storage.
func clock(s string) *string {
	c, err := overtime.ParseClock(s)
	if err != nil {
		return nil
	}
	v := c.String()
	return &v
}

// IsRejected reports whether err came from the gate rather than the store.
func IsRejected(err error) (*RejectedError, bool) {
	var re *RejectedError
	ok := errors.As(err, &re)
	return re, ok
}
