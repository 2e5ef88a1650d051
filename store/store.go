package store

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"worldpav/models"
)

// Writer performs a single write of an overtime entry, leaving out the
// named columns.
type Writer interface {
	Create(ctx context.Context, entry *models.OvertimeEntry, omit ...string) error
	Update(ctx context.Context, entry *models.OvertimeEntry, omit ...string) error
}

// OvertimeStore is the persistence boundary for overtime entries.
type OvertimeStore struct {
	writer       Writer
	strictSchema bool
}

type Option func(*OvertimeStore)

// WithStrictSchema makes a missing entry/exit column a terminal error instead
// of retrying without those columns.
func WithStrictSchema(strict bool) Option {
	return func(s *OvertimeStore) { s.strictSchema = strict }
}

func NewOvertimeStore(w Writer, opts ...Option) *OvertimeStore {
	s := &OvertimeStore{writer: w}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes entry with every column. If the schema lacks the optional
// entry/exit time columns it retries once with only the required fields and
// returns that result. Other failures are returned classified, without retry.
func (s *OvertimeStore) Save(ctx context.Context, entry *models.OvertimeEntry) error {
	log := zerolog.Ctx(ctx)

	if !validHours(entry.OvertimeHours) {
		err := newError(CategoryConstraint, fmt.Errorf("refusing to write %v overtime hours", entry.OvertimeHours))
		log.Error().Err(err).Str("worker_id", entry.WorkerID.String()).Msg("overtime entry reached the store without passing validation")
		return err
	}

	creating := entry.ID == uuid.Nil
	err := Classify(s.write(ctx, creating, entry))
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrSchemaMismatch) {
		s.logFailure(log, entry, err)
		return err
	}

	if s.strictSchema {
		log.Error().Err(err).Msg("overtime_entries schema is missing entry/exit time columns")
		return newError(CategorySchemaOutdated, err)
	}

	log.Warn().Err(err).Str("entry_id", entry.ID.String()).Msg("retrying overtime write without entry/exit time columns")
	err = Classify(s.write(ctx, creating, entry, models.ColumnEntryTime, models.ColumnExitTime))
	if err != nil {
		s.logFailure(log, entry, err)
	}
	return err
}

func (s *OvertimeStore) write(ctx context.Context, creating bool, entry *models.OvertimeEntry, omit ...string) error {
	if creating {
		return s.writer.Create(ctx, entry, omit...)
	}
	return s.writer.Update(ctx, entry, omit...)
}

func (s *OvertimeStore) logFailure(log *zerolog.Logger, entry *models.OvertimeEntry, err error) {
	ev := log.Warn()
	if errors.Is(err, ErrConstraint) {
		ev = log.Error()
	}
	ev.Err(err).Str("worker_id", entry.WorkerID.String()).Msg("overtime write failed")
}

// validHours holds the stored-row invariant: positive and on a half-hour step.
func validHours(h float64) bool {
	return h > 0 && math.Mod(h*2, 1) == 0
}
