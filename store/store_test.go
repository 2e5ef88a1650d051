package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"worldpav/models"
	"worldpav/overtime"
)

type mockWriter struct {
	mock.Mock
}

func (m *mockWriter) Create(ctx context.Context, entry *models.OvertimeEntry, omit ...string) error {
	return m.Called(entry, omit).Error(0)
}

func (m *mockWriter) Update(ctx context.Context, entry *models.OvertimeEntry, omit ...string) error {
	return m.Called(entry, omit).Error(0)
}

var (
	allColumns      = []string(nil)
	requiredColumns = []string{models.ColumnEntryTime, models.ColumnExitTime}
)

func missingColumn(col string) error {
	return &pgconn.PgError{
		Code:    "42703",
		Message: `column "` + col + `" of relation "overtime_entries" does not exist`,
	}
}

func newEntry() *models.OvertimeEntry {
	entry, exit := "08:00", "19:00"
	return &models.OvertimeEntry{
		WorkerID:       uuid.New(),
		ShiftType:      overtime.PayDay,
		OvertimeHours:  2,
		ComputedAmount: decimal.NewFromInt(30),
		EntryTime:      &entry,
		ExitTime:       &exit,
	}
}

func TestSave_FullWriteSucceeds(t *testing.T) {
	w := new(mockWriter)
	e := newEntry()
	w.On("Create", e, allColumns).Return(nil).Once()

	err := NewOvertimeStore(w).Save(context.Background(), e)

	require.NoError(t, err)
	w.AssertExpectations(t)
	w.AssertNumberOfCalls(t, "Create", 1)
}

func TestSave_SchemaMismatchRetriesOnceWithRequiredFields(t *testing.T) {
	// GIVEN: a schema without the exit_time column
	// WHEN: the full write fails with "column does not exist"
	// THEN: one narrowed write is attempted and its success is the result
	w := new(mockWriter)
	e := newEntry()
	w.On("Create", e, allColumns).Return(missingColumn("exit_time")).Once()
	w.On("Create", e, requiredColumns).Return(nil).Once()

	err := NewOvertimeStore(w).Save(context.Background(), e)

	require.NoError(t, err)
	w.AssertExpectations(t)
	w.AssertNumberOfCalls(t, "Create", 2)
}

func TestSave_SchemaMismatchRetryFailureIsFinal(t *testing.T) {
	w := new(mockWriter)
	e := newEntry()
	w.On("Create", e, allColumns).Return(missingColumn("entry_time")).Once()
	w.On("Create", e, requiredColumns).Return(&pgconn.PgError{Code: "23503"}).Once()

	err := NewOvertimeStore(w).Save(context.Background(), e)

	assert.ErrorIs(t, err, ErrWorkerNotFound)
	w.AssertNumberOfCalls(t, "Create", 2)
}

func TestSave_SchemaMismatchTwiceIsNotRetriedAgain(t *testing.T) {
	w := new(mockWriter)
	e := newEntry()
	w.On("Create", e, mock.Anything).Return(missingColumn("entry_time"))

	err := NewOvertimeStore(w).Save(context.Background(), e)

	assert.ErrorIs(t, err, ErrSchemaMismatch)
	w.AssertNumberOfCalls(t, "Create", 2)
}

func TestSave_StrictSchemaFailsFast(t *testing.T) {
	w := new(mockWriter)
	e := newEntry()
	w.On("Create", e, allColumns).Return(missingColumn("entry_time")).Once()

	err := NewOvertimeStore(w, WithStrictSchema(true)).Save(context.Background(), e)

	assert.ErrorIs(t, err, ErrSchemaOutdated)
	w.AssertNumberOfCalls(t, "Create", 1)
}

func TestSave_OtherFailuresAreNotRetried(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"row level security", &pgconn.PgError{Code: "42501", Message: "new row violates row-level security policy"}, ErrOwnership},
		{"unknown worker", &pgconn.PgError{Code: "23503"}, ErrWorkerNotFound},
		{"check constraint", &pgconn.PgError{Code: "23514"}, ErrConstraint},
		{"other missing column", missingColumn("worker_id"), ErrWriteFailed},
		{"connection reset", errors.New("connection reset by peer"), ErrWriteFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := new(mockWriter)
			e := newEntry()
			w.On("Create", e, allColumns).Return(tt.err).Once()

			err := NewOvertimeStore(w).Save(context.Background(), e)

			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, tt.err)
			w.AssertNumberOfCalls(t, "Create", 1)
		})
	}
}

func TestSave_NonPositiveHoursNeverWritten(t *testing.T) {
	for _, hours := range []float64{0, -1, 1.3} {
		w := new(mockWriter)
		e := newEntry()
		e.OvertimeHours = hours

		err := NewOvertimeStore(w).Save(context.Background(), e)

		assert.ErrorIs(t, err, ErrConstraint, "hours %v", hours)
		w.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	}
}

func TestSave_ExistingEntryIsUpdated(t *testing.T) {
	w := new(mockWriter)
	e := newEntry()
	e.ID = uuid.New()
	w.On("Update", e, allColumns).Return(missingColumn("entry_time")).Once()
	w.On("Update", e, requiredColumns).Return(nil).Once()

	err := NewOvertimeStore(w).Save(context.Background(), e)

	require.NoError(t, err)
	w.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	w.AssertNumberOfCalls(t, "Update", 2)
}

func TestClassify(t *testing.T) {
	assert.NoError(t, Classify(nil))
	assert.ErrorIs(t, Classify(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, Classify(&pgconn.PgError{Code: "42703", ColumnName: "entry_time"}), ErrSchemaMismatch)

	already := newError(CategoryOwnership, nil)
	assert.Same(t, already, Classify(already))
}

func TestUserMessage(t *testing.T) {
	err := Classify(&pgconn.PgError{Code: "42501", Message: "permission denied for table overtime_entries"})

	msg := UserMessage(err)
	assert.Contains(t, msg, "do not have access")
	assert.NotContains(t, msg, "permission denied")

	assert.Equal(t, UserMessage(ErrWriteFailed), UserMessage(errors.New("boom")))
	assert.NotEqual(t, UserMessage(Classify(&pgconn.PgError{Code: "23503"})), msg)
	assert.Equal(t, msg, UserMessage(ErrOwnership))
}
