package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"worldpav/api"
	"worldpav/middleware"
	"worldpav/models"
	"worldpav/overtime"
	"worldpav/service"
	"worldpav/store"
)

// OvertimeService is the write side used by the handler.
type OvertimeService interface {
	Preview(ctx context.Context, caller *models.User, req service.Request) (service.Validation, error)
	Create(ctx context.Context, caller *models.User, req service.Request) (*models.OvertimeEntry, error)
	Update(ctx context.Context, caller *models.User, id uuid.UUID, req service.Request) (*models.OvertimeEntry, error)
}

// OvertimeReader is the read side and the delete.
type OvertimeReader interface {
	ListEntries(ctx context.Context, f models.OvertimeFilter) ([]models.OvertimeEntry, error)
	DeleteEntry(ctx context.Context, companyID, id uuid.UUID) error
}

type OvertimeHandler struct {
	service  OvertimeService
	reader   OvertimeReader
	rules    *overtime.Resolver
	validate *validator.Validate
	now      func() time.Time
}

func NewOvertimeHandler(svc OvertimeService, reader OvertimeReader, rules *overtime.Resolver) *OvertimeHandler {
	return &OvertimeHandler{
		service:  svc,
		reader:   reader,
		rules:    rules,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
	}
}

// entryRequest carries the raw form fields. Date and clock values are checked
// by the gate so a partially filled form still gets a preview.
type entryRequest struct {
	WorkerID  string `json:"worker_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"max=10"`
	EntryTime string `json:"entry_time" validate:"max=8"`
	ExitTime  string `json:"exit_time" validate:"max=8"`
	ShiftType string `json:"shift_type" validate:"required"`
}

type entryResponse struct {
	ID             uuid.UUID             `json:"id"`
	WorkerID       uuid.UUID             `json:"worker_id"`
	WorkerName     string                `json:"worker_name,omitempty"`
	Date           string                `json:"date"`
	ShiftType      overtime.PayShiftType `json:"shift_type"`
	EntryTime      *string               `json:"entry_time,omitempty"`
	ExitTime       *string               `json:"exit_time,omitempty"`
	OvertimeHours  float64               `json:"overtime_hours"`
	ComputedAmount decimal.Decimal       `json:"computed_amount"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

type periodResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type listResponse struct {
	Period      *periodResponse `json:"period,omitempty"`
	Entries     []entryResponse `json:"entries"`
	TotalHours  float64         `json:"total_hours"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type summaryResponse struct {
	Period *periodResponse `json:"period,omitempty"`
	overtime.Summary
}

func toEntryResponse(e *models.OvertimeEntry) entryResponse {
	resp := entryResponse{
		ID:             e.ID,
		WorkerID:       e.WorkerID,
		Date:           e.DateString(),
		ShiftType:      e.ShiftType,
		EntryTime:      e.EntryTime,
		ExitTime:       e.ExitTime,
		OvertimeHours:  e.OvertimeHours,
		ComputedAmount: e.ComputedAmount,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.Worker != nil {
		resp.WorkerName = e.Worker.Name
	}
	return resp
}

// Preview answers every form change with the current verdict and computed values.
func (h *OvertimeHandler) Preview(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	req, ok := h.decode(w, r, false)
	if !ok {
		return
	}

	v, err := h.service.Preview(r.Context(), user, req)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	api.Success(w, r, v)
}

func (h *OvertimeHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	req, ok := h.decode(w, r, true)
	if !ok {
		return
	}

	entry, err := h.service.Create(r.Context(), user, req)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	api.Created(w, r, toEntryResponse(entry))
}

func (h *OvertimeHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_id", "Invalid entry ID")
		return
	}

	req, ok := h.decode(w, r, false)
	if !ok {
		return
	}

	entry, err := h.service.Update(r.Context(), user, id, req)
	if err != nil {
		writeSubmitError(w, r, err)
		return
	}
	api.Success(w, r, toEntryResponse(entry))
}

// DeleteEntry removes an entry without re-validating it.
func (h *OvertimeHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	if !user.CanDeleteOvertime() {
		api.Fail(w, r, http.StatusForbidden, "forbidden", "Only admin or HR can delete overtime entries")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_id", "Invalid entry ID")
		return
	}

	if err := h.reader.DeleteEntry(r.Context(), user.CompanyID, id); err != nil {
		writeStoreError(w, r, err)
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("entry_id", id.String()).Msg("overtime entry deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *OvertimeHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter, period, ok := h.parseFilter(w, r, user)
	if !ok {
		return
	}

	entries, err := h.reader.ListEntries(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	resp := listResponse{
		Period:      period,
		Entries:     make([]entryResponse, 0, len(entries)),
		TotalAmount: decimal.Zero,
	}
	for i := range entries {
		resp.Entries = append(resp.Entries, toEntryResponse(&entries[i]))
		resp.TotalHours += entries[i].OvertimeHours
		resp.TotalAmount = resp.TotalAmount.Add(entries[i].ComputedAmount)
	}
	api.Success(w, r, resp)
}

// Summary totals the filtered entries by shift type and by worker.
func (h *OvertimeHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	filter, period, ok := h.parseFilter(w, r, user)
	if !ok {
		return
	}

	entries, err := h.reader.ListEntries(r.Context(), filter)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}

	lines := make([]overtime.Line, 0, len(entries))
	for i := range entries {
		lines = append(lines, entries[i].Line())
	}
	api.Success(w, r, summaryResponse{Period: period, Summary: overtime.Summarize(lines)})
}

func (h *OvertimeHandler) decode(w http.ResponseWriter, r *http.Request, creating bool) (service.Request, bool) {
	var body entryRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_body", "Invalid request body")
		return service.Request{}, false
	}

	if err := h.validate.Struct(body); err != nil {
		api.FailWithDetails(w, r, http.StatusBadRequest, "invalid_body", "Invalid request body", fieldErrors(err))
		return service.Request{}, false
	}

	shift, err := overtime.ParsePayShiftType(body.ShiftType)
	if err != nil {
		api.Fail(w, r, http.StatusBadRequest, "invalid_shift_type", err.Error())
		return service.Request{}, false
	}
	if creating && !shift.Selectable() {
		api.Fail(w, r, http.StatusBadRequest, "invalid_shift_type", "shift_type must be day or night")
		return service.Request{}, false
	}

	return service.Request{
		WorkerID: uuid.MustParse(body.WorkerID),
		Date:     strings.TrimSpace(body.Date),
		Entry:    strings.TrimSpace(body.EntryTime),
		Exit:     strings.TrimSpace(body.ExitTime),
		Shift:    shift,
	}, true
}

// parseFilter reads period (current, custom or all), from, to, name and team_id.
func (h *OvertimeHandler) parseFilter(w http.ResponseWriter, r *http.Request, user *models.User) (models.OvertimeFilter, *periodResponse, bool) {
	q := r.URL.Query()
	filter := models.OvertimeFilter{
		CompanyID: user.CompanyID,
		Name:      q.Get("name"),
	}

	if teamIDStr := q.Get("team_id"); teamIDStr != "" {
		tid, err := uuid.Parse(teamIDStr)
		if err != nil {
			api.Fail(w, r, http.StatusBadRequest, "invalid_filter", "Invalid team_id")
			return filter, nil, false
		}
		filter.TeamID = &tid
	}

	var period *periodResponse
	switch q.Get("period") {
	case "", "current":
		p := h.rules.CurrentPayPeriod(h.now())
		filter.From, filter.To = &p.Start, &p.End
		period = &periodResponse{Start: p.StartString(), End: p.EndString()}
	case "custom":
		from, err := parseDateParam(q.Get("from"))
		if err != nil {
			api.Fail(w, r, http.StatusBadRequest, "invalid_filter", "Invalid from date")
			return filter, nil, false
		}
		to, err := parseDateParam(q.Get("to"))
		if err != nil {
			api.Fail(w, r, http.StatusBadRequest, "invalid_filter", "Invalid to date")
			return filter, nil, false
		}
		if from != nil && to != nil && to.Before(*from) {
			api.Fail(w, r, http.StatusBadRequest, "invalid_filter", "to must not be before from")
			return filter, nil, false
		}
		filter.From, filter.To = from, to
	case "all":
	default:
		api.Fail(w, r, http.StatusBadRequest, "invalid_filter", "period must be current, custom or all")
		return filter, nil, false
	}

	return filter, period, true
}

func parseDateParam(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(overtime.DateLayout, s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

func writeSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	if rejected, ok := service.IsRejected(err); ok {
		api.FailWithDetails(w, r, http.StatusUnprocessableEntity, string(rejected.Validation.Problem),
			rejected.Validation.Reason, rejected.Validation)
		return
	}
	writeStoreError(w, r, err)
}

func writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	category := store.CategoryWriteFailed
	var se *store.Error
	if errors.As(err, &se) {
		category = se.Category
	}

	status := http.StatusInternalServerError
	switch category {
	case store.CategoryNotFound, store.CategoryWorkerNotFound:
		status = http.StatusNotFound
	case store.CategoryOwnership:
		status = http.StatusForbidden
	}

	if status == http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("category", string(category)).Msg("overtime request failed")
	}
	api.Fail(w, r, status, string(category), store.UserMessage(err))
}
