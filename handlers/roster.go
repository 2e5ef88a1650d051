package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"worldpav/api"
	"worldpav/middleware"
	"worldpav/models"
)

type RosterReader interface {
	ListWorkers(ctx context.Context, companyID uuid.UUID, teamID *uuid.UUID) ([]models.Worker, error)
	ListTeams(ctx context.Context, companyID uuid.UUID) ([]models.Team, error)
}

// RosterHandler lists the workers and teams an entry can be recorded for.
type RosterHandler struct {
	reader RosterReader
}

func NewRosterHandler(reader RosterReader) *RosterHandler {
	return &RosterHandler{reader: reader}
}

func (h *RosterHandler) ListWorkers(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var teamID *uuid.UUID
	if s := r.URL.Query().Get("team_id"); s != "" {
		tid, err := uuid.Parse(s)
		if err != nil {
			api.Fail(w, r, http.StatusBadRequest, "invalid_filter", "Invalid team_id")
			return
		}
		teamID = &tid
	}

	workers, err := h.reader.ListWorkers(r.Context(), user.CompanyID, teamID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	api.Success(w, r, workers)
}

func (h *RosterHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	teams, err := h.reader.ListTeams(r.Context(), user.CompanyID)
	if err != nil {
		writeStoreError(w, r, err)
		return
	}
	api.Success(w, r, teams)
}
