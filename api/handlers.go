/*
handlers.go - HTTP API handlers for the compensation engine

PURPOSE:
  Exposes the compensation engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Compensation:
    POST   /api/bisyaroh/generate      Generate a period's records
    GET    /api/bisyaroh/records       List a period's records
    GET    /api/bisyaroh/records/{id}  Full record with audit detail
    DELETE /api/bisyaroh/records       Delete a period's records

  History:
    POST   /api/history                Snapshot a period
    GET    /api/history                List snapshots (filterable)
    GET    /api/history/{id}           Snapshot with frozen rows
    POST   /api/history/{id}/lock      Toggle the snapshot lock
    DELETE /api/history/{id}           Delete an unlocked snapshot

  Configuration:
    GET    /api/settings               All settings by category
    PUT    /api/settings/{key}         Rewrite one value
    POST   /api/settings               Add a setting (deduction line)
    DELETE /api/settings/{id}          Remove a setting

  Catalogs:
    GET    /api/staff                  Active staff with display positions
    GET    /api/activities             Activities touching a month
    GET    /api/meetings               Meetings within a month

  Demo:
    POST   /api/demo/load              Load the demo dataset

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input (go-playground/validator on request bodies)
  3. Call domain logic (generation, history, settings)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Domain errors carry a kind; writeDomainError maps it:
  - validation  -> 400
  - not_found   -> 404
  - conflict    -> 409
  - computation -> 422
  - internal    -> 500

SECURITY NOTE:
  No authentication middleware. The engine sits behind the school's
  admin gateway which handles auth.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
  - seed.go: Demo dataset loader
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store      bisyaroh.TxStore
	Generation *bisyaroh.GenerationService
	History    *bisyaroh.HistoryService

	settings bisyaroh.SettingsAdmin
	seeder   bisyaroh.Seeder
	validate *validator.Validate
}

// NewHandler creates a new handler on top of the given store. The store
// must also implement the settings admin and seeding interfaces, which
// both bundled implementations do.
func NewHandler(store bisyaroh.TxStore) *Handler {
	return &Handler{
		Store:      store,
		Generation: bisyaroh.NewGenerationService(store),
		History:    bisyaroh.NewHistoryService(store),
		settings:   store.(bisyaroh.SettingsAdmin),
		seeder:     store.(bisyaroh.Seeder),
		validate:   validator.New(),
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. A false return means the error response was already written.
func (h *Handler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", err)
		return false
	}
	return true
}

// periodFromQuery reads month/year query params. A false return means the
// error response was already written.
func periodFromQuery(w http.ResponseWriter, r *http.Request) (bisyaroh.Period, bool) {
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid month", err)
		return bisyaroh.Period{}, false
	}
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return bisyaroh.Period{}, false
	}
	p := bisyaroh.Period{Month: month, Year: year}
	if err := p.Validate(); err != nil {
		writeDomainError(w, err)
		return bisyaroh.Period{}, false
	}
	return p, true
}

// =============================================================================
// COMPENSATION HANDLERS
// =============================================================================

// GenerateRecords runs one generation for the requested period.
// POST /api/bisyaroh/generate
func (h *Handler) GenerateRecords(w http.ResponseWriter, r *http.Request) {
	var req PeriodRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	period := bisyaroh.Period{Month: req.Month, Year: req.Year}
	processed, err := h.Generation.Generate(r.Context(), period)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, GenerateResponse{
		Month:     period.Month,
		Year:      period.Year,
		Period:    period.String(),
		Processed: processed,
	})
}

// ListRecords returns the period's records decorated with directory info.
// GET /api/bisyaroh/records?month=&year=
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	records, err := h.Generation.ListRecords(r.Context(), period)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	staff, err := h.Store.ListActiveStaff(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}
	byID := make(map[bisyaroh.StaffID]bisyaroh.StaffMember, len(staff))
	for _, s := range staff {
		byID[s.ID] = s
	}

	resp := RecordListResponse{
		Month:   period.Month,
		Year:    period.Year,
		Period:  period.String(),
		Records: make([]RecordSummaryDTO, 0, len(records)),
	}
	resolver := h.Generation.Resolver()
	for _, rec := range records {
		member := byID[rec.StaffID]
		resp.Records = append(resp.Records,
			toRecordSummaryDTO(rec, member.Name, bisyaroh.DisplayPosition(member, resolver)))
		resp.TotalGross += rec.GrossTotal
		resp.TotalNet += rec.NetTotal
	}

	writeJSON(w, http.StatusOK, resp)
}

// GetRecord returns one record with its full audit breakdown.
// GET /api/bisyaroh/records/{id}
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := bisyaroh.RecordID(chi.URLParam(r, "id"))

	rec, err := h.Generation.GetRecord(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	member, err := h.Store.GetStaff(r.Context(), rec.StaffID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load staff member", err)
		return
	}
	// A missing member (deleted after generation) still renders the record.
	name, position := "", ""
	if member != nil {
		name = member.Name
		position = bisyaroh.DisplayPosition(*member, h.Generation.Resolver())
	}

	writeJSON(w, http.StatusOK, toRecordDetailDTO(*rec, name, position))
}

// DeleteRecords removes all of a period's records.
// DELETE /api/bisyaroh/records?month=&year=
func (h *Handler) DeleteRecords(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	deleted, err := h.Generation.DeleteRecords(r.Context(), period)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: deleted})
}

// =============================================================================
// HISTORY HANDLERS
// =============================================================================

// CreateSnapshot freezes the period's current records.
// POST /api/history
func (h *Handler) CreateSnapshot(w http.ResponseWriter, r *http.Request) {
	var req SnapshotRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	period := bisyaroh.Period{Month: req.Month, Year: req.Year}
	snap, err := h.History.Snapshot(r.Context(), period, req.Label, req.Notes, req.Actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, SnapshotDetailDTO{
		SnapshotSummaryDTO: toSnapshotSummaryDTO(*snap),
		Rows:               snap.Rows,
	})
}

// ListSnapshots returns snapshot summaries, optionally filtered by period.
// GET /api/history?month=&year=
func (h *Handler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	// Both filters optional; 0 means "any".
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	snaps, err := h.History.List(r.Context(), month, year)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	dtos := make([]SnapshotSummaryDTO, len(snaps))
	for i, snap := range snaps {
		dtos[i] = toSnapshotSummaryDTO(snap)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSnapshot returns one snapshot with its frozen rows.
// GET /api/history/{id}
func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	id := bisyaroh.SnapshotID(chi.URLParam(r, "id"))

	snap, err := h.History.Get(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SnapshotDetailDTO{
		SnapshotSummaryDTO: toSnapshotSummaryDTO(*snap),
		Rows:               snap.Rows,
	})
}

// ToggleSnapshotLock flips the lock on a snapshot.
// POST /api/history/{id}/lock
func (h *Handler) ToggleSnapshotLock(w http.ResponseWriter, r *http.Request) {
	id := bisyaroh.SnapshotID(chi.URLParam(r, "id"))

	var req ToggleLockRequest
	if r.ContentLength > 0 {
		if !h.decodeAndValidate(w, r, &req) {
			return
		}
	}

	snap, err := h.History.ToggleLock(r.Context(), id, req.Actor)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshotSummaryDTO(*snap))
}

// DeleteSnapshot removes an unlocked snapshot.
// DELETE /api/history/{id}
func (h *Handler) DeleteSnapshot(w http.ResponseWriter, r *http.Request) {
	id := bisyaroh.SnapshotID(chi.URLParam(r, "id"))

	if err := h.History.Delete(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SETTINGS HANDLERS
// =============================================================================

// ListSettings returns every setting grouped by sort order.
// GET /api/settings
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settings.ListSettings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list settings", err)
		return
	}
	dtos := make([]SettingDTO, len(settings))
	for i, s := range settings {
		dtos[i] = toSettingDTO(s)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// UpdateSetting rewrites one setting's value.
// PUT /api/settings/{key}
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var req UpdateSettingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.settings.UpdateSettingValue(r.Context(), key, req.Value); err != nil {
		writeDomainError(w, err)
		return
	}
	setting, _, err := h.Store.Get(r.Context(), key)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload setting", err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingDTO(setting))
}

// AddSetting inserts a new setting at the end of its category.
// POST /api/settings
func (h *Handler) AddSetting(w http.ResponseWriter, r *http.Request) {
	var req AddSettingRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	settingType := bisyaroh.SettingType(req.Type)
	if req.Type == "" {
		settingType = bisyaroh.SettingInteger
	}
	setting, err := h.settings.AddSetting(r.Context(), bisyaroh.Setting{
		Key:      req.Key,
		Value:    req.Value,
		Type:     settingType,
		Category: req.Category,
		Label:    req.Label,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toSettingDTO(setting))
}

// DeleteSetting removes a setting by id.
// DELETE /api/settings/{id}
func (h *Handler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.settings.DeleteSetting(r.Context(), id); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CATALOG HANDLERS
// =============================================================================

// staffNames maps active staff ids to display names for catalog responses.
func (h *Handler) staffNames(ctx context.Context) (map[bisyaroh.StaffID]string, error) {
	staff, err := h.Store.ListActiveStaff(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[bisyaroh.StaffID]string, len(staff))
	for _, s := range staff {
		names[s.ID] = s.Name
	}
	return names, nil
}

// ListStaff returns active staff with resolved display positions.
// GET /api/staff
func (h *Handler) ListStaff(w http.ResponseWriter, r *http.Request) {
	staff, err := h.Store.ListActiveStaff(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}

	resolver := h.Generation.Resolver()
	dtos := make([]StaffDTO, len(staff))
	for i, member := range staff {
		dtos[i] = toStaffDTO(member, bisyaroh.DisplayPosition(member, resolver))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListActivities returns the activities whose window touches the month.
// GET /api/activities?month=&year=
func (h *Handler) ListActivities(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	acts, err := h.Store.ListActivities(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list activities", err)
		return
	}
	names, err := h.staffNames(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}
	dtos := make([]ActivityDTO, len(acts))
	for i, act := range acts {
		dtos[i] = toActivityDTO(act, names)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListMeetings returns the meetings held within the month.
// GET /api/meetings?month=&year=
func (h *Handler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	meetings, err := h.Store.ListMeetings(r.Context(), period)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list meetings", err)
		return
	}
	names, err := h.staffNames(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list staff", err)
		return
	}
	dtos := make([]MeetingDTO, len(meetings))
	for i, m := range meetings {
		dtos[i] = toMeetingDTO(m, names)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadDemoData seeds the demo dataset.
// POST /api/demo/load
func (h *Handler) LoadDemoData(w http.ResponseWriter, r *http.Request) {
	if err := SeedDemoData(r.Context(), h.seeder); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load demo data", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError maps an engine error kind to an HTTP status.
func writeDomainError(w http.ResponseWriter, err error) {
	kind := bisyaroh.KindOf(err)
	status := http.StatusInternalServerError
	switch kind {
	case bisyaroh.KindValidation:
		status = http.StatusBadRequest
	case bisyaroh.KindNotFound:
		status = http.StatusNotFound
	case bisyaroh.KindConflict:
		status = http.StatusConflict
	case bisyaroh.KindComputation:
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: string(kind)})
}
