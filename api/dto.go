/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the internal domain model from the external API contract, allowing:
  - Field renaming without breaking clients
  - API-specific validation
  - Version evolution

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Request types carry go-playground/validator struct tags; handlers run
  them through the shared validator before touching domain logic.

SEE ALSO:
  - handlers.go: Uses these types
  - bisyaroh/types.go: Domain model these map from
*/
package api

import (
	"time"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// PeriodRequest targets one month. Shared by generation, deletion and
// snapshot creation.
type PeriodRequest struct {
	Month int `json:"month" validate:"required,min=1,max=12"`
	Year  int `json:"year" validate:"required,min=2020"`
}

// SnapshotRequest creates a history snapshot of a period.
type SnapshotRequest struct {
	Month int    `json:"month" validate:"required,min=1,max=12"`
	Year  int    `json:"year" validate:"required,min=2020"`
	Label string `json:"label" validate:"max=120"`
	Notes string `json:"notes" validate:"max=500"`
	Actor string `json:"actor" validate:"max=120"`
}

// ToggleLockRequest flips a snapshot's lock.
type ToggleLockRequest struct {
	Actor string `json:"actor" validate:"max=120"`
}

// UpdateSettingRequest rewrites one setting's value.
type UpdateSettingRequest struct {
	Value string `json:"value" validate:"required,max=120"`
}

// AddSettingRequest inserts a new setting, typically a deduction line.
type AddSettingRequest struct {
	Key      string `json:"key" validate:"required,max=80"`
	Value    string `json:"value" validate:"required,max=120"`
	Type     string `json:"type" validate:"omitempty,oneof=integer string boolean"`
	Category string `json:"category" validate:"required,max=80"`
	Label    string `json:"label" validate:"required,max=120"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// StaffDTO represents a staff member in API responses.
type StaffDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	EmployeeNo  string   `json:"employee_no,omitempty"`
	Active      bool     `json:"active"`
	TenureStart string   `json:"tenure_start,omitempty"`
	Position    string   `json:"position"`
	Roles       []string `json:"roles,omitempty"`
}

// GenerateResponse reports one generation run.
type GenerateResponse struct {
	Month     int    `json:"month"`
	Year      int    `json:"year"`
	Period    string `json:"period"`
	Processed int    `json:"processed"`
}

// DeleteResponse reports a bulk delete.
type DeleteResponse struct {
	Deleted int `json:"deleted"`
}

// RecordSummaryDTO is one row of the period listing: the computed totals
// decorated with directory info, without the audit detail payload.
type RecordSummaryDTO struct {
	ID       string `json:"id"`
	StaffID  string `json:"staff_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Month    int    `json:"month"`
	Year     int    `json:"year"`

	WeeklyHours int `json:"weekly_hours"`
	PresentDays int `json:"present_days"`

	BasePay             bisyaroh.Money `json:"base_pay"`
	StructuralAllowance bisyaroh.Money `json:"structural_allowance"`
	TransportAllowance  bisyaroh.Money `json:"transport_allowance"`
	TenureAllowance     bisyaroh.Money `json:"tenure_allowance"`
	ActivityAllowance   bisyaroh.Money `json:"activity_allowance"`
	MeetingAllowance    bisyaroh.Money `json:"meeting_allowance"`
	GrossTotal          bisyaroh.Money `json:"gross_total"`
	DeductionTotal      bisyaroh.Money `json:"deduction_total"`
	NetTotal            bisyaroh.Money `json:"net_total"`

	Status string `json:"status"`
}

// RecordDetailDTO is the full record including the per-source audit logs.
type RecordDetailDTO struct {
	RecordSummaryDTO
	Deductions     []bisyaroh.DeductionLine  `json:"deductions"`
	TeachingDetail []bisyaroh.TeachingDetail `json:"teaching_detail"`
	ActivityDetail []bisyaroh.ActivityDetail `json:"activity_detail"`
	MeetingDetail  []bisyaroh.MeetingDetail  `json:"meeting_detail"`
}

// RecordListResponse wraps a period listing with its totals.
type RecordListResponse struct {
	Month      int                `json:"month"`
	Year       int                `json:"year"`
	Period     string             `json:"period"`
	Records    []RecordSummaryDTO `json:"records"`
	TotalGross bisyaroh.Money     `json:"total_gross"`
	TotalNet   bisyaroh.Money     `json:"total_net"`
}

// SnapshotSummaryDTO is one history listing row (no frozen rows).
type SnapshotSummaryDTO struct {
	ID         string         `json:"id"`
	Month      int            `json:"month"`
	Year       int            `json:"year"`
	Period     string         `json:"period"`
	Label      string         `json:"label"`
	Notes      string         `json:"notes,omitempty"`
	StaffCount int            `json:"staff_count"`
	TotalGross bisyaroh.Money `json:"total_gross"`
	TotalNet   bisyaroh.Money `json:"total_net"`
	Status     string         `json:"status"`
	CreatedBy  string         `json:"created_by,omitempty"`
	CreatedAt  string         `json:"created_at"`
	LockedBy   string         `json:"locked_by,omitempty"`
	LockedAt   string         `json:"locked_at,omitempty"`
}

// SnapshotDetailDTO includes the frozen per-staff rows.
type SnapshotDetailDTO struct {
	SnapshotSummaryDTO
	Rows []bisyaroh.HistoryRow `json:"rows"`
}

// SettingDTO represents one configuration entry.
type SettingDTO struct {
	ID        string `json:"id"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
	Category  string `json:"category"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

// ActivityDTO represents an activity in the month catalog.
type ActivityDTO struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	ResponsibleID   string   `json:"responsible_id,omitempty"`
	ResponsibleName string   `json:"responsible_name,omitempty"`
	AssistantIDs    []string `json:"assistant_ids,omitempty"`
	Start           string   `json:"start"`
	End             string   `json:"end,omitempty"`
}

// MeetingDTO represents a meeting in the month catalog.
type MeetingDTO struct {
	ID             string   `json:"id"`
	Agenda         string   `json:"agenda"`
	Venue          string   `json:"venue"`
	Date           string   `json:"date"`
	ChairID        string   `json:"chair_id,omitempty"`
	ChairName      string   `json:"chair_name,omitempty"`
	SecretaryID    string   `json:"secretary_id,omitempty"`
	SecretaryName  string   `json:"secretary_name,omitempty"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toStaffDTO(m bisyaroh.StaffMember, position string) StaffDTO {
	dto := StaffDTO{
		ID:         string(m.ID),
		Name:       m.Name,
		EmployeeNo: m.EmployeeNo,
		Active:     m.Active,
		Position:   position,
		Roles:      m.Roles,
	}
	if !m.TenureStart.IsZero() {
		dto.TenureStart = m.TenureStart.Format("2006-01-02")
	}
	return dto
}

func toRecordSummaryDTO(rec bisyaroh.CompensationRecord, name, position string) RecordSummaryDTO {
	return RecordSummaryDTO{
		ID:       string(rec.ID),
		StaffID:  string(rec.StaffID),
		Name:     name,
		Position: position,
		Month:    rec.Month,
		Year:     rec.Year,

		WeeklyHours: rec.WeeklyHours,
		PresentDays: rec.PresentDays,

		BasePay:             rec.BasePay,
		StructuralAllowance: rec.StructuralAllowance,
		TransportAllowance:  rec.TransportAllowance,
		TenureAllowance:     rec.TenureAllowance,
		ActivityAllowance:   rec.ActivityAllowance,
		MeetingAllowance:    rec.MeetingAllowance,
		GrossTotal:          rec.GrossTotal,
		DeductionTotal:      rec.DeductionTotal,
		NetTotal:            rec.NetTotal,

		Status: string(rec.Status),
	}
}

func toRecordDetailDTO(rec bisyaroh.CompensationRecord, name, position string) RecordDetailDTO {
	return RecordDetailDTO{
		RecordSummaryDTO: toRecordSummaryDTO(rec, name, position),
		Deductions:       rec.Deductions,
		TeachingDetail:   rec.TeachingDetail,
		ActivityDetail:   rec.ActivityDetail,
		MeetingDetail:    rec.MeetingDetail,
	}
}

func toSnapshotSummaryDTO(snap bisyaroh.HistorySnapshot) SnapshotSummaryDTO {
	period := bisyaroh.Period{Month: snap.Month, Year: snap.Year}
	dto := SnapshotSummaryDTO{
		ID:         string(snap.ID),
		Month:      snap.Month,
		Year:       snap.Year,
		Period:     period.String(),
		Label:      snap.Label,
		Notes:      snap.Notes,
		StaffCount: snap.StaffCount,
		TotalGross: snap.TotalGross,
		TotalNet:   snap.TotalNet,
		Status:     string(snap.Status),
		CreatedBy:  snap.CreatedBy,
		CreatedAt:  snap.CreatedAt.Format(time.RFC3339),
		LockedBy:   snap.LockedBy,
	}
	if snap.LockedAt != nil {
		dto.LockedAt = snap.LockedAt.Format(time.RFC3339)
	}
	return dto
}

func toSettingDTO(s bisyaroh.Setting) SettingDTO {
	return SettingDTO{
		ID:        s.ID,
		Key:       s.Key,
		Value:     s.Value,
		Type:      string(s.Type),
		Category:  s.Category,
		Label:     s.Label,
		SortOrder: s.SortOrder,
	}
}

func toActivityDTO(act bisyaroh.Activity, names map[bisyaroh.StaffID]string) ActivityDTO {
	dto := ActivityDTO{
		ID:              act.ID,
		Name:            act.Name,
		ResponsibleID:   string(act.ResponsibleID),
		ResponsibleName: names[act.ResponsibleID],
		Start:           act.Start.Format("2006-01-02"),
	}
	if !act.End.IsZero() {
		dto.End = act.End.Format("2006-01-02")
	}
	for _, id := range act.AssistantIDs {
		dto.AssistantIDs = append(dto.AssistantIDs, string(id))
	}
	return dto
}

func toMeetingDTO(m bisyaroh.Meeting, names map[bisyaroh.StaffID]string) MeetingDTO {
	dto := MeetingDTO{
		ID:            m.ID,
		Agenda:        m.Agenda,
		Venue:         m.Venue,
		Date:          m.Date.Format("2006-01-02"),
		ChairID:       string(m.ChairID),
		ChairName:     names[m.ChairID],
		SecretaryID:   string(m.SecretaryID),
		SecretaryName: names[m.SecretaryID],
	}
	for _, id := range m.ParticipantIDs {
		dto.ParticipantIDs = append(dto.ParticipantIDs, string(id))
	}
	return dto
}
