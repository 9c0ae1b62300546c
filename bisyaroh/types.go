/*
Package bisyaroh implements the monthly staff compensation engine.

PURPOSE:
  "Bisyaroh" is the monthly honorarium paid to teaching and administrative
  staff. The engine correlates three independently maintained attendance
  subsystems (teaching sessions, institutional activities, committee
  meetings), applies a configuration-driven pay-rule stack, and produces
  one compensation record per (staff, month, year) that can be regenerated
  safely and snapshotted for audit.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: integer amount in the smallest currency unit (rupiah)
  - StaffMember: read-only profile from the staff directory
  - Attendance records: per-date presence across the three subsystems
  - CompensationRecord: the computed monthly breakdown + audit detail
  - HistorySnapshot: a frozen, lockable copy of a period's records

DESIGN PRINCIPLES:
  1. Purity: calculation is a function of its inputs, no ambient state
  2. Exactness: all money is int64 in the smallest unit, never floats
  3. Idempotence: regeneration upserts, it never duplicates
  4. Auditability: every allowance line is traceable to its source event

SEE ALSO:
  - calculator.go: the pure pay-rule stack
  - generate.go: per-period orchestration and upsert
  - history.go: snapshot / lock / delete workflow
*/
package bisyaroh

import "time"

// =============================================================================
// MONEY - integer amounts in the smallest currency unit
// =============================================================================

// Money is an amount in the smallest currency unit. Every component amount
// is non-negative; only a net total may go below zero.
type Money int64

// =============================================================================
// IDENTIFIERS
// =============================================================================

type StaffID string
type RecordID string
type SnapshotID string

// =============================================================================
// STAFF - read-only profile from the staff directory
// =============================================================================

// StaffMember is the slice of the staff directory the engine needs.
// Roles are canonical machine names (e.g. "waka_kurikulum"); Position is
// the free-text label maintained by the admin office and is only used as
// an alias fallback when resolving allowance categories.
type StaffMember struct {
	ID          StaffID
	Name        string
	EmployeeNo  string
	Active      bool
	TenureStart time.Time // zero value means unknown
	Position    string
	Roles       []string
}

// ScheduleBlock is one assigned teaching block. A block spanning lesson
// periods N..M contributes M-N+1 weekly hours.
type ScheduleBlock struct {
	StaffID     StaffID
	Subject     string
	Class       string
	Day         string
	StartPeriod int
	EndPeriod   int
}

// Hours returns the weekly hours this block contributes.
func (b ScheduleBlock) Hours() int {
	if b.EndPeriod < b.StartPeriod {
		return 1
	}
	return b.EndPeriod - b.StartPeriod + 1
}

// WeeklyHours sums the hours of all blocks.
func WeeklyHours(blocks []ScheduleBlock) int {
	total := 0
	for _, b := range blocks {
		total += b.Hours()
	}
	return total
}

// =============================================================================
// ATTENDANCE - per-date presence across the three subsystems
// =============================================================================

// TeachingAttendanceRecord is one scheduled session on one date.
type TeachingAttendanceRecord struct {
	StaffID StaffID
	Date    time.Time
	Subject string
	Class   string
	Periods string // display label, e.g. "7-8"
	Present bool
}

// Activity is an institutional activity with a responsible coordinator and
// optional assistant staff.
type Activity struct {
	ID            string
	Name          string
	ResponsibleID StaffID // empty when no responsible staff could be resolved
	AssistantIDs  []StaffID
	Start         time.Time
	End           time.Time
}

// ActivityAttendanceRecord is one activity session on one date. Assistant
// presence is keyed by staff id; upstream payload shapes are normalized to
// this mapping at the store boundary.
type ActivityAttendanceRecord struct {
	ActivityID         string
	Date               time.Time
	ResponsiblePresent bool
	AssistantPresence  map[StaffID]bool
}

// Meeting is a committee meeting with a chair, a secretary and participants.
type Meeting struct {
	ID             string
	Agenda         string
	Venue          string
	Date           time.Time
	ChairID        StaffID
	SecretaryID    StaffID
	ParticipantIDs []StaffID
}

// MeetingAttendanceRecord carries dedicated flags for chair and secretary
// and a keyed presence mapping for everyone else.
type MeetingAttendanceRecord struct {
	MeetingID           string
	ChairPresent        bool
	SecretaryPresent    bool
	ParticipantPresence map[StaffID]bool
}

// =============================================================================
// RATES & DEDUCTIONS - resolved configuration for one calculation
// =============================================================================

// RateSettings is the fully resolved rate table handed to the calculator.
// Structural holds the per-category allowance amounts keyed by allowance
// category (see roles.go).
type RateSettings struct {
	TeachingHourly      Money
	TransportDaily      Money
	TenureYearly        Money
	ActivityCoordinator Money
	ActivityAssistant   Money
	MeetingFlat         Money
	Structural          map[string]Money
}

// DeductionLine is one configured flat deduction. Order follows the
// configured sort order and is preserved through records and snapshots.
type DeductionLine struct {
	Label  string `json:"label"`
	Amount Money  `json:"amount"`
}

// DeductionTotal sums the lines.
func DeductionTotal(lines []DeductionLine) Money {
	var total Money
	for _, l := range lines {
		total += l.Amount
	}
	return total
}

// =============================================================================
// COMPENSATION RECORD - the computed monthly breakdown
// =============================================================================

type RecordStatus string

const (
	StatusDraft     RecordStatus = "draft"
	StatusSubmitted RecordStatus = "submitted"
)

// Activity roles as they appear in audit detail. RoleNone marks an activity
// the staff member was not assigned to (kept in the detail for visibility).
const (
	RoleCoordinator = "coordinator"
	RoleAssistant   = "assistant"
	RoleNone        = "-"
)

// TeachingDetail is one line of the teaching audit log.
type TeachingDetail struct {
	Date    string `json:"date"`
	Subject string `json:"subject"`
	Class   string `json:"class"`
	Periods string `json:"periods"`
	Present bool   `json:"present"`
}

// ActivityDetail is one line of the activity audit log. Amount is the
// allowance earned from this activity; zero for non-qualifying roles.
type ActivityDetail struct {
	ActivityID string `json:"activity_id"`
	Name       string `json:"name"`
	Date       string `json:"date"`
	Role       string `json:"role"`
	Attended   int    `json:"attended"`
	Sessions   int    `json:"sessions"`
	Amount     Money  `json:"amount"`
	Note       string `json:"note,omitempty"`
}

// MeetingDetail is one line of the meeting audit log.
type MeetingDetail struct {
	MeetingID string `json:"meeting_id"`
	Agenda    string `json:"agenda"`
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	Attended  bool   `json:"attended"`
	Amount    Money  `json:"amount"`
}

// CompensationRecord is the monthly breakdown for one staff member.
// Unique per (StaffID, Month, Year); regeneration overwrites in place.
type CompensationRecord struct {
	ID      RecordID
	StaffID StaffID
	Month   int
	Year    int

	WeeklyHours int
	PresentDays int

	BasePay             Money
	StructuralAllowance Money
	TransportAllowance  Money
	TenureAllowance     Money
	ActivityAllowance   Money
	MeetingAllowance    Money
	GrossTotal          Money

	Deductions     []DeductionLine
	DeductionTotal Money
	NetTotal       Money // gross - deductions; may be negative

	TeachingDetail []TeachingDetail
	ActivityDetail []ActivityDetail
	MeetingDetail  []MeetingDetail

	Status RecordStatus
}

// =============================================================================
// HISTORY SNAPSHOT - frozen period records for audit
// =============================================================================

type SnapshotStatus string

const (
	SnapshotDraft  SnapshotStatus = "draft"
	SnapshotLocked SnapshotStatus = "locked"
)

// HistoryRow is one staff member's frozen breakdown inside a snapshot.
// Name and Position are copied at snapshot time so later directory edits
// cannot rewrite history.
type HistoryRow struct {
	StaffID  StaffID `json:"staff_id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`

	WeeklyHours int `json:"weekly_hours"`
	PresentDays int `json:"present_days"`

	BasePay             Money `json:"base_pay"`
	StructuralAllowance Money `json:"structural_allowance"`
	TransportAllowance  Money `json:"transport_allowance"`
	TenureAllowance     Money `json:"tenure_allowance"`
	ActivityAllowance   Money `json:"activity_allowance"`
	MeetingAllowance    Money `json:"meeting_allowance"`
	GrossTotal          Money `json:"gross_total"`

	Deductions     []DeductionLine `json:"deductions"`
	DeductionTotal Money           `json:"deduction_total"`
	NetTotal       Money           `json:"net_total"`

	ActivityDetail []ActivityDetail `json:"activity_detail,omitempty"`
	MeetingDetail  []MeetingDetail  `json:"meeting_detail,omitempty"`
}

// HistorySnapshot is an immutable-capable copy of a period's records.
// Multiple snapshots may exist for the same period.
type HistorySnapshot struct {
	ID    SnapshotID
	Month int
	Year  int
	Label string
	Notes string

	Rows       []HistoryRow
	StaffCount int
	TotalGross Money
	TotalNet   Money

	Status    SnapshotStatus
	CreatedBy string
	CreatedAt time.Time
	LockedBy  string // empty unless locked
	LockedAt  *time.Time
}

// Locked reports whether the snapshot is currently locked.
func (s *HistorySnapshot) Locked() bool { return s.Status == SnapshotLocked }

// =============================================================================
// DATE HELPERS
// =============================================================================

// DateKey collapses a timestamp to its calendar date, the unit of the
// present-day set.
func DateKey(t time.Time) string { return t.Format("2006-01-02") }
