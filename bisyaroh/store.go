/*
store.go - Persistence interfaces

PURPOSE:
  Defines the boundary between the engine and its collaborators. The
  attendance subsystems, the staff directory and the settings table are
  read-only upstream systems; compensation records and history snapshots
  are the engine's own write surface.

ATOMICITY:
  Store.WithTx runs a function against a transactional view. generate()
  is the only multi-row write and runs entirely inside one transaction:
  a mid-run failure leaves the period's records exactly as before.

IMPLEMENTATIONS:
  - store/sqlite: production SQLite store
  - bisyaroh/store: in-memory store for tests and demos
*/
package bisyaroh

import "context"

// =============================================================================
// READ COLLABORATORS
// =============================================================================

// StaffDirectory exposes staff profiles. The engine never writes here.
type StaffDirectory interface {
	// ListActiveStaff returns all currently active staff members.
	ListActiveStaff(ctx context.Context) ([]StaffMember, error)

	// GetStaff returns one staff member, active or not.
	GetStaff(ctx context.Context, id StaffID) (*StaffMember, error)

	// ListScheduleBlocks returns the assigned teaching blocks for one
	// staff member. Weekly hours are recomputed from these each run.
	ListScheduleBlocks(ctx context.Context, id StaffID) ([]ScheduleBlock, error)
}

// TeachingAttendance exposes per-session presence.
type TeachingAttendance interface {
	ListTeachingAttendance(ctx context.Context, id StaffID, period Period) ([]TeachingAttendanceRecord, error)
}

// ActivityAttendance exposes activities and their session attendance.
type ActivityAttendance interface {
	// ListActivities returns activities whose date window intersects the
	// period, regardless of who is assigned.
	ListActivities(ctx context.Context, period Period) ([]Activity, error)

	// ListActivitySessions returns the attendance sessions recorded for
	// one activity within the period.
	ListActivitySessions(ctx context.Context, activityID string, period Period) ([]ActivityAttendanceRecord, error)
}

// MeetingAttendance exposes meetings and their attendance.
type MeetingAttendance interface {
	ListMeetings(ctx context.Context, period Period) ([]Meeting, error)

	// GetMeetingAttendance returns the attendance record for one meeting,
	// or nil when none was taken.
	GetMeetingAttendance(ctx context.Context, meetingID string) (*MeetingAttendanceRecord, error)
}

// SettingsStore exposes the typed key/value rate settings.
type SettingsStore interface {
	// Get returns the setting for a key. A missing key is (zero, false,
	// nil), not an error: callers supply defaults.
	Get(ctx context.Context, key string) (Setting, bool, error)

	// ListByCategory returns a category's settings in sort order.
	ListByCategory(ctx context.Context, category string) ([]Setting, error)
}

// =============================================================================
// WRITE SURFACE
// =============================================================================

// CompensationStore persists the engine's records.
type CompensationStore interface {
	// UpsertRecord writes a record keyed by (staff, month, year),
	// overwriting any prior values. The stored id is returned.
	UpsertRecord(ctx context.Context, rec CompensationRecord) (RecordID, error)

	// ListRecords returns the period's records for the given staff ids,
	// ordered by staff name where the store can.
	ListRecords(ctx context.Context, period Period, staffIDs []StaffID) ([]CompensationRecord, error)

	// GetRecord returns one record with full audit detail.
	GetRecord(ctx context.Context, id RecordID) (*CompensationRecord, error)

	// DeleteRecords removes all records for a period, returning the count.
	DeleteRecords(ctx context.Context, period Period) (int, error)

	// DeleteStaleRecords removes the period's records for staff NOT in
	// keep, returning the count. Used to prune rows of deactivated staff.
	DeleteStaleRecords(ctx context.Context, period Period, keep []StaffID) (int, error)
}

// HistoryStore persists snapshots.
type HistoryStore interface {
	SaveSnapshot(ctx context.Context, snap HistorySnapshot) error
	GetSnapshot(ctx context.Context, id SnapshotID) (*HistorySnapshot, error)

	// ListSnapshots returns snapshot summaries (no rows), newest first.
	// Zero filter values mean "any".
	ListSnapshots(ctx context.Context, month, year int) ([]HistorySnapshot, error)

	// UpdateSnapshotLock flips the lock fields in place.
	UpdateSnapshotLock(ctx context.Context, id SnapshotID, status SnapshotStatus, lockedBy string) error

	DeleteSnapshot(ctx context.Context, id SnapshotID) error
}

// =============================================================================
// ADMIN & SEEDING
// =============================================================================

// SettingsAdmin extends SettingsStore with the management operations the
// settings screen uses.
type SettingsAdmin interface {
	// ListSettings returns every setting ordered by category, then sort
	// order.
	ListSettings(ctx context.Context) ([]Setting, error)

	// UpdateSettingValue rewrites the value of an existing key.
	UpdateSettingValue(ctx context.Context, key, value string) error

	// AddSetting inserts a new setting; its sort order is assigned as
	// max+1 within its category. The stored setting is returned.
	AddSetting(ctx context.Context, s Setting) (Setting, error)

	// DeleteSetting removes a setting by id.
	DeleteSetting(ctx context.Context, id string) error
}

// Seeder is the write path of the upstream collaborators. The engine
// itself never calls it; importers, demos and tests do.
type Seeder interface {
	SaveStaff(ctx context.Context, member StaffMember) error
	SaveScheduleBlock(ctx context.Context, block ScheduleBlock) error
	SaveTeachingAttendance(ctx context.Context, rec TeachingAttendanceRecord) error
	SaveActivity(ctx context.Context, act Activity) error
	SaveActivitySession(ctx context.Context, rec ActivityAttendanceRecord) error
	SaveMeeting(ctx context.Context, meeting Meeting) error
	SaveMeetingAttendance(ctx context.Context, rec MeetingAttendanceRecord) error
	UpsertSetting(ctx context.Context, s Setting) error
}

// =============================================================================
// STORE - everything the engine touches, plus transactions
// =============================================================================

// Store aggregates all collaborator interfaces. One backing database
// serves them all in practice; tests may compose narrower fakes.
type Store interface {
	StaffDirectory
	TeachingAttendance
	ActivityAttendance
	MeetingAttendance
	SettingsStore
	CompensationStore
	HistoryStore
}

// TxStore runs work atomically. If fn returns an error the transaction is
// rolled back and nothing is visible; otherwise it commits.
type TxStore interface {
	Store
	WithTx(ctx context.Context, fn func(Store) error) error
}
