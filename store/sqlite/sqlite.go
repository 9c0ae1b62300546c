/*
Package sqlite provides the SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements bisyaroh.TxStore plus the admin and seeding interfaces
  against a single SQLite database. In production, the same patterns
  apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  staff                 directory mirror (read-mostly)
  schedule_blocks       assigned teaching blocks (weekly load source)
  teaching_attendance   per-session presence
  activities            institutional activities + assistants
  activity_sessions     per-activity per-date presence
  meetings              committee meetings + participants
  meeting_attendance    chair/secretary flags + participant presence
  settings              typed key/value rates and deduction lines
  compensation_records  one row per (staff, month, year)
  history_snapshots     frozen period payloads with lock state

UPSERT CONTRACT:
  compensation_records carries UNIQUE(staff_id, month, year); generation
  rewrites rows in place via ON CONFLICT DO UPDATE, so re-running a
  period can never duplicate a record. The original row id survives the
  rewrite.

CONCURRENCY:
  Uses sync.RWMutex for in-process safety; SQLite is opened in WAL mode
  for crash recovery. Every query helper takes a queryer so the same
  code serves both the plain connection and an open transaction.

USAGE:
  store, err := sqlite.New("./data/bisyaroh.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper
  migration tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - bisyaroh/store.go: interface definitions
  - bisyaroh/store/memory.go: in-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

const dateLayout = "2006-01-02"

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	-- Staff directory mirror
	CREATE TABLE IF NOT EXISTS staff (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		employee_no TEXT,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		tenure_start TEXT,
		position TEXT,
		roles_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_staff_active ON staff(active);

	-- Assigned teaching blocks
	CREATE TABLE IF NOT EXISTS schedule_blocks (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		subject TEXT,
		class TEXT,
		day TEXT,
		start_period INTEGER NOT NULL,
		end_period INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_schedule_blocks_staff ON schedule_blocks(staff_id);

	-- Per-session teaching presence
	CREATE TABLE IF NOT EXISTS teaching_attendance (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		date TEXT NOT NULL,
		subject TEXT,
		class TEXT,
		periods TEXT,
		present BOOLEAN NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_teaching_attendance_staff_date
		ON teaching_attendance(staff_id, date);

	-- Institutional activities
	CREATE TABLE IF NOT EXISTS activities (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		responsible_id TEXT,
		assistant_ids_json TEXT,
		start_date TEXT NOT NULL,
		end_date TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_activities_start ON activities(start_date);

	CREATE TABLE IF NOT EXISTS activity_sessions (
		id TEXT PRIMARY KEY,
		activity_id TEXT NOT NULL,
		date TEXT NOT NULL,
		responsible_present BOOLEAN NOT NULL DEFAULT FALSE,
		assistant_presence_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_activity_sessions_activity_date
		ON activity_sessions(activity_id, date);

	-- Committee meetings
	CREATE TABLE IF NOT EXISTS meetings (
		id TEXT PRIMARY KEY,
		agenda TEXT,
		venue TEXT,
		date TEXT NOT NULL,
		chair_id TEXT,
		secretary_id TEXT,
		participant_ids_json TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_meetings_date ON meetings(date);

	CREATE TABLE IF NOT EXISTS meeting_attendance (
		meeting_id TEXT PRIMARY KEY,
		chair_present BOOLEAN NOT NULL DEFAULT FALSE,
		secretary_present BOOLEAN NOT NULL DEFAULT FALSE,
		participant_presence_json TEXT
	);

	-- Typed key/value settings
	CREATE TABLE IF NOT EXISTS settings (
		id TEXT PRIMARY KEY,
		key TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL,
		type TEXT NOT NULL DEFAULT 'integer',
		category TEXT NOT NULL,
		label TEXT NOT NULL,
		sort_order INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_settings_category ON settings(category, sort_order);

	-- Engine write surface
	CREATE TABLE IF NOT EXISTS compensation_records (
		id TEXT PRIMARY KEY,
		staff_id TEXT NOT NULL,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		weekly_hours INTEGER NOT NULL,
		present_days INTEGER NOT NULL,
		base_pay INTEGER NOT NULL,
		structural_allowance INTEGER NOT NULL,
		transport_allowance INTEGER NOT NULL,
		tenure_allowance INTEGER NOT NULL,
		activity_allowance INTEGER NOT NULL,
		meeting_allowance INTEGER NOT NULL,
		gross_total INTEGER NOT NULL,
		deductions_json TEXT,
		deduction_total INTEGER NOT NULL,
		net_total INTEGER NOT NULL,
		teaching_detail_json TEXT,
		activity_detail_json TEXT,
		meeting_detail_json TEXT,
		status TEXT NOT NULL DEFAULT 'draft',
		UNIQUE(staff_id, month, year)
	);

	CREATE INDEX IF NOT EXISTS idx_compensation_period
		ON compensation_records(year, month);

	CREATE TABLE IF NOT EXISTS history_snapshots (
		id TEXT PRIMARY KEY,
		month INTEGER NOT NULL,
		year INTEGER NOT NULL,
		label TEXT,
		notes TEXT,
		rows_json TEXT NOT NULL,
		staff_count INTEGER NOT NULL,
		total_gross INTEGER NOT NULL,
		total_net INTEGER NOT NULL,
		status TEXT NOT NULL DEFAULT 'draft',
		created_by TEXT,
		created_at TEXT NOT NULL,
		locked_by TEXT,
		locked_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_period ON history_snapshots(year, month);
	`

	_, err := s.db.Exec(schema)
	return err
}

// queryer abstracts *sql.DB and *sql.Tx so every query helper works both
// inside and outside a transaction.
type queryer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =============================================================================
// STAFF DIRECTORY
// =============================================================================

func (s *Store) ListActiveStaff(ctx context.Context) ([]bisyaroh.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listActiveStaff(ctx, s.db)
}

func (s *Store) listActiveStaff(ctx context.Context, q queryer) ([]bisyaroh.StaffMember, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, employee_no, active, tenure_start, position, roles_json
		FROM staff WHERE active = TRUE ORDER BY name, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var staff []bisyaroh.StaffMember
	for rows.Next() {
		member, err := scanStaff(rows)
		if err != nil {
			return nil, err
		}
		staff = append(staff, member)
	}
	return staff, rows.Err()
}

func (s *Store) GetStaff(ctx context.Context, id bisyaroh.StaffID) (*bisyaroh.StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getStaff(ctx, s.db, id)
}

func (s *Store) getStaff(ctx context.Context, q queryer, id bisyaroh.StaffID) (*bisyaroh.StaffMember, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, employee_no, active, tenure_start, position, roles_json
		FROM staff WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	member, err := scanStaff(rows)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func scanStaff(rows *sql.Rows) (bisyaroh.StaffMember, error) {
	var (
		member      bisyaroh.StaffMember
		employeeNo  sql.NullString
		tenureStart sql.NullString
		position    sql.NullString
		rolesJSON   sql.NullString
	)
	if err := rows.Scan(&member.ID, &member.Name, &employeeNo, &member.Active,
		&tenureStart, &position, &rolesJSON); err != nil {
		return member, fmt.Errorf("failed to scan staff: %w", err)
	}
	member.EmployeeNo = employeeNo.String
	member.Position = position.String
	if tenureStart.Valid && tenureStart.String != "" {
		t, err := time.Parse(dateLayout, tenureStart.String)
		if err != nil {
			return member, &bisyaroh.ComputationError{Entity: "staff", ID: string(member.ID), Message: "unreadable tenure date"}
		}
		member.TenureStart = t
	}
	if rolesJSON.Valid && rolesJSON.String != "" {
		if err := json.Unmarshal([]byte(rolesJSON.String), &member.Roles); err != nil {
			return member, &bisyaroh.ComputationError{Entity: "staff", ID: string(member.ID), Message: "unreadable roles payload"}
		}
	}
	return member, nil
}

func (s *Store) ListScheduleBlocks(ctx context.Context, id bisyaroh.StaffID) ([]bisyaroh.ScheduleBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listScheduleBlocks(ctx, s.db, id)
}

func (s *Store) listScheduleBlocks(ctx context.Context, q queryer, id bisyaroh.StaffID) ([]bisyaroh.ScheduleBlock, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT staff_id, subject, class, day, start_period, end_period
		FROM schedule_blocks WHERE staff_id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []bisyaroh.ScheduleBlock
	for rows.Next() {
		var b bisyaroh.ScheduleBlock
		var subject, class, day sql.NullString
		if err := rows.Scan(&b.StaffID, &subject, &class, &day, &b.StartPeriod, &b.EndPeriod); err != nil {
			return nil, err
		}
		b.Subject, b.Class, b.Day = subject.String, class.String, day.String
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// =============================================================================
// ATTENDANCE SOURCES
// =============================================================================

func (s *Store) ListTeachingAttendance(ctx context.Context, id bisyaroh.StaffID, period bisyaroh.Period) ([]bisyaroh.TeachingAttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listTeachingAttendance(ctx, s.db, id, period)
}

func (s *Store) listTeachingAttendance(ctx context.Context, q queryer, id bisyaroh.StaffID, period bisyaroh.Period) ([]bisyaroh.TeachingAttendanceRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT staff_id, date, subject, class, periods, present
		FROM teaching_attendance
		WHERE staff_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, id, period.Start().Format(dateLayout), period.End().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []bisyaroh.TeachingAttendanceRecord
	for rows.Next() {
		var rec bisyaroh.TeachingAttendanceRecord
		var date string
		var subject, class, periods sql.NullString
		if err := rows.Scan(&rec.StaffID, &date, &subject, &class, &periods, &rec.Present); err != nil {
			return nil, err
		}
		rec.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, &bisyaroh.ComputationError{Entity: "teaching attendance", ID: string(id), Message: "unreadable date"}
		}
		rec.Subject, rec.Class, rec.Periods = subject.String, class.String, periods.String
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) ListActivities(ctx context.Context, period bisyaroh.Period) ([]bisyaroh.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listActivities(ctx, s.db, period)
}

func (s *Store) listActivities(ctx context.Context, q queryer, period bisyaroh.Period) ([]bisyaroh.Activity, error) {
	// Window intersection: started before the month ends and ending after
	// it starts. A missing end date collapses to a single-day window at
	// the start date, matching Period.Overlaps.
	rows, err := q.QueryContext(ctx, `
		SELECT id, name, responsible_id, assistant_ids_json, start_date, end_date
		FROM activities
		WHERE start_date <= ?
		  AND (CASE WHEN end_date IS NULL OR end_date = '' THEN start_date ELSE end_date END) >= ?
		ORDER BY start_date, id`,
		period.End().Format(dateLayout), period.Start().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []bisyaroh.Activity
	for rows.Next() {
		var act bisyaroh.Activity
		var responsible, assistants, endDate sql.NullString
		var startDate string
		if err := rows.Scan(&act.ID, &act.Name, &responsible, &assistants, &startDate, &endDate); err != nil {
			return nil, err
		}
		act.ResponsibleID = bisyaroh.StaffID(responsible.String)
		act.Start, err = time.Parse(dateLayout, startDate)
		if err != nil {
			return nil, &bisyaroh.ComputationError{Entity: "activity", ID: act.ID, Message: "unreadable start date"}
		}
		if endDate.Valid && endDate.String != "" {
			act.End, err = time.Parse(dateLayout, endDate.String)
			if err != nil {
				return nil, &bisyaroh.ComputationError{Entity: "activity", ID: act.ID, Message: "unreadable end date"}
			}
		}
		if assistants.Valid && assistants.String != "" {
			if err := json.Unmarshal([]byte(assistants.String), &act.AssistantIDs); err != nil {
				return nil, &bisyaroh.ComputationError{Entity: "activity", ID: act.ID, Message: "unreadable assistant list"}
			}
		}
		acts = append(acts, act)
	}
	return acts, rows.Err()
}

func (s *Store) ListActivitySessions(ctx context.Context, activityID string, period bisyaroh.Period) ([]bisyaroh.ActivityAttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listActivitySessions(ctx, s.db, activityID, period)
}

func (s *Store) listActivitySessions(ctx context.Context, q queryer, activityID string, period bisyaroh.Period) ([]bisyaroh.ActivityAttendanceRecord, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT activity_id, date, responsible_present, assistant_presence_json
		FROM activity_sessions
		WHERE activity_id = ? AND date >= ? AND date <= ?
		ORDER BY date`, activityID, period.Start().Format(dateLayout), period.End().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []bisyaroh.ActivityAttendanceRecord
	for rows.Next() {
		var rec bisyaroh.ActivityAttendanceRecord
		var date string
		var presence sql.NullString
		if err := rows.Scan(&rec.ActivityID, &date, &rec.ResponsiblePresent, &presence); err != nil {
			return nil, err
		}
		rec.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, &bisyaroh.ComputationError{Entity: "activity session", ID: activityID, Message: "unreadable date"}
		}
		if presence.Valid && presence.String != "" {
			if err := json.Unmarshal([]byte(presence.String), &rec.AssistantPresence); err != nil {
				return nil, &bisyaroh.ComputationError{Entity: "activity session", ID: activityID, Message: "unreadable assistant presence"}
			}
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) ListMeetings(ctx context.Context, period bisyaroh.Period) ([]bisyaroh.Meeting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listMeetings(ctx, s.db, period)
}

func (s *Store) listMeetings(ctx context.Context, q queryer, period bisyaroh.Period) ([]bisyaroh.Meeting, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, agenda, venue, date, chair_id, secretary_id, participant_ids_json
		FROM meetings
		WHERE date >= ? AND date <= ?
		ORDER BY date, id`, period.Start().Format(dateLayout), period.End().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetings []bisyaroh.Meeting
	for rows.Next() {
		var m bisyaroh.Meeting
		var agenda, venue, chair, secretary, participants sql.NullString
		var date string
		if err := rows.Scan(&m.ID, &agenda, &venue, &date, &chair, &secretary, &participants); err != nil {
			return nil, err
		}
		m.Agenda, m.Venue = agenda.String, venue.String
		m.ChairID = bisyaroh.StaffID(chair.String)
		m.SecretaryID = bisyaroh.StaffID(secretary.String)
		m.Date, err = time.Parse(dateLayout, date)
		if err != nil {
			return nil, &bisyaroh.ComputationError{Entity: "meeting", ID: m.ID, Message: "unreadable date"}
		}
		if participants.Valid && participants.String != "" {
			if err := json.Unmarshal([]byte(participants.String), &m.ParticipantIDs); err != nil {
				return nil, &bisyaroh.ComputationError{Entity: "meeting", ID: m.ID, Message: "unreadable participant list"}
			}
		}
		meetings = append(meetings, m)
	}
	return meetings, rows.Err()
}

func (s *Store) GetMeetingAttendance(ctx context.Context, meetingID string) (*bisyaroh.MeetingAttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getMeetingAttendance(ctx, s.db, meetingID)
}

func (s *Store) getMeetingAttendance(ctx context.Context, q queryer, meetingID string) (*bisyaroh.MeetingAttendanceRecord, error) {
	var rec bisyaroh.MeetingAttendanceRecord
	var presence sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT meeting_id, chair_present, secretary_present, participant_presence_json
		FROM meeting_attendance WHERE meeting_id = ?`, meetingID).
		Scan(&rec.MeetingID, &rec.ChairPresent, &rec.SecretaryPresent, &presence)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if presence.Valid && presence.String != "" {
		if err := json.Unmarshal([]byte(presence.String), &rec.ParticipantPresence); err != nil {
			return nil, &bisyaroh.ComputationError{Entity: "meeting attendance", ID: meetingID, Message: "unreadable participant presence"}
		}
	}
	return &rec, nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) Get(ctx context.Context, key string) (bisyaroh.Setting, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSetting(ctx, s.db, key)
}

func (s *Store) getSetting(ctx context.Context, q queryer, key string) (bisyaroh.Setting, bool, error) {
	var setting bisyaroh.Setting
	err := q.QueryRowContext(ctx, `
		SELECT id, key, value, type, category, label, sort_order
		FROM settings WHERE key = ?`, key).
		Scan(&setting.ID, &setting.Key, &setting.Value, &setting.Type,
			&setting.Category, &setting.Label, &setting.SortOrder)
	if err == sql.ErrNoRows {
		return bisyaroh.Setting{}, false, nil
	}
	if err != nil {
		return bisyaroh.Setting{}, false, err
	}
	return setting, true, nil
}

func (s *Store) ListByCategory(ctx context.Context, category string) ([]bisyaroh.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listByCategory(ctx, s.db, category)
}

func (s *Store) listByCategory(ctx context.Context, q queryer, category string) ([]bisyaroh.Setting, error) {
	return querySettings(ctx, q, `
		SELECT id, key, value, type, category, label, sort_order
		FROM settings WHERE category = ? ORDER BY sort_order`, category)
}

func (s *Store) ListSettings(ctx context.Context) ([]bisyaroh.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return querySettings(ctx, s.db, `
		SELECT id, key, value, type, category, label, sort_order
		FROM settings ORDER BY category, sort_order`)
}

func querySettings(ctx context.Context, q queryer, query string, args ...any) ([]bisyaroh.Setting, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []bisyaroh.Setting
	for rows.Next() {
		var setting bisyaroh.Setting
		if err := rows.Scan(&setting.ID, &setting.Key, &setting.Value, &setting.Type,
			&setting.Category, &setting.Label, &setting.SortOrder); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *Store) UpsertSetting(ctx context.Context, setting bisyaroh.Setting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, key, value, type, category, label, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			type = excluded.type,
			category = excluded.category,
			label = excluded.label,
			sort_order = excluded.sort_order`,
		setting.ID, setting.Key, setting.Value, setting.Type,
		setting.Category, setting.Label, setting.SortOrder)
	return err
}

func (s *Store) UpdateSettingValue(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `UPDATE settings SET value = ? WHERE key = ?`, value, key)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &bisyaroh.NotFoundError{Entity: "setting", ID: key}
	}
	return nil
}

func (s *Store) AddSetting(ctx context.Context, setting bisyaroh.Setting) (bisyaroh.Setting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}

	var maxSort sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(sort_order) FROM settings WHERE category = ?`, setting.Category).
		Scan(&maxSort); err != nil {
		return bisyaroh.Setting{}, err
	}
	setting.SortOrder = int(maxSort.Int64) + 1

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (id, key, value, type, category, label, sort_order)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		setting.ID, setting.Key, setting.Value, setting.Type,
		setting.Category, setting.Label, setting.SortOrder)
	if err != nil {
		if isUniqueConstraintError(err) {
			return bisyaroh.Setting{}, &bisyaroh.ConflictError{Message: "setting key already exists: " + setting.Key}
		}
		return bisyaroh.Setting{}, err
	}
	return setting, nil
}

func (s *Store) DeleteSetting(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM settings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &bisyaroh.NotFoundError{Entity: "setting", ID: id}
	}
	return nil
}

// =============================================================================
// COMPENSATION RECORDS
// =============================================================================

const recordColumns = `
	id, staff_id, month, year, weekly_hours, present_days,
	base_pay, structural_allowance, transport_allowance, tenure_allowance,
	activity_allowance, meeting_allowance, gross_total,
	deductions_json, deduction_total, net_total,
	teaching_detail_json, activity_detail_json, meeting_detail_json, status`

func (s *Store) UpsertRecord(ctx context.Context, rec bisyaroh.CompensationRecord) (bisyaroh.RecordID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.upsertRecord(ctx, s.db, rec)
}

func (s *Store) upsertRecord(ctx context.Context, q queryer, rec bisyaroh.CompensationRecord) (bisyaroh.RecordID, error) {
	if rec.ID == "" {
		rec.ID = bisyaroh.RecordID(uuid.NewString())
	}
	deductions, err := json.Marshal(rec.Deductions)
	if err != nil {
		return "", fmt.Errorf("failed to encode deductions: %w", err)
	}
	teaching, err := json.Marshal(rec.TeachingDetail)
	if err != nil {
		return "", fmt.Errorf("failed to encode teaching detail: %w", err)
	}
	activity, err := json.Marshal(rec.ActivityDetail)
	if err != nil {
		return "", fmt.Errorf("failed to encode activity detail: %w", err)
	}
	meeting, err := json.Marshal(rec.MeetingDetail)
	if err != nil {
		return "", fmt.Errorf("failed to encode meeting detail: %w", err)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO compensation_records
		(id, staff_id, month, year, weekly_hours, present_days,
		 base_pay, structural_allowance, transport_allowance, tenure_allowance,
		 activity_allowance, meeting_allowance, gross_total,
		 deductions_json, deduction_total, net_total,
		 teaching_detail_json, activity_detail_json, meeting_detail_json, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(staff_id, month, year) DO UPDATE SET
			weekly_hours = excluded.weekly_hours,
			present_days = excluded.present_days,
			base_pay = excluded.base_pay,
			structural_allowance = excluded.structural_allowance,
			transport_allowance = excluded.transport_allowance,
			tenure_allowance = excluded.tenure_allowance,
			activity_allowance = excluded.activity_allowance,
			meeting_allowance = excluded.meeting_allowance,
			gross_total = excluded.gross_total,
			deductions_json = excluded.deductions_json,
			deduction_total = excluded.deduction_total,
			net_total = excluded.net_total,
			teaching_detail_json = excluded.teaching_detail_json,
			activity_detail_json = excluded.activity_detail_json,
			meeting_detail_json = excluded.meeting_detail_json,
			status = excluded.status`,
		rec.ID, rec.StaffID, rec.Month, rec.Year, rec.WeeklyHours, rec.PresentDays,
		rec.BasePay, rec.StructuralAllowance, rec.TransportAllowance, rec.TenureAllowance,
		rec.ActivityAllowance, rec.MeetingAllowance, rec.GrossTotal,
		string(deductions), rec.DeductionTotal, rec.NetTotal,
		string(teaching), string(activity), string(meeting), rec.Status)
	if err != nil {
		return "", fmt.Errorf("failed to upsert compensation record: %w", err)
	}

	// The conflict path keeps the original row id; read the stored one back.
	var storedID bisyaroh.RecordID
	err = q.QueryRowContext(ctx,
		`SELECT id FROM compensation_records WHERE staff_id = ? AND month = ? AND year = ?`,
		rec.StaffID, rec.Month, rec.Year).Scan(&storedID)
	if err != nil {
		return "", err
	}
	return storedID, nil
}

func (s *Store) ListRecords(ctx context.Context, period bisyaroh.Period, staffIDs []bisyaroh.StaffID) ([]bisyaroh.CompensationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listRecords(ctx, s.db, period, staffIDs)
}

func (s *Store) listRecords(ctx context.Context, q queryer, period bisyaroh.Period, staffIDs []bisyaroh.StaffID) ([]bisyaroh.CompensationRecord, error) {
	if len(staffIDs) == 0 {
		return nil, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(staffIDs)), ",")
	args := []any{period.Month, period.Year}
	for _, id := range staffIDs {
		args = append(args, id)
	}

	rows, err := q.QueryContext(ctx, `
		SELECT `+recordColumns+`
		FROM compensation_records
		WHERE month = ? AND year = ? AND staff_id IN (`+placeholders+`)
		ORDER BY (SELECT name FROM staff WHERE staff.id = compensation_records.staff_id), staff_id`,
		args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []bisyaroh.CompensationRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) GetRecord(ctx context.Context, id bisyaroh.RecordID) (*bisyaroh.CompensationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRecord(ctx, s.db, id)
}

func (s *Store) getRecord(ctx context.Context, q queryer, id bisyaroh.RecordID) (*bisyaroh.CompensationRecord, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+recordColumns+` FROM compensation_records WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecord(rows *sql.Rows) (bisyaroh.CompensationRecord, error) {
	var (
		rec        bisyaroh.CompensationRecord
		deductions sql.NullString
		teaching   sql.NullString
		activity   sql.NullString
		meeting    sql.NullString
	)
	if err := rows.Scan(&rec.ID, &rec.StaffID, &rec.Month, &rec.Year,
		&rec.WeeklyHours, &rec.PresentDays,
		&rec.BasePay, &rec.StructuralAllowance, &rec.TransportAllowance, &rec.TenureAllowance,
		&rec.ActivityAllowance, &rec.MeetingAllowance, &rec.GrossTotal,
		&deductions, &rec.DeductionTotal, &rec.NetTotal,
		&teaching, &activity, &meeting, &rec.Status); err != nil {
		return rec, fmt.Errorf("failed to scan compensation record: %w", err)
	}

	unmarshal := func(src sql.NullString, dst any, what string) error {
		if !src.Valid || src.String == "" || src.String == "null" {
			return nil
		}
		if err := json.Unmarshal([]byte(src.String), dst); err != nil {
			return &bisyaroh.ComputationError{Entity: "compensation record", ID: string(rec.ID), Message: "unreadable " + what}
		}
		return nil
	}
	if err := unmarshal(deductions, &rec.Deductions, "deduction breakdown"); err != nil {
		return rec, err
	}
	if err := unmarshal(teaching, &rec.TeachingDetail, "teaching detail"); err != nil {
		return rec, err
	}
	if err := unmarshal(activity, &rec.ActivityDetail, "activity detail"); err != nil {
		return rec, err
	}
	if err := unmarshal(meeting, &rec.MeetingDetail, "meeting detail"); err != nil {
		return rec, err
	}
	return rec, nil
}

func (s *Store) DeleteRecords(ctx context.Context, period bisyaroh.Period) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteRecords(ctx, s.db, period)
}

func (s *Store) deleteRecords(ctx context.Context, q queryer, period bisyaroh.Period) (int, error) {
	res, err := q.ExecContext(ctx,
		`DELETE FROM compensation_records WHERE month = ? AND year = ?`,
		period.Month, period.Year)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

func (s *Store) DeleteStaleRecords(ctx context.Context, period bisyaroh.Period, keep []bisyaroh.StaffID) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteStaleRecords(ctx, s.db, period, keep)
}

func (s *Store) deleteStaleRecords(ctx context.Context, q queryer, period bisyaroh.Period, keep []bisyaroh.StaffID) (int, error) {
	query := `DELETE FROM compensation_records WHERE month = ? AND year = ?`
	args := []any{period.Month, period.Year}
	if len(keep) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(keep)), ",")
		query += ` AND staff_id NOT IN (` + placeholders + `)`
		for _, id := range keep {
			args = append(args, id)
		}
	}
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// =============================================================================
// HISTORY SNAPSHOTS
// =============================================================================

const snapshotColumns = `
	id, month, year, label, notes, rows_json, staff_count,
	total_gross, total_net, status, created_by, created_at, locked_by, locked_at`

func (s *Store) SaveSnapshot(ctx context.Context, snap bisyaroh.HistorySnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveSnapshot(ctx, s.db, snap)
}

func (s *Store) saveSnapshot(ctx context.Context, q queryer, snap bisyaroh.HistorySnapshot) error {
	rowsJSON, err := json.Marshal(snap.Rows)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot rows: %w", err)
	}
	var lockedAt any
	if snap.LockedAt != nil {
		lockedAt = snap.LockedAt.UTC().Format(time.RFC3339)
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO history_snapshots
		(id, month, year, label, notes, rows_json, staff_count,
		 total_gross, total_net, status, created_by, created_at, locked_by, locked_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.Month, snap.Year, snap.Label, snap.Notes, string(rowsJSON),
		snap.StaffCount, snap.TotalGross, snap.TotalNet, snap.Status,
		snap.CreatedBy, snap.CreatedAt.UTC().Format(time.RFC3339),
		nullString(snap.LockedBy), lockedAt)
	return err
}

func (s *Store) GetSnapshot(ctx context.Context, id bisyaroh.SnapshotID) (*bisyaroh.HistorySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getSnapshot(ctx, s.db, id)
}

func (s *Store) getSnapshot(ctx context.Context, q queryer, id bisyaroh.SnapshotID) (*bisyaroh.HistorySnapshot, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+snapshotColumns+` FROM history_snapshots WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	snap, err := scanSnapshot(rows, true)
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *Store) ListSnapshots(ctx context.Context, month, year int) ([]bisyaroh.HistorySnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listSnapshots(ctx, s.db, month, year)
}

func (s *Store) listSnapshots(ctx context.Context, q queryer, month, year int) ([]bisyaroh.HistorySnapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM history_snapshots WHERE 1=1`
	var args []any
	if month != 0 {
		query += ` AND month = ?`
		args = append(args, month)
	}
	if year != 0 {
		query += ` AND year = ?`
		args = append(args, year)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snaps []bisyaroh.HistorySnapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows, false)
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// scanSnapshot reads one snapshot row; withRows controls whether the
// frozen payload is decoded (summaries skip it).
func scanSnapshot(rows *sql.Rows, withRows bool) (bisyaroh.HistorySnapshot, error) {
	var (
		snap      bisyaroh.HistorySnapshot
		label     sql.NullString
		notes     sql.NullString
		rowsJSON  string
		createdBy sql.NullString
		createdAt string
		lockedBy  sql.NullString
		lockedAt  sql.NullString
	)
	if err := rows.Scan(&snap.ID, &snap.Month, &snap.Year, &label, &notes, &rowsJSON,
		&snap.StaffCount, &snap.TotalGross, &snap.TotalNet, &snap.Status,
		&createdBy, &createdAt, &lockedBy, &lockedAt); err != nil {
		return snap, fmt.Errorf("failed to scan history snapshot: %w", err)
	}
	snap.Label = label.String
	snap.Notes = notes.String
	snap.CreatedBy = createdBy.String
	snap.LockedBy = lockedBy.String
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		snap.CreatedAt = t
	}
	if lockedAt.Valid && lockedAt.String != "" {
		if t, err := time.Parse(time.RFC3339, lockedAt.String); err == nil {
			snap.LockedAt = &t
		}
	}
	if withRows && rowsJSON != "" && rowsJSON != "null" {
		if err := json.Unmarshal([]byte(rowsJSON), &snap.Rows); err != nil {
			return snap, &bisyaroh.ComputationError{Entity: "history snapshot", ID: string(snap.ID), Message: "unreadable snapshot payload"}
		}
	}
	return snap, nil
}

func (s *Store) UpdateSnapshotLock(ctx context.Context, id bisyaroh.SnapshotID, status bisyaroh.SnapshotStatus, lockedBy string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateSnapshotLock(ctx, s.db, id, status, lockedBy)
}

func (s *Store) updateSnapshotLock(ctx context.Context, q queryer, id bisyaroh.SnapshotID, status bisyaroh.SnapshotStatus, lockedBy string) error {
	var lockedAt any
	if status == bisyaroh.SnapshotLocked {
		lockedAt = time.Now().UTC().Format(time.RFC3339)
	}
	res, err := q.ExecContext(ctx, `
		UPDATE history_snapshots SET status = ?, locked_by = ?, locked_at = ?
		WHERE id = ?`, status, nullString(lockedBy), lockedAt, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &bisyaroh.NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	return nil
}

func (s *Store) DeleteSnapshot(ctx context.Context, id bisyaroh.SnapshotID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deleteSnapshot(ctx, s.db, id)
}

func (s *Store) deleteSnapshot(ctx context.Context, q queryer, id bisyaroh.SnapshotID) error {
	res, err := q.ExecContext(ctx, `DELETE FROM history_snapshots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return &bisyaroh.NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	return nil
}

// =============================================================================
// SEEDING - upstream collaborator write path
// =============================================================================

func (s *Store) SaveStaff(ctx context.Context, member bisyaroh.StaffMember) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	roles, err := json.Marshal(member.Roles)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	var tenure any
	if !member.TenureStart.IsZero() {
		tenure = member.TenureStart.Format(dateLayout)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO staff (id, name, employee_no, active, tenure_start, position, roles_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			employee_no = excluded.employee_no,
			active = excluded.active,
			tenure_start = excluded.tenure_start,
			position = excluded.position,
			roles_json = excluded.roles_json`,
		member.ID, member.Name, member.EmployeeNo, member.Active,
		tenure, member.Position, string(roles))
	return err
}

func (s *Store) SaveScheduleBlock(ctx context.Context, block bisyaroh.ScheduleBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_blocks (id, staff_id, subject, class, day, start_period, end_period)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), block.StaffID, block.Subject, block.Class, block.Day,
		block.StartPeriod, block.EndPeriod)
	return err
}

func (s *Store) SaveTeachingAttendance(ctx context.Context, rec bisyaroh.TeachingAttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO teaching_attendance (id, staff_id, date, subject, class, periods, present)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.StaffID, rec.Date.Format(dateLayout),
		rec.Subject, rec.Class, rec.Periods, rec.Present)
	return err
}

func (s *Store) SaveActivity(ctx context.Context, act bisyaroh.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	assistants, err := json.Marshal(act.AssistantIDs)
	if err != nil {
		return fmt.Errorf("failed to encode assistant list: %w", err)
	}
	var end any
	if !act.End.IsZero() {
		end = act.End.Format(dateLayout)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activities (id, name, responsible_id, assistant_ids_json, start_date, end_date)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			responsible_id = excluded.responsible_id,
			assistant_ids_json = excluded.assistant_ids_json,
			start_date = excluded.start_date,
			end_date = excluded.end_date`,
		act.ID, act.Name, nullString(string(act.ResponsibleID)), string(assistants),
		act.Start.Format(dateLayout), end)
	return err
}

func (s *Store) SaveActivitySession(ctx context.Context, rec bisyaroh.ActivityAttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	presence, err := json.Marshal(rec.AssistantPresence)
	if err != nil {
		return fmt.Errorf("failed to encode assistant presence: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO activity_sessions (id, activity_id, date, responsible_present, assistant_presence_json)
		VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), rec.ActivityID, rec.Date.Format(dateLayout),
		rec.ResponsiblePresent, string(presence))
	return err
}

func (s *Store) SaveMeeting(ctx context.Context, meeting bisyaroh.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	participants, err := json.Marshal(meeting.ParticipantIDs)
	if err != nil {
		return fmt.Errorf("failed to encode participant list: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO meetings (id, agenda, venue, date, chair_id, secretary_id, participant_ids_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			agenda = excluded.agenda,
			venue = excluded.venue,
			date = excluded.date,
			chair_id = excluded.chair_id,
			secretary_id = excluded.secretary_id,
			participant_ids_json = excluded.participant_ids_json`,
		meeting.ID, meeting.Agenda, meeting.Venue, meeting.Date.Format(dateLayout),
		nullString(string(meeting.ChairID)), nullString(string(meeting.SecretaryID)),
		string(participants))
	return err
}

func (s *Store) SaveMeetingAttendance(ctx context.Context, rec bisyaroh.MeetingAttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	presence, err := json.Marshal(rec.ParticipantPresence)
	if err != nil {
		return fmt.Errorf("failed to encode participant presence: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO meeting_attendance (meeting_id, chair_present, secretary_present, participant_presence_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(meeting_id) DO UPDATE SET
			chair_present = excluded.chair_present,
			secretary_present = excluded.secretary_present,
			participant_presence_json = excluded.participant_presence_json`,
		rec.MeetingID, rec.ChairPresent, rec.SecretaryPresent, string(presence))
	return err
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

// WithTx executes fn within a database transaction. Reads and writes made
// through the passed store hit the same transaction; an error rolls
// everything back.
func (s *Store) WithTx(ctx context.Context, fn func(store bisyaroh.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	if err := fn(&txStore{tx: sqlTx, parent: s}); err != nil {
		return err
	}
	return sqlTx.Commit()
}

// txStore routes every call through the open transaction.
type txStore struct {
	tx     *sql.Tx
	parent *Store
}

func (ts *txStore) ListActiveStaff(ctx context.Context) ([]bisyaroh.StaffMember, error) {
	return ts.parent.listActiveStaff(ctx, ts.tx)
}

func (ts *txStore) GetStaff(ctx context.Context, id bisyaroh.StaffID) (*bisyaroh.StaffMember, error) {
	return ts.parent.getStaff(ctx, ts.tx, id)
}

func (ts *txStore) ListScheduleBlocks(ctx context.Context, id bisyaroh.StaffID) ([]bisyaroh.ScheduleBlock, error) {
	return ts.parent.listScheduleBlocks(ctx, ts.tx, id)
}

func (ts *txStore) ListTeachingAttendance(ctx context.Context, id bisyaroh.StaffID, period bisyaroh.Period) ([]bisyaroh.TeachingAttendanceRecord, error) {
	return ts.parent.listTeachingAttendance(ctx, ts.tx, id, period)
}

func (ts *txStore) ListActivities(ctx context.Context, period bisyaroh.Period) ([]bisyaroh.Activity, error) {
	return ts.parent.listActivities(ctx, ts.tx, period)
}

func (ts *txStore) ListActivitySessions(ctx context.Context, activityID string, period bisyaroh.Period) ([]bisyaroh.ActivityAttendanceRecord, error) {
	return ts.parent.listActivitySessions(ctx, ts.tx, activityID, period)
}

func (ts *txStore) ListMeetings(ctx context.Context, period bisyaroh.Period) ([]bisyaroh.Meeting, error) {
	return ts.parent.listMeetings(ctx, ts.tx, period)
}

func (ts *txStore) GetMeetingAttendance(ctx context.Context, meetingID string) (*bisyaroh.MeetingAttendanceRecord, error) {
	return ts.parent.getMeetingAttendance(ctx, ts.tx, meetingID)
}

func (ts *txStore) Get(ctx context.Context, key string) (bisyaroh.Setting, bool, error) {
	return ts.parent.getSetting(ctx, ts.tx, key)
}

func (ts *txStore) ListByCategory(ctx context.Context, category string) ([]bisyaroh.Setting, error) {
	return ts.parent.listByCategory(ctx, ts.tx, category)
}

func (ts *txStore) UpsertRecord(ctx context.Context, rec bisyaroh.CompensationRecord) (bisyaroh.RecordID, error) {
	return ts.parent.upsertRecord(ctx, ts.tx, rec)
}

func (ts *txStore) ListRecords(ctx context.Context, period bisyaroh.Period, staffIDs []bisyaroh.StaffID) ([]bisyaroh.CompensationRecord, error) {
	return ts.parent.listRecords(ctx, ts.tx, period, staffIDs)
}

func (ts *txStore) GetRecord(ctx context.Context, id bisyaroh.RecordID) (*bisyaroh.CompensationRecord, error) {
	return ts.parent.getRecord(ctx, ts.tx, id)
}

func (ts *txStore) DeleteRecords(ctx context.Context, period bisyaroh.Period) (int, error) {
	return ts.parent.deleteRecords(ctx, ts.tx, period)
}

func (ts *txStore) DeleteStaleRecords(ctx context.Context, period bisyaroh.Period, keep []bisyaroh.StaffID) (int, error) {
	return ts.parent.deleteStaleRecords(ctx, ts.tx, period, keep)
}

func (ts *txStore) SaveSnapshot(ctx context.Context, snap bisyaroh.HistorySnapshot) error {
	return ts.parent.saveSnapshot(ctx, ts.tx, snap)
}

func (ts *txStore) GetSnapshot(ctx context.Context, id bisyaroh.SnapshotID) (*bisyaroh.HistorySnapshot, error) {
	return ts.parent.getSnapshot(ctx, ts.tx, id)
}

func (ts *txStore) ListSnapshots(ctx context.Context, month, year int) ([]bisyaroh.HistorySnapshot, error) {
	return ts.parent.listSnapshots(ctx, ts.tx, month, year)
}

func (ts *txStore) UpdateSnapshotLock(ctx context.Context, id bisyaroh.SnapshotID, status bisyaroh.SnapshotStatus, lockedBy string) error {
	return ts.parent.updateSnapshotLock(ctx, ts.tx, id, status, lockedBy)
}

func (ts *txStore) DeleteSnapshot(ctx context.Context, id bisyaroh.SnapshotID) error {
	return ts.parent.deleteSnapshot(ctx, ts.tx, id)
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
