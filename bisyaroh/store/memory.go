// Package store provides an in-memory Store implementation for tests and
// demos. The SQLite store under store/sqlite is the production twin.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

// =============================================================================
// MEMORY STORE
// =============================================================================

type recordKey struct {
	StaffID bisyaroh.StaffID
	Month   int
	Year    int
}

// state holds the raw data without locking. Memory wraps it with a mutex;
// the transactional view inside WithTx reaches it directly while the lock
// is already held.
type state struct {
	staff             map[bisyaroh.StaffID]bisyaroh.StaffMember
	staffOrder        []bisyaroh.StaffID
	schedules         map[bisyaroh.StaffID][]bisyaroh.ScheduleBlock
	teaching          map[bisyaroh.StaffID][]bisyaroh.TeachingAttendanceRecord
	activities        []bisyaroh.Activity
	activitySessions  map[string][]bisyaroh.ActivityAttendanceRecord
	meetings          []bisyaroh.Meeting
	meetingAttendance map[string]*bisyaroh.MeetingAttendanceRecord
	settings          []bisyaroh.Setting
	records           map[recordKey]bisyaroh.CompensationRecord
	recordIDs         map[bisyaroh.RecordID]recordKey
	snapshots         map[bisyaroh.SnapshotID]bisyaroh.HistorySnapshot
}

func newState() *state {
	return &state{
		staff:             make(map[bisyaroh.StaffID]bisyaroh.StaffMember),
		schedules:         make(map[bisyaroh.StaffID][]bisyaroh.ScheduleBlock),
		teaching:          make(map[bisyaroh.StaffID][]bisyaroh.TeachingAttendanceRecord),
		activitySessions:  make(map[string][]bisyaroh.ActivityAttendanceRecord),
		meetingAttendance: make(map[string]*bisyaroh.MeetingAttendanceRecord),
		records:           make(map[recordKey]bisyaroh.CompensationRecord),
		recordIDs:         make(map[bisyaroh.RecordID]recordKey),
		snapshots:         make(map[bisyaroh.SnapshotID]bisyaroh.HistorySnapshot),
	}
}

// Memory implements bisyaroh.TxStore in memory.
type Memory struct {
	mu sync.RWMutex
	s  *state
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{s: newState()}
}

// =============================================================================
// SEEDING - the write path of the upstream collaborators
// =============================================================================

// SaveStaff inserts or replaces a staff member.
func (m *Memory) SaveStaff(_ context.Context, member bisyaroh.StaffMember) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.s.staff[member.ID]; !ok {
		m.s.staffOrder = append(m.s.staffOrder, member.ID)
	}
	m.s.staff[member.ID] = member
	return nil
}

// SaveScheduleBlock appends a teaching block.
func (m *Memory) SaveScheduleBlock(_ context.Context, block bisyaroh.ScheduleBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.schedules[block.StaffID] = append(m.s.schedules[block.StaffID], block)
	return nil
}

// SaveTeachingAttendance appends a teaching session record.
func (m *Memory) SaveTeachingAttendance(_ context.Context, rec bisyaroh.TeachingAttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.teaching[rec.StaffID] = append(m.s.teaching[rec.StaffID], rec)
	return nil
}

// SaveActivity inserts or replaces an activity.
func (m *Memory) SaveActivity(_ context.Context, act bisyaroh.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, a := range m.s.activities {
		if a.ID == act.ID {
			m.s.activities[i] = act
			return nil
		}
	}
	m.s.activities = append(m.s.activities, act)
	return nil
}

// SaveActivitySession appends one activity attendance session.
func (m *Memory) SaveActivitySession(_ context.Context, rec bisyaroh.ActivityAttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.activitySessions[rec.ActivityID] = append(m.s.activitySessions[rec.ActivityID], rec)
	return nil
}

// SaveMeeting inserts or replaces a meeting.
func (m *Memory) SaveMeeting(_ context.Context, meeting bisyaroh.Meeting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, mt := range m.s.meetings {
		if mt.ID == meeting.ID {
			m.s.meetings[i] = meeting
			return nil
		}
	}
	m.s.meetings = append(m.s.meetings, meeting)
	return nil
}

// SaveMeetingAttendance sets the attendance record for a meeting.
func (m *Memory) SaveMeetingAttendance(_ context.Context, rec bisyaroh.MeetingAttendanceRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.meetingAttendance[rec.MeetingID] = &rec
	return nil
}

// UpsertSetting inserts or replaces a setting by key.
func (m *Memory) UpsertSetting(_ context.Context, s bisyaroh.Setting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	for i, existing := range m.s.settings {
		if existing.Key == s.Key {
			s.ID = existing.ID
			m.s.settings[i] = s
			return nil
		}
	}
	m.s.settings = append(m.s.settings, s)
	return nil
}

// UpdateSettingValue rewrites the value of an existing key.
func (m *Memory) UpdateSettingValue(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.s.settings {
		if s.Key == key {
			m.s.settings[i].Value = value
			return nil
		}
	}
	return &bisyaroh.NotFoundError{Entity: "setting", ID: key}
}

// AddSetting inserts a new setting with sort order max+1 in its category.
func (m *Memory) AddSetting(_ context.Context, s bisyaroh.Setting) (bisyaroh.Setting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.s.settings {
		if existing.Key == s.Key {
			return bisyaroh.Setting{}, &bisyaroh.ConflictError{Message: "setting key already exists: " + s.Key}
		}
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	maxSort := 0
	for _, existing := range m.s.settings {
		if existing.Category == s.Category && existing.SortOrder > maxSort {
			maxSort = existing.SortOrder
		}
	}
	s.SortOrder = maxSort + 1
	m.s.settings = append(m.s.settings, s)
	return s, nil
}

// DeleteSetting removes a setting by id.
func (m *Memory) DeleteSetting(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.s.settings {
		if s.ID == id {
			m.s.settings = append(m.s.settings[:i], m.s.settings[i+1:]...)
			return nil
		}
	}
	return &bisyaroh.NotFoundError{Entity: "setting", ID: id}
}

// ListSettings returns every setting, ordered by category then sort order.
func (m *Memory) ListSettings(ctx context.Context) ([]bisyaroh.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := append([]bisyaroh.Setting(nil), m.s.settings...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].SortOrder < out[j].SortOrder
	})
	return out, nil
}

// =============================================================================
// STAFF DIRECTORY
// =============================================================================

func (s *state) listActiveStaff() []bisyaroh.StaffMember {
	var out []bisyaroh.StaffMember
	for _, id := range s.staffOrder {
		if member := s.staff[id]; member.Active {
			out = append(out, member)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (m *Memory) ListActiveStaff(_ context.Context) ([]bisyaroh.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listActiveStaff(), nil
}

func (m *Memory) GetStaff(_ context.Context, id bisyaroh.StaffID) (*bisyaroh.StaffMember, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if member, ok := m.s.staff[id]; ok {
		return &member, nil
	}
	return nil, nil
}

func (m *Memory) ListScheduleBlocks(_ context.Context, id bisyaroh.StaffID) ([]bisyaroh.ScheduleBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]bisyaroh.ScheduleBlock(nil), m.s.schedules[id]...), nil
}

// =============================================================================
// ATTENDANCE SOURCES
// =============================================================================

func (s *state) listTeachingAttendance(id bisyaroh.StaffID, period bisyaroh.Period) []bisyaroh.TeachingAttendanceRecord {
	var out []bisyaroh.TeachingAttendanceRecord
	for _, rec := range s.teaching[id] {
		if period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *Memory) ListTeachingAttendance(_ context.Context, id bisyaroh.StaffID, period bisyaroh.Period) ([]bisyaroh.TeachingAttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listTeachingAttendance(id, period), nil
}

func (s *state) listActivities(period bisyaroh.Period) []bisyaroh.Activity {
	var out []bisyaroh.Activity
	for _, act := range s.activities {
		if period.Overlaps(act.Start, act.End) {
			out = append(out, act)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

func (m *Memory) ListActivities(_ context.Context, period bisyaroh.Period) ([]bisyaroh.Activity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listActivities(period), nil
}

func (s *state) listActivitySessions(activityID string, period bisyaroh.Period) []bisyaroh.ActivityAttendanceRecord {
	var out []bisyaroh.ActivityAttendanceRecord
	for _, rec := range s.activitySessions[activityID] {
		if period.Contains(rec.Date) {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *Memory) ListActivitySessions(_ context.Context, activityID string, period bisyaroh.Period) ([]bisyaroh.ActivityAttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listActivitySessions(activityID, period), nil
}

func (s *state) listMeetings(period bisyaroh.Period) []bisyaroh.Meeting {
	var out []bisyaroh.Meeting
	for _, meeting := range s.meetings {
		if period.Contains(meeting.Date) {
			out = append(out, meeting)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func (m *Memory) ListMeetings(_ context.Context, period bisyaroh.Period) ([]bisyaroh.Meeting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listMeetings(period), nil
}

func (m *Memory) GetMeetingAttendance(_ context.Context, meetingID string) (*bisyaroh.MeetingAttendanceRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.meetingAttendance[meetingID], nil
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *state) getSetting(key string) (bisyaroh.Setting, bool) {
	for _, setting := range s.settings {
		if setting.Key == key {
			return setting, true
		}
	}
	return bisyaroh.Setting{}, false
}

func (m *Memory) Get(_ context.Context, key string) (bisyaroh.Setting, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.s.getSetting(key)
	return s, ok, nil
}

func (s *state) listByCategory(category string) []bisyaroh.Setting {
	var out []bisyaroh.Setting
	for _, setting := range s.settings {
		if setting.Category == category {
			out = append(out, setting)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out
}

func (m *Memory) ListByCategory(_ context.Context, category string) ([]bisyaroh.Setting, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listByCategory(category), nil
}

// =============================================================================
// COMPENSATION RECORDS
// =============================================================================

func (s *state) upsertRecord(rec bisyaroh.CompensationRecord) bisyaroh.RecordID {
	k := recordKey{StaffID: rec.StaffID, Month: rec.Month, Year: rec.Year}
	if existing, ok := s.records[k]; ok {
		rec.ID = existing.ID
	} else {
		rec.ID = bisyaroh.RecordID(uuid.NewString())
	}
	s.records[k] = rec
	s.recordIDs[rec.ID] = k
	return rec.ID
}

func (m *Memory) UpsertRecord(_ context.Context, rec bisyaroh.CompensationRecord) (bisyaroh.RecordID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.upsertRecord(rec), nil
}

func (s *state) listRecords(period bisyaroh.Period, staffIDs []bisyaroh.StaffID) []bisyaroh.CompensationRecord {
	want := make(map[bisyaroh.StaffID]bool, len(staffIDs))
	for _, id := range staffIDs {
		want[id] = true
	}
	var out []bisyaroh.CompensationRecord
	for k, rec := range s.records {
		if k.Month == period.Month && k.Year == period.Year && want[k.StaffID] {
			out = append(out, rec)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		ni, nj := s.staff[out[i].StaffID].Name, s.staff[out[j].StaffID].Name
		if ni != nj {
			return ni < nj
		}
		return out[i].StaffID < out[j].StaffID
	})
	return out
}

func (m *Memory) ListRecords(_ context.Context, period bisyaroh.Period, staffIDs []bisyaroh.StaffID) ([]bisyaroh.CompensationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.s.listRecords(period, staffIDs), nil
}

func (m *Memory) GetRecord(_ context.Context, id bisyaroh.RecordID) (*bisyaroh.CompensationRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	k, ok := m.s.recordIDs[id]
	if !ok {
		return nil, nil
	}
	rec := m.s.records[k]
	return &rec, nil
}

func (s *state) deleteRecords(period bisyaroh.Period) int {
	deleted := 0
	for k, rec := range s.records {
		if k.Month == period.Month && k.Year == period.Year {
			delete(s.records, k)
			delete(s.recordIDs, rec.ID)
			deleted++
		}
	}
	return deleted
}

func (m *Memory) DeleteRecords(_ context.Context, period bisyaroh.Period) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.deleteRecords(period), nil
}

func (s *state) deleteStaleRecords(period bisyaroh.Period, keep []bisyaroh.StaffID) int {
	keepSet := make(map[bisyaroh.StaffID]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}
	deleted := 0
	for k, rec := range s.records {
		if k.Month == period.Month && k.Year == period.Year && !keepSet[k.StaffID] {
			delete(s.records, k)
			delete(s.recordIDs, rec.ID)
			deleted++
		}
	}
	return deleted
}

func (m *Memory) DeleteStaleRecords(_ context.Context, period bisyaroh.Period, keep []bisyaroh.StaffID) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.deleteStaleRecords(period, keep), nil
}

// =============================================================================
// HISTORY SNAPSHOTS
// =============================================================================

func (m *Memory) SaveSnapshot(_ context.Context, snap bisyaroh.HistorySnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.s.snapshots[snap.ID] = snap
	return nil
}

func (m *Memory) GetSnapshot(_ context.Context, id bisyaroh.SnapshotID) (*bisyaroh.HistorySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if snap, ok := m.s.snapshots[id]; ok {
		return &snap, nil
	}
	return nil, nil
}

func (m *Memory) ListSnapshots(_ context.Context, month, year int) ([]bisyaroh.HistorySnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []bisyaroh.HistorySnapshot
	for _, snap := range m.s.snapshots {
		if month != 0 && snap.Month != month {
			continue
		}
		if year != 0 && snap.Year != year {
			continue
		}
		snap.Rows = nil // summaries only
		out = append(out, snap)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) UpdateSnapshotLock(_ context.Context, id bisyaroh.SnapshotID, status bisyaroh.SnapshotStatus, lockedBy string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap, ok := m.s.snapshots[id]
	if !ok {
		return &bisyaroh.NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	snap.Status = status
	snap.LockedBy = lockedBy
	if status == bisyaroh.SnapshotLocked {
		now := time.Now().UTC()
		snap.LockedAt = &now
	} else {
		snap.LockedAt = nil
	}
	m.s.snapshots[id] = snap
	return nil
}

func (m *Memory) DeleteSnapshot(_ context.Context, id bisyaroh.SnapshotID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.s.snapshots[id]; !ok {
		return &bisyaroh.NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	delete(m.s.snapshots, id)
	return nil
}

// =============================================================================
// TRANSACTIONS - snapshot + rollback on error
// =============================================================================

// WithTx executes fn against a transactional view. The lock is held for
// the whole call; on error the pre-call state is restored wholesale.
func (m *Memory) WithTx(_ context.Context, fn func(bisyaroh.Store) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	saved := m.s.clone()
	if err := fn(&txView{s: m.s}); err != nil {
		m.s = saved
		return err
	}
	return nil
}

func (s *state) clone() *state {
	c := newState()
	for id, member := range s.staff {
		c.staff[id] = member
	}
	c.staffOrder = append([]bisyaroh.StaffID(nil), s.staffOrder...)
	for id, blocks := range s.schedules {
		c.schedules[id] = append([]bisyaroh.ScheduleBlock(nil), blocks...)
	}
	for id, recs := range s.teaching {
		c.teaching[id] = append([]bisyaroh.TeachingAttendanceRecord(nil), recs...)
	}
	c.activities = append([]bisyaroh.Activity(nil), s.activities...)
	for id, sessions := range s.activitySessions {
		c.activitySessions[id] = append([]bisyaroh.ActivityAttendanceRecord(nil), sessions...)
	}
	c.meetings = append([]bisyaroh.Meeting(nil), s.meetings...)
	for id, att := range s.meetingAttendance {
		c.meetingAttendance[id] = att
	}
	c.settings = append([]bisyaroh.Setting(nil), s.settings...)
	for k, rec := range s.records {
		c.records[k] = rec
	}
	for id, k := range s.recordIDs {
		c.recordIDs[id] = k
	}
	for id, snap := range s.snapshots {
		c.snapshots[id] = snap
	}
	return c
}

// txView exposes the raw state as a bisyaroh.Store while WithTx holds the
// lock.
type txView struct {
	s *state
}

func (tv *txView) ListActiveStaff(_ context.Context) ([]bisyaroh.StaffMember, error) {
	return tv.s.listActiveStaff(), nil
}

func (tv *txView) GetStaff(_ context.Context, id bisyaroh.StaffID) (*bisyaroh.StaffMember, error) {
	if member, ok := tv.s.staff[id]; ok {
		return &member, nil
	}
	return nil, nil
}

func (tv *txView) ListScheduleBlocks(_ context.Context, id bisyaroh.StaffID) ([]bisyaroh.ScheduleBlock, error) {
	return tv.s.schedules[id], nil
}

func (tv *txView) ListTeachingAttendance(_ context.Context, id bisyaroh.StaffID, period bisyaroh.Period) ([]bisyaroh.TeachingAttendanceRecord, error) {
	return tv.s.listTeachingAttendance(id, period), nil
}

func (tv *txView) ListActivities(_ context.Context, period bisyaroh.Period) ([]bisyaroh.Activity, error) {
	return tv.s.listActivities(period), nil
}

func (tv *txView) ListActivitySessions(_ context.Context, activityID string, period bisyaroh.Period) ([]bisyaroh.ActivityAttendanceRecord, error) {
	return tv.s.listActivitySessions(activityID, period), nil
}

func (tv *txView) ListMeetings(_ context.Context, period bisyaroh.Period) ([]bisyaroh.Meeting, error) {
	return tv.s.listMeetings(period), nil
}

func (tv *txView) GetMeetingAttendance(_ context.Context, meetingID string) (*bisyaroh.MeetingAttendanceRecord, error) {
	return tv.s.meetingAttendance[meetingID], nil
}

func (tv *txView) Get(_ context.Context, key string) (bisyaroh.Setting, bool, error) {
	s, ok := tv.s.getSetting(key)
	return s, ok, nil
}

func (tv *txView) ListByCategory(_ context.Context, category string) ([]bisyaroh.Setting, error) {
	return tv.s.listByCategory(category), nil
}

func (tv *txView) UpsertRecord(_ context.Context, rec bisyaroh.CompensationRecord) (bisyaroh.RecordID, error) {
	return tv.s.upsertRecord(rec), nil
}

func (tv *txView) ListRecords(_ context.Context, period bisyaroh.Period, staffIDs []bisyaroh.StaffID) ([]bisyaroh.CompensationRecord, error) {
	return tv.s.listRecords(period, staffIDs), nil
}

func (tv *txView) GetRecord(_ context.Context, id bisyaroh.RecordID) (*bisyaroh.CompensationRecord, error) {
	k, ok := tv.s.recordIDs[id]
	if !ok {
		return nil, nil
	}
	rec := tv.s.records[k]
	return &rec, nil
}

func (tv *txView) DeleteRecords(_ context.Context, period bisyaroh.Period) (int, error) {
	return tv.s.deleteRecords(period), nil
}

func (tv *txView) DeleteStaleRecords(_ context.Context, period bisyaroh.Period, keep []bisyaroh.StaffID) (int, error) {
	return tv.s.deleteStaleRecords(period, keep), nil
}

func (tv *txView) SaveSnapshot(_ context.Context, snap bisyaroh.HistorySnapshot) error {
	tv.s.snapshots[snap.ID] = snap
	return nil
}

func (tv *txView) GetSnapshot(_ context.Context, id bisyaroh.SnapshotID) (*bisyaroh.HistorySnapshot, error) {
	if snap, ok := tv.s.snapshots[id]; ok {
		return &snap, nil
	}
	return nil, nil
}

func (tv *txView) ListSnapshots(_ context.Context, month, year int) ([]bisyaroh.HistorySnapshot, error) {
	var out []bisyaroh.HistorySnapshot
	for _, snap := range tv.s.snapshots {
		if (month == 0 || snap.Month == month) && (year == 0 || snap.Year == year) {
			snap.Rows = nil
			out = append(out, snap)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (tv *txView) UpdateSnapshotLock(_ context.Context, id bisyaroh.SnapshotID, status bisyaroh.SnapshotStatus, lockedBy string) error {
	snap, ok := tv.s.snapshots[id]
	if !ok {
		return &bisyaroh.NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	snap.Status = status
	snap.LockedBy = lockedBy
	if status == bisyaroh.SnapshotLocked {
		now := time.Now().UTC()
		snap.LockedAt = &now
	} else {
		snap.LockedAt = nil
	}
	tv.s.snapshots[id] = snap
	return nil
}

func (tv *txView) DeleteSnapshot(_ context.Context, id bisyaroh.SnapshotID) error {
	if _, ok := tv.s.snapshots[id]; !ok {
		return &bisyaroh.NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	delete(tv.s.snapshots, id)
	return nil
}
