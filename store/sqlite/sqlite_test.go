package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
	memstore "github.com/alhikam/bisyaroh-engine/bisyaroh/store"
	"github.com/alhikam/bisyaroh-engine/store/sqlite"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

var january = bisyaroh.Period{Month: 1, Year: 2025}

func janDate(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

func sampleRecord(staffID bisyaroh.StaffID) bisyaroh.CompensationRecord {
	return bisyaroh.CompensationRecord{
		StaffID:            staffID,
		Month:              1,
		Year:               2025,
		WeeklyHours:        10,
		PresentDays:        18,
		BasePay:            300000,
		TransportAllowance: 135000,
		GrossTotal:         435000,
		Deductions:         []bisyaroh.DeductionLine{{Label: "Koperasi", Amount: 10000}},
		DeductionTotal:     10000,
		NetTotal:           425000,
		TeachingDetail: []bisyaroh.TeachingDetail{
			{Date: "2025-01-06", Subject: "Matematika", Class: "VII-A", Periods: "1-2", Present: true},
		},
		Status: bisyaroh.StatusDraft,
	}
}

// =============================================================================
// STAFF AND ATTENDANCE ROUND TRIPS
// =============================================================================

func TestStaffRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	member := bisyaroh.StaffMember{
		ID: "guru-1", Name: "Siti Maisaroh", EmployeeNo: "19910515", Active: true,
		TenureStart: janDate(1).AddDate(-3, 0, 0),
		Position:    "Wakur",
		Roles:       []string{"waka_kurikulum"},
	}
	require.NoError(t, store.SaveStaff(ctx, member))

	got, err := store.GetStaff(ctx, "guru-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, member, *got)

	missing, err := store.GetStaff(ctx, "guru-x")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListActiveStaff_OrderedByName(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveStaff(ctx, bisyaroh.StaffMember{ID: "g2", Name: "Zainab", Active: true}))
	require.NoError(t, store.SaveStaff(ctx, bisyaroh.StaffMember{ID: "g1", Name: "Ahmad", Active: true}))
	require.NoError(t, store.SaveStaff(ctx, bisyaroh.StaffMember{ID: "g3", Name: "Budi", Active: false}))

	staff, err := store.ListActiveStaff(ctx)
	require.NoError(t, err)
	require.Len(t, staff, 2, "inactive staff filtered out")
	assert.Equal(t, "Ahmad", staff[0].Name)
	assert.Equal(t, "Zainab", staff[1].Name)
}

func TestTeachingAttendance_PeriodWindow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, d := range []time.Time{janDate(6), janDate(31), janDate(1).AddDate(0, 1, 0)} {
		require.NoError(t, store.SaveTeachingAttendance(ctx, bisyaroh.TeachingAttendanceRecord{
			StaffID: "guru-1", Date: d, Present: true,
		}))
	}

	recs, err := store.ListTeachingAttendance(ctx, "guru-1", january)
	require.NoError(t, err)
	assert.Len(t, recs, 2, "February row excluded")
}

func TestActivities_WindowIntersection(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	save := func(id string, start, end time.Time) {
		require.NoError(t, store.SaveActivity(ctx, bisyaroh.Activity{
			ID: id, Name: id, ResponsibleID: "guru-1", Start: start, End: end,
		}))
	}
	save("inside", janDate(5), janDate(20))
	save("spanning", janDate(1).AddDate(0, -1, 0), janDate(1).AddDate(0, 2, 0))
	save("open-ended", janDate(10), time.Time{})
	save("before", janDate(1).AddDate(0, -2, 0), janDate(1).AddDate(0, -1, -1))
	save("after", janDate(1).AddDate(0, 1, 0), janDate(1).AddDate(0, 2, 0))

	acts, err := store.ListActivities(ctx, january)
	require.NoError(t, err)

	ids := make([]string, len(acts))
	for i, a := range acts {
		ids[i] = a.ID
	}
	assert.ElementsMatch(t, []string{"inside", "spanning", "open-ended"}, ids)
}

func TestActivities_MissingEndDateIsSingleDay(t *testing.T) {
	// GIVEN: An activity with a start date and no end date
	// WHEN: Listing activities for a later month
	// THEN: It is absent, in agreement with the in-memory store

	store := newTestStore(t)
	mem := memstore.NewMemory()
	ctx := context.Background()

	act := bisyaroh.Activity{ID: "keg-1", Name: "Pramuka", ResponsibleID: "guru-1", Start: janDate(10)}
	require.NoError(t, store.SaveActivity(ctx, act))
	require.NoError(t, mem.SaveActivity(ctx, act))

	february := bisyaroh.Period{Month: 2, Year: 2025}
	for name, s := range map[string]bisyaroh.Store{"sqlite": store, "memory": mem} {
		acts, err := s.ListActivities(ctx, february)
		require.NoError(t, err)
		assert.Empty(t, acts, "%s: a single-day window in January never reaches February", name)

		acts, err = s.ListActivities(ctx, january)
		require.NoError(t, err)
		assert.Len(t, acts, 1, "%s: the start month still lists it", name)
	}
}

func TestMeetingAttendance_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.SaveMeeting(ctx, bisyaroh.Meeting{
		ID: "rapat-1", Agenda: "Evaluasi", Venue: "Ruang Guru", Date: janDate(8),
		ChairID: "guru-1", SecretaryID: "guru-2",
		ParticipantIDs: []bisyaroh.StaffID{"guru-3"},
	}))
	require.NoError(t, store.SaveMeetingAttendance(ctx, bisyaroh.MeetingAttendanceRecord{
		MeetingID: "rapat-1", ChairPresent: true,
		ParticipantPresence: map[bisyaroh.StaffID]bool{"guru-3": true},
	}))

	att, err := store.GetMeetingAttendance(ctx, "rapat-1")
	require.NoError(t, err)
	require.NotNil(t, att)
	assert.True(t, att.ChairPresent)
	assert.True(t, att.ParticipantPresence["guru-3"])

	none, err := store.GetMeetingAttendance(ctx, "rapat-x")
	require.NoError(t, err)
	assert.Nil(t, none, "missing attendance is nil, not an error")
}

// =============================================================================
// SETTINGS
// =============================================================================

func TestSettings_UpsertAndAdmin(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertSetting(ctx, bisyaroh.Setting{
		Key: "potongan_koperasi", Value: "10000", Type: bisyaroh.SettingInteger,
		Category: bisyaroh.CategoryDeduction, Label: "Koperasi", SortOrder: 1,
	}))

	// Upsert on the same key overwrites the value.
	require.NoError(t, store.UpsertSetting(ctx, bisyaroh.Setting{
		Key: "potongan_koperasi", Value: "12500", Type: bisyaroh.SettingInteger,
		Category: bisyaroh.CategoryDeduction, Label: "Koperasi", SortOrder: 1,
	}))

	s, ok, err := store.Get(ctx, "potongan_koperasi")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, bisyaroh.Money(12500), s.Int())

	// AddSetting appends at the end of the category.
	added, err := store.AddSetting(ctx, bisyaroh.Setting{
		Key: "potongan_infaq", Value: "5000", Type: bisyaroh.SettingInteger,
		Category: bisyaroh.CategoryDeduction, Label: "Infaq",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, added.SortOrder)

	// Duplicate keys conflict.
	_, err = store.AddSetting(ctx, bisyaroh.Setting{
		Key: "potongan_infaq", Value: "1", Category: bisyaroh.CategoryDeduction, Label: "x",
	})
	assert.True(t, errors.Is(err, bisyaroh.ErrConflict))

	// Category listing follows sort order.
	lines, err := store.ListByCategory(ctx, bisyaroh.CategoryDeduction)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "potongan_koperasi", lines[0].Key)
	assert.Equal(t, "potongan_infaq", lines[1].Key)

	require.NoError(t, store.UpdateSettingValue(ctx, "potongan_infaq", "7500"))
	err = store.UpdateSettingValue(ctx, "no-such-key", "1")
	assert.True(t, errors.Is(err, bisyaroh.ErrNotFound))

	require.NoError(t, store.DeleteSetting(ctx, added.ID))
	err = store.DeleteSetting(ctx, added.ID)
	assert.True(t, errors.Is(err, bisyaroh.ErrNotFound))
}

// =============================================================================
// COMPENSATION RECORDS
// =============================================================================

func TestUpsertRecord_KeepsRowIdentity(t *testing.T) {
	// GIVEN: A stored record for (staff, month, year)
	// WHEN: Upserting new amounts for the same key
	// THEN: Same row id, new amounts, no duplicate row

	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveStaff(ctx, bisyaroh.StaffMember{ID: "guru-1", Name: "Siti", Active: true}))

	first, err := store.UpsertRecord(ctx, sampleRecord("guru-1"))
	require.NoError(t, err)

	updated := sampleRecord("guru-1")
	updated.GrossTotal = 500000
	updated.NetTotal = 490000
	second, err := store.UpsertRecord(ctx, updated)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	records, err := store.ListRecords(ctx, january, []bisyaroh.StaffID{"guru-1"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, bisyaroh.Money(500000), records[0].GrossTotal)
}

func TestGetRecord_FullDetailRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.UpsertRecord(ctx, sampleRecord("guru-1"))
	require.NoError(t, err)

	rec, err := store.GetRecord(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, bisyaroh.Money(425000), rec.NetTotal)
	require.Len(t, rec.Deductions, 1)
	assert.Equal(t, "Koperasi", rec.Deductions[0].Label)
	require.Len(t, rec.TeachingDetail, 1)
	assert.Equal(t, "2025-01-06", rec.TeachingDetail[0].Date)
}

func TestDeleteStaleRecords(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.UpsertRecord(ctx, sampleRecord("guru-1"))
	require.NoError(t, err)
	_, err = store.UpsertRecord(ctx, sampleRecord("guru-2"))
	require.NoError(t, err)

	n, err := store.DeleteStaleRecords(ctx, january, []bisyaroh.StaffID{"guru-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := store.ListRecords(ctx, january, []bisyaroh.StaffID{"guru-1", "guru-2"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, bisyaroh.StaffID("guru-1"), records[0].StaffID)
}

// =============================================================================
// TRANSACTIONS
// =============================================================================

func TestWithTx_RollbackOnError(t *testing.T) {
	// GIVEN: A transaction that writes a record and then fails
	// THEN: The write is invisible afterwards

	store := newTestStore(t)
	ctx := context.Background()

	sentinel := errors.New("boom")
	err := store.WithTx(ctx, func(tx bisyaroh.Store) error {
		if _, err := tx.UpsertRecord(ctx, sampleRecord("guru-1")); err != nil {
			return err
		}
		return sentinel
	})
	assert.ErrorIs(t, err, sentinel)

	records, err := store.ListRecords(ctx, january, []bisyaroh.StaffID{"guru-1"})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWithTx_CommitOnSuccess(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.WithTx(ctx, func(tx bisyaroh.Store) error {
		_, err := tx.UpsertRecord(ctx, sampleRecord("guru-1"))
		return err
	})
	require.NoError(t, err)

	records, err := store.ListRecords(ctx, january, []bisyaroh.StaffID{"guru-1"})
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// =============================================================================
// HISTORY SNAPSHOTS
// =============================================================================

func TestSnapshot_RoundTripAndLock(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	snap := bisyaroh.HistorySnapshot{
		ID: "snap-1", Month: 1, Year: 2025,
		Label: "Bisyaroh Januari 2025", Notes: "catatan",
		Rows: []bisyaroh.HistoryRow{
			{StaffID: "guru-1", Name: "Siti", Position: "Guru", GrossTotal: 435000, NetTotal: 425000},
		},
		StaffCount: 1, TotalGross: 435000, TotalNet: 425000,
		Status: bisyaroh.SnapshotDraft, CreatedBy: "admin",
		CreatedAt: time.Date(2025, time.February, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.SaveSnapshot(ctx, snap))

	got, err := store.GetSnapshot(ctx, "snap-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, snap.Rows, got.Rows)
	assert.Equal(t, snap.CreatedAt, got.CreatedAt)

	// Summaries skip the frozen rows.
	summaries, err := store.ListSnapshots(ctx, 1, 2025)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Empty(t, summaries[0].Rows)
	assert.Equal(t, bisyaroh.Money(435000), summaries[0].TotalGross)

	// Lock, then unlock.
	require.NoError(t, store.UpdateSnapshotLock(ctx, "snap-1", bisyaroh.SnapshotLocked, "kepala"))
	locked, err := store.GetSnapshot(ctx, "snap-1")
	require.NoError(t, err)
	assert.Equal(t, bisyaroh.SnapshotLocked, locked.Status)
	assert.Equal(t, "kepala", locked.LockedBy)
	assert.NotNil(t, locked.LockedAt)

	require.NoError(t, store.UpdateSnapshotLock(ctx, "snap-1", bisyaroh.SnapshotDraft, ""))
	unlocked, err := store.GetSnapshot(ctx, "snap-1")
	require.NoError(t, err)
	assert.Empty(t, unlocked.LockedBy)
	assert.Nil(t, unlocked.LockedAt)

	require.NoError(t, store.DeleteSnapshot(ctx, "snap-1"))
	err = store.DeleteSnapshot(ctx, "snap-1")
	assert.True(t, errors.Is(err, bisyaroh.ErrNotFound))
}

// =============================================================================
// END TO END THROUGH THE SERVICES
// =============================================================================

func TestGenerationAgainstSQLite(t *testing.T) {
	// The full pipeline on the production store: seed, generate, list.
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpsertSetting(ctx, bisyaroh.Setting{
		Key: bisyaroh.KeyTeachingHourly, Value: "30000", Type: bisyaroh.SettingInteger,
		Category: bisyaroh.CategoryBaseRates, Label: "Bisyaroh per jam", SortOrder: 1,
	}))
	require.NoError(t, store.SaveStaff(ctx, bisyaroh.StaffMember{ID: "guru-1", Name: "Siti", Active: true}))
	require.NoError(t, store.SaveScheduleBlock(ctx, bisyaroh.ScheduleBlock{
		StaffID: "guru-1", Subject: "Matematika", Class: "VII-A", Day: "Senin",
		StartPeriod: 1, EndPeriod: 3,
	}))
	require.NoError(t, store.SaveTeachingAttendance(ctx, bisyaroh.TeachingAttendanceRecord{
		StaffID: "guru-1", Date: janDate(6), Present: true,
	}))

	svc := bisyaroh.NewGenerationService(store)
	processed, err := svc.Generate(ctx, january)
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	records, err := svc.ListRecords(ctx, january)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, bisyaroh.Money(90000), records[0].BasePay, "3 weekly hours x 30000")
	assert.Equal(t, bisyaroh.Money(7500), records[0].TransportAllowance)
}
