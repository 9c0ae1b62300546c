/*
seed.go - Demo dataset loader

PURPOSE:
  Seeds a small but complete month of data so the engine can be exercised
  end to end without the production attendance systems: default rate
  settings, a handful of staff with schedules and roles, teaching
  attendance, one activity with sessions, and one meeting.

DETERMINISM:
  The dataset always targets the current month so a freshly loaded demo
  can be generated immediately. Staff ids are fixed strings; reloading is
  idempotent for staff, activities and meetings (upserts) but appends
  attendance rows, so load once per fresh database.

SEE ALSO:
  - handlers.go: POST /api/demo/load
  - bisyaroh/store.go: Seeder interface
*/
package api

import (
	"context"
	"fmt"
	"time"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

// SeedDefaultSettings writes the default rate table. Existing keys are
// overwritten with the defaults.
func SeedDefaultSettings(ctx context.Context, seeder bisyaroh.Seeder) error {
	settings := []bisyaroh.Setting{
		{Key: bisyaroh.KeyTeachingHourly, Value: "30000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryBaseRates, Label: "Bisyaroh per jam", SortOrder: 1},
		{Key: bisyaroh.KeyTransportDaily, Value: "7500", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryBaseRates, Label: "Transport per kehadiran", SortOrder: 2},
		{Key: bisyaroh.KeyTenureYearly, Value: "5000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryBaseRates, Label: "Tunjangan masa kerja per tahun", SortOrder: 3},
		{Key: bisyaroh.KeyActivityCoordinator, Value: "25000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryActivity, Label: "Koordinator kegiatan", SortOrder: 1},
		{Key: bisyaroh.KeyActivityAssistant, Value: "15000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryActivity, Label: "Pendamping kegiatan", SortOrder: 2},
		{Key: bisyaroh.KeyMeetingFlat, Value: "20000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryActivity, Label: "Tunjangan rapat", SortOrder: 3},
	}
	for i, cat := range bisyaroh.AllowanceCategories {
		settings = append(settings, bisyaroh.Setting{
			Key: cat.Key, Value: "50000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryStructural, Label: cat.Name, SortOrder: i + 1,
		})
	}
	settings = append(settings,
		bisyaroh.Setting{Key: "potongan_koperasi", Value: "10000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryDeduction, Label: "Koperasi", SortOrder: 1},
		bisyaroh.Setting{Key: "potongan_infaq", Value: "5000", Type: bisyaroh.SettingInteger,
			Category: bisyaroh.CategoryDeduction, Label: "Infaq", SortOrder: 2},
	)

	for _, s := range settings {
		if err := seeder.UpsertSetting(ctx, s); err != nil {
			return fmt.Errorf("seed setting %s: %w", s.Key, err)
		}
	}
	return nil
}

// SeedDemoData loads the full demo dataset for the current month.
func SeedDemoData(ctx context.Context, seeder bisyaroh.Seeder) error {
	if err := SeedDefaultSettings(ctx, seeder); err != nil {
		return err
	}

	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	day := func(d int) time.Time { return monthStart.AddDate(0, 0, d-1) }

	staff := []bisyaroh.StaffMember{
		{
			ID: "guru-ahmad", Name: "Ahmad Fauzi", EmployeeNo: "19870101", Active: true,
			TenureStart: monthStart.AddDate(-7, 0, 0),
			Position:    "Kepala Madrasah",
			Roles:       []string{"kepala_madrasah"},
		},
		{
			ID: "guru-siti", Name: "Siti Maisaroh", EmployeeNo: "19910515", Active: true,
			TenureStart: monthStart.AddDate(-3, 0, 0),
			Position:    "Wakur / Walas VII",
			Roles:       []string{"waka_kurikulum"},
		},
		{
			ID: "guru-umar", Name: "Umar Said", EmployeeNo: "19950820", Active: true,
			TenureStart: monthStart.AddDate(-1, -6, 0),
			Position:    "Guru Mapel",
		},
	}
	for _, m := range staff {
		if err := seeder.SaveStaff(ctx, m); err != nil {
			return fmt.Errorf("seed staff %s: %w", m.ID, err)
		}
	}

	blocks := []bisyaroh.ScheduleBlock{
		{StaffID: "guru-ahmad", Subject: "Fiqih", Class: "IX-A", Day: "Senin", StartPeriod: 1, EndPeriod: 2},
		{StaffID: "guru-ahmad", Subject: "Fiqih", Class: "IX-B", Day: "Rabu", StartPeriod: 3, EndPeriod: 4},
		{StaffID: "guru-siti", Subject: "Matematika", Class: "VII-A", Day: "Senin", StartPeriod: 1, EndPeriod: 3},
		{StaffID: "guru-siti", Subject: "Matematika", Class: "VIII-A", Day: "Kamis", StartPeriod: 4, EndPeriod: 6},
		{StaffID: "guru-umar", Subject: "Bahasa Arab", Class: "VII-B", Day: "Selasa", StartPeriod: 1, EndPeriod: 2},
	}
	for _, b := range blocks {
		if err := seeder.SaveScheduleBlock(ctx, b); err != nil {
			return fmt.Errorf("seed schedule for %s: %w", b.StaffID, err)
		}
	}

	// Two teaching weeks of presence for everyone, one absence for Umar.
	for _, d := range []int{2, 4, 9, 11} {
		for _, id := range []bisyaroh.StaffID{"guru-ahmad", "guru-siti", "guru-umar"} {
			present := !(id == "guru-umar" && d == 11)
			if err := seeder.SaveTeachingAttendance(ctx, bisyaroh.TeachingAttendanceRecord{
				StaffID: id, Date: day(d), Subject: "Sesi KBM", Class: "-", Periods: "1-2", Present: present,
			}); err != nil {
				return fmt.Errorf("seed teaching attendance: %w", err)
			}
		}
	}

	activity := bisyaroh.Activity{
		ID: "keg-pramuka", Name: "Pramuka",
		ResponsibleID: "guru-siti",
		AssistantIDs:  []bisyaroh.StaffID{"guru-umar"},
		Start:         day(5),
		End:           day(26),
	}
	if err := seeder.SaveActivity(ctx, activity); err != nil {
		return fmt.Errorf("seed activity: %w", err)
	}
	for _, d := range []int{5, 12} {
		if err := seeder.SaveActivitySession(ctx, bisyaroh.ActivityAttendanceRecord{
			ActivityID:         activity.ID,
			Date:               day(d),
			ResponsiblePresent: true,
			AssistantPresence:  map[bisyaroh.StaffID]bool{"guru-umar": d == 5},
		}); err != nil {
			return fmt.Errorf("seed activity session: %w", err)
		}
	}

	meeting := bisyaroh.Meeting{
		ID: "rapat-awal-bulan", Agenda: "Evaluasi KBM", Venue: "Ruang Guru",
		Date:           day(8),
		ChairID:        "guru-ahmad",
		SecretaryID:    "guru-siti",
		ParticipantIDs: []bisyaroh.StaffID{"guru-umar"},
	}
	if err := seeder.SaveMeeting(ctx, meeting); err != nil {
		return fmt.Errorf("seed meeting: %w", err)
	}
	if err := seeder.SaveMeetingAttendance(ctx, bisyaroh.MeetingAttendanceRecord{
		MeetingID:           meeting.ID,
		ChairPresent:        true,
		SecretaryPresent:    true,
		ParticipantPresence: map[bisyaroh.StaffID]bool{"guru-umar": true},
	}); err != nil {
		return fmt.Errorf("seed meeting attendance: %w", err)
	}

	return nil
}
