package bisyaroh_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

// =============================================================================
// TEST SETUP
// =============================================================================

var january = bisyaroh.Period{Month: 1, Year: 2025}

func defaultRates() bisyaroh.RateSettings {
	return bisyaroh.RateSettings{
		TeachingHourly:      30000,
		TransportDaily:      7500,
		TenureYearly:        5000,
		ActivityCoordinator: 25000,
		ActivityAssistant:   15000,
		MeetingFlat:         20000,
		Structural: map[string]bisyaroh.Money{
			"tunj_kepala_madrasah": 100000,
			"tunj_waka_kurikulum":  75000,
			"tunj_wali_kelas":      50000,
		},
	}
}

func teachingDay(id bisyaroh.StaffID, day int, present bool) bisyaroh.TeachingAttendanceRecord {
	return bisyaroh.TeachingAttendanceRecord{
		StaffID: id,
		Date:    time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC),
		Subject: "Matematika",
		Class:   "VII-A",
		Periods: "1-2",
		Present: present,
	}
}

func janDate(day int) time.Time {
	return time.Date(2025, time.January, day, 0, 0, 0, 0, time.UTC)
}

// =============================================================================
// BASE PAY AND TRANSPORT
// =============================================================================

func TestCalculate_BasePayAndTransport(t *testing.T) {
	// GIVEN: 10 weekly schedule hours and 18 present teaching days
	// WHEN: Calculating with default rates and one flat deduction
	// THEN: base 300000, transport 135000, gross 435000, net 425000

	teaching := make([]bisyaroh.TeachingAttendanceRecord, 0, 18)
	for day := 1; day <= 18; day++ {
		teaching = append(teaching, teachingDay("guru-1", day, true))
	}

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:       bisyaroh.StaffMember{ID: "guru-1", Name: "Siti", Active: true},
		Period:      january,
		WeeklyHours: 10,
		Teaching:    teaching,
		Rates:       defaultRates(),
		Deductions:  []bisyaroh.DeductionLine{{Label: "Koperasi", Amount: 10000}},
	})

	assert.Equal(t, bisyaroh.Money(300000), rec.BasePay, "10 hours x 30000")
	assert.Equal(t, 18, rec.PresentDays)
	assert.Equal(t, bisyaroh.Money(135000), rec.TransportAllowance, "18 days x 7500")
	assert.Equal(t, bisyaroh.Money(435000), rec.GrossTotal)
	assert.Equal(t, bisyaroh.Money(10000), rec.DeductionTotal)
	assert.Equal(t, bisyaroh.Money(425000), rec.NetTotal)
	assert.Equal(t, bisyaroh.StatusDraft, rec.Status)
}

func TestCalculate_BasePayIgnoresAttendance(t *testing.T) {
	// GIVEN: A schedule but zero attendance anywhere
	// WHEN: Calculating
	// THEN: Base pay is the full flat amount; transport is zero

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:       bisyaroh.StaffMember{ID: "guru-1"},
		Period:      january,
		WeeklyHours: 6,
		Rates:       defaultRates(),
	})

	assert.Equal(t, bisyaroh.Money(180000), rec.BasePay)
	assert.Equal(t, bisyaroh.Money(0), rec.TransportAllowance)
	assert.Equal(t, 0, rec.PresentDays)
}

func TestCalculate_AbsentSessionsStillAudited(t *testing.T) {
	// GIVEN: Two sessions, one absent
	// WHEN: Calculating
	// THEN: Only the present date pays transport, both appear in detail

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:  bisyaroh.StaffMember{ID: "guru-1"},
		Period: january,
		Teaching: []bisyaroh.TeachingAttendanceRecord{
			teachingDay("guru-1", 6, true),
			teachingDay("guru-1", 7, false),
		},
		Rates: defaultRates(),
	})

	assert.Equal(t, 1, rec.PresentDays)
	require.Len(t, rec.TeachingDetail, 2)
	assert.True(t, rec.TeachingDetail[0].Present)
	assert.False(t, rec.TeachingDetail[1].Present)
}

// =============================================================================
// TRANSPORT DAY DEDUPLICATION
// =============================================================================

func TestCalculate_PresentDayCountedOnceAcrossSubsystems(t *testing.T) {
	// GIVEN: The same date present in teaching, an activity session and a meeting
	// WHEN: Calculating
	// THEN: Transport pays that date exactly once

	activity := bisyaroh.Activity{ID: "keg-1", Name: "Pramuka", ResponsibleID: "guru-1", Start: janDate(6)}
	meeting := bisyaroh.Meeting{ID: "rapat-1", Agenda: "Evaluasi", Date: janDate(6), ChairID: "guru-1"}

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:    bisyaroh.StaffMember{ID: "guru-1"},
		Period:   january,
		Teaching: []bisyaroh.TeachingAttendanceRecord{teachingDay("guru-1", 6, true)},
		Activities: []bisyaroh.ActivityWithSessions{{
			Activity: activity,
			Sessions: []bisyaroh.ActivityAttendanceRecord{
				{ActivityID: "keg-1", Date: janDate(6), ResponsiblePresent: true},
			},
		}},
		Meetings: []bisyaroh.MeetingWithAttendance{{
			Meeting:    meeting,
			Attendance: &bisyaroh.MeetingAttendanceRecord{MeetingID: "rapat-1", ChairPresent: true},
		}},
		Rates: defaultRates(),
	})

	assert.Equal(t, 1, rec.PresentDays, "one calendar date, one transport day")
	assert.Equal(t, bisyaroh.Money(7500), rec.TransportAllowance)
	// The allowances themselves still pay independently.
	assert.Equal(t, bisyaroh.Money(25000), rec.ActivityAllowance)
	assert.Equal(t, bisyaroh.Money(20000), rec.MeetingAllowance)
}

// =============================================================================
// STRUCTURAL AND TENURE ALLOWANCES
// =============================================================================

func TestCalculate_StructuralSumsResolvedCategories(t *testing.T) {
	// GIVEN: Two resolved categories
	// WHEN: Calculating
	// THEN: Their amounts are summed once each

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:      bisyaroh.StaffMember{ID: "guru-1"},
		Period:     january,
		Categories: []string{"tunj_waka_kurikulum", "tunj_wali_kelas"},
		Rates:      defaultRates(),
	})

	assert.Equal(t, bisyaroh.Money(125000), rec.StructuralAllowance)
}

func TestCalculate_TenureCapped(t *testing.T) {
	rates := defaultRates()

	cases := []struct {
		name  string
		start time.Time
		want  bisyaroh.Money
	}{
		{"twelve years pays like five", janDate(1).AddDate(-12, 0, 0), 25000},
		{"exactly five years", janDate(1).AddDate(-5, 0, 0), 25000},
		{"two and a half years pays two", janDate(1).AddDate(-2, -6, 0), 10000},
		{"hired this month", janDate(1), 0},
		{"unknown start date", time.Time{}, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
				Staff:  bisyaroh.StaffMember{ID: "guru-1", TenureStart: tc.start},
				Period: january,
				Rates:  rates,
			})
			assert.Equal(t, tc.want, rec.TenureAllowance)
		})
	}
}

// =============================================================================
// ACTIVITIES
// =============================================================================

func TestCalculate_ActivityRoles(t *testing.T) {
	// GIVEN: An activity with a coordinator and an assistant, two sessions
	// WHEN: Calculating for each of them
	// THEN: Attended sessions pay the role's rate

	activity := bisyaroh.Activity{
		ID: "keg-1", Name: "Pramuka",
		ResponsibleID: "guru-1",
		AssistantIDs:  []bisyaroh.StaffID{"guru-2"},
		Start:         janDate(3),
	}
	sessions := []bisyaroh.ActivityAttendanceRecord{
		{ActivityID: "keg-1", Date: janDate(3), ResponsiblePresent: true,
			AssistantPresence: map[bisyaroh.StaffID]bool{"guru-2": true}},
		{ActivityID: "keg-1", Date: janDate(10), ResponsiblePresent: true,
			AssistantPresence: map[bisyaroh.StaffID]bool{"guru-2": false}},
	}
	input := func(id bisyaroh.StaffID) bisyaroh.CalculationInput {
		return bisyaroh.CalculationInput{
			Staff:      bisyaroh.StaffMember{ID: id},
			Period:     january,
			Activities: []bisyaroh.ActivityWithSessions{{Activity: activity, Sessions: sessions}},
			Rates:      defaultRates(),
		}
	}

	coordinator := bisyaroh.Calculate(input("guru-1"))
	assert.Equal(t, bisyaroh.Money(50000), coordinator.ActivityAllowance, "2 attended x 25000")
	require.Len(t, coordinator.ActivityDetail, 1)
	assert.Equal(t, bisyaroh.RoleCoordinator, coordinator.ActivityDetail[0].Role)
	assert.Equal(t, 2, coordinator.ActivityDetail[0].Attended)
	assert.Equal(t, 2, coordinator.ActivityDetail[0].Sessions)

	assistant := bisyaroh.Calculate(input("guru-2"))
	assert.Equal(t, bisyaroh.Money(15000), assistant.ActivityAllowance, "1 attended x 15000")
	assert.Equal(t, bisyaroh.RoleAssistant, assistant.ActivityDetail[0].Role)
}

func TestCalculate_ActivityWithoutResponsibleDegrades(t *testing.T) {
	// GIVEN: An activity whose responsible staff could not be resolved
	// WHEN: Calculating for an uninvolved staff member
	// THEN: A zero audit line with a note, no error, no allowance

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:  bisyaroh.StaffMember{ID: "guru-1"},
		Period: january,
		Activities: []bisyaroh.ActivityWithSessions{{
			Activity: bisyaroh.Activity{ID: "keg-x", Name: "Orphaned", Start: janDate(4)},
			Sessions: []bisyaroh.ActivityAttendanceRecord{
				{ActivityID: "keg-x", Date: janDate(4), ResponsiblePresent: true},
			},
		}},
		Rates: defaultRates(),
	})

	assert.Equal(t, bisyaroh.Money(0), rec.ActivityAllowance)
	require.Len(t, rec.ActivityDetail, 1)
	assert.Equal(t, bisyaroh.RoleNone, rec.ActivityDetail[0].Role)
	assert.NotEmpty(t, rec.ActivityDetail[0].Note)
	assert.Equal(t, 0, rec.ActivityDetail[0].Sessions, "sessions belong to an assigned role")
	assert.Equal(t, 0, rec.PresentDays, "unassigned sessions never feed transport")
}

func TestCalculate_UnassignedActivityStaysVisible(t *testing.T) {
	// GIVEN: An activity the staff member is not assigned to
	// THEN: It appears in the detail with role "-" and zero amount

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:  bisyaroh.StaffMember{ID: "guru-9"},
		Period: january,
		Activities: []bisyaroh.ActivityWithSessions{{
			Activity: bisyaroh.Activity{ID: "keg-1", Name: "Pramuka", ResponsibleID: "guru-1", Start: janDate(3)},
			Sessions: []bisyaroh.ActivityAttendanceRecord{
				{ActivityID: "keg-1", Date: janDate(3), ResponsiblePresent: true},
			},
		}},
		Rates: defaultRates(),
	})

	require.Len(t, rec.ActivityDetail, 1)
	assert.Equal(t, bisyaroh.RoleNone, rec.ActivityDetail[0].Role)
	assert.Equal(t, bisyaroh.Money(0), rec.ActivityDetail[0].Amount)
	assert.Equal(t, 0, rec.ActivityDetail[0].Sessions)
}

// =============================================================================
// MEETINGS
// =============================================================================

func TestCalculate_MeetingAttendance(t *testing.T) {
	meeting := bisyaroh.Meeting{
		ID: "rapat-1", Agenda: "Evaluasi", Date: janDate(8),
		ChairID: "guru-1", SecretaryID: "guru-2",
		ParticipantIDs: []bisyaroh.StaffID{"guru-3"},
	}
	attendance := &bisyaroh.MeetingAttendanceRecord{
		MeetingID:           "rapat-1",
		ChairPresent:        true,
		SecretaryPresent:    false,
		ParticipantPresence: map[bisyaroh.StaffID]bool{"guru-3": true},
	}
	input := func(id bisyaroh.StaffID) bisyaroh.CalculationInput {
		return bisyaroh.CalculationInput{
			Staff:    bisyaroh.StaffMember{ID: id},
			Period:   january,
			Meetings: []bisyaroh.MeetingWithAttendance{{Meeting: meeting, Attendance: attendance}},
			Rates:    defaultRates(),
		}
	}

	chair := bisyaroh.Calculate(input("guru-1"))
	assert.Equal(t, bisyaroh.Money(20000), chair.MeetingAllowance)

	secretary := bisyaroh.Calculate(input("guru-2"))
	assert.Equal(t, bisyaroh.Money(0), secretary.MeetingAllowance, "absent secretary earns nothing")
	require.Len(t, secretary.MeetingDetail, 1, "involvement keeps the audit line")
	assert.False(t, secretary.MeetingDetail[0].Attended)

	participant := bisyaroh.Calculate(input("guru-3"))
	assert.Equal(t, bisyaroh.Money(20000), participant.MeetingAllowance)

	uninvolved := bisyaroh.Calculate(input("guru-9"))
	assert.Empty(t, uninvolved.MeetingDetail, "uninvolved staff never see the meeting")
}

func TestCalculate_MeetingWithoutAttendanceRecord(t *testing.T) {
	// GIVEN: A meeting where no attendance was taken
	// THEN: Involved staff get an unattended zero line

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:  bisyaroh.StaffMember{ID: "guru-1"},
		Period: january,
		Meetings: []bisyaroh.MeetingWithAttendance{{
			Meeting: bisyaroh.Meeting{ID: "rapat-1", Date: janDate(8), ChairID: "guru-1"},
		}},
		Rates: defaultRates(),
	})

	assert.Equal(t, bisyaroh.Money(0), rec.MeetingAllowance)
	require.Len(t, rec.MeetingDetail, 1)
	assert.False(t, rec.MeetingDetail[0].Attended)
}

// =============================================================================
// TOTALS
// =============================================================================

func TestCalculate_NetMayGoNegative(t *testing.T) {
	// GIVEN: No earnings and a configured deduction
	// THEN: Net total goes below zero; nothing clamps it

	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:      bisyaroh.StaffMember{ID: "guru-1"},
		Period:     january,
		Rates:      defaultRates(),
		Deductions: []bisyaroh.DeductionLine{{Label: "Koperasi", Amount: 10000}},
	})

	assert.Equal(t, bisyaroh.Money(0), rec.GrossTotal)
	assert.Equal(t, bisyaroh.Money(-10000), rec.NetTotal)
}

func TestCalculate_ZeroInputProducesVisibleZeroRecord(t *testing.T) {
	// A staff member with no schedule and no attendance still yields a row.
	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:  bisyaroh.StaffMember{ID: "guru-baru"},
		Period: january,
		Rates:  defaultRates(),
	})

	assert.Equal(t, bisyaroh.Money(0), rec.GrossTotal)
	assert.Equal(t, bisyaroh.Money(0), rec.NetTotal)
	assert.Equal(t, bisyaroh.StatusDraft, rec.Status)
	assert.NotNil(t, rec.TeachingDetail)
}

func TestCalculate_DeductionOrderPreserved(t *testing.T) {
	deductions := []bisyaroh.DeductionLine{
		{Label: "Koperasi", Amount: 10000},
		{Label: "Infaq", Amount: 5000},
		{Label: "Arisan", Amount: 2500},
	}
	rec := bisyaroh.Calculate(bisyaroh.CalculationInput{
		Staff:      bisyaroh.StaffMember{ID: "guru-1"},
		Period:     january,
		Rates:      defaultRates(),
		Deductions: deductions,
	})

	require.Len(t, rec.Deductions, 3)
	assert.Equal(t, "Koperasi", rec.Deductions[0].Label)
	assert.Equal(t, "Infaq", rec.Deductions[1].Label)
	assert.Equal(t, "Arisan", rec.Deductions[2].Label)
	assert.Equal(t, bisyaroh.Money(17500), rec.DeductionTotal)
}

func TestWeeklyHours(t *testing.T) {
	blocks := []bisyaroh.ScheduleBlock{
		{StartPeriod: 1, EndPeriod: 2},  // 2 hours
		{StartPeriod: 3, EndPeriod: 3},  // 1 hour
		{StartPeriod: 5, EndPeriod: 1},  // malformed block counts as 1
	}
	assert.Equal(t, 4, bisyaroh.WeeklyHours(blocks))
	assert.Equal(t, 0, bisyaroh.WeeklyHours(nil))
}
