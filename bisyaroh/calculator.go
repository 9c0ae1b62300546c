/*
calculator.go - The pure pay-rule stack

PURPOSE:
  Turns one staff member's month of attendance into a full compensation
  breakdown. No I/O: every input is handed in, the output is a record
  payload (no id) plus audit detail lists. The generation service owns
  gathering inputs and persisting results.

RULE ORDER (order matters, later steps consume earlier state):
  1. Base pay        = weekly schedule hours x hourly rate (flat monthly)
  2. Structural      = sum of matched allowance categories, each once
  3. Tenure          = min(cap, full years at the 1st) x yearly rate
  4. Activities      = attended sessions x per-role rate, per activity
  5. Meetings        = flat rate per attended meeting
  6. Transport       = distinct present days x daily rate; a date present
                       in teaching, an activity and a meeting counts once
  7. Gross           = 1+2+3+4+5+6
  8. Deductions      = configured flat lines, attendance-independent
  9. Net             = gross - deductions (the one field allowed negative)

  A staff member with no schedule and no attendance still produces an
  all-zero record: payroll wants the row visible, not missing.
*/
package bisyaroh

// ActivityWithSessions pairs an activity with its attendance sessions for
// the target month.
type ActivityWithSessions struct {
	Activity Activity
	Sessions []ActivityAttendanceRecord
}

// MeetingWithAttendance pairs a meeting with its attendance record, which
// may be nil when no attendance was taken.
type MeetingWithAttendance struct {
	Meeting    Meeting
	Attendance *MeetingAttendanceRecord
}

// CalculationInput is everything the calculator needs for one staff
// member and one month.
type CalculationInput struct {
	Staff       StaffMember
	Period      Period
	WeeklyHours int
	Teaching    []TeachingAttendanceRecord
	Activities  []ActivityWithSessions
	Meetings    []MeetingWithAttendance
	Categories  []string // resolved allowance category keys
	Rates       RateSettings
	Deductions  []DeductionLine
}

// Calculate runs the pay-rule stack. The returned record carries no ID
// and status draft; the caller assigns identity on upsert.
func Calculate(in CalculationInput) CompensationRecord {
	rec := CompensationRecord{
		StaffID:     in.Staff.ID,
		Month:       in.Period.Month,
		Year:        in.Period.Year,
		WeeklyHours: in.WeeklyHours,
		Status:      StatusDraft,
	}

	presentDays := make(map[string]bool)

	// 1. Base pay: flat monthly figure tied to the weekly schedule, not
	// multiplied by sessions actually taught or weeks in the month.
	rec.BasePay = Money(in.WeeklyHours) * in.Rates.TeachingHourly

	// Teaching attendance: present dates feed the transport set, every
	// session feeds the audit log.
	rec.TeachingDetail = make([]TeachingDetail, 0, len(in.Teaching))
	for _, t := range in.Teaching {
		if t.Present {
			presentDays[DateKey(t.Date)] = true
		}
		rec.TeachingDetail = append(rec.TeachingDetail, TeachingDetail{
			Date:    DateKey(t.Date),
			Subject: t.Subject,
			Class:   t.Class,
			Periods: t.Periods,
			Present: t.Present,
		})
	}

	// 2. Structural allowance: each matched category pays once.
	for _, cat := range in.Categories {
		rec.StructuralAllowance += in.Rates.Structural[cat]
	}

	// 3. Tenure allowance, capped.
	years := in.Period.TenureYears(in.Staff.TenureStart, TenureCapYears)
	rec.TenureAllowance = Money(years) * in.Rates.TenureYearly

	// 4. Activity allowance.
	rec.ActivityDetail = make([]ActivityDetail, 0, len(in.Activities))
	for _, aw := range in.Activities {
		rec.ActivityDetail = append(rec.ActivityDetail, activityLine(in, aw, presentDays, &rec.ActivityAllowance))
	}

	// 5. Meeting allowance.
	rec.MeetingDetail = make([]MeetingDetail, 0, len(in.Meetings))
	for _, mw := range in.Meetings {
		line, involved := meetingLine(in, mw, presentDays)
		if !involved {
			continue
		}
		rec.MeetingAllowance += line.Amount
		rec.MeetingDetail = append(rec.MeetingDetail, line)
	}

	// 6. Transport: each distinct present date once, regardless of how
	// many subsystems recorded it.
	rec.PresentDays = len(presentDays)
	rec.TransportAllowance = Money(rec.PresentDays) * in.Rates.TransportDaily

	// 7-9. Totals.
	rec.GrossTotal = rec.BasePay + rec.StructuralAllowance + rec.TransportAllowance +
		rec.TenureAllowance + rec.ActivityAllowance + rec.MeetingAllowance
	rec.Deductions = append([]DeductionLine(nil), in.Deductions...)
	rec.DeductionTotal = DeductionTotal(rec.Deductions)
	rec.NetTotal = rec.GrossTotal - rec.DeductionTotal

	return rec
}

// activityLine resolves one activity: role, attended-session count and
// allowance. Activities the staff member is not assigned to still appear
// in the audit detail with role "-", zero amount and zero sessions; the
// session count belongs to the assigned role, not the activity.
func activityLine(in CalculationInput, aw ActivityWithSessions, presentDays map[string]bool, total *Money) ActivityDetail {
	act := aw.Activity
	line := ActivityDetail{
		ActivityID: act.ID,
		Name:       act.Name,
		Date:       DateKey(act.Start),
		Role:       RoleNone,
	}

	isCoordinator := act.ResponsibleID != "" && act.ResponsibleID == in.Staff.ID
	isAssistant := false
	for _, id := range act.AssistantIDs {
		if id == in.Staff.ID {
			isAssistant = true
			break
		}
	}

	if act.ResponsibleID == "" && !isAssistant {
		// Benign data gap: the activity has no resolvable responsible
		// staff. Degrade to a zero line rather than failing the run.
		line.Note = "no responsible staff assigned"
		return line
	}

	if !isCoordinator && !isAssistant {
		return line
	}

	rate := in.Rates.ActivityAssistant
	line.Role = RoleAssistant
	if isCoordinator {
		rate = in.Rates.ActivityCoordinator
		line.Role = RoleCoordinator
	}
	line.Sessions = len(aw.Sessions)

	for _, session := range aw.Sessions {
		attended := false
		if isCoordinator {
			attended = session.ResponsiblePresent
		} else {
			attended = session.AssistantPresence[in.Staff.ID]
		}
		if attended {
			line.Attended++
			presentDays[DateKey(session.Date)] = true
		}
	}

	line.Amount = Money(line.Attended) * rate
	*total += line.Amount
	return line
}

// meetingLine resolves one meeting. Only meetings the staff member chairs,
// takes minutes for, or participates in produce a line.
func meetingLine(in CalculationInput, mw MeetingWithAttendance, presentDays map[string]bool) (MeetingDetail, bool) {
	m := mw.Meeting
	isChair := m.ChairID == in.Staff.ID
	isSecretary := m.SecretaryID == in.Staff.ID
	isParticipant := false
	for _, id := range m.ParticipantIDs {
		if id == in.Staff.ID {
			isParticipant = true
			break
		}
	}
	if !isChair && !isSecretary && !isParticipant {
		return MeetingDetail{}, false
	}

	attended := false
	if mw.Attendance != nil {
		switch {
		case isChair:
			attended = mw.Attendance.ChairPresent
		case isSecretary:
			attended = mw.Attendance.SecretaryPresent
		default:
			attended = mw.Attendance.ParticipantPresence[in.Staff.ID]
		}
	}

	line := MeetingDetail{
		MeetingID: m.ID,
		Agenda:    m.Agenda,
		Date:      DateKey(m.Date),
		Venue:     m.Venue,
		Attended:  attended,
	}
	if attended {
		line.Amount = in.Rates.MeetingFlat
		presentDays[DateKey(m.Date)] = true
	}
	return line, true
}
