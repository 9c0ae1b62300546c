/*
generate.go - Per-period compensation generation

PURPOSE:
  Orchestrates one compensation run: loads every active staff member,
  prunes stale records of deactivated staff, runs the calculator per
  staff member and upserts the results. Safe to re-run; two consecutive
  runs over unchanged inputs produce identical record sets.

ATOMICITY:
  The stale-delete and every upsert happen inside one store transaction.
  Any failure rolls the period back to its pre-call state - the caller
  never sees a half-generated month.

STATUS RESET:
  Every (re)generated record is forced back to draft, including records
  an admin had manually marked submitted. Regeneration means the numbers
  changed; a stale submitted flag is worse than a reset one.
*/
package bisyaroh

import (
	"context"
	"fmt"
)

// GenerationService runs compensation generation for a period.
type GenerationService struct {
	store    TxStore
	resolver *RoleResolver
}

// NewGenerationService wires a generation service.
func NewGenerationService(store TxStore) *GenerationService {
	return &GenerationService{store: store, resolver: NewRoleResolver()}
}

// Generate computes and upserts the period's records for all active
// staff, returning the number processed. Attendance data is never
// mutated; the only side effect is on compensation records.
func (g *GenerationService) Generate(ctx context.Context, period Period) (int, error) {
	if err := period.Validate(); err != nil {
		return 0, err
	}

	processed := 0
	err := g.store.WithTx(ctx, func(tx Store) error {
		staff, err := tx.ListActiveStaff(ctx)
		if err != nil {
			return fmt.Errorf("load active staff: %w", err)
		}

		keep := make([]StaffID, len(staff))
		for i, s := range staff {
			keep[i] = s.ID
		}
		if _, err := tx.DeleteStaleRecords(ctx, period, keep); err != nil {
			return fmt.Errorf("prune stale records: %w", err)
		}

		rates, err := LoadRates(ctx, tx)
		if err != nil {
			return fmt.Errorf("load rates: %w", err)
		}
		deductions, err := LoadDeductions(ctx, tx)
		if err != nil {
			return fmt.Errorf("load deductions: %w", err)
		}

		activities, err := tx.ListActivities(ctx, period)
		if err != nil {
			return fmt.Errorf("load activities: %w", err)
		}
		withSessions := make([]ActivityWithSessions, len(activities))
		for i, act := range activities {
			sessions, err := tx.ListActivitySessions(ctx, act.ID, period)
			if err != nil {
				return &ComputationError{Entity: "activity", ID: act.ID, Message: err.Error()}
			}
			withSessions[i] = ActivityWithSessions{Activity: act, Sessions: sessions}
		}

		meetings, err := tx.ListMeetings(ctx, period)
		if err != nil {
			return fmt.Errorf("load meetings: %w", err)
		}
		withAttendance := make([]MeetingWithAttendance, len(meetings))
		for i, m := range meetings {
			att, err := tx.GetMeetingAttendance(ctx, m.ID)
			if err != nil {
				return &ComputationError{Entity: "meeting", ID: m.ID, Message: err.Error()}
			}
			withAttendance[i] = MeetingWithAttendance{Meeting: m, Attendance: att}
		}

		for _, member := range staff {
			rec, err := g.buildRecord(ctx, tx, member, period, rates, deductions, withSessions, withAttendance)
			if err != nil {
				return err
			}
			if _, err := tx.UpsertRecord(ctx, rec); err != nil {
				return fmt.Errorf("upsert record for staff %s: %w", member.ID, err)
			}
			processed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return processed, nil
}

func (g *GenerationService) buildRecord(
	ctx context.Context,
	tx Store,
	member StaffMember,
	period Period,
	rates RateSettings,
	deductions []DeductionLine,
	activities []ActivityWithSessions,
	meetings []MeetingWithAttendance,
) (CompensationRecord, error) {
	blocks, err := tx.ListScheduleBlocks(ctx, member.ID)
	if err != nil {
		return CompensationRecord{}, &ComputationError{Entity: "schedule", ID: string(member.ID), Message: err.Error()}
	}
	teaching, err := tx.ListTeachingAttendance(ctx, member.ID, period)
	if err != nil {
		return CompensationRecord{}, &ComputationError{Entity: "teaching attendance", ID: string(member.ID), Message: err.Error()}
	}

	return Calculate(CalculationInput{
		Staff:       member,
		Period:      period,
		WeeklyHours: WeeklyHours(blocks),
		Teaching:    teaching,
		Activities:  activities,
		Meetings:    meetings,
		Categories:  g.resolver.Resolve(member.Roles, member.Position),
		Rates:       rates,
		Deductions:  deductions,
	}), nil
}

// =============================================================================
// READ OPERATIONS
// =============================================================================

// ListRecords returns the period's records for active staff only.
func (g *GenerationService) ListRecords(ctx context.Context, period Period) ([]CompensationRecord, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}
	staff, err := g.store.ListActiveStaff(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]StaffID, len(staff))
	for i, s := range staff {
		ids[i] = s.ID
	}
	return g.store.ListRecords(ctx, period, ids)
}

// GetRecord returns one record with its full audit breakdown.
func (g *GenerationService) GetRecord(ctx context.Context, id RecordID) (*CompensationRecord, error) {
	if id == "" {
		return nil, &ValidationError{Field: "id", Message: "must not be empty"}
	}
	rec, err := g.store.GetRecord(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, &NotFoundError{Entity: "compensation record", ID: string(id)}
	}
	return rec, nil
}

// DeleteRecords removes all of a period's records, returning the count.
func (g *GenerationService) DeleteRecords(ctx context.Context, period Period) (int, error) {
	if err := period.Validate(); err != nil {
		return 0, err
	}
	return g.store.DeleteRecords(ctx, period)
}

// Resolver exposes the role resolver for callers that decorate records
// with display positions.
func (g *GenerationService) Resolver() *RoleResolver { return g.resolver }
