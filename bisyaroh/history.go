/*
history.go - Snapshot / lock / delete workflow

PURPOSE:
  Freezes a period's compensation records into an immutable-capable
  snapshot for audit and record-keeping. Snapshots move through a small
  state machine:

    draft --lock--> locked --unlock--> draft
    draft --delete--> removed
    locked --delete--> rejected (ConflictError)

  Locking records who locked and when; unlocking clears both. Several
  snapshots may exist for the same period - uniqueness is not enforced.
*/
package bisyaroh

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// HistoryService manages compensation history snapshots.
type HistoryService struct {
	store    Store
	resolver *RoleResolver
	now      func() time.Time
}

// NewHistoryService wires a history service.
func NewHistoryService(store Store) *HistoryService {
	return &HistoryService{store: store, resolver: NewRoleResolver(), now: time.Now}
}

// Snapshot copies the period's current records (active staff only) into a
// new draft snapshot. Fails with a ConflictError when the period has no
// records to freeze.
func (h *HistoryService) Snapshot(ctx context.Context, period Period, label, notes, actor string) (*HistorySnapshot, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	staff, err := h.store.ListActiveStaff(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[StaffID]StaffMember, len(staff))
	ids := make([]StaffID, len(staff))
	for i, s := range staff {
		byID[s.ID] = s
		ids[i] = s.ID
	}

	records, err := h.store.ListRecords(ctx, period, ids)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, &ConflictError{Message: "nothing to snapshot: no compensation records for this period, generate first"}
	}

	snap := HistorySnapshot{
		ID:         SnapshotID(uuid.NewString()),
		Month:      period.Month,
		Year:       period.Year,
		Label:      label,
		Notes:      notes,
		Status:     SnapshotDraft,
		CreatedBy:  actor,
		CreatedAt:  h.now().UTC(),
		Rows:       make([]HistoryRow, 0, len(records)),
		StaffCount: len(records),
	}
	if snap.Label == "" {
		snap.Label = fmt.Sprintf("Bisyaroh %s", period)
	}

	for _, rec := range records {
		member := byID[rec.StaffID]
		snap.Rows = append(snap.Rows, HistoryRow{
			StaffID:             rec.StaffID,
			Name:                member.Name,
			Position:            DisplayPosition(member, h.resolver),
			WeeklyHours:         rec.WeeklyHours,
			PresentDays:         rec.PresentDays,
			BasePay:             rec.BasePay,
			StructuralAllowance: rec.StructuralAllowance,
			TransportAllowance:  rec.TransportAllowance,
			TenureAllowance:     rec.TenureAllowance,
			ActivityAllowance:   rec.ActivityAllowance,
			MeetingAllowance:    rec.MeetingAllowance,
			GrossTotal:          rec.GrossTotal,
			Deductions:          rec.Deductions,
			DeductionTotal:      rec.DeductionTotal,
			NetTotal:            rec.NetTotal,
			ActivityDetail:      rec.ActivityDetail,
			MeetingDetail:       rec.MeetingDetail,
		})
		snap.TotalGross += rec.GrossTotal
		snap.TotalNet += rec.NetTotal
	}

	if err := h.store.SaveSnapshot(ctx, snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Get returns one snapshot with its frozen rows.
func (h *HistoryService) Get(ctx context.Context, id SnapshotID) (*HistorySnapshot, error) {
	snap, err := h.store.GetSnapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, &NotFoundError{Entity: "history snapshot", ID: string(id)}
	}
	return snap, nil
}

// List returns snapshot summaries, newest first. Zero month/year filters
// mean "any".
func (h *HistoryService) List(ctx context.Context, month, year int) ([]HistorySnapshot, error) {
	if month != 0 && (month < 1 || month > 12) {
		return nil, &ValidationError{Field: "month", Message: "must be between 1 and 12"}
	}
	return h.store.ListSnapshots(ctx, month, year)
}

// ToggleLock flips the snapshot's lock. Locking records the actor and
// timestamp; unlocking clears them.
func (h *HistoryService) ToggleLock(ctx context.Context, id SnapshotID, actor string) (*HistorySnapshot, error) {
	snap, err := h.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if snap.Locked() {
		err = h.store.UpdateSnapshotLock(ctx, id, SnapshotDraft, "")
	} else {
		err = h.store.UpdateSnapshotLock(ctx, id, SnapshotLocked, actor)
	}
	if err != nil {
		return nil, err
	}
	return h.Get(ctx, id)
}

// Delete removes a snapshot. Locked snapshots must be unlocked first.
func (h *HistoryService) Delete(ctx context.Context, id SnapshotID) error {
	snap, err := h.Get(ctx, id)
	if err != nil {
		return err
	}
	if snap.Locked() {
		return &ConflictError{Message: "cannot delete a locked snapshot, unlock it first"}
	}
	return h.store.DeleteSnapshot(ctx, id)
}
