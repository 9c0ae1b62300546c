/*
settings.go - Typed key/value rate settings

PURPOSE:
  Rate parameters and deduction line items live in a settings table the
  admin office edits at will. Settings are typed (integer/string/boolean)
  and grouped into ordered categories; the deduction category's order is
  what payslips display.

MISSING KEYS:
  A missing key is not an error here. Callers supply safe defaults; the
  observed production defaults are the Default* constants below.

SEE ALSO:
  - store.go: SettingsStore interface
  - generate.go: resolves a RateSettings per run via LoadRates
*/
package bisyaroh

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SETTING - one typed key/value row
// =============================================================================

type SettingType string

const (
	SettingInteger SettingType = "integer"
	SettingString  SettingType = "string"
	SettingBoolean SettingType = "boolean"
)

// Setting is one configuration row. SortOrder orders rows within a
// category; deduction rows keep this order all the way to the payslip.
type Setting struct {
	ID        string
	Key       string
	Value     string
	Type      SettingType
	Category  string
	Label     string
	SortOrder int
}

// Int returns the numeric value of an integer-typed setting. Values are
// stored as strings; decimal parsing tolerates inputs like "30000.00"
// that creep in through bulk edits. Unparseable values yield 0.
func (s Setting) Int() Money {
	d, err := decimal.NewFromString(strings.TrimSpace(s.Value))
	if err != nil {
		return 0
	}
	return Money(d.IntPart())
}

// Bool returns the value of a boolean-typed setting.
func (s Setting) Bool() bool {
	v := strings.ToLower(strings.TrimSpace(s.Value))
	return v == "1" || v == "true" || v == "yes"
}

// =============================================================================
// WELL-KNOWN KEYS AND DEFAULTS
// =============================================================================

const (
	KeyTeachingHourly      = "bisyaroh_per_jam"
	KeyTransportDaily      = "transport_per_hadir"
	KeyTenureYearly        = "tunjangan_masa_kerja_per_tahun"
	KeyActivityCoordinator = "tunj_koordinator_kegiatan"
	KeyActivityAssistant   = "tunj_pendamping_kegiatan"
	KeyMeetingFlat         = "tunj_rapat"

	CategoryBaseRates  = "tarif_dasar"
	CategoryStructural = "tunjangan_jabatan"
	CategoryActivity   = "tunjangan_kegiatan"
	CategoryDeduction  = "potongan"
)

// Observed production defaults, applied when a key is absent.
const (
	DefaultTeachingHourly Money = 30000
	DefaultTransportDaily Money = 7500
	DefaultTenureYearly   Money = 5000
)

// TenureCapYears caps the tenure allowance accrual.
const TenureCapYears = 5

// =============================================================================
// RATE RESOLUTION
// =============================================================================

// LoadRates resolves the full rate table for one run. Missing keys fall
// back to the observed defaults (activity/meeting/structural rates default
// to zero).
func LoadRates(ctx context.Context, store SettingsStore) (RateSettings, error) {
	intOr := func(key string, fallback Money) (Money, error) {
		s, ok, err := store.Get(ctx, key)
		if err != nil {
			return 0, err
		}
		if !ok {
			return fallback, nil
		}
		return s.Int(), nil
	}

	var rates RateSettings
	var err error
	if rates.TeachingHourly, err = intOr(KeyTeachingHourly, DefaultTeachingHourly); err != nil {
		return rates, err
	}
	if rates.TransportDaily, err = intOr(KeyTransportDaily, DefaultTransportDaily); err != nil {
		return rates, err
	}
	if rates.TenureYearly, err = intOr(KeyTenureYearly, DefaultTenureYearly); err != nil {
		return rates, err
	}
	if rates.ActivityCoordinator, err = intOr(KeyActivityCoordinator, 0); err != nil {
		return rates, err
	}
	if rates.ActivityAssistant, err = intOr(KeyActivityAssistant, 0); err != nil {
		return rates, err
	}
	if rates.MeetingFlat, err = intOr(KeyMeetingFlat, 0); err != nil {
		return rates, err
	}

	rates.Structural = make(map[string]Money, len(AllowanceCategories))
	for _, cat := range AllowanceCategories {
		if rates.Structural[cat.Key], err = intOr(cat.Key, 0); err != nil {
			return rates, err
		}
	}
	return rates, nil
}

// LoadDeductions returns the configured deduction lines in display order.
// Deductions are flat per-staff amounts, independent of attendance.
func LoadDeductions(ctx context.Context, store SettingsStore) ([]DeductionLine, error) {
	settings, err := store.ListByCategory(ctx, CategoryDeduction)
	if err != nil {
		return nil, err
	}
	lines := make([]DeductionLine, 0, len(settings))
	for _, s := range settings {
		lines = append(lines, DeductionLine{Label: s.Label, Amount: s.Int()})
	}
	return lines, nil
}
