/*
roles.go - Allowance category resolution

PURPOSE:
  Maps a staff member's canonical roles and free-text position label to a
  de-duplicated, ordered set of structural-allowance categories. Two
  signals naming the same position ("Waka Kurikulum" role plus a "Wakur"
  label) must pay the allowance exactly once.

ALGORITHM:
  Stage 1: each canonical role is looked up in the role table.
  Stage 2: for categories not yet matched, the position label is matched
           case-insensitively against the alias table (substring).
  Both stages are data, not code branches; a new position is a new table
  row, not a new if-statement.
*/
package bisyaroh

import "strings"

// AllowanceCategory is a structural-allowance category. Key doubles as
// the settings key carrying the category's monthly amount.
type AllowanceCategory struct {
	Key  string
	Name string
}

// AllowanceCategories lists every known category in display order.
var AllowanceCategories = []AllowanceCategory{
	{Key: "tunj_kepala_madrasah", Name: "Kepala Madrasah"},
	{Key: "tunj_tata_administrasi_i", Name: "Tata Administrasi I"},
	{Key: "tunj_tata_administrasi_ii", Name: "Tata Administrasi II"},
	{Key: "tunj_waka_kurikulum", Name: "Waka Kurikulum"},
	{Key: "tunj_waka_kesiswaan", Name: "Waka Kesiswaan"},
	{Key: "tunj_wali_kelas", Name: "Wali Kelas"},
	{Key: "tunj_proktor_anbk", Name: "Proktor ANBK"},
	{Key: "tunj_teknisi_anbk", Name: "Teknisi ANBK"},
}

// roleTable maps canonical role names to category keys (stage 1).
var roleTable = map[string]string{
	"kepala_madrasah": "tunj_kepala_madrasah",
	"waka_kurikulum":  "tunj_waka_kurikulum",
	"waka_kesiswaan":  "tunj_waka_kesiswaan",
	"wali_kelas":      "tunj_wali_kelas",
	"tata_usaha":      "tunj_tata_administrasi_i",
}

// aliasEntry is one substring alias for the position-label fallback
// (stage 2). More specific aliases come before generic ones; a category
// already matched in stage 1 is never matched again here.
type aliasEntry struct {
	Alias    string
	Category string
}

var aliasTable = []aliasEntry{
	{"Kepala Madrasah", "tunj_kepala_madrasah"},
	{"Tata Administrasi II", "tunj_tata_administrasi_ii"},
	{"Tata Administrasi I", "tunj_tata_administrasi_i"},
	{"Tata Administrasi", "tunj_tata_administrasi_i"},
	{"Waka Kurikulum", "tunj_waka_kurikulum"},
	{"Wakur", "tunj_waka_kurikulum"},
	{"Waka Kesiswaan", "tunj_waka_kesiswaan"},
	{"Wali Kelas", "tunj_wali_kelas"},
	{"Walas", "tunj_wali_kelas"},
	{"Proktor ANBK", "tunj_proktor_anbk"},
	{"Teknisi ANBK", "tunj_teknisi_anbk"},
}

// RoleResolver resolves allowance categories. The zero value uses the
// built-in tables; tests may substitute their own.
type RoleResolver struct {
	Roles   map[string]string
	Aliases []aliasEntry
}

// NewRoleResolver returns a resolver backed by the built-in tables.
func NewRoleResolver() *RoleResolver {
	return &RoleResolver{Roles: roleTable, Aliases: aliasTable}
}

// Resolve returns the ordered, de-duplicated category keys for the given
// canonical roles and position label. Each category appears at most once
// no matter how many signals matched it.
func (r *RoleResolver) Resolve(roles []string, position string) []string {
	var matched []string
	seen := make(map[string]bool)

	add := func(key string) {
		if key != "" && !seen[key] {
			seen[key] = true
			matched = append(matched, key)
		}
	}

	for _, role := range roles {
		add(r.Roles[role])
	}

	if position != "" {
		lower := strings.ToLower(position)
		for _, a := range r.Aliases {
			if seen[a.Category] {
				continue
			}
			if strings.Contains(lower, strings.ToLower(a.Alias)) {
				add(a.Category)
			}
		}
	}

	return matched
}

// CategoryName returns the display name for a category key, or the key
// itself when unknown.
func CategoryName(key string) string {
	for _, c := range AllowanceCategories {
		if c.Key == key {
			return c.Name
		}
	}
	return key
}

// DisplayPosition renders a staff member's position for lists and
// snapshots: the display names of their structural roles joined with
// commas, or "Guru" when they hold none.
func DisplayPosition(staff StaffMember, resolver *RoleResolver) string {
	cats := resolver.Resolve(staff.Roles, staff.Position)
	if len(cats) == 0 {
		return "Guru"
	}
	names := make([]string, len(cats))
	for i, key := range cats {
		names[i] = CategoryName(key)
	}
	return strings.Join(names, ", ")
}
