package bisyaroh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

func TestRoleResolver_CanonicalRoles(t *testing.T) {
	r := bisyaroh.NewRoleResolver()

	cats := r.Resolve([]string{"kepala_madrasah", "wali_kelas"}, "")
	assert.Equal(t, []string{"tunj_kepala_madrasah", "tunj_wali_kelas"}, cats)
}

func TestRoleResolver_AliasFallback(t *testing.T) {
	r := bisyaroh.NewRoleResolver()

	cases := []struct {
		position string
		want     []string
	}{
		{"Waka Kurikulum", []string{"tunj_waka_kurikulum"}},
		{"wakur", []string{"tunj_waka_kurikulum"}},
		{"Walas VII-A", []string{"tunj_wali_kelas"}},
		{"Tata Administrasi II", []string{"tunj_tata_administrasi_ii"}},
		{"Guru Mapel", nil},
		{"", nil},
	}
	for _, tc := range cases {
		t.Run(tc.position, func(t *testing.T) {
			assert.Equal(t, tc.want, r.Resolve(nil, tc.position))
		})
	}
}

func TestRoleResolver_DuplicateSignalsPayOnce(t *testing.T) {
	// GIVEN: A canonical role and a free-text label naming the same position
	// WHEN: Resolving
	// THEN: The category appears exactly once

	r := bisyaroh.NewRoleResolver()

	cats := r.Resolve([]string{"waka_kurikulum"}, "Wakur / Walas VII")
	assert.Equal(t, []string{"tunj_waka_kurikulum", "tunj_wali_kelas"}, cats,
		"wakur matched by role, walas by alias, no duplicate")
}

func TestRoleResolver_UnknownRoleIgnored(t *testing.T) {
	r := bisyaroh.NewRoleResolver()
	assert.Empty(t, r.Resolve([]string{"satpam"}, ""))
}

func TestDisplayPosition(t *testing.T) {
	r := bisyaroh.NewRoleResolver()

	named := bisyaroh.StaffMember{Roles: []string{"kepala_madrasah"}, Position: "Kepala Madrasah"}
	assert.Equal(t, "Kepala Madrasah", bisyaroh.DisplayPosition(named, r))

	multi := bisyaroh.StaffMember{Roles: []string{"waka_kurikulum"}, Position: "Walas VIII"}
	assert.Equal(t, "Waka Kurikulum, Wali Kelas", bisyaroh.DisplayPosition(multi, r))

	plain := bisyaroh.StaffMember{Position: "Guru Mapel"}
	assert.Equal(t, "Guru", bisyaroh.DisplayPosition(plain, r))
}

func TestCategoryName(t *testing.T) {
	assert.Equal(t, "Wali Kelas", bisyaroh.CategoryName("tunj_wali_kelas"))
	assert.Equal(t, "tunj_unknown", bisyaroh.CategoryName("tunj_unknown"))
}
