package bisyaroh_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

func TestSetting_Int(t *testing.T) {
	cases := []struct {
		name  string
		value string
		want  bisyaroh.Money
	}{
		{"plain", "30000", 30000},
		{"decimal from bulk edit", "30000.00", 30000},
		{"padded", "  7500 ", 7500},
		{"negative", "-5000", -5000},
		{"garbage", "tiga puluh ribu", 0},
		{"empty", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := bisyaroh.Setting{Value: tc.value, Type: bisyaroh.SettingInteger}
			assert.Equal(t, tc.want, s.Int())
		})
	}
}

func TestSetting_Bool(t *testing.T) {
	cases := []struct {
		value string
		want  bool
	}{
		{"1", true},
		{"true", true},
		{"TRUE", true},
		{"yes", true},
		{" true ", true},
		{"0", false},
		{"false", false},
		{"", false},
	}
	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			s := bisyaroh.Setting{Value: tc.value, Type: bisyaroh.SettingBoolean}
			assert.Equal(t, tc.want, s.Bool())
		})
	}
}
