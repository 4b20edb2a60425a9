package analysis_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/msp-lab/deskhawk/pkg/analysis"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and lowercases", "  Printer Not Working  ", "printer not working"},
		{"already normalized", "printer jam", "printer jam"},
		{"empty stays empty", "", ""},
		{"whitespace only", "   \t\n", ""},
		{"mixed case", "OUTLOOK Password RESET", "outlook password reset"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Equal(t, analysis.Normalize(tc.input), tc.want)
		})
	}
}

func TestNormalizeDeterministic(t *testing.T) {
	input := "  VPN Access Denied  "
	gt.Equal(t, analysis.Normalize(input), analysis.Normalize(input))
}
