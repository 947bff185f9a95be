package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIDFor(t *testing.T) {
	tests := []struct {
		name      string
		date      string
		expected  int
		wantError bool
	}{
		{name: "epoch date", date: "2026-02-02", expected: 0},
		{name: "next day after epoch", date: "2026-02-03", expected: 1},
		{name: "one year later", date: "2027-02-02", expected: 365},
		{name: "across leap day", date: "2028-03-02", expected: 759},
		{name: "invalid format", date: "02.02.2026", wantError: true},
		{name: "empty date", date: "", wantError: true},
		{name: "before epoch", date: "2026-02-01", wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := buildIDFor(tt.date)
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestString(t *testing.T) {
	old := BuildDate
	defer func() { BuildDate = old }()

	BuildDate = ""
	assert.True(t, strings.HasPrefix(String(), "boingle dev build"))
	assert.False(t, Info().Calculated)

	BuildDate = "2026-02-12"
	assert.Contains(t, String(), "boingle build 10 (2026-02-12)")
	assert.Equal(t, 10, Info().BuildID)
}
