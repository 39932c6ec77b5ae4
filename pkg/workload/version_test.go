package workload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected string
	}{
		{
			name: "full form with branch and revision",
			output: `tempo, version 2.3.1 (branch: HEAD, revision: fd5743d5d)
  build user:
  build date:
  go version:       go1.21.3
  platform:         linux/amd64`,
			expected: "2.3.1:HEAD/fd5743d5d",
		},
		{
			name:     "headless form",
			output:   "tempo, version 2.3.1",
			expected: "2.3.1",
		},
		{
			name:     "unrecognized output",
			output:   "flag provided but not defined: -version",
			expected: "",
		},
		{
			name:     "empty output",
			output:   "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseVersion(tt.output))
		})
	}
}
