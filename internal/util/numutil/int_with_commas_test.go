package numutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntWithCommas(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{input: 0, want: "0"},
		{input: 999, want: "999"},
		{input: 1000, want: "1,000"},
		{input: 1234567, want: "1,234,567"},
		{input: -12345, want: "-12,345"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, IntWithCommas(tt.input))
		})
	}
}

func TestIntWithCommasInt64(t *testing.T) {
	assert.Equal(t, "9,223,372,036,854,775,807", IntWithCommas(int64(9223372036854775807)))
}
