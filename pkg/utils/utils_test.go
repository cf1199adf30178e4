package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{value: 0, want: "R$ 0,00"},
		{value: 10, want: "R$ 10,00"},
		{value: 999.999, want: "R$ 1.000,00"},
		{value: 1234567.891, want: "R$ 1.234.567,89"},
		{value: -250.5, want: "-R$ 250,50"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBRL(tt.value))
		})
	}
}

func TestRoundWithTwoDecimalPlace(t *testing.T) {
	assert.Equal(t, 2.35, RoundWithTwoDecimalPlace(2.345678))
	assert.Equal(t, 0.0, RoundWithTwoDecimalPlace(0))
}

func TestGeneratePrefixedID(t *testing.T) {
	id := GeneratePrefixedID("prod")

	require.True(t, strings.HasPrefix(id, "prod_"))
	assert.Len(t, strings.TrimPrefix(id, "prod_"), 6)
	assert.NotEqual(t, id, GeneratePrefixedID("prod"))
}
