package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{1500, "Rp 1.500"},
		{250000, "Rp 250.000"},
		{1500000, "Rp 1.500.000"},
		{1250000000, "Rp 1.250.000.000"},
		{-2000000, "-Rp 2.000.000"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatRupiah(decimal.NewFromInt(tc.in)))
	}
}
