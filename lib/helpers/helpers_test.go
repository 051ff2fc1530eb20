package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"price-tracker-bot/lib/helpers"
)

func TestFormatPriceUS(t *testing.T) {
	tests := []struct {
		price float64
		want  string
	}{
		{1299, "1,299"},
		{128999, "128,999"},
		{499.5, "499.50"},
		{2.5, "2.50"},
		{0.75, "0.7500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, helpers.FormatPriceUS(tt.price))
	}
}
