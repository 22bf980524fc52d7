package tax

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/pkg/apperror"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		subtotal   int64
		percent    float64
		wantTax    int64
		wantTotal  int64
	}{
		{name: "bar at 18 percent", subtotal: 1000, percent: 18, wantTax: 180, wantTotal: 1180},
		{name: "zero percent", subtotal: 500, percent: 0, wantTax: 0, wantTotal: 500},
		{name: "zero subtotal", subtotal: 0, percent: 18, wantTax: 0, wantTotal: 0},
		{name: "half rounds up", subtotal: 10, percent: 5, wantTax: 1, wantTotal: 11},
		{name: "below half rounds down", subtotal: 9, percent: 5, wantTax: 0, wantTotal: 9},
		{name: "fractional percent", subtotal: 250, percent: 12.5, wantTax: 31, wantTotal: 281},
		{name: "large amount", subtotal: 12_345_678, percent: 28, wantTax: 3_456_790, wantTotal: 15_802_468},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.subtotal, tt.percent)
			require.NoError(t, err)

			assert.Equal(t, tt.subtotal, got.Subtotal)
			assert.Equal(t, tt.percent, got.TaxPercent)
			assert.Equal(t, tt.wantTax, got.TaxAmount)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

func TestCalculate_TotalAlwaysReconciles(t *testing.T) {
	for subtotal := int64(0); subtotal <= 2000; subtotal += 37 {
		for _, percent := range []float64{0, 2.5, 5, 12, 18, 28} {
			got, err := Calculate(subtotal, percent)
			require.NoError(t, err)

			assert.Equal(t, got.Subtotal+got.TaxAmount, got.Total)
			want := int64(math.Floor(float64(subtotal)*percent/100 + 0.5))
			assert.Equal(t, want, got.TaxAmount, "subtotal=%d percent=%v", subtotal, percent)
		}
	}
}

func TestCalculate_RejectsNegativeInput(t *testing.T) {
	_, err := Calculate(-1, 5)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	_, err = Calculate(100, -0.5)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))
}

func TestCalculate_RejectsTotalsBeyondInt64(t *testing.T) {
	_, err := Calculate(math.MaxInt64-10, 18)
	assert.True(t, apperror.Is(err, apperror.KindInvalidArgument))

	got, err := Calculate(math.MaxInt64-10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64-10), got.Total)
}
