package quote

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestComputeTotals_ExampleQuote(t *testing.T) {
	items := []LineItem{
		{Description: "Cleaning", UnitValue: d("100.00")},
		{Description: "Windows", UnitValue: d("50.00")},
		{Description: "Floors", UnitValue: d("25.00")},
	}

	got, err := ComputeTotals(items, d("12"), d("3"))
	require.NoError(t, err)

	assert.Equal(t, "175.00", got.Subtotal.StringFixed(2))
	assert.Equal(t, "21.00", got.Tax.StringFixed(2))
	assert.Equal(t, "5.25", got.Commission.StringFixed(2))
	assert.Equal(t, "201.25", got.Total.StringFixed(2))
}

func TestComputeTotals_Empty(t *testing.T) {
	got, err := ComputeTotals(nil, d("12"), d("3"))
	require.NoError(t, err)

	for _, v := range []decimal.Decimal{got.Subtotal, got.Tax, got.Commission, got.Total} {
		assert.True(t, v.IsZero(), "expected zero, got %s", v)
	}
}

func TestComputeTotals_Invariants(t *testing.T) {
	cases := []struct {
		name      string
		values    []string
		tax, comm string
	}{
		{"single", []string{"10"}, "0", "0"},
		{"fractions", []string{"0.01", "19.99", "3.333"}, "7.5", "2.25"},
		{"full rates", []string{"1000", "0.5"}, "100", "100"},
		{"odd cents", []string{"33.33", "33.33", "33.34"}, "17", "4.5"},
		{"zero value item", []string{"0", "12.40"}, "18", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var items []LineItem
			for _, v := range tc.values {
				items = append(items, LineItem{Description: "x", UnitValue: d(v)})
			}
			got, err := ComputeTotals(items, d(tc.tax), d(tc.comm))
			require.NoError(t, err)

			sum := got.Subtotal.Add(got.Tax).Add(got.Commission)
			assert.True(t, got.Total.Equal(sum), "total %s != %s", got.Total, sum)

			if got.Subtotal.IsPositive() {
				ratio := got.Tax.Div(got.Subtotal)
				assert.True(t, ratio.Equal(d(tc.tax).Div(hundred)), "tax ratio %s", ratio)
			}
		})
	}
}

func TestComputeTotals_InvalidInput(t *testing.T) {
	cases := []struct {
		name      string
		items     []LineItem
		tax, comm string
	}{
		{"negative value", []LineItem{{Description: "Refund", UnitValue: d("-1")}}, "0", "0"},
		{"tax above 100", nil, "150", "0"},
		{"commission above 100", nil, "0", "100.01"},
		{"negative tax", nil, "-0.5", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ComputeTotals(tc.items, d(tc.tax), d(tc.comm))
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
