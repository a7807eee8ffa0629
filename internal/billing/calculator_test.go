package billing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"rentroll/internal/billing"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	type testCase struct {
		name            string
		in              billing.ChargeInput
		wantConsumption string
		wantElec        string
		wantTotal       string
	}

	tests := []testCase{
		{
			name: "TypicalMonth",
			in: billing.ChargeInput{
				Rent:     dec("5000"),
				ElecPrev: dec("100"),
				ElecCurr: dec("150"),
				ElecRate: dec("11"),
				Water:    dec("200"),
			},
			wantConsumption: "50",
			wantElec:        "550",
			wantTotal:       "5750",
		},
		{
			name: "NoConsumption",
			in: billing.ChargeInput{
				Rent:     dec("3000"),
				ElecPrev: dec("420"),
				ElecCurr: dec("420"),
				ElecRate: dec("11"),
				Water:    dec("150"),
			},
			wantConsumption: "0",
			wantElec:        "0",
			wantTotal:       "3150",
		},
		{
			name: "MeterRollback",
			in: billing.ChargeInput{
				Rent:     dec("5000"),
				ElecPrev: dec("100"),
				ElecCurr: dec("90"),
				ElecRate: dec("11"),
				Water:    dec("200"),
			},
			wantConsumption: "-10",
			wantElec:        "-110",
			wantTotal:       "5090",
		},
		{
			name: "FractionalRate",
			in: billing.ChargeInput{
				Rent:     dec("4500"),
				ElecPrev: dec("1234.5"),
				ElecCurr: dec("1345.8"),
				ElecRate: dec("10.75"),
				Water:    dec("180.50"),
			},
			wantConsumption: "111.3",
			wantElec:        "1196.475",
			wantTotal:       "5876.975",
		},
		{
			name: "AllZero",
			in: billing.ChargeInput{
				Rent:     decimal.Zero,
				ElecPrev: decimal.Zero,
				ElecCurr: decimal.Zero,
				ElecRate: decimal.Zero,
				Water:    decimal.Zero,
			},
			wantConsumption: "0",
			wantElec:        "0",
			wantTotal:       "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.Calculate(tt.in)

			assert.True(t, got.Consumption.Equal(dec(tt.wantConsumption)),
				"consumption = %s, want %s", got.Consumption, tt.wantConsumption)
			assert.True(t, got.Elec.Equal(dec(tt.wantElec)),
				"elec = %s, want %s", got.Elec, tt.wantElec)
			assert.True(t, got.Total.Equal(dec(tt.wantTotal)),
				"total = %s, want %s", got.Total, tt.wantTotal)
		})
	}
}

// The total must always decompose into its parts exactly, with no rounding
// slippage even on awkward fractional inputs.
func TestCalculate_TotalDecomposes(t *testing.T) {
	in := billing.ChargeInput{
		Rent:     dec("4123.33"),
		ElecPrev: dec("999.999"),
		ElecCurr: dec("1033.333"),
		ElecRate: dec("11.11"),
		Water:    dec("166.67"),
	}

	got := billing.Calculate(in)

	sum := in.Rent.Add(got.Elec).Add(in.Water)
	assert.True(t, got.Total.Equal(sum), "total = %s, parts sum to %s", got.Total, sum)

	elec := in.ElecCurr.Sub(in.ElecPrev).Mul(in.ElecRate)
	assert.True(t, got.Elec.Equal(elec), "elec = %s, want %s", got.Elec, elec)
}
