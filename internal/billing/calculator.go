package billing

import "github.com/shopspring/decimal"

// ChargeInput holds the raw billing inputs as entered by the landlord.
type ChargeInput struct {
	Rent     decimal.Decimal
	ElecPrev decimal.Decimal
	ElecCurr decimal.Decimal
	ElecRate decimal.Decimal
	Water    decimal.Decimal
}

// Charges holds the derived charge fields stored on a bill.
type Charges struct {
	Consumption decimal.Decimal
	Elec        decimal.Decimal
	Total       decimal.Decimal
}

// Calculate derives the electricity and total charges from the raw inputs:
//
//	elec  = (curr - prev) * rate
//	total = rent + elec + water
//
// The result is exact, unrounded decimal arithmetic; display rounding is
// left to clients. A current reading below the previous one yields a
// negative electricity charge rather than an error (meter rollback
// corrections are entered this way).
//
// Both the preview endpoint and the create/update paths go through this
// function, so previewed and persisted values cannot diverge.
func Calculate(in ChargeInput) Charges {
	consumption := in.ElecCurr.Sub(in.ElecPrev)
	elec := consumption.Mul(in.ElecRate)

	return Charges{
		Consumption: consumption,
		Elec:        elec,
		Total:       in.Rent.Add(elec).Add(in.Water),
	}
}
