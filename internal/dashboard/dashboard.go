package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"rentroll/internal/billing"
	"rentroll/internal/unit"
)

// MaxOverdueBills caps how many unpaid bills the summary carries.
const MaxOverdueBills = 10

// Summary is the folded view of a year's bills and the owner's units.
type Summary struct {
	// MonthlyIncome maps every month 1..12 to the paid income of that
	// month; months without paid bills map to zero.
	MonthlyIncome map[int]decimal.Decimal
	TotalPaid     decimal.Decimal
	TotalUnpaid   decimal.Decimal
	Occupied      int
	Vacant        int
	// OverdueBills holds the oldest unpaid bills, ascending by
	// (year, month), at most MaxOverdueBills of them.
	OverdueBills []*billing.Bill
}

// Aggregate folds a year's bills, the owner's units and the unpaid bill
// backlog into a Summary. It is a pure function: same inputs, same output.
// Empty inputs produce a zero-valued summary, never an error.
func Aggregate(yearBills []*billing.Bill, units []*unit.Unit, unpaidBills []*billing.Bill) Summary {
	s := Summary{
		MonthlyIncome: make(map[int]decimal.Decimal, 12),
		TotalPaid:     decimal.Zero,
		TotalUnpaid:   decimal.Zero,
	}

	for m := 1; m <= 12; m++ {
		s.MonthlyIncome[m] = decimal.Zero
	}

	for _, b := range yearBills {
		switch b.Status {
		case billing.StatusPaid:
			s.TotalPaid = s.TotalPaid.Add(b.TotalAmount)

			if b.BillingMonth >= 1 && b.BillingMonth <= 12 {
				s.MonthlyIncome[b.BillingMonth] = s.MonthlyIncome[b.BillingMonth].Add(b.TotalAmount)
			}
		case billing.StatusUnpaid:
			s.TotalUnpaid = s.TotalUnpaid.Add(b.TotalAmount)
		}
	}

	for _, u := range units {
		switch u.Status {
		case unit.StatusOccupied:
			s.Occupied++
		case unit.StatusVacant:
			s.Vacant++
		}
	}

	s.OverdueBills = oldestOverdue(unpaidBills)

	return s
}

// oldestOverdue orders unpaid bills by billing period ascending, keeping
// the input order for bills in the same period, and caps the result.
func oldestOverdue(unpaid []*billing.Bill) []*billing.Bill {
	overdue := make([]*billing.Bill, len(unpaid))
	copy(overdue, unpaid)

	sort.SliceStable(overdue, func(i, j int) bool {
		if overdue[i].BillingYear != overdue[j].BillingYear {
			return overdue[i].BillingYear < overdue[j].BillingYear
		}

		return overdue[i].BillingMonth < overdue[j].BillingMonth
	})

	if len(overdue) > MaxOverdueBills {
		overdue = overdue[:MaxOverdueBills]
	}

	return overdue
}
