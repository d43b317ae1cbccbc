package settlement

import (
	"fmt"
	"math"
)

// Contribution is one member's paid-in amount toward a bill.
type Contribution struct {
	MemberID int32
	Amount   float64
}

// MismatchError reports that the contributions do not add up to the bill.
type MismatchError struct {
	TotalBill float64
	Sum       float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("contributions sum to %.2f but total bill is %.2f (difference %.2f)",
		e.Sum, e.TotalBill, e.Sum-e.TotalBill)
}

// ValidateSplit checks that the contributions sum to the declared total bill
// within tolerance. A tolerance of 0 demands exact equality. Contributions
// may be zero but never negative.
func ValidateSplit(totalBill float64, contributions []Contribution, tolerance float64) error {
	if totalBill <= 0 {
		return fmt.Errorf("total bill must be positive, got %.2f", totalBill)
	}

	var sum float64
	for _, c := range contributions {
		if c.Amount < 0 {
			return fmt.Errorf("contribution for member %d must not be negative, got %.2f", c.MemberID, c.Amount)
		}
		sum += c.Amount
	}

	if math.Abs(sum-totalBill) > tolerance {
		return &MismatchError{TotalBill: totalBill, Sum: sum}
	}
	return nil
}
