package settlement

import "sort"

// noiseFloor is the smallest amount worth transferring; residues below it are
// floating point noise and are dropped.
const noiseFloor = 0.01

// Balance is a member's net position after a debt round.
// Positive means the member is owed money, negative means they owe.
type Balance struct {
	MemberID int32
	Net      float64
}

// Transfer instructs one member to pay another a specific amount.
type Transfer struct {
	FromID int32
	ToID   int32
	Amount float64
}

// ComputeBalances derives net balances from contributions and each member's
// expected share. net = contributed - expected, in input order.
func ComputeBalances(contributions []Contribution, expected map[int32]float64) []Balance {
	balances := make([]Balance, 0, len(contributions))
	for _, c := range contributions {
		balances = append(balances, Balance{
			MemberID: c.MemberID,
			Net:      c.Amount - expected[c.MemberID],
		})
	}
	return balances
}

// Settle computes the pairwise transfers that drive every balance to zero.
//
// Algorithm: partition into creditors (net > 0) and debtors (net < 0), order
// both by descending magnitude, then repeatedly match the largest remaining
// debtor with the largest remaining creditor, transferring
// min(debt, credit). Ties keep input order so the output is deterministic.
// Produces at most len(balances)-1 transfers. Only meaningful when balances
// sum to zero; residues below the noise floor are dropped.
func Settle(balances []Balance) []Transfer {
	type party struct {
		id     int32
		amount float64 // Always positive
	}

	var debtors, creditors []party
	for _, b := range balances {
		switch {
		case b.Net < -noiseFloor:
			debtors = append(debtors, party{id: b.MemberID, amount: -b.Net})
		case b.Net > noiseFloor:
			creditors = append(creditors, party{id: b.MemberID, amount: b.Net})
		}
	}

	sort.SliceStable(debtors, func(i, j int) bool { return debtors[i].amount > debtors[j].amount })
	sort.SliceStable(creditors, func(i, j int) bool { return creditors[i].amount > creditors[j].amount })

	var transfers []Transfer
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := debtor.amount
		if creditor.amount < amount {
			amount = creditor.amount
		}

		if amount > noiseFloor {
			transfers = append(transfers, Transfer{
				FromID: debtor.id,
				ToID:   creditor.id,
				Amount: amount,
			})
		}

		debtor.amount -= amount
		creditor.amount -= amount

		if debtor.amount <= noiseFloor {
			i++
		}
		if creditor.amount <= noiseFloor {
			j++
		}
	}

	return transfers
}
