package domain

import "fmt"

// Money is an amount in minor currency units (e.g. cents) with its currency
// code. All catalog prices are stored this way to avoid float arithmetic.
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PlainString renders the amount as a plain decimal string with two fraction
// digits and no currency symbol, e.g. 2999 -> "29.99". This is the exact form
// written into price index fields.
func (m Money) PlainString() string {
	amount := m.Amount
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s%d.%02d", sign, amount/100, amount%100)
}

// Price is a resolved lowest price for an entity under one price list.
// The "lowest" semantics belong to the price lookup, not the indexer.
type Price struct {
	PriceListGUID string `json:"price_list_guid"`
	Amount        Money  `json:"amount"`
}
