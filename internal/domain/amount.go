// Package domain holds the funds-transfer model: monetary amounts,
// accounts, accounting entries and the error taxonomy shared by every
// layer above it.
package domain

import "fmt"

// Amount is a quantity of money in a currency's minor units (cents for
// EUR). It is mutable on purpose; account balances change in place and
// snapshots are taken by copying the value.
type Amount struct {
	Value    int64
	Currency string
}

func NewAmount(value int64, currency string) Amount {
	return Amount{Value: value, Currency: currency}
}

// Add increases the value in place. Negative deltas are accepted, which
// is how debit legs of a transaction carry their sign.
func (a *Amount) Add(delta int64) {
	a.Value += delta
}

// Subtract decreases the value in place. It refuses to take the value
// below zero and leaves the amount untouched on failure.
func (a *Amount) Subtract(delta int64) error {
	if delta > a.Value {
		return fmt.Errorf("cannot subtract %d from %d", delta, a.Value)
	}
	a.Value -= delta
	return nil
}

func (a Amount) String() string {
	return fmt.Sprintf("%d %s", a.Value, a.Currency)
}
