package domain

// Account is a balance held under a unique account number. The balance
// carries the account's currency; an account never changes currency.
type Account struct {
	Number  string
	Balance Amount
}

func NewAccount(number string, balance Amount) *Account {
	return &Account{Number: number, Balance: balance}
}

func (a *Account) Currency() string {
	return a.Balance.Currency
}

// Debit removes amount minor units from the balance. The balance is
// only touched when it fully covers the amount; otherwise the account is
// left as-is and an INSUFFICIENT_FUNDS error is returned.
func (a *Account) Debit(amount int64) error {
	if err := a.Balance.Subtract(amount); err != nil {
		return NewInsufficientFundsError(a.Number, amount, a.Balance.Value)
	}
	return nil
}

// Credit adds amount minor units to the balance. Credits are unbounded;
// there is no upper balance limit to enforce.
func (a *Account) Credit(amount int64) {
	a.Balance.Add(amount)
}
