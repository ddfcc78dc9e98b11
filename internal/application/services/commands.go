package services

// PayTransferCommand asks for amount minor units of currency to move from
// the client account to the merchant account. Commands are transient and
// never persisted.
type PayTransferCommand struct {
	ClientAccountNumber   string
	MerchantAccountNumber string
	Amount                int64
	Currency              string
}
