package chain

// Credit is a balance withdrawn from one account that has not yet been
// resolved onto another. Dropping a credit burns it.
type Credit struct {
	Amount Balance
}

// Ledger is the balance substrate the treasury moves funds on. Each call is
// atomic on its own; the caller's transaction makes a sequence of calls atomic.
type Ledger interface {
	Withdraw(account AccountID, amount Balance) (*Credit, error)
	Transfer(from, to AccountID, amount Balance) error
	ResolveCreating(account AccountID, credit *Credit) error
	TotalBalance(account AccountID) (Balance, error)
}

var ErrInsufficientBalance = NewError("balances", "InsufficientBalance", ErrInsufficientFunds)
