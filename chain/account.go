package chain

import (
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// AccountID identifies a ledger account. Accounts are UUIDs, the same shape
// the Mixin network uses for users and derived multisig holders.
type AccountID = string

type Balance = decimal.Decimal

var ErrInvalidAccount = NewError("chain", "InvalidAccount", ErrInvalidArgument)

func ValidateAccount(id AccountID) error {
	uid, err := uuid.FromString(id)
	if err != nil || uid == uuid.Nil {
		return fmt.Errorf("%w %q", ErrInvalidAccount, id)
	}
	return nil
}

// ParseBalance parses a non-negative decimal amount.
func ParseBalance(s string) (Balance, error) {
	amt, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %s: %w", s, ErrInvalidArgument)
	}
	if amt.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s: %w", s, ErrInvalidArgument)
	}
	return amt, nil
}

func MustBalance(s string) Balance {
	amt, err := ParseBalance(s)
	if err != nil {
		panic(err)
	}
	return amt
}
