package store

import (
	"fmt"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/shopspring/decimal"
)

type account struct {
	Free decimal.Decimal
}

func (tx *Txn) readAccount(id chain.AccountID) (*account, error) {
	var acc account
	found, err := readPayload(tx.txn, accountKey(id), &acc)
	if err != nil {
		return nil, err
	} else if !found {
		acc.Free = decimal.Zero
	}
	return &acc, nil
}

func (tx *Txn) writeAccount(id chain.AccountID, acc *account) error {
	if acc.Free.IsZero() {
		return tx.txn.Delete(accountKey(id))
	}
	return writePayload(tx.txn, accountKey(id), acc)
}

func (tx *Txn) TotalBalance(id chain.AccountID) (chain.Balance, error) {
	acc, err := tx.readAccount(id)
	if err != nil {
		return decimal.Zero, err
	}
	return acc.Free, nil
}

func (tx *Txn) Withdraw(id chain.AccountID, amount chain.Balance) (*chain.Credit, error) {
	if amount.IsNegative() {
		return nil, fmt.Errorf("negative withdraw %s: %w", amount, chain.ErrInvalidArgument)
	}
	acc, err := tx.readAccount(id)
	if err != nil {
		return nil, err
	}
	if acc.Free.LessThan(amount) {
		return nil, fmt.Errorf("%w %s %s < %s", chain.ErrInsufficientBalance, id, acc.Free, amount)
	}
	acc.Free = acc.Free.Sub(amount)
	err = tx.writeAccount(id, acc)
	if err != nil {
		return nil, err
	}
	return &chain.Credit{Amount: amount}, nil
}

func (tx *Txn) ResolveCreating(id chain.AccountID, credit *chain.Credit) error {
	if credit == nil || credit.Amount.IsZero() {
		return nil
	}
	acc, err := tx.readAccount(id)
	if err != nil {
		return err
	}
	acc.Free = acc.Free.Add(credit.Amount)
	return tx.writeAccount(id, acc)
}

func (tx *Txn) Transfer(from, to chain.AccountID, amount chain.Balance) error {
	credit, err := tx.Withdraw(from, amount)
	if err != nil {
		return err
	}
	return tx.ResolveCreating(to, credit)
}

// Endow mints amount into id out of thin air. It only serves genesis
// allocation.
func (tx *Txn) Endow(id chain.AccountID, amount chain.Balance) error {
	if amount.IsNegative() {
		return fmt.Errorf("negative endowment %s: %w", amount, chain.ErrInvalidArgument)
	}
	return tx.ResolveCreating(id, &chain.Credit{Amount: amount})
}
