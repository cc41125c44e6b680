package store

import (
	"github.com/MixinNetwork/launchpad/chain"
)

func (tx *Txn) AssignOwner(class, instance uint32, owner chain.AccountID) error {
	return tx.txn.Set(ownerKey(class, instance), []byte(owner))
}

// OwnerOf returns the empty account for an instance nobody holds.
func (tx *Txn) OwnerOf(class, instance uint32) (chain.AccountID, error) {
	val, err := readValue(tx.txn, ownerKey(class, instance))
	if err != nil {
		return "", err
	}
	return chain.AccountID(val), nil
}
