package store

import (
	"github.com/MixinNetwork/launchpad/chain"
	"github.com/dgraph-io/badger/v4"
)

// Txn is the state of one extrinsic. It implements every module store on
// top of a single badger transaction.
type Txn struct {
	txn    *badger.Txn
	block  uint64
	events []*chain.Event
}

func (tx *Txn) Block() uint64 {
	return tx.block
}
