package runtime

import (
	"context"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/fund"
	"github.com/MixinNetwork/launchpad/nft"
	"github.com/MixinNetwork/launchpad/voting"
)

// Txn is the state one extrinsic runs against.
type Txn interface {
	nft.Store
	fund.Store
	voting.Store
	voting.Registry
	chain.Ledger

	Block() uint64
	Endow(account chain.AccountID, amount chain.Balance) error
	ListItems(collection nft.CollectionID) ([]*nft.Item, error)
	ReadEvents(block uint64) ([]*chain.Event, error)
}

type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	// Update commits everything fn writes, or nothing if fn fails, and
	// returns the events deposited on commit.
	Update(block uint64, fn func(Txn) error) ([]*chain.Event, error)
	View(fn func(Txn) error) error
}

// Sink receives the events of every committed extrinsic.
type Sink interface {
	Record(ctx context.Context, events []*chain.Event) error
}
