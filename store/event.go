package store

import (
	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/mixin/common"
	"github.com/dgraph-io/badger/v4"
)

// WriteEvent stamps evt with the block and its position in the extrinsic
// and stores it with the rest of the transaction.
func (tx *Txn) WriteEvent(evt *chain.Event) error {
	evt.Block = tx.block
	evt.Index = uint32(len(tx.events))
	err := writePayload(tx.txn, eventKey(evt.Block, evt.Index), evt)
	if err != nil {
		return err
	}
	tx.events = append(tx.events, evt)
	return nil
}

func (tx *Txn) ReadEvents(block uint64) ([]*chain.Event, error) {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = eventKey(block, 0)
	opts.Prefix = opts.Prefix[:len(opts.Prefix)-4]
	it := tx.txn.NewIterator(opts)
	defer it.Close()

	var events []*chain.Event
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var evt chain.Event
		err = common.MsgpackUnmarshal(val, &evt)
		if err != nil {
			return nil, err
		}
		events = append(events, &evt)
	}
	return events, nil
}
