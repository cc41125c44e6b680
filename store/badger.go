package store

import (
	"context"
	"time"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

type BadgerStore struct {
	db     *badger.DB
	log    *zap.Logger
	cancel context.CancelFunc
}

func OpenBadger(ctx context.Context, path string, log *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	bs := &BadgerStore{db: db, log: log.With(zap.String("store", path)), cancel: cancel}
	go bs.collectGarbage(ctx)
	return bs, nil
}

// OpenMemory opens a store that lives only as long as the process.
func OpenMemory(log *zap.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerStore{db: db, log: log}, nil
}

func (bs *BadgerStore) collectGarbage(ctx context.Context) {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		lsm, vlog := bs.db.Size()
		bs.log.Debug("Badger size", zap.Int64("lsm", lsm), zap.Int64("vlog", vlog))
		if lsm > 1024*1024*8 || vlog > 1024*1024*32 {
			err := bs.db.RunValueLogGC(0.5)
			bs.log.Info("Badger RunValueLogGC", zap.Error(err))
		}
	}
}

func (bs *BadgerStore) Close() error {
	if bs.cancel != nil {
		bs.cancel()
	}
	return bs.db.Close()
}

func (bs *BadgerStore) Badger() *badger.DB {
	return bs.db
}

func (bs *BadgerStore) WriteProperty(key, val []byte) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, val)
	})
}

func (bs *BadgerStore) ReadProperty(key []byte) ([]byte, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return readValue(txn, key)
}

// Update runs fn inside one read-write transaction at block. Nothing fn
// wrote is kept when it returns an error. The events fn deposited are
// returned once the transaction commits.
func (bs *BadgerStore) Update(block uint64, fn func(runtime.Txn) error) ([]*chain.Event, error) {
	var events []*chain.Event
	err := bs.db.Update(func(txn *badger.Txn) error {
		tx := &Txn{txn: txn, block: block}
		err := fn(tx)
		if err != nil {
			return err
		}
		events = tx.events
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (bs *BadgerStore) View(fn func(runtime.Txn) error) error {
	return bs.db.View(func(txn *badger.Txn) error {
		return fn(&Txn{txn: txn})
	})
}
