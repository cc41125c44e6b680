package store

import (
	"encoding/binary"

	"github.com/MixinNetwork/mixin/common"
	"github.com/dgraph-io/badger/v4"
)

func uint32ToBytes(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func bytesToUint32(b []byte) uint32 {
	return binary.LittleEndian.Uint32(b)
}

func readValue(txn *badger.Txn, key []byte) ([]byte, error) {
	item, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

// readPayload decodes the msgpack value under key into v and reports
// whether the key exists.
func readPayload(txn *badger.Txn, key []byte, v any) (bool, error) {
	val, err := readValue(txn, key)
	if err != nil || val == nil {
		return false, err
	}
	return true, common.MsgpackUnmarshal(val, v)
}

func writePayload(txn *badger.Txn, key []byte, v any) error {
	return txn.Set(key, common.MsgpackMarshalPanic(v))
}

func countKeys(txn *badger.Txn, prefix []byte) (uint32, error) {
	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = prefix
	it := txn.NewIterator(opts)
	defer it.Close()

	var count uint32
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		count++
	}
	return count, nil
}
