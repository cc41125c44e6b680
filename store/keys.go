package store

import (
	"encoding/binary"

	"github.com/OneOfOne/xxhash"
	"golang.org/x/crypto/blake2b"
)

// Keys follow the substrate storage layout, twox128(pallet) ++
// twox128(item) ++ hashed map keys, so a state dump lines up with the
// pallet storage it mirrors.

const (
	palletCollection = "Collection"
	palletVoting     = "Voting"
	palletBalances   = "Balances"
	palletUniques    = "Uniques"
	palletSystem     = "System"
)

func storageKey(pallet, item string, keys ...[]byte) []byte {
	key := append(twox128([]byte(pallet)), twox128([]byte(item))...)
	for _, k := range keys {
		key = append(key, k...)
	}
	return key
}

func twox128(data []byte) []byte {
	h1 := xxhash.NewS64(0)
	h1.Write(data)
	h2 := xxhash.NewS64(1)
	h2.Write(data)

	out := make([]byte, 16)
	binary.LittleEndian.PutUint64(out[0:], h1.Sum64())
	binary.LittleEndian.PutUint64(out[8:], h2.Sum64())
	return out
}

func twox64Concat(data []byte) []byte {
	h := xxhash.NewS64(0)
	h.Write(data)
	out := binary.LittleEndian.AppendUint64(nil, h.Sum64())
	return append(out, data...)
}

func blake2_128Concat(data []byte) []byte {
	h, err := blake2b.New(16, nil)
	if err != nil {
		panic(err)
	}
	h.Write(data)
	return append(h.Sum(nil), data...)
}

func collectionKey(id uint32) []byte {
	return storageKey(palletCollection, "Collections", twox64Concat(uint32ToBytes(id)))
}

func itemKey(collection uint32, id uint16) []byte {
	return storageKey(palletCollection, "NFTs",
		twox64Concat(uint32ToBytes(collection)),
		twox64Concat(binary.LittleEndian.AppendUint16(nil, id)))
}

func fundKey(index uint32) []byte {
	return storageKey(palletCollection, "Funds", blake2_128Concat(uint32ToBytes(index)))
}

func proposalKey(item, id string) []byte {
	return storageKey(palletVoting, item, blake2_128Concat([]byte(id)))
}

func accountKey(account string) []byte {
	return storageKey(palletBalances, "Account", blake2_128Concat([]byte(account)))
}

func ownerKey(class, instance uint32) []byte {
	return storageKey(palletUniques, "Asset",
		twox64Concat(uint32ToBytes(class)),
		twox64Concat(uint32ToBytes(instance)))
}

// eventKey is not hashed so events iterate in block order.
func eventKey(block uint64, index uint32) []byte {
	key := binary.BigEndian.AppendUint64(storageKey(palletSystem, "Events"), block)
	return binary.BigEndian.AppendUint32(key, index)
}
