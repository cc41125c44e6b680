package nft

import (
	"encoding/binary"

	"github.com/MixinNetwork/mixin/crypto"
)

var DefaultImages = []string{
	"https://gateway.pinata.cloud/ipfs/QmXYEXK4gNtnydgXBBa37YVhF1Zyi3frYMNuLP2YwNZ6GT",
	"https://gateway.pinata.cloud/ipfs/QmTvzJ6bWkB87BtbUMDnuTE2WqBp2FbDXL6epr6ysRPiXm",
	"https://gateway.pinata.cloud/ipfs/Qmddbben3DWctUaT9kqR6zckPj5DGdNcGQoxq3rMvsDYiL",
	"https://gateway.pinata.cloud/ipfs/QmaiKJcgeWgY5XX6D41pcZti8NYuUMYKQrPbqbBNfBvLpH",
	"https://gateway.pinata.cloud/ipfs/QmaVjEKkUJ5UxcecD3dYAGMCfj7whT6wf2ZBCAF24d3hgf",
	"https://gateway.pinata.cloud/ipfs/Qmcu8x8Hsu4ht7jmWe1c3Dh93p4qn97tenR1uFp1KkN1oC",
	"https://gateway.pinata.cloud/ipfs/QmVXYnjPszRpHEDrNFK1vVAqbQioy6fjweCbq8JHrpGs6j",
	"https://gateway.pinata.cloud/ipfs/QmXm5UZivCrSNoB4VLMcwtkyejNcXGTZBtEJXAq8v3ZFFb",
	"https://gateway.pinata.cloud/ipfs/QmYmte4mZEVLNRtmHtixnasLna7jP86ftZzTsSygvLfNBf",
	"https://gateway.pinata.cloud/ipfs/QmR6uKp5gPWkKHEwWdLhbcjgkE1GWBW49AhYi9V8u4Ly5W",
}

var imageSubject = []byte("NFT Indexing")

// SeededRandomness is a deterministic source: the same seed, block and
// subject always yield the same hash, so any node can verify a mint.
type SeededRandomness struct {
	seed []byte
}

func NewSeededRandomness(seed string) *SeededRandomness {
	return &SeededRandomness{seed: []byte(seed)}
}

func (sr *SeededRandomness) Random(subject []byte, block uint64) crypto.Hash {
	buf := make([]byte, 0, len(sr.seed)+8+len(subject))
	buf = append(buf, sr.seed...)
	buf = binary.BigEndian.AppendUint64(buf, block)
	buf = append(buf, subject...)
	return crypto.NewHash(buf)
}
