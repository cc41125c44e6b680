package nft

import (
	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/shopspring/decimal"
)

type (
	CollectionID = uint32
	ItemID       = uint16
)

const (
	StatusDraft    = 10
	StatusApproved = 11
)

type Store interface {
	ReadCollection(id CollectionID) (*CollectionInfo, error)
	WriteCollection(c *CollectionInfo) error
	CountCollections() (uint32, error)
	ReadItem(collection CollectionID, id ItemID) (*Item, error)
	WriteItem(collection CollectionID, item *Item) error

	ReadFundCount() (uint32, error)
	WriteFundCount(count uint32) error

	// AssignOwner records the holder of a minted item in the NFT registry,
	// class being the collection and instance the item.
	AssignOwner(class, instance uint32, owner chain.AccountID) error

	chain.EventWriter
}

// Treasury is the part of the fund escrow the manager drives.
type Treasury interface {
	Create(owner chain.AccountID, index uint32, end uint64) error
	Contribute(contributor chain.AccountID, index uint32, amount decimal.Decimal) error
}

type Randomness interface {
	Random(subject []byte, block uint64) crypto.Hash
}

type CollectionInfo struct {
	ID            CollectionID
	Owner         chain.AccountID
	Name          string
	Description   string
	ItemsCapacity uint16
	ItemsMinted   uint16
	IsFrozen      bool
	Status        int
	MintFee       decimal.Decimal
	StartDate     *uint32
	EndDate       *uint32
}

func (c *CollectionInfo) StatusName() string {
	switch c.Status {
	case StatusDraft:
		return "draft"
	case StatusApproved:
		return "approved"
	}
	panic(c.Status)
}

type Item struct {
	ID       ItemID
	Name     string
	ImageURL string
}
