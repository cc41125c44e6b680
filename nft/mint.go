package nft

import (
	"fmt"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"go.uber.org/zap"
)

// Mint creates the next item of the collection and charges its mint fee
// into the collection fund. Minting a sold out collection is a silent
// no-op returning a nil item.
func (m *Manager) Mint(caller chain.AccountID, id CollectionID) (*Item, error) {
	c, err := m.store.ReadCollection(id)
	if err != nil {
		return nil, err
	} else if c == nil {
		return nil, fmt.Errorf("%w %d", ErrCollectionNotExists, id)
	}
	if c.ItemsMinted >= c.ItemsCapacity {
		m.log.Debug("Collection sold out", zap.Uint32("collection", id))
		return nil, nil
	}

	item := m.generateItem(c.ItemsMinted)
	old, err := m.store.ReadItem(id, item.ID)
	if err != nil {
		return nil, err
	} else if old != nil {
		return nil, fmt.Errorf("%w %d/%d", ErrItemExists, id, item.ID)
	}
	err = m.store.WriteItem(id, item)
	if err != nil {
		return nil, err
	}
	m.log.Info("A NFT is minted", zap.Uint16("item", item.ID), zap.Uint32("collection", id))

	c.ItemsMinted += 1
	err = m.store.WriteCollection(c)
	if err != nil {
		return nil, err
	}
	err = m.store.AssignOwner(id, uint32(item.ID), caller)
	if err != nil {
		return nil, err
	}
	err = m.treasury.Contribute(caller, id, c.MintFee)
	if err != nil {
		return nil, err
	}
	return item, m.store.WriteEvent(chain.NewEvent(ModuleName, "ItemMinted", caller,
		"collection", strconv.FormatUint(uint64(id), 10),
		"item", strconv.FormatUint(uint64(item.ID), 10),
		"image", item.ImageURL))
}

func (m *Manager) generateItem(minted uint16) *Item {
	r := m.random.Random(imageSubject, m.block)
	index := int(r[0]) % len(m.params.Images)
	return &Item{
		ID:       minted,
		Name:     fmt.Sprintf("Item #%d", minted),
		ImageURL: m.params.Images[index],
	}
}
