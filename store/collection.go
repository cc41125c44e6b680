package store

import (
	"github.com/MixinNetwork/launchpad/nft"
)

func (tx *Txn) ReadCollection(id nft.CollectionID) (*nft.CollectionInfo, error) {
	var c nft.CollectionInfo
	found, err := readPayload(tx.txn, collectionKey(id), &c)
	if err != nil || !found {
		return nil, err
	}
	return &c, nil
}

func (tx *Txn) WriteCollection(c *nft.CollectionInfo) error {
	return writePayload(tx.txn, collectionKey(c.ID), c)
}

func (tx *Txn) CountCollections() (uint32, error) {
	return countKeys(tx.txn, storageKey(palletCollection, "Collections"))
}

func (tx *Txn) ReadItem(collection nft.CollectionID, id nft.ItemID) (*nft.Item, error) {
	var item nft.Item
	found, err := readPayload(tx.txn, itemKey(collection, id), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

func (tx *Txn) WriteItem(collection nft.CollectionID, item *nft.Item) error {
	return writePayload(tx.txn, itemKey(collection, item.ID), item)
}

func (tx *Txn) ListItems(collection nft.CollectionID) ([]*nft.Item, error) {
	c, err := tx.ReadCollection(collection)
	if err != nil || c == nil {
		return nil, err
	}
	items := make([]*nft.Item, 0, c.ItemsMinted)
	for id := nft.ItemID(0); id < c.ItemsMinted; id++ {
		item, err := tx.ReadItem(collection, id)
		if err != nil {
			return nil, err
		} else if item != nil {
			items = append(items, item)
		}
	}
	return items, nil
}
