package store

import (
	"github.com/MixinNetwork/launchpad/fund"
)

func (tx *Txn) ReadFund(index fund.Index) (*fund.Info, error) {
	var info fund.Info
	found, err := readPayload(tx.txn, fundKey(index), &info)
	if err != nil || !found {
		return nil, err
	}
	return &info, nil
}

func (tx *Txn) WriteFund(index fund.Index, info *fund.Info) error {
	return writePayload(tx.txn, fundKey(index), info)
}

func (tx *Txn) ReadFundCount() (uint32, error) {
	val, err := readValue(tx.txn, storageKey(palletCollection, "FundCount"))
	if err != nil || val == nil {
		return 0, err
	}
	return bytesToUint32(val), nil
}

func (tx *Txn) WriteFundCount(count uint32) error {
	return tx.txn.Set(storageKey(palletCollection, "FundCount"), uint32ToBytes(count))
}
