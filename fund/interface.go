package fund

import (
	"github.com/MixinNetwork/launchpad/chain"
	"github.com/shopspring/decimal"
)

type Index = uint32

type Store interface {
	ReadFund(index Index) (*Info, error)
	WriteFund(index Index, info *Info) error
	chain.EventWriter
}

type Info struct {
	// Beneficiary receives the pot when the owner dispenses it directly.
	Beneficiary chain.AccountID
	Deposit     decimal.Decimal
	Raised      decimal.Decimal
	// End is the advisory block deadline, nothing enforces it.
	End       uint64
	Dispensed uint32
}
