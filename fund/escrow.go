package fund

import (
	"fmt"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/fox-one/mixin-sdk-go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ModuleName = "fund"
	PalletID   = "ex/cfund"
)

var (
	ErrInvalidFundIndex = chain.NewError(ModuleName, "InvalidFundIndex", chain.ErrNotFound)
	ErrFundExists       = chain.NewError(ModuleName, "FundExists", chain.ErrAlreadyExists)
	ErrFundDrained      = chain.NewError(ModuleName, "FundDrained", chain.ErrNotFound)
	ErrNotFundOwner     = chain.NewError(ModuleName, "NotFundOwner", chain.ErrUnauthorized)
)

// AccountID derives the holding account of a fund. The derivation only
// depends on the index, so a fund keeps its account across restarts.
func AccountID(index Index) chain.AccountID {
	return mixin.UniqueConversationID(PalletID, strconv.FormatUint(uint64(index), 10))
}

type Escrow struct {
	store   Store
	ledger  chain.Ledger
	deposit decimal.Decimal
	log     *zap.Logger
}

func NewEscrow(store Store, ledger chain.Ledger, deposit decimal.Decimal, log *zap.Logger) *Escrow {
	return &Escrow{
		store:   store,
		ledger:  ledger,
		deposit: deposit,
		log:     log.With(zap.String("module", ModuleName)),
	}
}

// Create posts the submission deposit of owner into the holding account of
// index and opens the fund with owner as beneficiary.
func (e *Escrow) Create(owner chain.AccountID, index Index, end uint64) error {
	old, err := e.store.ReadFund(index)
	if err != nil {
		return err
	} else if old != nil {
		return fmt.Errorf("%w %d", ErrFundExists, index)
	}

	credit, err := e.ledger.Withdraw(owner, e.deposit)
	if err != nil {
		return fmt.Errorf("fund %d deposit: %w", index, err)
	}
	account := AccountID(index)
	err = e.ledger.ResolveCreating(account, credit)
	if err != nil {
		return err
	}
	e.log.Info("Creating funding pot",
		zap.Uint32("index", index),
		zap.String("account", account),
		zap.String("deposit", e.deposit.String()))

	err = e.store.WriteFund(index, &Info{
		Beneficiary: owner,
		Deposit:     e.deposit,
		Raised:      decimal.Zero,
		End:         end,
	})
	if err != nil {
		return err
	}
	return e.store.WriteEvent(chain.NewEvent(ModuleName, "FundCreated", owner,
		"index", strconv.FormatUint(uint64(index), 10),
		"account", account,
		"deposit", e.deposit.String()))
}

func (e *Escrow) Contribute(contributor chain.AccountID, index Index, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("negative contribution %s: %w", amount, chain.ErrInvalidArgument)
	}
	fund, err := e.store.ReadFund(index)
	if err != nil {
		return err
	} else if fund == nil {
		return fmt.Errorf("%w %d", ErrInvalidFundIndex, index)
	}

	account := AccountID(index)
	err = e.ledger.Transfer(contributor, account, amount)
	if err != nil {
		return fmt.Errorf("fund %d contribution: %w", index, err)
	}
	fund.Raised = fund.Raised.Add(amount)
	err = e.store.WriteFund(index, fund)
	if err != nil {
		return err
	}
	e.log.Info("A fund spot is contributed",
		zap.Uint32("index", index),
		zap.String("contributor", contributor),
		zap.String("amount", amount.String()),
		zap.String("raised", fund.Raised.String()))
	return e.store.WriteEvent(chain.NewEvent(ModuleName, "FundContributed", contributor,
		"index", strconv.FormatUint(uint64(index), 10),
		"amount", amount.String()))
}

// Dispense drains the whole holding account balance, deposit included, to
// beneficiary. Raised is reset so later reads show an empty pot, and a
// second dispense fails until new contributions arrive.
func (e *Escrow) Dispense(index Index, beneficiary chain.AccountID) (decimal.Decimal, error) {
	fund, err := e.store.ReadFund(index)
	if err != nil {
		return decimal.Zero, err
	} else if fund == nil {
		return decimal.Zero, fmt.Errorf("%w %d", ErrInvalidFundIndex, index)
	}

	account := AccountID(index)
	total, err := e.ledger.TotalBalance(account)
	if err != nil {
		return decimal.Zero, err
	}
	if !total.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w %d", ErrFundDrained, index)
	}
	credit, err := e.ledger.Withdraw(account, total)
	if err != nil {
		return decimal.Zero, err
	}
	err = e.ledger.ResolveCreating(beneficiary, credit)
	if err != nil {
		return decimal.Zero, err
	}

	fund.Raised = decimal.Zero
	fund.Dispensed += 1
	err = e.store.WriteFund(index, fund)
	if err != nil {
		return decimal.Zero, err
	}
	e.log.Info("Dispense result",
		zap.Uint32("index", index),
		zap.String("beneficiary", beneficiary),
		zap.String("amount", total.String()))
	return total, e.store.WriteEvent(chain.NewEvent(ModuleName, "FundDispensed", beneficiary,
		"index", strconv.FormatUint(uint64(index), 10),
		"amount", total.String()))
}

// DispenseToOwner lets the stored beneficiary drain the fund without a
// proposal.
func (e *Escrow) DispenseToOwner(caller chain.AccountID, index Index) (decimal.Decimal, error) {
	fund, err := e.store.ReadFund(index)
	if err != nil {
		return decimal.Zero, err
	} else if fund == nil {
		return decimal.Zero, fmt.Errorf("%w %d", ErrInvalidFundIndex, index)
	}
	if fund.Beneficiary != caller {
		return decimal.Zero, fmt.Errorf("%w %s", ErrNotFundOwner, caller)
	}
	return e.Dispense(index, fund.Beneficiary)
}
