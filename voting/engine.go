package voting

import (
	"fmt"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

const ModuleName = "voting"

var (
	ErrTooLong                 = chain.NewError(ModuleName, "TooLong", chain.ErrCapacityExceeded)
	ErrProposalAlreadyExists   = chain.NewError(ModuleName, "ProposalAlreadyExists", chain.ErrAlreadyExists)
	ErrProposalNotFound        = chain.NewError(ModuleName, "ProposalNotFound", chain.ErrNotFound)
	ErrProposalNotExists       = chain.NewError(ModuleName, "ProposalNotExists", chain.ErrNotFound)
	ErrCollectionNotExists     = chain.NewError(ModuleName, "CollectionNotExists", chain.ErrNotFound)
	ErrVoterIsNotNFTOwner      = chain.NewError(ModuleName, "VoterIsNotNFTOwner", chain.ErrUnauthorized)
	ErrNFTAlreadyBinded        = chain.NewError(ModuleName, "NFTAlreadyBindedToAnotherAsset", chain.ErrAlreadyExists)
	ErrHaveNotPassTheThreshold = chain.NewError(ModuleName, "HaveNotPassTheThresHold", chain.ErrThresholdNotMet)
	ErrAlreadyVoted            = chain.NewError(ModuleName, "AlreadyVoted", chain.ErrAlreadyExists)
	ErrProposalExecuted        = chain.NewError(ModuleName, "ProposalExecuted", chain.ErrAlreadyExists)
	ErrNFTNotInCollection      = chain.NewError(ModuleName, "NFTNotInCollection", chain.ErrUnauthorized)
)

type Params struct {
	MaxProposal     int
	MaxVoter        int
	MaxStringLength int
	// Threshold is the acceptance percentage a proposal must strictly exceed.
	Threshold uint8
	// UniqueVotes rejects a second vote by the same account or with the same
	// NFT on one proposal.
	UniqueVotes bool
	// CollectionGate only accepts votes cast with NFTs of the collection the
	// proposal draws from.
	CollectionGate bool
}

type Engine struct {
	store    Store
	registry Registry
	funds    FundInfo
	params   Params
	log      *zap.Logger
}

func NewEngine(store Store, registry Registry, funds FundInfo, params Params, log *zap.Logger) *Engine {
	return &Engine{
		store:    store,
		registry: registry,
		funds:    funds,
		params:   params,
		log:      log.With(zap.String("module", ModuleName)),
	}
}

// BindAssetToNFT makes holders of class eligible to vote with asset. A
// binding is permanent.
func (e *Engine) BindAssetToNFT(caller chain.AccountID, asset AssetID, class NFTClass) error {
	if err := validateID(asset); err != nil {
		return err
	}
	_, found, err := e.store.ReadVotingNFT(asset)
	if err != nil {
		return err
	} else if found {
		return fmt.Errorf("%w %s", ErrNFTAlreadyBinded, asset)
	}
	err = e.store.WriteVotingNFT(asset, class)
	if err != nil {
		return err
	}
	e.log.Info("Asset bound to NFT class", zap.String("asset", asset), zap.Uint32("class", class))
	return e.store.WriteEvent(chain.NewEvent(ModuleName, "NFTClassBinded", caller,
		"asset", asset,
		"class", strconv.FormatUint(uint64(class), 10)))
}

func (e *Engine) Tally(id ProposalID) (accepted, total int, err error) {
	votes, err := e.store.ReadVotes(id)
	if err != nil {
		return 0, 0, err
	}
	for _, v := range votes {
		if v.IsAccepted {
			accepted++
		}
	}
	return accepted, len(votes), nil
}

// Passed reports whether accepted out of total strictly exceeds the
// threshold percentage. No votes never pass.
func Passed(accepted, total int, threshold uint8) bool {
	if total == 0 {
		return false
	}
	return accepted*100 > int(threshold)*total
}

func (e *Engine) tooLong(s string) bool {
	return e.params.MaxStringLength > 0 && len(s) > e.params.MaxStringLength
}

func validateID(id string) error {
	uid, err := uuid.FromString(id)
	if err != nil || uid == uuid.Nil {
		return fmt.Errorf("invalid id %q: %w", id, chain.ErrInvalidArgument)
	}
	return nil
}
