package voting

import (
	"fmt"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func (e *Engine) CreateProposal(proposer chain.AccountID, id ProposalID, collection uint32, asset AssetID, amount decimal.Decimal, wallet chain.AccountID, title, description string, expiredAt Moment) error {
	if e.tooLong(title) || e.tooLong(description) {
		return ErrTooLong
	}
	if err := validateID(id); err != nil {
		return err
	}
	if err := validateID(asset); err != nil {
		return err
	}
	if err := chain.ValidateAccount(wallet); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("negative withdraw amount %s: %w", amount, chain.ErrInvalidArgument)
	}

	old, err := e.store.ReadProposal(id)
	if err != nil {
		return err
	} else if old != nil {
		return fmt.Errorf("%w %s", ErrProposalAlreadyExists, id)
	}
	ids, err := e.store.ReadProposalIDs()
	if err != nil {
		return err
	}
	if e.params.MaxProposal > 0 && len(ids) >= e.params.MaxProposal {
		return fmt.Errorf("%w: %d proposals", ErrTooLong, len(ids))
	}

	err = e.store.WriteProposal(id, &Proposal{
		Proposer:       proposer,
		Title:          title,
		Description:    description,
		WalletAddress:  wallet,
		AssetID:        asset,
		AmountWithdraw: amount,
		ExpiredAt:      expiredAt,
	})
	if err != nil {
		return err
	}
	err = e.store.WriteProposalCollection(id, collection)
	if err != nil {
		return err
	}
	err = e.store.WriteProposalIDs(append(ids, id))
	if err != nil {
		return err
	}
	err = e.store.WriteVotes(id, []*Vote{})
	if err != nil {
		return err
	}
	e.log.Info("A proposal is created",
		zap.String("proposal", id),
		zap.Uint32("collection", collection),
		zap.String("proposer", proposer))
	return e.store.WriteEvent(chain.NewEvent(ModuleName, "ProposalCreated", proposer,
		"proposal", id,
		"collection", strconv.FormatUint(uint64(collection), 10)))
}

// Vote appends the vote of the holder of (class, instance) to the proposal.
func (e *Engine) Vote(voter chain.AccountID, id ProposalID, accepted bool, class NFTClass, instance NFTInstance) error {
	p, err := e.store.ReadProposal(id)
	if err != nil {
		return err
	} else if p == nil {
		return fmt.Errorf("%w %s", ErrProposalNotFound, id)
	}
	executed, err := e.store.ReadProposalExecuted(id)
	if err != nil {
		return err
	} else if executed {
		return fmt.Errorf("%w %s", ErrProposalExecuted, id)
	}

	if e.params.CollectionGate {
		collection, found, err := e.store.ReadProposalCollection(id)
		if err != nil {
			return err
		} else if !found {
			return fmt.Errorf("%w %s", ErrCollectionNotExists, id)
		}
		if class != collection {
			return fmt.Errorf("%w %d/%d %d", ErrNFTNotInCollection, class, instance, collection)
		}
	}

	owner, err := e.registry.OwnerOf(class, instance)
	if err != nil {
		return err
	}
	if owner == "" || owner != voter {
		return fmt.Errorf("%w %s %d/%d", ErrVoterIsNotNFTOwner, voter, class, instance)
	}

	votes, err := e.store.ReadVotes(id)
	if err != nil {
		return err
	}
	if e.params.UniqueVotes {
		for _, v := range votes {
			if v.Voter == voter || (v.Class == class && v.NFT == instance) {
				return fmt.Errorf("%w %s", ErrAlreadyVoted, voter)
			}
		}
	}
	if e.params.MaxVoter > 0 && len(votes) >= e.params.MaxVoter {
		return fmt.Errorf("%w: %d votes", ErrTooLong, len(votes))
	}

	votes = append(votes, &Vote{Voter: voter, Class: class, NFT: instance, IsAccepted: accepted})
	err = e.store.WriteVotes(id, votes)
	if err != nil {
		return err
	}
	e.log.Debug("Voted", zap.String("proposal", id), zap.String("voter", voter), zap.Bool("accepted", accepted))
	return e.store.WriteEvent(chain.NewEvent(ModuleName, "Voted", voter,
		"proposal", id,
		"class", strconv.FormatUint(uint64(class), 10),
		"nft", strconv.FormatUint(uint64(instance), 10),
		"accepted", strconv.FormatBool(accepted)))
}

// Execute pays the collection fund out to the proposal wallet once the
// votes pass the threshold. A rejected execution leaves the proposal open.
func (e *Engine) Execute(caller chain.AccountID, id ProposalID) error {
	collection, found, err := e.store.ReadProposalCollection(id)
	if err != nil {
		return err
	} else if !found {
		return fmt.Errorf("%w %s", ErrCollectionNotExists, id)
	}
	p, err := e.store.ReadProposal(id)
	if err != nil {
		return err
	} else if p == nil {
		return fmt.Errorf("%w %s", ErrProposalNotExists, id)
	}
	executed, err := e.store.ReadProposalExecuted(id)
	if err != nil {
		return err
	} else if executed {
		return fmt.Errorf("%w %s", ErrProposalExecuted, id)
	}

	accepted, total, err := e.Tally(id)
	if err != nil {
		return err
	}
	if !Passed(accepted, total, e.params.Threshold) {
		return fmt.Errorf("%w %d/%d", ErrHaveNotPassTheThreshold, accepted, total)
	}

	amount, err := e.funds.Dispense(collection, p.WalletAddress)
	if err != nil {
		return fmt.Errorf("proposal %s dispense: %w", id, err)
	}
	err = e.store.WriteProposalExecuted(id)
	if err != nil {
		return err
	}
	e.log.Info("A proposal is executed",
		zap.String("proposal", id),
		zap.Int("accepted", accepted),
		zap.Int("total", total),
		zap.String("amount", amount.String()))
	return e.store.WriteEvent(chain.NewEvent(ModuleName, "Executed", caller,
		"proposal", id,
		"collection", strconv.FormatUint(uint64(collection), 10),
		"beneficiary", p.WalletAddress,
		"amount", amount.String()))
}
