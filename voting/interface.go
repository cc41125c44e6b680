package voting

import (
	"github.com/MixinNetwork/launchpad/chain"
	"github.com/shopspring/decimal"
)

type (
	ProposalID  = string
	AssetID     = string
	NFTClass    = uint32
	NFTInstance = uint32
	Moment      = uint64
)

type Store interface {
	ReadProposal(id ProposalID) (*Proposal, error)
	WriteProposal(id ProposalID, p *Proposal) error
	ReadProposalCollection(id ProposalID) (uint32, bool, error)
	WriteProposalCollection(id ProposalID, collection uint32) error
	ReadProposalIDs() ([]ProposalID, error)
	WriteProposalIDs(ids []ProposalID) error
	ReadVotes(id ProposalID) ([]*Vote, error)
	WriteVotes(id ProposalID, votes []*Vote) error
	ReadVotingNFT(asset AssetID) (NFTClass, bool, error)
	WriteVotingNFT(asset AssetID, class NFTClass) error
	ReadProposalExecuted(id ProposalID) (bool, error)
	WriteProposalExecuted(id ProposalID) error

	chain.EventWriter
}

// Registry answers who holds an NFT instance. An empty account means the
// instance has no owner.
type Registry interface {
	OwnerOf(class NFTClass, instance NFTInstance) (chain.AccountID, error)
}

// FundInfo is the treasury contract a passed proposal pays out through.
type FundInfo interface {
	Dispense(index uint32, beneficiary chain.AccountID) (decimal.Decimal, error)
}

type Proposal struct {
	Proposer      chain.AccountID
	Title         string
	Description   string
	WalletAddress chain.AccountID
	AssetID       AssetID
	// AmountWithdraw is what the proposer asks for. Execution pays out the
	// whole pot regardless.
	AmountWithdraw decimal.Decimal
	ExpiredAt      Moment
}

type Vote struct {
	Voter      chain.AccountID
	Class      NFTClass
	NFT        NFTInstance
	IsAccepted bool
}
