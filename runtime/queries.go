package runtime

import (
	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/fund"
	"github.com/MixinNetwork/launchpad/nft"
	"github.com/MixinNetwork/launchpad/voting"
	"github.com/shopspring/decimal"
)

func (r *Runtime) LaunchpadCollections() (uint32, error) {
	var count uint32
	err := r.view(func(m *modules) error {
		var err error
		count, err = m.nft.LaunchpadCollections()
		return err
	})
	return count, err
}

func (r *Runtime) Collection(id nft.CollectionID) (*nft.CollectionInfo, error) {
	var c *nft.CollectionInfo
	err := r.view(func(m *modules) error {
		var err error
		c, err = m.tx.ReadCollection(id)
		return err
	})
	return c, err
}

func (r *Runtime) Items(id nft.CollectionID) ([]*nft.Item, error) {
	var items []*nft.Item
	err := r.view(func(m *modules) error {
		var err error
		items, err = m.tx.ListItems(id)
		return err
	})
	return items, err
}

func (r *Runtime) OwnerOf(class, instance uint32) (chain.AccountID, error) {
	var owner chain.AccountID
	err := r.view(func(m *modules) error {
		var err error
		owner, err = m.tx.OwnerOf(class, instance)
		return err
	})
	return owner, err
}

func (r *Runtime) Fund(index uint32) (*fund.Info, error) {
	var info *fund.Info
	err := r.view(func(m *modules) error {
		var err error
		info, err = m.tx.ReadFund(index)
		return err
	})
	return info, err
}

func (r *Runtime) Balance(account chain.AccountID) (decimal.Decimal, error) {
	balance := decimal.Zero
	err := r.view(func(m *modules) error {
		var err error
		balance, err = m.tx.TotalBalance(account)
		return err
	})
	return balance, err
}

func (r *Runtime) Proposal(id voting.ProposalID) (*voting.Proposal, error) {
	var p *voting.Proposal
	err := r.view(func(m *modules) error {
		var err error
		p, err = m.tx.ReadProposal(id)
		return err
	})
	return p, err
}

func (r *Runtime) ProposalIDs() ([]voting.ProposalID, error) {
	var ids []voting.ProposalID
	err := r.view(func(m *modules) error {
		var err error
		ids, err = m.tx.ReadProposalIDs()
		return err
	})
	return ids, err
}

func (r *Runtime) Votes(id voting.ProposalID) ([]*voting.Vote, error) {
	var votes []*voting.Vote
	err := r.view(func(m *modules) error {
		var err error
		votes, err = m.tx.ReadVotes(id)
		return err
	})
	return votes, err
}

type Tally struct {
	Accepted int
	Total    int
	Passed   bool
	Executed bool
}

func (r *Runtime) Tally(id voting.ProposalID) (*Tally, error) {
	var t Tally
	err := r.view(func(m *modules) error {
		var err error
		t.Accepted, t.Total, err = m.voting.Tally(id)
		if err != nil {
			return err
		}
		t.Executed, err = m.tx.ReadProposalExecuted(id)
		return err
	})
	t.Passed = voting.Passed(t.Accepted, t.Total, r.conf.Voting.Threshold)
	return &t, err
}

func (r *Runtime) Events(block uint64) ([]*chain.Event, error) {
	var events []*chain.Event
	err := r.view(func(m *modules) error {
		var err error
		events, err = m.tx.ReadEvents(block)
		return err
	})
	return events, err
}
