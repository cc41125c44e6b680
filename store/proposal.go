package store

import (
	"github.com/MixinNetwork/launchpad/voting"
)

func (tx *Txn) ReadProposal(id voting.ProposalID) (*voting.Proposal, error) {
	var p voting.Proposal
	found, err := readPayload(tx.txn, proposalKey("Proposals", id), &p)
	if err != nil || !found {
		return nil, err
	}
	return &p, nil
}

func (tx *Txn) WriteProposal(id voting.ProposalID, p *voting.Proposal) error {
	return writePayload(tx.txn, proposalKey("Proposals", id), p)
}

func (tx *Txn) ReadProposalCollection(id voting.ProposalID) (uint32, bool, error) {
	val, err := readValue(tx.txn, proposalKey("ProposalCollections", id))
	if err != nil || val == nil {
		return 0, false, err
	}
	return bytesToUint32(val), true, nil
}

func (tx *Txn) WriteProposalCollection(id voting.ProposalID, collection uint32) error {
	return tx.txn.Set(proposalKey("ProposalCollections", id), uint32ToBytes(collection))
}

func (tx *Txn) ReadProposalIDs() ([]voting.ProposalID, error) {
	var ids []voting.ProposalID
	_, err := readPayload(tx.txn, storageKey(palletVoting, "ProposalIds"), &ids)
	return ids, err
}

func (tx *Txn) WriteProposalIDs(ids []voting.ProposalID) error {
	return writePayload(tx.txn, storageKey(palletVoting, "ProposalIds"), ids)
}

func (tx *Txn) ReadProposalExecuted(id voting.ProposalID) (bool, error) {
	val, err := readValue(tx.txn, proposalKey("ProposalExecuted", id))
	return val != nil, err
}

func (tx *Txn) WriteProposalExecuted(id voting.ProposalID) error {
	return tx.txn.Set(proposalKey("ProposalExecuted", id), []byte{1})
}

func (tx *Txn) ReadVotes(id voting.ProposalID) ([]*voting.Vote, error) {
	var votes []*voting.Vote
	_, err := readPayload(tx.txn, proposalKey("Votes", id), &votes)
	return votes, err
}

func (tx *Txn) WriteVotes(id voting.ProposalID, votes []*voting.Vote) error {
	return writePayload(tx.txn, proposalKey("Votes", id), votes)
}

func (tx *Txn) ReadVotingNFT(asset voting.AssetID) (voting.NFTClass, bool, error) {
	val, err := readValue(tx.txn, storageKey(palletVoting, "AvailableVotingNFT", blake2_128Concat([]byte(asset))))
	if err != nil || val == nil {
		return 0, false, err
	}
	return bytesToUint32(val), true, nil
}

func (tx *Txn) WriteVotingNFT(asset voting.AssetID, class voting.NFTClass) error {
	return tx.txn.Set(storageKey(palletVoting, "AvailableVotingNFT", blake2_128Concat([]byte(asset))), uint32ToBytes(class))
}
