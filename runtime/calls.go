package runtime

import (
	"context"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/nft"
	"github.com/MixinNetwork/launchpad/voting"
	"github.com/shopspring/decimal"
)

func (r *Runtime) RegisterCollection(ctx context.Context, origin chain.AccountID, name, description string, capacity uint16, mintFee decimal.Decimal) (nft.CollectionID, error) {
	var id nft.CollectionID
	err := r.dispatch(ctx, "register_collection", origin, func(m *modules) error {
		var err error
		id, err = m.nft.RegisterCollection(origin, name, description, capacity, mintFee)
		return err
	})
	return id, err
}

func (r *Runtime) ApproveCollection(ctx context.Context, origin chain.AccountID, id nft.CollectionID, start, end uint32) error {
	return r.dispatch(ctx, "approve_collection", origin, func(m *modules) error {
		return m.nft.ApproveCollection(origin, id, start, end)
	})
}

// Mint returns a nil item when the collection is sold out.
func (r *Runtime) Mint(ctx context.Context, origin chain.AccountID, id nft.CollectionID) (*nft.Item, error) {
	var item *nft.Item
	err := r.dispatch(ctx, "mint", origin, func(m *modules) error {
		var err error
		item, err = m.nft.Mint(origin, id)
		return err
	})
	return item, err
}

func (r *Runtime) DispenseFund(ctx context.Context, origin chain.AccountID, index uint32) (decimal.Decimal, error) {
	amount := decimal.Zero
	err := r.dispatch(ctx, "dispense_fund", origin, func(m *modules) error {
		var err error
		amount, err = m.fund.DispenseToOwner(origin, index)
		return err
	})
	return amount, err
}

func (r *Runtime) BindAssetToNFT(ctx context.Context, origin chain.AccountID, asset voting.AssetID, class voting.NFTClass) error {
	return r.dispatch(ctx, "bind_asset_to_nft", origin, func(m *modules) error {
		return m.voting.BindAssetToNFT(origin, asset, class)
	})
}

func (r *Runtime) CreateProposal(ctx context.Context, origin chain.AccountID, id voting.ProposalID, collection uint32, asset voting.AssetID, amount decimal.Decimal, wallet chain.AccountID, title, description string, expiredAt voting.Moment) error {
	return r.dispatch(ctx, "create_proposal", origin, func(m *modules) error {
		return m.voting.CreateProposal(origin, id, collection, asset, amount, wallet, title, description, expiredAt)
	})
}

func (r *Runtime) Vote(ctx context.Context, origin chain.AccountID, id voting.ProposalID, accepted bool, class voting.NFTClass, instance voting.NFTInstance) error {
	return r.dispatch(ctx, "vote", origin, func(m *modules) error {
		return m.voting.Vote(origin, id, accepted, class, instance)
	})
}

func (r *Runtime) Execute(ctx context.Context, origin chain.AccountID, id voting.ProposalID) error {
	return r.dispatch(ctx, "execute", origin, func(m *modules) error {
		return m.voting.Execute(origin, id)
	})
}

func (r *Runtime) Endow(ctx context.Context, account chain.AccountID, amount decimal.Decimal) error {
	return r.dispatch(ctx, "endow", account, func(m *modules) error {
		err := m.tx.Endow(account, amount)
		if err != nil {
			return err
		}
		return m.tx.WriteEvent(chain.NewEvent("balances", "Endowed", account, "amount", amount.String()))
	})
}
