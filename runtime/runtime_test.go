package runtime_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/fund"
	"github.com/MixinNetwork/launchpad/nft"
	"github.com/MixinNetwork/launchpad/runtime"
	"github.com/MixinNetwork/launchpad/store"
	"github.com/MixinNetwork/launchpad/voting"
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/gofrs/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type recordingSink struct {
	events []*chain.Event
}

func (s *recordingSink) Record(ctx context.Context, events []*chain.Event) error {
	s.events = append(s.events, events...)
	return nil
}

func newID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func newRuntime(t *testing.T, conf *runtime.Configuration) (*runtime.Runtime, *prometheus.Registry) {
	bs, err := store.OpenMemory(zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { bs.Close() })

	reg := prometheus.NewRegistry()
	rt, err := runtime.New(bs, conf, reg, zaptest.NewLogger(t))
	require.NoError(t, err)
	return rt, reg
}

func endowed(t *testing.T, rt *runtime.Runtime, amount int64) chain.AccountID {
	account := newID()
	require.NoError(t, rt.Endow(context.Background(), account, decimal.NewFromInt(amount)))
	return account
}

func balance(t *testing.T, rt *runtime.Runtime, account chain.AccountID) string {
	b, err := rt.Balance(account)
	require.NoError(t, err)
	return b.String()
}

func TestMintCapacityScenario(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rt, _ := newRuntime(t, runtime.DefaultConfiguration())
	owner := endowed(t, rt, 100)
	minter := endowed(t, rt, 100)

	id, err := rt.RegisterCollection(ctx, owner, "C1", "capped", 1, decimal.NewFromInt(10))
	require.NoError(err)
	require.Equal("99", balance(t, rt, owner))

	item, err := rt.Mint(ctx, minter, id)
	require.NoError(err)
	require.NotNil(item)
	require.Equal("Item #0", item.Name)
	require.Contains(nft.DefaultImages, item.ImageURL)

	item, err = rt.Mint(ctx, minter, id)
	require.NoError(err)
	require.Nil(item)

	c, err := rt.Collection(id)
	require.NoError(err)
	require.Equal(uint16(1), c.ItemsMinted)
	require.Equal("draft", c.StatusName())
	info, err := rt.Fund(id)
	require.NoError(err)
	require.Equal("10", info.Raised.String())
	require.Equal(owner, info.Beneficiary)
	require.Equal("90", balance(t, rt, minter))
	require.Equal("11", balance(t, rt, fund.AccountID(id)))

	holder, err := rt.OwnerOf(id, 0)
	require.NoError(err)
	require.Equal(minter, holder)
	items, err := rt.Items(id)
	require.NoError(err)
	require.Len(items, 1)

	count, err := rt.LaunchpadCollections()
	require.NoError(err)
	require.Equal(uint32(1), count)
}

func TestFailedExtrinsicRollsBack(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rt, reg := newRuntime(t, runtime.DefaultConfiguration())
	sink := &recordingSink{}
	rt.AddSink(sink)

	poor := newID()
	_, err := rt.RegisterCollection(ctx, poor, "C1", "", 5, decimal.NewFromInt(10))
	require.ErrorIs(err, chain.ErrInsufficientFunds)
	count, err := rt.LaunchpadCollections()
	require.NoError(err)
	require.Zero(count)
	events, err := rt.Events(rt.Block())
	require.NoError(err)
	require.Empty(events)
	require.Empty(sink.events)

	owner := endowed(t, rt, 1)
	id, err := rt.RegisterCollection(ctx, owner, "C1", "", 5, decimal.NewFromInt(10))
	require.NoError(err)
	require.Equal(uint32(0), id)

	minter := endowed(t, rt, 5)
	_, err = rt.Mint(ctx, minter, id)
	require.ErrorIs(err, chain.ErrInsufficientFunds)
	c, err := rt.Collection(id)
	require.NoError(err)
	require.Zero(c.ItemsMinted)
	holder, err := rt.OwnerOf(id, 0)
	require.NoError(err)
	require.Empty(holder)
	require.Equal("5", balance(t, rt, minter))

	names := make([]string, 0, len(sink.events))
	for _, e := range sink.events {
		names = append(names, e.Name)
	}
	require.Equal([]string{"Endowed", "FundCreated", "CollectionRegistered", "Endowed"}, names)

	n, err := testutil.GatherAndCount(reg, "launchpad_extrinsics_total")
	require.NoError(err)
	require.Greater(n, 2)
}

func TestDispenseDepositRoundTrip(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rt, _ := newRuntime(t, runtime.DefaultConfiguration())
	owner := endowed(t, rt, 100)

	id, err := rt.RegisterCollection(ctx, owner, "C1", "", 5, decimal.NewFromInt(10))
	require.NoError(err)
	require.Equal("99", balance(t, rt, owner))

	_, err = rt.DispenseFund(ctx, newID(), id)
	require.ErrorIs(err, fund.ErrNotFundOwner)

	amount, err := rt.DispenseFund(ctx, owner, id)
	require.NoError(err)
	require.Equal("1", amount.String())
	require.Equal("100", balance(t, rt, owner))

	_, err = rt.DispenseFund(ctx, owner, id)
	require.ErrorIs(err, fund.ErrFundDrained)
	info, err := rt.Fund(id)
	require.NoError(err)
	require.Equal(uint32(1), info.Dispensed)
	require.True(info.Raised.IsZero())
}

func TestApproveCollectionTwice(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rt, _ := newRuntime(t, runtime.DefaultConfiguration())
	owner := endowed(t, rt, 100)
	id, err := rt.RegisterCollection(ctx, owner, "C1", "", 5, decimal.Zero)
	require.NoError(err)

	require.NoError(rt.ApproveCollection(ctx, owner, id, 10, 20))
	first, err := rt.Collection(id)
	require.NoError(err)
	require.NoError(rt.ApproveCollection(ctx, owner, id, 10, 20))
	second, err := rt.Collection(id)
	require.NoError(err)
	require.Equal(first, second)
}

type governance struct {
	rt         *runtime.Runtime
	collection nft.CollectionID
	voters     []chain.AccountID
	wallet     chain.AccountID
	proposal   voting.ProposalID
}

// newGovernance mints one item of a fresh collection to each voter and opens
// a proposal on the collection fund.
func newGovernance(t *testing.T, conf *runtime.Configuration, voters int) *governance {
	ctx := context.Background()
	rt, _ := newRuntime(t, conf)
	g := &governance{rt: rt, wallet: newID(), proposal: newID()}

	owner := endowed(t, rt, 100)
	id, err := rt.RegisterCollection(ctx, owner, "C1", "", uint16(voters), decimal.NewFromInt(10))
	require.NoError(t, err)
	g.collection = id
	for i := 0; i < voters; i++ {
		v := endowed(t, rt, 10)
		_, err := rt.Mint(ctx, v, id)
		require.NoError(t, err)
		g.voters = append(g.voters, v)
	}

	asset := newID()
	require.NoError(t, rt.BindAssetToNFT(ctx, owner, asset, id))
	err = rt.CreateProposal(ctx, owner, g.proposal, id, asset, decimal.NewFromInt(5), g.wallet, "P1", "withdraw", 1000)
	require.NoError(t, err)
	return g
}

func TestProposalPasses(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	g := newGovernance(t, runtime.DefaultConfiguration(), 3)

	require.NoError(g.rt.Vote(ctx, g.voters[0], g.proposal, true, g.collection, 0))
	require.NoError(g.rt.Vote(ctx, g.voters[1], g.proposal, true, g.collection, 1))
	require.NoError(g.rt.Vote(ctx, g.voters[2], g.proposal, false, g.collection, 2))

	tally, err := g.rt.Tally(g.proposal)
	require.NoError(err)
	require.Equal(runtime.Tally{Accepted: 2, Total: 3, Passed: true}, *tally)

	require.NoError(g.rt.Execute(ctx, newID(), g.proposal))
	require.Equal("31", balance(t, g.rt, g.wallet))
	require.Equal("0", balance(t, g.rt, fund.AccountID(g.collection)))
	info, err := g.rt.Fund(g.collection)
	require.NoError(err)
	require.True(info.Raised.IsZero())

	err = g.rt.Execute(ctx, newID(), g.proposal)
	require.ErrorIs(err, voting.ErrProposalExecuted)
	tally, err = g.rt.Tally(g.proposal)
	require.NoError(err)
	require.True(tally.Executed)

	ids, err := g.rt.ProposalIDs()
	require.NoError(err)
	require.Equal([]voting.ProposalID{g.proposal}, ids)
}

func TestProposalRejected(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	g := newGovernance(t, runtime.DefaultConfiguration(), 2)

	require.NoError(g.rt.Vote(ctx, g.voters[0], g.proposal, false, g.collection, 0))
	err := g.rt.Execute(ctx, newID(), g.proposal)
	require.ErrorIs(err, chain.ErrThresholdNotMet)
	require.Equal("0", balance(t, g.rt, g.wallet))

	err = g.rt.Vote(ctx, g.voters[0], g.proposal, true, g.collection, 1)
	require.ErrorIs(err, voting.ErrVoterIsNotNFTOwner)
	votes, err := g.rt.Votes(g.proposal)
	require.NoError(err)
	require.Len(votes, 1)

	require.NoError(g.rt.Vote(ctx, g.voters[1], g.proposal, true, g.collection, 1))
	err = g.rt.Execute(ctx, newID(), g.proposal)
	require.ErrorIs(err, voting.ErrHaveNotPassTheThreshold)
}

func TestUniqueVotes(t *testing.T) {
	ctx := context.Background()
	conf := runtime.DefaultConfiguration()
	conf.Voting.UniqueVotes = true
	g := newGovernance(t, conf, 1)

	require.NoError(t, g.rt.Vote(ctx, g.voters[0], g.proposal, true, g.collection, 0))
	err := g.rt.Vote(ctx, g.voters[0], g.proposal, true, g.collection, 0)
	assert.ErrorIs(t, err, voting.ErrAlreadyVoted)
}

func TestGenesisAndSetup(t *testing.T) {
	require := require.New(t)
	account := newID()
	path := filepath.Join(t.TempDir(), "config.toml")
	err := os.WriteFile(path, []byte(`
[collection]
submission-deposit = "2.5"
id-mode = "name-hash"

[voting]
threshold = 60
unique-votes = true
collection-gate = true
max-voter = 0

[[genesis.endowments]]
account = "`+account+`"
amount = "1000"
`), 0600)
	require.NoError(err)

	conf, err := runtime.Setup(path)
	require.NoError(err)
	require.Equal(nft.IDModeNameHash, conf.Collection.IDMode)
	require.Equal(uint8(60), conf.Voting.Threshold)
	require.True(conf.Voting.UniqueVotes)
	require.True(conf.Voting.CollectionGate)
	require.Equal(256, conf.Collection.MaxStringLength)
	require.Equal(1024, conf.Voting.MaxVoter)
	require.Equal(1024, conf.Voting.MaxProposal)

	rt, _ := newRuntime(t, conf)
	require.NoError(rt.Genesis(context.Background()))
	require.NoError(rt.Genesis(context.Background()))
	require.Equal("1000", balance(t, rt, account))

	_, err = rt.RegisterCollection(context.Background(), account, "C1", "", 1, decimal.Zero)
	require.NoError(err)
	require.Equal("997.5", balance(t, rt, account))
	_, err = rt.RegisterCollection(context.Background(), account, "C1", "", 1, decimal.Zero)
	require.ErrorIs(err, nft.ErrCollectionExists)

	conf.Voting.Threshold = 101
	require.ErrorIs(conf.Validate(), chain.ErrInvalidArgument)
}

type fixedRandomness byte

func (f fixedRandomness) Random(subject []byte, block uint64) crypto.Hash {
	var h crypto.Hash
	h[0] = byte(f)
	return h
}

func TestPinnedRandomness(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	rt, _ := newRuntime(t, runtime.DefaultConfiguration())
	owner := endowed(t, rt, 100)
	minter := endowed(t, rt, 100)
	id, err := rt.RegisterCollection(ctx, owner, "C1", "", 3, decimal.NewFromInt(1))
	require.NoError(err)

	rt.SetRandomness(fixedRandomness(13))
	item, err := rt.Mint(ctx, minter, id)
	require.NoError(err)
	require.Equal(nft.DefaultImages[3], item.ImageURL)

	rt.SetRandomness(fixedRandomness(7))
	item, err = rt.Mint(ctx, minter, id)
	require.NoError(err)
	require.Equal(nft.DefaultImages[7], item.ImageURL)
	require.Equal("Item #1", item.Name)
}

func TestHooksDuringDispatch(t *testing.T) {
	ctx := context.Background()
	rt, _ := newRuntime(t, runtime.DefaultConfiguration())
	owner := endowed(t, rt, 100)
	minter := endowed(t, rt, 100)
	id, err := rt.RegisterCollection(ctx, owner, "C1", "", 100, decimal.NewFromInt(1))
	require.NoError(t, err)

	sinks := make([]*recordingSink, 10)
	var wg sync.WaitGroup
	for i := range sinks {
		sinks[i] = &recordingSink{}
		wg.Add(3)
		go func(i int) {
			defer wg.Done()
			rt.AddSink(sinks[i])
			rt.SetRandomness(fixedRandomness(i))
		}(i)
		go func() {
			defer wg.Done()
			_, err := rt.Mint(ctx, minter, id)
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			_, err := rt.LaunchpadCollections()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	c, err := rt.Collection(id)
	require.NoError(t, err)
	require.Equal(t, uint16(len(sinks)), c.ItemsMinted)

	_, err = rt.Mint(ctx, minter, id)
	require.NoError(t, err)
	for _, s := range sinks {
		require.NotEmpty(t, s.events)
	}
}
