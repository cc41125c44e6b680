package runtime

import (
	"context"
	"sync"
	"time"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/launchpad/fund"
	"github.com/MixinNetwork/launchpad/nft"
	"github.com/MixinNetwork/launchpad/voting"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Runtime applies extrinsics one at a time. Each extrinsic gets a fresh
// block and runs in a single store transaction, so a failing call leaves
// no trace besides the consumed block number.
type Runtime struct {
	mutex   sync.Mutex
	hooks   sync.RWMutex
	store   Store
	clock   *Clock
	conf    *Configuration
	random  nft.Randomness
	metrics *Metrics
	sinks   []Sink
	log     *zap.Logger
}

type modules struct {
	tx     Txn
	nft    *nft.Manager
	fund   *fund.Escrow
	voting *voting.Engine
}

func New(store Store, conf *Configuration, reg prometheus.Registerer, log *zap.Logger) (*Runtime, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	clock, err := NewClock(store)
	if err != nil {
		return nil, err
	}
	r := &Runtime{
		store:   store,
		clock:   clock,
		conf:    conf,
		random:  nft.NewSeededRandomness(conf.Collection.Seed),
		metrics: NewMetrics(reg),
		log:     log.With(zap.String("service", "runtime")),
	}
	r.metrics.block.Set(float64(clock.Now()))
	return r, nil
}

func (r *Runtime) AddSink(s Sink) {
	r.hooks.Lock()
	defer r.hooks.Unlock()

	r.sinks = append(r.sinks, s)
}

// SetRandomness replaces the source mint draws item images from.
func (r *Runtime) SetRandomness(random nft.Randomness) {
	r.hooks.Lock()
	defer r.hooks.Unlock()

	r.random = random
}

func (r *Runtime) randomness() nft.Randomness {
	r.hooks.RLock()
	defer r.hooks.RUnlock()

	return r.random
}

func (r *Runtime) recorders() []Sink {
	r.hooks.RLock()
	defer r.hooks.RUnlock()

	return append([]Sink(nil), r.sinks...)
}

func (r *Runtime) Block() uint64 {
	return r.clock.Now()
}

// Genesis applies the configured endowments on an empty chain. It does
// nothing once any block exists.
func (r *Runtime) Genesis(ctx context.Context) error {
	if r.clock.Now() > 0 {
		return nil
	}
	for _, e := range r.conf.Genesis.Endowments {
		err := r.Endow(ctx, e.Account, chain.MustBalance(e.Amount))
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runtime) build(tx Txn, block uint64) *modules {
	escrow := fund.NewEscrow(tx, tx, r.conf.deposit(), r.log)
	return &modules{
		tx:     tx,
		fund:   escrow,
		nft:    nft.NewManager(tx, escrow, r.randomness(), r.conf.nftParams(), block, r.log),
		voting: voting.NewEngine(tx, tx, escrow, r.conf.votingParams(), r.log),
	}
}

func (r *Runtime) dispatch(ctx context.Context, call string, origin chain.AccountID, fn func(m *modules) error) error {
	if err := chain.ValidateAccount(origin); err != nil {
		return err
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	start := time.Now()
	block, err := r.clock.Next()
	if err != nil {
		return err
	}
	r.metrics.block.Set(float64(block))

	events, err := r.store.Update(block, func(tx Txn) error {
		return fn(r.build(tx, block))
	})
	r.metrics.duration.Observe(time.Since(start).Seconds())
	r.metrics.extrinsics.WithLabelValues(call, ResultLabel(err)).Inc()
	if err != nil {
		r.log.Info("Extrinsic failed",
			zap.String("call", call),
			zap.Uint64("block", block),
			zap.String("origin", origin),
			zap.Error(err))
		return err
	}
	r.metrics.events.Add(float64(len(events)))
	r.log.Debug("Extrinsic applied",
		zap.String("call", call),
		zap.Uint64("block", block),
		zap.Int("events", len(events)))

	for _, s := range r.recorders() {
		err := s.Record(ctx, events)
		if err != nil {
			r.log.Error("Sink record failed", zap.Uint64("block", block), zap.Error(err))
		}
	}
	return nil
}

func (r *Runtime) view(fn func(m *modules) error) error {
	return r.store.View(func(tx Txn) error {
		return fn(r.build(tx, r.clock.Now()))
	})
}
