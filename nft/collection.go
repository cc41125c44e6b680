package nft

import (
	"encoding/binary"
	"fmt"
	"math"
	"strconv"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/MixinNetwork/mixin/crypto"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	ModuleName = "collection"

	IDModeCounter  = "counter"
	IDModeNameHash = "name-hash"
)

var (
	ErrCollectionExists    = chain.NewError(ModuleName, "CollectionExists", chain.ErrAlreadyExists)
	ErrCollectionNotExists = chain.NewError(ModuleName, "CollectionNotExists", chain.ErrNotFound)
	ErrItemExists          = chain.NewError(ModuleName, "ItemExists", chain.ErrAlreadyExists)
	ErrNotFundOwner        = chain.NewError(ModuleName, "NotFundOwner", chain.ErrUnauthorized)
	ErrTooLong             = chain.NewError(ModuleName, "TooLong", chain.ErrCapacityExceeded)
	ErrStorageOverflow     = chain.NewError(ModuleName, "StorageOverflow", chain.ErrOverflow)
)

type Params struct {
	IDMode          string
	MaxStringLength int
	// FundHorizon is added to the registration block to get the fund end.
	FundHorizon uint64
	Images      []string
}

type Manager struct {
	store    Store
	treasury Treasury
	random   Randomness
	params   Params
	block    uint64
	log      *zap.Logger
}

func NewManager(store Store, treasury Treasury, random Randomness, params Params, block uint64, log *zap.Logger) *Manager {
	if len(params.Images) == 0 {
		params.Images = DefaultImages
	}
	return &Manager{
		store:    store,
		treasury: treasury,
		random:   random,
		params:   params,
		block:    block,
		log:      log.With(zap.String("module", ModuleName)),
	}
}

func (m *Manager) RegisterCollection(owner chain.AccountID, name, description string, capacity uint16, mintFee decimal.Decimal) (CollectionID, error) {
	if m.tooLong(name) || m.tooLong(description) {
		return 0, ErrTooLong
	}
	if mintFee.IsNegative() {
		return 0, fmt.Errorf("negative mint fee %s: %w", mintFee, chain.ErrInvalidArgument)
	}

	count, err := m.store.ReadFundCount()
	if err != nil {
		return 0, err
	}
	if count == math.MaxUint32 {
		return 0, ErrStorageOverflow
	}
	id := count
	if m.params.IDMode == IDModeNameHash {
		h := crypto.NewHash([]byte(name))
		id = binary.LittleEndian.Uint32(h[:4])
	}

	old, err := m.store.ReadCollection(id)
	if err != nil {
		return 0, err
	} else if old != nil {
		return 0, fmt.Errorf("%w %d", ErrCollectionExists, id)
	}

	err = m.store.WriteCollection(&CollectionInfo{
		ID:            id,
		Owner:         owner,
		Name:          name,
		Description:   description,
		ItemsCapacity: capacity,
		Status:        StatusDraft,
		MintFee:       mintFee,
	})
	if err != nil {
		return 0, err
	}
	err = m.store.WriteFundCount(count + 1)
	if err != nil {
		return 0, err
	}
	m.log.Info("A collection is created", zap.Uint32("id", id), zap.String("owner", owner))

	err = m.treasury.Create(owner, id, m.block+m.params.FundHorizon)
	if err != nil {
		return 0, err
	}
	return id, m.store.WriteEvent(chain.NewEvent(ModuleName, "CollectionRegistered", owner,
		"collection", strconv.FormatUint(uint64(id), 10)))
}

// ApproveCollection moves a draft collection to approved. Approving twice is
// a no-op and keeps the dates of the first approval.
func (m *Manager) ApproveCollection(caller chain.AccountID, id CollectionID, start, end uint32) error {
	c, err := m.store.ReadCollection(id)
	if err != nil {
		return err
	} else if c == nil {
		return fmt.Errorf("%w %d", ErrCollectionNotExists, id)
	}
	if c.Owner != caller {
		return fmt.Errorf("%w %s", ErrNotFundOwner, caller)
	}
	if c.Status == StatusApproved {
		return nil
	}

	c.Status = StatusApproved
	c.StartDate = &start
	c.EndDate = &end
	err = m.store.WriteCollection(c)
	if err != nil {
		return err
	}
	return m.store.WriteEvent(chain.NewEvent(ModuleName, "CollectionApproved", caller,
		"collection", strconv.FormatUint(uint64(id), 10),
		"start", strconv.FormatUint(uint64(start), 10),
		"end", strconv.FormatUint(uint64(end), 10)))
}

func (m *Manager) LaunchpadCollections() (uint32, error) {
	return m.store.CountCollections()
}

func (m *Manager) tooLong(s string) bool {
	return m.params.MaxStringLength > 0 && len(s) > m.params.MaxStringLength
}
