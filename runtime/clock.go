package runtime

import (
	"encoding/binary"
	"sync"
)

const clockStorePropertyKey = "LAUNCHPAD:SYSTEM:BLOCK:NUMBER"

// Clock numbers blocks. Every dispatched extrinsic gets its own block, and
// the height survives restarts.
type Clock struct {
	sync.RWMutex
	store Store
	now   uint64
}

func NewClock(store Store) (*Clock, error) {
	bs, err := store.ReadProperty([]byte(clockStorePropertyKey))
	if err != nil {
		return nil, err
	}
	clock := &Clock{store: store}
	if len(bs) == 8 {
		clock.now = binary.BigEndian.Uint64(bs)
	}
	return clock, nil
}

func (c *Clock) Now() uint64 {
	c.RLock()
	defer c.RUnlock()

	return c.now
}

func (c *Clock) Next() (uint64, error) {
	c.Lock()
	defer c.Unlock()

	val := binary.BigEndian.AppendUint64(nil, c.now+1)
	err := c.store.WriteProperty([]byte(clockStorePropertyKey), val)
	if err != nil {
		return 0, err
	}
	c.now += 1
	return c.now, nil
}
