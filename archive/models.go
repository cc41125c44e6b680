package archive

import (
	"time"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/jackc/pgtype"
)

// EventRecord is one committed event. Block and Index identify it, so a
// replayed record is a no-op.
type EventRecord struct {
	Block      int64        `gorm:"primaryKey;autoIncrement:false"`
	Index      int          `gorm:"primaryKey;autoIncrement:false"`
	Module     string       `gorm:"not null;index:idx_event_name"`
	Name       string       `gorm:"not null;index:idx_event_name"`
	Account    string       `gorm:"not null;index"`
	Attributes pgtype.JSONB `gorm:"not null"`

	CreatedAt time.Time
}

func NewEventRecord(evt *chain.Event) (*EventRecord, error) {
	var attrs pgtype.JSONB
	err := attrs.Set(evt.Attributes)
	if err != nil {
		return nil, err
	}
	return &EventRecord{
		Block:      int64(evt.Block),
		Index:      int(evt.Index),
		Module:     evt.Module,
		Name:       evt.Name,
		Account:    evt.Account,
		Attributes: attrs,
	}, nil
}

func (r *EventRecord) Event() (*chain.Event, error) {
	evt := &chain.Event{
		Block:      uint64(r.Block),
		Index:      uint32(r.Index),
		Module:     r.Module,
		Name:       r.Name,
		Account:    r.Account,
		Attributes: make(map[string]string),
	}
	if r.Attributes.Status != pgtype.Present {
		return evt, nil
	}
	err := r.Attributes.AssignTo(&evt.Attributes)
	return evt, err
}
