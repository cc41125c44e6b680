package chain

// Event is deposited by a module inside the transaction of the call that
// produced it, so a failed call never leaves events behind.
type Event struct {
	Block      uint64
	Index      uint32
	Module     string
	Name       string
	Account    AccountID
	Attributes map[string]string
}

func NewEvent(module, name string, account AccountID, kv ...string) *Event {
	if len(kv)%2 != 0 {
		panic(kv)
	}
	evt := &Event{
		Module:     module,
		Name:       name,
		Account:    account,
		Attributes: make(map[string]string, len(kv)/2),
	}
	for i := 0; i < len(kv); i += 2 {
		evt.Attributes[kv[i]] = kv[i+1]
	}
	return evt
}

type EventWriter interface {
	WriteEvent(evt *Event) error
}
