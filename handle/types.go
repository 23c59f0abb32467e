package handle

// Handle is an opaque 64-bit key for a host-owned value.
// Handles are chosen by the host; every value of the 64-bit space is usable.
type Handle uint64

// Lookup is the read-only view of a table used while decoding arguments.
type Lookup interface {
	// Get retrieves a value by handle.
	Get(h Handle) (any, bool)
}

// Event types for table lifecycle notifications.
type EventType uint8

const (
	EventInserted EventType = iota
	EventReplaced
	EventRemoved
)

func (t EventType) String() string {
	switch t {
	case EventInserted:
		return "inserted"
	case EventReplaced:
		return "replaced"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event represents a table lifecycle event.
type Event struct {
	Value  any
	Handle Handle
	Type   EventType
}

// Observer receives notifications about table lifecycle events.
type Observer interface {
	OnHandleEvent(Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(Event)

func (f ObserverFunc) OnHandleEvent(e Event) {
	f(e)
}

// Dropper is optionally implemented by values that need cleanup on removal.
type Dropper interface {
	Drop()
}
