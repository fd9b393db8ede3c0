package core

// Event represents a game event
type Event struct {
	Type     EventType
	Tick     uint64
	EntityID EntityID
	PlayerID int
	Amount   int
}

type EventType uint16

const (
	EvtUnitSpawned EventType = iota
	EvtUnitDied
	EvtUnitAttack
	EvtBuildingPlaced
	EvtBuildingComplete
	EvtUpgradePurchased
	EvtKillAward
)

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}

// ---- Transient visuals ----
// The core never draws; it records short-lived effect data the renderer
// consumes and drops after expiry.

// CombatEffect is one laser shot plus impact spark
type CombatEffect struct {
	FromX, FromY float64
	ToX, ToY     float64
	Color        uint32
	StartMS      float64
	DurationMS   float64
}

// FloatingText is a drifting text indicator, e.g. a "+50" kill award
type FloatingText struct {
	Text       string
	X, Y       float64
	Color      uint32
	StartMS    float64
	DurationMS float64
}

// MoveMarker marks a recently issued move or attack-move order
type MoveMarker struct {
	X, Y       float64
	Attack     bool
	StartMS    float64
	DurationMS float64
}
