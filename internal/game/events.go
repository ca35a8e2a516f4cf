package game

type EventType int

const (
	EventFirstInteraction EventType = iota
	EventLevelStarted
	EventConstellationComplete
	EventHintUsed
	EventGameComplete
	EventReset
)

var eventNames = [...]string{
	"first-interaction", "level-started", "constellation-complete",
	"hint-used", "game-complete", "reset",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventNames) {
		return "unknown"
	}
	return eventNames[t]
}

type Event struct {
	Type      EventType
	Level     int // level number the event refers to, 1-based
	Completed int
	Hints     int
}

type EventHandler func(Event)

// EventBus fans controller events out to audio and logging. Handlers run
// synchronously on the game thread.
type EventBus struct {
	handlers map[EventType][]EventHandler
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]EventHandler),
	}
}

func (eb *EventBus) Subscribe(t EventType, fn EventHandler) {
	eb.handlers[t] = append(eb.handlers[t], fn)
}

// SubscribeAll registers fn for every event type.
func (eb *EventBus) SubscribeAll(fn EventHandler) {
	for t := range eventNames {
		eb.Subscribe(EventType(t), fn)
	}
}

func (eb *EventBus) Emit(e Event) {
	for _, fn := range eb.handlers[e.Type] {
		fn(e)
	}
}
