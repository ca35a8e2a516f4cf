package game

import (
	"time"

	"github.com/charmbracelet/log"

	"constellations/internal/config"
	"constellations/internal/geom"
	"constellations/internal/stars"
)

// Clock reports time elapsed since an arbitrary fixed origin.
type Clock interface {
	Now() time.Duration
}

type systemClock struct{ start time.Time }

func (c systemClock) Now() time.Duration { return time.Since(c.start) }

// NewSystemClock returns a Clock backed by the monotonic wall clock.
func NewSystemClock() Clock { return systemClock{start: time.Now()} }

// Controller is the game state machine. It is driven by pointer and key
// input from the desktop loop and publishes events for audio and logging.
type Controller struct {
	cfg    config.Config
	rng    *geom.Rand
	clock  Clock
	bus    *EventBus
	log    *log.Logger
	layout Layout
	facts  *FactDeck

	state   GameState
	session Session
	field   *stars.Field
	fact    string

	showHint     bool
	soundPlayed  bool
	interacted   bool
	dragLast     geom.Point
	pointer      geom.Point
	startTime    time.Duration
	factStart    time.Duration
	factTotal    time.Duration
	shownSeconds float64
}

// NewController builds a controller and generates the first level.
func NewController(cfg config.Config, rng *geom.Rand, clock Clock, bus *EventBus, logger *log.Logger) *Controller {
	c := &Controller{
		cfg:    cfg,
		rng:    rng,
		clock:  clock,
		bus:    bus,
		log:    logger,
		layout: NewLayout(cfg.Screen.Width, cfg.Screen.Height),
		facts:  NewFactDeck(StarFacts, rng.Fork()),
	}
	c.Reset()
	return c
}

func (c *Controller) State() GameState    { return c.state }
func (c *Controller) Session() Session    { return c.session }
func (c *Controller) Field() *stars.Field { return c.field }
func (c *Controller) Layout() Layout      { return c.layout }
func (c *Controller) Fact() string        { return c.fact }
func (c *Controller) HintShown() bool     { return c.showHint }
func (c *Controller) Pointer() geom.Point { return c.pointer }

// Progress is the fraction of the game completed, 0..1.
func (c *Controller) Progress() float64 {
	return float64(c.session.Completed) / float64(c.cfg.Level.MaxLevel)
}

// Reset restores the start-of-game counters and generates level 1.
func (c *Controller) Reset() {
	l := c.cfg.Level
	c.session = Session{
		HintsRemaining:      l.Hints,
		ConstellationPoints: l.StartConstellationPoints,
		RandomPoints:        l.StartRandomPoints,
	}
	c.facts.Reset()
	c.startTime = c.clock.Now()
	c.factTotal = 0
	c.shownSeconds = 0
	if c.field != nil {
		c.log.Info("game reset")
		c.emit(EventReset)
	}
	c.startLevel()
}

func (c *Controller) startLevel() {
	c.field = stars.NewField(c.rng, c.fieldParams())
	c.fact = c.facts.Next()
	c.state = StateIdle
	c.showHint = false
	c.soundPlayed = false
	c.log.Debug("level started",
		"level", c.session.Level(),
		"constellation_points", len(c.field.Constellation.Local),
		"random_stars", len(c.field.Random))
	c.emit(EventLevelStarted)
}

func (c *Controller) fieldParams() stars.FieldParams {
	l := c.cfg.Level
	starMin, starMax := c.cfg.StarRadii()
	return stars.FieldParams{
		ScreenW:                c.cfg.Screen.Width,
		ScreenH:                c.cfg.Screen.Height,
		Panel:                  c.layout.Panel,
		Outline:                c.layout.Outline,
		ConstellationPoints:    c.session.ConstellationPoints,
		MaxConstellationPoints: l.MaxConstellationPoints,
		RandomPoints:           c.session.RandomPoints,
		MaxRandomPoints:        l.MaxRandomPoints,
		MaxRadius:              c.cfg.ConstellationRadius(),
		StarMinRadius:          starMin,
		StarMaxRadius:          starMax,
		MatchThreshold:         c.cfg.MatchThreshold(),
	}
}

func (c *Controller) emit(t EventType) {
	c.bus.Emit(Event{
		Type:      t,
		Level:     c.session.Level(),
		Completed: c.session.Completed,
		Hints:     c.session.HintsRemaining,
	})
}

// PointerDown handles a primary button press at p.
func (c *Controller) PointerDown(p geom.Point) {
	c.pointer = p
	if !c.interacted {
		c.interacted = true
		c.emit(EventFirstInteraction)
	}

	if c.layout.Reset.Hit(p) {
		c.Reset()
		return
	}

	switch c.state {
	case StateGameComplete:
		return
	case StateFactShown:
		c.continueGame()
		return
	case StateDragging:
		return
	}

	if c.layout.Hint.Hit(p) {
		c.UseHint()
		return
	}
	ref := c.field.Reference.Rect
	if ref.ContainsClosed(p) || c.layout.Outline.Contains(p) {
		c.state = StateDragging
		c.dragLast = p
	}
}

// PointerMove tracks the cursor and drags the reference shape.
func (c *Controller) PointerMove(p geom.Point) {
	c.pointer = p
	if c.state != StateDragging {
		return
	}
	d := p.Sub(c.dragLast)
	c.field.MoveReference(d.X, d.Y)
	c.dragLast = p
}

// PointerUp ends a drag and checks for a match.
func (c *Controller) PointerUp(p geom.Point) {
	c.PointerMove(p)
	if c.state != StateDragging {
		return
	}
	c.state = StateIdle
	if c.field.Matched() {
		c.complete()
		return
	}
	c.field.ResetReference()
}

// complete records a match. It runs once per match since the state leaves
// Idle immediately.
func (c *Controller) complete() {
	now := c.clock.Now()
	c.shownSeconds = c.levelSeconds(now)
	c.session.Completed++
	c.showHint = false
	c.factStart = now
	if !c.soundPlayed {
		c.soundPlayed = true
		c.emit(EventConstellationComplete)
	}
	c.log.Debug("constellation complete",
		"completed", c.session.Completed,
		"seconds", int(c.shownSeconds))

	if c.session.Completed >= c.cfg.Level.MaxLevel {
		c.state = StateGameComplete
		c.log.Info("game complete", "seconds", int(c.shownSeconds))
		c.emit(EventGameComplete)
		return
	}
	c.state = StateFactShown
}

// continueGame closes the fact and starts the next level. Time spent on the
// fact is excluded from the level timer.
func (c *Controller) continueGame() {
	c.factTotal += c.clock.Now() - c.factStart
	l := c.cfg.Level
	c.session.advance(l.ConstellationIncrement, l.RandomIncrement)
	c.startLevel()
}

// UseHint reveals the constellation outline. Hints are available from the
// second level on, one at a time, while no fact is shown.
func (c *Controller) UseHint() bool {
	if c.showHint ||
		c.session.HintsRemaining <= 0 ||
		c.session.Completed < 1 ||
		c.state == StateGameComplete ||
		c.state == StateFactShown {
		return false
	}
	c.session.HintsRemaining--
	c.showHint = true
	c.emit(EventHintUsed)
	return true
}

func (c *Controller) levelSeconds(now time.Duration) float64 {
	return (now - c.startTime - c.factTotal).Seconds()
}

// Update advances the play timer. It is frozen while a fact or the
// completion screen is shown.
func (c *Controller) Update() {
	if c.state == StateFactShown || c.state == StateGameComplete {
		return
	}
	c.shownSeconds = c.levelSeconds(c.clock.Now())
}

// Seconds is the displayed play time.
func (c *Controller) Seconds() float64 { return c.shownSeconds }

// View is the GUI-facing snapshot of the controller.
type View struct {
	State        GameState
	Completed    int
	MaxLevel     int
	Hints        int
	Seconds      int
	Fact         string
	Reveal       bool
	Instructions bool

	Reference       []geom.Point
	ReferenceRadius float32
	Constellation   geom.Rect
}

func (c *Controller) View() View {
	first := c.session.Completed < 1
	v := View{
		State:         c.state,
		Completed:     c.session.Completed,
		MaxLevel:      c.cfg.Level.MaxLevel,
		Hints:         c.session.HintsRemaining,
		Seconds:       int(c.shownSeconds + 0.5),
		Reveal:        (c.showHint || first) && c.state != StateFactShown && c.state != StateGameComplete,
		Instructions:  first && c.state != StateFactShown,
		Constellation: c.field.Constellation.Rect,
	}
	if c.state == StateFactShown {
		v.Fact = c.fact
	}
	if c.state != StateGameComplete {
		v.Reference = c.field.Reference.Points()
		if len(c.field.Reference.Radius) > 0 {
			v.ReferenceRadius = c.field.Reference.Radius[0]
		}
	}
	return v
}
