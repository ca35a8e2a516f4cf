package game

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"constellations/internal/config"
	"constellations/internal/geom"
)

type fakeClock struct{ t time.Duration }

func (c *fakeClock) Now() time.Duration { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t += d }

type harness struct {
	c      *Controller
	clock  *fakeClock
	events []Event
}

func newHarness(t *testing.T, modify func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	if modify != nil {
		modify(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config: %v", err)
	}
	h := &harness{clock: &fakeClock{}}
	bus := NewEventBus()
	bus.SubscribeAll(func(e Event) { h.events = append(h.events, e) })
	h.c = NewController(cfg, geom.NewRand(1234), h.clock, bus, log.New(io.Discard))
	return h
}

func (h *harness) count(t EventType) int {
	n := 0
	for _, e := range h.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

// solve drags the reference shape onto the constellation and releases it.
func (h *harness) solve(t *testing.T) {
	t.Helper()
	f := h.c.Field()
	start := f.Reference.Rect.Center()
	target := f.Constellation.Rect.Center()
	h.c.PointerDown(start)
	if h.c.State() != StateDragging {
		t.Fatalf("press on reference: state = %s, expected dragging", h.c.State())
	}
	h.c.PointerMove(start.Add(geom.Point{X: 3, Y: -7}))
	h.c.PointerUp(target)
}

// proceed clicks away from every button to dismiss a fact.
func (h *harness) proceed() {
	h.c.PointerDown(geom.Point{X: 10, Y: 10})
	h.c.PointerUp(geom.Point{X: 10, Y: 10})
}

func TestControllerStartsIdle(t *testing.T) {
	h := newHarness(t, nil)
	if h.c.State() != StateIdle {
		t.Errorf("state = %s, expected idle", h.c.State())
	}
	s := h.c.Session()
	if s.Completed != 0 || s.HintsRemaining != 3 || s.ConstellationPoints != 4 || s.RandomPoints != 25 {
		t.Errorf("session = %+v", s)
	}
	if h.c.Field().Matched() {
		t.Error("a fresh level should not already be matched")
	}
	if h.count(EventLevelStarted) != 1 {
		t.Errorf("level-started events = %d, expected 1", h.count(EventLevelStarted))
	}
	v := h.c.View()
	if !v.Reveal || !v.Instructions {
		t.Errorf("level 1 should reveal the constellation with instructions: %+v", v)
	}
}

func TestMatchShowsFactAndContinues(t *testing.T) {
	h := newHarness(t, nil)
	h.solve(t)

	if h.c.State() != StateFactShown {
		t.Fatalf("state = %s, expected fact-shown", h.c.State())
	}
	if got := h.c.Session().Completed; got != 1 {
		t.Errorf("completed = %d, expected 1", got)
	}
	v := h.c.View()
	if v.Fact == "" || v.Reveal {
		t.Errorf("fact view = %+v", v)
	}

	h.proceed()
	if h.c.State() != StateIdle {
		t.Fatalf("state after continue = %s", h.c.State())
	}
	if h.c.View().Fact != "" {
		t.Error("fact still shown after continue")
	}
	if h.count(EventLevelStarted) != 2 {
		t.Errorf("level-started events = %d, expected 2", h.count(EventLevelStarted))
	}
}

func TestUnmatchedReleaseSnapsBack(t *testing.T) {
	h := newHarness(t, nil)
	f := h.c.Field()
	home := f.ReferenceHome()
	start := f.Reference.Rect.Center()

	h.c.PointerDown(start)
	h.c.PointerMove(start.Add(geom.Point{X: 20, Y: -40}))
	if f.Reference.Rect == home {
		t.Fatal("reference did not follow the pointer")
	}
	h.c.PointerUp(start.Add(geom.Point{X: 20, Y: -40}))

	if h.c.State() != StateIdle {
		t.Errorf("state = %s, expected idle", h.c.State())
	}
	if f.Reference.Rect != home {
		t.Errorf("reference at %+v, expected home %+v", f.Reference.Rect, home)
	}
}

func TestPressOutsideReferenceDoesNotDrag(t *testing.T) {
	h := newHarness(t, nil)
	h.c.PointerDown(geom.Point{X: 5, Y: 5})
	if h.c.State() != StateIdle {
		t.Errorf("state = %s, expected idle", h.c.State())
	}
	h.c.PointerMove(geom.Point{X: 300, Y: 300})
	if h.c.Field().Reference.Rect != h.c.Field().ReferenceHome() {
		t.Error("reference moved without a drag")
	}
}

func TestPointProgression(t *testing.T) {
	h := newHarness(t, nil)

	want := []struct{ constPts, randPts int }{
		{4, 28}, // after 1st completion: odd, only random points grow
		{5, 31}, // after 2nd: even, constellation grows too
		{5, 34},
		{6, 37},
	}
	for i, w := range want {
		h.solve(t)
		h.proceed()
		s := h.c.Session()
		if s.ConstellationPoints != w.constPts || s.RandomPoints != w.randPts {
			t.Errorf("after %d completions: points = %d/%d, expected %d/%d",
				i+1, s.ConstellationPoints, s.RandomPoints, w.constPts, w.randPts)
		}
		if got := len(h.c.Field().Constellation.Local); got != w.constPts {
			t.Errorf("after %d completions: field has %d constellation points", i+1, got)
		}
	}
}

func TestConstellationPointsCapped(t *testing.T) {
	h := newHarness(t, func(c *config.Config) {
		c.Level.StartConstellationPoints = 7
		c.Level.MaxConstellationPoints = 7
	})
	for i := 0; i < 4; i++ {
		h.solve(t)
		h.proceed()
	}
	if got := len(h.c.Field().Constellation.Local); got != 7 {
		t.Errorf("constellation points = %d, expected cap 7", got)
	}
}

func TestGameCompleteIsTerminal(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Level.MaxLevel = 3 })

	for i := 0; i < 2; i++ {
		h.solve(t)
		h.proceed()
	}
	h.solve(t)

	if h.c.State() != StateGameComplete {
		t.Fatalf("state = %s, expected game-complete", h.c.State())
	}
	if h.count(EventGameComplete) != 1 {
		t.Errorf("game-complete events = %d", h.count(EventGameComplete))
	}

	for i := 0; i < 3; i++ {
		h.proceed()
		h.c.PointerDown(h.c.Field().Reference.Rect.Center())
	}
	if h.c.State() != StateGameComplete {
		t.Errorf("continue left the terminal state: %s", h.c.State())
	}
	if got := h.c.Session().Completed; got != 3 {
		t.Errorf("completed = %d, expected 3", got)
	}
	v := h.c.View()
	if v.Reference != nil || v.Fact != "" {
		t.Errorf("completion view still shows play elements: %+v", v)
	}

	h.c.PointerDown(h.c.Layout().Reset.Rect.Center())
	if h.c.State() != StateIdle || h.c.Session().Completed != 0 {
		t.Errorf("reset from game-complete: state %s, session %+v", h.c.State(), h.c.Session())
	}
}

func TestCompletionEventOncePerMatch(t *testing.T) {
	h := newHarness(t, nil)
	h.solve(t)
	// Extra clicks and releases while the fact is up must not replay it.
	h.c.PointerUp(geom.Point{X: 1, Y: 1})
	h.c.Update()
	if n := h.count(EventConstellationComplete); n != 1 {
		t.Fatalf("completion events = %d, expected 1", n)
	}
	h.proceed()
	h.solve(t)
	if n := h.count(EventConstellationComplete); n != 2 {
		t.Errorf("completion events after second match = %d, expected 2", n)
	}
}

func TestFirstInteractionOnce(t *testing.T) {
	h := newHarness(t, nil)
	h.c.PointerDown(geom.Point{X: 1, Y: 1})
	h.c.PointerDown(geom.Point{X: 2, Y: 2})
	h.solve(t)
	if n := h.count(EventFirstInteraction); n != 1 {
		t.Errorf("first-interaction events = %d, expected 1", n)
	}
}

func TestHints(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Level.Hints = 2 })

	if h.c.UseHint() {
		t.Fatal("hint allowed before any completion")
	}

	h.solve(t)
	if h.c.UseHint() {
		t.Fatal("hint allowed while a fact is shown")
	}
	h.proceed()

	hint := h.c.Layout().Hint.Rect.Center()
	h.c.PointerDown(hint)
	if !h.c.HintShown() || h.c.Session().HintsRemaining != 1 {
		t.Fatalf("hint button: shown=%v remaining=%d", h.c.HintShown(), h.c.Session().HintsRemaining)
	}
	if !h.c.View().Reveal {
		t.Error("hint did not reveal the constellation")
	}
	if h.c.UseHint() {
		t.Error("second hint allowed while one is shown")
	}

	h.solve(t)
	if h.c.HintShown() {
		t.Error("match did not clear the hint")
	}
	h.proceed()

	if !h.c.UseHint() {
		t.Fatal("last hint refused")
	}
	h.solve(t)
	h.proceed()
	if h.c.UseHint() {
		t.Error("hint allowed with none remaining")
	}
	if n := h.count(EventHintUsed); n != 2 {
		t.Errorf("hint events = %d, expected 2", n)
	}
}

func TestTimerExcludesFactTime(t *testing.T) {
	h := newHarness(t, nil)

	h.clock.advance(10 * time.Second)
	h.c.Update()
	if got := h.c.Seconds(); got != 10 {
		t.Fatalf("seconds = %v, expected 10", got)
	}

	h.solve(t)
	h.clock.advance(30 * time.Second)
	h.c.Update()
	if got := h.c.Seconds(); got != 10 {
		t.Errorf("timer ran while the fact was shown: %v", got)
	}

	h.proceed()
	h.clock.advance(2 * time.Second)
	h.c.Update()
	if got := h.c.Seconds(); got != 12 {
		t.Errorf("seconds = %v, expected 12", got)
	}
	if got := h.c.View().Seconds; got != 12 {
		t.Errorf("view seconds = %d, expected 12", got)
	}
}

func TestReset(t *testing.T) {
	h := newHarness(t, nil)
	h.clock.advance(5 * time.Second)
	for i := 0; i < 2; i++ {
		h.solve(t)
		h.proceed()
	}
	h.c.UseHint()
	before := h.c.Field().Constellation

	h.c.PointerDown(h.c.Layout().Reset.Rect.Center())

	s := h.c.Session()
	if s != (Session{HintsRemaining: 3, ConstellationPoints: 4, RandomPoints: 25}) {
		t.Errorf("session after reset = %+v", s)
	}
	if h.c.State() != StateIdle || h.c.HintShown() {
		t.Errorf("state %s hint %v after reset", h.c.State(), h.c.HintShown())
	}
	if h.count(EventReset) != 1 {
		t.Errorf("reset events = %d", h.count(EventReset))
	}
	h.c.Update()
	if h.c.Seconds() != 0 {
		t.Errorf("timer not restarted: %v", h.c.Seconds())
	}
	after := h.c.Field().Constellation
	if after.Rect == before.Rect && len(after.Local) == len(before.Local) && after.Local[0] == before.Local[0] {
		t.Error("reset did not generate a fresh constellation")
	}
}

func TestResetDuringDragAndFact(t *testing.T) {
	h := newHarness(t, nil)
	h.solve(t)
	if h.c.State() != StateFactShown {
		t.Fatal("expected fact")
	}
	h.c.PointerDown(h.c.Layout().Reset.Rect.Center())
	if h.c.State() != StateIdle || h.c.Session().Completed != 0 {
		t.Errorf("reset from fact: %s %+v", h.c.State(), h.c.Session())
	}
}

func TestProgress(t *testing.T) {
	h := newHarness(t, func(c *config.Config) { c.Level.MaxLevel = 4 })
	h.solve(t)
	if got := h.c.Progress(); got != 0.25 {
		t.Errorf("Progress = %v, expected 0.25", got)
	}
}
