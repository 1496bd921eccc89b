package tool

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ava lays out A, V and A of 600, 580 and 600 units in one master.
func ava() (*fakeHost, *Tool) {
	m := newMaster("Regular")
	h := newHost(
		&fakeLayer{name: "A", master: m, width: 600, lsb: 10, rsb: 10},
		&fakeLayer{name: "V", master: m, width: 580, lsb: 5, rsb: 5},
		&fakeLayer{name: "A", master: m, width: 600, lsb: 10, rsb: 10},
	)
	return h, New(h, fakePrefs{})
}

func TestKerningSession(t *testing.T) {
	h, tl := ava()

	// middle of V
	if !tl.PointerDown(Point{X: 890}, 0) {
		t.Fatal("no session on V")
	}
	if tl.State() != Armed {
		t.Errorf("state %s, want armed", tl.State())
	}
	if _, ok := tl.Target().(Kerning); !ok {
		t.Fatalf("target %T, want Kerning", tl.Target())
	}
	for _, x := range []float64{895, 898, 896} {
		tl.PointerDrag(Point{X: x}, 0)
	}
	if tl.State() != Dragging {
		t.Errorf("state %s, want dragging", tl.State())
	}
	tl.PointerUp(Point{X: 896})

	if k := h.kerning[pairKey{"A", "V", LeftToRight}]; k != 6 {
		t.Errorf("kerning(A, V) = %g, want 6", k)
	}
	if tl.State() != Idle || tl.Target() != nil {
		t.Errorf("session left %s with %v", tl.State(), tl.Target())
	}
	if h.begins != 1 || h.commits != 1 {
		t.Errorf("begins %d commits %d", h.begins, h.commits)
	}
}

func TestPointerUpTwice(t *testing.T) {
	h, tl := ava()
	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerUp(Point{X: 890})
	tl.PointerUp(Point{X: 890})
	if h.commits != 1 {
		t.Errorf("commits %d, want 1", h.commits)
	}
}

func TestArmedToIdle(t *testing.T) {
	h, tl := ava()
	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 890}, 0)
	if tl.State() != Armed {
		t.Errorf("state %s after no motion, want armed", tl.State())
	}
	tl.PointerUp(Point{X: 890})
	if tl.State() != Idle {
		t.Errorf("state %s, want idle", tl.State())
	}
	if len(h.kerning) != 0 {
		t.Errorf("kerning written: %v", h.kerning)
	}
}

func TestPointerDownRejected(t *testing.T) {
	big := maxLayerIndex + 1
	cases := []struct {
		name  string
		setup func(h *fakeHost)
		p     Point
		mods  Modifiers
	}{
		{"first layer", nil, Point{X: 300}, 0},
		{"no layer", nil, Point{X: 5000}, 0},
		{"index out of range", func(h *fakeHost) { h.forcedIndex = &big }, Point{X: 890}, 0},
		{"kerning hidden", func(h *fakeHost) { h.kernShown = false }, Point{X: 890}, 0},
		{"other master", func(h *fakeHost) { h.layers[1].(*fakeLayer).master = newMaster("Bold") }, Point{X: 890}, 0},
		{"no master", func(h *fakeHost) { h.layers[0].(*fakeLayer).master = nil }, Point{X: 890}, 0},
		{"spacing locked", func(h *fakeHost) { h.spacing = false }, Point{X: 602}, 0},
		{"kern forced on first layer", nil, Point{X: 2}, ModCommand},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			h, tl := ava()
			if c.setup != nil {
				c.setup(h)
			}
			if tl.PointerDown(c.p, c.mods) {
				t.Errorf("session started with %T", tl.Target())
			}
			if tl.State() != Idle || tl.Target() != nil {
				t.Errorf("state %s", tl.State())
			}
			if h.begins != 0 {
				t.Errorf("transaction opened")
			}
		})
	}
}

func TestPointerDownModes(t *testing.T) {
	cases := []struct {
		name string
		p    Point
		mods Modifiers
		want string
	}{
		{"left handle of V", Point{X: 602}, 0, "LSB"},
		{"right handle of V", Point{X: 1178}, 0, "RSB"},
		{"body of V", Point{X: 890}, 0, "kern"},
		{"alt on body", Point{X: 890}, ModAlt, "move"},
		{"alt on handle", Point{X: 602}, ModAlt, "move"},
		{"command on handle", Point{X: 602}, ModCommand, "kern"},
		{"alt and command", Point{X: 890}, ModAlt | ModCommand, "move"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, tl := ava()
			if !tl.PointerDown(c.p, c.mods) {
				t.Fatal("no session")
			}
			if got := targetName(tl.Target()); got != c.want {
				t.Errorf("mode %s, want %s", got, c.want)
			}
		})
	}
}

func TestMoveIgnoresSpacingLock(t *testing.T) {
	h, tl := ava()
	h.spacing = false
	if !tl.PointerDown(Point{X: 602}, ModAlt) {
		t.Fatal("move rejected")
	}
	tl.PointerDrag(Point{X: 606}, 0)
	tl.PointerUp(Point{X: 606})
	v := h.layers[1].(*fakeLayer)
	if v.lsb != 9 || v.width != 576 {
		t.Errorf("lsb %g width %g, want 9 576", v.lsb, v.width)
	}
}

func TestModeFixedAtPointerDown(t *testing.T) {
	h, tl := ava()
	tl.PointerDown(Point{X: 602}, 0)
	tl.PointerDrag(Point{X: 612}, ModAlt|ModCommand)
	v := h.layers[1].(*fakeLayer)
	if v.lsb != 15 || v.width != 580 {
		t.Errorf("lsb %g width %g, want 15 580", v.lsb, v.width)
	}
	if len(h.kerning) != 0 {
		t.Error("modifiers switched to kerning mid-drag")
	}
}

func TestSpacingRedraws(t *testing.T) {
	h, tl := ava()
	tl.PointerDown(Point{X: 1178}, 0)
	tl.PointerDrag(Point{X: 1171}, 0)
	if h.redraws != 1 {
		t.Errorf("redraws %d, want 1", h.redraws)
	}

	h, tl = ava()
	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 880}, 0)
	if h.redraws != 0 {
		t.Errorf("kerning drag redrew %d times", h.redraws)
	}
}

func TestCancelRollsBack(t *testing.T) {
	h, tl := ava()
	h.kerning[pairKey{"A", "V", LeftToRight}] = -40
	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 870}, 0)
	if k := h.kerning[pairKey{"A", "V", LeftToRight}]; k != -60 {
		t.Fatalf("kerning %g during drag, want -60", k)
	}
	if !tl.KeyDown('\x1b', Point{X: 870}) {
		t.Error("escape not handled")
	}
	if k := h.kerning[pairKey{"A", "V", LeftToRight}]; k != -40 {
		t.Errorf("kerning %g after cancel, want -40", k)
	}
	if h.rollbacks != 1 || h.commits != 0 {
		t.Errorf("rollbacks %d commits %d", h.rollbacks, h.commits)
	}
	if tl.State() != Idle {
		t.Errorf("state %s", tl.State())
	}

	// the pointer up that follows finds nothing to do
	tl.PointerUp(Point{X: 870})
	if h.commits != 0 {
		t.Errorf("commit after cancel")
	}
}

func TestCancelIdle(t *testing.T) {
	h, tl := ava()
	tl.Cancel()
	if h.rollbacks != 0 || h.redraws != 0 {
		t.Errorf("idle cancel touched the host")
	}
}

func TestDeferredUpdate(t *testing.T) {
	h, tl := ava()
	tl.LiveUpdate = false
	tl.PointerDown(Point{X: 602}, 0)
	tl.PointerDrag(Point{X: 610}, 0)
	tl.PointerDrag(Point{X: 620}, 0)
	v := h.layers[1].(*fakeLayer)
	if v.lsb != 5 {
		t.Errorf("lsb %g changed before pointer up", v.lsb)
	}
	tl.PointerUp(Point{X: 622})
	if v.lsb != 25 {
		t.Errorf("lsb %g, want 25", v.lsb)
	}
}

func TestDirectionPerSession(t *testing.T) {
	h, tl := ava()
	h.dir = RightToLeft
	tl.PointerDown(Point{X: 890}, 0)
	h.dir = LeftToRight // switching the view doesn't affect a running drag
	tl.PointerDrag(Point{X: 900}, 0)
	tl.PointerUp(Point{X: 900})
	if k := h.kerning[pairKey{"A", "V", RightToLeft}]; k != 10 {
		t.Errorf("RTL kerning %g, want 10", k)
	}

	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 893}, 0)
	tl.PointerUp(Point{X: 893})
	if k := h.kerning[pairKey{"A", "V", LeftToRight}]; k != 3 {
		t.Errorf("LTR kerning %g, want 3", k)
	}
}

func TestLostPointerUp(t *testing.T) {
	h, tl := ava()
	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 895}, 0)
	tl.PointerDown(Point{X: 1178}, 0)
	if h.commits != 1 {
		t.Errorf("old session not committed")
	}
	if got := targetName(tl.Target()); got != "RSB" {
		t.Errorf("new target %s", got)
	}
}

func TestKerningExceptions(t *testing.T) {
	cases := []struct {
		r    rune
		side ExceptionSide
		on   bool
	}{
		{'a', ExceptionFirst, true},
		{'s', ExceptionSecond, true},
		{'d', ExceptionBoth, true},
		{'A', ExceptionFirst, false},
		{'S', ExceptionSecond, false},
		{'D', ExceptionBoth, false},
	}
	for _, c := range cases {
		h, tl := ava()
		if !tl.KeyDown(c.r, Point{X: 890}) {
			t.Errorf("%c not handled", c.r)
			continue
		}
		want := map[exceptionKey]bool{{pairKey{"A", "V", LeftToRight}, c.side}: c.on}
		if d := cmp.Diff(want, h.exceptions, cmp.AllowUnexported(exceptionKey{}, pairKey{})); d != "" {
			t.Errorf("%c (-want +got):\n%s", c.r, d)
		}
	}

	h, tl := ava()
	if tl.KeyDown('a', Point{X: 300}) {
		t.Error("exception on the first layer")
	}
	if tl.KeyDown('x', Point{X: 890}) {
		t.Error("unknown key handled")
	}
	h.layers[1].(*fakeLayer).master = newMaster("Bold")
	if tl.KeyDown('d', Point{X: 890}) {
		t.Error("exception across masters")
	}
}

func TestExceptionKeysDuringDrag(t *testing.T) {
	h, tl := ava()
	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 900}, 0)
	if tl.KeyDown('d', Point{X: 890}) {
		t.Error("exception key handled during a drag")
	}
	if len(h.exceptions) != 0 {
		t.Errorf("exceptions %v", h.exceptions)
	}
	if h.begins != 1 {
		t.Errorf("begins %d, want 1", h.begins)
	}
	if !tl.KeyDown('\x1b', Point{X: 900}) || tl.State() != Idle {
		t.Error("escape did not cancel")
	}
}

func TestMeasurementPreference(t *testing.T) {
	h, _ := ava()
	prefs := fakePrefs{PrefShowMeasurements: true}
	tl := New(h, prefs)
	tl.Activate()
	if !tl.ShowMeasurements() {
		t.Error("preference not read")
	}
	tl.SetShowMeasurements(false)
	if prefs[PrefShowMeasurements] {
		t.Error("preference not written")
	}

	other := New(h, prefs)
	other.Activate()
	if other.ShowMeasurements() {
		t.Error("preference not round-tripped")
	}
}

func TestOverlay(t *testing.T) {
	h, tl := ava()
	tl.SetShowMeasurements(true)

	o, ok := tl.Overlay(1, Point{X: 602, Y: 100})
	if !ok {
		t.Fatal("no overlay on the left edge of V")
	}
	want := Overlay{
		Handle:     Handle{Metric: LSBMetric, Rect: Rect{X: 600, Y: -200, W: 8, H: 900}, RefX: 600, Value: 5},
		Label:      "5",
		LabelX:     616,
		LabelY:     100,
		LabelAlign: AlignLeft,
	}
	if d := cmp.Diff(want, o); d != "" {
		t.Errorf("overlay (-want +got):\n%s", d)
	}
	if tl.Hover() != LSBMetric {
		t.Errorf("hover %s", tl.Hover())
	}

	o, ok = tl.Overlay(1, Point{X: 1175})
	if !ok || o.LabelAlign != AlignRight || o.LabelX != 1180-labelDistance {
		t.Errorf("right overlay %+v", o)
	}

	if _, ok := tl.Overlay(1, Point{X: 890}); ok {
		t.Error("overlay inside the glyph")
	}
	if _, ok := tl.Overlay(7, Point{X: 602}); ok {
		t.Error("overlay for a missing layer")
	}

	tl.PointerDown(Point{X: 602}, 0)
	if _, ok := tl.Overlay(1, Point{X: 602}); ok {
		t.Error("overlay while dragging")
	}
	tl.PointerUp(Point{X: 602})

	h.layers[1].(*fakeLayer).master.params[ParamLinkMaster] = 1
	if _, ok := tl.Overlay(1, Point{X: 602}); ok {
		t.Error("overlay on locked metrics")
	}
}

func TestOverlayHiddenMeasurements(t *testing.T) {
	_, tl := ava()
	o, ok := tl.Overlay(1, Point{X: 602})
	if !ok {
		t.Fatal("no overlay")
	}
	if o.Label != "" {
		t.Errorf("label %q with measurements off", o.Label)
	}
}

func TestMeasurementWhileDragging(t *testing.T) {
	h, tl := ava()
	tl.SetShowMeasurements(true)
	tl.PointerDown(Point{X: 602}, 0)
	tl.PointerDrag(Point{X: 607}, 0)
	o, ok := tl.Measurement(Point{X: 607})
	if !ok || o.Label != "∆5 = 10" || o.LabelAlign != AlignLeft {
		t.Errorf("measurement %+v", o)
	}
	tl.PointerUp(Point{X: 607})
	if _, ok := tl.Measurement(Point{X: 607}); ok {
		t.Error("measurement after pointer up")
	}

	tl.PointerDown(Point{X: 890}, 0)
	tl.PointerDrag(Point{X: 880}, 0)
	if o, _ := tl.Measurement(Point{X: 880}); o.Label != "-10" {
		t.Errorf("kerning label %q", o.Label)
	}
	tl.PointerUp(Point{X: 880})

	h.layers[1].(*fakeLayer).master.params[ParamLinkMaster] = 1
	tl.PointerDown(Point{X: 1178}, 0)
	if o, _ := tl.Measurement(Point{X: 1178}); o.Label != LockedLabel {
		t.Errorf("locked label %q", o.Label)
	}
}
