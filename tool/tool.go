package tool

import (
	"io"
	"log"
)

// State of the tool's interaction.
type State int

const (
	Idle State = iota
	Armed
	Dragging
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Dragging:
		return "dragging"
	}
	return "idle"
}

// maxLayerIndex is the largest index a host reports for a real layer.
// Anything above means "no layer".
const maxLayerIndex = 0xFFFF

// PrefShowMeasurements is the preference key of the measurement labels.
const PrefShowMeasurements = "showMeasurements"

// Tool turns pointer events from the host's editing view into kerning and
// spacing edits. All methods must be called from the host's event thread.
type Tool struct {
	Host  Host
	Prefs Preferences
	Log   *log.Logger

	// Tolerance is the width of the edge bands in view pixels.
	Tolerance float64
	// LiveUpdate applies every drag sample. Without it the whole motion
	// is applied on pointer up.
	LiveUpdate bool

	state            State
	session          Session
	showMeasurements bool
	// last metric found under the pointer, for the host's cursor
	hover Metric
}

func New(h Host, prefs Preferences) *Tool {
	return &Tool{
		Host:       h,
		Prefs:      prefs,
		Log:        log.New(io.Discard, "", 0),
		Tolerance:  DefaultTolerance,
		LiveUpdate: true,
		session: Session{
			FineFactor: DefaultFineFactor,
			SnapStep:   DefaultSnapStep,
		},
	}
}

// Configure sets the fine-drag factor and the snap step used by new
// sessions. Zero keeps the defaults.
func (t *Tool) Configure(fineFactor, snapStep float64) {
	t.session.FineFactor = fineFactor
	t.session.SnapStep = snapStep
}

// Activate reads the persisted preferences.
func (t *Tool) Activate() {
	t.showMeasurements = false
	if t.Prefs != nil {
		if v, ok := t.Prefs.Bool(PrefShowMeasurements); ok {
			t.showMeasurements = v
		}
	}
}

// Deactivate drops any session in progress.
func (t *Tool) Deactivate() {
	t.Cancel()
	t.hover = NoMetric
}

func (t *Tool) ShowMeasurements() bool { return t.showMeasurements }

func (t *Tool) SetShowMeasurements(v bool) {
	t.showMeasurements = v
	if t.Prefs != nil {
		t.Prefs.SetBool(PrefShowMeasurements, v)
	}
}

func (t *Tool) State() State { return t.state }

// Target returns the target of the running session, or nil.
func (t *Tool) Target() Target { return t.session.Target }

// Hover returns the metric found under the pointer by the last overlay
// pass.
func (t *Tool) Hover() Metric { return t.hover }

func (t *Tool) logf(format string, args ...interface{}) {
	if t.Log != nil {
		t.Log.Printf(format, args...)
	}
}

func (t *Tool) tolerance() float64 {
	if t.Tolerance <= 0 {
		return DefaultTolerance
	}
	return t.Tolerance
}

// PointerDown picks the target under p. It reports whether a session was
// started.
func (t *Tool) PointerDown(p Point, mods Modifiers) bool {
	if t.session.Active() {
		// a lost pointer up; close the old transaction where it stands
		t.PointerUp(Point{X: t.session.Anchor})
	}
	t.reset()

	idx, ok := t.Host.LayerIndexAt(p)
	layers := t.Host.Layers()
	if !ok || idx < 0 || idx > maxLayerIndex || idx >= len(layers) {
		return false
	}
	layer := layers[idx]
	var metric Metric
	if h, ok := LocateHandle(p, layer, t.Host.LayerOrigin(idx), t.Host.Scale(), t.tolerance()); ok {
		metric = h.Metric
	}

	var target Target
	switch {
	case mods.Has(ModAlt):
		target = Move{L: layer}
	case mods.Has(ModCommand):
		target = Kerning{Second: layer}
	case metric == LSBMetric:
		target = LeftSidebearing{L: layer}
	case metric == RSBMetric:
		target = RightSidebearing{L: layer}
	default:
		target = Kerning{Second: layer}
	}

	switch tg := target.(type) {
	case Kerning:
		if idx == 0 || !t.Host.KerningShown() {
			t.logf("no kerning at layer %d\n", idx)
			return false
		}
		tg.First = layers[idx-1]
		if !sameMaster(tg.First, tg.Second) {
			t.logf("can't kern %s/%s across masters\n", tg.First.Name(), tg.Second.Name())
			return false
		}
		target = tg
	case Move:
		if layer.Master() == nil {
			return false
		}
	default:
		if !t.Host.SpacingEditable() {
			t.logf("spacing is locked in the view\n")
			return false
		}
	}

	t.session.Target = target
	t.session.Anchor = p.X
	t.session.Direction = t.Host.Direction()
	t.setModifiers(mods)
	t.state = Armed
	t.Host.BeginUndo(target.Layer())
	t.logf("armed %s on %s (%s)\n", targetName(target), target.Layer().Name(), t.session.Direction)
	return true
}

func (t *Tool) setModifiers(mods Modifiers) {
	t.session.Fine = mods.Has(ModFine)
	t.session.Snap = mods.Has(ModSnap)
}

// PointerDrag applies the motion since the last sample. The mode chosen at
// pointer down stays; fine and snap follow the current modifiers.
func (t *Tool) PointerDrag(p Point, mods Modifiers) Applied {
	if !t.session.Active() {
		return Applied{}
	}
	t.setModifiers(mods)
	if p.X != t.session.Anchor {
		t.state = Dragging
	}
	if !t.LiveUpdate {
		return Applied{}
	}
	a := t.session.Sample(t.Host, p.X, t.Host.Scale())
	if a.Redraw {
		t.Host.Redraw()
	}
	return a
}

// PointerUp ends the session and closes its transaction. Calling it
// without a session is a no-op.
func (t *Tool) PointerUp(p Point) Applied {
	if !t.session.Active() {
		t.reset()
		return Applied{}
	}
	var a Applied
	if !t.LiveUpdate {
		a = t.session.Sample(t.Host, p.X, t.Host.Scale())
	}
	l := t.session.Target.Layer()
	t.Host.CommitUndo(l)
	if a.Redraw {
		t.Host.Redraw()
	}
	t.logf("committed %s on %s: %g\n", targetName(t.session.Target), l.Name(), t.session.Total)
	t.reset()
	return a
}

// Cancel rolls back the running session, if any.
func (t *Tool) Cancel() {
	if t.session.Active() {
		l := t.session.Target.Layer()
		t.Host.RollbackUndo(l)
		t.Host.Redraw()
		t.logf("cancelled %s on %s\n", targetName(t.session.Target), l.Name())
	}
	t.reset()
}

func (t *Tool) reset() {
	// direction goes back to the host's with the next session
	t.session.Reset()
	t.state = Idle
}

// KeyDown handles the kerning exception keys for the pair under p: a, s
// and d add an exception to the first, second or both glyphs, A, S and D
// remove it. Exception keys are ignored while a session runs. Escape
// cancels the session. It reports whether the key was used.
func (t *Tool) KeyDown(r rune, p Point) bool {
	if r == '\x1b' {
		t.Cancel()
		return true
	}
	var side ExceptionSide
	on := true
	switch r {
	case 'a':
		side = ExceptionFirst
	case 's':
		side = ExceptionSecond
	case 'd':
		side = ExceptionBoth
	case 'A':
		side, on = ExceptionFirst, false
	case 'S':
		side, on = ExceptionSecond, false
	case 'D':
		side, on = ExceptionBoth, false
	default:
		return false
	}
	if t.session.Active() {
		// the drag owns the open transaction
		return false
	}

	idx, ok := t.Host.LayerIndexAt(p)
	layers := t.Host.Layers()
	if !ok || idx <= 0 || idx > maxLayerIndex || idx >= len(layers) {
		return false
	}
	first, second := layers[idx-1], layers[idx]
	if !sameMaster(first, second) {
		return false
	}
	t.Host.BeginUndo(second)
	t.Host.SetKerningException(first, second, t.Host.Direction(), side, on)
	t.Host.CommitUndo(second)
	t.Host.Redraw()
	return true
}
