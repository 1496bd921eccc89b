// Package tool implements mouse kerning and spacing: locating the
// sidebearing handles of a glyph under the pointer and turning horizontal
// drags into kerning or metrics changes.
//
// All font data is owned by the host. The package reads and writes it only
// through Host, Layer and Master.
package tool

// Direction selects the kerning table.
type Direction int

const (
	LeftToRight Direction = iota
	RightToLeft
)

func (d Direction) String() string {
	if d == RightToLeft {
		return "RTL"
	}
	return "LTR"
}

// Point is a location in view coordinates. Y grows upwards, like in the
// font's design space.
type Point struct {
	X, Y float64
}

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Master is one point of the design space.
type Master interface {
	ID() string
	Ascender() float64
	Descender() float64
	CustomParameter(name string) (interface{}, bool)
}

// Layer is one drawn glyph instance. Metrics are in font units.
type Layer interface {
	Name() string
	// Master returns nil when the host can't resolve a master for the layer.
	Master() Master
	Width() float64
	LSB() float64
	RSB() float64
	SetWidth(float64)
	SetLSB(float64)
	SetRSB(float64)
}

// ExceptionSide says which glyph of a pair gets a kerning exception.
type ExceptionSide int

const (
	ExceptionFirst ExceptionSide = 1 << iota
	ExceptionSecond

	ExceptionBoth = ExceptionFirst | ExceptionSecond
)

// Host is the editing view and document the tool works on.
type Host interface {
	// Scale is the zoom factor, view pixels per font unit.
	Scale() float64
	Direction() Direction
	// Layers returns the displayed layers in sequence order.
	Layers() []Layer
	LayerOrigin(index int) Point
	// LayerIndexAt returns the index of the layer at p, if any.
	LayerIndexAt(p Point) (int, bool)
	KerningShown() bool
	SpacingEditable() bool

	// Kerning returns the stored kerning of the ordered pair. Hosts may
	// report a missing pair either with ok == false or with a value of
	// NoKerning or above.
	Kerning(first, second Layer, dir Direction) (value float64, ok bool)
	SetKerning(first, second Layer, dir Direction, value float64)
	SetKerningException(first, second Layer, dir Direction, side ExceptionSide, on bool)

	// BeginUndo opens an edit transaction for the layer's glyph.
	// CommitUndo closes it as one undo step, RollbackUndo discards it.
	BeginUndo(l Layer)
	CommitUndo(l Layer)
	RollbackUndo(l Layer)

	Redraw()
}

// Preferences is the host's persisted key/value store.
type Preferences interface {
	Bool(key string) (value bool, ok bool)
	SetBool(key string, value bool)
}

// Modifiers is the modifier key state at the time of an event.
type Modifiers uint8

const (
	// ModAlt moves the whole glyph.
	ModAlt Modifiers = 1 << iota
	// ModCommand forces kerning even on a sidebearing handle.
	ModCommand
	// ModFine scales the drag down by the fine factor.
	ModFine
	// ModSnap rounds results to the snap step.
	ModSnap
)

func (m Modifiers) Has(f Modifiers) bool { return m&f != 0 }
