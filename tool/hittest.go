package tool

// DefaultTolerance is the width in view pixels of the hot band at each
// edge of a glyph.
const DefaultTolerance = 8

// Metric tags the sidebearing a handle addresses.
type Metric int

const (
	NoMetric Metric = iota
	LSBMetric
	RSBMetric
)

func (m Metric) String() string {
	switch m {
	case LSBMetric:
		return "LSB"
	case RSBMetric:
		return "RSB"
	}
	return "none"
}

// Handle is the hot zone found under the pointer.
type Handle struct {
	Metric Metric
	Rect   Rect
	// RefX is the x position of the glyph edge the handle belongs to.
	RefX float64
	// Value is the current sidebearing in font units.
	Value float64
}

// LocateHandle checks whether p lies in one of the two edge bands of the
// layer drawn at origin. Bands are tolerance pixels wide and span the
// master's descender to ascender. Glyphs narrower than two bands only
// offer the left handle.
func LocateHandle(p Point, l Layer, origin Point, scale, tolerance float64) (Handle, bool) {
	if l == nil {
		return Handle{}, false
	}
	m := l.Master()
	if m == nil {
		return Handle{}, false
	}
	desc := m.Descender()*scale + origin.Y
	asc := m.Ascender()*scale + origin.Y
	if p.Y < desc || p.Y > asc {
		return Handle{}, false
	}

	layerWidth := l.Width() * scale
	offsetX := p.X - origin.X
	if offsetX < 0 || offsetX > layerWidth {
		return Handle{}, false
	}

	narrow := layerWidth < 2*tolerance
	if !narrow && offsetX >= tolerance && offsetX < layerWidth-tolerance {
		// too far inside the glyph
		return Handle{}, false
	}

	if narrow || offsetX < tolerance {
		return Handle{
			Metric: LSBMetric,
			Rect:   Rect{X: origin.X, Y: desc, W: tolerance, H: asc - desc},
			RefX:   origin.X,
			Value:  l.LSB(),
		}, true
	}
	return Handle{
		Metric: RSBMetric,
		Rect:   Rect{X: origin.X + layerWidth - tolerance, Y: desc, W: tolerance, H: asc - desc},
		RefX:   origin.X + layerWidth,
		Value:  l.RSB(),
	}, true
}
