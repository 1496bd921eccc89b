package tool

const (
	// DefaultFineFactor makes ten pixels of pointer motion one font unit
	// at scale 1.
	DefaultFineFactor = 0.1
	// DefaultSnapStep is the rounding step while snapping.
	DefaultSnapStep = 10
)

// Session is the state of one pointer-down to pointer-up interaction.
// The zero value is an idle session.
type Session struct {
	// Anchor is the pointer x of the last sample.
	Anchor    float64
	Target    Target
	Direction Direction
	Fine      bool
	Snap      bool

	FineFactor float64
	SnapStep   float64

	// Total is the amount applied since the session started, in font units.
	Total float64

	// motion not yet turned into a whole unit or step
	pending float64
}

// Applied reports the effect of one drag sample.
type Applied struct {
	Delta  float64
	Redraw bool
}

func (s *Session) Active() bool { return s.Target != nil }

// Reset returns the session to idle.
func (s *Session) Reset() {
	*s = Session{FineFactor: s.FineFactor, SnapStep: s.SnapStep}
}

func (s *Session) step() float64 {
	if !s.Snap {
		return 1
	}
	if s.SnapStep <= 0 {
		return DefaultSnapStep
	}
	return s.SnapStep
}

func (s *Session) fineFactor() float64 {
	if s.FineFactor <= 0 {
		return DefaultFineFactor
	}
	return s.FineFactor
}

// Sample applies the pointer motion since the previous sample to the
// session's target and moves the anchor to x.
func (s *Session) Sample(h Host, x, scale float64) Applied {
	if s.Target == nil || scale == 0 {
		return Applied{}
	}
	raw := (x - s.Anchor) / scale
	if s.Fine {
		raw *= s.fineFactor()
	}
	s.Anchor = x
	if raw == 0 {
		return Applied{}
	}
	s.pending += raw

	switch t := s.Target.(type) {
	case Move:
		// linked metrics don't stop a move
		d := s.metricDelta(t.L.LSB())
		if d == 0 {
			return Applied{}
		}
		t.L.SetLSB(t.L.LSB() + d)
		t.L.SetWidth(t.L.Width() - d)
		return s.applied(d, true)

	case LeftSidebearing:
		if MetricsLocked(t.L) {
			s.pending = 0
			return Applied{}
		}
		d := s.metricDelta(t.L.LSB())
		if d == 0 {
			return Applied{}
		}
		t.L.SetLSB(t.L.LSB() + d)
		return s.applied(d, true)

	case RightSidebearing:
		if MetricsLocked(t.L) {
			s.pending = 0
			return Applied{}
		}
		d := s.metricDelta(t.L.RSB())
		if d == 0 {
			return Applied{}
		}
		t.L.SetRSB(t.L.RSB() + d)
		return s.applied(d, true)

	case Kerning:
		if MetricsLocked(t.Second) {
			s.pending = 0
			return Applied{}
		}
		existing, _ := CurrentKerning(h, t.First, t.Second, s.Direction)
		if roundTo(existing+s.pending, s.step()) == existing {
			return Applied{}
		}
		v := ApplyKerningDelta(h, t.First, t.Second, s.pending, s.step(), s.Direction)
		// the host redraws on kerning changes by itself
		return s.applied(v-existing, false)
	}
	return Applied{}
}

func (s *Session) metricDelta(current float64) float64 {
	return roundTo(current+s.pending, s.step()) - current
}

func (s *Session) applied(d float64, redraw bool) Applied {
	s.pending -= d
	s.Total += d
	return Applied{Delta: d, Redraw: redraw}
}
