package tool

import "fmt"

// LockedLabel is shown instead of a value on layers with linked metrics.
const LockedLabel = "\U0001F512︎"

// labelDistance is the gap in view pixels between a label and its edge.
const labelDistance = 16

// Align says which side of Overlay.LabelX the label text sits on.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Overlay is what the host draws over one layer.
type Overlay struct {
	Handle Handle
	// Label is empty when measurements are hidden.
	Label      string
	LabelX     float64
	LabelY     float64
	LabelAlign Align
}

// Overlay returns the handle to draw for the layer at index under the
// pointer. Nothing is drawn while a session runs, when spacing is locked
// in the view or when the layer takes its metrics from another master.
func (t *Tool) Overlay(index int, pointer Point) (Overlay, bool) {
	if t.session.Active() || !t.Host.SpacingEditable() {
		return Overlay{}, false
	}
	layers := t.Host.Layers()
	if index < 0 || index >= len(layers) {
		return Overlay{}, false
	}
	l := layers[index]
	if MetricsLocked(l) {
		return Overlay{}, false
	}
	h, ok := LocateHandle(pointer, l, t.Host.LayerOrigin(index), t.Host.Scale(), t.tolerance())
	if !ok {
		return Overlay{}, false
	}
	t.hover = h.Metric

	o := Overlay{Handle: h, LabelY: pointer.Y}
	if t.showMeasurements {
		o.Label = fmt.Sprintf("%g", h.Value)
		if h.Metric == LSBMetric {
			o.LabelX, o.LabelAlign = h.RefX+labelDistance, AlignLeft
		} else {
			o.LabelX, o.LabelAlign = h.RefX-labelDistance, AlignRight
		}
	}
	return o, true
}

// ClearHover forgets the metric under the pointer. Hosts call it before an
// overlay pass.
func (t *Tool) ClearHover() { t.hover = NoMetric }

// Measurement is the label shown next to the pointer during a session.
func (t *Tool) Measurement(pointer Point) (Overlay, bool) {
	if !t.showMeasurements || !t.session.Active() {
		return Overlay{}, false
	}
	o := Overlay{LabelX: pointer.X - labelDistance, LabelY: pointer.Y, LabelAlign: AlignRight}
	switch tg := t.session.Target.(type) {
	case LeftSidebearing:
		o.Label = sidebearingLabel(tg.L, t.session.Total, tg.L.LSB())
		o.LabelX, o.LabelAlign = pointer.X+labelDistance, AlignLeft
	case RightSidebearing:
		o.Label = sidebearingLabel(tg.L, t.session.Total, tg.L.RSB())
	case Move:
		o.Label = fmt.Sprintf("∆%g", t.session.Total)
	case Kerning:
		if MetricsLocked(tg.Second) {
			o.Label = LockedLabel
			break
		}
		v, _ := CurrentKerning(t.Host, tg.First, tg.Second, t.session.Direction)
		o.Label = fmt.Sprintf("%g", v)
	}
	return o, true
}

func sidebearingLabel(l Layer, total, value float64) string {
	if MetricsLocked(l) {
		return LockedLabel
	}
	return fmt.Sprintf("∆%g = %g", total, value)
}
