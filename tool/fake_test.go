package tool

type fakeMaster struct {
	id        string
	asc, desc float64
	params    map[string]interface{}
}

func (m *fakeMaster) ID() string         { return m.id }
func (m *fakeMaster) Ascender() float64  { return m.asc }
func (m *fakeMaster) Descender() float64 { return m.desc }
func (m *fakeMaster) CustomParameter(name string) (interface{}, bool) {
	v, ok := m.params[name]
	return v, ok
}

func newMaster(id string) *fakeMaster {
	return &fakeMaster{id: id, asc: 700, desc: -200, params: map[string]interface{}{}}
}

// fakeLayer keeps its metrics as independent fields.
type fakeLayer struct {
	name     string
	master   *fakeMaster
	width    float64
	lsb, rsb float64
}

func (l *fakeLayer) Name() string { return l.name }
func (l *fakeLayer) Master() Master {
	if l.master == nil {
		return nil
	}
	return l.master
}
func (l *fakeLayer) Width() float64     { return l.width }
func (l *fakeLayer) LSB() float64       { return l.lsb }
func (l *fakeLayer) RSB() float64       { return l.rsb }
func (l *fakeLayer) SetWidth(v float64) { l.width = v }
func (l *fakeLayer) SetLSB(v float64)   { l.lsb = v }
func (l *fakeLayer) SetRSB(v float64)   { l.rsb = v }

type pairKey struct {
	first, second string
	dir           Direction
}

type exceptionKey struct {
	pairKey
	side ExceptionSide
}

type fakeHost struct {
	scale         float64
	dir           Direction
	layers        []Layer
	origins       []Point
	kerning       map[pairKey]float64
	exceptions    map[exceptionKey]bool
	kernShown     bool
	spacing       bool
	forcedIndex   *int
	kerningWrites int

	begins, commits, rollbacks, redraws int

	saved     []fakeLayer
	savedKern map[pairKey]float64
}

// newHost lays the layers out next to each other at scale 1.
func newHost(layers ...*fakeLayer) *fakeHost {
	h := &fakeHost{
		scale:      1,
		kerning:    map[pairKey]float64{},
		exceptions: map[exceptionKey]bool{},
		kernShown:  true,
		spacing:    true,
	}
	x := 0.0
	for _, l := range layers {
		h.layers = append(h.layers, l)
		h.origins = append(h.origins, Point{X: x})
		x += l.width
	}
	return h
}

func (h *fakeHost) Scale() float64          { return h.scale }
func (h *fakeHost) Direction() Direction    { return h.dir }
func (h *fakeHost) Layers() []Layer         { return h.layers }
func (h *fakeHost) LayerOrigin(i int) Point { return h.origins[i] }
func (h *fakeHost) KerningShown() bool      { return h.kernShown }
func (h *fakeHost) SpacingEditable() bool   { return h.spacing }

func (h *fakeHost) LayerIndexAt(p Point) (int, bool) {
	if h.forcedIndex != nil {
		return *h.forcedIndex, true
	}
	for i, o := range h.origins {
		w := h.layers[i].Width() * h.scale
		if p.X >= o.X && p.X < o.X+w {
			return i, true
		}
	}
	return 0, false
}

func (h *fakeHost) Kerning(first, second Layer, dir Direction) (float64, bool) {
	v, ok := h.kerning[pairKey{first.Name(), second.Name(), dir}]
	return v, ok
}

func (h *fakeHost) SetKerning(first, second Layer, dir Direction, v float64) {
	h.kerningWrites++
	h.kerning[pairKey{first.Name(), second.Name(), dir}] = v
}

func (h *fakeHost) SetKerningException(first, second Layer, dir Direction, side ExceptionSide, on bool) {
	h.exceptions[exceptionKey{pairKey{first.Name(), second.Name(), dir}, side}] = on
}

func (h *fakeHost) BeginUndo(Layer) {
	h.begins++
	h.saved = h.saved[:0]
	for _, l := range h.layers {
		h.saved = append(h.saved, *l.(*fakeLayer))
	}
	h.savedKern = map[pairKey]float64{}
	for k, v := range h.kerning {
		h.savedKern[k] = v
	}
}

func (h *fakeHost) CommitUndo(Layer) { h.commits++ }

func (h *fakeHost) RollbackUndo(Layer) {
	h.rollbacks++
	for i, l := range h.layers {
		*l.(*fakeLayer) = h.saved[i]
	}
	h.kerning = h.savedKern
}

func (h *fakeHost) Redraw() { h.redraws++ }

type fakePrefs map[string]bool

func (p fakePrefs) Bool(key string) (bool, bool) {
	v, ok := p[key]
	return v, ok
}

func (p fakePrefs) SetBool(key string, v bool) { p[key] = v }
