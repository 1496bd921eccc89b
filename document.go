// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"sort"

	"golang.org/x/image/font/sfnt"

	"dragkern/tool"
)

type master struct {
	name      string
	ascender  float64
	descender float64
	params    map[string]interface{}
}

func (m *master) ID() string         { return m.name }
func (m *master) Ascender() float64  { return m.ascender }
func (m *master) Descender() float64 { return m.descender }

func (m *master) CustomParameter(name string) (interface{}, bool) {
	v, ok := m.params[name]
	return v, ok
}

type glyph struct {
	name   string
	r      rune
	index  sfnt.GlyphIndex
	layers map[string]*layer // by master name
}

// layer is one master's version of a glyph. The outline is kept as its
// left ink edge and ink width; sidebearings follow from the advance width.
type layer struct {
	doc      *document
	glyph    *glyph
	master   *master
	width    float64
	inkLeft  float64
	inkWidth float64
	// inkLeft as loaded from the font, where the rendered outline sits
	origLeft float64
}

func (l *layer) Name() string { return l.glyph.name }

func (l *layer) Master() tool.Master {
	if l.master == nil {
		return nil
	}
	return l.master
}

func (l *layer) Width() float64 { return l.width }
func (l *layer) LSB() float64   { return l.inkLeft }
func (l *layer) RSB() float64   { return l.width - l.inkLeft - l.inkWidth }

func (l *layer) SetWidth(v float64) {
	l.change(func() { l.width = v })
}

// SetLSB shifts the outline, the right sidebearing stays.
func (l *layer) SetLSB(v float64) {
	l.change(func() {
		l.width += v - l.inkLeft
		l.inkLeft = v
	})
}

func (l *layer) SetRSB(v float64) {
	l.change(func() { l.width = l.inkLeft + l.inkWidth + v })
}

func (l *layer) change(f func()) {
	w0, x0 := l.width, l.inkLeft
	f()
	w1, x1 := l.width, l.inkLeft
	if w0 == w1 && x0 == x1 {
		return
	}
	l.doc.journal.record(l.glyph.name, step{
		undo: func() { l.width, l.inkLeft = w0, x0 },
		redo: func() { l.width, l.inkLeft = w1, x1 },
	})
}

type kernKey struct {
	master        string
	first, second string
	dir           tool.Direction
}

type exceptionKey struct {
	kernKey
	side tool.ExceptionSide
}

// document is the font being spaced and kerned.
type document struct {
	family    string
	upem      float64
	ascender  float64
	descender float64

	masters []*master
	glyphs  []*glyph
	byName  map[string]*glyph
	byRune  map[rune]*glyph

	kerning    map[kernKey]float64
	exceptions map[exceptionKey]bool
	journal    journal

	// outlines of the glyphs, nil for documents not loaded from a font
	font *sfnt.Font
}

func newDocument(family string, upem float64) *document {
	return &document{
		family:     family,
		upem:       upem,
		byName:     make(map[string]*glyph),
		byRune:     make(map[rune]*glyph),
		kerning:    make(map[kernKey]float64),
		exceptions: make(map[exceptionKey]bool),
	}
}

func (d *document) addMaster(name string, linked bool) *master {
	m := &master{
		name:      name,
		ascender:  d.ascender,
		descender: d.descender,
		params:    make(map[string]interface{}),
	}
	if linked && len(d.masters) > 0 {
		m.params[tool.ParamLinkMaster] = d.masters[0].name
	}
	d.masters = append(d.masters, m)
	for _, g := range d.glyphs {
		if proto := d.firstLayer(g); proto != nil {
			g.layers[name] = &layer{doc: d, glyph: g, master: m, width: proto.width,
				inkLeft: proto.inkLeft, inkWidth: proto.inkWidth, origLeft: proto.origLeft}
		}
	}
	// kerning starts out as a copy of the first master's
	if len(d.masters) > 1 {
		first := d.masters[0].name
		for k, v := range d.kerning {
			if k.master == first {
				k.master = name
				d.kerning[k] = v
			}
		}
	}
	return m
}

func (d *document) firstLayer(g *glyph) *layer {
	if len(d.masters) == 0 {
		return nil
	}
	return g.layers[d.masters[0].name]
}

// addGlyph adds a glyph with the same metrics in every master.
func (d *document) addGlyph(name string, r rune, index sfnt.GlyphIndex, width, inkLeft, inkWidth float64) *glyph {
	g := &glyph{name: name, r: r, index: index, layers: make(map[string]*layer)}
	for _, m := range d.masters {
		g.layers[m.name] = &layer{doc: d, glyph: g, master: m, width: width,
			inkLeft: inkLeft, inkWidth: inkWidth, origLeft: inkLeft}
	}
	d.glyphs = append(d.glyphs, g)
	d.byName[name] = g
	if r != 0 {
		d.byRune[r] = g
	}
	return g
}

func (d *document) masterByIndex(i int) *master {
	if i < 0 || i >= len(d.masters) {
		return nil
	}
	return d.masters[i]
}

func (d *document) layerFor(g *glyph, m *master) *layer {
	if g == nil || m == nil {
		return nil
	}
	return g.layers[m.name]
}

func (d *document) kern(m *master, first, second *glyph, dir tool.Direction) (float64, bool) {
	v, ok := d.kerning[kernKey{m.name, first.name, second.name, dir}]
	return v, ok
}

func (d *document) setKern(m *master, first, second *glyph, dir tool.Direction, v float64) {
	k := kernKey{m.name, first.name, second.name, dir}
	old, had := d.kerning[k]
	if had && old == v {
		return
	}
	d.kerning[k] = v
	d.journal.record(second.name, step{
		undo: func() {
			if had {
				d.kerning[k] = old
			} else {
				delete(d.kerning, k)
			}
		},
		redo: func() { d.kerning[k] = v },
	})
}

func (d *document) exception(m *master, first, second *glyph, dir tool.Direction, side tool.ExceptionSide) bool {
	return d.exceptions[exceptionKey{kernKey{m.name, first.name, second.name, dir}, side}]
}

func (d *document) setException(m *master, first, second *glyph, dir tool.Direction, side tool.ExceptionSide, on bool) {
	for _, s := range []tool.ExceptionSide{tool.ExceptionFirst, tool.ExceptionSecond} {
		if side&s == 0 {
			continue
		}
		k := exceptionKey{kernKey{m.name, first.name, second.name, dir}, s}
		old := d.exceptions[k]
		if old == on {
			continue
		}
		d.putException(k, on)
		d.journal.record(second.name, step{
			undo: func() { d.putException(k, old) },
			redo: func() { d.putException(k, on) },
		})
	}
}

func (d *document) putException(k exceptionKey, on bool) {
	if on {
		d.exceptions[k] = true
	} else {
		delete(d.exceptions, k)
	}
}

type kernPair struct {
	first, second string
	value         float64
}

// kernPairs lists the kerning of one master and direction sorted by pair.
func (d *document) kernPairs(m *master, dir tool.Direction) []kernPair {
	var res []kernPair
	for k, v := range d.kerning {
		if k.master == m.name && k.dir == dir {
			res = append(res, kernPair{k.first, k.second, v})
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].first != res[j].first {
			return res[i].first < res[j].first
		}
		return res[i].second < res[j].second
	})
	return res
}
