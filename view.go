// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"image"

	"dragkern/tool"
)

// editView lays out a glyph sequence on one line and is the tool's host.
// Screen coordinates grow downwards, view coordinates grow upwards from the
// baseline.
type editView struct {
	doc    *document
	layers []*layer

	scale           float64
	direction       tool.Direction
	showKerning     bool
	spacingEditable bool

	// screen position of the first glyph origin
	left, baseline float64
	origins        []float64

	redraw func()
}

func newEditView(doc *document) *editView {
	return &editView{
		doc:             doc,
		scale:           0.15,
		showKerning:     true,
		spacingEditable: true,
		redraw:          func() {},
	}
}

func (v *editView) setText(text string) {
	v.layers = parseSequence(v.doc, text)
	v.layout()
}

// frame places the line in the canvas and lays it out again.
func (v *editView) frame(left, baseline float64) {
	v.left, v.baseline = left, baseline
	v.layout()
}

func (v *editView) layout() {
	v.origins = v.origins[:0]
	x := v.left
	for i, l := range v.layers {
		if i > 0 && v.showKerning {
			if k, ok := v.pairKerning(v.layers[i-1], l); ok {
				x += k * v.scale
			}
		}
		v.origins = append(v.origins, x)
		x += l.width * v.scale
	}
}

func (v *editView) pairKerning(first, second *layer) (float64, bool) {
	if first.master != second.master {
		return 0, false
	}
	return v.doc.kern(first.master, first.glyph, second.glyph, v.direction)
}

// toView converts a screen position.
func (v *editView) toView(p image.Point) tool.Point {
	return tool.Point{X: float64(p.X), Y: v.baseline - float64(p.Y)}
}

// toScreenY converts a view y back.
func (v *editView) toScreenY(y float64) int {
	return int(v.baseline - y)
}

func (v *editView) Scale() float64            { return v.scale }
func (v *editView) Direction() tool.Direction { return v.direction }
func (v *editView) KerningShown() bool        { return v.showKerning }
func (v *editView) SpacingEditable() bool     { return v.spacingEditable }
func (v *editView) Redraw()                   { v.redraw() }

func (v *editView) Layers() []tool.Layer {
	res := make([]tool.Layer, len(v.layers))
	for i, l := range v.layers {
		res[i] = l
	}
	return res
}

func (v *editView) LayerOrigin(i int) tool.Point {
	if i < 0 || i >= len(v.origins) {
		return tool.Point{}
	}
	return tool.Point{X: v.origins[i]}
}

func (v *editView) LayerIndexAt(p tool.Point) (int, bool) {
	for i, l := range v.layers {
		x := v.origins[i]
		if p.X >= x && p.X < x+l.width*v.scale {
			return i, true
		}
	}
	return 0, false
}

func (v *editView) Kerning(first, second tool.Layer, dir tool.Direction) (float64, bool) {
	l1, l2 := first.(*layer), second.(*layer)
	if l1.master != l2.master {
		return 0, false
	}
	return v.doc.kern(l1.master, l1.glyph, l2.glyph, dir)
}

func (v *editView) SetKerning(first, second tool.Layer, dir tool.Direction, value float64) {
	l1, l2 := first.(*layer), second.(*layer)
	v.doc.setKern(l1.master, l1.glyph, l2.glyph, dir, value)
	v.layout()
	v.redraw()
}

func (v *editView) SetKerningException(first, second tool.Layer, dir tool.Direction, side tool.ExceptionSide, on bool) {
	l1, l2 := first.(*layer), second.(*layer)
	v.doc.setException(l1.master, l1.glyph, l2.glyph, dir, side, on)
}

func (v *editView) BeginUndo(l tool.Layer)    { v.doc.journal.begin(l.Name()) }
func (v *editView) CommitUndo(l tool.Layer)   { v.doc.journal.commit(l.Name()) }
func (v *editView) RollbackUndo(l tool.Layer) { v.doc.journal.rollback(l.Name()); v.layout() }
