// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aarzilli/nucular"
	"github.com/aarzilli/nucular/command"
	"github.com/aarzilli/nucular/font"
	"github.com/aarzilli/nucular/label"
	"github.com/aarzilli/nucular/rect"
	nstyle "github.com/aarzilli/nucular/style"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"dragkern/tool"
)

type dkcontext struct {
	config       *config
	doc          *document
	view         *editView
	tool         *tool.Tool
	renderer     *renderer
	views        *ViewStack
	masterWindow *nucular.MasterWindow

	textEditor nucular.TextEditor
	rtl        bool
	// the window system does not report modifiers with pointer events,
	// they are toggled in the side panel instead
	moveGlyph, forceKern, fine, snap bool
	status                           string
}

const (
	canvasMargin = 40
	labelHeight  = 20
)

var (
	canvasColor    = color.RGBA{0x20, 0x20, 0x24, 0xff}
	boxColor       = color.RGBA{0x30, 0x30, 0x38, 0xff}
	metricColor    = color.RGBA{0x60, 0x60, 0x70, 0xff}
	handleColor    = color.RGBA{0x22, 0xbb, 0x45, 0x90}
	labelColor     = color.RGBA{0xff, 0xff, 0xff, 0xff}
	lockedColor    = color.RGBA{0xff, 0x8c, 0x00, 0xff}
	exceptionColor = color.RGBA{0xff, 0x46, 0x46, 0xff}
)

func resetUI(ctx *dkcontext) {
	ctx.views = NewViewStack()
	ctx.views.Push(editorView)

	ctx.textEditor.Flags = nucular.EditField
	ctx.textEditor.Buffer = []rune(ctx.config.LastText)
	ctx.view.setText(ctx.config.LastText)
}

func updatefn(ctx *dkcontext, w *nucular.Window) {
	ctx.views.Peek()(ctx, w)
}

func (ctx *dkcontext) modifiers() tool.Modifiers {
	var mods tool.Modifiers
	if ctx.moveGlyph {
		mods |= tool.ModAlt
	}
	if ctx.forceKern {
		mods |= tool.ModCommand
	}
	if ctx.fine {
		mods |= tool.ModFine
	}
	if ctx.snap {
		mods |= tool.ModSnap
	}
	return mods
}

func editorView(ctx *dkcontext, w *nucular.Window) {
	w.MenubarBegin()
	w.Row(20).Static(60, 60)
	if w := w.Menu(label.TA("Edit", "LC"), 160, nil); w != nil {
		w.Row(20).Dynamic(1)
		if w.MenuItem(label.TA("Undo  Ctrl+Z", "LC")) {
			undo(ctx)
		}
		if w.MenuItem(label.TA("Redo  Ctrl+Shift+Z", "LC")) {
			redo(ctx)
		}
	}
	if w := w.Menu(label.TA("About", "LC"), 120, nil); w != nil {
		w.Row(20).Dynamic(1)
		if w.MenuItem(label.T("Keys")) {
			pushView(ctx, keysView)
		}
		if w.MenuItem(label.T("Version")) {
			pushView(ctx, versionView)
		}
	}
	w.MenubarEnd()

	w.Row(25).Ratio(0.8, 0.2)
	ctx.textEditor.Edit(w)
	if text := string(ctx.textEditor.Buffer); text != ctx.config.LastText {
		ctx.config.LastText = text
		ctx.view.setText(text)
		saveConfig(ctx.config)
	}
	w.Label(fmt.Sprintf("%s, %d glyphs", ctx.doc.family, len(ctx.view.layers)), "RC")

	if w.TreePush(nucular.TreeTab, "View", false) {
		w.Row(20).Dynamic(2)
		if w.CheckboxText("Show kerning", &ctx.view.showKerning) {
			ctx.view.layout()
		}
		w.CheckboxText("Spacing editable", &ctx.view.spacingEditable)
		if w.CheckboxText("Right to left", &ctx.rtl) {
			ctx.view.direction = tool.LeftToRight
			if ctx.rtl {
				ctx.view.direction = tool.RightToLeft
			}
			ctx.view.layout()
		}
		show := ctx.tool.ShowMeasurements()
		if w.CheckboxText("Show measurements", &show) {
			ctx.tool.SetShowMeasurements(show)
		}

		w.Row(25).Ratio(0.5, 0.5)
		if w.PropertyInt("Zoom %:", 1, &ctx.config.Zoom, 400, 1, 1) {
			setZoom(ctx, ctx.config.Zoom)
			saveConfig(ctx.config)
		}
		if w.CheckboxText("Live update", &ctx.tool.LiveUpdate) {
			ctx.config.LiveUpdate = ctx.tool.LiveUpdate
			saveConfig(ctx.config)
		}
		w.TreePop()
	}

	if w.TreePush(nucular.TreeTab, "Drag", true) {
		w.Row(20).Dynamic(4)
		w.CheckboxText("Move glyph", &ctx.moveGlyph)
		if w.Input().Mouse.HoveringRect(w.LastWidgetBounds) {
			w.Tooltip("Drag shifts the outline inside its advance width.")
		}
		w.CheckboxText("Force kerning", &ctx.forceKern)
		if w.Input().Mouse.HoveringRect(w.LastWidgetBounds) {
			w.Tooltip("Kern even when starting on a sidebearing handle.")
		}
		w.CheckboxText("Fine", &ctx.fine)
		w.CheckboxText("Snap", &ctx.snap)

		w.Row(15).Dynamic(len(ctx.doc.masters))
		for i, m := range ctx.doc.masters {
			if tool.MetricsLocked(&layer{master: m}) {
				w.LabelColored(fmt.Sprintf("@%d %s (linked)", i+1, m.name), "LC", lockedColor)
			} else {
				w.Label(fmt.Sprintf("@%d %s", i+1, m.name), "LC")
			}
		}
		w.TreePop()
	}

	w.Row(w.LayoutAvailableHeight() - labelHeight - 5).Dynamic(1)
	canvas(ctx, w)

	w.Row(labelHeight).Dynamic(1)
	w.Label(ctx.status, "LC")
}

// pushView shows f over the editor. Only one view is stacked at a time.
func pushView(ctx *dkcontext, f ViewFunc) {
	if ctx.views.Len() > 1 {
		return
	}
	ctx.tool.Cancel()
	ctx.views.Push(f)
}

func setZoom(ctx *dkcontext, zoom int) {
	ctx.view.scale = float64(zoom) / 100
	ctx.view.layout()
}

func undo(ctx *dkcontext) {
	if ctx.tool.State() != tool.Idle {
		return
	}
	if ctx.doc.journal.undo() {
		ctx.view.layout()
		ctx.status = "Undo"
		(*ctx.masterWindow).Changed()
	}
}

func redo(ctx *dkcontext) {
	if ctx.tool.State() != tool.Idle {
		return
	}
	if ctx.doc.journal.redo() {
		ctx.view.layout()
		ctx.status = "Redo"
		(*ctx.masterWindow).Changed()
	}
}

// escape cancels a running drag.
func escape(ctx *dkcontext, p tool.Point) {
	if ctx.tool.State() != tool.Idle {
		ctx.status = "Cancelled"
	}
	ctx.tool.KeyDown('\x1b', p)
}

// canvas feeds pointer and key events to the tool, then paints the line
// of glyphs and the tool's overlays.
func canvas(ctx *dkcontext, w *nucular.Window) {
	bounds, out := w.Custom(nstyle.WidgetStateInactive)
	if out == nil {
		return
	}
	v := ctx.view
	v.frame(float64(bounds.X+canvasMargin), float64(bounds.Y+canvasMargin)+ctx.doc.ascender*v.scale)

	mi := &w.Input().Mouse
	p := v.toView(mi.Pos)
	inside := bounds.Contains(mi.Pos)
	switch {
	case mi.Pressed(mouse.ButtonLeft) && inside:
		if ctx.tool.PointerDown(p, ctx.modifiers()) {
			ctx.status = targetStatus(ctx.tool.Target())
		}
	case mi.Released(mouse.ButtonLeft):
		if ctx.tool.State() != tool.Idle {
			ctx.tool.PointerUp(p)
			ctx.status = fmt.Sprintf("%s done", ctx.status)
		}
	case mi.Down(mouse.ButtonLeft) && mi.Delta.X != 0:
		ctx.tool.PointerDrag(p, ctx.modifiers())
	}

	kb := w.KeyboardOnHover(bounds)
	ctrl := false
	for _, e := range kb.Keys {
		switch {
		case e.Code == key.CodeEscape:
			escape(ctx, p)
		case e.Code == key.CodeZ && e.Modifiers&key.ModControl != 0:
			if e.Modifiers&key.ModShift != 0 {
				redo(ctx)
			} else {
				undo(ctx)
			}
		}
		if e.Modifiers&key.ModControl != 0 {
			ctrl = true
		}
	}
	if !ctrl {
		for _, r := range kb.Text {
			if ctx.tool.KeyDown(r, p) {
				ctx.status = fmt.Sprintf("Exception %q", r)
			}
		}
	}

	out.FillRect(bounds, 0, canvasColor)
	face := (*ctx.masterWindow).Style().Font
	layers := v.layers
	for i, l := range layers {
		drawLayer(ctx, out, l, v.origins[i])
		if i > 0 && exceptionShown(ctx, layers[i-1], l) {
			x := int(v.origins[i])
			y := v.toScreenY(ctx.doc.descender * v.scale)
			out.FillTriangle(image.Point{x - 5, y + 10}, image.Point{x + 5, y + 10}, image.Point{x, y}, exceptionColor)
		}
	}
	base := int(v.baseline)
	out.StrokeLine(image.Point{bounds.X, base}, image.Point{bounds.X + bounds.W, base}, 1, metricColor)

	if inside {
		ctx.tool.ClearHover()
		for i := range layers {
			if o, ok := ctx.tool.Overlay(i, p); ok {
				r := o.Handle.Rect
				out.FillRect(rect.Rect{
					X: int(r.X),
					Y: v.toScreenY(r.Y + r.H),
					W: int(math.Ceil(r.W)),
					H: int(r.H),
				}, 0, handleColor)
				drawLabel(ctx, out, face, o)
			}
		}
	}
	if o, ok := ctx.tool.Measurement(p); ok {
		drawLabel(ctx, out, face, o)
	}
}

func drawLayer(ctx *dkcontext, out *command.Buffer, l *layer, origin float64) {
	v := ctx.view
	m := l.master
	top := v.toScreenY(m.ascender * v.scale)
	bottom := v.toScreenY(m.descender * v.scale)
	left := int(math.Round(origin))
	right := int(math.Round(origin + l.width*v.scale))
	out.FillRect(rect.Rect{X: left, Y: top, W: right - left, H: bottom - top}, 0, boxColor)
	out.StrokeLine(image.Point{left, top}, image.Point{left, bottom}, 1, metricColor)
	out.StrokeLine(image.Point{right, top}, image.Point{right, bottom}, 1, metricColor)

	gi := ctx.renderer.glyph(l.glyph.index, ctx.doc.upem, v.scale)
	if gi == nil {
		return
	}
	x := int(math.Round(origin+(l.inkLeft-l.origLeft)*v.scale)) + gi.offset.X
	y := int(v.baseline) + gi.offset.Y
	b := gi.img.Bounds()
	out.DrawImage(rect.Rect{X: x, Y: y, W: b.Dx(), H: b.Dy()}, gi.img)
}

func exceptionShown(ctx *dkcontext, first, second *layer) bool {
	if first.master != second.master {
		return false
	}
	for _, side := range []tool.ExceptionSide{tool.ExceptionFirst, tool.ExceptionSecond} {
		if ctx.doc.exception(first.master, first.glyph, second.glyph, ctx.view.direction, side) {
			return true
		}
	}
	return false
}

func drawLabel(ctx *dkcontext, out *command.Buffer, face font.Face, o tool.Overlay) {
	if o.Label == "" {
		return
	}
	width := nucular.FontWidth(face, o.Label)
	x := int(o.LabelX)
	if o.LabelAlign == tool.AlignRight {
		x -= width
	}
	y := ctx.view.toScreenY(o.LabelY) - labelHeight/2
	c := labelColor
	if o.Label == tool.LockedLabel {
		c = lockedColor
	}
	out.DrawText(rect.Rect{X: x, Y: y, W: width, H: labelHeight}, o.Label, face, c)
}

func targetStatus(t tool.Target) string {
	switch tg := t.(type) {
	case tool.Kerning:
		return fmt.Sprintf("Kerning %s %s", tg.First.Name(), tg.Second.Name())
	case tool.LeftSidebearing:
		return fmt.Sprintf("LSB of %s", tg.L.Name())
	case tool.RightSidebearing:
		return fmt.Sprintf("RSB of %s", tg.L.Name())
	case tool.Move:
		return fmt.Sprintf("Moving %s", tg.L.Name())
	}
	return ""
}

func keysView(ctx *dkcontext, w *nucular.Window) {
	lines := []string{
		"Drag between glyphs to kern the pair.",
		"Drag the edge of a glyph to change its sidebearing.",
		"Move glyph: shift the outline, the width stays.",
		"Force kerning: kern even from a sidebearing handle.",
		"Fine: a tenth of the motion. Snap: round to 10 units.",
		"a / s / d: kerning exception on the left, right or both glyphs.",
		"A / S / D: remove the exception.",
		"Escape: cancel the drag. Ctrl+Z / Ctrl+Shift+Z: undo / redo.",
		"@2 in the text uses the second master, /name inserts a glyph.",
	}
	for _, l := range lines {
		w.Row(20).Dynamic(1)
		w.Label(l, "LC")
	}
	w.Row(20).Dynamic(2)
	w.Spacing(1)
	if w.ButtonText("OK") {
		ctx.views.Pop()
	}
}

func versionView(ctx *dkcontext, w *nucular.Window) {
	w.Row(50).Dynamic(1)
	w.Label("Version", "CB")
	w.Row(50).Dynamic(1)
	w.Label(version, "CB")
	w.Row(50).Dynamic(1)
	w.Spacing(1)
	w.Row(20).Dynamic(2)
	w.Spacing(1)
	if w.ButtonText("OK") {
		ctx.views.Pop()
	}
}
