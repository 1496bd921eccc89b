// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"dragkern/tool"
)

// charset is what gets loaded from a font: printable ASCII and Latin-1.
var charset = []struct{ lo, hi rune }{
	{0x20, 0x7e},
	{0xa0, 0xff},
}

// fontData returns the font at path, or Go Regular for an empty path.
func fontData(path string) ([]byte, error) {
	if path == "" {
		return goregular.TTF, nil
	}
	return os.ReadFile(path)
}

// loadDocument builds a document from a TrueType/OpenType font. Every
// master starts with the font's metrics and kerning.
func loadDocument(data []byte, masters []masterConfig) (*document, error) {
	f, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	var b sfnt.Buffer

	upem := f.UnitsPerEm()
	// at ppem == upem all values come out in font units
	ppem := fixed.I(int(upem))

	family, err := f.Name(&b, sfnt.NameIDFamily)
	if err != nil {
		family = "Untitled"
	}
	metrics, err := f.Metrics(&b, ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("reading font metrics: %w", err)
	}

	doc := newDocument(family, float64(upem))
	doc.font = f
	doc.ascender = float64(metrics.Ascent.Round())
	doc.descender = -float64(metrics.Descent.Round())

	if len(masters) == 0 {
		masters = defaultMasters()
	}
	doc.addMaster(masters[0].Name, false)

	for _, cr := range charset {
		for r := cr.lo; r <= cr.hi; r++ {
			gi, err := f.GlyphIndex(&b, r)
			if err != nil || gi == 0 {
				continue
			}
			if _, ok := doc.byName[glyphName(f, &b, gi, r)]; ok {
				// several code points on one glyph
				doc.byRune[r] = doc.byName[glyphName(f, &b, gi, r)]
				continue
			}
			bounds, adv, err := f.GlyphBounds(&b, gi, ppem, font.HintingNone)
			if err != nil {
				log.Printf("Couldn't read bounds of glyph %d: %v\n", gi, err)
				continue
			}
			inkLeft := float64(bounds.Min.X.Round())
			inkWidth := float64((bounds.Max.X - bounds.Min.X).Round())
			doc.addGlyph(glyphName(f, &b, gi, r), r, gi, float64(adv.Round()), inkLeft, inkWidth)
		}
	}

	first := doc.masters[0]
	pairs := 0
	for _, g1 := range doc.glyphs {
		for _, g2 := range doc.glyphs {
			k, err := f.Kern(&b, g1.index, g2.index, ppem, font.HintingNone)
			if err != nil || k == 0 {
				continue
			}
			v := float64(k.Round())
			for _, dir := range []tool.Direction{tool.LeftToRight, tool.RightToLeft} {
				doc.kerning[kernKey{first.name, g1.name, g2.name, dir}] = v
			}
			pairs++
		}
	}

	for _, m := range masters[1:] {
		doc.addMaster(m.Name, m.LinkMetrics)
	}
	log.Printf("Loaded %s: %d glyphs, %d kerning pairs, %d masters\n", family, len(doc.glyphs), pairs, len(doc.masters))
	return doc, nil
}

func glyphName(f *sfnt.Font, b *sfnt.Buffer, gi sfnt.GlyphIndex, r rune) string {
	name, err := f.GlyphName(b, gi)
	if err != nil || name == "" {
		return fmt.Sprintf("uni%04X", r)
	}
	return name
}
