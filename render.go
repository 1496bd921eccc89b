// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"image"
	"image/color"
	"log"
	"math"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const glyphCacheSize = 512

var glyphColor = color.RGBA{0xdc, 0xdc, 0xdc, 0xff}

type glyphKey struct {
	index sfnt.GlyphIndex
	ppem  fixed.Int26_6
}

// glyphImage is a rasterized outline. offset is the top left corner of
// the image relative to the glyph origin on the baseline.
type glyphImage struct {
	img    *image.RGBA
	offset image.Point
}

// renderer rasterizes outlines of the document's font.
type renderer struct {
	font  *sfnt.Font
	buf   sfnt.Buffer
	cache *lru.Cache
}

func newRenderer(f *sfnt.Font) *renderer {
	cache, err := lru.New(glyphCacheSize)
	if err != nil {
		log.Fatalf("Couldn't create glyph cache: %v\n", err)
	}
	return &renderer{font: f, cache: cache}
}

// glyph returns the outline of gi with upem font units drawn as
// upem*scale pixels, nil for empty glyphs.
func (r *renderer) glyph(gi sfnt.GlyphIndex, upem, scale float64) *glyphImage {
	if r == nil || r.font == nil {
		return nil
	}
	key := glyphKey{gi, fixed.Int26_6(math.Round(upem * scale * 64))}
	if key.ppem <= 0 {
		return nil
	}
	if v, ok := r.cache.Get(key); ok {
		return v.(*glyphImage)
	}
	img := r.rasterize(key)
	r.cache.Add(key, img)
	return img
}

func (r *renderer) rasterize(key glyphKey) *glyphImage {
	bounds, _, err := r.font.GlyphBounds(&r.buf, key.index, key.ppem, font.HintingNone)
	if err != nil {
		log.Printf("Couldn't read bounds of glyph %d: %v\n", key.index, err)
		return nil
	}
	lo := image.Point{bounds.Min.X.Floor(), bounds.Min.Y.Floor()}
	hi := image.Point{bounds.Max.X.Ceil(), bounds.Max.Y.Ceil()}
	if hi.X <= lo.X || hi.Y <= lo.Y {
		return nil
	}
	segs, err := r.font.LoadGlyph(&r.buf, key.index, key.ppem, nil)
	if err != nil {
		log.Printf("Couldn't load glyph %d: %v\n", key.index, err)
		return nil
	}

	w, h := hi.X-lo.X, hi.Y-lo.Y
	z := vector.NewRasterizer(w, h)
	pt := func(p fixed.Point26_6) (float32, float32) {
		return float32(p.X)/64 - float32(lo.X), float32(p.Y)/64 - float32(lo.Y)
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(pt(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			z.LineTo(pt(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case sfnt.SegmentOpCubeTo:
			bx, by := pt(s.Args[0])
			cx, cy := pt(s.Args[1])
			dx, dy := pt(s.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	z.Draw(img, img.Bounds(), image.NewUniform(glyphColor), image.Point{})
	return &glyphImage{img: img, offset: lo}
}

// purge drops all cached bitmaps.
func (r *renderer) purge() {
	if r != nil {
		r.cache.Purge()
	}
}
