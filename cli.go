// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"dragkern/tool"
)

type CLIOpts struct {
	doLog    bool
	fontPath string
	text     string
	list     bool
	kern     bool
	zoom     int
}

func parseCLIOpts() CLIOpts {
	var opt CLIOpts
	flag.BoolVar(&opt.doLog, "log", false, "Print debugging output to stdout")
	flag.StringVar(&opt.fontPath, "font", "", "TrueType/OpenType font to edit. Defaults to the last font used, or Go Regular.")
	flag.StringVar(&opt.text, "text", "", "Glyph sequence to show. @N selects the N-th master, /name inserts a glyph by name.")
	flag.BoolVar(&opt.list, "l", false, "List the metrics of the glyphs in the sequence and exit")
	flag.BoolVar(&opt.kern, "kern", false, "List the kerning pairs of the first master and exit")
	flag.IntVar(&opt.zoom, "scale", -1, "View scale in percent")
	flag.Parse()

	return opt
}

// applyCLIOpts lets the command line override the stored settings.
func applyCLIOpts(opt CLIOpts, conf *config) {
	if opt.fontPath != "" {
		conf.FontPath = opt.fontPath
	}
	if opt.text != "" {
		conf.LastText = opt.text
	}
	if opt.zoom > 0 {
		if opt.zoom > 400 {
			fmt.Fprintf(os.Stderr, "Scale of '%d' too high, setting to maximum of 400.\n", opt.zoom)
			conf.Zoom = 400
		} else {
			conf.Zoom = opt.zoom
		}
	}
}

func doCLI(opt CLIOpts, doc *document, conf *config) {
	if opt.list {
		listMetrics(os.Stdout, doc, conf.LastText)
		cleanupExit(0)
	}

	if opt.kern {
		listKerning(os.Stdout, doc)
		cleanupExit(0)
	}
}

func listMetrics(w io.Writer, doc *document, text string) {
	for _, l := range parseSequence(doc, text) {
		fmt.Fprintf(w, "%s\t%s\tLSB %g\tRSB %g\twidth %g\n", l.master.name, l.glyph.name, l.LSB(), l.RSB(), l.width)
	}
}

func listKerning(w io.Writer, doc *document) {
	m := doc.masterByIndex(0)
	pairs := doc.kernPairs(m, tool.LeftToRight)
	fmt.Fprintf(w, "%s: %d pairs\n", m.name, len(pairs))
	for _, p := range pairs {
		fmt.Fprintf(w, "\t%s %s %g\n", p.first, p.second, p.value)
	}
}

func cleanupExit(exitCode int) {
	os.Exit(exitCode)
}
