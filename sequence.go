// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import "log"

// parseSequence turns the text of the edit view into layers. Characters
// map to glyphs, "/name" (ended by a space) inserts a glyph by name and
// "@N" switches the following glyphs to the N-th master, counting from 1.
func parseSequence(doc *document, text string) []*layer {
	var res []*layer
	m := doc.masterByIndex(0)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '@' && i+1 < len(runes) && isDigit(runes[i+1]):
			n := 0
			for i+1 < len(runes) && isDigit(runes[i+1]) {
				i++
				n = n*10 + int(runes[i]-'0')
			}
			if sel := doc.masterByIndex(n - 1); sel != nil {
				m = sel
			} else {
				log.Printf("No master @%d\n", n)
			}
			continue

		case r == '/' && i+1 < len(runes) && runes[i+1] != ' ' && runes[i+1] != '/':
			j := i + 1
			for j < len(runes) && runes[j] != ' ' && runes[j] != '/' {
				j++
			}
			name := string(runes[i+1 : j])
			if j < len(runes) && runes[j] == ' ' {
				j++
			}
			i = j - 1
			if l := doc.layerFor(doc.byName[name], m); l != nil {
				res = append(res, l)
			} else {
				log.Printf("No glyph named %q\n", name)
			}
			continue
		}
		if l := doc.layerFor(doc.byRune[r], m); l != nil {
			res = append(res, l)
		}
	}
	return res
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }
