// This file is part of the program "dragkern".
// Please see the LICENSE file for copyright information.

package main

import "log"

type step struct {
	undo, redo func()
}

type undoGroup struct {
	glyph string
	steps []step
}

// journal records document changes in undo groups. A group is opened with
// begin and either committed as one undo step or rolled back.
type journal struct {
	open  *undoGroup
	depth int
	undos []*undoGroup
	redos []*undoGroup
}

func (j *journal) begin(glyph string) {
	j.depth++
	if j.open != nil {
		return
	}
	j.open = &undoGroup{glyph: glyph}
}

func (j *journal) commit(glyph string) {
	if j.open == nil {
		return
	}
	j.depth--
	if j.depth > 0 {
		return
	}
	g := j.open
	j.open = nil
	if len(g.steps) == 0 {
		return
	}
	j.undos = append(j.undos, g)
	j.redos = nil
	log.Printf("Undo step for %s with %d changes\n", g.glyph, len(g.steps))
}

// rollback reverts everything recorded since begin.
func (j *journal) rollback(glyph string) {
	if j.open == nil {
		return
	}
	g := j.open
	j.open = nil
	j.depth = 0
	for i := len(g.steps) - 1; i >= 0; i-- {
		g.steps[i].undo()
	}
	log.Printf("Rolled back %d changes to %s\n", len(g.steps), g.glyph)
}

func (j *journal) record(glyph string, s step) {
	if j.open != nil {
		j.open.steps = append(j.open.steps, s)
		return
	}
	j.undos = append(j.undos, &undoGroup{glyph: glyph, steps: []step{s}})
	j.redos = nil
}

func (j *journal) canUndo() bool { return j.open == nil && len(j.undos) > 0 }
func (j *journal) canRedo() bool { return j.open == nil && len(j.redos) > 0 }

func (j *journal) undo() bool {
	if !j.canUndo() {
		return false
	}
	g := j.undos[len(j.undos)-1]
	j.undos = j.undos[:len(j.undos)-1]
	for i := len(g.steps) - 1; i >= 0; i-- {
		g.steps[i].undo()
	}
	j.redos = append(j.redos, g)
	return true
}

func (j *journal) redo() bool {
	if !j.canRedo() {
		return false
	}
	g := j.redos[len(j.redos)-1]
	j.redos = j.redos[:len(j.redos)-1]
	for _, s := range g.steps {
		s.redo()
	}
	j.undos = append(j.undos, g)
	return true
}
