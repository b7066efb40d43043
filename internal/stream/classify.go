package stream

import (
	"strings"

	"github.com/samsaffron/term-diff/internal/ui"
)

// Action is one side effect the driver performs for a classified line.
type Action int

const (
	ActionFlush        Action = iota // paint and clear the hunk buffer
	ActionSelectSyntax               // choose the syntax context from a "diff --" line
	ActionDrawHeader                 // draw the header of the region just entered
	ActionEmitRaw                    // write the original line unchanged
	ActionSuppress                   // drop the line (file metadata under a drawn file header)
	ActionPushMinus                  // append the prepared line to the removed run
	ActionPushPlus                   // append the prepared line to the added run
	ActionPaintLine                  // paint the prepared line as unchanged context
)

func (a Action) String() string {
	switch a {
	case ActionFlush:
		return "flush"
	case ActionSelectSyntax:
		return "select-syntax"
	case ActionDrawHeader:
		return "draw-header"
	case ActionEmitRaw:
		return "emit-raw"
	case ActionSuppress:
		return "suppress"
	case ActionPushMinus:
		return "push-minus"
	case ActionPushPlus:
		return "push-plus"
	case ActionPaintLine:
		return "paint-line"
	default:
		return "unknown"
	}
}

// Env is the part of the driver's state the classifier reads besides State.
type Env struct {
	HasSyntax   bool // a syntax context is selected for the current file
	CommitStyle ui.SectionStyle
	FileStyle   ui.SectionStyle
	HunkStyle   ui.SectionStyle
}

// Transition is the outcome of classifying one line: the next state and the
// actions to run, in order.
type Transition struct {
	Next    State
	Actions []Action
}

// Transition summary (rows: current state, columns: entered state).
// F = flush the hunk buffer, H = draw header or emit raw, P = push, L = paint line.
//
//	            commit  file  hunk  zero  minus  plus
//	unknown     F H     F H   F H
//	commit-meta F H     F H   F H
//	file-meta   F H     F H   F H
//	hunk-meta   F H     F H   F H   F L   P      P
//	hunk-zero   F H     F H   F H   F L   P      P
//	hunk-minus  F H     F H   F H   F L   P      P
//	hunk-plus   F H     F H   F H   F L   F P    P
//
// Flushes out of hunk-meta and hunk-zero never paint anything because the
// buffer is always empty in those states.

// Classify decides the next state and the actions for line, which must
// already have escape sequences stripped. It has no side effects.
func Classify(state State, line string, env Env) Transition {
	switch {
	case strings.HasPrefix(line, "commit"):
		return enterSection(StateCommitMeta, env.CommitStyle)
	case strings.HasPrefix(line, "diff --"):
		t := enterSection(StateFileMeta, env.FileStyle)
		t.Actions = []Action{ActionFlush, ActionSelectSyntax, t.Actions[1]}
		return t
	case strings.HasPrefix(line, "@@"):
		return enterSection(StateHunkMeta, env.HunkStyle)
	case state.InHunk() && env.HasSyntax:
		return classifyHunkLine(state, line)
	case state == StateFileMeta && env.FileStyle != ui.SectionPlain:
		// index, ---, +++ and mode lines are summarised by the drawn header
		return Transition{Next: state, Actions: []Action{ActionSuppress}}
	default:
		return Transition{Next: state, Actions: []Action{ActionEmitRaw}}
	}
}

func enterSection(next State, style ui.SectionStyle) Transition {
	if style == ui.SectionPlain {
		return Transition{Next: next, Actions: []Action{ActionFlush, ActionEmitRaw}}
	}
	return Transition{Next: next, Actions: []Action{ActionFlush, ActionDrawHeader}}
}

func classifyHunkLine(state State, line string) Transition {
	if line == "" {
		return Transition{Next: StateHunkZero, Actions: []Action{ActionFlush, ActionPaintLine}}
	}
	switch line[0] {
	case '-':
		// A removed line after added lines starts a new change block
		if state == StateHunkPlus {
			return Transition{Next: StateHunkMinus, Actions: []Action{ActionFlush, ActionPushMinus}}
		}
		return Transition{Next: StateHunkMinus, Actions: []Action{ActionPushMinus}}
	case '+':
		return Transition{Next: StateHunkPlus, Actions: []Action{ActionPushPlus}}
	default:
		return Transition{Next: StateHunkZero, Actions: []Action{ActionFlush, ActionPaintLine}}
	}
}
