package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/samsaffron/term-diff/internal/ui"
)

func drawnEnv() Env {
	return Env{
		HasSyntax:   true,
		CommitStyle: ui.SectionBox,
		FileStyle:   ui.SectionUnderline,
		HunkStyle:   ui.SectionBox,
	}
}

func plainEnv(hasSyntax bool) Env {
	return Env{
		HasSyntax:   hasSyntax,
		CommitStyle: ui.SectionPlain,
		FileStyle:   ui.SectionPlain,
		HunkStyle:   ui.SectionPlain,
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		state   State
		line    string
		env     Env
		next    State
		actions []Action
	}{
		{"commit drawn", StateUnknown, "commit abc123", drawnEnv(), StateCommitMeta,
			[]Action{ActionFlush, ActionDrawHeader}},
		{"commit plain", StateHunkZero, "commit abc123", plainEnv(true), StateCommitMeta,
			[]Action{ActionFlush, ActionEmitRaw}},
		{"diff drawn", StateCommitMeta, "diff --git a/x.go b/x.go", drawnEnv(), StateFileMeta,
			[]Action{ActionFlush, ActionSelectSyntax, ActionDrawHeader}},
		{"diff plain", StateHunkPlus, "diff --git a/x.go b/x.go", plainEnv(true), StateFileMeta,
			[]Action{ActionFlush, ActionSelectSyntax, ActionEmitRaw}},
		{"hunk header drawn", StateFileMeta, "@@ -1,2 +1,2 @@ func f()", drawnEnv(), StateHunkMeta,
			[]Action{ActionFlush, ActionDrawHeader}},
		{"hunk header plain", StateHunkMinus, "@@ -1 +1 @@", plainEnv(false), StateHunkMeta,
			[]Action{ActionFlush, ActionEmitRaw}},
		{"file meta suppressed", StateFileMeta, "index 123..456 100644", drawnEnv(), StateFileMeta,
			[]Action{ActionSuppress}},
		{"file meta plain", StateFileMeta, "--- a/x.go", plainEnv(true), StateFileMeta,
			[]Action{ActionEmitRaw}},
		{"preamble", StateUnknown, "Author: someone", drawnEnv(), StateUnknown,
			[]Action{ActionEmitRaw}},
		{"commit meta body", StateCommitMeta, "Date: today", drawnEnv(), StateCommitMeta,
			[]Action{ActionEmitRaw}},
		{"minus after meta", StateHunkMeta, "-old", drawnEnv(), StateHunkMinus,
			[]Action{ActionPushMinus}},
		{"minus after minus", StateHunkMinus, "-old", drawnEnv(), StateHunkMinus,
			[]Action{ActionPushMinus}},
		{"minus after plus", StateHunkPlus, "-old", drawnEnv(), StateHunkMinus,
			[]Action{ActionFlush, ActionPushMinus}},
		{"plus after minus", StateHunkMinus, "+new", drawnEnv(), StateHunkPlus,
			[]Action{ActionPushPlus}},
		{"plus after zero", StateHunkZero, "+new", drawnEnv(), StateHunkPlus,
			[]Action{ActionPushPlus}},
		{"context", StateHunkPlus, " same", drawnEnv(), StateHunkZero,
			[]Action{ActionFlush, ActionPaintLine}},
		{"empty line in hunk", StateHunkMinus, "", drawnEnv(), StateHunkZero,
			[]Action{ActionFlush, ActionPaintLine}},
		{"no newline marker", StateHunkPlus, `\ No newline at end of file`, drawnEnv(), StateHunkZero,
			[]Action{ActionFlush, ActionPaintLine}},
		{"hunk body without syntax", StateHunkMeta, "-old", plainEnv(false), StateHunkMeta,
			[]Action{ActionEmitRaw}},
		{"diff prefix wins in hunk", StateHunkZero, "diff --cc x.go", drawnEnv(), StateFileMeta,
			[]Action{ActionFlush, ActionSelectSyntax, ActionDrawHeader}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.state, tt.line, tt.env)
			assert.Equal(t, tt.next, got.Next)
			assert.Equal(t, tt.actions, got.Actions)
		})
	}
}

func TestStateInHunk(t *testing.T) {
	in := []State{StateHunkMeta, StateHunkZero, StateHunkMinus, StateHunkPlus}
	out := []State{StateUnknown, StateCommitMeta, StateFileMeta}
	for _, s := range in {
		assert.True(t, s.InHunk(), s.String())
	}
	for _, s := range out {
		assert.False(t, s.InHunk(), s.String())
	}
}
