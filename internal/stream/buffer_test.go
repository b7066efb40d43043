package stream

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/samsaffron/term-diff/internal/ui"
)

func TestHunkBufferFlushEmpty(t *testing.T) {
	rec := &recorder{}
	var buf HunkBuffer

	assert.False(t, buf.Flush(rec, nil))
	assert.Empty(t, rec.events)
}

func TestHunkBufferFlushPair(t *testing.T) {
	rec := &recorder{}
	var buf HunkBuffer
	buf.PushMinus(" a")
	buf.PushMinus(" b")
	buf.PushPlus(" c")

	require.True(t, buf.Flush(rec, nil))
	require.Len(t, rec.events, 1)
	assert.Equal(t, event{kind: "paired", minus: []string{" a", " b"}, plus: []string{" c"}}, rec.events[0])
	assert.True(t, buf.Empty())

	// A second flush has nothing left to paint
	assert.False(t, buf.Flush(rec, nil))
	assert.Len(t, rec.events, 1)
}

func TestHunkBufferFlushOneSided(t *testing.T) {
	rec := &recorder{}
	var buf HunkBuffer
	buf.PushPlus(" only")

	require.True(t, buf.Flush(rec, nil))
	assert.Equal(t, event{kind: "paired", plus: []string{" only"}}, rec.events[0])
}

func TestDriverFlushesBetweenChangeBlocks(t *testing.T) {
	rec := &recorder{}
	d := New(Options{Syntax: fakeFinder{}}, rec)

	err := d.Run(Lines([]string{
		"diff --git a/x.go b/x.go",
		"@@ -1,3 +1,3 @@",
		"-a",
		"+b",
		"-c",
		"+d",
	}))
	require.NoError(t, err)

	var paired []event
	for _, e := range rec.events {
		if e.kind == "paired" {
			paired = append(paired, e)
		}
	}
	require.Len(t, paired, 2)
	assert.Equal(t, []string{" a"}, paired[0].minus)
	assert.Equal(t, []string{" b"}, paired[0].plus)
	assert.Equal(t, []string{" c"}, paired[1].minus)
	assert.Equal(t, []string{" d"}, paired[1].plus)
}

func TestPrepare(t *testing.T) {
	tests := []struct {
		name  string
		line  string
		width int
		want  string
	}{
		{"marker replaced", "-old", 0, " old"},
		{"plus marker", "+new", 0, " new"},
		{"context", " same", 0, " same"},
		{"empty", "", 0, ""},
		{"empty padded", "", 3, "   "},
		{"padded", "+ab", 6, " ab   "},
		{"not truncated", "+abcdef", 3, " abcdef"},
		{"tab counts to next stop", "+\tx", 10, " \tx "},
		{"wide runes", "+日本", 7, " 日本  "},
		{"multi-byte first rune", "日本", 0, " 本"},
		{"invalid first byte", "\xffab", 0, " ab"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Prepare(tt.line, tt.width))
		})
	}
}

func TestPrepareKeepsValidUTF8(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		line := rapid.String().Draw(t, "line")
		assert.True(t, utf8.ValidString(Prepare(line, 0)))
	})
}

func TestPrepareWidthMatchesDisplayWidth(t *testing.T) {
	got := Prepare("-héllo wörld", 20)
	assert.Equal(t, 20, ui.DisplayWidth(got))
}
