package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyle() lipgloss.Style {
	return NewRenderer(&bytes.Buffer{}, ColorNever).NewStyle()
}

func TestParseSectionStyle(t *testing.T) {
	tests := []struct {
		input   string
		want    SectionStyle
		wantErr bool
	}{
		{"plain", SectionPlain, false},
		{"box", SectionBox, false},
		{" Underline ", SectionUnderline, false},
		{"", "", true},
		{"boxed", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSectionStyle(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDrawFuncForPlainPanics(t *testing.T) {
	assert.Panics(t, func() { DrawFuncFor(SectionPlain) })
	assert.Panics(t, func() { DrawFuncFor(SectionStyle("zigzag")) })
	assert.NotPanics(t, func() { DrawFuncFor(SectionBox) })
	assert.NotPanics(t, func() { DrawFuncFor(SectionUnderline) })
}

func TestWriteBoxed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBoxed(&buf, "main.go", 0, plainStyle(), false))

	want := "┌─────────┐\n" +
		"│ main.go │\n" +
		"└─────────┘\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBoxedWithLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBoxed(&buf, "abc", 12, plainStyle(), true))

	want := "┌─────┐\n" +
		"│ abc │\n" +
		"└─────┴─────\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteBoxedTruncatesWideContent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteBoxed(&buf, "abcdefghijkl", 10, plainStyle(), false))

	want := "┌────────┐\n" +
		"│ abcde… │\n" +
		"└────────┘\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteUnderlined(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteUnderlined(&buf, "commit abc", 0, plainStyle(), true))
	assert.Equal(t, "commit abc\n──────────\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteUnderlined(&buf, "abc", 6, plainStyle(), true))
	assert.Equal(t, "abc\n──────\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteUnderlined(&buf, "abc", 6, plainStyle(), false))
	assert.Equal(t, "abc\n───\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestDrawPropagatesWriteErrors(t *testing.T) {
	assert.Error(t, WriteBoxed(failingWriter{}, "x", 10, plainStyle(), true))
	assert.Error(t, WriteUnderlined(failingWriter{}, "x", 10, plainStyle(), true))
}
