package paint

import (
	"strings"
	"unicode"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// maxWordDiffLine skips token diffing for lines longer than this many bytes.
const maxWordDiffLine = 500

// tokenBase is the first private-use code point used to encode tokens as
// single runes for the diff. A line of maxWordDiffLine bytes has at most that
// many tokens, which stays well inside the private-use block.
const tokenBase = rune(0xE000)

// byteRange is a half-open byte interval of a line.
type byteRange struct {
	start, end int
}

// tokenize splits a line into words, with each whitespace, punctuation or
// symbol rune as a token of its own. "foo.bar()" -> ["foo" "." "bar" "(" ")"]
func tokenize(line string) []string {
	var tokens []string
	start := -1
	for i, r := range line {
		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			if start >= 0 {
				tokens = append(tokens, line[start:i])
				start = -1
			}
			tokens = append(tokens, string(r))
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, line[start:])
	}
	return tokens
}

// emphasis returns the byte ranges of oldLine and newLine that differ at the
// token level. Lines that share no non-blank token are considered rewritten
// rather than edited and get no emphasis, as do lines too long to diff.
func emphasis(oldLine, newLine string) (oldRanges, newRanges []byteRange) {
	if len(oldLine) > maxWordDiffLine || len(newLine) > maxWordDiffLine {
		return nil, nil
	}
	oldTokens, newTokens := tokenize(oldLine), tokenize(newLine)
	if len(oldTokens) == 0 || len(newTokens) == 0 {
		return nil, nil
	}

	ids := make(map[string]rune)
	var vocab []string
	encode := func(tokens []string) []rune {
		out := make([]rune, len(tokens))
		for i, tok := range tokens {
			id, ok := ids[tok]
			if !ok {
				id = tokenBase + rune(len(vocab))
				ids[tok] = id
				vocab = append(vocab, tok)
			}
			out[i] = id
		}
		return out
	}
	a, b := encode(oldTokens), encode(newTokens)

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMainRunes(a, b, false))

	var oldPos, newPos int
	shared := false
	for _, d := range diffs {
		for _, r := range d.Text {
			tok := vocab[r-tokenBase]
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				if strings.TrimSpace(tok) != "" {
					shared = true
				}
				oldPos += len(tok)
				newPos += len(tok)
			case diffmatchpatch.DiffDelete:
				oldRanges = addRange(oldRanges, oldPos, oldPos+len(tok))
				oldPos += len(tok)
			case diffmatchpatch.DiffInsert:
				newRanges = addRange(newRanges, newPos, newPos+len(tok))
				newPos += len(tok)
			}
		}
	}

	if !shared {
		return nil, nil
	}
	return oldRanges, newRanges
}

// addRange appends [start, end), merging it into the last range when they touch.
func addRange(ranges []byteRange, start, end int) []byteRange {
	if n := len(ranges); n > 0 && ranges[n-1].end == start {
		ranges[n-1].end = end
		return ranges
	}
	return append(ranges, byteRange{start, end})
}
