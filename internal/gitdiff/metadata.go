// Package gitdiff extracts display facts from single lines of git diff output.
// Every function is total: malformed input yields empty results, never a panic.
package gitdiff

import (
	"fmt"
	"path"
	"strings"
)

// NullPath is the path git prints for the missing side of an added or deleted file.
const NullPath = "/dev/null"

// FilePaths returns the old and new paths of a file-pair header such as
// "diff --git a/src/main.rs b/src/main.rs", with the a/ and b/ prefixes removed.
// ok is false when the line does not carry two paths.
func FilePaths(line string) (oldPath, newPath string, ok bool) {
	fields := strings.Split(strings.TrimRight(line, "\r\n"), " ")
	if len(fields) < 4 {
		return "", "", false
	}
	// fields[0] is "diff", fields[1] is "--git" (or "--cc" for merges)
	return stripSidePrefix(fields[2]), stripSidePrefix(fields[3]), true
}

// stripSidePrefix drops the side marker git puts in front of each path
// ("a/", "b/", or the i/ w/ c/ o/ mnemonic prefixes). The null device and
// --no-prefix paths are returned unchanged.
func stripSidePrefix(s string) string {
	if s == NullPath || len(s) < 3 || s[1] != '/' {
		return s
	}
	return s[2:]
}

// FileExtension returns a single extension consistent with both files of a
// file-pair header. "diff --git a/src/main.rs b/src/main.rs" yields "rs".
// When only one side has an extension it is returned; when they disagree,
// or neither has one, ok is false.
func FileExtension(line string) (string, bool) {
	oldPath, newPath, ok := FilePaths(line)
	if !ok {
		return "", false
	}
	oldExt, newExt := extension(oldPath), extension(newPath)
	switch {
	case oldExt != "" && newExt != "":
		if oldExt == newExt {
			return oldExt, true
		}
		// old and new files have different extensions
		return "", false
	case oldExt != "":
		return oldExt, true
	case newExt != "":
		return newExt, true
	default:
		return "", false
	}
}

// extension returns the text after the last "." of the base name, or the whole
// base name when it has no extension (Makefile, Dockerfile).
func extension(p string) string {
	if p == "" || p == NullPath {
		return ""
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	if strings.HasPrefix(base, ".") && strings.Count(base, ".") == 1 {
		// dotfiles like ".bashrc" are named, not extended
		return base
	}
	if ext := path.Ext(base); len(ext) > 1 {
		return ext[1:]
	}
	return base
}

// FileChangeDescription turns a file-pair header into a short human string:
// the path, "added: <path>", "deleted: <path>" or "renamed: <old> ⟶ <new>".
// Unparseable lines give "?".
func FileChangeDescription(line string) string {
	oldPath, newPath, ok := FilePaths(line)
	switch {
	case !ok:
		return "?"
	case oldPath == newPath:
		return oldPath
	case newPath == NullPath:
		return fmt.Sprintf("deleted: %s", oldPath)
	case oldPath == NullPath:
		return fmt.Sprintf("added: %s", newPath)
	default:
		return fmt.Sprintf("renamed: %s ⟶ %s", oldPath, newPath)
	}
}

// ParseHunkHeader splits a hunk header like
//
//	@@ -74,15 +75,14 @@ pub fn delta(
//
// into the trailing code fragment (" pub fn delta(") and the new-file start
// line ("75"). Missing components come back as empty strings.
func ParseHunkHeader(line string) (codeFragment, lineNumber string) {
	parts := strings.SplitN(line, "@@", 3)
	if len(parts) < 2 {
		return "", ""
	}
	ranges := parts[1]
	if i := strings.Index(ranges, "+"); i >= 0 {
		lineNumber = ranges[i+1:]
		if j := strings.IndexAny(lineNumber, ", "); j >= 0 {
			lineNumber = lineNumber[:j]
		}
	}
	if len(parts) == 3 {
		codeFragment = parts[2]
	}
	return codeFragment, lineNumber
}
