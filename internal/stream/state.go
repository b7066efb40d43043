// Package stream turns a line stream of git diff output into rendering calls.
//
// A Driver classifies each line with a small state machine, buffers runs of
// removed and added lines so they can be painted as pairs, and hands headers,
// painted lines and passthrough lines to a Renderer in input order.
package stream

// State is the region of diff output the most recent line belongs to.
type State int

const (
	StateUnknown    State = iota
	StateCommitMeta       // commit metadata
	StateFileMeta         // file metadata, between a "diff --" line and the first hunk
	StateHunkMeta         // hunk header line
	StateHunkZero         // in hunk; unchanged line
	StateHunkMinus        // in hunk; removed line
	StateHunkPlus         // in hunk; added line
)

func (s State) String() string {
	switch s {
	case StateCommitMeta:
		return "commit-meta"
	case StateFileMeta:
		return "file-meta"
	case StateHunkMeta:
		return "hunk-meta"
	case StateHunkZero:
		return "hunk-zero"
	case StateHunkMinus:
		return "hunk-minus"
	case StateHunkPlus:
		return "hunk-plus"
	default:
		return "unknown"
	}
}

// InHunk reports whether s is the hunk header or a hunk body state.
func (s State) InHunk() bool {
	switch s {
	case StateHunkMeta, StateHunkZero, StateHunkMinus, StateHunkPlus:
		return true
	default:
		return false
	}
}
