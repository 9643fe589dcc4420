// Package source provides the file-id and byte-offset bookkeeping that ties
// every AST node back to the text it was parsed from.
package source

import (
	"fmt"
)

// FileID identifies one source file within a single parse. It is assigned
// by a Registry and is stable for the lifetime of the parse.
type FileID int

// Ref is a half-open byte range `[Start, End)` inside the file named by
// FileID. Every AST node embeds a Ref; a parent's Ref always contains the
// Ref of each of its children.
type Ref struct {
	File  FileID
	Start int
	End   int
}

// Contains reports whether other lies entirely within ref.
func (ref Ref) Contains(other Ref) bool {
	return ref.File == other.File && ref.Start <= other.Start && other.End <= ref.End
}

// Union returns the smallest Ref spanning both ref and other. Both must name
// the same file; Union panics otherwise since unioning across files would
// produce a meaningless range.
func (ref Ref) Union(other Ref) Ref {
	if ref.File != other.File {
		panic("source: cannot union refs from different files")
	}
	start, end := ref.Start, ref.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Ref{File: ref.File, Start: start, End: end}
}

func (ref Ref) String() string {
	return fmt.Sprintf("%d:%d-%d", ref.File, ref.Start, ref.End)
}

// Registry keeps the per-parse mapping from FileID to file name and content,
// so that a Ref's offsets can later be resolved back to a line/column for
// diagnostics.
//
// parser.ParsePIL and parser.ParseASM take a FileID and do not create or
// use a Registry; a caller that wants line/column resolution registers the
// parsed text here under the same id. A Registry is not safe for concurrent
// use by multiple goroutines.
type Registry struct {
	names   map[FileID]string
	content map[FileID][]byte
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{names: map[FileID]string{}, content: map[FileID][]byte{}}
}

// Add registers source text under the given file id and name. The returned
// FileID is the same id passed in, echoed back so callers can chain
// registration with lexer.Tokenize(registry.Add(...), content).
func (r *Registry) Add(id FileID, name string, content []byte) FileID {
	r.names[id] = name
	r.content[id] = content
	return id
}

// Name returns the file name registered for id, or "" if none was.
func (r *Registry) Name(id FileID) string { return r.names[id] }

// LineCol resolves a byte offset within file id to a 1-based line and
// column, by scanning the registered content up to that offset. This is the
// "line/column resolution by scanning the original text" permitted by the
// source-reference design note: positions are computed lazily, only when a
// diagnostic actually needs to be rendered, rather than cached on every
// token during parsing.
func (r *Registry) LineCol(id FileID, offset int) (line, col int) {
	content := r.content[id]
	if offset > len(content) {
		offset = len(content)
	}
	line, col = 1, 1
	for _, b := range content[:offset] {
		if b == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

