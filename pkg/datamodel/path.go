package datamodel

import (
	"strconv"
	"strings"
)

// Path is a slash-separated path expression into a surface's data model.
// A leading slash anchors the path at the model root; a path without one is
// relative to a context path supplied at resolution time. Numeric segments
// index sequences.
type Path string

// Root addresses the whole data model
const Root Path = "/"

// IsAbsolute reports whether the path is anchored at the data model root
func (p Path) IsAbsolute() bool {
	return strings.HasPrefix(string(p), "/")
}

// IsRoot reports whether the path addresses the whole data model
func (p Path) IsRoot() bool {
	return len(p.Segments()) == 0
}

// Segments returns the path's segments in order, with empty segments dropped
func (p Path) Segments() []string {
	parts := strings.Split(string(p), "/")
	segments := parts[:0]
	for _, part := range parts {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Resolve returns the concrete absolute path for this expression. An absolute
// path ignores the context; a relative path is appended to it. A relative
// path with no context resolves against the root.
func (p Path) Resolve(context Path) Path {
	if p.IsAbsolute() || context == "" {
		return join(p.Segments())
	}
	return join(append(context.Segments(), p.Segments()...))
}

// Child returns the path extended by one segment
func (p Path) Child(segment string) Path {
	return join(append(p.Segments(), segment))
}

// Index returns the path extended by a sequence index segment
func (p Path) Index(i int) Path {
	return p.Child(strconv.Itoa(i))
}

func join(segments []string) Path {
	return Path("/" + strings.Join(segments, "/"))
}
