package tree

import "strings"

// Connector and continuation units. All four share the same display width.
const (
	// Elbow connects the last sibling to its parent.
	Elbow = "└──"
	// Tee connects a sibling that has followers.
	Tee = "├──"
	// Pipe continues the vertical line past an ancestor that has followers.
	Pipe = "│  "
	// Space pads past an ancestor that was the last of its siblings.
	Space = "   "
)

// UnitWidth is the display width, in terminal cells, of every prefix unit.
const UnitWidth = 3

// Path is the ancestry of a node: element i reports whether the node at
// depth i+1 is the last of its siblings. The root heading has an empty path.
type Path []bool

// Child returns the path of a child node. The receiver is left untouched and
// the result never shares storage with it, so sibling paths built from the
// same parent cannot overwrite each other.
func (p Path) Child(last bool) Path {
	c := make(Path, len(p)+1)
	copy(c, p)
	c[len(p)] = last
	return c
}

// Depth returns the number of levels below the root.
func (p Path) Depth() int { return len(p) }

// IsLast reports whether the node addressed by p is the last sibling.
// The root is considered last.
func (p Path) IsLast() bool {
	if len(p) == 0 {
		return true
	}
	return p[len(p)-1]
}

// Prefix is shorthand for [Prefix](p).
func (p Path) Prefix() string { return Prefix(p) }

// Connector returns the unit linking a node to its parent.
func Connector(last bool) string {
	if last {
		return Elbow
	}
	return Tee
}

// Continuation returns the unit drawn below an ancestor.
func Continuation(last bool) string {
	if last {
		return Space
	}
	return Pipe
}

// Prefix returns the left margin for a line at path p: one continuation unit
// per ancestor, outermost first, followed by the node's own connector.
// The empty path yields the empty string.
func Prefix(p Path) string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	b.Grow(len(p) * len(Elbow))
	for _, last := range p[:len(p)-1] {
		b.WriteString(Continuation(last))
	}
	b.WriteString(Connector(p[len(p)-1]))
	return b.String()
}

// SplitPrefix separates a rendered line into its connector prefix and its
// content. Units are consumed from the left while they match one of the four
// prefix units, so content that happens to start with box-drawing characters
// after the connector is left intact.
func SplitPrefix(line string) (prefix, content string) {
	n := 0
	rest := line
	for {
		unit, ok := leadingUnit(rest)
		if !ok {
			break
		}
		n += len(unit)
		rest = rest[len(unit):]
		if unit == Elbow || unit == Tee {
			break
		}
	}
	return line[:n], line[n:]
}

func leadingUnit(s string) (string, bool) {
	for _, u := range [...]string{Elbow, Tee, Pipe, Space} {
		if strings.HasPrefix(s, u) {
			return u, true
		}
	}
	return "", false
}
