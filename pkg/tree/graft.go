package tree

import (
	"bufio"
	"io"
)

// Graft attaches a self-contained subtree under a new parent. The first line
// gets connector prepended and every following line gets indent. Prefixes
// already inside the subtree are kept verbatim.
//
// The input is not modified. An empty subtree yields nil. Grafting a result
// again nests it one level deeper.
func Graft(lines []string, connector, indent string) []string {
	if len(lines) == 0 {
		return nil
	}
	out := make([]string, len(lines))
	out[0] = connector + lines[0]
	for i := 1; i < len(lines); i++ {
		out[i] = indent + lines[i]
	}
	return out
}

// GraftBranch grafts lines as a sibling branch, using [Connector] and
// [Continuation] for the given position.
func GraftBranch(lines []string, last bool) []string {
	return Graft(lines, Connector(last), Continuation(last))
}

// Assemble builds a report from a heading and independently rendered
// subtrees. Each non-empty subtree becomes one branch of the heading, in the
// order given; the final branch is closed with [Elbow].
func Assemble(heading string, subtrees ...[]string) []string {
	branches := make([][]string, 0, len(subtrees))
	size := 1
	for _, st := range subtrees {
		if len(st) == 0 {
			continue
		}
		branches = append(branches, st)
		size += len(st)
	}

	lines := make([]string, 0, size)
	lines = append(lines, heading)
	for i, st := range branches {
		lines = append(lines, GraftBranch(st, i == len(branches)-1)...)
	}
	return lines
}

// Fprint writes lines to w, each terminated by a newline.
func Fprint(w io.Writer, lines []string) error {
	bw := bufio.NewWriter(w)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
