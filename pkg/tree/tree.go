package tree

import "fmt"

// ItemFunc renders one item at path and returns its lines. The first line
// belongs to the item itself and must be prefixed with [Prefix](path); any
// further lines are descendants at paths below path.
type ItemFunc[T any] func(path Path, item T) ([]string, error)

// Renderable is implemented by items that know how to render themselves.
type Renderable interface {
	Lines(path Path) ([]string, error)
}

// Render returns heading, prefixed for path, followed by the rendering of
// every item in input order. Item i of n is rendered at path.Child(i == n-1).
//
// Items are neither sorted nor filtered. An empty slice yields the heading
// alone. If fn fails, Render returns nil lines and the error annotated with
// the failing index.
func Render[T any](path Path, heading string, items []T, fn ItemFunc[T]) ([]string, error) {
	lines := make([]string, 0, 1+len(items))
	lines = append(lines, Prefix(path)+heading)

	n := len(items)
	for i, item := range items {
		out, err := fn(path.Child(i == n-1), item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		lines = append(lines, out...)
	}
	return lines, nil
}

// RenderAll is [Render] for items implementing [Renderable].
func RenderAll[T Renderable](path Path, heading string, items []T) ([]string, error) {
	return Render(path, heading, items, func(p Path, item T) ([]string, error) {
		return item.Lines(p)
	})
}

// Node returns the single line for a leaf at path.
func Node(path Path, content string) []string {
	return []string{Prefix(path) + content}
}

// Leaves renders a heading with one leaf per string.
func Leaves(path Path, heading string, items []string) []string {
	lines := make([]string, 0, 1+len(items))
	lines = append(lines, Prefix(path)+heading)
	for i, item := range items {
		lines = append(lines, Prefix(path.Child(i == len(items)-1))+item)
	}
	return lines
}
