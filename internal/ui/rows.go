package ui

import (
	"strings"

	"github.com/rcliao/paper-catalog/internal/tree"
)

// row is one visible line of the browser: a folder or a paper.
type row struct {
	path   string
	depth  int
	folder bool
	label  string
	count  string
	link   string
}

// flatten lists the visible rows of t. Folders are closed unless their path
// is in expanded; a leaf folder that is open lists its items.
func flatten[T any](t *tree.Tree[T], expanded map[string]bool, count func(depth, n int) string, item func(T) (label, link string)) []row {
	var rows []row
	var stack []string
	t.Walk(func(n *tree.Node[T], depth int) bool {
		stack = append(stack[:depth], n.Key)
		path := strings.Join(stack, "/")
		open := expanded[path]

		rows = append(rows, row{
			path:   path,
			depth:  depth,
			folder: true,
			label:  n.Label,
			count:  count(depth, n.Count),
		})
		if open {
			for _, it := range n.Items {
				label, link := item(it)
				rows = append(rows, row{path: path, depth: depth + 1, label: label, link: link})
			}
		}
		return open
	})
	return rows
}

// folderPaths returns the path of every folder in t.
func folderPaths[T any](t *tree.Tree[T]) []string {
	var paths []string
	var stack []string
	t.Walk(func(n *tree.Node[T], depth int) bool {
		stack = append(stack[:depth], n.Key)
		paths = append(paths, strings.Join(stack, "/"))
		return true
	})
	return paths
}

// cycle steps through "" (any) followed by values, wrapping around.
func cycle(values []string, cur string) string {
	if cur == "" {
		if len(values) == 0 {
			return ""
		}
		return values[0]
	}
	for i, v := range values {
		if v == cur {
			if i+1 < len(values) {
				return values[i+1]
			}
			return ""
		}
	}
	return ""
}
