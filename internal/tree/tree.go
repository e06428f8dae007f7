// Package tree builds the filtered, grouped and sorted paper trees that the
// renderers walk.
package tree

import (
	"sort"

	"github.com/rcliao/paper-catalog/internal/model"
)

// Axis names one level of a tree.
type Axis string

const (
	AxisYear    Axis = "year"
	AxisGroup   Axis = "group"
	AxisSubject Axis = "subject"
)

// Layout is the ordered list of axes from the roots down to the leaves.
type Layout []Axis

var (
	// ByYear is Year -> Group -> Subject.
	ByYear = Layout{AxisYear, AxisGroup, AxisSubject}
	// BySubject is Group -> Subject -> Year.
	BySubject = Layout{AxisGroup, AxisSubject, AxisYear}
	// Specimen is Group -> Subject.
	Specimen = Layout{AxisGroup, AxisSubject}
)

// LayoutFor returns the past-paper layout for a sort mode.
func LayoutFor(mode model.SortMode) Layout {
	if mode == model.SortBySubject {
		return BySubject
	}
	return ByYear
}

// Node is one folder in a tree. Leaf folders carry Items, inner folders
// carry Children; never both.
type Node[T any] struct {
	Axis     Axis       `json:"axis"`
	Key      string     `json:"key"`
	Label    string     `json:"label"`
	Count    int        `json:"count"`
	Children []*Node[T] `json:"children,omitempty"`
	Items    []T        `json:"items,omitempty"`
}

// Leaf reports whether the node holds items rather than children.
func (n *Node[T]) Leaf() bool {
	return len(n.Children) == 0
}

// Tree is a built tree. Roots is never nil.
type Tree[T any] struct {
	Layout Layout     `json:"layout"`
	Roots  []*Node[T] `json:"roots"`
}

// Empty reports whether nothing survived filtering.
func (t *Tree[T]) Empty() bool {
	return len(t.Roots) == 0
}

// Total returns the number of items in the tree.
func (t *Tree[T]) Total() int {
	n := 0
	for _, r := range t.Roots {
		n += r.Count
	}
	return n
}

// Walk visits nodes depth first in order. Returning false from fn skips
// the node's children.
func (t *Tree[T]) Walk(fn func(n *Node[T], depth int) bool) {
	var walk func(nodes []*Node[T], depth int)
	walk = func(nodes []*Node[T], depth int) {
		for _, n := range nodes {
			if fn(n, depth) {
				walk(n.Children, depth+1)
			}
		}
	}
	walk(t.Roots, 0)
}

// Items returns every item in tree order.
func (t *Tree[T]) Items() []T {
	var items []T
	t.Walk(func(n *Node[T], _ int) bool {
		items = append(items, n.Items...)
		return true
	})
	return items
}

// branch accumulates items under nested unordered keys until finalize.
type branch[T any] struct {
	children map[string]*branch[T]
	items    []T
}

func newBranch[T any]() *branch[T] {
	return &branch[T]{children: map[string]*branch[T]{}}
}

// insert appends items at the path given by keys, creating folders on the way.
func (b *branch[T]) insert(keys []string, items []T) {
	cur := b
	for _, k := range keys {
		next, ok := cur.children[k]
		if !ok {
			next = newBranch[T]()
			cur.children[k] = next
		}
		cur = next
	}
	cur.items = append(cur.items, items...)
}

// shape turns a branch into ordered nodes.
type shape[T any] struct {
	layout   Layout
	label    func(axis Axis, key string) string
	sortLeaf func(items []T)
}

func (s shape[T]) finalize(b *branch[T], depth int) []*Node[T] {
	axis := s.layout[depth]
	keys := make([]string, 0, len(b.children))
	for k := range b.children {
		keys = append(keys, k)
	}
	sortKeys(axis, keys)

	nodes := make([]*Node[T], 0, len(keys))
	for _, k := range keys {
		child := b.children[k]
		n := &Node[T]{Axis: axis, Key: k, Label: k}
		if s.label != nil {
			n.Label = s.label(axis, k)
		}
		if depth == len(s.layout)-1 {
			n.Items = child.items
			if s.sortLeaf != nil {
				s.sortLeaf(n.Items)
			}
			n.Count = len(n.Items)
		} else {
			n.Children = s.finalize(child, depth+1)
			for _, c := range n.Children {
				n.Count += c.Count
			}
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// sortKeys orders years newest first and everything else ascending by raw key.
func sortKeys(axis Axis, keys []string) {
	if axis == AxisYear {
		sort.Sort(sort.Reverse(sort.StringSlice(keys)))
		return
	}
	sort.Strings(keys)
}

// Map returns a tree of the same shape with every item converted by fn.
func Map[T, U any](t *Tree[T], fn func(T) U) *Tree[U] {
	var conv func(nodes []*Node[T]) []*Node[U]
	conv = func(nodes []*Node[T]) []*Node[U] {
		out := make([]*Node[U], 0, len(nodes))
		for _, n := range nodes {
			m := &Node[U]{Axis: n.Axis, Key: n.Key, Label: n.Label, Count: n.Count}
			if len(n.Children) > 0 {
				m.Children = conv(n.Children)
			}
			if len(n.Items) > 0 {
				m.Items = make([]U, len(n.Items))
				for i, it := range n.Items {
					m.Items[i] = fn(it)
				}
			}
			out = append(out, m)
		}
		return out
	}
	return &Tree[U]{Layout: t.Layout, Roots: conv(t.Roots)}
}
