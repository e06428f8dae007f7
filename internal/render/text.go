package render

import (
	"fmt"
	"io"
	"strings"

	lgtree "github.com/charmbracelet/lipgloss/tree"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/tree"
)

// Placeholders printed when nothing survives filtering.
const (
	NoPapers         = "No papers found matching your criteria."
	NoSpecimenPapers = "No specimen papers found."
)

// Options controls text rendering.
type Options struct {
	Links  bool
	Styles Styles
}

// PastPapers writes a past-paper tree. Top-level folders show "N papers",
// deeper folders just N.
func PastPapers(w io.Writer, t *tree.Tree[model.Paper], opts Options) error {
	if t.Empty() {
		return writeLine(w, opts.Styles.Empty.Render(NoPapers))
	}
	return writeTrees(w, t.Roots, opts.Styles, PastPaperCount, func(p model.Paper) string {
		return PaperLine(p, opts)
	})
}

// SpecimenPapers writes a specimen tree.
func SpecimenPapers(w io.Writer, t *tree.Tree[model.SpecimenPaper], opts Options) error {
	if t.Empty() {
		return writeLine(w, opts.Styles.Empty.Render(NoSpecimenPapers))
	}
	return writeTrees(w, t.Roots, opts.Styles, SpecimenCount, func(sp model.SpecimenPaper) string {
		return SpecimenLine(sp, opts)
	})
}

// PastPaperCount formats a past-paper folder count.
func PastPaperCount(depth, n int) string {
	if depth == 0 {
		return fmt.Sprintf("%d papers", n)
	}
	return fmt.Sprintf("%d", n)
}

// SpecimenCount formats a specimen folder count.
func SpecimenCount(_, n int) string {
	return fmt.Sprintf("%d", n)
}

// PaperLine is one past paper: title, tags and optionally its link.
func PaperLine(p model.Paper, opts Options) string {
	st := opts.Styles
	parts := []string{st.Item.Render(PaperTitle(p))}
	for _, tag := range PaperTags(p) {
		if tag == "MS" {
			parts = append(parts, st.MarkScheme.Render("["+tag+"]"))
			continue
		}
		parts = append(parts, st.Tag.Render("["+tag+"]"))
	}
	if opts.Links {
		parts = append(parts, st.Link.Render(PaperLink(p)))
	}
	return strings.Join(parts, " ")
}

// SpecimenLine is one specimen paper: its name and optionally its link.
func SpecimenLine(sp model.SpecimenPaper, opts Options) string {
	line := opts.Styles.Item.Render(sp.Name)
	if opts.Links {
		line += " " + opts.Styles.Link.Render(SpecimenLink(sp))
	}
	return line
}

func writeTrees[T any](w io.Writer, roots []*tree.Node[T], st Styles, count func(depth, n int) string, item func(it T) string) error {
	var b strings.Builder
	for _, r := range roots {
		b.WriteString(folder(r, 0, st, count, item).String())
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func folder[T any](n *tree.Node[T], depth int, st Styles, count func(depth, n int) string, item func(it T) string) *lgtree.Tree {
	t := lgtree.Root(st.Folder.Render(n.Label) + " " + st.Count.Render(count(depth, n.Count))).
		Enumerator(lgtree.RoundedEnumerator).
		EnumeratorStyle(st.Enumerator)
	for _, c := range n.Children {
		t.Child(folder(c, depth+1, st, count, item))
	}
	for _, it := range n.Items {
		t.Child(item(it))
	}
	return t
}

func writeLine(w io.Writer, s string) error {
	_, err := fmt.Fprintln(w, s)
	return err
}
