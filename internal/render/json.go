package render

import (
	"encoding/json"
	"io"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/tree"
)

// PaperView is a past paper with its display fields.
type PaperView struct {
	model.Paper
	Title string   `json:"title"`
	Tags  []string `json:"tags,omitempty"`
	Link  string   `json:"link"`
}

// SpecimenView is a specimen paper with its link.
type SpecimenView struct {
	model.SpecimenPaper
	Link string `json:"link"`
}

// Result is the JSON form of a built tree.
type Result[T any] struct {
	Layout  tree.Layout     `json:"layout"`
	Empty   bool            `json:"empty"`
	Message string          `json:"message,omitempty"`
	Total   int             `json:"total"`
	Roots   []*tree.Node[T] `json:"roots"`
}

// ViewPaper adds the display fields to p.
func ViewPaper(p model.Paper) PaperView {
	return PaperView{Paper: p, Title: PaperTitle(p), Tags: PaperTags(p), Link: PaperLink(p)}
}

// ViewSpecimen adds the link to sp.
func ViewSpecimen(sp model.SpecimenPaper) SpecimenView {
	return SpecimenView{SpecimenPaper: sp, Link: SpecimenLink(sp)}
}

// PastPapersResult converts a past-paper tree for JSON output.
func PastPapersResult(t *tree.Tree[model.Paper]) Result[PaperView] {
	return newResult(tree.Map(t, ViewPaper), NoPapers)
}

// SpecimenResult converts a specimen tree for JSON output.
func SpecimenResult(t *tree.Tree[model.SpecimenPaper]) Result[SpecimenView] {
	return newResult(tree.Map(t, ViewSpecimen), NoSpecimenPapers)
}

func newResult[T any](t *tree.Tree[T], empty string) Result[T] {
	r := Result[T]{Layout: t.Layout, Empty: t.Empty(), Total: t.Total(), Roots: t.Roots}
	if r.Empty {
		r.Message = empty
	}
	return r
}

// JSON writes v as indented JSON followed by a newline.
func JSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
