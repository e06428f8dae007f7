package tree

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/rcliao/paper-catalog/internal/classify"
	"github.com/rcliao/paper-catalog/internal/model"
)

// Builder builds past-paper and specimen-paper trees. It holds no mutable
// state and may be shared.
type Builder struct {
	classifier *classify.Classifier
}

// NewBuilder returns a Builder classifying subjects with c, or with the
// default table when c is nil.
func NewBuilder(c *classify.Classifier) *Builder {
	if c == nil {
		c = classify.Default()
	}
	return &Builder{classifier: c}
}

// Classifier returns the classifier the builder groups subjects with.
func (b *Builder) Classifier() *classify.Classifier {
	return b.classifier
}

// BuildPastPapers groups the papers that pass filters into the layout for
// mode. Subject and group folders sort ascending, years descending, and
// each leaf is ordered by SortPapers.
func (b *Builder) BuildPastPapers(catalog model.Catalog, filters model.FilterState, mode model.SortMode) *Tree[model.Paper] {
	layout := LayoutFor(mode)
	root := newBranch[model.Paper]()

	for year, subjects := range catalog {
		if filters.Year != "" && year != filters.Year {
			continue
		}
		for subject, papers := range subjects {
			if filters.Subject != "" && subject != filters.Subject {
				continue
			}
			matched := Filter(papers, filters)
			if len(matched) == 0 {
				continue
			}
			group := b.classifier.Classify(subject)
			root.insert(layout.keys(year, group, subject), matched)
		}
	}

	col := collate.New(language.Und)
	sortLeaf := func(papers []model.Paper) { SortPapers(papers, col) }
	s := shape[model.Paper]{layout: layout, label: pastPaperLabel, sortLeaf: sortLeaf}
	return &Tree[model.Paper]{Layout: layout, Roots: s.finalize(root, 0)}
}

// BuildSpecimen groups the specimen papers that pass filters by their
// assigned group and subject. Leaves keep catalog order.
func (b *Builder) BuildSpecimen(papers []model.SpecimenPaper, filters model.SpecimenFilter) *Tree[model.SpecimenPaper] {
	root := newBranch[model.SpecimenPaper]()
	for _, sp := range papers {
		if !MatchSpecimen(sp, filters) {
			continue
		}
		root.insert([]string{sp.Group, sp.Subject}, []model.SpecimenPaper{sp})
	}

	s := shape[model.SpecimenPaper]{layout: Specimen}
	return &Tree[model.SpecimenPaper]{Layout: Specimen, Roots: s.finalize(root, 0)}
}

// keys orders a (year, group, subject) triple along the layout.
func (l Layout) keys(year, group, subject string) []string {
	keys := make([]string, len(l))
	for i, axis := range l {
		switch axis {
		case AxisYear:
			keys[i] = year
		case AxisGroup:
			keys[i] = group
		case AxisSubject:
			keys[i] = subject
		}
	}
	return keys
}

func pastPaperLabel(axis Axis, key string) string {
	if axis == AxisSubject {
		return classify.FormatLabel(key)
	}
	return key
}

// SortPapers orders papers in place: plain papers, then markschemes, then
// resources; ties by code using col. A nil col compares codes bytewise.
func SortPapers(papers []model.Paper, col *collate.Collator) {
	sort.SliceStable(papers, func(i, j int) bool {
		return comparePapers(papers[i], papers[j], col) < 0
	})
}

func comparePapers(a, b model.Paper, col *collate.Collator) int {
	if a.IsResource != b.IsResource {
		if a.IsResource {
			return 1
		}
		return -1
	}
	if a.IsMarkscheme != b.IsMarkscheme {
		if a.IsMarkscheme {
			return 1
		}
		return -1
	}
	if col == nil {
		switch {
		case a.Code < b.Code:
			return -1
		case a.Code > b.Code:
			return 1
		}
		return 0
	}
	return col.CompareString(a.Code, b.Code)
}
