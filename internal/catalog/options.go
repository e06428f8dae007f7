package catalog

import (
	"sort"

	"github.com/rcliao/paper-catalog/internal/classify"
	"github.com/rcliao/paper-catalog/internal/model"
)

// Choice is one selectable filter value.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the values each filter control can take.
type FilterOptions struct {
	Years          []string `json:"years"`
	Subjects       []Choice `json:"subjects"`
	Levels         []Choice `json:"levels"`
	Timezones      []Choice `json:"timezones"`
	PaperNumbers   []Choice `json:"paper_numbers"`
	Types          []Choice `json:"types"`
	SpecimenGroups []string `json:"specimen_groups"`
}

// Options derives the filter choices from a document. Years come newest
// first, following the reverse of the document's own years order.
func Options(doc *model.Document) FilterOptions {
	opts := FilterOptions{
		Years:          make([]string, 0, len(doc.Years)),
		Subjects:       []Choice{},
		SpecimenGroups: []string{},
		Levels: []Choice{
			{Value: model.LevelHL, Label: "HL"},
			{Value: model.LevelSL, Label: "SL"},
		},
		Timezones: []Choice{
			{Value: "TZ0", Label: "TZ0"},
			{Value: "TZ1", Label: "TZ1"},
			{Value: "TZ2", Label: "TZ2"},
		},
		PaperNumbers: []Choice{
			{Value: "1", Label: "Paper 1"},
			{Value: "2", Label: "Paper 2"},
			{Value: "3", Label: "Paper 3"},
		},
		Types: []Choice{
			{Value: model.TypePaper, Label: "Papers"},
			{Value: model.TypeMarkscheme, Label: "Mark Schemes"},
			{Value: model.TypeResource, Label: "Resources"},
		},
	}

	for i := len(doc.Years) - 1; i >= 0; i-- {
		opts.Years = append(opts.Years, doc.Years[i])
	}

	seen := map[string]bool{}
	var subjects []string
	for _, bySubject := range doc.PastPapers {
		for subject := range bySubject {
			if !seen[subject] {
				seen[subject] = true
				subjects = append(subjects, subject)
			}
		}
	}
	sort.Strings(subjects)
	for _, s := range subjects {
		opts.Subjects = append(opts.Subjects, Choice{Value: s, Label: classify.FormatLabel(s)})
	}

	groups := map[string]bool{}
	for _, sp := range doc.SpecimenPapers {
		if !groups[sp.Group] {
			groups[sp.Group] = true
			opts.SpecimenGroups = append(opts.SpecimenGroups, sp.Group)
		}
	}
	sort.Strings(opts.SpecimenGroups)

	return opts
}

// Values returns the raw values of choices, in order.
func Values(choices []Choice) []string {
	out := make([]string, len(choices))
	for i, c := range choices {
		out[i] = c.Value
	}
	return out
}
