package tree

import (
	"strings"

	"github.com/rcliao/paper-catalog/internal/model"
)

// Match reports whether a paper passes the level, timezone, paper number,
// type and search filters. Year and subject are gated by the builder.
func Match(p model.Paper, f model.FilterState) bool {
	if f.Level != "" && p.Level != f.Level {
		return false
	}
	if f.Timezone != "" && p.Timezone != f.Timezone {
		return false
	}
	if f.PaperNumber != "" && p.PaperNumber != f.PaperNumber {
		return false
	}

	switch f.Type {
	case model.TypePaper:
		if p.IsMarkscheme || p.IsResource {
			return false
		}
	case model.TypeMarkscheme:
		if !p.IsMarkscheme {
			return false
		}
	case model.TypeResource:
		if !p.IsResource {
			return false
		}
	}

	if f.Search != "" {
		haystack := strings.ToLower(p.Name + " " + p.Code)
		if !strings.Contains(haystack, strings.ToLower(f.Search)) {
			return false
		}
	}
	return true
}

// Filter returns the papers that pass Match, in their original order.
func Filter(papers []model.Paper, f model.FilterState) []model.Paper {
	var out []model.Paper
	for _, p := range papers {
		if Match(p, f) {
			out = append(out, p)
		}
	}
	return out
}

// MatchSpecimen reports whether a specimen paper is in the filtered group and
// its name or subject contains the search text.
func MatchSpecimen(sp model.SpecimenPaper, f model.SpecimenFilter) bool {
	if f.Group != "" && sp.Group != f.Group {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(sp.Name), q) &&
			!strings.Contains(strings.ToLower(sp.Subject), q) {
			return false
		}
	}
	return true
}
