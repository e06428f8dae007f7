// Package model defines the paper catalog data types.
package model

import "fmt"

// Paper is a single past-paper file in the catalog.
type Paper struct {
	Name         string `json:"name"`
	Code         string `json:"code,omitempty"`
	Level        string `json:"level,omitempty"`
	Timezone     string `json:"timezone,omitempty"`
	PaperNumber  string `json:"paper_number,omitempty"`
	Session      string `json:"session,omitempty"`
	IsMarkscheme bool   `json:"is_markscheme"`
	IsResource   bool   `json:"is_resource"`
}

// Catalog maps year -> subject id -> papers.
type Catalog map[string]map[string][]Paper

// SpecimenPaper is a specimen paper. Subject is human readable and Group is
// pre-assigned by the data file.
type SpecimenPaper struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Group   string `json:"group"`
}

// Document is the papers data file.
type Document struct {
	Years          []string        `json:"years"`
	PastPapers     Catalog         `json:"past_papers"`
	SpecimenPapers []SpecimenPaper `json:"specimen_papers"`
}

// PaperCount returns the number of past papers in the document.
func (d *Document) PaperCount() int {
	n := 0
	for _, subjects := range d.PastPapers {
		for _, papers := range subjects {
			n += len(papers)
		}
	}
	return n
}

// Paper levels.
const (
	LevelHL = "HL"
	LevelSL = "SL"
)

// Paper types accepted by FilterState.Type.
const (
	TypePaper      = "paper"
	TypeMarkscheme = "markscheme"
	TypeResource   = "resource"
)

// ValidLevels are the allowed level filter values.
var ValidLevels = map[string]bool{
	LevelHL: true,
	LevelSL: true,
}

// ValidTypes are the allowed type filter values.
var ValidTypes = map[string]bool{
	TypePaper:      true,
	TypeMarkscheme: true,
	TypeResource:   true,
}

// FilterState holds the past-paper filters. An empty field means "any".
type FilterState struct {
	Year        string `json:"year,omitempty"`
	Subject     string `json:"subject,omitempty"`
	Level       string `json:"level,omitempty"`
	Timezone    string `json:"timezone,omitempty"`
	PaperNumber string `json:"paper_number,omitempty"`
	Type        string `json:"type,omitempty"`
	Search      string `json:"search,omitempty"`
}

// Validate rejects type values the predicate does not understand.
func (f FilterState) Validate() error {
	if f.Type != "" && !ValidTypes[f.Type] {
		return fmt.Errorf("invalid type %q (use paper, markscheme or resource)", f.Type)
	}
	return nil
}

// SpecimenFilter holds the specimen-paper filters. An empty field means "any".
type SpecimenFilter struct {
	Group  string `json:"group,omitempty"`
	Search string `json:"search,omitempty"`
}

// SortMode selects the past-paper tree shape.
type SortMode string

const (
	SortByYear    SortMode = "year"
	SortBySubject SortMode = "subject"
)

// ParseSortMode parses a sort mode name. Empty means by-year.
func ParseSortMode(s string) (SortMode, error) {
	switch SortMode(s) {
	case "", SortByYear:
		return SortByYear, nil
	case SortBySubject:
		return SortBySubject, nil
	}
	return "", fmt.Errorf("invalid sort mode %q (use year or subject)", s)
}
