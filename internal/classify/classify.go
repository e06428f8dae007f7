// Package classify maps subject identifiers to subject groups.
package classify

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Group labels.
const (
	GroupLanguageLiterature  = "Group 1 - Studies in Language and Literature"
	GroupLanguageAcquisition = "Group 2 - Language Acquisition"
	GroupIndividuals         = "Group 3 - Individuals and Societies"
	GroupSciences            = "Group 4 - Experimental Sciences"
	GroupMathematics         = "Group 5 - Mathematics"
	GroupCore                = "Core"

	// GroupOther is returned for subjects missing from the table.
	GroupOther = "Other"
)

// DefaultTable is the built-in subject id -> group table.
var DefaultTable = map[string]string{
	"english_a_literature":               GroupLanguageLiterature,
	"english_a_language_and_literature":  GroupLanguageLiterature,
	"english_a":                          GroupLanguageLiterature,
	"studies_in_language_and_literature": GroupLanguageLiterature,
	"literature":                         GroupLanguageLiterature,
	"language_and_literature":            GroupLanguageLiterature,

	"english_b": GroupLanguageAcquisition,
	"latin":     GroupLanguageAcquisition,

	"business_management":                        GroupIndividuals,
	"business_and_management":                    GroupIndividuals,
	"economics":                                  GroupIndividuals,
	"geography":                                  GroupIndividuals,
	"history":                                    GroupIndividuals,
	"philosophy":                                 GroupIndividuals,
	"psychology":                                 GroupIndividuals,
	"global_politics":                            GroupIndividuals,
	"itgs":                                       GroupIndividuals,
	"information_technology_in_a_global_society": GroupIndividuals,
	"social_and_cultural_anthropology":           GroupIndividuals,
	"world_religions":                            GroupIndividuals,
	"environmental_systems_and_societies":        GroupIndividuals,
	"digital_society":                            GroupIndividuals,

	"biology":                            GroupSciences,
	"chemistry":                          GroupSciences,
	"physics":                            GroupSciences,
	"design_technology":                  GroupSciences,
	"computer_science":                   GroupSciences,
	"sports_exercise_and_health_science": GroupSciences,
	"ess":                                GroupSciences,

	"mathematics":                                 GroupMathematics,
	"mathematics_analysis_and_approaches":         GroupMathematics,
	"mathematics_applications_and_interpretation": GroupMathematics,
	"math_hl":                                     GroupMathematics,
	"math_sl":                                     GroupMathematics,
	"further_mathematics":                         GroupMathematics,
	"mathematical_studies":                        GroupMathematics,

	"theory_of_knowledge": GroupCore,
	"tok":                 GroupCore,
}

// Classifier resolves subject ids against an immutable table.
type Classifier struct {
	table map[string]string
}

// New returns a Classifier over a copy of table.
func New(table map[string]string) *Classifier {
	t := make(map[string]string, len(table))
	for k, v := range table {
		t[k] = v
	}
	return &Classifier{table: t}
}

// Default returns a Classifier over DefaultTable.
func Default() *Classifier {
	return New(DefaultTable)
}

// Classify returns the group for a subject id, or GroupOther.
func (c *Classifier) Classify(subject string) string {
	if g, ok := c.table[subject]; ok {
		return g
	}
	return GroupOther
}

// Known reports whether the subject id is in the table.
func (c *Classifier) Known(subject string) bool {
	_, ok := c.table[subject]
	return ok
}

// Groups returns the distinct groups in the table, sorted.
func (c *Classifier) Groups() []string {
	seen := map[string]bool{}
	var groups []string
	for _, g := range c.table {
		if !seen[g] {
			seen[g] = true
			groups = append(groups, g)
		}
	}
	sort.Strings(groups)
	return groups
}

// FormatLabel turns a snake_case subject id into a display label,
// e.g. "business_management" -> "Business Management".
func FormatLabel(subject string) string {
	words := strings.Split(subject, "_")
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		if size == 0 {
			continue
		}
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
