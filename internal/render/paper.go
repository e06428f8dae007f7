// Package render turns paper trees into terminal text and JSON, and builds
// the links and tags shown next to each paper.
package render

import (
	"net/url"
	"strings"

	"github.com/rcliao/paper-catalog/internal/model"
)

// PaperLink is the relative path of a past paper file.
func PaperLink(p model.Paper) string {
	return "past_papers/" + p.Name
}

// SpecimenLink is the relative path of a specimen paper file. Spaces in the
// name become underscores and ".pdf" is appended; each segment is escaped.
func SpecimenLink(sp model.SpecimenPaper) string {
	file := strings.ReplaceAll(sp.Name, " ", "_") + ".pdf"
	return "specimen_papers/" + EscapeComponent(sp.Group) + "/" + EscapeComponent(sp.Subject) + "/" + EscapeComponent(file)
}

var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s leaving only letters, digits and
// - _ . ! ~ * ' ( ) unescaped.
func EscapeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

// PaperKind is "Mark Scheme", "Resource" or "Paper". A paper flagged as both
// is a mark scheme.
func PaperKind(p model.Paper) string {
	switch {
	case p.IsMarkscheme:
		return "Mark Scheme"
	case p.IsResource:
		return "Resource"
	}
	return "Paper"
}

// PaperTitle is the kind followed by the paper number, if any.
func PaperTitle(p model.Paper) string {
	if p.PaperNumber == "" {
		return PaperKind(p)
	}
	return PaperKind(p) + " " + p.PaperNumber
}

// PaperTags lists the short badges shown after a paper.
func PaperTags(p model.Paper) []string {
	var tags []string
	if p.Level != "" {
		tags = append(tags, p.Level)
	}
	if p.Timezone != "" && p.Timezone != "TZ0" {
		tags = append(tags, p.Timezone)
	}
	if p.PaperNumber != "" {
		tags = append(tags, "P"+p.PaperNumber)
	}
	if p.Session != "" {
		tags = append(tags, firstRunes(p.Session, 3))
	}
	if p.IsMarkscheme {
		tags = append(tags, "MS")
	}
	return tags
}

func firstRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
