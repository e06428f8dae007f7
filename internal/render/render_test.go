package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/paper-catalog/internal/model"
	"github.com/rcliao/paper-catalog/internal/tree"
)

func TestPaperLink(t *testing.T) {
	assert.Equal(t, "past_papers/math_p1.pdf", PaperLink(model.Paper{Name: "math_p1.pdf"}))
}

func TestSpecimenLink(t *testing.T) {
	sp := model.SpecimenPaper{
		Name:    "Paper 1 (HL)",
		Subject: "Language A: Literature",
		Group:   "Group 1 - Studies in Language and Literature",
	}
	assert.Equal(t,
		"specimen_papers/Group%201%20-%20Studies%20in%20Language%20and%20Literature/Language%20A%3A%20Literature/Paper_1_(HL).pdf",
		SpecimenLink(sp))
}

func TestEscapeComponent(t *testing.T) {
	tests := map[string]string{
		"plain":       "plain",
		"a b":         "a%20b",
		"a+b":         "a%2Bb",
		"Lang & Lit":  "Lang%20%26%20Lit",
		"it's (ok)!*": "it's%20(ok)!*",
		"a/b?c=d#e":   "a%2Fb%3Fc%3Dd%23e",
		"~-_.":        "~-_.",
		"é":           "%C3%A9",
	}
	for in, want := range tests {
		assert.Equal(t, want, EscapeComponent(in), "input %q", in)
	}
}

func TestPaperKindAndTitle(t *testing.T) {
	assert.Equal(t, "Paper", PaperKind(model.Paper{}))
	assert.Equal(t, "Resource", PaperKind(model.Paper{IsResource: true}))
	assert.Equal(t, "Mark Scheme", PaperKind(model.Paper{IsMarkscheme: true}))
	assert.Equal(t, "Mark Scheme", PaperKind(model.Paper{IsMarkscheme: true, IsResource: true}))

	assert.Equal(t, "Paper 2", PaperTitle(model.Paper{PaperNumber: "2"}))
	assert.Equal(t, "Resource", PaperTitle(model.Paper{IsResource: true}))
}

func TestPaperTags(t *testing.T) {
	p := model.Paper{Level: "HL", Timezone: "TZ1", PaperNumber: "1", Session: "November", IsMarkscheme: true}
	assert.Equal(t, []string{"HL", "TZ1", "P1", "Nov", "MS"}, PaperTags(p))

	assert.Equal(t, []string{"SL", "May"}, PaperTags(model.Paper{Level: "SL", Timezone: "TZ0", Session: "May"}))
	assert.Empty(t, PaperTags(model.Paper{}))
}

func sampleTree() *tree.Tree[model.Paper] {
	b := tree.NewBuilder(nil)
	return b.BuildPastPapers(model.Catalog{
		"2023": {
			"business_management": {
				{Name: "bm_p1.pdf", Code: "BM_P1", Level: "HL", Timezone: "TZ1", PaperNumber: "1"},
				{Name: "bm_p1_ms.pdf", Code: "BM_P1", Level: "HL", PaperNumber: "1", IsMarkscheme: true},
			},
		},
		"2022": {
			"physics": {
				{Name: "phys_p2.pdf", Code: "PHYS_P2", PaperNumber: "2"},
			},
		},
	}, model.FilterState{}, model.SortByYear)
}

func TestPastPapersText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PastPapers(&buf, sampleTree(), Options{Links: true, Styles: PlainStyles()}))
	out := buf.String()

	assert.Contains(t, out, "2023 2 papers")
	assert.Contains(t, out, "2022 1 papers")
	assert.Contains(t, out, "Group 3 - Individuals and Societies 2")
	assert.Contains(t, out, "Business Management 2")
	assert.Contains(t, out, "Paper 1 [HL] [TZ1] [P1] past_papers/bm_p1.pdf")
	assert.Contains(t, out, "Mark Scheme 1 [HL] [P1] [MS] past_papers/bm_p1_ms.pdf")

	// newest year first, paper before its mark scheme
	assert.Less(t, strings.Index(out, "2023 2 papers"), strings.Index(out, "2022 1 papers"))
	assert.Less(t, strings.Index(out, "bm_p1.pdf"), strings.Index(out, "bm_p1_ms.pdf"))
}

func TestPastPapersText_NoLinks(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PastPapers(&buf, sampleTree(), Options{Styles: PlainStyles()}))
	assert.NotContains(t, buf.String(), "past_papers/")
}

func TestText_Empty(t *testing.T) {
	empty := &tree.Tree[model.Paper]{Roots: []*tree.Node[model.Paper]{}}
	var buf bytes.Buffer
	require.NoError(t, PastPapers(&buf, empty, Options{Styles: PlainStyles()}))
	assert.Equal(t, NoPapers+"\n", buf.String())

	buf.Reset()
	specimens := tree.NewBuilder(nil).BuildSpecimen(nil, model.SpecimenFilter{})
	require.NoError(t, SpecimenPapers(&buf, specimens, Options{Styles: PlainStyles()}))
	assert.Equal(t, NoSpecimenPapers+"\n", buf.String())
}

func TestSpecimenPapersText(t *testing.T) {
	tr := tree.NewBuilder(nil).BuildSpecimen([]model.SpecimenPaper{
		{Name: "Paper 1", Subject: "Biology", Group: "Group 4 - Experimental Sciences"},
		{Name: "Paper 2", Subject: "Biology", Group: "Group 4 - Experimental Sciences"},
	}, model.SpecimenFilter{})

	var buf bytes.Buffer
	require.NoError(t, SpecimenPapers(&buf, tr, Options{Links: true, Styles: PlainStyles()}))
	out := buf.String()

	assert.Contains(t, out, "Group 4 - Experimental Sciences 2")
	assert.NotContains(t, out, "2 papers")
	assert.Contains(t, out, "Biology 2")
	assert.Contains(t, out, "Paper 1 specimen_papers/Group%204%20-%20Experimental%20Sciences/Biology/Paper_1.pdf")
}

func TestCounts(t *testing.T) {
	assert.Equal(t, "5 papers", PastPaperCount(0, 5))
	assert.Equal(t, "5", PastPaperCount(1, 5))
	assert.Equal(t, "5", SpecimenCount(0, 5))
}

func TestPastPapersResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, PastPapersResult(sampleTree())))

	var got struct {
		Layout []string `json:"layout"`
		Empty  bool     `json:"empty"`
		Total  int      `json:"total"`
		Roots  []struct {
			Key      string `json:"key"`
			Label    string `json:"label"`
			Count    int    `json:"count"`
			Children []struct {
				Key      string `json:"key"`
				Children []struct {
					Key   string `json:"key"`
					Label string `json:"label"`
					Items []struct {
						Name  string   `json:"name"`
						Title string   `json:"title"`
						Tags  []string `json:"tags"`
						Link  string   `json:"link"`
					} `json:"items"`
				} `json:"children"`
			} `json:"children"`
		} `json:"roots"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, []string{"year", "group", "subject"}, got.Layout)
	assert.False(t, got.Empty)
	assert.Equal(t, 3, got.Total)
	require.Len(t, got.Roots, 2)
	assert.Equal(t, "2023", got.Roots[0].Key)

	subject := got.Roots[0].Children[0].Children[0]
	assert.Equal(t, "business_management", subject.Key)
	assert.Equal(t, "Business Management", subject.Label)
	require.Len(t, subject.Items, 2)
	assert.Equal(t, "Paper 1", subject.Items[0].Title)
	assert.Equal(t, "past_papers/bm_p1.pdf", subject.Items[0].Link)
	assert.Equal(t, []string{"HL", "TZ1", "P1"}, subject.Items[0].Tags)
}

func TestResult_Empty(t *testing.T) {
	r := SpecimenResult(tree.NewBuilder(nil).BuildSpecimen(nil, model.SpecimenFilter{}))
	assert.True(t, r.Empty)
	assert.Equal(t, NoSpecimenPapers, r.Message)
	assert.NotNil(t, r.Roots)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, r))
	assert.Contains(t, buf.String(), `"roots": []`)
}
