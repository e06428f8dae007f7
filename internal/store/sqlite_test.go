package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rcliao/paper-catalog/internal/classify"
	"github.com/rcliao/paper-catalog/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDoc() *model.Document {
	return &model.Document{
		Years: []string{"2022", "2023"},
		PastPapers: model.Catalog{
			"2022": {
				"physics": {
					{Name: "phys_p2.pdf", Code: "PHYS_P2", Level: "SL", Timezone: "TZ2", PaperNumber: "2", Session: "May"},
					{Name: "phys_p1.pdf", Code: "PHYS_P1", Level: "SL", Timezone: "TZ2", PaperNumber: "1", IsMarkscheme: true},
				},
			},
			"2023": {
				"astrophysics": {
					{Name: "astro.pdf"},
				},
				"economics": {
					{Name: "econ_res.zip", Code: "ECON_RES", IsResource: true},
				},
				"tok": {},
			},
		},
		SpecimenPapers: []model.SpecimenPaper{
			{Name: "Paper 2", Subject: "Physics", Group: "Sciences"},
			{Name: "Paper 1", Subject: "Physics", Group: "Sciences"},
		},
	}
}

func TestImportAndDocument(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rec, err := s.Import(ctx, ImportParams{Doc: testDoc(), Source: "papers_data.json"})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if rec.ID == "" {
		t.Error("expected non-empty import ID")
	}
	if rec.Papers != 4 || rec.Specimens != 2 || rec.Years != 2 {
		t.Errorf("unexpected import counts: %+v", rec)
	}

	got, err := s.Document(ctx)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if !reflect.DeepEqual(got, testDoc()) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, testDoc())
	}
}

func TestDocumentBeforeImport(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Document(context.Background())
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
	_, err = s.LastImport(context.Background())
	if !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty from LastImport, got %v", err)
	}
}

func TestImportReplaces(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if _, err := s.Import(ctx, ImportParams{Doc: testDoc(), Source: "first"}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	second := &model.Document{
		Years: []string{"2024"},
		PastPapers: model.Catalog{
			"2024": {"biology": {{Name: "bio.pdf", Code: "BIO"}}},
		},
		SpecimenPapers: []model.SpecimenPaper{},
	}
	if _, err := s.Import(ctx, ImportParams{Doc: second, Source: "second"}); err != nil {
		t.Fatalf("second import: %v", err)
	}

	got, err := s.Document(ctx)
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Errorf("expected second document only, got %+v", got)
	}

	last, err := s.LastImport(ctx)
	if err != nil {
		t.Fatalf("last import: %v", err)
	}
	if last.Source != "second" {
		t.Errorf("expected last import 'second', got %q", last.Source)
	}
}

func TestImportNilDocument(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Import(context.Background(), ImportParams{}); err == nil {
		t.Error("expected error for nil document")
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	if _, err := s.Import(ctx, ImportParams{Doc: testDoc(), Source: "test"}); err != nil {
		t.Fatalf("import: %v", err)
	}

	st, err := s.Stats(ctx, "", classify.Default())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.Years != 2 || st.Subjects != 4 || st.Papers != 4 {
		t.Errorf("unexpected totals: %+v", st)
	}
	if st.Markschemes != 1 || st.Resources != 1 || st.Specimens != 2 {
		t.Errorf("unexpected type counts: %+v", st)
	}
	if len(st.PerYear) != 2 || st.PerYear[0].Year != "2023" || st.PerYear[0].Papers != 2 {
		t.Errorf("unexpected per-year stats: %+v", st.PerYear)
	}
	if len(st.PerSubject) != 3 {
		t.Fatalf("expected 3 subjects with papers, got %+v", st.PerSubject)
	}
	first := st.PerSubject[0]
	if first.Subject != "physics" || first.Papers != 2 || first.Group != classify.GroupSciences {
		t.Errorf("unexpected first subject: %+v", first)
	}
	if st.UnknownCount != 1 {
		t.Errorf("expected 1 unknown subject, got %d", st.UnknownCount)
	}
	if st.LastImport == nil || st.LastImport.Source != "test" {
		t.Errorf("expected last import, got %+v", st.LastImport)
	}
}
