package store

import (
	"context"
	"os"

	"github.com/rcliao/paper-catalog/internal/classify"
)

// Stats holds catalog index statistics.
type Stats struct {
	DBPath       string         `json:"db_path"`
	DBSizeBytes  int64          `json:"db_size_bytes"`
	Years        int            `json:"years"`
	Subjects     int            `json:"subjects"`
	Papers       int            `json:"papers"`
	Markschemes  int            `json:"markschemes"`
	Resources    int            `json:"resources"`
	Specimens    int            `json:"specimens"`
	PerYear      []YearStats    `json:"per_year"`
	PerSubject   []SubjectStats `json:"per_subject"`
	UnknownCount int            `json:"unknown_subjects"`
	LastImport   *ImportRecord  `json:"last_import,omitempty"`
}

// YearStats holds per-year counts.
type YearStats struct {
	Year   string `json:"year"`
	Papers int    `json:"papers"`
}

// SubjectStats holds per-subject counts.
type SubjectStats struct {
	Subject string `json:"subject"`
	Label   string `json:"label"`
	Group   string `json:"group"`
	Papers  int    `json:"papers"`
}

// Stats returns index statistics. Subjects are grouped with c.
func (s *SQLiteStore) Stats(ctx context.Context, dbPath string, c *classify.Classifier) (*Stats, error) {
	if c == nil {
		c = classify.Default()
	}
	st := &Stats{DBPath: dbPath, PerYear: []YearStats{}, PerSubject: []SubjectStats{}}

	// DB file size
	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT year) FROM subjects`).Scan(&st.Years)
	s.db.QueryRowContext(ctx, `SELECT COUNT(DISTINCT subject) FROM subjects`).Scan(&st.Subjects)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers`).Scan(&st.Papers)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers WHERE is_markscheme = 1`).Scan(&st.Markschemes)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM papers WHERE is_resource = 1`).Scan(&st.Resources)
	s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM specimen_papers`).Scan(&st.Specimens)

	if rec, err := s.LastImport(ctx); err == nil {
		st.LastImport = rec
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT year, COUNT(*) FROM papers
		GROUP BY year ORDER BY year DESC`)
	if err != nil {
		return st, err
	}
	for rows.Next() {
		var ys YearStats
		rows.Scan(&ys.Year, &ys.Papers)
		st.PerYear = append(st.PerYear, ys)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `
		SELECT subject, COUNT(*) AS cnt FROM papers
		GROUP BY subject ORDER BY cnt DESC, subject`)
	if err != nil {
		return st, err
	}
	defer rows.Close()

	for rows.Next() {
		var ss SubjectStats
		rows.Scan(&ss.Subject, &ss.Papers)
		ss.Label = classify.FormatLabel(ss.Subject)
		ss.Group = c.Classify(ss.Subject)
		if !c.Known(ss.Subject) {
			st.UnknownCount++
		}
		st.PerSubject = append(st.PerSubject, ss)
	}

	return st, nil
}
