package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/paper-catalog/internal/model"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db      *sql.DB
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS imports (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		imported_at TEXT NOT NULL,
		years       INTEGER NOT NULL,
		papers      INTEGER NOT NULL,
		specimens   INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS years (
		year TEXT PRIMARY KEY,
		seq  INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS subjects (
		year    TEXT NOT NULL,
		subject TEXT NOT NULL,
		PRIMARY KEY (year, subject)
	);

	CREATE TABLE IF NOT EXISTS papers (
		id            TEXT PRIMARY KEY,
		year          TEXT NOT NULL,
		subject       TEXT NOT NULL,
		seq           INTEGER NOT NULL,
		name          TEXT NOT NULL,
		code          TEXT,
		level         TEXT,
		timezone      TEXT,
		paper_number  TEXT,
		session       TEXT,
		is_markscheme INTEGER NOT NULL DEFAULT 0,
		is_resource   INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (year, subject) REFERENCES subjects(year, subject)
	);
	CREATE INDEX IF NOT EXISTS idx_papers_year_subject ON papers(year, subject, seq);
	CREATE INDEX IF NOT EXISTS idx_papers_subject ON papers(subject);

	CREATE TABLE IF NOT EXISTS specimen_papers (
		id      TEXT PRIMARY KEY,
		seq     INTEGER NOT NULL,
		name    TEXT NOT NULL,
		subject TEXT NOT NULL,
		grp     TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_specimen_seq ON specimen_papers(seq);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Import replaces the whole indexed catalog in one transaction.
func (s *SQLiteStore) Import(ctx context.Context, p ImportParams) (*ImportRecord, error) {
	if p.Doc == nil {
		return nil, fmt.Errorf("import: nil document")
	}
	doc := p.Doc
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	for _, table := range []string{"papers", "subjects", "years", "specimen_papers"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return nil, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, y := range doc.Years {
		_, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO years (year, seq) VALUES (?, ?)`, y, i)
		if err != nil {
			return nil, fmt.Errorf("insert year: %w", err)
		}
	}

	papers := 0
	for _, year := range sortedKeys(doc.PastPapers) {
		subjects := doc.PastPapers[year]
		for _, subject := range sortedKeys(subjects) {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO subjects (year, subject) VALUES (?, ?)`, year, subject)
			if err != nil {
				return nil, fmt.Errorf("insert subject: %w", err)
			}
			for seq, pp := range subjects[subject] {
				_, err = tx.ExecContext(ctx,
					`INSERT INTO papers (id, year, subject, seq, name, code, level, timezone, paper_number, session, is_markscheme, is_resource)
					 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
					s.newID(), year, subject, seq, pp.Name,
					nullable(pp.Code), nullable(pp.Level), nullable(pp.Timezone),
					nullable(pp.PaperNumber), nullable(pp.Session),
					pp.IsMarkscheme, pp.IsResource)
				if err != nil {
					return nil, fmt.Errorf("insert paper: %w", err)
				}
				papers++
			}
		}
	}

	for seq, sp := range doc.SpecimenPapers {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO specimen_papers (id, seq, name, subject, grp) VALUES (?, ?, ?, ?, ?)`,
			s.newID(), seq, sp.Name, sp.Subject, sp.Group)
		if err != nil {
			return nil, fmt.Errorf("insert specimen paper: %w", err)
		}
	}

	rec := &ImportRecord{
		ID:         s.newID(),
		Source:     p.Source,
		ImportedAt: now,
		Years:      len(doc.Years),
		Papers:     papers,
		Specimens:  len(doc.SpecimenPapers),
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO imports (id, source, imported_at, years, papers, specimens) VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, now.Format(time.RFC3339Nano), rec.Years, rec.Papers, rec.Specimens)
	if err != nil {
		return nil, fmt.Errorf("insert import: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return rec, nil
}

// Document rebuilds the papers document, keeping paper and specimen order.
func (s *SQLiteStore) Document(ctx context.Context) (*model.Document, error) {
	if _, err := s.LastImport(ctx); err != nil {
		return nil, err
	}

	doc := &model.Document{
		Years:          []string{},
		PastPapers:     model.Catalog{},
		SpecimenPapers: []model.SpecimenPaper{},
	}

	rows, err := s.db.QueryContext(ctx, `SELECT year FROM years ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var y string
		if err := rows.Scan(&y); err != nil {
			rows.Close()
			return nil, err
		}
		doc.Years = append(doc.Years, y)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT year, subject FROM subjects`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var year, subject string
		if err := rows.Scan(&year, &subject); err != nil {
			rows.Close()
			return nil, err
		}
		if doc.PastPapers[year] == nil {
			doc.PastPapers[year] = map[string][]model.Paper{}
		}
		doc.PastPapers[year][subject] = []model.Paper{}
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT year, subject, name, code, level, timezone, paper_number, session, is_markscheme, is_resource
		 FROM papers ORDER BY year, subject, seq`)
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		year, subject, p, err := scanPaper(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		doc.PastPapers[year][subject] = append(doc.PastPapers[year][subject], p)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT name, subject, grp FROM specimen_papers ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var sp model.SpecimenPaper
		if err := rows.Scan(&sp.Name, &sp.Subject, &sp.Group); err != nil {
			return nil, err
		}
		doc.SpecimenPapers = append(doc.SpecimenPapers, sp)
	}

	return doc, rows.Err()
}

// LastImport returns the most recent import run, or ErrEmpty.
func (s *SQLiteStore) LastImport(ctx context.Context) (*ImportRecord, error) {
	var rec ImportRecord
	var importedAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source, imported_at, years, papers, specimens
		 FROM imports ORDER BY rowid DESC LIMIT 1`).
		Scan(&rec.ID, &rec.Source, &importedAt, &rec.Years, &rec.Papers, &rec.Specimens)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, err
	}
	rec.ImportedAt, _ = time.Parse(time.RFC3339Nano, importedAt)
	return &rec, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanPaper(row scanner) (year, subject string, p model.Paper, err error) {
	var code, level, timezone, paperNumber, session sql.NullString

	err = row.Scan(&year, &subject, &p.Name, &code, &level, &timezone,
		&paperNumber, &session, &p.IsMarkscheme, &p.IsResource)
	if err != nil {
		return "", "", p, err
	}

	p.Code = code.String
	p.Level = level.String
	p.Timezone = timezone.String
	p.PaperNumber = paperNumber.String
	p.Session = session.String
	return year, subject, p, nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
