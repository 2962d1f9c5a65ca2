// Package store persists pipeline artifacts (ToC entries, chunks, captions,
// validation report) in a SQLite database so they can be queried after a run
// without re-reading the JSONL files.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/docsift/docsift/chunk"
	"github.com/docsift/docsift/report"
	"github.com/docsift/docsift/toc"
	"github.com/docsift/docsift/validate"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS toc_entries (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	doc_title TEXT NOT NULL,
	section_id TEXT NOT NULL,
	title TEXT NOT NULL,
	page INTEGER NOT NULL,
	level INTEGER NOT NULL,
	parent_id TEXT,
	full_path TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_toc_section ON toc_entries(section_id);

CREATE TABLE IF NOT EXISTS chunks (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	position INTEGER NOT NULL,
	section_id TEXT NOT NULL,
	section_path TEXT NOT NULL,
	title TEXT NOT NULL,
	page_start INTEGER NOT NULL,
	page_end INTEGER NOT NULL,
	content TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_chunks_section ON chunks(section_id);

CREATE TABLE IF NOT EXISTS captions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	chunk_id INTEGER NOT NULL REFERENCES chunks(id) ON DELETE CASCADE,
	kind TEXT NOT NULL CHECK (kind IN ('figure', 'table')),
	ref_id TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_captions_chunk ON captions(chunk_id);

CREATE TABLE IF NOT EXISTS validation (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	report TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS metrics (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	report TEXT NOT NULL,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Store wraps the SQLite database holding one document's artifacts.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on&_busy_timeout=30000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// ReplaceTOC replaces all stored ToC entries in one transaction.
func (s *Store) ReplaceTOC(ctx context.Context, entries []toc.Entry) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM toc_entries"); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO toc_entries (doc_title, section_id, title, page, level, parent_id, full_path)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, e := range entries {
			var parent sql.NullString
			if e.ParentID != nil {
				parent = sql.NullString{String: *e.ParentID, Valid: true}
			}
			if _, err := stmt.ExecContext(ctx, e.DocTitle, e.SectionID, e.Title,
				e.Page, e.Level, parent, e.FullPath); err != nil {
				return err
			}
		}
		return nil
	})
}

// ReplaceChunks replaces all stored chunks and their captions in one
// transaction, preserving document order via the position column.
func (s *Store) ReplaceChunks(ctx context.Context, chunks []chunk.Chunk) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
			return err
		}
		chunkStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO chunks (position, section_id, section_path, title, page_start, page_end, content)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer chunkStmt.Close()

		capStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO captions (chunk_id, kind, ref_id) VALUES (?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer capStmt.Close()

		for i, c := range chunks {
			res, err := chunkStmt.ExecContext(ctx, i, c.SectionID, c.SectionPath,
				c.Title, c.StartPage(), c.EndPage(), c.Content)
			if err != nil {
				return err
			}
			chunkID, err := res.LastInsertId()
			if err != nil {
				return err
			}
			for _, f := range c.Figures {
				if _, err := capStmt.ExecContext(ctx, chunkID, "figure", f.ID); err != nil {
					return err
				}
			}
			for _, t := range c.Tables {
				if _, err := capStmt.ExecContext(ctx, chunkID, "table", t.ID); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// SaveValidation stores the validation report, replacing any previous one.
func (s *Store) SaveValidation(ctx context.Context, r validate.Report) error {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding validation report: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO validation (id, report) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET report = excluded.report, created_at = CURRENT_TIMESTAMP
	`, string(b))
	return err
}

// Validation returns the stored validation report, or sql.ErrNoRows when
// none has been saved.
func (s *Store) Validation(ctx context.Context) (validate.Report, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT report FROM validation WHERE id = 1").Scan(&raw)
	if err != nil {
		return validate.Report{}, err
	}
	var r validate.Report
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		return validate.Report{}, fmt.Errorf("decoding validation report: %w", err)
	}
	return r, nil
}

// SaveMetrics stores the metrics report, replacing any previous one.
func (s *Store) SaveMetrics(ctx context.Context, m report.Metrics) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO metrics (id, report) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET report = excluded.report, created_at = CURRENT_TIMESTAMP
	`, string(b))
	return err
}

// Metrics returns the stored metrics, or sql.ErrNoRows when none have been
// saved.
func (s *Store) Metrics(ctx context.Context) (report.Metrics, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, "SELECT report FROM metrics WHERE id = 1").Scan(&raw)
	if err != nil {
		return report.Metrics{}, err
	}
	var m report.Metrics
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return report.Metrics{}, fmt.Errorf("decoding metrics: %w", err)
	}
	return m, nil
}

// Chunks returns all stored chunks in document order, captions included.
func (s *Store) Chunks(ctx context.Context) ([]chunk.Chunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, section_id, section_path, title, page_start, page_end, content
		FROM chunks ORDER BY position
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []chunk.Chunk
	var ids []int64
	for rows.Next() {
		var id int64
		var c chunk.Chunk
		var start, end int
		if err := rows.Scan(&id, &c.SectionID, &c.SectionPath, &c.Title, &start, &end, &c.Content); err != nil {
			return nil, err
		}
		if end > start {
			c.PageRange = fmt.Sprintf("%d,%d", start, end)
		} else {
			c.PageRange = fmt.Sprintf("%d", start)
		}
		c.Figures = []chunk.Caption{}
		c.Tables = []chunk.Caption{}
		out = append(out, c)
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, id := range ids {
		if err := s.loadCaptions(ctx, id, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Store) loadCaptions(ctx context.Context, chunkID int64, c *chunk.Chunk) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, ref_id FROM captions WHERE chunk_id = ? ORDER BY id
	`, chunkID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var kind, ref string
		if err := rows.Scan(&kind, &ref); err != nil {
			return err
		}
		switch kind {
		case "figure":
			c.Figures = append(c.Figures, chunk.Caption{ID: ref})
		case "table":
			c.Tables = append(c.Tables, chunk.Caption{ID: ref})
		}
	}
	return rows.Err()
}

// TOC returns all stored ToC entries in document order.
func (s *Store) TOC(ctx context.Context) ([]toc.Entry, error) {
	return s.queryTOC(ctx, `
		SELECT doc_title, section_id, title, page, level, parent_id, full_path
		FROM toc_entries ORDER BY id
	`)
}

// TOCByChapter returns the stored ToC entries whose id falls under the given
// level-1 chapter, in document order.
func (s *Store) TOCByChapter(ctx context.Context, chapter string) ([]toc.Entry, error) {
	return s.queryTOC(ctx, `
		SELECT doc_title, section_id, title, page, level, parent_id, full_path
		FROM toc_entries
		WHERE section_id = ? OR section_id LIKE ? || '.%'
		ORDER BY id
	`, chapter, chapter)
}

func (s *Store) queryTOC(ctx context.Context, query string, args ...any) ([]toc.Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []toc.Entry
	for rows.Next() {
		var e toc.Entry
		var parent sql.NullString
		if err := rows.Scan(&e.DocTitle, &e.SectionID, &e.Title, &e.Page, &e.Level, &parent, &e.FullPath); err != nil {
			return nil, err
		}
		if parent.Valid {
			p := parent.String
			e.ParentID = &p
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// SectionsWithoutCaptions returns section paths of stored chunks that have
// no caption of the given kind ("figure" or "table").
func (s *Store) SectionsWithoutCaptions(ctx context.Context, kind string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT section_path FROM chunks c
		WHERE NOT EXISTS (
			SELECT 1 FROM captions WHERE chunk_id = c.id AND kind = ?
		)
		ORDER BY position
	`, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
