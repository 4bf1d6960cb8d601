package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fwojciec/ficbot"
)

// Compile-time interface verification.
var _ ficbot.FicService = (*FicService)(nil)

// FicService implements ficbot.FicService using SQLite.
//
// Fics are stored as JSON records keyed by Fic.Key, with every normalized
// link indexed in the links table. When two fics share a link, the one
// stored last owns it.
type FicService struct {
	db *DB
}

// NewFicService creates a new FicService.
func NewFicService(db *DB) *FicService {
	return &FicService{db: db}
}

// CreateFic stores a fic and indexes its links.
func (s *FicService) CreateFic(ctx context.Context, fic *ficbot.Fic) error {
	if err := fic.Validate(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var generation int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(generation), 0) FROM fics`).Scan(&generation); err != nil {
		return err
	}
	if _, err := storeFic(ctx, tx, fic, generation); err != nil {
		return err
	}
	return tx.Commit()
}

// ReplaceFics replaces the fic collection with fics. Records whose content
// is unchanged are only re-linked, and fics missing from the new collection
// are removed along with their links.
func (s *FicService) ReplaceFics(ctx context.Context, fics []*ficbot.Fic) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var generation int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(generation), 0) + 1 FROM fics`).Scan(&generation); err != nil {
		return 0, err
	}

	written := 0
	for _, fic := range fics {
		if err := fic.Validate(); err != nil {
			return 0, fmt.Errorf("fic %q: %w", fic.Title, err)
		}
		changed, err := storeFic(ctx, tx, fic, generation)
		if err != nil {
			return 0, fmt.Errorf("fic %q: %w", fic.Key(), err)
		}
		if changed {
			written++
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM fics WHERE generation <> ?`, generation); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return written, nil
}

// storeFic upserts a fic record and indexes its links and authors. It
// reports whether the record content changed.
func storeFic(ctx context.Context, tx *sql.Tx, fic *ficbot.Fic, generation int64) (bool, error) {
	fic.EnsureAuthors()
	record, err := json.Marshal(fic)
	if err != nil {
		return false, fmt.Errorf("failed to encode fic record: %w", err)
	}
	key := fic.Key()
	hash := hashRecord(record)

	var oldHash string
	err = tx.QueryRowContext(ctx, `SELECT record_hash FROM fics WHERE key = ?`, key).Scan(&oldHash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}
	changed := oldHash != hash

	if changed {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO fics (key, title, modified, record, record_hash, generation)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(key) DO UPDATE SET
				title = excluded.title,
				modified = excluded.modified,
				record = excluded.record,
				record_hash = excluded.record_hash,
				generation = excluded.generation
		`, key, fic.Title, formatTime(fic.Modified), string(record), hash, generation); err != nil {
			return false, err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM links WHERE fic_key = ?`, key); err != nil {
			return false, err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM fic_authors WHERE fic_key = ?`, key); err != nil {
			return false, err
		}
		for i, a := range fic.Authors {
			if a == nil || a.Link == "" {
				continue
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT OR IGNORE INTO fic_authors (fic_key, author_link, author_name, position)
				VALUES (?, ?, ?, ?)
			`, key, a.Link, a.Name, i); err != nil {
				return false, err
			}
		}
	} else {
		if _, err := tx.ExecContext(ctx, `UPDATE fics SET generation = ? WHERE key = ?`, generation, key); err != nil {
			return false, err
		}
	}

	// Links are claimed even when the record is unchanged, so that the
	// latest fic to mention a link owns it.
	for _, link := range fic.AllLinks() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO links (link, fic_key) VALUES (?, ?)
			ON CONFLICT(link) DO UPDATE SET fic_key = excluded.fic_key
		`, ficbot.NormalizeLink(link), key); err != nil {
			return false, err
		}
	}
	return changed, nil
}

// ReplaceAuthors replaces the author collection.
func (s *FicService) ReplaceAuthors(ctx context.Context, authors []*ficbot.Author) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM authors`); err != nil {
		return err
	}
	for _, a := range authors {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("author %q: %w", a.Name, err)
		}
		record, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("failed to encode author record: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO authors (link, name, record) VALUES (?, ?, ?)
			ON CONFLICT(link) DO UPDATE SET name = excluded.name, record = excluded.record
		`, a.Link, a.Name, string(record)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// FindFicByLink retrieves the fic that owns link.
func (s *FicService) FindFicByLink(ctx context.Context, link string) (*ficbot.Fic, error) {
	var record string
	err := s.db.QueryRowContext(ctx, `
		SELECT f.record
		FROM links l
		JOIN fics f ON f.key = l.fic_key
		WHERE l.link = ?
	`, ficbot.NormalizeLink(link)).Scan(&record)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ficbot.Errorf(ficbot.ENOTFOUND, "fic not found")
	}
	if err != nil {
		return nil, err
	}
	return decodeFic(record)
}

// FindFicsByAuthor retrieves the fics credited to an author link, most
// recently modified first.
func (s *FicService) FindFicsByAuthor(ctx context.Context, authorLink string) ([]*ficbot.Fic, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.record
		FROM fic_authors fa
		JOIN fics f ON f.key = fa.fic_key
		WHERE fa.author_link = ?
		ORDER BY f.modified DESC, f.key
	`, authorLink)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fics []*ficbot.Fic
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		fic, err := decodeFic(record)
		if err != nil {
			return nil, err
		}
		fics = append(fics, fic)
	}
	return fics, rows.Err()
}

// FindAuthors retrieves the authors whose link is query or whose name is
// query, ignoring case. Authors known only from fic credits are found when
// the author collection has no match.
func (s *FicService) FindAuthors(ctx context.Context, query string) ([]*ficbot.Author, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record FROM authors
		WHERE link = ? OR name = ? COLLATE NOCASE
		ORDER BY name, link
	`, query, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*ficbot.Author
	for rows.Next() {
		var record string
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		a, err := decodeAuthor(record)
		if err != nil {
			return nil, err
		}
		authors = append(authors, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(authors) > 0 {
		return authors, nil
	}
	return s.findCreditedAuthors(ctx, query)
}

func (s *FicService) findCreditedAuthors(ctx context.Context, query string) ([]*ficbot.Author, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT author_link, MIN(author_name)
		FROM fic_authors
		WHERE author_link = ? OR author_name = ? COLLATE NOCASE
		GROUP BY author_link
		ORDER BY MIN(author_name), author_link
	`, query, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var authors []*ficbot.Author
	for rows.Next() {
		var a ficbot.Author
		if err := rows.Scan(&a.Link, &a.Name); err != nil {
			return nil, err
		}
		authors = append(authors, &a)
	}
	return authors, rows.Err()
}

// Stats returns the number of links, fics and authors stored. Authors
// count both the author collection and authors credited on fics.
func (s *FicService) Stats(ctx context.Context) (ficbot.Stats, error) {
	var stats ficbot.Stats
	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM links),
			(SELECT COUNT(*) FROM fics),
			(SELECT COUNT(*) FROM (SELECT link FROM authors UNION SELECT author_link FROM fic_authors))
	`).Scan(&stats.Links, &stats.Fics, &stats.Authors)
	return stats, err
}
