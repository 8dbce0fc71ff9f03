package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mesh-intelligence/objcat/pkg/types"
)

// ReadLines returns the lines of the named document in order.
// Returns an error wrapping types.ErrNotFound if the document does not exist.
func (b *Backend) ReadLines(name string) ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreClosed
	}
	if name == "" {
		return nil, fmt.Errorf("document name: %w", types.ErrInvalidName)
	}

	var count int
	err := b.db.QueryRow("SELECT line_count FROM documents WHERE name = ?", name).Scan(&count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("reading %s: %w", name, types.ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}

	rows, err := b.db.Query("SELECT text FROM document_lines WHERE name = ? ORDER BY line_no", name)
	if err != nil {
		return nil, fmt.Errorf("querying lines of %s: %w", name, err)
	}
	defer rows.Close()

	lines := make([]string, 0, count)
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, fmt.Errorf("scanning line of %s: %w", name, err)
		}
		lines = append(lines, text)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lines of %s: %w", name, err)
	}
	return lines, nil
}

// WriteLines replaces the named document with lines in a single
// transaction and assigns it a new revision.
func (b *Backend) WriteLines(name string, lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return types.ErrStoreClosed
	}
	if name == "" {
		return fmt.Errorf("document name: %w", types.ErrInvalidName)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning write of %s: %w", name, err)
	}
	defer tx.Rollback()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = tx.Exec(
		`INSERT INTO documents (name, revision, line_count, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		   revision = excluded.revision,
		   line_count = excluded.line_count,
		   updated_at = excluded.updated_at`,
		name, generateRevision(), len(lines), now,
	)
	if err != nil {
		return fmt.Errorf("upserting document %s: %w", name, err)
	}

	if _, err := tx.Exec("DELETE FROM document_lines WHERE name = ?", name); err != nil {
		return fmt.Errorf("clearing lines of %s: %w", name, err)
	}

	stmt, err := tx.Prepare("INSERT INTO document_lines (name, line_no, text) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing line insert: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		if _, err := stmt.Exec(name, i, line); err != nil {
			return fmt.Errorf("inserting line %d of %s: %w", i, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", name, err)
	}
	return nil
}

// Names returns the stored document names ordered by name.
func (b *Backend) Names() ([]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreClosed
	}
	rows, err := b.db.Query("SELECT name FROM documents ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("scanning document name: %w", err)
		}
		names = append(names, n)
	}
	return names, rows.Err()
}
