// internal/history/store.go
package history

import (
	"database/sql"
	"log"
	"strings"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// Store manages query history persistence
type Store struct {
	db *sql.DB
}

// NewStore creates a new history store in the XDG data directory
func NewStore() (*Store, error) {
	dbPath, err := xdg.DataFile("hhd/history.db")
	if err != nil {
		return nil, err
	}
	return Open(dbPath)
}

// Open creates a history store backed by the SQLite file at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			language TEXT NOT NULL,
			pattern_type TEXT NOT NULL,
			mode TEXT NOT NULL,
			input TEXT NOT NULL,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			duration_ms INTEGER NOT NULL,
			status TEXT NOT NULL,
			summary TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_history_selection ON history(language, pattern_type);
		CREATE INDEX IF NOT EXISTS idx_history_executed_at ON history(executed_at);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	if err := store.cleanup(); err != nil {
		log.Printf("history cleanup: %v", err)
	}
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new run into history
func (s *Store) Add(entry *HistoryEntry) error {
	res, err := s.db.Exec(`
		INSERT INTO history (language, pattern_type, mode, input, executed_at, duration_ms, status, summary)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Language,
		entry.PatternType,
		entry.Mode,
		entry.Input,
		entry.ExecutedAt,
		entry.DurationMs,
		entry.Status,
		entry.Summary,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// List returns the most recent entries of a language and pattern type
func (s *Store) List(language, patternType string, limit, offset int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, language, pattern_type, mode, input, executed_at, duration_ms, status, summary
		FROM history
		WHERE language = ? AND pattern_type = ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, language, patternType, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// likeEscaper makes LIKE wildcards in user input match literally
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Search finds entries of a language and pattern type by input substring
func (s *Store) Search(language, patternType, substr string, limit int) ([]HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, language, pattern_type, mode, input, executed_at, duration_ms, status, summary
		FROM history
		WHERE language = ? AND pattern_type = ? AND input LIKE ? ESCAPE '\'
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, language, patternType, "%"+likeEscaper.Replace(substr)+"%", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// scanEntries scans rows into HistoryEntry slice
func scanEntries(rows *sql.Rows) ([]HistoryEntry, error) {
	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var summary sql.NullString
		if err := rows.Scan(&e.ID, &e.Language, &e.PatternType, &e.Mode, &e.Input,
			&e.ExecutedAt, &e.DurationMs, &e.Status, &summary); err != nil {
			return nil, err
		}
		e.Summary = summary.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a history entry by ID
func (s *Store) Delete(id int64) error {
	_, err := s.db.Exec("DELETE FROM history WHERE id = ?", id)
	return err
}

// Count returns the number of entries of a language and pattern type
func (s *Store) Count(language, patternType string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM history WHERE language = ? AND pattern_type = ?
	`, language, patternType).Scan(&count)
	return count, err
}

// cleanup removes history entries older than 90 days
func (s *Store) cleanup() error {
	_, err := s.db.Exec(`
		DELETE FROM history
		WHERE executed_at < datetime('now', '-90 days')
	`)
	return err
}
