// Package cache persists fetched SNPedia pages in a local SQLite archive so
// repeated runs put no extra load on the wiki. Entries are never invalidated;
// staleness is an accepted tradeoff.
package cache

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/heiner/snpedia-23andme/pkg/types"
)

const defaultPath = "snpedia-archive.db"

// Store manages the page archive database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the archive at cfg.Path (default snpedia-archive.db
// in the working directory) and creates the schema if it does not exist.
func Open(cfg types.CacheConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultPath
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS pages (
			rsid TEXT PRIMARY KEY,
			body TEXT NOT NULL,
			fetched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS index_rsids (
			rsid TEXT PRIMARY KEY
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Get returns the stored page for rsid. The second return value is false on
// a cache miss; a miss is not an error.
func (s *Store) Get(rsid string) (string, bool, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM pages WHERE rsid = ?`, rsid).Scan(&body)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading page %s: %w", rsid, err)
	}
	return body, true, nil
}

// Put stores (or replaces) the page for rsid. Writes go straight to disk so
// partial progress survives an interrupted run.
func (s *Store) Put(rsid, body string) error {
	_, err := s.db.Exec(
		`INSERT INTO pages (rsid, body, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(rsid) DO UPDATE SET body=excluded.body, fetched_at=excluded.fetched_at`,
		rsid, body, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("storing page %s: %w", rsid, err)
	}
	return nil
}

// Index returns the cached set of rsids known to SNPedia. The map is empty
// when no index has been stored yet.
func (s *Store) Index() (map[string]struct{}, error) {
	rows, err := s.db.Query(`SELECT rsid FROM index_rsids`)
	if err != nil {
		return nil, fmt.Errorf("reading SNP index: %w", err)
	}
	defer rows.Close()

	index := make(map[string]struct{})
	for rows.Next() {
		var rsid string
		if err := rows.Scan(&rsid); err != nil {
			return nil, fmt.Errorf("scanning SNP index: %w", err)
		}
		index[rsid] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading SNP index: %w", err)
	}
	return index, nil
}

// PutIndex replaces the stored SNP index in a single transaction.
func (s *Store) PutIndex(rsids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM index_rsids`); err != nil {
		return fmt.Errorf("clearing SNP index: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO index_rsids (rsid) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, rsid := range rsids {
		if _, err := stmt.Exec(rsid); err != nil {
			return fmt.Errorf("inserting rsid %s: %w", rsid, err)
		}
	}
	return tx.Commit()
}

// Stats returns the number of stored pages and indexed rsids.
func (s *Store) Stats() (pages, indexed int, err error) {
	if err := s.db.QueryRow(`SELECT count(*) FROM pages`).Scan(&pages); err != nil {
		return 0, 0, fmt.Errorf("counting pages: %w", err)
	}
	if err := s.db.QueryRow(`SELECT count(*) FROM index_rsids`).Scan(&indexed); err != nil {
		return 0, 0, fmt.Errorf("counting index: %w", err)
	}
	return pages, indexed, nil
}
