package rgb565

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Entry describes a raw file that has been rendered.
type Entry struct {
	Source string
	SHA1   string
	Width  int
	Height int
	Output string
}

// Catalog records which raw files have been rendered so that unchanged files
// can be skipped.
type Catalog struct {
	db *sql.DB
}

func NewCatalog(file string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS render (id INTEGER PRIMARY KEY NOT NULL, source TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, width INTEGER NOT NULL, height INTEGER NOT NULL, output TEXT NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Catalog{
		db: db,
	}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Lookup returns the entry for source, or nil if there isn't one.
func (c *Catalog) Lookup(source string) (*Entry, error) {
	e := Entry{Source: source}
	switch err := c.db.QueryRow("SELECT sha1, width, height, output FROM render WHERE source = ?", source).Scan(&e.SHA1, &e.Width, &e.Height, &e.Output); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		return &e, nil
	default:
		return nil, err
	}
}

// Record adds or replaces the entry for e.Source.
func (c *Catalog) Record(e Entry) error {
	if _, err := c.db.Exec("INSERT OR REPLACE INTO render (source, sha1, width, height, output) VALUES (?, ?, ?, ?, ?)", e.Source, e.SHA1, e.Width, e.Height, e.Output); err != nil {
		return err
	}
	return nil
}

// List returns all entries ordered by source.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query("SELECT source, sha1, width, height, output FROM render ORDER BY source")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Source, &e.SHA1, &e.Width, &e.Height, &e.Output); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
