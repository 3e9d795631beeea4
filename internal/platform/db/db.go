package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Open a sqlite reference database and verify it is reachable. The catalog
// tables are read-mostly, so a single connection is enough.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", path, err)
	}

	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("openDB: verify sqlite database %q: %w", path, err)
	}

	return db, nil
}
