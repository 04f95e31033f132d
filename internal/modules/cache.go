package modules

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Cache persists module export lists between runs, keyed by module path
// and content hash. Entries are stamped with the build id of the run
// that wrote them, which makes stale-entry investigations tractable.
type Cache struct {
	db      *sql.DB
	buildID string
}

const cacheSchema = `
CREATE TABLE IF NOT EXISTS exports (
	path     TEXT NOT NULL,
	hash     TEXT NOT NULL,
	names    TEXT NOT NULL,
	build_id TEXT NOT NULL,
	PRIMARY KEY (path, hash)
);`

// OpenCache opens (and initializes if needed) the export cache at path.
// Use ":memory:" for an ephemeral cache.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open export cache: %w", err)
	}
	if _, err := db.Exec(cacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init export cache: %w", err)
	}
	return &Cache{db: db, buildID: uuid.NewString()}, nil
}

// BuildID is the id stamped on entries written by this session.
func (c *Cache) BuildID() string { return c.buildID }

// Get returns the cached export list for (path, hash), if present.
func (c *Cache) Get(path, hash string) ([]string, bool, error) {
	var raw string
	err := c.db.QueryRow(
		`SELECT names FROM exports WHERE path = ? AND hash = ?`, path, hash,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read export cache: %w", err)
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, false, fmt.Errorf("decode export cache entry: %w", err)
	}
	return names, true, nil
}

// Put stores the export list for (path, hash), replacing any previous
// entry for the same key.
func (c *Cache) Put(path, hash string, names []string) error {
	raw, err := json.Marshal(names)
	if err != nil {
		return fmt.Errorf("encode export cache entry: %w", err)
	}
	_, err = c.db.Exec(
		`INSERT OR REPLACE INTO exports (path, hash, names, build_id) VALUES (?, ?, ?, ?)`,
		path, hash, string(raw), c.buildID,
	)
	if err != nil {
		return fmt.Errorf("write export cache: %w", err)
	}
	return nil
}

func (c *Cache) Close() error {
	return c.db.Close()
}
