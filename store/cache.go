// Package store caches namespace and annotation definitions in SQLite so
// repeated compilations of documents sharing definitions do not re-read
// their sources. The Cache satisfies the document package's Resolver.
package store

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/openbiodata/belgraph/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS namespaces (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    url       TEXT NOT NULL UNIQUE,
    keyword   TEXT NOT NULL,
    cached_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS namespace_names (
    namespace_id INTEGER NOT NULL REFERENCES namespaces(id) ON DELETE CASCADE,
    name         TEXT NOT NULL,
    encoding     TEXT NOT NULL DEFAULT '',
    UNIQUE(namespace_id, name)
);

CREATE INDEX IF NOT EXISTS idx_namespace_names_lookup
    ON namespace_names(namespace_id, name);
`

// Open opens the cache database at the specified path with the pragmas the
// cache relies on. If logger is provided, logs database operations;
// otherwise operates silently.
func Open(path string, logger *zap.SugaredLogger) (*sql.DB, error) {
	if logger != nil {
		logger.Debugw("Opening cache database", "path", path)
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "open cache database")
	}

	// WAL mode for concurrent reads during writes
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable WAL mode")
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "enable foreign keys")
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set busy timeout")
	}

	return db, nil
}

// Cache is a namespace cache over a SQLite database.
type Cache struct {
	db     *sql.DB
	logger *zap.SugaredLogger
}

// NewCache wraps db, creating the schema if needed.
func NewCache(db *sql.DB, logger *zap.SugaredLogger) (*Cache, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Wrap(err, "create cache schema")
	}
	return &Cache{db: db, logger: logger}, nil
}

// Put stores the members of a namespace under its URL, replacing any
// earlier cache entry for the same URL.
func (c *Cache) Put(url, keyword string, names map[string]string) error {
	tx, err := c.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin cache transaction")
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM namespaces WHERE url = ?", url); err != nil {
		return errors.Wrap(err, "evict stale cache entry")
	}

	res, err := tx.Exec("INSERT INTO namespaces (url, keyword) VALUES (?, ?)", url, keyword)
	if err != nil {
		return errors.Wrapf(err, "insert namespace %s", keyword)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return errors.Wrap(err, "namespace row id")
	}

	stmt, err := tx.Prepare("INSERT INTO namespace_names (namespace_id, name, encoding) VALUES (?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "prepare name insert")
	}
	defer stmt.Close()

	for name, encoding := range names {
		if _, err := stmt.Exec(id, name, encoding); err != nil {
			return errors.Wrapf(err, "insert name %q", name)
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit cache transaction")
	}
	if c.logger != nil {
		c.logger.Infow("Cached namespace", "keyword", keyword, "url", url, "names", len(names))
	}
	return nil
}

// Members returns the cached member names for a namespace URL, satisfying
// document.Resolver. An uncached URL is an error so the caller can tell a
// missing cache entry from an empty namespace.
func (c *Cache) Members(url string) ([]string, error) {
	var id int64
	err := c.db.QueryRow("SELECT id FROM namespaces WHERE url = ?", url).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, errors.Newf("namespace %q is not cached", url)
	}
	if err != nil {
		return nil, errors.Wrap(err, "look up namespace")
	}

	rows, err := c.db.Query("SELECT name FROM namespace_names WHERE namespace_id = ? ORDER BY name", id)
	if err != nil {
		return nil, errors.Wrap(err, "query namespace names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "scan namespace name")
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// IsMember reports whether name is cached under the namespace URL.
func (c *Cache) IsMember(url, name string) (bool, error) {
	var exists bool
	err := c.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM namespace_names nn
			JOIN namespaces n ON n.id = nn.namespace_id
			WHERE n.url = ? AND nn.name = ?
		)`, url, name).Scan(&exists)
	if err != nil {
		return false, errors.Wrap(err, "check namespace membership")
	}
	return exists, nil
}

// Cached returns the URLs currently in the cache with their keywords.
func (c *Cache) Cached() (map[string]string, error) {
	rows, err := c.db.Query("SELECT url, keyword FROM namespaces ORDER BY keyword")
	if err != nil {
		return nil, errors.Wrap(err, "list cache entries")
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var url, keyword string
		if err := rows.Scan(&url, &keyword); err != nil {
			return nil, errors.Wrap(err, "scan cache entry")
		}
		out[url] = keyword
	}
	return out, rows.Err()
}
