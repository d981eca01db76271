// Package catalog keeps a SQLite table of commit metadata next to the object
// store. It answers global-log, find and short-id lookups without decoding
// every commit file. The object store stays the source of truth: the catalog
// can be dropped and rebuilt from it at any time.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/samber/lo"
	_ "modernc.org/sqlite"

	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

const schema = `
CREATE TABLE IF NOT EXISTS commits (
	id TEXT PRIMARY KEY,
	message TEXT NOT NULL,
	unix INTEGER NOT NULL,
	tz_offset INTEGER NOT NULL,
	parent TEXT NOT NULL DEFAULT '',
	merge_parent TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_commits_message ON commits(message);
CREATE INDEX IF NOT EXISTS idx_commits_unix ON commits(unix);
`

// Entry is one catalogued commit.
type Entry struct {
	ID          objects.ObjectHash
	Message     string
	Timestamp   time.Time
	Parent      objects.ObjectHash
	MergeParent objects.ObjectHash
}

// Parents returns the non-empty parent ids, primary first.
func (e Entry) Parents() []objects.ObjectHash {
	return lo.Filter([]objects.ObjectHash{e.Parent, e.MergeParent}, func(h objects.ObjectHash, _ int) bool {
		return !h.IsZero()
	})
}

// Catalog is the SQLite-backed commit table.
type Catalog struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens or creates catalog.db inside the repository directory sourcePath.
func Open(ctx context.Context, sourcePath scpath.SourcePath) (*Catalog, error) {
	db, err := sql.Open("sqlite", sourcePath.CatalogPath().String())
	if err != nil {
		return nil, NewCatalogError("open", err)
	}
	// One connection keeps the pragmas and avoids SQLITE_BUSY inside a single process.
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000", schema} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, NewCatalogError("open", err)
		}
	}

	return &Catalog{db: db, logger: logger.With("component", "catalog")}, nil
}

// Close closes the database.
func (c *Catalog) Close() error {
	if c.db == nil {
		return nil
	}
	return c.db.Close()
}

// Record inserts c; recording the same commit twice is a no-op.
func (c *Catalog) Record(ctx context.Context, cm *commit.Commit) error {
	return record(ctx, c.db, cm)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func record(ctx context.Context, db execer, cm *commit.Commit) error {
	if cm.ID.IsZero() {
		return NewCatalogError("record", fmt.Errorf("commit has no id"))
	}
	_, offset := cm.Timestamp.Zone()
	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO commits (id, message, unix, tz_offset, parent, merge_parent)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		cm.ID.String(), cm.Message, cm.Timestamp.Unix(), offset,
		cm.Parent().String(), cm.MergeParent().String(),
	)
	if err != nil {
		return NewCatalogError("record", err)
	}
	return nil
}

// Count returns the number of catalogued commits.
func (c *Catalog) Count(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM commits").Scan(&n); err != nil {
		return 0, NewCatalogError("count", err)
	}
	return n, nil
}

// Rebuild replaces the whole table with commits in one transaction.
func (c *Catalog) Rebuild(ctx context.Context, commits []*commit.Commit) error {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return NewCatalogError("rebuild", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM commits"); err != nil {
		return NewCatalogError("rebuild", err)
	}
	for _, cm := range commits {
		if err := record(ctx, tx, cm); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return NewCatalogError("rebuild", err)
	}

	c.logger.Debug("catalog rebuilt", "commits", len(commits))
	return nil
}

// All returns every entry, newest first. Equal timestamps are ordered by id.
func (c *Catalog) All(ctx context.Context) ([]Entry, error) {
	return c.query(ctx, "all",
		`SELECT id, message, unix, tz_offset, parent, merge_parent
		 FROM commits ORDER BY unix DESC, id ASC`)
}

// FindByMessage returns the ids of commits whose message is exactly msg, sorted.
func (c *Catalog) FindByMessage(ctx context.Context, msg string) ([]objects.ObjectHash, error) {
	entries, err := c.query(ctx, "find",
		`SELECT id, message, unix, tz_offset, parent, merge_parent
		 FROM commits WHERE message = ? ORDER BY id ASC`, msg)
	if err != nil {
		return nil, err
	}
	return ids(entries), nil
}

// FindByPrefix returns the sorted ids starting with prefix.
func (c *Catalog) FindByPrefix(ctx context.Context, prefix string) ([]objects.ObjectHash, error) {
	entries, err := c.query(ctx, "prefix",
		`SELECT id, message, unix, tz_offset, parent, merge_parent
		 FROM commits WHERE substr(id, 1, ?) = ? ORDER BY id ASC`, len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	return ids(entries), nil
}

func (c *Catalog) query(ctx context.Context, op, q string, args ...any) ([]Entry, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, NewCatalogError(op, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                    Entry
			id, parent, mergePar string
			unix                 int64
			offset               int
		)
		if err := rows.Scan(&id, &e.Message, &unix, &offset, &parent, &mergePar); err != nil {
			return nil, NewCatalogError(op, err)
		}
		e.ID = objects.ObjectHash(id)
		e.Parent = objects.ObjectHash(parent)
		e.MergeParent = objects.ObjectHash(mergePar)
		e.Timestamp = time.Unix(unix, 0).In(time.FixedZone("", offset))
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, NewCatalogError(op, err)
	}
	return entries, nil
}

func ids(entries []Entry) []objects.ObjectHash {
	return lo.Map(entries, func(e Entry, _ int) objects.ObjectHash { return e.ID })
}
