package workdir

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/ignore"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
	"github.com/utkarsh5026/gitlet/pkg/workdir/internal"
)

// DefaultPrefetchWorkers bounds concurrent blob reads during ApplySnapshot.
const DefaultPrefetchWorkers = 4

// BlobReader is the part of the object store the working directory needs.
type BlobReader interface {
	ReadBlob(ctx context.Context, id objects.ObjectHash) ([]byte, error)
}

// Manager is the only component that touches files in the working tree.
// Paths it accepts and returns are slash separated and relative to the root.
type Manager struct {
	root    scpath.RepositoryPath
	blobs   BlobReader
	ignore  *ignore.PatternSet
	workers int
	logger  *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithPrefetchWorkers sets how many blobs ApplySnapshot reads at once.
func WithPrefetchWorkers(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// WithIgnore replaces the patterns loaded from .gitletignore.
func WithIgnore(ps *ignore.PatternSet) Option {
	return func(m *Manager) {
		m.ignore = ps
	}
}

// NewManager creates a manager for the working tree at root.
func NewManager(root scpath.RepositoryPath, blobs BlobReader, opts ...Option) (*Manager, error) {
	m := &Manager{
		root:    root,
		blobs:   blobs,
		workers: DefaultPrefetchWorkers,
		logger:  logger.With("component", "workdir"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.ignore == nil {
		ps, err := ignore.Load(root)
		if err != nil {
			return nil, fmt.Errorf("load ignore patterns: %w", err)
		}
		m.ignore = ps
	}
	return m, nil
}

// Root returns the working tree root.
func (m *Manager) Root() scpath.RepositoryPath {
	return m.root
}

// Normalize cleans path into the form used in snapshots and rejects paths
// outside the working tree or inside the repository directory.
func (m *Manager) Normalize(path string) (string, error) {
	rel, err := scpath.NewRelativePath(path)
	if err != nil {
		return "", NewInvalidPathError(path, err)
	}
	if rel.IsInSubdir(scpath.SourceDir) {
		return "", NewInvalidPathError(path, errors.New("path is inside the repository directory"))
	}
	return rel.String(), nil
}

func (m *Manager) abs(path string) (scpath.AbsolutePath, error) {
	rel, err := m.Normalize(path)
	if err != nil {
		return "", err
	}
	return m.root.JoinRelative(scpath.RelativePath(rel)), nil
}

// ReadFile returns the content of a working file.
func (m *Manager) ReadFile(path string) ([]byte, error) {
	abs, err := m.abs(path)
	if err != nil {
		return nil, err
	}
	ok, err := fileops.IsFile(abs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NewFileNotFoundError(path)
	}
	data, err := os.ReadFile(abs.String())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile replaces a working file, creating parent directories as needed.
func (m *Manager) WriteFile(path string, data []byte) error {
	abs, err := m.abs(path)
	if err != nil {
		return err
	}
	if err := fileops.AtomicWrite(abs, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// DeleteFile removes a working file and any directories left empty by it.
// Deleting a missing file succeeds.
func (m *Manager) DeleteFile(path string) error {
	abs, err := m.abs(path)
	if err != nil {
		return err
	}
	if err := fileops.SafeRemove(abs); err != nil {
		return err
	}
	fileops.PruneEmptyDirs(abs, scpath.AbsolutePath(m.root))
	return nil
}

// Exists reports whether a regular working file exists at path.
func (m *Manager) Exists(path string) (bool, error) {
	abs, err := m.abs(path)
	if err != nil {
		return false, err
	}
	return fileops.IsFile(abs)
}

// ListFiles returns every regular file in the working tree, sorted, leaving
// out the repository directory and anything .gitletignore excludes.
func (m *Manager) ListFiles(ctx context.Context) ([]string, error) {
	var files []string
	root := m.root.String()

	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if p == root {
			return nil
		}

		rel, err := m.root.Rel(p)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if rel.String() == scpath.SourceDir || m.ignore.IsIgnored(rel.String(), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || m.ignore.IsIgnored(rel.String(), false) {
			return nil
		}
		files = append(files, rel.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list working files: %w", err)
	}

	slices.Sort(files)
	return files, nil
}

// UntrackedConflicts returns, sorted, the working files that a switch from
// head to target would overwrite without their content being recorded
// anywhere: present on disk, tracked by target, not tracked by head and not
// staged (staged reports whether a path is in the index on either side).
func (m *Manager) UntrackedConflicts(head, target commit.Snapshot, staged func(path string) bool) ([]string, error) {
	var conflicts []string
	for _, path := range target.Paths() {
		if head.Has(path) || (staged != nil && staged(path)) {
			continue
		}
		exists, err := m.Exists(path)
		if err != nil {
			return nil, err
		}
		if exists {
			conflicts = append(conflicts, path)
		}
	}
	return conflicts, nil
}

// CheckUntracked is UntrackedConflicts as an error.
func (m *Manager) CheckUntracked(head, target commit.Snapshot, staged func(path string) bool) error {
	conflicts, err := m.UntrackedConflicts(head, target, staged)
	if err != nil {
		return err
	}
	if len(conflicts) > 0 {
		return NewUntrackedConflictError(conflicts)
	}
	return nil
}

// ApplySnapshot rewrites the working tree from current to target: every
// target file is written and files tracked by current but not by target are
// removed. Blob contents are read concurrently before any file changes; the
// changes themselves are applied one by one and rolled back on failure.
func (m *Manager) ApplySnapshot(ctx context.Context, current, target commit.Snapshot) (ApplyResult, error) {
	analysis := internal.Analyze(current, target)

	contents, err := m.prefetch(ctx, analysis.Operations)
	if err != nil {
		return ApplyResult{}, err
	}

	return m.ApplyOperations(ctx, analysis.Operations, contents)
}

// ApplyOperations applies ops as one transaction, taking the bytes of every
// create and modify from contents. If any operation fails the files already
// changed are restored and nothing is left half applied.
func (m *Manager) ApplyOperations(ctx context.Context, ops []Operation, contents map[string][]byte) (ApplyResult, error) {
	res := internal.Execute(ctx, fileOperator{m}, ops, contents)
	if !res.Success {
		m.logger.Error("apply failed", "applied", res.OperationsApplied, "total", res.TotalOperations, "error", res.Err)
		return ApplyResult{}, NewApplyError(res.Err)
	}

	var summary ChangeSummary
	for _, op := range ops {
		switch op.Action {
		case ActionCreate:
			summary.Created++
		case ActionModify:
			summary.Modified++
		case ActionDelete:
			summary.Deleted++
		}
	}
	m.logger.Debug("operations applied",
		"created", summary.Created,
		"modified", summary.Modified,
		"deleted", summary.Deleted)
	return ApplyResult{Operations: ops, Summary: summary}, nil
}

func (m *Manager) prefetch(ctx context.Context, ops []Operation) (map[string][]byte, error) {
	var (
		mu       sync.Mutex
		contents = make(map[string][]byte, len(ops))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for _, op := range ops {
		if op.Action == ActionDelete {
			continue
		}
		g.Go(func() error {
			data, err := m.blobs.ReadBlob(gctx, op.Blob)
			if err != nil {
				return fmt.Errorf("read blob for %s: %w", op.Path, err)
			}
			mu.Lock()
			contents[op.Path] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}

// fileOperator adapts Manager to the transaction's file system view.
type fileOperator struct {
	m *Manager
}

func (f fileOperator) Read(path string) ([]byte, bool, error) {
	data, err := f.m.ReadFile(path)
	if err != nil {
		if scerr.IsCode(err, scerr.CodeFileNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (f fileOperator) Write(path string, data []byte) error {
	return f.m.WriteFile(path, data)
}

func (f fileOperator) Delete(path string) error {
	return f.m.DeleteFile(path)
}
