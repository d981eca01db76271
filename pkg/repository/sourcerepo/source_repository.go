// Package sourcerepo builds the per-invocation repository context: every
// component of one repository, opened from its .gitlet directory and wired
// together.
package sourcerepo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/utkarsh5026/gitlet/pkg/catalog"
	"github.com/utkarsh5026/gitlet/pkg/commitmanager"
	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/config"
	"github.com/utkarsh5026/gitlet/pkg/graph"
	"github.com/utkarsh5026/gitlet/pkg/index"
	"github.com/utkarsh5026/gitlet/pkg/merge"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/refs"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
	"github.com/utkarsh5026/gitlet/pkg/store"
	"github.com/utkarsh5026/gitlet/pkg/workdir"
)

// SourceRepository owns every component of an open repository.
//
// Layout:
//
//	<working-directory>/
//	├─ .gitlet/
//	│  ├─ objects/blobs/<id>     file contents
//	│  ├─ objects/commits/<id>   commits
//	│  ├─ refs/<branch>          branch heads
//	│  ├─ refs/HEAD              "ref: <branch>"
//	│  ├─ index                  staged changes
//	│  ├─ config.yaml            settings
//	│  └─ catalog.db             commit catalog
//	├─ .gitletignore             optional ignore patterns
//	└─ ...                       working files
type SourceRepository struct {
	workingDir scpath.RepositoryPath
	sourceDir  scpath.SourcePath

	config    *config.Config
	configMgr *config.Manager
	store     *store.FileObjectStore
	catalog   *catalog.Catalog
	refs      *refs.RefManager
	graph     *graph.Graph
	index     *index.Manager
	workdir   *workdir.Manager
	commits   *commitmanager.Manager
	merge     *merge.Engine

	logger *slog.Logger
}

// InitOptions are the choices fixed when a repository is created.
type InitOptions struct {
	HashAlgorithm objects.Algorithm
	DefaultBranch string
}

// Exists reports whether path holds a .gitlet directory.
func Exists(path scpath.RepositoryPath) (bool, error) {
	info, err := os.Stat(path.SourcePath().String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check repository: %w", err)
	}
	return info.IsDir(), nil
}

// Initialize creates a repository at path: the directory layout, the config
// file, the initial commit, and the default branch pointing at it as HEAD.
func Initialize(ctx context.Context, path scpath.RepositoryPath, opts InitOptions) (*SourceRepository, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	exists, err := Exists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, NewRepositoryExistsError(path.String())
	}

	cfg := config.Default()
	if opts.HashAlgorithm != "" {
		cfg.Core.HashAlgorithm = string(opts.HashAlgorithm)
	}
	if opts.DefaultBranch != "" {
		cfg.Core.DefaultBranch = opts.DefaultBranch
	}
	branch, err := refs.NewBranchName(cfg.Core.DefaultBranch)
	if err != nil {
		return nil, refs.NewInvalidBranchNameError(cfg.Core.DefaultBranch, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, config.NewValidationError(err)
	}

	sp := path.SourcePath()
	if err := fileops.EnsureDir(sp.ToAbsolutePath()); err != nil {
		return nil, err
	}
	if err := config.NewManager(sp).Save(cfg); err != nil {
		return nil, err
	}

	repo, err := Open(ctx, path)
	if err != nil {
		return nil, err
	}

	root, err := repo.graph.CreateRootCommit(ctx)
	if err != nil {
		_ = repo.Close()
		return nil, err
	}
	if err := repo.refs.WriteBranch(branch, root); err != nil {
		_ = repo.Close()
		return nil, err
	}
	if err := repo.refs.WriteHead(branch); err != nil {
		_ = repo.Close()
		return nil, err
	}
	if err := repo.index.Clear(); err != nil {
		_ = repo.Close()
		return nil, err
	}

	repo.logger.Debug("repository initialized", "path", path, "branch", branch, "root", root.Short())
	return repo, nil
}

// LoadConfig reads the validated configuration of the repository at path.
func LoadConfig(path scpath.RepositoryPath) (*config.Config, error) {
	return config.NewManager(path.SourcePath()).Load()
}

// Open builds the repository context for an existing repository at path.
func Open(ctx context.Context, path scpath.RepositoryPath) (*SourceRepository, error) {
	exists, err := Exists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, NewNotARepositoryError(path.String())
	}

	repo := &SourceRepository{
		workingDir: path,
		sourceDir:  path.SourcePath(),
		configMgr:  config.NewManager(path.SourcePath()),
		logger:     logger.With("component", "sourcerepo"),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		cfg, err := repo.configMgr.Load()
		if err != nil {
			return err
		}
		repo.config = cfg
		return nil
	})
	g.Go(func() error {
		cat, err := catalog.Open(gctx, repo.sourceDir)
		if err != nil {
			return err
		}
		repo.catalog = cat
		return nil
	})
	if err := g.Wait(); err != nil {
		if repo.catalog != nil {
			_ = repo.catalog.Close()
		}
		return nil, err
	}

	if err := repo.build(ctx); err != nil {
		_ = repo.Close()
		return nil, err
	}
	return repo, nil
}

// build opens the store and wires the remaining components.
func (sr *SourceRepository) build(ctx context.Context) error {
	hasher, err := sr.config.Hasher()
	if err != nil {
		return err
	}
	fos, err := store.NewFileObjectStore(sr.sourceDir, store.Options{
		Hasher:      hasher,
		Compression: sr.config.Compression(),
	})
	if err != nil {
		return err
	}
	sr.store = fos

	if err := sr.syncCatalog(ctx); err != nil {
		return err
	}

	sr.refs = refs.NewRefManager(sr.sourceDir)
	if err := sr.refs.Init(); err != nil {
		return err
	}
	sr.graph = graph.New(fos, sr.refs,
		graph.WithCatalog(sr.catalog),
		graph.WithStrictShortIDs(sr.config.Core.StrictShortIDs))

	sr.index = index.NewManager(sr.sourceDir)
	if err := sr.index.Initialize(); err != nil {
		return err
	}

	sr.workdir, err = workdir.NewManager(sr.workingDir, fos,
		workdir.WithPrefetchWorkers(sr.config.Core.PrefetchWorkers))
	if err != nil {
		return err
	}

	sr.commits = commitmanager.NewManager(fos, sr.graph, sr.index, sr.workdir, sr.catalog)
	sr.merge = merge.NewEngine(fos, sr.graph, sr.index, sr.workdir, sr.commits)
	return nil
}

// syncCatalog rebuilds the catalog from the store when their commit counts
// differ, which happens when catalog.db was deleted or a write was cut short.
func (sr *SourceRepository) syncCatalog(ctx context.Context) error {
	ids, err := sr.store.ListCommits(ctx)
	if err != nil {
		return err
	}
	n, err := sr.catalog.Count(ctx)
	if err != nil {
		return err
	}
	if n == len(ids) {
		return nil
	}

	sr.logger.Debug("rebuilding catalog", "catalogued", n, "stored", len(ids))
	commits := make([]*commit.Commit, 0, len(ids))
	for _, id := range ids {
		c, err := sr.store.ReadCommit(ctx, id)
		if err != nil {
			sr.logger.Error("catalog rebuild failed", "commit", id, "error", err)
			return err
		}
		commits = append(commits, c)
	}
	return sr.catalog.Rebuild(ctx, commits)
}

// Find walks up from start to the nearest directory holding a repository
// and opens it.
func Find(ctx context.Context, start string) (*SourceRepository, error) {
	root, err := FindRoot(start)
	if err != nil {
		return nil, err
	}
	return Open(ctx, root)
}

// FindRoot returns the nearest directory at or above start that holds a
// repository.
func FindRoot(start string) (scpath.RepositoryPath, error) {
	current, err := scpath.NewRepositoryPath(start)
	if err != nil {
		return "", err
	}
	for {
		exists, err := Exists(current)
		if err != nil {
			return "", err
		}
		if exists {
			return current, nil
		}
		parent := filepath.Dir(current.String())
		if parent == current.String() {
			return "", NewNotARepositoryError(start)
		}
		current = scpath.RepositoryPath(parent)
	}
}

// Close releases the catalog and the store's codec. Calling it again is a no-op.
func (sr *SourceRepository) Close() error {
	if sr.store != nil {
		sr.store.Close()
		sr.store = nil
	}
	if sr.catalog != nil {
		c := sr.catalog
		sr.catalog = nil
		return c.Close()
	}
	return nil
}

func (sr *SourceRepository) WorkingDirectory() scpath.RepositoryPath { return sr.workingDir }
func (sr *SourceRepository) SourceDirectory() scpath.SourcePath      { return sr.sourceDir }
func (sr *SourceRepository) Config() *config.Config                  { return sr.config }
func (sr *SourceRepository) ConfigManager() *config.Manager          { return sr.configMgr }
func (sr *SourceRepository) Store() store.ObjectStore                { return sr.store }
func (sr *SourceRepository) Catalog() *catalog.Catalog               { return sr.catalog }
func (sr *SourceRepository) Graph() *graph.Graph                     { return sr.graph }
func (sr *SourceRepository) Index() *index.Manager                   { return sr.index }
func (sr *SourceRepository) Workdir() *workdir.Manager               { return sr.workdir }
func (sr *SourceRepository) Commits() *commitmanager.Manager         { return sr.commits }
func (sr *SourceRepository) Merge() *merge.Engine                    { return sr.merge }
