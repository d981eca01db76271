// Package graph is the commit history of a repository: immutable commits
// linked by their parent lists, plus the branch table that names some of
// them and the HEAD pointer that selects the current branch.
//
// Commits are read through a small in-memory cache since they never change
// once written.
package graph

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/refs"
	"github.com/utkarsh5026/gitlet/pkg/store"
)

// Catalog is the commit index the graph keeps in step with the store.
type Catalog interface {
	Record(ctx context.Context, c *commit.Commit) error
	FindByPrefix(ctx context.Context, prefix string) ([]objects.ObjectHash, error)
}

// Graph owns commit creation, lookup and the branch table.
type Graph struct {
	store   store.ObjectStore
	refs    *refs.RefManager
	catalog Catalog
	strict  bool
	logger  *slog.Logger

	mu    sync.Mutex
	cache map[objects.ObjectHash]*commit.Commit
}

// Option configures a Graph.
type Option func(*Graph)

// WithCatalog records new commits in c and uses it for short-id lookup.
// Without a catalog, prefixes are matched against the store directly.
func WithCatalog(c Catalog) Option {
	return func(g *Graph) {
		g.catalog = c
	}
}

// WithStrictShortIDs makes a prefix matching several commits an error
// instead of resolving to the first match.
func WithStrictShortIDs(strict bool) Option {
	return func(g *Graph) {
		g.strict = strict
	}
}

// New builds a Graph over an object store and ref manager.
func New(s store.ObjectStore, rm *refs.RefManager, opts ...Option) *Graph {
	g := &Graph{
		store:  s,
		refs:   rm,
		logger: logger.With("component", "graph"),
		cache:  make(map[objects.ObjectHash]*commit.Commit),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CreateRootCommit stores the fixed initial commit. Every repository gets the
// same root for a given hash algorithm.
func (g *Graph) CreateRootCommit(ctx context.Context) (objects.ObjectHash, error) {
	root := commit.NewRootCommit()
	if err := g.persist(ctx, root); err != nil {
		return "", err
	}
	return root.ID, nil
}

// CreateCommit stores a new commit with the given parents and full snapshot.
// It never moves a branch.
func (g *Graph) CreateCommit(ctx context.Context, message string, parents []objects.ObjectHash, snapshot commit.Snapshot) (*commit.Commit, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if strings.TrimSpace(message) == "" {
		return nil, NewEmptyMessageError(commit.ErrEmptyMessage)
	}
	for _, p := range parents {
		ok, err := g.store.HasCommit(p)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, NewNoSuchCommitError(p.String(), nil)
		}
	}

	c, err := commit.NewBuilder().
		Parents(parents...).
		Snapshot(snapshot).
		Message(message).
		Build()
	if err != nil {
		return nil, NewInvalidCommitError(err)
	}

	if err := g.persist(ctx, c); err != nil {
		return nil, err
	}
	g.logger.Debug("commit created", "id", c.ID, "parents", len(parents), "files", len(snapshot))
	return c, nil
}

func (g *Graph) persist(ctx context.Context, c *commit.Commit) error {
	if _, err := g.store.WriteCommit(ctx, c); err != nil {
		g.logger.Error("commit write failed", "error", err)
		return err
	}
	if g.catalog != nil {
		if err := g.catalog.Record(ctx, c); err != nil {
			return err
		}
	}
	g.remember(c)
	return nil
}

// GetCommit reads the commit with the exact id.
func (g *Graph) GetCommit(ctx context.Context, id objects.ObjectHash) (*commit.Commit, error) {
	g.mu.Lock()
	c, ok := g.cache[id]
	g.mu.Unlock()
	if ok {
		return c, nil
	}

	c, err := g.store.ReadCommit(ctx, id)
	if err != nil {
		if scerr.IsCode(err, scerr.CodeNotFound) || scerr.IsCode(err, scerr.CodeInvalidInput) {
			return nil, NewNoSuchCommitError(id.String(), err)
		}
		return nil, err
	}
	g.remember(c)
	return c, nil
}

func (g *Graph) remember(c *commit.Commit) {
	g.mu.Lock()
	g.cache[c.ID] = c
	g.mu.Unlock()
}

// ResolveCommit accepts a full id or a prefix of at least
// objects.MinPrefixLength hex digits. A prefix resolves to the first match
// in sorted id order unless strict short ids are enabled, in which case more
// than one match is an AmbiguousShortId error.
func (g *Graph) ResolveCommit(ctx context.Context, ref string) (*commit.Commit, error) {
	prefix := strings.ToLower(strings.TrimSpace(ref))
	hexLen := g.store.Hasher().HexLength()

	if len(prefix) < objects.MinPrefixLength || len(prefix) > hexLen || !objects.IsHex(prefix) {
		return nil, NewNoSuchCommitError(ref, nil)
	}
	if len(prefix) == hexLen {
		return g.GetCommit(ctx, objects.ObjectHash(prefix))
	}

	candidates, err := g.findByPrefix(ctx, prefix)
	if err != nil {
		return nil, err
	}
	switch {
	case len(candidates) == 0:
		return nil, NewNoSuchCommitError(ref, nil)
	case len(candidates) > 1 && g.strict:
		return nil, NewAmbiguousShortIDError(ref, candidates)
	}
	return g.GetCommit(ctx, candidates[0])
}

func (g *Graph) findByPrefix(ctx context.Context, prefix string) ([]objects.ObjectHash, error) {
	if g.catalog != nil {
		return g.catalog.FindByPrefix(ctx, prefix)
	}
	return g.store.FindCommitsByPrefix(ctx, prefix)
}

// DistancesFrom maps every ancestor of id (id included, at 0) to the fewest
// parent or merge-parent edges needed to reach it.
func (g *Graph) DistancesFrom(ctx context.Context, id objects.ObjectHash) (map[objects.ObjectHash]int, error) {
	dist := map[objects.ObjectHash]int{id: 0}
	queue := []objects.ObjectHash{id}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		c, err := g.GetCommit(ctx, cur)
		if err != nil {
			return nil, err
		}
		for _, p := range c.Parents {
			if _, seen := dist[p]; seen {
				continue
			}
			dist[p] = dist[cur] + 1
			queue = append(queue, p)
		}
	}
	return dist, nil
}

// AncestorsOf lists id and all its ancestors in depth-first pre-order,
// exploring the merge parent before the primary parent. Each commit appears
// once, at its first visit.
func (g *Graph) AncestorsOf(ctx context.Context, id objects.ObjectHash) ([]objects.ObjectHash, error) {
	var (
		order   []objects.ObjectHash
		visited = make(map[objects.ObjectHash]bool)
		stack   = []objects.ObjectHash{id}
	)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[cur] {
			continue
		}
		visited[cur] = true
		order = append(order, cur)

		c, err := g.GetCommit(ctx, cur)
		if err != nil {
			return nil, err
		}
		// The merge parent goes on top so it is explored first.
		if p := c.Parent(); !p.IsZero() {
			stack = append(stack, p)
		}
		if mp := c.MergeParent(); !mp.IsZero() {
			stack = append(stack, mp)
		}
	}
	return order, nil
}

// IsNoSuchCommit reports whether err means a commit could not be found.
func IsNoSuchCommit(e error) bool {
	return scerr.IsCode(e, scerr.CodeNoSuchCommit)
}
