package index

import (
	"fmt"
	"maps"
	"slices"

	"github.com/goccy/go-json"

	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// IndexVersion is written into every index file.
const IndexVersion = 1

// Index is the staging area: the changes the next commit will make relative
// to the HEAD snapshot.
//
// Stored as JSON at .gitlet/index:
//
//	{
//	  "version": 1,
//	  "additions": {"docs/readme.md": "89e6c98d..."},
//	  "removals": ["old.txt"]
//	}
//
// A path is never in both sets: staging one side clears the other.
type Index struct {
	additions map[string]objects.ObjectHash
	removals  map[string]struct{}
}

type indexFile struct {
	Version   int                           `json:"version"`
	Additions map[string]objects.ObjectHash `json:"additions"`
	Removals  []string                      `json:"removals"`
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{
		additions: make(map[string]objects.ObjectHash),
		removals:  make(map[string]struct{}),
	}
}

// Read loads the index at path. A missing file is an empty index.
func Read(path scpath.SourcePath) (*Index, error) {
	data, err := fileops.ReadBytes(path.ToAbsolutePath())
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}
	idx := NewIndex()
	if data == nil {
		return idx, nil
	}

	var f indexFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, NewCorruptIndexError(err)
	}
	if f.Version != IndexVersion {
		return nil, NewCorruptIndexError(fmt.Errorf("unsupported index version %d", f.Version))
	}
	for p, id := range f.Additions {
		if err := id.Validate(); err != nil {
			return nil, NewCorruptIndexError(fmt.Errorf("entry %q: %w", p, err))
		}
		idx.additions[p] = id
	}
	for _, p := range f.Removals {
		if _, dup := idx.additions[p]; dup {
			return nil, NewCorruptIndexError(fmt.Errorf("%q is staged for addition and removal", p))
		}
		idx.removals[p] = struct{}{}
	}
	return idx, nil
}

// Write stores the index at path atomically.
func (idx *Index) Write(path scpath.SourcePath) error {
	data, err := json.MarshalIndent(indexFile{
		Version:   IndexVersion,
		Additions: idx.additions,
		Removals:  idx.Removals(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize index: %w", err)
	}
	if err := fileops.WriteConfig(path.ToAbsolutePath(), data); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// StageAddition records path at blob id and drops any pending removal.
func (idx *Index) StageAddition(path string, id objects.ObjectHash) {
	delete(idx.removals, path)
	idx.additions[path] = id
}

// StageRemoval records path for removal and drops any pending addition.
func (idx *Index) StageRemoval(path string) {
	delete(idx.additions, path)
	idx.removals[path] = struct{}{}
}

// Unstage forgets path on both sides. It reports whether anything changed.
func (idx *Index) Unstage(path string) bool {
	_, added := idx.additions[path]
	_, removed := idx.removals[path]
	delete(idx.additions, path)
	delete(idx.removals, path)
	return added || removed
}

// Addition returns the staged blob for path.
func (idx *Index) Addition(path string) (objects.ObjectHash, bool) {
	id, ok := idx.additions[path]
	return id, ok
}

func (idx *Index) IsStagedForAddition(path string) bool {
	_, ok := idx.additions[path]
	return ok
}

func (idx *Index) IsStagedForRemoval(path string) bool {
	_, ok := idx.removals[path]
	return ok
}

// IsStaged reports whether path is on either side.
func (idx *Index) IsStaged(path string) bool {
	return idx.IsStagedForAddition(path) || idx.IsStagedForRemoval(path)
}

// IsEmpty reports whether nothing is staged.
func (idx *Index) IsEmpty() bool {
	return len(idx.additions) == 0 && len(idx.removals) == 0
}

// Additions returns the staged-for-addition paths, sorted.
func (idx *Index) Additions() []string {
	return slices.Sorted(maps.Keys(idx.additions))
}

// Removals returns the staged-for-removal paths, sorted.
func (idx *Index) Removals() []string {
	return slices.Sorted(maps.Keys(idx.removals))
}

// Clear empties both sets.
func (idx *Index) Clear() {
	clear(idx.additions)
	clear(idx.removals)
}

// Apply returns base with the removals dropped and the additions laid over it.
// base is not modified.
func (idx *Index) Apply(base commit.Snapshot) commit.Snapshot {
	out := base.Clone()
	for p := range idx.removals {
		delete(out, p)
	}
	maps.Copy(out, idx.additions)
	return out
}
