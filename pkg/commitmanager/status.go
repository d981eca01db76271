package commitmanager

import (
	"context"
	"slices"

	"github.com/samber/lo"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/index"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/repository/refs"
)

// Status compares HEAD, the index and the working directory.
//
// A file is listed under modifications when:
//   - it is tracked by HEAD, not staged, and its working content differs
//   - it is staged for addition and its working content differs from the staged blob
//   - it is staged for addition and missing from the working directory
//   - it is tracked by HEAD, not staged for removal, and missing
//
// A file is untracked when it exists in the working directory and is neither
// tracked by HEAD nor staged for addition, which includes files staged for
// removal and then re-created.
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	branches, err := m.graph.ListBranches(ctx)
	if err != nil {
		return nil, err
	}
	current, err := m.graph.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	head, err := m.graph.HeadCommit(ctx)
	if err != nil {
		return nil, err
	}
	files, err := m.workdir.ListFiles(ctx)
	if err != nil {
		return nil, err
	}

	st := &Status{
		Branches:      lo.Map(branches, func(b refs.BranchName, _ int) string { return b.String() }),
		CurrentBranch: current.String(),
	}

	var (
		additions map[string]objects.ObjectHash
		removals  map[string]bool
	)
	err = m.index.View(func(idx *index.Index) error {
		st.Staged = idx.Additions()
		st.Removed = idx.Removals()
		additions = make(map[string]objects.ObjectHash, len(st.Staged))
		for _, p := range st.Staged {
			additions[p], _ = idx.Addition(p)
		}
		removals = lo.SliceToMap(st.Removed, func(p string) (string, bool) { return p, true })
		return nil
	})
	if err != nil {
		return nil, err
	}

	hasher := m.store.Hasher()
	workingID := func(path string) (objects.ObjectHash, bool, error) {
		data, err := m.workdir.ReadFile(path)
		if err != nil {
			if scerr.IsCode(err, scerr.CodeFileNotFound) {
				return "", false, nil
			}
			return "", false, err
		}
		return hasher.HashObject(objects.NewBlob(data)), true, nil
	}

	// Candidates: everything HEAD tracks plus everything staged for addition.
	candidates := lo.Uniq(append(head.Snapshot.Paths(), st.Staged...))
	slices.Sort(candidates)

	for _, path := range candidates {
		expected, staged := additions[path]
		if !staged {
			if removals[path] {
				continue
			}
			expected = head.Snapshot[path]
		}

		id, exists, err := workingID(path)
		if err != nil {
			return nil, err
		}
		switch {
		case !exists:
			st.Modified = append(st.Modified, Modification{Path: path, Status: StatusDeleted})
		case id != expected:
			st.Modified = append(st.Modified, Modification{Path: path, Status: StatusModified})
		}
	}

	st.Untracked = lo.Filter(files, func(p string, _ int) bool {
		_, staged := additions[p]
		return !staged && (!head.Snapshot.Has(p) || removals[p])
	})

	return st, nil
}
