package refs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// RefManager persists the branch table and the HEAD pointer:
//
//	.gitlet/refs/
//	├─ HEAD      "ref: master"
//	├─ master    "<commit id>"
//	└─ feature   "<commit id>"
//
// Every write goes through a temp file and rename.
type RefManager struct {
	refsPath scpath.SourcePath
	headPath scpath.SourcePath
}

// NewRefManager returns a manager for the refs directory below sourcePath.
func NewRefManager(sourcePath scpath.SourcePath) *RefManager {
	return &RefManager{
		refsPath: sourcePath.RefsPath(),
		headPath: sourcePath.HeadPath(),
	}
}

// Init creates the refs directory.
func (rm *RefManager) Init() error {
	if err := fileops.EnsureDir(rm.refsPath.ToAbsolutePath()); err != nil {
		return fmt.Errorf("failed to create refs directory: %w", err)
	}
	return nil
}

// ReadBranch returns the head commit of name.
func (rm *RefManager) ReadBranch(name BranchName) (objects.ObjectHash, error) {
	path := rm.branchPath(name)
	content, err := os.ReadFile(path.String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", NewNoSuchBranchError(name)
		}
		return "", fmt.Errorf("error reading ref %s: %w", name, err)
	}

	text := strings.TrimSpace(string(content))
	hash, err := objects.ParseObjectHash(text)
	if err != nil {
		return "", NewCorruptRefError(path.String(), text, err)
	}
	return hash, nil
}

// WriteBranch points name at hash, creating the branch if needed.
func (rm *RefManager) WriteBranch(name BranchName, hash objects.ObjectHash) error {
	if err := hash.Validate(); err != nil {
		return fmt.Errorf("invalid hash: %w", err)
	}
	if err := fileops.WriteConfig(rm.branchPath(name), []byte(hash.String()+"\n")); err != nil {
		return fmt.Errorf("failed to write ref %s: %w", name, err)
	}
	return nil
}

// DeleteBranch removes the ref file; false when it did not exist.
func (rm *RefManager) DeleteBranch(name BranchName) (bool, error) {
	path := rm.branchPath(name)
	exists, err := fileops.Exists(path)
	if err != nil || !exists {
		return false, err
	}
	if err := fileops.SafeRemove(path); err != nil {
		return false, err
	}
	return true, nil
}

// BranchExists reports whether name has a ref file.
func (rm *RefManager) BranchExists(name BranchName) (bool, error) {
	return fileops.IsFile(rm.branchPath(name))
}

// ListBranches returns every branch name in sorted order.
func (rm *RefManager) ListBranches() ([]BranchName, error) {
	entries, err := os.ReadDir(rm.refsPath.String())
	if err != nil {
		return nil, fmt.Errorf("failed to list refs: %w", err)
	}

	var names []BranchName
	for _, e := range entries {
		if e.IsDir() || e.Name() == HeadName || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		name, err := NewBranchName(e.Name())
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// ReadHead returns the branch HEAD names.
func (rm *RefManager) ReadHead() (BranchName, error) {
	content, err := fileops.ReadStringStrict(rm.headPath.ToAbsolutePath())
	if err != nil {
		return "", fmt.Errorf("error reading HEAD: %w", err)
	}

	target, ok := strings.CutPrefix(content, SymbolicRefPrefix)
	if !ok {
		return "", NewCorruptRefError(rm.headPath.String(), content, errors.New("missing symbolic prefix"))
	}
	name, err := NewBranchName(strings.TrimSpace(target))
	if err != nil {
		return "", NewCorruptRefError(rm.headPath.String(), content, err)
	}
	return name, nil
}

// WriteHead makes name the current branch.
func (rm *RefManager) WriteHead(name BranchName) error {
	if err := fileops.WriteConfig(rm.headPath.ToAbsolutePath(), []byte(SymbolicRefPrefix+name.String()+"\n")); err != nil {
		return fmt.Errorf("failed to write HEAD: %w", err)
	}
	return nil
}

func (rm *RefManager) branchPath(name BranchName) scpath.AbsolutePath {
	return rm.refsPath.Join(name.String()).ToAbsolutePath()
}
