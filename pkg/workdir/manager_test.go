package workdir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// blobMap serves blob content keyed by the hash of the content.
type blobMap map[objects.ObjectHash][]byte

func (b blobMap) ReadBlob(_ context.Context, id objects.ObjectHash) ([]byte, error) {
	data, ok := b[id]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", id)
	}
	return data, nil
}

func (b blobMap) put(content string) objects.ObjectHash {
	var h objects.Hasher
	id := h.HashObject(objects.NewBlob([]byte(content)))
	b[id] = []byte(content)
	return id
}

func setupWorkdir(t *testing.T, files map[string]string) (*Manager, blobMap, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, scpath.SourceDir), 0755))
	for p, c := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(c), 0644))
	}

	blobs := blobMap{}
	m, err := NewManager(scpath.RepositoryPath(root), blobs, WithPrefetchWorkers(2))
	require.NoError(t, err)
	return m, blobs, root
}

func readDisk(t *testing.T, root, path string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	require.NoError(t, err)
	return string(data)
}

func TestNormalize(t *testing.T) {
	m, _, _ := setupWorkdir(t, nil)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"a.txt", "a.txt", false},
		{"./dir/../b.txt", "b.txt", false},
		{"dir/c.txt", "dir/c.txt", false},
		{"../outside", "", true},
		{"/etc/passwd", "", true},
		{".gitlet/index", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := m.Normalize(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadWriteDelete(t *testing.T) {
	m, _, root := setupWorkdir(t, nil)

	_, err := m.ReadFile("missing.txt")
	assert.True(t, scerr.IsCode(err, scerr.CodeFileNotFound))

	require.NoError(t, m.WriteFile("deep/nested/f.txt", []byte("hi")))
	data, err := m.ReadFile("deep/nested/f.txt")
	require.NoError(t, err)
	assert.Equal(t, "hi", string(data))

	_, err = m.ReadFile("deep")
	assert.True(t, scerr.IsCode(err, scerr.CodeFileNotFound), "directories are not files")

	require.NoError(t, m.DeleteFile("deep/nested/f.txt"))
	_, statErr := os.Stat(filepath.Join(root, "deep"))
	assert.True(t, os.IsNotExist(statErr), "empty parents are pruned")

	require.NoError(t, m.DeleteFile("never-existed.txt"))
}

func TestListFiles(t *testing.T) {
	m, _, root := setupWorkdir(t, map[string]string{
		"a.txt":          "a",
		"src/main.go":    "package main",
		"build/out.o":    "bin",
		"logs/debug.log": "x",
		"keep.log":       "y",
		".gitletignore":  "build/\n*.log\n!keep.log\n",
	})
	require.NoError(t, os.WriteFile(filepath.Join(root, scpath.SourceDir, "index"), []byte("{}"), 0644))

	// The ignore file is read when the manager is built.
	m, err := NewManager(m.Root(), blobMap{})
	require.NoError(t, err)

	files, err := m.ListFiles(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{".gitletignore", "a.txt", "keep.log", "src/main.go"}, files)
}

func TestUntrackedConflicts(t *testing.T) {
	m, blobs, _ := setupWorkdir(t, map[string]string{
		"tracked.txt": "t",
		"stray.txt":   "s",
		"staged.txt":  "x",
	})
	head := commit.Snapshot{"tracked.txt": blobs.put("t")}
	target := commit.Snapshot{
		"tracked.txt": blobs.put("t2"),
		"stray.txt":   blobs.put("other"),
		"staged.txt":  blobs.put("x"),
		"absent.txt":  blobs.put("z"),
	}
	staged := func(p string) bool { return p == "staged.txt" }

	conflicts, err := m.UntrackedConflicts(head, target, staged)
	require.NoError(t, err)
	assert.Equal(t, []string{"stray.txt"}, conflicts)

	err = m.CheckUntracked(head, target, staged)
	assert.True(t, scerr.IsCode(err, scerr.CodeUntrackedConflict))

	assert.NoError(t, m.CheckUntracked(head, commit.Snapshot{}, staged))
}

func TestApplySnapshot(t *testing.T) {
	m, blobs, root := setupWorkdir(t, map[string]string{
		"keep.txt":   "old",
		"gone/x.txt": "bye",
		"notes.txt":  "untracked",
		"same.txt":   "locally edited",
	})
	current := commit.Snapshot{
		"keep.txt":   blobs.put("old"),
		"gone/x.txt": blobs.put("bye"),
		"same.txt":   blobs.put("same"),
	}
	target := commit.Snapshot{
		"keep.txt":    blobs.put("new"),
		"added/y.txt": blobs.put("hello"),
		"same.txt":    blobs.put("same"),
	}

	res, err := m.ApplySnapshot(context.Background(), current, target)
	require.NoError(t, err)
	assert.Equal(t, ChangeSummary{Created: 1, Modified: 2, Deleted: 1}, res.Summary)

	assert.Equal(t, "new", readDisk(t, root, "keep.txt"))
	assert.Equal(t, "hello", readDisk(t, root, "added/y.txt"))
	assert.Equal(t, "same", readDisk(t, root, "same.txt"), "target content overwrites local edits")
	assert.Equal(t, "untracked", readDisk(t, root, "notes.txt"))
	_, statErr := os.Stat(filepath.Join(root, "gone"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestApplySnapshotMissingBlobChangesNothing(t *testing.T) {
	m, blobs, root := setupWorkdir(t, map[string]string{"a.txt": "a"})
	current := commit.Snapshot{"a.txt": blobs.put("a")}
	target := commit.Snapshot{"b.txt": objects.ObjectHash("0123456789012345678901234567890123456789")}

	_, err := m.ApplySnapshot(context.Background(), current, target)
	require.Error(t, err)
	assert.Equal(t, "a", readDisk(t, root, "a.txt"))
	exists, err := m.Exists("b.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyOperations(t *testing.T) {
	m, _, root := setupWorkdir(t, map[string]string{"a.txt": "a", "b.txt": "b"})
	ops := []Operation{
		{Path: "a.txt", Action: ActionModify},
		{Path: "b.txt", Action: ActionDelete},
		{Path: "c/d.txt", Action: ActionCreate},
	}
	contents := map[string][]byte{"a.txt": []byte("A"), "c/d.txt": []byte("D")}

	res, err := m.ApplyOperations(context.Background(), ops, contents)
	require.NoError(t, err)
	assert.Equal(t, ChangeSummary{Created: 1, Modified: 1, Deleted: 1}, res.Summary)
	assert.Equal(t, "A", readDisk(t, root, "a.txt"))
	assert.Equal(t, "D", readDisk(t, root, "c/d.txt"))
	exists, err := m.Exists("b.txt")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestApplyOperationsRollsBackOnFailure(t *testing.T) {
	m, _, root := setupWorkdir(t, map[string]string{"a.txt": "a", "dir/inner.txt": "inner"})
	ops := []Operation{
		{Path: "a.txt", Action: ActionModify},
		{Path: "dir", Action: ActionCreate},
	}
	contents := map[string][]byte{"a.txt": []byte("A"), "dir": []byte("x")}

	_, err := m.ApplyOperations(context.Background(), ops, contents)
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeInternal))
	assert.Equal(t, "a", readDisk(t, root, "a.txt"))
	assert.Equal(t, "inner", readDisk(t, root, "dir/inner.txt"))
}
