package store

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	scerr "github.com/utkarsh5026/gitlet/pkg/common/err"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

func newTestStore(t *testing.T, algo objects.Algorithm) (*FileObjectStore, scpath.SourcePath) {
	t.Helper()

	hasher, err := objects.NewHasher(algo)
	require.NoError(t, err)

	sp := scpath.RepositoryPath(t.TempDir()).SourcePath()
	fos, err := NewFileObjectStore(sp, Options{Hasher: hasher})
	require.NoError(t, err)
	t.Cleanup(fos.Close)
	return fos, sp
}

func TestBlobWriteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	fos, sp := newTestStore(t, objects.AlgorithmSHA1)

	id1, err := fos.WriteBlob(ctx, []byte("hello world"))
	require.NoError(t, err)
	id2, err := fos.WriteBlob(ctx, []byte("hello world"))
	require.NoError(t, err)

	assert.Equal(t, id1, id2)
	assert.Equal(t, objects.ObjectHash("95d09f2b10159347eece71399a7e2e907ea3df4f"), id1)

	entries, err := os.ReadDir(sp.BlobsPath().String())
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	info, err := os.Stat(filepath.Join(sp.BlobsPath().String(), id1.String()))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0444), info.Mode().Perm())

	content, err := fos.ReadBlob(ctx, id1)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello world"), content)

	ok, err := fos.HasBlob(id1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestReadMissingObject(t *testing.T) {
	ctx := context.Background()
	fos, _ := newTestStore(t, objects.AlgorithmSHA1)
	missing := objects.ObjectHash(strings.Repeat("a", 40))

	_, err := fos.ReadBlob(ctx, missing)
	require.Error(t, err)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))

	_, err = fos.ReadCommit(ctx, missing)
	assert.True(t, scerr.IsCode(err, scerr.CodeNotFound))

	ok, err := fos.HasCommit(missing)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = fos.ReadBlob(ctx, "xyz")
	assert.True(t, scerr.IsCode(err, scerr.CodeInvalidInput))
}

func TestCommitRoundTrip(t *testing.T) {
	ctx := context.Background()
	fos, _ := newTestStore(t, objects.AlgorithmSHA1)

	root := commit.NewRootCommit()
	rootID, err := fos.WriteCommit(ctx, root)
	require.NoError(t, err)
	assert.Equal(t, rootID, root.ID)

	blobID, err := fos.WriteBlob(ctx, []byte("content"))
	require.NoError(t, err)

	c, err := commit.NewBuilder().
		Parent(rootID).
		Snapshot(commit.Snapshot{"a.txt": blobID}).
		Message("first").
		Timestamp(time.Unix(1700000000, 0).In(time.FixedZone("", 3600))).
		Build()
	require.NoError(t, err)

	id, err := fos.WriteCommit(ctx, c)
	require.NoError(t, err)

	got, err := fos.ReadCommit(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "first", got.Message)
	assert.Equal(t, []objects.ObjectHash{rootID}, got.Parents)
	assert.True(t, got.Snapshot.Equal(c.Snapshot))
	assert.Equal(t, int64(1700000000), got.Timestamp.Unix())
	assert.Equal(t, id, fos.Hasher().HashObject(got))
}

func TestCorruptObjectsAreDetected(t *testing.T) {
	ctx := context.Background()
	fos, sp := newTestStore(t, objects.AlgorithmSHA1)

	id, err := fos.WriteCommit(ctx, commit.NewRootCommit())
	require.NoError(t, err)

	path := filepath.Join(sp.CommitsPath().String(), id.String())
	require.NoError(t, os.Chmod(path, 0644))

	t.Run("not zstd", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0644))
		_, err := fos.ReadCommit(ctx, id)
		assert.True(t, scerr.IsCode(err, scerr.CodeCorruptObject))
	})

	t.Run("hash mismatch", func(t *testing.T) {
		other := objects.Serialize(commit.NewRootCommit())
		other = append(other, ' ')
		require.NoError(t, os.WriteFile(path, fos.codec.compress(other), 0644))
		_, err := fos.ReadCommit(ctx, id)
		assert.True(t, scerr.IsCode(err, scerr.CodeCorruptObject))
	})

	t.Run("wrong kind", func(t *testing.T) {
		blobID, err := fos.WriteBlob(ctx, []byte("not a commit"))
		require.NoError(t, err)
		raw, err := os.ReadFile(filepath.Join(sp.BlobsPath().String(), blobID.String()))
		require.NoError(t, err)

		misplaced := filepath.Join(sp.CommitsPath().String(), blobID.String())
		require.NoError(t, os.WriteFile(misplaced, raw, 0644))
		_, err = fos.ReadCommit(ctx, blobID)
		assert.True(t, scerr.IsCode(err, scerr.CodeCorruptObject))
	})
}

func TestFindCommitsByPrefix(t *testing.T) {
	ctx := context.Background()
	fos, _ := newTestStore(t, objects.AlgorithmSHA1)

	rootID, err := fos.WriteCommit(ctx, commit.NewRootCommit())
	require.NoError(t, err)

	var ids []objects.ObjectHash
	for _, msg := range []string{"one", "two", "three"} {
		c, err := commit.NewBuilder().Parent(rootID).Message(msg).Build()
		require.NoError(t, err)
		id, err := fos.WriteCommit(ctx, c)
		require.NoError(t, err)
		ids = append(ids, id)
	}

	all, err := fos.ListCommits(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.True(t, slices.IsSorted(all))

	for _, id := range ids {
		found, err := fos.FindCommitsByPrefix(ctx, strings.ToUpper(id.String()[:6]))
		require.NoError(t, err)
		assert.Contains(t, found, id)
	}

	none, err := fos.FindCommitsByPrefix(ctx, "zzzz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBlake3Store(t *testing.T) {
	ctx := context.Background()
	fos, _ := newTestStore(t, objects.AlgorithmBlake3)

	id, err := fos.WriteBlob(ctx, []byte("blake"))
	require.NoError(t, err)
	assert.Len(t, id.String(), objects.Blake3HexLength)

	content, err := fos.ReadBlob(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "blake", string(content))
}

func TestCancelledContext(t *testing.T) {
	fos, _ := newTestStore(t, objects.AlgorithmSHA1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fos.WriteBlob(ctx, []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
