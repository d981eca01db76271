package sourcerepo

import (
	"context"
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

func setupTestDirectory(t *testing.T) scpath.RepositoryPath {
	t.Helper()
	path, err := scpath.NewRepositoryPath(t.TempDir())
	require.NoError(t, err)
	return path
}

func initRepo(t *testing.T, opts InitOptions) *SourceRepository {
	t.Helper()
	repo, err := Initialize(context.Background(), setupTestDirectory(t), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInitialize(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t, InitOptions{})

	sp := repo.SourceDirectory()
	for _, p := range []scpath.SourcePath{sp.BlobsPath(), sp.CommitsPath(), sp.RefsPath()} {
		info, err := os.Stat(p.String())
		require.NoError(t, err, p)
		assert.True(t, info.IsDir())
	}
	for _, p := range []scpath.SourcePath{sp.HeadPath(), sp.ConfigPath(), sp.CatalogPath(), sp.IndexPath()} {
		_, err := os.Stat(p.String())
		assert.NoError(t, err, p)
	}

	branch, err := repo.Graph().CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "master", branch.String())

	head, err := repo.Graph().HeadCommit(ctx)
	require.NoError(t, err)
	assert.True(t, head.IsRoot())
	assert.Equal(t, commit.InitialMessage, head.Message)

	n, err := repo.Catalog().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestInitializeOptions(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t, InitOptions{HashAlgorithm: objects.AlgorithmBlake3, DefaultBranch: "main"})

	assert.Equal(t, string(objects.AlgorithmBlake3), repo.Config().Core.HashAlgorithm)

	branch, err := repo.Graph().CurrentBranch(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", branch.String())

	head, err := repo.Graph().HeadCommit(ctx)
	require.NoError(t, err)
	assert.Len(t, head.ID.String(), objects.Blake3HexLength)
}

func TestInitializeTwiceFails(t *testing.T) {
	repo := initRepo(t, InitOptions{})

	_, err := Initialize(context.Background(), repo.WorkingDirectory(), InitOptions{})
	assert.True(t, scerr.IsCode(err, scerr.CodeRepositoryExists))
}

func TestOpenWithoutRepository(t *testing.T) {
	_, err := Open(context.Background(), setupTestDirectory(t))
	assert.True(t, scerr.IsCode(err, scerr.CodeNotARepository))
}

func TestFindWalksUp(t *testing.T) {
	repo := initRepo(t, InitOptions{})

	nested := filepath.Join(repo.WorkingDirectory().String(), "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	root, err := FindRoot(nested)
	require.NoError(t, err)
	assert.Equal(t, repo.WorkingDirectory(), root)

	_, err = FindRoot(t.TempDir())
	assert.True(t, scerr.IsCode(err, scerr.CodeNotARepository))
}

func TestOpenRebuildsMissingCatalog(t *testing.T) {
	ctx := context.Background()
	repo := initRepo(t, InitOptions{})
	path := repo.WorkingDirectory()

	require.NoError(t, os.WriteFile(path.Join("f.txt").String(), []byte("hello\n"), 0644))
	require.NoError(t, repo.Commits().Add(ctx, "f.txt"))
	_, err := repo.Commits().Commit(ctx, "add f")
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	require.NoError(t, os.Remove(path.SourcePath().CatalogPath().String()))

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer reopened.Close()

	n, err := reopened.Catalog().Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	found, err := reopened.Commits().Find(ctx, "add f")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
