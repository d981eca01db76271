package scpath

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRelativePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RelativePath
		wantErr bool
	}{
		{name: "plain file", input: "a.txt", want: "a.txt"},
		{name: "nested", input: "src/main.go", want: "src/main.go"},
		{name: "dot prefix", input: "./docs/readme.md", want: "docs/readme.md"},
		{name: "redundant segments", input: "src/../lib//x.go", want: "lib/x.go"},
		{name: "empty", input: "", wantErr: true},
		{name: "root", input: ".", wantErr: true},
		{name: "absolute", input: "/etc/passwd", wantErr: true},
		{name: "escape", input: "../outside", wantErr: true},
		{name: "hidden escape", input: "a/../../b", wantErr: true},
		{name: "newline", input: "a\nb", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRelativePath(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRepositoryLayout(t *testing.T) {
	root := t.TempDir()
	rp, err := NewRepositoryPath(root)
	require.NoError(t, err)

	sp := rp.SourcePath()
	assert.Equal(t, filepath.Join(root, ".gitlet"), sp.String())
	assert.Equal(t, filepath.Join(root, ".gitlet", "objects", "blobs"), sp.BlobsPath().String())
	assert.Equal(t, filepath.Join(root, ".gitlet", "objects", "commits"), sp.CommitsPath().String())
	assert.Equal(t, filepath.Join(root, ".gitlet", "refs", "HEAD"), sp.HeadPath().String())
	assert.Equal(t, filepath.Join(root, ".gitlet", "index"), sp.IndexPath().String())

	abs := rp.JoinRelative("src/main.go")
	assert.Equal(t, filepath.Join(root, "src", "main.go"), abs.String())

	rel, err := rp.Rel(abs.String())
	require.NoError(t, err)
	assert.Equal(t, RelativePath("src/main.go"), rel)
}

func TestRelativePathHelpers(t *testing.T) {
	rp := RelativePath("docs/guide/intro.md")
	assert.Equal(t, []string{"docs", "guide", "intro.md"}, rp.Components())
	assert.True(t, rp.IsInSubdir("docs"))
	assert.True(t, rp.IsInSubdir("docs/guide"))
	assert.False(t, rp.IsInSubdir("doc"))
}
