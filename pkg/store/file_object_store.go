package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/common/logger"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// FileObjectStore keeps every object in its own file, named by id, under a
// directory per kind:
//
//	.gitlet/objects/
//	├─ blobs/
//	│  └─ 95d09f2b10159347eece71399a7e2e907ea3df4f
//	└─ commits/
//	   └─ 3f786850e387550fdab836ed7e6dc881de23001b
//
// A file holds the zstd-compressed "<type> <size>\0<content>" form. Files are
// written once through a temp file and rename, and left read-only.
type FileObjectStore struct {
	blobsPath   scpath.SourcePath
	commitsPath scpath.SourcePath
	hasher      objects.Hasher
	codec       *codec
	logger      *slog.Logger
}

// Options configures a FileObjectStore.
type Options struct {
	Hasher      objects.Hasher
	Compression CompressionLevel
}

// NewFileObjectStore opens the store below sourcePath, creating its
// directories when needed.
func NewFileObjectStore(sourcePath scpath.SourcePath, opts Options) (*FileObjectStore, error) {
	c, err := newCodec(opts.Compression)
	if err != nil {
		return nil, err
	}

	fos := &FileObjectStore{
		blobsPath:   sourcePath.BlobsPath(),
		commitsPath: sourcePath.CommitsPath(),
		hasher:      opts.Hasher,
		codec:       c,
		logger:      logger.With("component", "store"),
	}

	for _, dir := range []scpath.SourcePath{fos.blobsPath, fos.commitsPath} {
		if err := fileops.EnsureDir(dir.ToAbsolutePath()); err != nil {
			c.close()
			return nil, fmt.Errorf("initialize object store: %w", err)
		}
	}
	return fos, nil
}

// Close releases the compression codec.
func (fos *FileObjectStore) Close() {
	fos.codec.close()
}

func (fos *FileObjectStore) Hasher() objects.Hasher {
	return fos.hasher
}

func (fos *FileObjectStore) WriteBlob(ctx context.Context, content []byte) (objects.ObjectHash, error) {
	return fos.writeObject(ctx, objects.NewBlob(content))
}

func (fos *FileObjectStore) ReadBlob(ctx context.Context, id objects.ObjectHash) ([]byte, error) {
	return fos.readObject(ctx, objects.BlobType, id)
}

func (fos *FileObjectStore) HasBlob(id objects.ObjectHash) (bool, error) {
	return fos.hasObject(objects.BlobType, id)
}

func (fos *FileObjectStore) WriteCommit(ctx context.Context, c *commit.Commit) (objects.ObjectHash, error) {
	id, err := fos.writeObject(ctx, c)
	if err != nil {
		return "", err
	}
	c.ID = id
	return id, nil
}

func (fos *FileObjectStore) ReadCommit(ctx context.Context, id objects.ObjectHash) (*commit.Commit, error) {
	content, err := fos.readObject(ctx, objects.CommitType, id)
	if err != nil {
		return nil, err
	}

	c, err := commit.Decode(content)
	if err != nil {
		fos.logger.Error("commit decode failed", "id", id, "error", err)
		return nil, NewCorruptObjectError(objects.CommitType, id, err)
	}
	c.ID = id
	return c, nil
}

func (fos *FileObjectStore) HasCommit(id objects.ObjectHash) (bool, error) {
	return fos.hasObject(objects.CommitType, id)
}

func (fos *FileObjectStore) ListCommits(ctx context.Context) ([]objects.ObjectHash, error) {
	return fos.FindCommitsByPrefix(ctx, "")
}

func (fos *FileObjectStore) FindCommitsByPrefix(ctx context.Context, prefix string) ([]objects.ObjectHash, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	entries, err := os.ReadDir(fos.commitsPath.String())
	if err != nil {
		return nil, fmt.Errorf("list commits: %w", err)
	}

	prefix = strings.ToLower(prefix)
	var ids []objects.ObjectHash
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, prefix) || len(name) != fos.hasher.HexLength() {
			continue
		}
		ids = append(ids, objects.ObjectHash(name))
	}
	slices.Sort(ids)
	return ids, nil
}

// writeObject serializes obj, hashes it and writes it unless already present.
func (fos *FileObjectStore) writeObject(ctx context.Context, obj objects.Object) (objects.ObjectHash, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	serialized := objects.Serialize(obj)
	id := fos.hasher.Sum(serialized)
	path := fos.objectPath(obj.Type(), id)

	exists, err := fileops.Exists(path)
	if err != nil {
		return "", err
	}
	if exists {
		return id, nil
	}

	if err := fileops.WriteReadOnly(path, fos.codec.compress(serialized)); err != nil {
		return "", fmt.Errorf("write %s %s: %w", obj.Type(), id, err)
	}

	fos.logger.Debug("object written", "type", obj.Type(), "id", id, "size", len(serialized))
	return id, nil
}

// readObject loads, decompresses and verifies an object of the expected kind.
func (fos *FileObjectStore) readObject(ctx context.Context, kind objects.ObjectType, id objects.ObjectHash) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := id.Validate(); err != nil {
		return nil, NewInvalidIDError(id, err)
	}

	compressed, err := os.ReadFile(fos.objectPath(kind, id).String())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewNotFoundError(kind, id)
		}
		return nil, fmt.Errorf("read %s %s: %w", kind, id, err)
	}

	raw, err := fos.codec.decompress(compressed)
	if err != nil {
		return nil, NewCorruptObjectError(kind, id, err)
	}

	serialized := objects.SerializedObject(raw)
	if got := fos.hasher.Sum(serialized); got != id {
		return nil, NewCorruptObjectError(kind, id, fmt.Errorf("content hashes to %s", got))
	}

	ot, content, err := serialized.Parse()
	if err != nil {
		return nil, NewCorruptObjectError(kind, id, err)
	}
	if ot != kind {
		return nil, NewCorruptObjectError(kind, id, fmt.Errorf("stored object is a %s", ot))
	}
	return content, nil
}

func (fos *FileObjectStore) hasObject(kind objects.ObjectType, id objects.ObjectHash) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, nil
	}
	return fileops.IsFile(fos.objectPath(kind, id))
}

func (fos *FileObjectStore) objectPath(kind objects.ObjectType, id objects.ObjectHash) scpath.AbsolutePath {
	dir := fos.blobsPath
	if kind == objects.CommitType {
		dir = fos.commitsPath
	}
	return scpath.AbsolutePath(filepath.Join(dir.String(), id.String()))
}
