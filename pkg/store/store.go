package store

import (
	"context"

	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
)

// ObjectStore is the write-once, content-addressed home of blobs and commits.
// Writing an object that already exists is a no-op that returns its id.
// There are no update or delete operations.
type ObjectStore interface {
	// WriteBlob stores content and returns its id
	WriteBlob(ctx context.Context, content []byte) (objects.ObjectHash, error)

	// ReadBlob returns the content stored under id.
	// Fails with a NOT_FOUND or CORRUPT_OBJECT coded error.
	ReadBlob(ctx context.Context, id objects.ObjectHash) ([]byte, error)

	HasBlob(id objects.ObjectHash) (bool, error)

	// WriteCommit stores c, sets c.ID and returns it
	WriteCommit(ctx context.Context, c *commit.Commit) (objects.ObjectHash, error)

	// ReadCommit decodes the commit stored under id, with ID populated.
	ReadCommit(ctx context.Context, id objects.ObjectHash) (*commit.Commit, error)

	HasCommit(id objects.ObjectHash) (bool, error)

	// ListCommits returns every commit id in ascending order
	ListCommits(ctx context.Context) ([]objects.ObjectHash, error)

	// FindCommitsByPrefix returns the ascending ids that start with prefix
	FindCommitsByPrefix(ctx context.Context, prefix string) ([]objects.ObjectHash, error)

	// Hasher is the id function of this repository
	Hasher() objects.Hasher
}
