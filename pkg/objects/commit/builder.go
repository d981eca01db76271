package commit

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/utkarsh5026/gitlet/pkg/objects"
)

// ErrEmptyMessage is returned by Build for a blank message.
var ErrEmptyMessage = errors.New("commit message cannot be empty")

// Builder assembles a non-root Commit. Validation problems are collected and
// reported together by Build.
type Builder struct {
	commit *Commit
	errs   []error
}

// NewBuilder starts a commit stamped with the current time.
func NewBuilder() *Builder {
	return &Builder{
		commit: &Commit{
			Timestamp: time.Now().Truncate(time.Second),
			Snapshot:  Snapshot{},
		},
	}
}

// Parent appends a parent; at most two are allowed.
func (b *Builder) Parent(id objects.ObjectHash) *Builder {
	if err := id.Validate(); err != nil {
		b.errs = append(b.errs, fmt.Errorf("invalid parent: %w", err))
		return b
	}
	b.commit.Parents = append(b.commit.Parents, id)
	return b
}

// Parents appends each id in order.
func (b *Builder) Parents(ids ...objects.ObjectHash) *Builder {
	for _, id := range ids {
		b.Parent(id)
	}
	return b
}

// Snapshot sets the full tree state. The map is copied.
func (b *Builder) Snapshot(s Snapshot) *Builder {
	b.commit.Snapshot = s.Clone()
	return b
}

// Message sets the commit message.
func (b *Builder) Message(msg string) *Builder {
	b.commit.Message = msg
	return b
}

// Timestamp overrides the creation time.
func (b *Builder) Timestamp(t time.Time) *Builder {
	b.commit.Timestamp = t.Truncate(time.Second)
	return b
}

// Build validates and returns the commit.
func (b *Builder) Build() (*Commit, error) {
	if strings.TrimSpace(b.commit.Message) == "" {
		b.errs = append(b.errs, ErrEmptyMessage)
	}
	if len(b.commit.Parents) == 0 {
		b.errs = append(b.errs, errors.New("a commit needs at least one parent"))
	}
	if len(b.commit.Parents) > 2 {
		b.errs = append(b.errs, fmt.Errorf("a commit has at most two parents, got %d", len(b.commit.Parents)))
	}
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	return b.commit, nil
}
