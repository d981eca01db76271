package commit

import (
	"maps"
	"slices"

	"github.com/utkarsh5026/gitlet/pkg/objects"
)

// Snapshot maps every tracked path (slash separated, relative to the working
// tree root) to the blob holding its content. It is always a full tree state.
type Snapshot map[string]objects.ObjectHash

// Get returns the blob tracked at path.
func (s Snapshot) Get(path string) (objects.ObjectHash, bool) {
	h, ok := s[path]
	return h, ok
}

// Has reports whether path is tracked.
func (s Snapshot) Has(path string) bool {
	_, ok := s[path]
	return ok
}

// Paths returns the tracked paths in sorted order.
func (s Snapshot) Paths() []string {
	return slices.Sorted(maps.Keys(s))
}

// Clone returns an independent copy; a nil snapshot clones to an empty one.
func (s Snapshot) Clone() Snapshot {
	out := make(Snapshot, len(s))
	maps.Copy(out, s)
	return out
}

// Equal reports whether both snapshots track the same paths at the same blobs.
func (s Snapshot) Equal(other Snapshot) bool {
	return maps.Equal(s, other)
}
