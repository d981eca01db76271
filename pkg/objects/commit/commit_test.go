package commit

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utkarsh5026/gitlet/pkg/objects"
)

var hasher objects.Hasher

func blobID(content string) objects.ObjectHash {
	return hasher.HashObject(objects.NewBlob([]byte(content)))
}

func TestRootCommit(t *testing.T) {
	root := NewRootCommit()

	assert.Equal(t, InitialMessage, root.Message)
	assert.Equal(t, int64(0), root.Timestamp.Unix())
	assert.True(t, root.IsRoot())
	assert.Empty(t, root.Snapshot)

	// Every repository starts from the same root id.
	assert.Equal(t, hasher.HashObject(root), hasher.HashObject(NewRootCommit()))
	assert.Equal(t, "timestamp 0 +0000\n\ninitial commit", string(root.Content()))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	root := NewRootCommit()
	rootID := hasher.HashObject(root)

	zone := time.FixedZone("", -(7*3600 + 30*60))
	c, err := NewBuilder().
		Parent(rootID).
		Snapshot(Snapshot{
			"b.txt":          blobID("b"),
			"a.txt":          blobID("a"),
			"dir/with space": blobID("s"),
		}).
		Message("first line\n\nsecond paragraph").
		Timestamp(time.Date(2024, 3, 9, 14, 5, 7, 0, zone)).
		Build()
	require.NoError(t, err)

	content := c.Content()
	lines := strings.Split(string(content), "\n")
	assert.Equal(t, "timestamp 1710020107 -0730", lines[0])
	assert.Equal(t, "parent "+rootID.String(), lines[1])
	assert.True(t, strings.HasSuffix(lines[2], " a.txt"), "files are sorted by path")

	decoded, err := Decode(content)
	require.NoError(t, err)

	assert.Equal(t, c.Message, decoded.Message)
	assert.Equal(t, c.Parents, decoded.Parents)
	assert.True(t, c.Snapshot.Equal(decoded.Snapshot))
	assert.Equal(t, c.Timestamp.Unix(), decoded.Timestamp.Unix())
	assert.Equal(t, content, decoded.Content(), "re-encoding reproduces identical bytes")
	assert.Equal(t, hasher.HashObject(c), hasher.HashObject(decoded))
}

func TestMergeCommitParents(t *testing.T) {
	p1 := blobID("p1")
	p2 := blobID("p2")

	c, err := NewBuilder().Parents(p1, p2).Message("Merged b into a.").Build()
	require.NoError(t, err)

	assert.True(t, c.IsMerge())
	assert.Equal(t, p1, c.Parent())
	assert.Equal(t, p2, c.MergeParent())

	decoded, err := Decode(c.Content())
	require.NoError(t, err)
	assert.Equal(t, []objects.ObjectHash{p1, p2}, decoded.Parents)
}

func TestBuilderValidation(t *testing.T) {
	parent := blobID("x")

	t.Run("blank message", func(t *testing.T) {
		_, err := NewBuilder().Parent(parent).Message("   ").Build()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyMessage))
	})

	t.Run("missing parent", func(t *testing.T) {
		_, err := NewBuilder().Message("m").Build()
		assert.Error(t, err)
	})

	t.Run("invalid parent id", func(t *testing.T) {
		_, err := NewBuilder().Parent("zz").Message("m").Build()
		assert.Error(t, err)
	})

	t.Run("three parents", func(t *testing.T) {
		_, err := NewBuilder().Parents(parent, parent, parent).Message("m").Build()
		assert.Error(t, err)
	})

	t.Run("snapshot is copied", func(t *testing.T) {
		s := Snapshot{"a": parent}
		c, err := NewBuilder().Parent(parent).Snapshot(s).Message("m").Build()
		require.NoError(t, err)
		s["b"] = parent
		assert.Len(t, c.Snapshot, 1)
	})
}

func TestDecodeRejectsNonCanonicalContent(t *testing.T) {
	id := blobID("a").String()

	tests := map[string]string{
		"no separator":        "timestamp 0 +0000\ninitial commit",
		"missing timestamp":   "parent " + id + "\n\nmsg",
		"timestamp not first": "parent " + id + "\ntimestamp 0 +0000\n\nmsg",
		"bad zone":            "timestamp 0 0000\n\nmsg",
		"uppercase parent":    "timestamp 0 +0000\nparent " + strings.ToUpper(id) + "\n\nmsg",
		"unsorted files":      "timestamp 0 +0000\nfile " + id + " b\nfile " + id + " a\n\nmsg",
		"duplicate files":     "timestamp 0 +0000\nfile " + id + " a\nfile " + id + " a\n\nmsg",
		"parent after file":   "timestamp 0 +0000\nfile " + id + " a\nparent " + id + "\n\nmsg",
		"unknown header":      "timestamp 0 +0000\nauthor me\n\nmsg",
		"three parents":       "timestamp 0 +0000\nparent " + id + "\nparent " + id + "\nparent " + id + "\n\nmsg",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode([]byte(content))
			assert.Error(t, err)
		})
	}
}

func TestSnapshotHelpers(t *testing.T) {
	s := Snapshot{"z": blobID("z"), "a": blobID("a")}

	assert.Equal(t, []string{"a", "z"}, s.Paths())
	assert.True(t, s.Has("a"))
	_, ok := s.Get("missing")
	assert.False(t, ok)

	var empty Snapshot
	clone := empty.Clone()
	require.NotNil(t, clone)
	clone["x"] = blobID("x")
	assert.Len(t, clone, 1)
}
