package commit

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/utkarsh5026/gitlet/pkg/objects"
)

const (
	// InitialMessage is the message of every repository's root commit
	InitialMessage = "initial commit"

	headerTimestamp = "timestamp"
	headerParent    = "parent"
	headerFile      = "file"
)

// Commit is an immutable node of the history graph.
//
// Canonical content, one header per line, then a blank line and the message:
//
//	timestamp 1700000000 +0100
//	parent 3f786850e387550fdab836ed7e6dc881de23001b
//	file 89e6c98d92887913cadf06b2adb97f26cde4849b docs/readme.md
//
//	add readme
//
// Parents are written in order (primary first, merge parent second) and
// files are sorted by path, so equal commits always encode to equal bytes.
type Commit struct {
	Message   string
	Timestamp time.Time
	Parents   []objects.ObjectHash
	Snapshot  Snapshot

	// ID is filled in by the store after a write or read. It is not part of
	// the encoded content.
	ID objects.ObjectHash
}

// NewRootCommit returns the fixed initial commit: epoch timestamp, no
// parents, empty snapshot.
func NewRootCommit() *Commit {
	return &Commit{
		Message:   InitialMessage,
		Timestamp: time.Unix(0, 0).UTC(),
		Snapshot:  Snapshot{},
	}
}

func (c *Commit) Type() objects.ObjectType {
	return objects.CommitType
}

// Content returns the canonical encoding.
func (c *Commit) Content() []byte {
	var buf bytes.Buffer

	buf.WriteString(headerTimestamp + " " + strconv.FormatInt(c.Timestamp.Unix(), 10) + " " + c.Timestamp.Format("-0700") + "\n")
	for _, p := range c.Parents {
		buf.WriteString(headerParent + " " + p.String() + "\n")
	}
	for _, path := range c.Snapshot.Paths() {
		buf.WriteString(headerFile + " " + c.Snapshot[path].String() + " " + path + "\n")
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)

	return buf.Bytes()
}

// Decode parses canonical content. Anything that would not re-encode to the
// same bytes is rejected.
func Decode(content []byte) (*Commit, error) {
	headers, message, found := strings.Cut(string(content), "\n\n")
	if !found {
		return nil, fmt.Errorf("commit has no message separator")
	}

	c := &Commit{Message: message, Snapshot: Snapshot{}}
	sawTimestamp := false
	lastPath := ""

	for i, line := range strings.Split(headers, "\n") {
		key, rest, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("line %d: malformed header %q", i+1, line)
		}

		switch key {
		case headerTimestamp:
			if i != 0 {
				return nil, fmt.Errorf("line %d: timestamp must come first", i+1)
			}
			ts, err := parseTimestamp(rest)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", i+1, err)
			}
			c.Timestamp = ts
			sawTimestamp = true

		case headerParent:
			if len(c.Snapshot) > 0 {
				return nil, fmt.Errorf("line %d: parent after file entries", i+1)
			}
			if len(c.Parents) == 2 {
				return nil, fmt.Errorf("line %d: more than two parents", i+1)
			}
			h, err := objects.ParseObjectHash(rest)
			if err != nil || h.String() != rest {
				return nil, fmt.Errorf("line %d: invalid parent %q", i+1, rest)
			}
			c.Parents = append(c.Parents, h)

		case headerFile:
			id, path, ok := strings.Cut(rest, " ")
			if !ok || path == "" {
				return nil, fmt.Errorf("line %d: malformed file entry", i+1)
			}
			h, err := objects.ParseObjectHash(id)
			if err != nil || h.String() != id {
				return nil, fmt.Errorf("line %d: invalid blob id %q", i+1, id)
			}
			if path <= lastPath {
				return nil, fmt.Errorf("line %d: file entries out of order", i+1)
			}
			lastPath = path
			c.Snapshot[path] = h

		default:
			return nil, fmt.Errorf("line %d: unknown header %q", i+1, key)
		}
	}

	if !sawTimestamp {
		return nil, fmt.Errorf("commit has no timestamp")
	}
	return c, nil
}

func parseTimestamp(s string) (time.Time, error) {
	secs, zone, ok := strings.Cut(s, " ")
	if !ok {
		return time.Time{}, fmt.Errorf("malformed timestamp %q", s)
	}
	unix, err := strconv.ParseInt(secs, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed timestamp seconds %q", secs)
	}
	offset, err := parseZoneOffset(zone)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(unix, 0).In(time.FixedZone("", offset)), nil
}

// parseZoneOffset reads "+hhmm" or "-hhmm" into seconds east of UTC.
func parseZoneOffset(zone string) (int, error) {
	if len(zone) != 5 || (zone[0] != '+' && zone[0] != '-') {
		return 0, fmt.Errorf("malformed zone offset %q", zone)
	}
	hh, err1 := strconv.Atoi(zone[1:3])
	mm, err2 := strconv.Atoi(zone[3:5])
	if err1 != nil || err2 != nil || mm > 59 {
		return 0, fmt.Errorf("malformed zone offset %q", zone)
	}
	offset := hh*3600 + mm*60
	if zone[0] == '-' {
		offset = -offset
	}
	return offset, nil
}

// Parent returns the primary parent, or "" for the root commit.
func (c *Commit) Parent() objects.ObjectHash {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// MergeParent returns the second parent of a merge commit, or "".
func (c *Commit) MergeParent() objects.ObjectHash {
	if len(c.Parents) < 2 {
		return ""
	}
	return c.Parents[1]
}

// IsRoot reports whether c has no parents.
func (c *Commit) IsRoot() bool {
	return len(c.Parents) == 0
}

// IsMerge reports whether c has two parents.
func (c *Commit) IsMerge() bool {
	return len(c.Parents) == 2
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{id: %s, parents: %d, files: %d, message: %q}",
		c.ID.Short(), len(c.Parents), len(c.Snapshot), c.Message)
}
