package commitmanager

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/utkarsh5026/gitlet/pkg/catalog"
	"github.com/utkarsh5026/gitlet/pkg/objects"
	"github.com/utkarsh5026/gitlet/pkg/objects/commit"
)

// LogDateLayout is the date line format of log output.
const LogDateLayout = "Mon Jan 02 15:04:05 2006 -0700"

// History is the commit catalog as seen by global-log and find.
type History interface {
	All(ctx context.Context) ([]catalog.Entry, error)
	FindByMessage(ctx context.Context, message string) ([]objects.ObjectHash, error)
}

// LogEntry is one commit as shown by log and global-log.
type LogEntry struct {
	ID          objects.ObjectHash
	Message     string
	Timestamp   time.Time
	Parent      objects.ObjectHash
	MergeParent objects.ObjectHash
}

// IsMerge reports whether the entry has two parents.
func (e LogEntry) IsMerge() bool {
	return !e.MergeParent.IsZero()
}

// String renders the entry in log format:
//
//	===
//	commit 3f786850e387550fdab836ed7e6dc881de23001b
//	Merge: 4975af1 2c1ead1
//	Date: Thu Jan 01 00:00:00 1970 +0000
//	initial commit
//
// The Merge line appears only for merge commits.
func (e LogEntry) String() string {
	var b strings.Builder
	b.WriteString("===\n")
	fmt.Fprintf(&b, "commit %s\n", e.ID)
	if e.IsMerge() {
		fmt.Fprintf(&b, "Merge: %s %s\n", e.Parent.Short(), e.MergeParent.Short())
	}
	fmt.Fprintf(&b, "Date: %s\n", e.Timestamp.Format(LogDateLayout))
	b.WriteString(e.Message)
	b.WriteString("\n\n")
	return b.String()
}

func entryFromCommit(c *commit.Commit) LogEntry {
	return LogEntry{
		ID:          c.ID,
		Message:     c.Message,
		Timestamp:   c.Timestamp,
		Parent:      c.Parent(),
		MergeParent: c.MergeParent(),
	}
}

func entryFromCatalog(e catalog.Entry) LogEntry {
	return LogEntry{
		ID:          e.ID,
		Message:     e.Message,
		Timestamp:   e.Timestamp,
		Parent:      e.Parent,
		MergeParent: e.MergeParent,
	}
}

// FileStatus marks how a working file differs from what would be committed.
type FileStatus string

const (
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
)

// Modification is a tracked or staged file whose working copy does not match.
type Modification struct {
	Path   string
	Status FileStatus
}

func (m Modification) String() string {
	return fmt.Sprintf("%s (%s)", m.Path, m.Status)
}

// Status is the state reported by the status command. Every list is sorted.
type Status struct {
	Branches      []string
	CurrentBranch string
	Staged        []string
	Removed       []string
	Modified      []Modification
	Untracked     []string
}

// String renders the five status sections.
func (s *Status) String() string {
	var b strings.Builder

	b.WriteString("=== Branches ===\n")
	for _, name := range s.Branches {
		if name == s.CurrentBranch {
			b.WriteString("*")
		}
		b.WriteString(name + "\n")
	}

	section := func(title string, lines []string) {
		b.WriteString("\n=== " + title + " ===\n")
		for _, l := range lines {
			b.WriteString(l + "\n")
		}
	}
	section("Staged Files", s.Staged)
	section("Removed Files", s.Removed)

	mods := make([]string, len(s.Modified))
	for i, m := range s.Modified {
		mods[i] = m.String()
	}
	section("Modifications Not Staged For Commit", mods)
	section("Untracked Files", s.Untracked)
	b.WriteString("\n")

	return b.String()
}
