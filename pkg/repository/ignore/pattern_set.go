package ignore

import (
	"strings"

	"github.com/utkarsh5026/gitlet/pkg/common/fileops"
	"github.com/utkarsh5026/gitlet/pkg/repository/scpath"
)

// PatternSet is an ordered list of ignore patterns. The last pattern that
// matches a path decides whether it is ignored.
type PatternSet struct {
	patterns []*IgnorePattern
}

// NewPatternSet creates a new empty pattern set
func NewPatternSet() *PatternSet {
	return &PatternSet{}
}

// Load reads the .gitletignore file at the working tree root. A missing file
// yields an empty set.
func Load(root scpath.RepositoryPath) (*PatternSet, error) {
	ps := NewPatternSet()
	data, err := fileops.ReadBytes(root.Join(scpath.IgnoreFile))
	if err != nil {
		return nil, err
	}
	ps.AddPatternsFromText(string(data), DefaultSource)
	return ps, nil
}

// Add appends a pattern to the set
func (ps *PatternSet) Add(pattern *IgnorePattern) {
	ps.patterns = append(ps.patterns, pattern)
}

// AddPatternsFromText parses text and adds all valid patterns to the set
func (ps *PatternSet) AddPatternsFromText(text, source string) {
	for i, line := range strings.Split(text, "\n") {
		if pattern := FromLine(line, source, i+1); pattern != nil {
			ps.Add(pattern)
		}
	}
}

// IsIgnored reports whether a slash-separated path relative to the working
// tree root is ignored.
func (ps *PatternSet) IsIgnored(path string, isDirectory bool) bool {
	ignored := false
	for _, p := range ps.patterns {
		if p.Matches(path, isDirectory) {
			ignored = !p.IsNegation
		}
	}
	return ignored
}

// Len returns the number of patterns.
func (ps *PatternSet) Len() int {
	return len(ps.patterns)
}

// Patterns returns the patterns in file order.
func (ps *PatternSet) Patterns() []*IgnorePattern {
	return ps.patterns
}
