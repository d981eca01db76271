package ignore

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

const (
	NegationPrefix  = '!'
	DirectorySuffix = '/'
	RootedPrefix    = '/'
	CommentPrefix   = '#'
	DefaultSource   = ".gitletignore"
)

// PatternConfig holds the parsed configuration of an ignore pattern
type PatternConfig struct {
	IsNegation     bool
	IsDirOnly      bool
	IsRooted       bool
	CleanedPattern string
}

// NewPatternConfig parses a pattern string and extracts its configuration
func NewPatternConfig(pattern string) PatternConfig {
	var config PatternConfig

	if after, found := strings.CutPrefix(pattern, string(NegationPrefix)); found {
		config.IsNegation = true
		pattern = after
	}

	if before, found := strings.CutSuffix(pattern, string(DirectorySuffix)); found {
		config.IsDirOnly = true
		pattern = before
	}

	if after, found := strings.CutPrefix(pattern, string(RootedPrefix)); found {
		config.IsRooted = true
		pattern = after
	}

	config.CleanedPattern = strings.TrimSpace(pattern)
	return config
}

// IgnorePattern is one line of a .gitletignore file.
//
// Rules:
//   - blank lines and lines starting with # are skipped
//   - ! re-includes paths an earlier pattern ignored
//   - a trailing / matches directories (and so everything below them)
//   - a leading / or any inner / anchors the pattern at the working tree root
//   - otherwise the pattern matches a name at any depth
//   - *, ?, [...], {a,b} and ** follow doublestar syntax
//
// Examples:
//
//	*.log          every .log file
//	build/         the build directory anywhere
//	/TODO          TODO at the root only
//	docs/*.pdf     PDFs directly in docs
//	!keep.log      keep.log even though *.log matched
type IgnorePattern struct {
	Pattern         string
	OriginalPattern string
	IsNegation      bool
	IsDirOnly       bool
	IsRooted        bool
	Source          string
	LineNumber      int

	glob string
}

// NewIgnorePattern creates a new ignore pattern with the given parameters
func NewIgnorePattern(pattern, source string, lineNumber int) IgnorePattern {
	if source == "" {
		source = DefaultSource
	}

	config := NewPatternConfig(pattern)
	cleaned := config.CleanedPattern

	glob := cleaned
	if !config.IsRooted && !strings.Contains(cleaned, "/") {
		glob = "**/" + cleaned
	}

	return IgnorePattern{
		Pattern:         cleaned,
		OriginalPattern: pattern,
		IsNegation:      config.IsNegation,
		IsDirOnly:       config.IsDirOnly,
		IsRooted:        config.IsRooted,
		Source:          source,
		LineNumber:      lineNumber,
		glob:            glob,
	}
}

// FromLine parses one line of an ignore file. It returns nil for blank lines,
// comments, and patterns doublestar rejects.
func FromLine(line, source string, lineNumber int) *IgnorePattern {
	line = strings.TrimRight(line, " \t\r")
	if line == "" || strings.HasPrefix(line, string(CommentPrefix)) {
		return nil
	}

	pattern := NewIgnorePattern(line, source, lineNumber)
	if pattern.Pattern == "" || !doublestar.ValidatePattern(pattern.glob) {
		return nil
	}
	return &pattern
}

// Matches reports whether the slash-separated relative path is covered by
// this pattern, either directly or by lying inside a matched directory.
func (ip *IgnorePattern) Matches(path string, isDirectory bool) bool {
	if ip.IsDirOnly && !isDirectory {
		return ip.matchesParentDir(path)
	}
	if ok, _ := doublestar.Match(ip.glob, path); ok {
		return true
	}
	return ip.matchesParentDir(path)
}

// matchesParentDir checks every proper parent directory of path.
func (ip *IgnorePattern) matchesParentDir(path string) bool {
	parts := strings.Split(path, "/")
	for i := 1; i < len(parts); i++ {
		if ok, _ := doublestar.Match(ip.glob, strings.Join(parts[:i], "/")); ok {
			return true
		}
	}
	return false
}
