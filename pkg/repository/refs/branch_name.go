package refs

import (
	"fmt"
	"strings"
)

const (
	// SymbolicRefPrefix starts the content of refs/HEAD
	SymbolicRefPrefix = "ref: "

	// HeadName is reserved: refs/HEAD is the current-branch pointer
	HeadName = "HEAD"
)

// BranchName is a validated branch name. Each branch is stored as the single
// file refs/<name>, so names are flat.
// Examples: "master", "feature-x", "v1.2"
type BranchName string

var invalidSequences = []string{" ", "\t", "\n", "/", "\\", "~", "^", ":", "?", "*", "[", "..", "@{"}

// NewBranchName validates name.
func NewBranchName(name string) (BranchName, error) {
	if name == "" {
		return "", fmt.Errorf("branch name cannot be empty")
	}
	if name == HeadName {
		return "", fmt.Errorf("%q is reserved", name)
	}
	for _, seq := range invalidSequences {
		if strings.Contains(name, seq) {
			return "", fmt.Errorf("branch name %q may not contain %q", name, seq)
		}
	}
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "-") {
		return "", fmt.Errorf("branch name %q may not start with %q", name, name[:1])
	}
	if strings.HasSuffix(name, ".lock") || strings.HasSuffix(name, ".") {
		return "", fmt.Errorf("invalid branch name suffix: %s", name)
	}
	return BranchName(name), nil
}

func (b BranchName) String() string {
	return string(b)
}
