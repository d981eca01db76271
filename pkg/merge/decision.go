package merge

import (
	"github.com/utkarsh5026/gitlet/pkg/objects"
)

// Resolution is what a merge does with one path.
type Resolution int

const (
	// Keep leaves the current version, present or absent, as it is.
	Keep Resolution = iota
	// TakeGiven writes and stages the given branch's version.
	TakeGiven
	// Remove deletes the file and stages its removal.
	Remove
	// Conflict writes both versions between conflict markers and stages the result.
	Conflict
)

func (r Resolution) String() string {
	switch r {
	case Keep:
		return "keep"
	case TakeGiven:
		return "take-given"
	case Remove:
		return "remove"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Decide resolves one path from its blob id at the split point, in the given
// head and in the current head. A zero id means the path is absent there.
//
//	given == current            keep (same change on both sides, or none)
//	given == split              keep (only current changed it)
//	current == split, given ""  remove (only given deleted it)
//	current == split            take given (only given changed it)
//	otherwise                   conflict
func Decide(split, given, current objects.ObjectHash) Resolution {
	switch {
	case given == current:
		return Keep
	case given == split:
		return Keep
	case current == split && given.IsZero():
		return Remove
	case current == split:
		return TakeGiven
	default:
		return Conflict
	}
}

// ConflictContent builds the file written for a conflicted path. A deleted
// side contributes an empty string.
func ConflictContent(current, given []byte) []byte {
	out := make([]byte, 0, len(current)+len(given)+32)
	out = append(out, "<<<<<<< HEAD\n"...)
	out = append(out, current...)
	out = append(out, "=======\n"...)
	out = append(out, given...)
	out = append(out, ">>>>>>>\n"...)
	return out
}
