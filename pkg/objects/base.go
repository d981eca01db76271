package objects

import (
	"bytes"
	"fmt"
	"strconv"
)

// ObjectType distinguishes the two stored kinds.
type ObjectType string

const (
	BlobType   ObjectType = "blob"
	CommitType ObjectType = "commit"
)

const (
	NullByte  = byte(0)
	SpaceByte = byte(' ')
)

func (o ObjectType) String() string {
	return string(o)
}

// ParseObjectType converts a header type name.
func ParseObjectType(s string) (ObjectType, error) {
	switch ObjectType(s) {
	case BlobType, CommitType:
		return ObjectType(s), nil
	default:
		return "", fmt.Errorf("unknown object type: %s", s)
	}
}

// Object is anything the store can persist.
type Object interface {
	Type() ObjectType
	// Content returns the canonical bytes without header.
	Content() []byte
}

// SerializedObject is "<type> <size>\0<content>", the form that is hashed
// and, compressed, written to disk.
type SerializedObject []byte

// Serialize prefixes obj's content with its header.
func Serialize(obj Object) SerializedObject {
	content := obj.Content()
	header := obj.Type().String() + " " + strconv.Itoa(len(content))

	out := make([]byte, 0, len(header)+1+len(content))
	out = append(out, header...)
	out = append(out, NullByte)
	out = append(out, content...)
	return out
}

// Parse splits a serialized object into its type and content, checking the
// declared size.
func (so SerializedObject) Parse() (ObjectType, []byte, error) {
	nullIndex := bytes.IndexByte(so, NullByte)
	if nullIndex == -1 {
		return "", nil, fmt.Errorf("invalid object header: missing null byte")
	}

	header := so[:nullIndex]
	spaceIndex := bytes.IndexByte(header, SpaceByte)
	if spaceIndex == -1 {
		return "", nil, fmt.Errorf("invalid object header: missing space")
	}

	ot, err := ParseObjectType(string(header[:spaceIndex]))
	if err != nil {
		return "", nil, err
	}

	size, err := strconv.Atoi(string(header[spaceIndex+1:]))
	if err != nil || size < 0 {
		return "", nil, fmt.Errorf("invalid object size %q", header[spaceIndex+1:])
	}

	content := so[nullIndex+1:]
	if len(content) != size {
		return "", nil, fmt.Errorf("%s size mismatch: expected %d, got %d", ot, size, len(content))
	}
	return ot, content, nil
}
