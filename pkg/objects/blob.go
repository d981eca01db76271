package objects

import "fmt"

// Blob is the immutable content of one file version.
type Blob struct {
	data []byte
}

// NewBlob wraps data. The slice is not copied; callers must not mutate it.
func NewBlob(data []byte) *Blob {
	if data == nil {
		data = []byte{}
	}
	return &Blob{data: data}
}

func (b *Blob) Type() ObjectType {
	return BlobType
}

func (b *Blob) Content() []byte {
	return b.data
}

// Size returns the content length in bytes.
func (b *Blob) Size() int64 {
	return int64(len(b.data))
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{size: %d}", len(b.data))
}
