package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"lukechampine.com/blake3"
)

// ObjectHash is the lowercase hex id of a stored object.
// Example: "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"
type ObjectHash string

// ShortHash is an abbreviated ObjectHash used for display.
type ShortHash string

const (
	// SHA1HexLength is the id length of a sha1 repository
	SHA1HexLength = 40
	// Blake3HexLength is the id length of a blake3 repository
	Blake3HexLength = 64
	// ShortHashLength is the abbreviation used by log output
	ShortHashLength = 7
	// MinPrefixLength is the shortest prefix accepted for commit lookup
	MinPrefixLength = 4
)

// Algorithm names the hash function a repository was initialized with.
type Algorithm string

const (
	AlgorithmSHA1   Algorithm = "sha1"
	AlgorithmBlake3 Algorithm = "blake3"
)

// ParseAlgorithm accepts "sha1" or "blake3".
func ParseAlgorithm(s string) (Algorithm, error) {
	switch Algorithm(strings.ToLower(strings.TrimSpace(s))) {
	case AlgorithmSHA1:
		return AlgorithmSHA1, nil
	case AlgorithmBlake3:
		return AlgorithmBlake3, nil
	default:
		return "", fmt.Errorf("unsupported hash algorithm %q", s)
	}
}

// Hasher computes object ids for one repository. The zero value hashes with sha1.
type Hasher struct {
	algo Algorithm
}

// NewHasher returns a Hasher for algo.
func NewHasher(algo Algorithm) (Hasher, error) {
	if _, err := ParseAlgorithm(string(algo)); err != nil {
		return Hasher{}, err
	}
	return Hasher{algo: algo}, nil
}

// Algorithm returns the configured algorithm.
func (h Hasher) Algorithm() Algorithm {
	if h.algo == "" {
		return AlgorithmSHA1
	}
	return h.algo
}

// HexLength is the length of ids produced by h.
func (h Hasher) HexLength() int {
	if h.Algorithm() == AlgorithmBlake3 {
		return Blake3HexLength
	}
	return SHA1HexLength
}

// Sum hashes data.
func (h Hasher) Sum(data []byte) ObjectHash {
	if h.Algorithm() == AlgorithmBlake3 {
		sum := blake3.Sum256(data)
		return ObjectHash(hex.EncodeToString(sum[:]))
	}
	sum := sha1.Sum(data)
	return ObjectHash(hex.EncodeToString(sum[:]))
}

// HashObject returns the id of obj: the hash of its serialized form.
func (h Hasher) HashObject(obj Object) ObjectHash {
	return h.Sum(Serialize(obj))
}

// ParseObjectHash lowercases s and checks that it is a full-length id.
func ParseObjectHash(s string) (ObjectHash, error) {
	hash := ObjectHash(strings.ToLower(strings.TrimSpace(s)))
	if err := hash.Validate(); err != nil {
		return "", err
	}
	return hash, nil
}

func (h ObjectHash) String() string {
	return string(h)
}

// Validate checks length and hex alphabet.
func (h ObjectHash) Validate() error {
	if len(h) != SHA1HexLength && len(h) != Blake3HexLength {
		return fmt.Errorf("hash must be %d or %d characters long, got %d", SHA1HexLength, Blake3HexLength, len(h))
	}
	if !IsHex(string(h)) {
		return fmt.Errorf("hash %q contains non-hex characters", string(h))
	}
	return nil
}

// IsZero reports whether h is unset.
func (h ObjectHash) IsZero() bool {
	return h == ""
}

// Short returns the display abbreviation.
func (h ObjectHash) Short() ShortHash {
	if len(h) > ShortHashLength {
		return ShortHash(h[:ShortHashLength])
	}
	return ShortHash(h)
}

// HasPrefix reports whether h starts with prefix, ignoring case.
func (h ObjectHash) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(h), strings.ToLower(prefix))
}

func (sh ShortHash) String() string {
	return string(sh)
}

// IsHex reports whether s is non-empty and only holds hex digits.
func IsHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if !isHexChar(c) {
			return false
		}
	}
	return true
}

func isHexChar(c rune) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
