package domain

import (
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Artifact is a generated file held in memory until the whole set is written.
type Artifact struct {
	// Path is relative to the output directory.
	Path    string
	Content []byte
}

// Digest returns a short content hash of the artifact.
func (a Artifact) Digest() string {
	return strconv.FormatUint(xxhash.Sum64(a.Content), 16)
}
