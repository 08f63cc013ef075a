package ports

import "go.trai.ch/stamp/internal/core/domain"

// ArtifactStore reads build inputs and writes generated files.
//
//go:generate mockgen -source=artifact.go -destination=mocks/mock_artifact.go -package=mocks
type ArtifactStore interface {
	// Read returns the content of the file at path.
	Read(path string) ([]byte, error)

	// Exists reports whether a regular file exists at path.
	Exists(path string) bool

	// WriteAll writes every artifact below dir. Either all artifacts are
	// replaced or, on error, none of them is.
	WriteAll(dir string, artifacts []domain.Artifact) error

	// Remove deletes the given paths below dir. Missing files are ignored.
	Remove(dir string, paths []string) error
}
