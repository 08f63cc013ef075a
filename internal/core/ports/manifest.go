package ports

// Manifest reads and updates the project manifest (package.json).
//
//go:generate mockgen -source=manifest.go -destination=mocks/mock_manifest.go -package=mocks
type Manifest interface {
	// BaseVersion returns the non-empty version declared in the manifest at path.
	BaseVersion(path string) (string, error)

	// EnsureScripts adds the given npm scripts when they are not defined yet.
	// It returns the names of the scripts that were added.
	EnsureScripts(path string, scripts map[string]string) ([]string, error)
}
