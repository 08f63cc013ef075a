package domain

import "path/filepath"

const (
	// StampDirName is the name of the internal working directory.
	StampDirName = ".stamp"

	// CacheDirName is the name of the proxy cache directory.
	CacheDirName = "cache"

	// ConfigFileName is the name of the optional project configuration file.
	ConfigFileName = "stamp.yaml"

	// ConfigVersion is the only supported stamp.yaml schema version.
	ConfigVersion = "1"

	// ManifestFileName is the project manifest carrying the base version.
	ManifestFileName = "package.json"

	// TemplatePath is the default location of the worker template.
	TemplatePath = "src/sw.template.ts"

	// PublicDirName is the default directory copied verbatim into the build output.
	PublicDirName = "public"

	// BuildDirName is the default static build output directory.
	BuildDirName = "build"

	// WorkerFileName is the name of the generated worker script.
	WorkerFileName = "sw.js"

	// MetadataFileName is the name of the generated version metadata document.
	MetadataFileName = "version.json"

	// EntryDocument is the SPA entry document produced by the build.
	EntryDocument = "index.html"

	// WebManifestPath is the application manifest pre-warmed on install.
	WebManifestPath = "/manifest.json"

	// PlaceholderToken is replaced with the resolved version in the worker template.
	PlaceholderToken = "__STAMP_VERSION__"

	// RegistrationMarker starts the trailing registration segment of the worker template.
	RegistrationMarker = "// @stamp:registration"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// FallbackTargets are the paths, relative to the build directory, that receive
// a copy of the entry document so deep links resolve on static hosts.
var FallbackTargets = []string{
	"404.html",
	"about/index.html",
	"projects/index.html",
	"contact/index.html",
}

// DefaultCachePath returns the default path of the proxy cache stores.
// It joins .stamp and cache.
func DefaultCachePath() string {
	return filepath.Join(StampDirName, CacheDirName)
}
