package domain

import "go.trai.ch/zerr"

var (
	// ErrConfigReadFailed is returned when stamp.yaml exists but cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when stamp.yaml is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnsupportedConfigVersion is returned when stamp.yaml declares an unknown schema version.
	ErrUnsupportedConfigVersion = zerr.New("unsupported config version")

	// ErrInvalidConfigValue is returned when a stamp.yaml field has an unusable value.
	ErrInvalidConfigValue = zerr.New("invalid config value")

	// ErrManifestReadFailed is returned when the project manifest cannot be read.
	ErrManifestReadFailed = zerr.New("failed to read project manifest")

	// ErrBaseVersionMissing is returned when the project manifest has no usable version field.
	ErrBaseVersionMissing = zerr.New("project manifest does not declare a version")

	// ErrEnvironmentParseFailed is returned when build environment variables cannot be parsed.
	ErrEnvironmentParseFailed = zerr.New("failed to parse build environment")

	// ErrInvalidVersion is returned when a resolved version cannot be embedded in a script string literal.
	ErrInvalidVersion = zerr.New("version contains characters that cannot be embedded in the worker script")

	// ErrTemplateReadFailed is returned when the worker template cannot be read.
	ErrTemplateReadFailed = zerr.New("failed to read worker template")

	// ErrPlaceholderMissing is returned when the worker template does not contain the version placeholder.
	ErrPlaceholderMissing = zerr.New("worker template does not contain the version placeholder")

	// ErrPlaceholderAmbiguous is returned when the version placeholder occurs more than once.
	ErrPlaceholderAmbiguous = zerr.New("worker template contains the version placeholder more than once")

	// ErrUnsupportedSyntax is returned when module or type syntax survives the transform.
	ErrUnsupportedSyntax = zerr.New("worker template uses syntax that cannot be stripped")

	// ErrArtifactWriteFailed is returned when generated artifacts cannot be written.
	ErrArtifactWriteFailed = zerr.New("failed to write artifacts")

	// ErrEntryDocumentMissing is returned when the built entry document does not exist.
	ErrEntryDocumentMissing = zerr.New("entry document not found")

	// ErrFallbackCopyFailed is returned when a fallback target cannot be written.
	ErrFallbackCopyFailed = zerr.New("failed to materialize fallback document")

	// ErrCacheStoreFailed is returned when the cache storage backend fails.
	ErrCacheStoreFailed = zerr.New("cache storage failure")

	// ErrNetworkFailed is returned when a network fetch does not produce a response.
	ErrNetworkFailed = zerr.New("network request failed")

	// ErrInstallFailed is returned when a worker fails to pre-warm its static store.
	ErrInstallFailed = zerr.New("worker install failed")

	// ErrWorkerNotActive is returned when an operation requires an active worker.
	ErrWorkerNotActive = zerr.New("worker is not active")

	// ErrOriginUnreachable is returned when the proxy origin cannot report its version.
	ErrOriginUnreachable = zerr.New("origin did not report a version")
)
