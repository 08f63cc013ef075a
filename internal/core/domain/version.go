package domain

import (
	"strings"
	"time"
)

// VersionSource describes which input produced a resolved version.
type VersionSource string

const (
	// SourceOverride means the version was set explicitly.
	SourceOverride VersionSource = "override"
	// SourceBuildID means the version was composed from a CI build identifier.
	SourceBuildID VersionSource = "build-id"
	// SourceTimestamp means no CI identifier was present and the build time was used.
	SourceTimestamp VersionSource = "timestamp"
)

// Stamp is the outcome of version resolution for a single build.
type Stamp struct {
	// Version is the opaque cache version embedded in the worker.
	Version string `json:"version"`
	// BaseVersion is the version declared by the project manifest.
	BaseVersion string `json:"baseVersion"`
	// BuildID is the CI identifier or normalized timestamp used for this build.
	BuildID string `json:"buildId"`
	// Source reports how Version was derived.
	Source VersionSource `json:"source"`
	// BuildTime is the instant the version was resolved.
	BuildTime time.Time `json:"buildTime"`
}

// Metadata returns the version metadata document for the stamp.
func (s Stamp) Metadata() BuildMetadata {
	return BuildMetadata{
		Version:   s.Version,
		BuildTime: s.BuildTime.UTC().Format(BuildTimeLayout),
		BuildID:   s.BuildID,
	}
}

// BuildMetadata is the JSON document published next to the worker script.
type BuildMetadata struct {
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	BuildID   string `json:"buildId"`
}

// BuildTimeLayout is the ISO-8601 layout used for build times, with millisecond precision.
const BuildTimeLayout = "2006-01-02T15:04:05.000Z07:00"

// ComposeVersion joins a base version and a build identifier.
func ComposeVersion(base, buildID string) string {
	return base + "-" + buildID
}

// TimestampBuildID renders t as a build identifier.
// Colons and dots of the ISO-8601 form are replaced so the result is safe in
// file names and store names.
func TimestampBuildID(t time.Time) string {
	return strings.NewReplacer(":", "-", ".", "-").Replace(t.UTC().Format(BuildTimeLayout))
}

// ValidateVersion reports whether v can be embedded in a quoted script string literal.
func ValidateVersion(v string) bool {
	if strings.TrimSpace(v) == "" {
		return false
	}
	return !strings.ContainsAny(v, "'\"`\\\r\n\u2028\u2029")
}
