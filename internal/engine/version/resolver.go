// Package version resolves the cache version stamped into a build.
package version

import (
	"strings"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolver derives the Version of a build from the project manifest and the
// build environment.
type Resolver struct {
	manifest ports.Manifest
	env      ports.EnvironmentReader
	clock    clockwork.Clock
}

// NewResolver creates a Resolver. A nil clock uses the wall clock.
func NewResolver(manifest ports.Manifest, env ports.EnvironmentReader, clock clockwork.Clock) *Resolver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Resolver{
		manifest: manifest,
		env:      env,
		clock:    clock,
	}
}

// Resolve returns the stamp for the current build.
//
// Precedence: an explicit override wins; otherwise the base version is joined
// with the first CI build identifier present; otherwise with a normalized
// timestamp. The base version must be readable in every case.
func (r *Resolver) Resolve(manifestPath string) (domain.Stamp, error) {
	base, err := r.manifest.BaseVersion(manifestPath)
	if err != nil {
		return domain.Stamp{}, err
	}

	env, err := r.env.Read()
	if err != nil {
		return domain.Stamp{}, err
	}

	now := r.clock.Now().UTC()
	stamp := domain.Stamp{
		BaseVersion: base,
		BuildTime:   now,
	}

	if id, ok := env.FirstBuildID(); ok {
		stamp.BuildID = id.Value
		stamp.Source = domain.SourceBuildID
	} else {
		stamp.BuildID = domain.TimestampBuildID(now)
		stamp.Source = domain.SourceTimestamp
	}
	stamp.Version = domain.ComposeVersion(base, stamp.BuildID)

	if strings.TrimSpace(env.Override) != "" {
		stamp.Version = env.Override
		stamp.Source = domain.SourceOverride
	}

	if !domain.ValidateVersion(stamp.Version) {
		err := zerr.Wrap(domain.ErrInvalidVersion, "cannot use resolved version")
		return domain.Stamp{}, zerr.With(err, "version", stamp.Version)
	}

	return stamp, nil
}
