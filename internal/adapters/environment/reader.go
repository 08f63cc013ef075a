// Package environment reads version resolution inputs from CI and hosting
// provider environment variables.
package environment

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/zerr"
)

// ShortSHALength is the length commit hashes are shortened to.
const ShortSHALength = 7

// Variables are the recognized environment variables. Build identifier
// fields are listed in precedence order.
type Variables struct {
	Override      string `env:"APP_VERSION"`
	BuildID       string `env:"BUILD_ID"`
	GitHubSHA     string `env:"GITHUB_SHA"`
	VercelSHA     string `env:"VERCEL_GIT_COMMIT_SHA"`
	CloudflareSHA string `env:"CF_PAGES_COMMIT_SHA"`
	NetlifyRef    string `env:"COMMIT_REF"`
	GitLabSHA     string `env:"CI_COMMIT_SHA"`
}

// Reader implements ports.EnvironmentReader.
type Reader struct {
	environ map[string]string
}

// NewReader creates a Reader over the process environment.
func NewReader() *Reader {
	return &Reader{}
}

// NewReaderFromMap creates a Reader over environ instead of the process
// environment.
func NewReaderFromMap(environ map[string]string) *Reader {
	if environ == nil {
		environ = map[string]string{}
	}
	return &Reader{environ: environ}
}

// Read parses the environment. Commit hashes are shortened; the override and
// the generic build identifier are kept verbatim.
func (r *Reader) Read() (domain.BuildEnvironment, error) {
	vars, err := env.ParseAsWithOptions[Variables](env.Options{Environment: r.environ})
	if err != nil {
		return domain.BuildEnvironment{}, zerr.Wrap(err, domain.ErrEnvironmentParseFailed.Error())
	}

	return domain.BuildEnvironment{
		Override: vars.Override,
		BuildIDs: []domain.EnvValue{
			{Name: "BUILD_ID", Value: strings.TrimSpace(vars.BuildID)},
			{Name: "GITHUB_SHA", Value: shortSHA(vars.GitHubSHA)},
			{Name: "VERCEL_GIT_COMMIT_SHA", Value: shortSHA(vars.VercelSHA)},
			{Name: "CF_PAGES_COMMIT_SHA", Value: shortSHA(vars.CloudflareSHA)},
			{Name: "COMMIT_REF", Value: shortSHA(vars.NetlifyRef)},
			{Name: "CI_COMMIT_SHA", Value: shortSHA(vars.GitLabSHA)},
		},
	}, nil
}

func shortSHA(sha string) string {
	sha = strings.TrimSpace(sha)
	if len(sha) > ShortSHALength {
		return sha[:ShortSHALength]
	}
	return sha
}
