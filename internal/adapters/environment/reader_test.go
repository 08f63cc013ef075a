package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/environment"
	"go.trai.ch/stamp/internal/core/domain"
)

func TestReader_Read(t *testing.T) {
	tests := []struct {
		name         string
		environ      map[string]string
		wantOverride string
		wantID       domain.EnvValue
		wantFound    bool
	}{
		{
			name:    "Empty",
			environ: map[string]string{},
		},
		{
			name:         "OverrideVerbatim",
			environ:      map[string]string{"APP_VERSION": " 2.0.0-rc1 "},
			wantOverride: " 2.0.0-rc1 ",
		},
		{
			name:      "BuildIDVerbatim",
			environ:   map[string]string{"BUILD_ID": "build-000123456789", "GITHUB_SHA": "0123456789abcdef"},
			wantID:    domain.EnvValue{Name: "BUILD_ID", Value: "build-000123456789"},
			wantFound: true,
		},
		{
			name:      "GitHubShortened",
			environ:   map[string]string{"GITHUB_SHA": "abc1234def5678", "CI_COMMIT_SHA": "ffffffffff"},
			wantID:    domain.EnvValue{Name: "GITHUB_SHA", Value: "abc1234"},
			wantFound: true,
		},
		{
			name:      "Vercel",
			environ:   map[string]string{"VERCEL_GIT_COMMIT_SHA": "9f8e7d6c5b4a", "COMMIT_REF": "1111111111"},
			wantID:    domain.EnvValue{Name: "VERCEL_GIT_COMMIT_SHA", Value: "9f8e7d6"},
			wantFound: true,
		},
		{
			name:      "Cloudflare",
			environ:   map[string]string{"CF_PAGES_COMMIT_SHA": "cafebabe00"},
			wantID:    domain.EnvValue{Name: "CF_PAGES_COMMIT_SHA", Value: "cafebab"},
			wantFound: true,
		},
		{
			name:      "Netlify",
			environ:   map[string]string{"COMMIT_REF": "deadbeef11", "CI_COMMIT_SHA": "0000000000"},
			wantID:    domain.EnvValue{Name: "COMMIT_REF", Value: "deadbee"},
			wantFound: true,
		},
		{
			name:      "GitLabShortValueKept",
			environ:   map[string]string{"CI_COMMIT_SHA": "abc"},
			wantID:    domain.EnvValue{Name: "CI_COMMIT_SHA", Value: "abc"},
			wantFound: true,
		},
		{
			name:    "BlankValuesIgnored",
			environ: map[string]string{"BUILD_ID": "   ", "GITHUB_SHA": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := environment.NewReaderFromMap(tt.environ).Read()
			require.NoError(t, err)

			assert.Equal(t, tt.wantOverride, got.Override)
			id, found := got.FirstBuildID()
			assert.Equal(t, tt.wantFound, found)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestReader_PrecedenceOrder(t *testing.T) {
	got, err := environment.NewReaderFromMap(nil).Read()
	require.NoError(t, err)

	names := make([]string, 0, len(got.BuildIDs))
	for _, v := range got.BuildIDs {
		names = append(names, v.Name)
	}
	assert.Equal(t, []string{
		"BUILD_ID",
		"GITHUB_SHA",
		"VERCEL_GIT_COMMIT_SHA",
		"CF_PAGES_COMMIT_SHA",
		"COMMIT_REF",
		"CI_COMMIT_SHA",
	}, names)
}

func TestReader_ProcessEnvironment(t *testing.T) {
	t.Setenv("APP_VERSION", "")
	t.Setenv("BUILD_ID", "from-process")

	got, err := environment.NewReader().Read()
	require.NoError(t, err)

	id, found := got.FirstBuildID()
	require.True(t, found)
	assert.Equal(t, "from-process", id.Value)
}
