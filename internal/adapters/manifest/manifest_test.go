package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.trai.ch/stamp/internal/adapters/manifest"
	"go.trai.ch/stamp/internal/core/domain"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), domain.ManifestFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBaseVersion(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		want     string
		sentinel error
	}{
		{name: "Plain", content: `{"name":"site","version":"1.4.0"}`, want: "1.4.0"},
		{name: "Trimmed", content: `{"version":" 2.0.0 "}`, want: "2.0.0"},
		{name: "NestedIgnored", content: `{"engines":{"version":"9"}}`, sentinel: domain.ErrBaseVersionMissing},
		{name: "Blank", content: `{"version":"  "}`, sentinel: domain.ErrBaseVersionMissing},
		{name: "NotString", content: `{"version":1}`, sentinel: domain.ErrBaseVersionMissing},
		{name: "InvalidJSON", content: `{"version":`, sentinel: domain.ErrManifestReadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := manifest.New().BaseVersion(writeManifest(t, tt.content))
			if tt.sentinel != nil {
				require.ErrorIs(t, err, tt.sentinel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBaseVersion_MissingFile(t *testing.T) {
	_, err := manifest.New().BaseVersion(filepath.Join(t.TempDir(), "package.json"))
	assert.ErrorContains(t, err, domain.ErrManifestReadFailed.Error())
}

func TestEnsureScripts(t *testing.T) {
	path := writeManifest(t, `{
  "name": "site",
  "version": "1.0.0",
  "scripts": {
    "build": "react-scripts build",
    "postbuild": "node scripts/copy.js"
  }
}
`)

	added, err := manifest.New().EnsureScripts(path, map[string]string{
		"prebuild":  "stamp generate",
		"postbuild": "stamp fallback",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"prebuild"}, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, gjson.ValidBytes(data))
	assert.Equal(t, "stamp generate", gjson.GetBytes(data, "scripts.prebuild").String())
	assert.Equal(t, "node scripts/copy.js", gjson.GetBytes(data, "scripts.postbuild").String())
	assert.Equal(t, "react-scripts build", gjson.GetBytes(data, "scripts.build").String())
	assert.Equal(t, "1.0.0", gjson.GetBytes(data, "version").String())
}

func TestEnsureScripts_CreatesScriptsObject(t *testing.T) {
	path := writeManifest(t, `{"version":"1.0.0"}`)

	added, err := manifest.New().EnsureScripts(path, map[string]string{
		"postbuild": "stamp fallback",
		"prebuild":  "stamp generate",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"postbuild", "prebuild"}, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "stamp fallback", gjson.GetBytes(data, "scripts.postbuild").String())
	assert.Equal(t, "stamp generate", gjson.GetBytes(data, "scripts.prebuild").String())
}

func TestEnsureScripts_NothingToAddLeavesFileUntouched(t *testing.T) {
	content := `{"scripts":{"prebuild":"custom"}}`
	path := writeManifest(t, content)

	added, err := manifest.New().EnsureScripts(path, map[string]string{"prebuild": "stamp generate"})
	require.NoError(t, err)
	assert.Empty(t, added)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}
