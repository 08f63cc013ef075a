// Package manifest reads and edits the project's package.json.
package manifest

import (
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/zerr"
)

// PackageJSON implements ports.Manifest.
type PackageJSON struct{}

// New creates a PackageJSON manifest adapter.
func New() *PackageJSON {
	return &PackageJSON{}
}

// BaseVersion returns the trimmed top-level "version" string.
func (m *PackageJSON) BaseVersion(path string) (string, error) {
	data, err := read(path)
	if err != nil {
		return "", err
	}

	v := gjson.GetBytes(data, "version")
	if v.Type != gjson.String || strings.TrimSpace(v.Str) == "" {
		err := zerr.Wrap(domain.ErrBaseVersionMissing, "failed to read base version")
		return "", zerr.With(err, "path", path)
	}

	return strings.TrimSpace(v.Str), nil
}

// EnsureScripts adds every script in scripts that the manifest does not
// define yet. The document is edited in place, so unrelated content keeps its
// formatting. Added names are returned in sorted order.
func (m *PackageJSON) EnsureScripts(path string, scripts map[string]string) ([]string, error) {
	data, err := read(path)
	if err != nil {
		return nil, err
	}

	var added []string
	for _, name := range slices.Sorted(maps.Keys(scripts)) {
		key := "scripts." + escapeKey(name)
		if gjson.GetBytes(data, key).Exists() {
			continue
		}
		data, err = sjson.SetBytes(data, key, scripts[name])
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to add package script"), "script", name)
		}
		added = append(added, name)
	}

	if len(added) == 0 {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	if err := os.WriteFile(path, data, info.Mode().Perm()); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to update project manifest"), "path", path)
	}

	return added, nil
}

func read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from project configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}
	if !gjson.ValidBytes(data) {
		err := zerr.Wrap(domain.ErrManifestReadFailed, "manifest is not valid JSON")
		return nil, zerr.With(err, "path", path)
	}
	return data, nil
}

func escapeKey(name string) string {
	r := strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`)
	return r.Replace(name)
}
