package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/stamp/internal/adapters/artifact"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newStore(t *testing.T) *artifact.Store {
	t.Helper()
	log := mocks.NewMockLogger(gomock.NewController(t))
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return artifact.NewStore(log)
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestStore_WriteAll(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sw.js"), []byte("old"), 0o600))

	err := newStore(t).WriteAll(dir, []domain.Artifact{
		{Path: "sw.js", Content: []byte("new worker")},
		{Path: "nested/version.json", Content: []byte(`{"version":"1"}`)},
	})
	require.NoError(t, err)

	assert.Equal(t, "new worker", readFile(t, filepath.Join(dir, "sw.js")))
	assert.Equal(t, `{"version":"1"}`, readFile(t, filepath.Join(dir, "nested", "version.json")))

	info, err := os.Stat(filepath.Join(dir, "sw.js"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(domain.FilePerm), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"sw.js", "nested"}, names)
}

func TestStore_WriteAllIsAllOrNothing(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sw.js"), []byte("old"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blocker"), []byte("file"), 0o600))

	err := newStore(t).WriteAll(dir, []domain.Artifact{
		{Path: "sw.js", Content: []byte("new worker")},
		{Path: "blocker/version.json", Content: []byte("{}")},
	})
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrArtifactWriteFailed.Error())

	assert.Equal(t, "old", readFile(t, filepath.Join(dir, "sw.js")))
	matches, err := filepath.Glob(filepath.Join(dir, ".stamp-stage-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestStore_WriteAllRejectsEscapingPaths(t *testing.T) {
	dir := t.TempDir()

	err := newStore(t).WriteAll(dir, []domain.Artifact{{Path: "../outside.js", Content: []byte("x")}})
	require.ErrorIs(t, err, domain.ErrArtifactWriteFailed)

	_, statErr := os.Stat(filepath.Join(filepath.Dir(dir), "outside.js"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestStore_ReadAndExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o600))
	s := newStore(t)

	assert.True(t, s.Exists(path))
	assert.False(t, s.Exists(dir), "directories are not artifacts")
	assert.False(t, s.Exists(filepath.Join(dir, "missing.html")))

	data, err := s.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(data))

	_, err = s.Read(filepath.Join(dir, "missing.html"))
	assert.Error(t, err)
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sw.js"), []byte("x"), 0o600))

	require.NoError(t, newStore(t).Remove(dir, []string{"sw.js", "version.json"}))

	_, err := os.Stat(filepath.Join(dir, "sw.js"))
	assert.True(t, os.IsNotExist(err))
}
