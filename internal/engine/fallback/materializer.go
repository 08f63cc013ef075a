// Package fallback copies the SPA entry document to the paths a static host
// serves for deep links and unknown routes.
package fallback

import (
	"path/filepath"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

// Materializer writes byte-identical copies of the entry document.
type Materializer struct {
	store ports.ArtifactStore
}

// NewMaterializer creates a Materializer writing through store.
func NewMaterializer(store ports.ArtifactStore) *Materializer {
	return &Materializer{store: store}
}

// Materialize copies <buildDir>/index.html to every target below buildDir.
// Existing targets are overwritten and missing directories are created.
// Nothing is written when the entry document does not exist.
func (m *Materializer) Materialize(buildDir string, targets []string) ([]domain.Artifact, error) {
	entry := filepath.Join(buildDir, domain.EntryDocument)
	if !m.store.Exists(entry) {
		err := zerr.Wrap(domain.ErrEntryDocumentMissing, "cannot materialize fallbacks")
		return nil, zerr.With(err, "path", entry)
	}

	content, err := m.store.Read(entry)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrEntryDocumentMissing.Error()), "path", entry)
	}

	artifacts := make([]domain.Artifact, 0, len(targets))
	for _, target := range targets {
		artifacts = append(artifacts, domain.Artifact{
			Path:    target,
			Content: content,
		})
	}

	if err := m.store.WriteAll(buildDir, artifacts); err != nil {
		return nil, err
	}

	return artifacts, nil
}
