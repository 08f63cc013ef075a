// Package artifact writes generated files to disk as one all-or-nothing set.
package artifact

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	stagePattern = ".stamp-stage-*"
	backupSuffix = ".stamp-backup"
)

// Store implements ports.ArtifactStore on the local filesystem.
type Store struct {
	logger ports.Logger
}

// NewStore creates a Store.
func NewStore(logger ports.Logger) *Store {
	return &Store{logger: logger}
}

// Read returns the content of the file at path.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from project configuration
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return data, nil
}

// Exists reports whether a regular file exists at path.
func (s *Store) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

type placement struct {
	target string
	staged string
	backup string
	placed bool
}

// WriteAll stages every artifact next to its target, then moves the staged
// files into place. A failure in either phase restores the previous files.
func (s *Store) WriteAll(dir string, artifacts []domain.Artifact) error {
	placements := make([]*placement, 0, len(artifacts))
	defer func() {
		for _, p := range placements {
			if p.staged != "" {
				_ = os.Remove(p.staged)
			}
		}
	}()

	for _, a := range artifacts {
		if !filepath.IsLocal(a.Path) {
			err := zerr.Wrap(domain.ErrArtifactWriteFailed, "artifact path escapes output directory")
			return zerr.With(err, "path", a.Path)
		}

		target := filepath.Join(dir, a.Path)
		staged, err := stage(target, a.Content)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", target)
		}
		placements = append(placements, &placement{target: target, staged: staged})
	}

	for _, p := range placements {
		if err := place(p); err != nil {
			rollback(placements)
			return zerr.With(zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error()), "path", p.target)
		}
	}

	for i, p := range placements {
		if p.backup != "" {
			_ = os.Remove(p.backup)
		}
		s.logger.Info(fmt.Sprintf("wrote %s (%s)", p.target, artifacts[i].Digest()))
	}

	return nil
}

func stage(target string, content []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(target), domain.DirPerm); err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(target), stagePattern)
	if err != nil {
		return "", err
	}

	_, err = f.Write(content)
	if err == nil {
		err = f.Chmod(domain.FilePerm)
	}
	if err == nil {
		err = f.Sync()
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}

	return f.Name(), nil
}

func place(p *placement) error {
	if _, err := os.Lstat(p.target); err == nil {
		p.backup = p.target + backupSuffix
		if err := os.Rename(p.target, p.backup); err != nil {
			p.backup = ""
			return err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if err := os.Rename(p.staged, p.target); err != nil {
		return err
	}
	p.staged = ""
	p.placed = true
	return nil
}

func rollback(placements []*placement) {
	for i := len(placements) - 1; i >= 0; i-- {
		p := placements[i]
		if p.placed {
			_ = os.Remove(p.target)
		}
		if p.backup != "" {
			_ = os.Rename(p.backup, p.target)
		}
	}
}

// Remove deletes the given paths below dir. Missing files are ignored.
func (s *Store) Remove(dir string, paths []string) error {
	var errs error
	for _, rel := range paths {
		path := filepath.Join(dir, rel)
		err := os.Remove(path)
		switch {
		case err == nil:
			s.logger.Info(fmt.Sprintf("removed %s", path))
		case errors.Is(err, fs.ErrNotExist):
		default:
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove file"), "path", path))
		}
	}
	return errs
}
