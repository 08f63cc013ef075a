// Package config provides the configuration loader for stamp.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path. A missing file yields the
// default layout rooted at the file's directory. Relative paths in the file
// are resolved against that directory.
func (l *Loader) Load(path string) (*domain.Project, error) {
	root := filepath.Dir(path)
	project := domain.DefaultProject(root)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return project, nil
	}

	var stampfile Stampfile
	if err := readAndUnmarshalYAML(path, &stampfile); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if stampfile.Version != domain.ConfigVersion {
		err := zerr.Wrap(domain.ErrUnsupportedConfigVersion, "failed to load configuration")
		err = zerr.With(err, "version", stampfile.Version)
		return nil, zerr.With(err, "supported", domain.ConfigVersion)
	}

	overrideDir(&project.ManifestPath, root, stampfile.Manifest)
	overrideDir(&project.TemplatePath, root, stampfile.Template)
	overrideDir(&project.PublicDir, root, stampfile.PublicDir)
	overrideDir(&project.BuildDir, root, stampfile.BuildDir)
	overrideDir(&project.CacheDir, root, stampfile.CacheDir)

	for _, f := range []struct{ field, name string }{
		{"workerFile", stampfile.WorkerFile},
		{"metadataFile", stampfile.MetadataFile},
	} {
		field, name := f.field, f.name
		if name != "" && (name != filepath.Base(name) || name == "." || name == "..") {
			err := zerr.Wrap(domain.ErrInvalidConfigValue, "file names must not contain directories")
			err = zerr.With(err, "field", field)
			return nil, zerr.With(err, "value", name)
		}
	}
	if stampfile.WorkerFile != "" {
		project.WorkerFile = stampfile.WorkerFile
	}
	if stampfile.MetadataFile != "" {
		project.MetadataFile = stampfile.MetadataFile
	}

	if project.WorkerFile == project.MetadataFile {
		err := zerr.Wrap(domain.ErrInvalidConfigValue, "worker and metadata files must differ")
		return nil, zerr.With(err, "value", project.WorkerFile)
	}

	l.Logger.Info(fmt.Sprintf("loaded %s", path))
	return project, nil
}

func overrideDir(target *string, root, value string) {
	if value == "" {
		return
	}
	if filepath.IsAbs(value) {
		*target = filepath.Clean(value)
		return
	}
	*target = filepath.Join(root, value)
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
