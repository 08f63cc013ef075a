package ports

import "go.trai.ch/stamp/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads stamp.yaml from the given file path, falling back to defaults
	// rooted at the file's directory when it does not exist.
	Load(path string) (*domain.Project, error)
}
