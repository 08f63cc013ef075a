// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/stamp/internal/core/domain"

// EnvironmentReader reads version resolution inputs from the build environment.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentReader interface {
	// Read returns the override and the build identifier candidates in
	// precedence order. Unset variables are reported with empty values.
	Read() (domain.BuildEnvironment, error)
}
