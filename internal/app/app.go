// Package app implements the application layer for stamp.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.trai.ch/stamp/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/stamp/internal/assets"
	"go.trai.ch/stamp/internal/core/domain"
	"go.trai.ch/stamp/internal/core/ports"
	"go.trai.ch/stamp/internal/engine/fallback"
	"go.trai.ch/stamp/internal/engine/transform"
	"go.trai.ch/stamp/internal/engine/version"
	"go.trai.ch/zerr"
)

// TracerName is the instrumentation scope of pipeline spans.
const TracerName = "stamp"

// PackageScripts are added to the project manifest by Init.
var PackageScripts = map[string]string{
	"prebuild":  "stamp generate",
	"postbuild": "stamp fallback",
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	resolver     *version.Resolver
	materializer *fallback.Materializer
	artifacts    ports.ArtifactStore
	manifest     ports.Manifest
	watcher      ports.Watcher
	logger       ports.Logger
	tracer       ports.Tracer
}

// New creates a new App instance. Pipeline steps are reported to reporter.
func New(
	loader ports.ConfigLoader,
	resolver *version.Resolver,
	materializer *fallback.Materializer,
	artifacts ports.ArtifactStore,
	manifest ports.Manifest,
	fileWatcher ports.Watcher,
	log ports.Logger,
	reporter ports.StepReporter,
) *App {
	return &App{
		configLoader: loader,
		resolver:     resolver,
		materializer: materializer,
		artifacts:    artifacts,
		manifest:     manifest,
		watcher:      fileWatcher,
		logger:       log,
		tracer:       telemetry.NewOTelTracerFromProvider(telemetry.NewProvider(reporter), TracerName),
	}
}

// WithTracer replaces the tracer used for pipeline spans.
func (a *App) WithTracer(tracer ports.Tracer) *App {
	a.tracer = tracer
	return a
}

func (a *App) project(configPath string) (*domain.Project, error) {
	project, err := a.configLoader.Load(configPath)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return project, nil
}

// Resolve returns the stamp of the current build without writing anything.
func (a *App) Resolve(ctx context.Context, configPath string) (domain.Stamp, error) {
	project, err := a.project(configPath)
	if err != nil {
		return domain.Stamp{}, err
	}
	return a.resolve(ctx, project)
}

func (a *App) resolve(ctx context.Context, project *domain.Project) (domain.Stamp, error) {
	_, span := a.tracer.Start(ctx, "resolve")
	defer span.End()

	stamp, err := a.resolver.Resolve(project.ManifestPath)
	if err != nil {
		span.RecordError(err)
		return domain.Stamp{}, err
	}

	span.SetAttribute("stamp.version", stamp.Version)
	span.SetAttribute("stamp.source", string(stamp.Source))
	return stamp, nil
}

// GenerateOptions configures Generate.
type GenerateOptions struct {
	ConfigPath string
	// Watch regenerates the worker whenever the template changes until the
	// context is canceled. The version is resolved once per session.
	Watch bool
}

// Generate resolves the version and writes the worker script and its
// metadata document as one set.
func (a *App) Generate(ctx context.Context, opts GenerateOptions) error {
	project, err := a.project(opts.ConfigPath)
	if err != nil {
		return err
	}

	stamp, err := a.resolve(ctx, project)
	if err != nil {
		return err
	}

	if err := a.generate(ctx, project, stamp); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}
	return a.watch(ctx, project, stamp)
}

func (a *App) generate(ctx context.Context, project *domain.Project, stamp domain.Stamp) (err error) {
	_, span := a.tracer.Start(ctx, "generate")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	artifacts, err := a.renderArtifacts(project, stamp)
	if err != nil {
		return err
	}

	if err := a.artifacts.WriteAll(project.PublicDir, artifacts); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("stamped %s with version %s", project.WorkerPath(), stamp.Version))
	return nil
}

func (a *App) renderArtifacts(project *domain.Project, stamp domain.Stamp) ([]domain.Artifact, error) {
	template, err := a.artifacts.Read(project.TemplatePath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrTemplateReadFailed.Error()), "path", project.TemplatePath)
	}

	script, err := transform.Generate(template, stamp.Version)
	if err != nil {
		return nil, zerr.With(err, "path", project.TemplatePath)
	}

	metadata, err := json.MarshalIndent(stamp.Metadata(), "", "  ")
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrArtifactWriteFailed.Error())
	}

	return []domain.Artifact{
		{Path: filepath.Base(project.WorkerPath()), Content: script},
		{Path: filepath.Base(project.MetadataPath()), Content: append(metadata, '\n')},
	}, nil
}

func (a *App) watch(ctx context.Context, project *domain.Project, stamp domain.Stamp) error {
	defer func() {
		_ = a.watcher.Close()
	}()

	if err := a.watcher.Watch(ctx, project.TemplatePath); err != nil {
		return err
	}
	a.logger.Info(fmt.Sprintf("watching %s", project.TemplatePath))

	debouncer := watcher.NewDebouncer(watcher.DefaultQuietPeriod, func([]string) {
		if err := a.generate(ctx, project, stamp); err != nil {
			a.logger.Error(err)
		}
	})

	for event := range a.watcher.Events() {
		if event.Operation == ports.OpRemove {
			continue
		}
		debouncer.Add(event.Path)
	}
	debouncer.Flush()

	return nil
}

// Fallback copies the built entry document to every fallback target.
func (a *App) Fallback(ctx context.Context, configPath string) error {
	project, err := a.project(configPath)
	if err != nil {
		return err
	}
	return a.fallback(ctx, project)
}

func (a *App) fallback(ctx context.Context, project *domain.Project) error {
	_, span := a.tracer.Start(ctx, "fallback")
	defer span.End()

	artifacts, err := a.materializer.Materialize(project.BuildDir, domain.FallbackTargets)
	if err != nil {
		span.RecordError(err)
		return err
	}

	span.SetAttribute("fallback.count", len(artifacts))
	a.logger.Info(fmt.Sprintf("materialized %d fallback documents in %s", len(artifacts), project.BuildDir))
	return nil
}

// Build runs generate and fallback in sequence.
func (a *App) Build(ctx context.Context, configPath string) (err error) {
	project, err := a.project(configPath)
	if err != nil {
		return err
	}

	ctx, span := a.tracer.Start(ctx, "build")
	defer func() {
		span.RecordError(err)
		span.End()
	}()

	stamp, err := a.resolve(ctx, project)
	if err != nil {
		return err
	}
	if err := a.generate(ctx, project, stamp); err != nil {
		return err
	}
	return a.fallback(ctx, project)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	ConfigPath string
	Artifacts  bool
	Cache      bool
}

// Clean removes generated artifacts and the proxy cache.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	project, err := a.project(opts.ConfigPath)
	if err != nil {
		return err
	}

	var errs error

	if opts.Artifacts {
		paths := []string{filepath.Base(project.WorkerPath()), filepath.Base(project.MetadataPath())}
		if err := a.artifacts.Remove(project.PublicDir, paths); err != nil {
			errs = errors.Join(errs, err)
		} else {
			a.logger.Info(fmt.Sprintf("removed generated artifacts from %s", project.PublicDir))
		}
	}

	if opts.Cache {
		if err := os.RemoveAll(project.CacheDir); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove cache"), "path", project.CacheDir))
		} else {
			a.logger.Info(fmt.Sprintf("removed %s", project.CacheDir))
		}
	}

	return errs
}

// Init writes the default worker template and stamp.yaml into dir and adds
// the package scripts to the manifest. Existing files are never overwritten.
func (a *App) Init(_ context.Context, dir string) error {
	project := domain.DefaultProject(dir)

	candidates := []domain.Artifact{
		{Path: domain.TemplatePath, Content: assets.WorkerTemplate},
		{Path: domain.ConfigFileName, Content: assets.DefaultConfig},
	}

	var pending []domain.Artifact
	for _, c := range candidates {
		if a.artifacts.Exists(filepath.Join(dir, c.Path)) {
			a.logger.Info(fmt.Sprintf("keeping existing %s", c.Path))
			continue
		}
		pending = append(pending, c)
	}

	if len(pending) > 0 {
		if err := a.artifacts.WriteAll(dir, pending); err != nil {
			return err
		}
	}

	if !a.artifacts.Exists(project.ManifestPath) {
		a.logger.Warn(fmt.Sprintf("%s not found, add the stamp scripts manually", project.ManifestPath))
		return nil
	}

	added, err := a.manifest.EnsureScripts(project.ManifestPath, PackageScripts)
	if err != nil {
		return err
	}
	for _, name := range added {
		a.logger.Info(fmt.Sprintf("added %q script to %s", name, project.ManifestPath))
	}
	return nil
}
