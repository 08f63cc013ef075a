package httpserver

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"go.trai.ch/stamp/internal/core/domain"
)

// NotFoundDocument is served with status 404 for paths missing from the build.
const NotFoundDocument = "404.html"

// Preview serves a static build the way a static host would.
type Preview struct {
	root         fs.FS
	workerFile   string
	metadataFile string
	files        http.Handler
}

// NewPreview creates a preview of the build directory of project.
func NewPreview(project *domain.Project) *Preview {
	return NewPreviewFS(os.DirFS(project.BuildDir), project.WorkerFile, project.MetadataFile)
}

// NewPreviewFS creates a preview of root. Empty file names select the defaults.
func NewPreviewFS(root fs.FS, workerFile, metadataFile string) *Preview {
	if workerFile == "" {
		workerFile = domain.WorkerFileName
	}
	if metadataFile == "" {
		metadataFile = domain.MetadataFileName
	}
	return &Preview{
		root:         root,
		workerFile:   workerFile,
		metadataFile: metadataFile,
		files:        http.FileServerFS(root),
	}
}

// ServeHTTP implements http.Handler.
func (p *Preview) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")

	switch name {
	case p.workerFile:
		w.Header().Set("Service-Worker-Allowed", "/")
		w.Header().Set("Cache-Control", "no-cache")
	case p.metadataFile:
		w.Header().Set("Cache-Control", "no-cache")
	}

	if !p.exists(name) {
		p.notFound(w)
		return
	}

	p.files.ServeHTTP(w, r)
}

func (p *Preview) exists(name string) bool {
	if name == "" {
		name = "."
	}
	info, err := fs.Stat(p.root, name)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = fs.Stat(p.root, path.Join(name, domain.EntryDocument))
	return err == nil
}

func (p *Preview) notFound(w http.ResponseWriter) {
	body, err := fs.ReadFile(p.root, NotFoundDocument)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		http.Error(w, "404 page not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write(body)
}
