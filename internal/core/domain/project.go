package domain

import "path/filepath"

// Project is the resolved configuration of a site using stamp.
// All paths are absolute or relative to the process working directory.
type Project struct {
	Root         string
	ManifestPath string
	TemplatePath string
	PublicDir    string
	BuildDir     string
	CacheDir     string
	WorkerFile   string
	MetadataFile string
}

// DefaultProject returns the conventional layout rooted at root.
func DefaultProject(root string) *Project {
	return &Project{
		Root:         root,
		ManifestPath: filepath.Join(root, ManifestFileName),
		TemplatePath: filepath.Join(root, TemplatePath),
		PublicDir:    filepath.Join(root, PublicDirName),
		BuildDir:     filepath.Join(root, BuildDirName),
		CacheDir:     filepath.Join(root, DefaultCachePath()),
		WorkerFile:   WorkerFileName,
		MetadataFile: MetadataFileName,
	}
}

// WorkerPath returns the location of the generated worker script.
func (p *Project) WorkerPath() string {
	return filepath.Join(p.PublicDir, p.workerFile())
}

// MetadataPath returns the location of the generated version metadata.
func (p *Project) MetadataPath() string {
	return filepath.Join(p.PublicDir, p.metadataFile())
}

// EntryPath returns the location of the built entry document.
func (p *Project) EntryPath() string {
	return filepath.Join(p.BuildDir, EntryDocument)
}

func (p *Project) workerFile() string {
	if p.WorkerFile == "" {
		return WorkerFileName
	}
	return p.WorkerFile
}

func (p *Project) metadataFile() string {
	if p.MetadataFile == "" {
		return MetadataFileName
	}
	return p.MetadataFile
}
