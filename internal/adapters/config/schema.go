package config

// Stampfile represents the structure of the stamp.yaml configuration file.
// Empty fields keep their defaults.
type Stampfile struct {
	Version      string `yaml:"version"`
	Manifest     string `yaml:"manifest"`
	Template     string `yaml:"template"`
	PublicDir    string `yaml:"publicDir"`
	BuildDir     string `yaml:"buildDir"`
	CacheDir     string `yaml:"cacheDir"`
	WorkerFile   string `yaml:"workerFile"`
	MetadataFile string `yaml:"metadataFile"`
}
