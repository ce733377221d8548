package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = ".anchorscan.yaml"

type Config struct {
	CatalogDir        string `yaml:"catalog_dir"`
	Format            string `yaml:"format"`
	SeverityThreshold string `yaml:"severity_threshold"`
	FailOn            string `yaml:"fail_on"`
	Baseline          string `yaml:"baseline"`

	Logging struct {
		Debug bool `yaml:"debug"`
	} `yaml:"logging"`
}

func Default() Config {
	return Config{
		CatalogDir:        "vulnerabilities",
		Format:            "markdown",
		SeverityThreshold: "low",
	}
}

// Load searches upwards from startDir for .anchorscan.yaml and merges it
// over the defaults. Parse errors are ignored; a config file is optional.
func Load(startDir string) (Config, string, error) {
	cfg := Default()
	dir := startDir
	for {
		candidate := filepath.Join(dir, fileName)
		if _, err := os.Stat(candidate); err == nil {
			b, err := os.ReadFile(candidate)
			if err != nil {
				return cfg, candidate, err
			}
			_ = yaml.Unmarshal(b, &cfg)
			applyEnv(&cfg)
			return cfg, candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached root
			break
		}
		dir = parent
	}
	applyEnv(&cfg)
	return cfg, "", nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("ANCHORSCAN_CATALOG_DIR"); v != "" {
		cfg.CatalogDir = v
	}
	if v := os.Getenv("ANCHORSCAN_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("ANCHORSCAN_FAIL_ON"); v != "" {
		cfg.FailOn = v
	}
}
