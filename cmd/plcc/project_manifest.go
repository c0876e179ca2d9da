package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const noPlcTomlMessage = "no plc.toml found\nplease specify the sources explicitly, e.g.:\n  plcc export path/to/plant.st"

type projectManifest struct {
	Path   string
	Root   string
	Config projectConfig
}

type projectConfig struct {
	Package packageConfig `toml:"package"`
	Export  exportConfig  `toml:"export"`
}

type packageConfig struct {
	Name string `toml:"name"`
}

type exportConfig struct {
	Sources []string `toml:"sources"`
	Output  string   `toml:"output"`
	Omron   *bool    `toml:"omron"`
}

func findPlcToml(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "plc.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadProjectManifest(startDir string) (*projectManifest, bool, error) {
	manifestPath, ok, err := findPlcToml(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadProjectConfig(manifestPath)
	if err != nil {
		return nil, true, err
	}
	return &projectManifest{
		Path:   manifestPath,
		Root:   filepath.Dir(manifestPath),
		Config: cfg,
	}, true, nil
}

func loadProjectConfig(path string) (projectConfig, error) {
	var cfg projectConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return projectConfig{}, fmt.Errorf("%s: missing [package]", path)
	}
	if !meta.IsDefined("package", "name") || strings.TrimSpace(cfg.Package.Name) == "" {
		return projectConfig{}, fmt.Errorf("%s: missing [package].name", path)
	}
	if !meta.IsDefined("export") {
		return projectConfig{}, fmt.Errorf("%s: missing [export]", path)
	}
	if !meta.IsDefined("export", "sources") || len(cfg.Export.Sources) == 0 {
		return projectConfig{}, fmt.Errorf("%s: missing [export].sources", path)
	}
	return cfg, nil
}

// resolveManifestSources expands the manifest's relative source paths against
// the manifest root and verifies each one exists.
func resolveManifestSources(manifest *projectManifest) ([]string, error) {
	if manifest == nil {
		return nil, fmt.Errorf("missing project manifest")
	}
	out := make([]string, 0, len(manifest.Config.Export.Sources))
	for _, rel := range manifest.Config.Export.Sources {
		path := filepath.Join(manifest.Root, filepath.FromSlash(strings.TrimSpace(rel)))
		info, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%s: [export].sources path does not exist: %s", manifest.Path, path)
			}
			return nil, fmt.Errorf("%s: failed to stat source: %w", manifest.Path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s: [export].sources must list .st files, got directory %s", manifest.Path, path)
		}
		out = append(out, path)
	}
	return out, nil
}
