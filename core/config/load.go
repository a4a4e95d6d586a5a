package config

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration from the directory. A missing config file
// yields the built-in defaults so the shell works without prior setup.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(path) == ConfigurationName {
		path = filepath.Dir(path)
	}

	contents, err := afero.ReadFile(fsys, filepath.Join(path, ConfigurationName))
	switch {
	case os.IsNotExist(err):
		return Default(), nil
	case err != nil:
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, fmt.Errorf("couldn't parse %s: %w", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", ConfigurationName, err)
	}
	return &out, nil
}

// Initialize writes the default configuration into the directory. It
// refuses to clobber an existing config file.
func Initialize(fsys afero.Fs, path string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(path, ConfigurationName)
	if _, err := fsys.Stat(configPath); err == nil {
		logger.Printf("%s already exists, leaving it as-is", configPath)
		return Load(fsys, path)
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	logger.Printf("writing %s", configPath)
	if err := afero.WriteFile(fsys, configPath, defaultConfigData, fs.FileMode(0644)); err != nil {
		return nil, err
	}

	return Load(fsys, path)
}
