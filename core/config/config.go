package config

import (
	_ "embed"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

// ConfigurationName is the file name looked up in the config directory.
const ConfigurationName = "config.yaml"

// Configuration holds the user-tunable shell settings.
type Configuration struct {
	// Prompt is written before each read.
	Prompt string `json:"prompt" validate:"required"`
	// HistoryFile is where the line editor persists history. A leading ~
	// is expanded to the home directory. Empty disables persistence.
	HistoryFile string `json:"history_file"`
	// HistoryLimit caps the number of retained history entries.
	HistoryLimit int `json:"history_limit" validate:"gte=0"`
	// Path overrides the PATH environment variable for command lookup
	// and completion when non-empty.
	Path string `json:"path"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Default returns the built-in configuration.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
