package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/msp-lab/deskhawk/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// loadCategories returns the classifier keyword table: the YAML file when a
// path is configured, the built-in default table otherwise.
func (a *Analysis) loadCategories() (*model.CategoriesConfig, error) {
	if a.CategoriesPath == "" {
		return model.DefaultCategories(), nil
	}
	return LoadCategoriesFromFile(a.CategoriesPath)
}

// LoadCategoriesFromFile loads a classifier keyword table from a YAML file
func LoadCategoriesFromFile(path string) (*model.CategoriesConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "categories file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read categories file",
			goerr.V("path", path))
	}

	var config model.CategoriesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse categories YAML",
			goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid categories configuration",
			goerr.V("path", path))
	}

	return &config, nil
}
