package config

import (
	"fmt"
	"os"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

// LoadSettings reads and parses the settings.json file from the given
// path. It returns a pointer to a fully parsed and validated Settings
// struct or an error if the file cannot be read or parsed.
func LoadSettings(filePath string) (*models.Settings, error) {
	bytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file '%s': %w", filePath, err)
	}

	settings, err := models.LoadSettings(bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse settings file '%s': %w", filePath, err)
	}

	return settings, nil
}
