package usecase

import (
	"fmt"
	"os"

	"QuotePulse/internal/domain/models"

	"gopkg.in/yaml.v3"
)

// sectionsDocument is the on-disk shape of the market sections config.
type sectionsDocument struct {
	Sections []models.Section `yaml:"sections"`
}

// SectionsLoader returns the configured market sections. Loaders are
// read-only; the aggregator never mutates what they return.
type SectionsLoader func() ([]models.Section, error)

// FileSectionsLoader reads sections from a YAML document on each call, so
// edits to the document are picked up without a restart.
func FileSectionsLoader(path string) SectionsLoader {
	return func() ([]models.Section, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sections: %w", err)
		}
		var doc sectionsDocument
		if err := yaml.Unmarshal(b, &doc); err != nil {
			return nil, fmt.Errorf("parse sections: %w", err)
		}
		return doc.Sections, nil
	}
}

// StaticSectionsLoader serves a fixed section list. Used in tests and when
// sections are embedded in the main config.
func StaticSectionsLoader(sections []models.Section) SectionsLoader {
	return func() ([]models.Section, error) {
		return sections, nil
	}
}
