package catalog

import (
	"alcyxob/workout-builder/internal/domain"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// seedFile is the layout of the catalog seed YAML:
//
//	exercises:
//	  - name: Barbell Squat
//	    primaryMuscles: [quadriceps]
//	    equipment: barbell
//	    level: intermediate
type seedFile struct {
	Exercises []domain.CatalogEntry `yaml:"exercises"`
}

// LoadSeedFile reads catalog entries from a YAML file.
func LoadSeedFile(path string) ([]domain.CatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog seed: %w", err)
	}
	defer f.Close()
	return ParseSeed(f)
}

// ParseSeed decodes catalog entries from YAML. Entries without a name are rejected.
func ParseSeed(r io.Reader) ([]domain.CatalogEntry, error) {
	var seed seedFile
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("parsing catalog seed: %w", err)
	}
	for i, e := range seed.Exercises {
		if e.Name == "" {
			return nil, fmt.Errorf("catalog seed entry %d: name is required", i)
		}
	}
	return seed.Exercises, nil
}
