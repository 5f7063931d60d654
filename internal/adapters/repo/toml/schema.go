package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version   int           `toml:"version"`
	UpdatedAt string        `toml:"updated_at,omitempty"`
	Classes   []classSchema `toml:"classes"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported classes schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type classSchema struct {
	ID         string `toml:"id"`
	Slug       string `toml:"slug"`
	Name       string `toml:"name"`
	CourseCode string `toml:"course_code,omitempty"`
	Stage      string `toml:"stage,omitempty"`
}
