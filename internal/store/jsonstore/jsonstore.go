package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/idilsaglam/persons/internal/model"
)

// JSON snapshot files of the persons list. Single file, human-readable,
// portable between servers. IDs are written but ignored on import.

const DefaultFileName = "persons.json"

func resolve(path string) (string, error) {
	if path == "" {
		path = DefaultFileName
	}
	p, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	return p, nil
}

// Load reads a snapshot. A missing file is an error.
func Load(path string) ([]model.Person, error) {
	p, err := resolve(path)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("snapshot not found: %s", p)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var persons []model.Person
	if err := json.Unmarshal(b, &persons); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if persons == nil {
		persons = []model.Person{}
	}
	return persons, nil
}

func Save(path string, persons []model.Person) error {
	p, err := resolve(path)
	if err != nil {
		return err
	}
	if persons == nil {
		persons = []model.Person{}
	}
	b, err := json.MarshalIndent(persons, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.WriteFile(p, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
