package suite

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/qed/internal/compiler"
)

// Law names a suite may check.
const (
	LawCategory    = "category"
	LawFunctor     = "functor"
	LawNaturality  = "naturality"
	LawInterchange = "interchange"
	LawAdjunction  = "adjunction"
	LawMonad       = "monad"
	LawComonad     = "comonad"
)

// LoadSuite reads and parses a suite YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadSuite(path string) (*Suite, error) {
	return LoadSuiteWithBasePath(path, filepath.Dir(path))
}

// LoadSuiteWithBasePath reads and parses a suite YAML file, resolving
// spec paths relative to the provided base path.
func LoadSuiteWithBasePath(path, basePath string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read suite file: %w", err)
	}

	// Strict field validation catches typos like "check:" vs "checks:".
	var s Suite
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, specPath := range s.Specs {
		if !filepath.IsAbs(specPath) && basePath != "" {
			s.Specs[i] = filepath.Join(basePath, specPath)
		}
	}

	if err := validateSuite(&s); err != nil {
		return nil, fmt.Errorf("invalid suite: %w", err)
	}

	return &s, nil
}

// validateSuite checks that required fields are present and valid.
func validateSuite(s *Suite) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Specs) == 0 {
		return fmt.Errorf("specs list is required and must be non-empty")
	}
	if len(s.Checks) == 0 {
		return fmt.Errorf("checks list is required and must be non-empty")
	}

	for _, specPath := range s.Specs {
		if _, err := os.Stat(specPath); os.IsNotExist(err) {
			return fmt.Errorf("spec file not found: %s", specPath)
		}
	}

	for i, check := range s.Checks {
		if err := validateCheck(i, check); err != nil {
			return err
		}
	}

	return nil
}

// validateCheck validates one check against its law's target shape.
func validateCheck(index int, c Check) error {
	switch c.Law {
	case "":
		return fmt.Errorf("checks[%d]: law is required", index)
	case LawCategory:
		if c.Category == "" {
			return fmt.Errorf("checks[%d]: category is required for the category law", index)
		}
	case LawFunctor:
		if c.Functor == "" {
			return fmt.Errorf("checks[%d]: functor is required for the functor law", index)
		}
	case LawNaturality:
		if c.Transformation == "" {
			return fmt.Errorf("checks[%d]: transformation is required for the naturality law", index)
		}
	case LawInterchange:
		if len(c.Transformations) != 4 {
			return fmt.Errorf("checks[%d]: interchange needs exactly four transformations, got %d",
				index, len(c.Transformations))
		}
	case LawAdjunction, LawMonad, LawComonad:
		if c.Adjunction == "" {
			return fmt.Errorf("checks[%d]: adjunction is required for the %s law", index, c.Law)
		}
	default:
		return fmt.Errorf("checks[%d]: unknown law %q", index, c.Law)
	}
	return nil
}

// BuildLibrary compiles the suite's CUE presentation files into one built
// library. Files are compiled independently and merged; a name declared
// in two files is an error.
func BuildLibrary(paths []string) (*compiler.Library, error) {
	merged := compiler.NewLibrarySpec()
	cuectx := cuecontext.New()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read spec file: %w", err)
		}

		v := cuectx.CompileString(string(data), cue.Filename(path))
		lib, err := compiler.CompileLibrary(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		if err := mergeSpecs(merged, lib, path); err != nil {
			return nil, err
		}
	}

	built, err := compiler.Build(merged)
	if err != nil {
		return nil, err
	}
	return built, nil
}

func mergeSpecs(dst, src *compiler.LibrarySpec, path string) error {
	for name, c := range src.Categories {
		if _, ok := dst.Categories[name]; ok {
			return fmt.Errorf("%s: category %q declared twice", path, name)
		}
		dst.Categories[name] = c
	}
	for name, f := range src.Functors {
		if _, ok := dst.Functors[name]; ok {
			return fmt.Errorf("%s: functor %q declared twice", path, name)
		}
		dst.Functors[name] = f
	}
	for name, t := range src.Transformations {
		if _, ok := dst.Transformations[name]; ok {
			return fmt.Errorf("%s: transformation %q declared twice", path, name)
		}
		dst.Transformations[name] = t
	}
	for name, a := range src.Adjunctions {
		if _, ok := dst.Adjunctions[name]; ok {
			return fmt.Errorf("%s: adjunction %q declared twice", path, name)
		}
		dst.Adjunctions[name] = a
	}
	return nil
}
