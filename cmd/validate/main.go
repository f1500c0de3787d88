package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/mafios/internal/catalog"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <catalog.yaml>...\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		fmt.Printf("Validating %s...\n", filename)
		if err := validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}

	fmt.Println("Catalog file is valid!")
}

func validateFile(filename string) error {
	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("catalog file must have .yaml extension: %s", baseName)
	}

	if !isValidCatalogFilename(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("catalog filename '%s' must be lowercase snake_case (e.g., my_city.yaml, not my-city.yaml or MyCity.yaml)", baseName)
	}

	c, err := catalog.LoadFile(filename)
	if err != nil {
		return err
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

var filenamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)

func isValidCatalogFilename(name string) bool {
	return filenamePattern.MatchString(name)
}
