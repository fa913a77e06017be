package defs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/physq/unit"
)

// DefaultPatterns matches definition files under a defs directory.
var DefaultPatterns = []string{"defs/**/*.yaml", "defs/**/*.yml"}

// DiscoverFiles expands glob patterns relative to root into matching
// regular files, deduplicated and sorted. Patterns support ** for
// recursive matching. A nil patterns slice uses DefaultPatterns.
func DiscoverFiles(root string, patterns []string) ([]string, error) {
	if patterns == nil {
		patterns = DefaultPatterns
	}
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.Join(root, pattern))
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			seen[m] = true
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile reads, parses and validates a single definition file.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse definitions %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &doc, nil
}

// Load discovers and parses every definition file under root, in sorted
// path order.
func Load(root string, patterns []string) ([]*Document, error) {
	files, err := DiscoverFiles(root, patterns)
	if err != nil {
		return nil, err
	}
	docs := make([]*Document, 0, len(files))
	for _, f := range files {
		doc, err := LoadFile(f)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// InstallAll loads every definition file under root and installs the
// documents into r in path order.
func InstallAll(r *unit.Registry, root string, patterns []string) error {
	docs, err := Load(root, patterns)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := doc.Install(r); err != nil {
			return err
		}
	}
	return nil
}
