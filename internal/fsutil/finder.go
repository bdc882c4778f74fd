// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// definitionExtensions are the file extensions the analyzer accepts.
var definitionExtensions = map[string]struct{}{
	".ghx": {},
	".xml": {},
	".dyn": {},
}

// FindDefinitionFiles resolves an input path to the list of definition
// files to analyze. A file path is returned as-is; a directory is walked
// recursively for definition files. Results are sorted so batch runs are
// deterministic.
func FindDefinitionFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}

	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if _, ok := definitionExtensions[ext]; ok {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
