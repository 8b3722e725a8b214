package loader

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover expands paths into package definition files. Directories are
// walked recursively; files are taken as given. The result is ordered by
// argument, then lexically within each directory, with duplicates removed.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var result []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			result = append(result, clean)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if !info.IsDir() {
			add(p)
			continue
		}

		files, err := walkDir(p)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return result, nil
}

func walkDir(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if isPackageFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

// isPackageFile reports whether name looks like a package definition.
// Hidden files are editor or tool state.
func isPackageFile(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	_, ok := FormatOf(name)
	return ok
}
