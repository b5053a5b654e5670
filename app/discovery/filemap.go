// Package discovery indexes a directory of judgement fixtures (a
// beatmap blueprint + replay JSON file per case) so the judgedump CLI
// can batch-run every fixture under a directory. Adapted from
// danser-go's framework/files/filemap.go (lowercase path cache built
// via godirwalk.Walk), repurposed from "find a skin/beatmap asset on
// disk by path" to "find a fixture by relative path", with wrapped
// errors in place of that file's bare os.ErrNotExist.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karrick/godirwalk"
)

// FileMap is a case-insensitive index of every file under a root
// directory, built once at construction.
type FileMap struct {
	root      string
	pathCache map[string]string
}

// NewFileMap walks root and records every file's path, keyed in
// lowercase for case-insensitive Resolve lookups.
func NewFileMap(root string) (*FileMap, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("discovery: stat %s: %w", root, err)
	}

	normalizedRoot := strings.ReplaceAll(root, "\\", "/")
	if !strings.HasSuffix(normalizedRoot, "/") {
		normalizedRoot += "/"
	}

	fm := &FileMap{
		root:      normalizedRoot,
		pathCache: make(map[string]string),
	}

	err := godirwalk.Walk(normalizedRoot, &godirwalk.Options{
		Callback: func(osPathname string, de *godirwalk.Dirent) error {
			if de.IsDir() {
				return nil
			}

			relative := strings.TrimPrefix(strings.ReplaceAll(osPathname, "\\", "/"), normalizedRoot)
			fm.pathCache[strings.ToLower(relative)] = relative

			return nil
		},
		Unsorted: true,
	})
	if err != nil {
		return nil, fmt.Errorf("discovery: walk %s: %w", root, err)
	}

	return fm, nil
}

// Resolve returns the path of the fixture at the given
// (case-insensitively matched) relative path, joined onto the root
// NewFileMap was given (absolute only if that root was absolute).
func (fm *FileMap) Resolve(relative string) (string, error) {
	key := strings.ToLower(strings.ReplaceAll(relative, "\\", "/"))

	actual, ok := fm.pathCache[key]
	if !ok {
		return "", fmt.Errorf("discovery: %s: %w", relative, os.ErrNotExist)
	}

	return filepath.Join(fm.root, actual), nil
}

// All returns every indexed relative path in sorted order, so batch
// mode processes fixtures in a fixed, repeatable sequence rather than
// map iteration order.
func (fm *FileMap) All() []string {
	paths := make([]string, 0, len(fm.pathCache))

	for _, v := range fm.pathCache {
		paths = append(paths, v)
	}

	sort.Strings(paths)

	return paths
}
