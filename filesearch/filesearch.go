// Package filesearch finds files the way IDL FILE_SEARCH does for a
// directory and a file name pattern.
package filesearch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

//Options of Search
type Options struct {
	MatchAllInitialDot bool //Also return files whose name starts with a dot
}

//Search returns the regular files below dir whose base name matches pattern,
//in lexical walk order. The pattern uses filepath.Match syntax: * for any
//run of characters, ? for one character and [...] for a class.
//
//An empty pattern lists the regular files directly in dir without
//descending into subdirectories, dot files included as IDL does.
func Search(dir, pattern string, opts Options) ([]string, error) {
	if pattern == "" {
		return listDir(dir)
	}
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, err
	}

	var out []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		name := d.Name()
		if !opts.MatchAllInitialDot && strings.HasPrefix(name, ".") {
			return nil
		}
		if ok, _ := filepath.Match(pattern, name); ok {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}
