package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"github.com/agentx-labs/create-lit-component/internal/platform"
)

// ErrDestinationExists is returned when the output directory is already
// present. It matches fs.ErrExist.
var ErrDestinationExists error = destinationExistsError{}

type destinationExistsError struct{}

func (destinationExistsError) Error() string { return "destination already exists" }

func (destinationExistsError) Is(target error) bool { return target == fs.ErrExist }

// excludedNames are entries never copied out of a template. A ".git"
// directory is a full repository; a ".git" file is a submodule marker and is
// handled by RemoveMarkers.
var excludedNames = map[string]bool{
	"node_modules": true,
	".DS_Store":    true,
}

func excluded(d fs.DirEntry) bool {
	if d.IsDir() && d.Name() == ".git" {
		return true
	}
	return excludedNames[d.Name()]
}

// markerPatterns match leftover version-control references that must not ship
// in generated output. A template checked out as a git submodule carries a
// ".git" file pointing at the parent repository.
var markerPatterns = []string{".git", ".gitmodules"}

// Result holds the outcome of a materialization.
type Result struct {
	OutputDir string
	Files     []string // produced files, slash-separated and relative to OutputDir
	Removed   []string // marker files deleted after the copy
}

// Materialize copies the template tree src into dest, substituting every
// placeholder in file contents and in file and directory names, then deletes
// submodule marker files from the output. dest must not exist.
func Materialize(src fs.FS, dest string, vars Variables) (_ *Result, err error) {
	if _, err := os.Lstat(dest); err == nil {
		return nil, fmt.Errorf("%s: %w", dest, ErrDestinationExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), platform.DirPerm); err != nil {
		return nil, fmt.Errorf("creating parent of %s: %w", dest, err)
	}
	if err := os.Mkdir(dest, platform.DirPerm); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%s: %w", dest, ErrDestinationExists)
		}
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	// dest was created here, so a failed copy leaves nothing behind.
	defer func() {
		if err != nil {
			_ = os.RemoveAll(dest)
		}
	}()

	result := &Result{OutputDir: dest}
	replacer := vars.Replacer()
	jsonReplacer := vars.JSONReplacer()

	err = fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("reading template %s: %w", p, err)
		}
		if p == "." {
			return nil
		}
		if excluded(d) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel := replacer.Replace(p)
		target := filepath.Join(dest, filepath.FromSlash(rel))

		switch {
		case d.IsDir():
			if err := os.MkdirAll(target, platform.DirPerm); err != nil {
				return fmt.Errorf("creating %s: %w", target, err)
			}
		case d.Type().IsRegular():
			substitute := replacer.Replace
			if path.Ext(p) == ".json" {
				substitute = jsonReplacer.Replace
			}
			if err := renderFile(src, p, target, substitute); err != nil {
				return err
			}
			result.Files = append(result.Files, rel)
		}
		// Skip symlinks and other special files.
		return nil
	})
	if err != nil {
		return nil, err
	}

	removed, err := RemoveMarkers(dest)
	if err != nil {
		return nil, err
	}
	result.Removed = removed
	result.Files = without(result.Files, removed)
	sort.Strings(result.Files)

	return result, nil
}

// renderFile writes the substituted contents of template file p to target.
// Files that are not valid UTF-8 are copied verbatim.
func renderFile(src fs.FS, p, target string, substitute func(string) string) error {
	data, err := fs.ReadFile(src, p)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", p, err)
	}
	info, err := fs.Stat(src, p)
	if err != nil {
		return fmt.Errorf("reading template %s: %w", p, err)
	}

	if utf8.Valid(data) {
		data = []byte(substitute(string(data)))
	}

	mode := platform.OutputMode(info.Mode())
	if err := os.WriteFile(target, data, mode); err != nil {
		return fmt.Errorf("writing %s: %w", target, err)
	}
	if err := platform.Chmod(target, mode); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", target, err)
	}
	return nil
}

// RemoveMarkers deletes every regular file under root whose name matches a
// submodule marker pattern and returns their slash-separated relative paths.
// Finding none is not an error.
func RemoveMarkers(root string) ([]string, error) {
	var removed []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isMarker(d.Name()) {
			return nil
		}
		if err := os.Remove(p); err != nil {
			return fmt.Errorf("removing %s: %w", p, err)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		removed = append(removed, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("removing submodule markers: %w", err)
	}
	return removed, nil
}

func isMarker(name string) bool {
	for _, pattern := range markerPatterns {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
	}
	return false
}

func without(files, drop []string) []string {
	if len(drop) == 0 {
		return files
	}
	skip := make(map[string]bool, len(drop))
	for _, f := range drop {
		skip[f] = true
	}
	out := files[:0]
	for _, f := range files {
		if !skip[f] {
			out = append(out, f)
		}
	}
	return out
}
