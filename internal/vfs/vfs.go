// Package vfs resolves "#include" paths against a search path and tracks
// which absolute paths have already been expanded, so the semantic
// analyzer's include splice never processes the same file twice.
//
// The search order is: the including file's directory, then the
// resolver's configured --include-dir entries (left to right), then the
// host PATH-style environment variable, then the current working
// directory — both the environment variable and an explicit flag are
// supported, see DESIGN.md for that decision.
package vfs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolver resolves include paths and deduplicates already-expanded
// files by canonical absolute path.
type Resolver struct {
	// IncludeDirs are additional search roots, in priority order,
	// populated from repeated --include-dir flags.
	IncludeDirs []string
	// PathEnvVar is the name of the host PATH-style variable searched
	// after IncludeDirs. Defaults to "LUMINA_INCLUDE_PATH" if empty.
	PathEnvVar string

	seen map[string]bool
}

const defaultPathEnvVar = "LUMINA_INCLUDE_PATH"

// NewResolver builds a Resolver with the given extra search directories.
func NewResolver(includeDirs []string) *Resolver {
	return &Resolver{IncludeDirs: includeDirs, seen: make(map[string]bool)}
}

// searchDirs returns every directory to search, in order, for a given
// including file (fromFile may be empty for the entry point).
func (r *Resolver) searchDirs(fromFile string) []string {
	var dirs []string
	if fromFile != "" {
		dirs = append(dirs, filepath.Dir(fromFile))
	}
	dirs = append(dirs, r.IncludeDirs...)

	envVar := r.PathEnvVar
	if envVar == "" {
		envVar = defaultPathEnvVar
	}
	if v := os.Getenv(envVar); v != "" {
		dirs = append(dirs, filepath.SplitList(v)...)
	}

	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	return dirs
}

// Resolve finds the absolute path for an include. quoted is true for
// `#include "path"` (a flat, relative-or-absolute lookup); false for
// `#include <name>` (flat lookup first, then a recursive "**/name"
// fallback within each search directory).
//
// fromFile is the absolute path of the file containing the #include
// directive (empty for none, which only happens for the entry point and
// never calls Resolve).
func (r *Resolver) Resolve(fromFile, path string, quoted bool) (string, error) {
	if filepath.IsAbs(path) {
		if _, err := os.Stat(path); err == nil {
			return filepath.Clean(path), nil
		}
		return "", fmt.Errorf("include file [%s] not found", path)
	}

	for _, dir := range r.searchDirs(fromFile) {
		candidate := filepath.Join(dir, path)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return filepath.Clean(candidate), nil
		}
	}

	if !quoted {
		for _, dir := range r.searchDirs(fromFile) {
			matches, err := doublestar.Glob(os.DirFS(dir), "**/"+path)
			if err != nil || len(matches) == 0 {
				continue
			}
			return filepath.Clean(filepath.Join(dir, matches[0])), nil
		}
	}

	return "", fmt.Errorf("include file [%s] not found", path)
}

// MarkSeen records absPath as expanded, returning true if it had already
// been seen (the caller should then skip re-parsing it).
func (r *Resolver) MarkSeen(absPath string) (alreadySeen bool) {
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	clean := filepath.Clean(absPath)
	if r.seen[clean] {
		return true
	}
	r.seen[clean] = true
	return false
}

// Seen reports whether absPath has already been marked, without marking
// it.
func (r *Resolver) Seen(absPath string) bool {
	return r.seen[filepath.Clean(absPath)]
}
