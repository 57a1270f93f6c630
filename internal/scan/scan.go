// Package scan enumerates candidate paths for fuzzy matching.
//
// A scan walks a directory subtree honoring .gitignore rules at every
// level, skipping .git directories, and never following symlinks.
// Unreadable entries are skipped rather than failing the walk, and an
// optional time budget bounds how long the walk may run: once it
// elapses, the paths collected so far are returned as a success.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	gitignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Options configures a scan.
type Options struct {
	// IncludeDirs adds directory paths to the results alongside files.
	IncludeDirs bool

	// MaxDuration bounds the walk. Zero means no budget. A partial
	// list returned at the deadline is a success, not an error.
	MaxDuration time.Duration

	// Logger receives per-entry diagnostics. Nil disables logging.
	Logger *zap.Logger
}

// ignoreScope is one .gitignore file applied to everything below its
// directory.
type ignoreScope struct {
	dir     string
	matcher *gitignore.GitIgnore
}

// Scan walks the subtree rooted at root and returns candidate paths in
// walk order. The only hard failure is an unusable root; everything
// else degrades to a partial listing.
func Scan(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.Wrapf(err, "scan: stat root %q", root)
	}
	if !info.IsDir() {
		return nil, errors.Newf("scan: root %q is not a directory", root)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	var paths []string
	var scopes []ignoreScope

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if opts.MaxDuration > 0 && time.Since(start) > opts.MaxDuration {
			logger.Debug("scan budget elapsed",
				zap.String("path", path),
				zap.Duration("budget", opts.MaxDuration),
				zap.Int("collected", len(paths)))
			return filepath.SkipAll
		}

		if walkErr != nil {
			// Permission errors and broken entries are skipped; a
			// partial listing beats aborting the walk.
			logger.Debug("skipping unreadable entry",
				zap.String("path", path),
				zap.Error(walkErr))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			scopes = pruneScopes(scopes, path)
			if path != root && ignored(scopes, path, true) {
				return filepath.SkipDir
			}
			if gi, giErr := gitignore.CompileIgnoreFile(filepath.Join(path, ".gitignore")); giErr == nil && gi != nil {
				scopes = append(scopes, ignoreScope{dir: path, matcher: gi})
			}
			if opts.IncludeDirs && path != root {
				paths = append(paths, path)
			}
			return nil
		}

		scopes = pruneScopes(scopes, filepath.Dir(path))
		if ignored(scopes, path, false) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "scan: walk failed")
	}

	return paths, nil
}

// pruneScopes drops .gitignore scopes that do not contain dir. WalkDir
// visits depth-first in lexical order, so a scope stays live exactly
// while the walk remains inside its directory.
func pruneScopes(scopes []ignoreScope, dir string) []ignoreScope {
	kept := scopes[:0]
	for _, s := range scopes {
		if s.dir == dir || strings.HasPrefix(dir, s.dir+string(filepath.Separator)) {
			kept = append(kept, s)
		}
	}
	return kept
}

// ignored reports whether any live scope's rules match the path,
// evaluated relative to the scope's directory.
func ignored(scopes []ignoreScope, path string, isDir bool) bool {
	for _, s := range scopes {
		rel, err := filepath.Rel(s.dir, path)
		if err != nil {
			continue
		}
		if isDir {
			rel += "/"
		}
		if s.matcher.MatchesPath(rel) {
			return true
		}
	}
	return false
}
