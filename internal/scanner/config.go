package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/semanticdata/duplicate-finder/pkg/sizeutil"
)

// ConfigError means the scan could not start at all: bad root, bad size
// string. It is fatal, unlike the access errors tolerated mid-scan.
type ConfigError struct {
	Field string
	Msg   string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

// AccessError is a recoverable I/O failure on a single path during
// traversal or hashing.
type AccessError struct {
	Path string
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("cannot access %s: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ScanConfig is the validated, immutable description of what to scan.
// Build one with NewScanConfig; the fields are read-only afterward.
type ScanConfig struct {
	Root           string
	ExcludeDirs    []string // absolute, cleaned
	ExcludeExts    map[string]struct{}
	MinSize        int64
	IncludeDotDirs bool
	Verbose        bool
}

// NewScanConfig validates and normalizes the raw inputs. minSize is the
// human-readable form ("0B", "10KB", "5MB"); excluded extensions may be
// given with or without the leading dot and in any case.
func NewScanConfig(root string, excludeDirs, excludeExts []string, minSize string, includeDotDirs, verbose bool) (*ScanConfig, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, &ConfigError{Field: "directory", Msg: fmt.Sprintf("%q does not exist", root)}
	}
	if !info.IsDir() {
		return nil, &ConfigError{Field: "directory", Msg: fmt.Sprintf("%q is not a directory", root)}
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &ConfigError{Field: "directory", Msg: err.Error()}
	}

	min, err := sizeutil.ParseSize(minSize)
	if err != nil {
		return nil, &ConfigError{Field: "min-size", Msg: err.Error()}
	}

	dirs := make([]string, 0, len(excludeDirs))
	for _, d := range excludeDirs {
		abs, err := filepath.Abs(d)
		if err != nil {
			return nil, &ConfigError{Field: "exclude-dir", Msg: err.Error()}
		}
		dirs = append(dirs, filepath.Clean(abs))
	}

	exts := make(map[string]struct{}, len(excludeExts))
	for _, ext := range excludeExts {
		exts[normalizeExt(ext)] = struct{}{}
	}

	return &ScanConfig{
		Root:           absRoot,
		ExcludeDirs:    dirs,
		ExcludeExts:    exts,
		MinSize:        min,
		IncludeDotDirs: includeDotDirs,
		Verbose:        verbose,
	}, nil
}

// normalizeExt lowercases and guarantees a leading dot so ".LOG", "log"
// and "LOG" all collide.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ext
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
