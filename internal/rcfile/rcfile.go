// Package rcfile loads optional scan defaults from a .dupfinder.ini file.
// The file is looked up in the scan root first, then in the user's home
// directory. Command-line flags always win over rc-file values.
package rcfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-ini/ini"
)

const FileName = ".dupfinder.ini"

// Defaults mirrors the flag surface of the scan command. Zero values mean
// "not set in the file".
type Defaults struct {
	MinSize        string
	ExcludeDirs    []string
	ExcludeExts    []string
	IncludeDotDirs bool
	Format         string
	Algorithm      string
	Workers        int
}

// Load returns the defaults from the first rc file found under root or
// the home directory, or nil when neither exists.
func Load(root string) (*Defaults, error) {
	for _, dir := range candidateDirs(root) {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return loadFile(path)
	}
	return nil, nil
}

func candidateDirs(root string) []string {
	dirs := []string{}
	if root != "" {
		dirs = append(dirs, root)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

func loadFile(path string) (*Defaults, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	d := &Defaults{}

	if file.HasSection("scan") {
		section := file.Section("scan")
		if section.HasKey("min_size") {
			d.MinSize = section.Key("min_size").String()
		}
		if section.HasKey("exclude_dirs") {
			d.ExcludeDirs = splitList(section.Key("exclude_dirs").String())
		}
		if section.HasKey("exclude_exts") {
			d.ExcludeExts = splitList(section.Key("exclude_exts").String())
		}
		if section.HasKey("include_dot_dirs") {
			if v, err := section.Key("include_dot_dirs").Bool(); err == nil {
				d.IncludeDotDirs = v
			}
		}
	}

	if file.HasSection("output") {
		section := file.Section("output")
		if section.HasKey("format") {
			d.Format = section.Key("format").String()
		}
	}

	if file.HasSection("performance") {
		section := file.Section("performance")
		if section.HasKey("algorithm") {
			d.Algorithm = section.Key("algorithm").String()
		}
		if section.HasKey("workers") {
			if v, err := section.Key("workers").Int(); err == nil {
				d.Workers = v
			}
		}
	}

	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
