package scanner

import (
	"path/filepath"
	"strings"
)

// PathFilter holds the pure eligibility predicates derived from a
// ScanConfig. It never touches the filesystem.
type PathFilter struct {
	cfg *ScanConfig
}

func NewPathFilter(cfg *ScanConfig) *PathFilter {
	return &PathFilter{cfg: cfg}
}

// ShouldVisitDir reports whether traversal may descend into dir. dir must
// be absolute. The scan root itself is always visited, even when its own
// name starts with a dot.
func (f *PathFilter) ShouldVisitDir(dir string) bool {
	dir = filepath.Clean(dir)
	if dir == f.cfg.Root {
		return true
	}
	for _, excluded := range f.cfg.ExcludeDirs {
		if dir == excluded || isUnder(dir, excluded) {
			return false
		}
	}
	if !f.cfg.IncludeDotDirs && strings.HasPrefix(filepath.Base(dir), ".") {
		return false
	}
	return true
}

// ShouldConsiderFile reports whether a regular file of the given size is a
// hashing candidate.
func (f *PathFilter) ShouldConsiderFile(path string, size int64) bool {
	if size < f.cfg.MinSize {
		return false
	}
	if len(f.cfg.ExcludeExts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return true
	}
	_, excluded := f.cfg.ExcludeExts[ext]
	return !excluded
}

// isUnder reports whether path is a strict descendant of root.
func isUnder(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
