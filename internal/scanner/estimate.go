package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
)

// DryRun walks the tree under the same filters as Run but never opens a
// file: it answers "what would a scan cost" with directory and file
// counts. Candidates counts the files sharing their exact size with at
// least one other accepted file, i.e. the files a real scan would hash.
func DryRun(ctx context.Context, cfg *ScanConfig, opts Options) (*Estimate, error) {
	filter := NewPathFilter(cfg)
	est := &Estimate{}
	sizes := make(map[int64]int)

	err := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			w := Warning{Path: path, Err: &AccessError{Path: path, Err: walkErr}}
			est.Warnings = append(est.Warnings, w)
			opts.Events.warningSeen(w)
			return nil
		}

		if d.IsDir() {
			if !filter.ShouldVisitDir(path) {
				opts.Events.dirSkipped(path)
				return fs.SkipDir
			}
			opts.Events.dirVisited(path)
			est.Dirs++
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			w := Warning{Path: path, Err: &AccessError{Path: path, Err: err}}
			est.Warnings = append(est.Warnings, w)
			opts.Events.warningSeen(w)
			return nil
		}
		size := info.Size()
		if !filter.ShouldConsiderFile(path, size) {
			return nil
		}

		est.Files++
		est.TotalBytes += size
		sizes[size]++
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, n := range sizes {
		if n >= 2 {
			est.Candidates += n
		}
	}
	return est, nil
}
