package scanner

import (
	"context"
	"io/fs"
	"path/filepath"
)

// SizeBuckets maps exact byte size to the accepted files of that size, in
// traversal order. Only buckets with two or more entries can ever produce
// a duplicate set.
type SizeBuckets map[int64][]FileEntry

// indexResult is everything traversal learned about the tree.
type indexResult struct {
	buckets    SizeBuckets
	totalFiles int
	totalBytes int64
	warnings   []Warning
}

// buildIndex walks the tree under cfg.Root, applying the filter before
// descending into any directory and before accepting any file. Excluded
// subtrees are pruned outright. Symlinked directories are not followed
// (WalkDir does not descend through symlinks); symlinks to files and other
// irregular entries are skipped. Permission failures are collected as
// warnings and never abort the walk.
func buildIndex(ctx context.Context, cfg *ScanConfig, filter *PathFilter, opts *Options) (*indexResult, error) {
	res := &indexResult{buckets: make(SizeBuckets)}

	err := filepath.WalkDir(cfg.Root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			w := Warning{Path: path, Err: &AccessError{Path: path, Err: walkErr}}
			res.warnings = append(res.warnings, w)
			opts.Events.warningSeen(w)
			return nil
		}

		if d.IsDir() {
			if !filter.ShouldVisitDir(path) {
				opts.Events.dirSkipped(path)
				return fs.SkipDir
			}
			opts.Events.dirVisited(path)
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			w := Warning{Path: path, Err: &AccessError{Path: path, Err: err}}
			res.warnings = append(res.warnings, w)
			opts.Events.warningSeen(w)
			return nil
		}

		size := info.Size()
		if !filter.ShouldConsiderFile(path, size) {
			return nil
		}

		res.buckets[size] = append(res.buckets[size], FileEntry{Path: path, Size: size})
		res.totalFiles++
		res.totalBytes += size
		sendUpdate(ctx, opts, ProgressUpdate{IndexedDelta: 1})
		return nil
	})
	// The partially-built index is still returned on cancellation so a
	// best-effort report can be assembled from it.
	return res, err
}

// sendUpdate delivers a progress delta unless the scan is canceled. The
// select keeps a stalled or vanished consumer from ever wedging the
// pipeline: once the context is canceled the delta is simply dropped.
func sendUpdate(ctx context.Context, opts *Options, u ProgressUpdate) {
	if opts.Updates == nil {
		return
	}
	select {
	case opts.Updates <- u:
	case <-ctx.Done():
	}
}
