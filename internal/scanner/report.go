package scanner

import (
	"context"
)

// Run executes the full pipeline: traversal into size buckets, then
// digest grouping over the worker pool, then report assembly. The report
// is an immutable snapshot owned by the caller.
//
// Cancellation honors opts.PartialOnCancel: with it, Run returns whatever
// completed before the cancel with Report.Partial set; without it, Run
// returns the context error and no report.
func Run(ctx context.Context, cfg *ScanConfig, opts Options) (*Report, error) {
	if _, err := hasherFor(opts.Algorithm); err != nil {
		return nil, &ConfigError{Field: "algorithm", Msg: err.Error()}
	}

	filter := NewPathFilter(cfg)

	idx, walkErr := buildIndex(ctx, cfg, filter, &opts)
	if walkErr != nil && !opts.PartialOnCancel {
		return nil, walkErr
	}

	// With a canceled context the grouper degrades on its own: no jobs
	// are scheduled and only already-complete buckets report.
	gr, err := groupDuplicates(ctx, idx.buckets, &opts)
	if err != nil {
		return nil, err
	}

	report := assembleReport(idx, gr)
	report.Partial = gr.partial || walkErr != nil
	return report, nil
}

func assembleReport(idx *indexResult, gr *groupResult) *Report {
	r := &Report{
		Sets:       gr.sets,
		TotalFiles: idx.totalFiles,
		TotalBytes: idx.totalBytes,
	}
	for _, s := range gr.sets {
		r.DuplicateFiles += len(s.Files)
		r.DuplicateBytes += s.Size * int64(len(s.Files))
		r.Savings += s.Wasted()
	}
	r.Warnings = append(r.Warnings, idx.warnings...)
	r.Warnings = append(r.Warnings, gr.warnings...)
	return r
}
