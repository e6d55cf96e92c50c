package scanner

import (
	"context"
	"hash"
	"runtime"
	"sort"
	"sync"
)

type hashJob struct {
	entry FileEntry
	order int // position within the bucket, traversal order
}

type hashResult struct {
	size   int64
	order  int
	path   string
	digest string
	err    error
}

// groupResult carries what the grouper salvaged: the duplicate sets of all
// buckets whose every member was hashed, plus per-file hash warnings.
type groupResult struct {
	sets     []DuplicateSet
	warnings []Warning
	partial  bool
}

// groupDuplicates hashes every bucket with two or more entries on a
// bounded worker pool and sub-groups each bucket by digest. Buckets join
// independently: a bucket is finalized the moment its last entry is
// hashed, so one slow file only ever delays its own bucket.
//
// A hash failure drops just that file; if the bucket is left with fewer
// than two entries nothing is emitted for it. On cancellation the grouper
// stops scheduling work and either reports the buckets that completed
// (PartialOnCancel) or returns the context error.
func groupDuplicates(ctx context.Context, buckets SizeBuckets, opts *Options) (*groupResult, error) {
	newHash, err := hasherFor(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	expected := make(map[int64]int)
	totalJobs := 0
	for size, entries := range buckets {
		if len(entries) >= 2 {
			expected[size] = len(entries)
			totalJobs += len(entries)
		}
	}

	res := &groupResult{}
	if totalJobs == 0 {
		if err := ctx.Err(); err != nil {
			if !opts.PartialOnCancel {
				return nil, err
			}
			res.partial = true
		}
		return res, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > totalJobs {
		workers = totalJobs
	}

	jobs := make(chan hashJob)
	results := make(chan hashResult)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			hashWorker(ctx, jobs, results, newHash, opts)
		}()
	}

	go func() {
		defer close(jobs)
		for _, entries := range buckets {
			if len(entries) < 2 {
				continue
			}
			for i, entry := range entries {
				select {
				case jobs <- hashJob{entry: entry, order: i}:
					sendUpdate(ctx, opts, ProgressUpdate{QueuedDelta: 1})
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	collectorDone := make(chan struct{})
	pending := make(map[int64][]hashResult)
	go func() {
		defer close(collectorDone)
		for r := range results {
			pending[r.size] = append(pending[r.size], r)
			if len(pending[r.size]) == expected[r.size] {
				sets, warns := finalizeBucket(r.size, pending[r.size])
				delete(pending, r.size)
				res.sets = append(res.sets, sets...)
				res.warnings = append(res.warnings, warns...)
				for _, s := range sets {
					sendUpdate(ctx, opts, ProgressUpdate{SetDelta: 1, WastedDelta: s.Wasted()})
				}
			}
		}
	}()

	wg.Wait()
	close(results)
	<-collectorDone

	if err := ctx.Err(); err != nil {
		if !opts.PartialOnCancel {
			return nil, err
		}
		res.partial = true
	}

	sortSets(res.sets)
	return res, nil
}

func hashWorker(ctx context.Context, jobs <-chan hashJob, results chan<- hashResult, newHash func() hash.Hash, opts *Options) {
	for job := range jobs {
		if err := ctx.Err(); err != nil {
			return
		}

		digest, err := digestFile(job.entry.Path, newHash)
		if err != nil {
			sendUpdate(ctx, opts, ProgressUpdate{HashedDelta: 1, ErrorDelta: 1})
		} else {
			sendUpdate(ctx, opts, ProgressUpdate{HashedDelta: 1})
			opts.Events.fileHashed(job.entry.Path, digest)
		}

		select {
		case results <- hashResult{
			size:   job.entry.Size,
			order:  job.order,
			path:   job.entry.Path,
			digest: digest,
			err:    err,
		}:
		case <-ctx.Done():
			return
		}
	}
}

// finalizeBucket sub-groups one fully-hashed bucket by digest. Entries
// whose hashing failed become warnings and drop out; digest groups left
// with a single member are same-size-different-content files, not
// duplicates.
func finalizeBucket(size int64, results []hashResult) ([]DuplicateSet, []Warning) {
	sort.Slice(results, func(i, j int) bool { return results[i].order < results[j].order })

	var warnings []Warning
	byDigest := make(map[string][]string)
	var digestOrder []string
	for _, r := range results {
		if r.err != nil {
			warnings = append(warnings, Warning{Path: r.path, Err: r.err})
			continue
		}
		if _, seen := byDigest[r.digest]; !seen {
			digestOrder = append(digestOrder, r.digest)
		}
		byDigest[r.digest] = append(byDigest[r.digest], r.path)
	}

	var sets []DuplicateSet
	for _, digest := range digestOrder {
		files := byDigest[digest]
		if len(files) < 2 {
			continue
		}
		sets = append(sets, DuplicateSet{Digest: digest, Size: size, Files: files})
	}
	return sets, warnings
}

// sortSets orders sets most-impactful-first: descending size × count,
// ties by ascending first path. Reports stay byte-identical across runs.
func sortSets(sets []DuplicateSet) {
	sort.Slice(sets, func(i, j int) bool {
		wi := sets[i].Size * int64(len(sets[i].Files))
		wj := sets[j].Size * int64(len(sets[j].Files))
		if wi != wj {
			return wi > wj
		}
		return sets[i].Files[0] < sets[j].Files[0]
	})
}
