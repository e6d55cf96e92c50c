package scanner

type Algorithm string

const (
	AlgoMD5  Algorithm = "md5"
	AlgoXX64 Algorithm = "xx64"
)

// Options tunes a scan beyond what ScanConfig captures. The zero value is
// usable: default algorithm, worker count from GOMAXPROCS, clean abort on
// cancellation, no progress consumers.
type Options struct {
	Algorithm Algorithm
	Workers   int

	// PartialOnCancel emits a best-effort report from the buckets that
	// finished hashing before cancellation instead of aborting outright.
	PartialOnCancel bool

	// Updates receives counter deltas during the scan. Optional; never
	// closed by the scanner.
	Updates chan<- ProgressUpdate

	// Events receives verbose callbacks. Optional.
	Events *Events
}

// FileEntry is one accepted file from traversal. Immutable after creation.
type FileEntry struct {
	Path string // absolute
	Size int64
}

// DuplicateSet is a group of byte-identical files: same size, same digest.
// Paths keep traversal order.
type DuplicateSet struct {
	Digest string   `json:"-"`
	Size   int64    `json:"size"`
	Files  []string `json:"files"`
}

// Wasted returns the bytes recoverable by keeping one copy of the set.
func (s DuplicateSet) Wasted() int64 {
	return s.Size * int64(len(s.Files)-1)
}

// Warning records a path skipped due to an access failure. The scan itself
// continues; warnings ride along on the final report.
type Warning struct {
	Path string
	Err  error
}

// Report is the immutable result of a completed (or partial) scan.
type Report struct {
	Sets []DuplicateSet

	TotalFiles     int
	TotalBytes     int64
	DuplicateFiles int
	DuplicateBytes int64
	Savings        int64

	Warnings []Warning
	Partial  bool
}

// Estimate is the dry-run result: traversal cost under the configured
// filters, with no file ever opened.
type Estimate struct {
	Dirs       int
	Files      int
	TotalBytes int64
	Candidates int // files sharing a size with at least one other file
	Warnings   []Warning
}

// ProgressUpdate carries counter deltas for a progress consumer.
type ProgressUpdate struct {
	IndexedDelta int // files accepted during traversal
	QueuedDelta  int // hash jobs scheduled
	HashedDelta  int // hash jobs finished
	ErrorDelta   int
	SetDelta     int
	WastedDelta  int64
}

// Events is the verbose callback surface. All fields optional. Callbacks
// run on scanner goroutines and must not block.
type Events struct {
	DirVisited  func(path string)
	DirSkipped  func(path string)
	FileHashed  func(path string, digest string)
	WarningSeen func(w Warning)
}

func (e *Events) dirVisited(path string) {
	if e != nil && e.DirVisited != nil {
		e.DirVisited(path)
	}
}

func (e *Events) dirSkipped(path string) {
	if e != nil && e.DirSkipped != nil {
		e.DirSkipped(path)
	}
}

func (e *Events) fileHashed(path, digest string) {
	if e != nil && e.FileHashed != nil {
		e.FileHashed(path, digest)
	}
}

func (e *Events) warningSeen(w Warning) {
	if e != nil && e.WarningSeen != nil {
		e.WarningSeen(w)
	}
}
