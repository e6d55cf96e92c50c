// Package sizeutil converts between byte counts and the human-readable
// size strings accepted on the command line (10KB, 5MB, 1GB).
package sizeutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

var units = map[byte]int64{
	'K': 1 << 10,
	'M': 1 << 20,
	'G': 1 << 30,
	'T': 1 << 40,
}

// ParseSize converts a size string to bytes. Accepted forms: bare digits
// ("1024"), plain bytes ("100B", "0B"), and unit suffixes KB/MB/GB/TB with
// 1024-based multipliers. Matching is case-insensitive.
func ParseSize(s string) (int64, error) {
	in := strings.ToUpper(strings.TrimSpace(s))
	if in == "" {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}

	if n, err := strconv.ParseInt(in, 10, 64); err == nil && n >= 0 {
		return n, nil
	}

	if !strings.HasSuffix(in, "B") {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	in = in[:len(in)-1]

	// Plain byte count, e.g. "100B".
	if n, err := strconv.ParseInt(in, 10, 64); err == nil && n >= 0 {
		return n, nil
	}

	if len(in) < 2 {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	mult, ok := units[in[len(in)-1]]
	if !ok {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	n, err := strconv.ParseInt(in[:len(in)-1], 10, 64)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid size format: %q", s)
	}
	return n * mult, nil
}

// FormatSize renders a byte count for humans, e.g. "4.2 MB".
func FormatSize(n int64) string {
	if n < 0 {
		return fmt.Sprintf("%d B", n)
	}
	return humanize.Bytes(uint64(n))
}
