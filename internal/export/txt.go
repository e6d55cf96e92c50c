package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/semanticdata/duplicate-finder/internal/scanner"
	"github.com/semanticdata/duplicate-finder/pkg/sizeutil"
)

// writeTXT emits one block per set: a header with the human-readable file
// size, then each member path indented by two spaces.
func writeTXT(w io.Writer, r *scanner.Report) error {
	bw := bufio.NewWriter(w)
	for _, set := range r.Sets {
		fmt.Fprintf(bw, "\nDuplicate set (size: %s)\n", sizeutil.FormatSize(set.Size))
		for _, path := range set.Files {
			fmt.Fprintf(bw, "  %s\n", path)
		}
	}
	return bw.Flush()
}
