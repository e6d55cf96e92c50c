package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/semanticdata/duplicate-finder/internal/scanner"
)

// writeCSV emits one row per duplicate file, each repeating its set's
// exact byte size.
func writeCSV(w io.Writer, r *scanner.Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Size", "FilePath"}); err != nil {
		return err
	}
	for _, set := range r.Sets {
		size := strconv.FormatInt(set.Size, 10)
		for _, path := range set.Files {
			if err := cw.Write([]string{size, path}); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
