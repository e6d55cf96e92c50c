package export

import (
	"encoding/json"
	"io"

	"github.com/semanticdata/duplicate-finder/internal/scanner"
)

type jsonReport struct {
	Duplicates []scanner.DuplicateSet `json:"duplicates"`
}

func writeJSON(w io.Writer, r *scanner.Report) error {
	doc := jsonReport{Duplicates: r.Sets}
	if doc.Duplicates == nil {
		doc.Duplicates = []scanner.DuplicateSet{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
