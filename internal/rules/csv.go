package rules

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"
)

// readCSV returns every row of a CSV file as string slices, including the
// header row. Counselor exports are not always UTF-8; a non-empty charset
// names the source encoding and the reader transcodes on the fly.
func readCSV(path, charset string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "rules: open csv")
	}
	defer f.Close()

	var r io.Reader = f
	if charset != "" {
		enc, err := htmlindex.Get(charset)
		if err != nil {
			return nil, eris.Wrapf(err, "rules: unsupported charset %q", charset)
		}
		r = enc.NewDecoder().Reader(f)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "rules: parse csv")
	}
	return rows, nil
}
