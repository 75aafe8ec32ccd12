package rules

import (
	"strings"

	"github.com/rotisserie/eris"

	"github.com/teman-edu/advisor-cli/internal/model"
)

var catalogRequiredColumns = []string{"university_id", "name"}

// LoadCatalog reads a university catalog table (XLSX or CSV) into an
// immutable catalog, last write winning on duplicate university_id.
func LoadCatalog(path string, opts Options) (*model.Catalog, error) {
	rows, err := readTable(path, opts)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("rules: %s has no header row", path)
	}

	h := buildHeader(rows[0])
	var missing []string
	for _, col := range catalogRequiredColumns {
		if _, ok := h[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, eris.Errorf("rules: %s missing required columns: %s", path, strings.Join(missing, ", "))
	}

	var entries []model.University
	for i, cells := range rows[1:] {
		if allBlank(cells) {
			continue
		}
		rec := h.record(cells)
		if rec["university_id"] == "" {
			return nil, eris.Errorf("rules: %s row %d: empty university_id", path, i+2)
		}
		if rec["name"] == "" {
			return nil, eris.Errorf("rules: %s row %d: empty name", path, i+2)
		}
		entries = append(entries, model.University{
			UniversityID:  rec["university_id"],
			Name:          rec["name"],
			Country:       rec["country"],
			ProgramLevels: splitList(rec["program_levels"]),
			FieldTags:     model.NormalizeTags(splitList(rec["field_tags"])),
			TuitionText:   rec["tuition_text"],
		})
	}
	if len(entries) == 0 {
		return nil, eris.Errorf("rules: %s contains no universities", path)
	}
	return model.NewCatalog(entries), nil
}
