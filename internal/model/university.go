package model

// University is one institution entry in the catalog.
type University struct {
	UniversityID  string   `json:"university_id"`
	Name          string   `json:"name"`
	Country       string   `json:"country,omitempty"`
	ProgramLevels []string `json:"program_levels,omitempty"`
	FieldTags     []string `json:"field_tags,omitempty"`
	TuitionText   string   `json:"tuition_text,omitempty"`
}

// Catalog is an immutable set of universities keyed by id.
type Catalog struct {
	entries []University
	byID    map[string]int
}

// NewCatalog builds a catalog, last write winning on duplicate university_id.
func NewCatalog(entries []University) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(entries))}
	for _, u := range entries {
		if i, ok := c.byID[u.UniversityID]; ok {
			c.entries[i] = u
			continue
		}
		c.byID[u.UniversityID] = len(c.entries)
		c.entries = append(c.entries, u)
	}
	return c
}

// Get returns the university with the given id.
func (c *Catalog) Get(id string) (University, bool) {
	if c == nil {
		return University{}, false
	}
	i, ok := c.byID[id]
	if !ok {
		return University{}, false
	}
	return c.entries[i], true
}

// Len returns the number of universities.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Universities returns the entries in declaration order. Callers must not
// mutate the returned slice.
func (c *Catalog) Universities() []University {
	if c == nil {
		return nil
	}
	return c.entries
}
