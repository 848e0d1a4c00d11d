package dataset

// PhotoRecord is one row of the photograph dataset. The presence flags are
// the sole boolean source of truth for object detection; the percentage can
// be empty (zero) even when the flag is set.
type PhotoRecord struct {
	ObjectID       int
	ArtistName     string
	RawNationality string
	Gender         string
	CreationYear   int // 0 when missing or unparseable
	WorksInMuseum  int
	WorkType       string

	Present [NumCategories]bool
	Percent [NumCategories]float64
}

// Has reports whether the presence flag for c is set.
func (r *PhotoRecord) Has(c Category) bool {
	if c < 0 || int(c) >= NumCategories {
		return false
	}
	return r.Present[c]
}

// ActiveCategories returns the categories whose presence flag is set, in
// table order. Typical records have at most a handful.
func (r *PhotoRecord) ActiveCategories() []Category {
	var out []Category
	for i := 0; i < NumCategories; i++ {
		if r.Present[i] {
			out = append(out, Category(i))
		}
	}
	return out
}

// HasYear reports whether the record carries a usable creation year.
func (r *PhotoRecord) HasYear() bool { return r.CreationYear > 0 }
