package dataset

// NationalityAll is the sentinel that disables nationality filtering.
const NationalityAll = "all"

// FilterByYear returns the records matching year exactly, or every record
// with a year at or before it when cumulative is set. Records without a
// usable creation year never match.
func FilterByYear(records []PhotoRecord, year int, cumulative bool) []PhotoRecord {
	out := make([]PhotoRecord, 0, len(records))
	for _, r := range records {
		if !r.HasYear() {
			continue
		}
		if cumulative {
			if r.CreationYear <= year {
				out = append(out, r)
			}
		} else if r.CreationYear == year {
			out = append(out, r)
		}
	}
	return out
}

// FilterByNationality keeps records whose parsed nationality set contains
// the target. The "all" sentinel (or empty string) returns the input as-is.
func FilterByNationality(records []PhotoRecord, nationality string) []PhotoRecord {
	if nationality == "" || nationality == NationalityAll {
		return records
	}
	out := make([]PhotoRecord, 0, len(records))
	for _, r := range records {
		for _, n := range ParseNationalities(r.RawNationality) {
			if n == nationality {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// YearRange reports the smallest and largest creation year observed.
// ok is false when no record carries a year.
func YearRange(records []PhotoRecord) (min, max int, ok bool) {
	for _, r := range records {
		if !r.HasYear() {
			continue
		}
		if !ok || r.CreationYear < min {
			min = r.CreationYear
		}
		if !ok || r.CreationYear > max {
			max = r.CreationYear
		}
		ok = true
	}
	return min, max, ok
}
