package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrLoad wraps every failure to read or parse the dataset file. Callers
// match it with errors.Is and degrade to a placeholder view instead of
// crashing.
var ErrLoad = errors.New("dataset load failed")

// presenceSentinel is the literal the detection pipeline writes into
// has_<object> columns; anything else (usually empty) means absent.
const presenceSentinel = "1.0"

var requiredColumns = []string{
	"object_id", "artist_name", "origin", "gender",
	"creation_year", "works_in_museum", "work_type",
}

// Load reads the dataset CSV at path. Column order is discovered from the
// header row; the has_<object>/<object>_percent pairs are matched against
// the fixed category table. Malformed data rows are skipped with a warning
// rather than aborting the load; a missing file or header is terminal.
func Load(path string) ([]PhotoRecord, error) {
	defer TimeTrack(time.Now(), "dataset load")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()
	return LoadReader(f, path)
}

// LoadReader parses dataset CSV content from r. name is used in messages only.
func LoadReader(r io.Reader, name string) ([]PhotoRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // row width validated against the header below
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading header of %s: %v", ErrLoad, name, err)
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, want := range requiredColumns {
		if _, ok := col[want]; !ok {
			return nil, fmt.Errorf("%w: %s is missing required column %q", ErrLoad, name, want)
		}
	}
	// Resolve per-category column indexes once; -1 means the column is absent.
	var hasCol, pctCol [NumCategories]int
	for c := 0; c < NumCategories; c++ {
		hasCol[c], pctCol[c] = -1, -1
		if i, ok := col["has_"+categoryNames[c]]; ok {
			hasCol[c] = i
		}
		if i, ok := col[categoryNames[c]+"_percent"]; ok {
			pctCol[c] = i
		}
	}

	var records []PhotoRecord
	var skipped int
	// Per-category data-quality counters: percent>0 without the presence
	// flag, and flag set with an empty percent. Neither is repaired; the
	// flag stays the source of truth.
	var pctWithoutFlag, flagWithoutPct [NumCategories]int
	line := 1
	for {
		row, rerr := cr.Read()
		line++
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			Warnf("%s line %d: %v (row skipped)", name, line, rerr)
			skipped++
			continue
		}
		get := func(name string) string {
			i := col[name]
			if i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}
		id, err := strconv.Atoi(get("object_id"))
		if err != nil {
			Warnf("%s line %d: bad object_id %q (row skipped)", name, line, get("object_id"))
			skipped++
			continue
		}
		rec := PhotoRecord{
			ObjectID:       id,
			ArtistName:     get("artist_name"),
			RawNationality: get("origin"),
			Gender:         strings.ToLower(get("gender")),
			WorkType:       get("work_type"),
		}
		if y, err := strconv.Atoi(get("creation_year")); err == nil {
			rec.CreationYear = y
		} else if v, err := strconv.ParseFloat(get("creation_year"), 64); err == nil {
			rec.CreationYear = int(v)
		}
		if n, err := strconv.Atoi(get("works_in_museum")); err == nil {
			rec.WorksInMuseum = n
		}
		for c := 0; c < NumCategories; c++ {
			if i := hasCol[c]; i >= 0 && i < len(row) {
				rec.Present[c] = strings.TrimSpace(row[i]) == presenceSentinel
			}
			if i := pctCol[c]; i >= 0 && i < len(row) {
				if s := strings.TrimSpace(row[i]); s != "" {
					if v, err := strconv.ParseFloat(s, 64); err == nil {
						rec.Percent[c] = v
					}
				}
			}
			if rec.Percent[c] > 0 && !rec.Present[c] {
				pctWithoutFlag[c]++
			}
			if rec.Present[c] && rec.Percent[c] == 0 {
				flagWithoutPct[c]++
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s contains no usable rows", ErrLoad, name)
	}
	for c := 0; c < NumCategories; c++ {
		if pctWithoutFlag[c] > 0 {
			Warnf("data quality: %d rows have %s_percent > 0 without has_%s set", pctWithoutFlag[c], categoryNames[c], categoryNames[c])
		}
		if flagWithoutPct[c] > 0 {
			Debugf("data quality: %d rows have has_%s set with empty percent", flagWithoutPct[c], categoryNames[c])
		}
	}
	if skipped > 0 {
		Warnf("%s: skipped %d malformed rows, kept %d", name, skipped, len(records))
	} else {
		Infof("%s: loaded %d records", name, len(records))
	}
	return records, nil
}
