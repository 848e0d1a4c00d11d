package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// buildCSV assembles dataset CSV content from compact row specs. Each row
// sets the listed categories present (sentinel "1.0") with the given percent.
type testRow struct {
	id      int
	artist  string
	origin  string
	gender  string
	year    string
	present map[Category]float64
}

func buildCSV(rows []testRow) string {
	var b strings.Builder
	b.WriteString("object_id,artist_name,origin,gender,creation_year,works_in_museum,work_type")
	for c := 0; c < NumCategories; c++ {
		b.WriteString(",has_" + Category(c).String() + "," + Category(c).String() + "_percent")
	}
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(strings.Join([]string{
			strconv.Itoa(r.id), r.artist, r.origin, r.gender, r.year, "10", "Photograph",
		}, ","))
		for c := 0; c < NumCategories; c++ {
			if pct, ok := r.present[Category(c)]; ok {
				b.WriteString(",1.0,")
				if pct > 0 {
					b.WriteString(strconv.FormatFloat(pct, 'f', -1, 64))
				}
			} else {
				b.WriteString(",,")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "final_dataset.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeCSV(t, buildCSV([]testRow{
		{id: 1, artist: "A. Adams", origin: "American", gender: "male", year: "1870",
			present: map[Category]float64{CatPerson: 40, CatTree: 12.5}},
		{id: 2, artist: "B. Brady", origin: "American", gender: "male", year: "1880",
			present: map[Category]float64{CatTree: 30}},
	}))
	recs, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records got %d", len(recs))
	}
	r := recs[0]
	if r.ObjectID != 1 || r.CreationYear != 1870 || !r.Has(CatPerson) || !r.Has(CatTree) {
		t.Fatalf("unexpected first record: %+v", r)
	}
	if r.Has(CatDog) {
		t.Fatalf("absent flag parsed as present")
	}
	if r.Percent[CatPerson] != 40 {
		t.Fatalf("percent not parsed: %v", r.Percent[CatPerson])
	}
	if got := r.ActiveCategories(); len(got) != 2 {
		t.Fatalf("active categories: %v", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := writeCSV(t, "object_id,artist_name\n1,x\n")
	_, err := Load(path)
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad for missing header, got %v", err)
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	content := buildCSV([]testRow{
		{id: 1, artist: "A", origin: "French", gender: "female", year: "1900",
			present: map[Category]float64{CatPerson: 10}},
	})
	// Append a row with a non-numeric object_id; it must be skipped, not fatal.
	content += "notanid,B,German,male,1910,5,Photograph" + strings.Repeat(",,", NumCategories) + "\n"
	recs, err := Load(writeCSV(t, content))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected malformed row skipped, got %d records", len(recs))
	}
}

func TestLoadPresenceIsSourceOfTruth(t *testing.T) {
	// has_person set with empty percent: still present.
	recs, err := Load(writeCSV(t, buildCSV([]testRow{
		{id: 7, artist: "C", origin: "British", gender: "male", year: "1895",
			present: map[Category]float64{CatPerson: 0}},
	})))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !recs[0].Has(CatPerson) {
		t.Fatalf("presence flag with empty percent must remain present")
	}
	if recs[0].Percent[CatPerson] != 0 {
		t.Fatalf("empty percent must parse as 0")
	}
}

func TestLoadBadYearIsZero(t *testing.T) {
	recs, err := Load(writeCSV(t, buildCSV([]testRow{
		{id: 3, artist: "D", origin: "Dutch", gender: "unknown", year: "",
			present: map[Category]float64{CatBoat: 5}},
	})))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if recs[0].HasYear() {
		t.Fatalf("missing year must not report HasYear")
	}
}
