package main

import (
	"testing"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
	"github.com/datapedalers/171project/src/viewstate"
)

func photoRec(id, year int, origin string, cats ...dataset.Category) dataset.PhotoRecord {
	r := dataset.PhotoRecord{ObjectID: id, CreationYear: year, RawNationality: origin}
	for _, c := range cats {
		r.Present[c] = true
	}
	return r
}

func mustLoad(t *testing.T, path string) []dataset.PhotoRecord {
	t.Helper()
	records, err := dataset.Load(path)
	if err != nil {
		t.Fatalf("load %s: %v", path, err)
	}
	return records
}

func TestTruncatePath(t *testing.T) {
	if got := truncatePath("/short/path.csv", 60); got != "/short/path.csv" {
		t.Fatalf("short path altered: %q", got)
	}
	long := "/a/very/long/directory/chain/that/never/seems/to/end/photos.csv"
	got := truncatePath(long, 30)
	if len(got) > 34 {
		t.Fatalf("truncated path still too long: %q", got)
	}
	if got == long {
		t.Fatalf("long path not truncated")
	}
}

func TestAnnotateDisabled(t *testing.T) {
	opts := []string{"all", "French", "British"}
	out := annotateDisabled(opts, []string{"French"})
	if out[1] != "French"+disabledSuffix {
		t.Fatalf("disabled option not annotated: %q", out[1])
	}
	if out[0] != "all" || out[2] != "British" {
		t.Fatalf("other options altered: %v", out)
	}
	if len(out) != len(opts) {
		t.Fatalf("option list length changed")
	}
	same := annotateDisabled(opts, nil)
	if &same[0] != &opts[0] {
		t.Fatalf("no-disable case should return the input slice")
	}
}

func TestPanelBucketsIndependent(t *testing.T) {
	st := &uiState{
		records: []dataset.PhotoRecord{
			photoRec(1, 1870, "French", dataset.CatPerson),
			photoRec(2, 1880, "British", dataset.CatBoat),
		},
		state: viewstate.NewState(1840, 2020),
	}
	st.state.NationalityA = "French"
	st.state.NationalityB = "British"
	cats := []dataset.Category{dataset.CatPerson, dataset.CatBoat}

	a := panelBuckets(st, st.state.NationalityA, cats)
	if len(a) != 1 || a[0].Decade != 1870 || a[0].Values[dataset.CatPerson] != 1 {
		t.Fatalf("panel A must hold only the French record: %+v", a)
	}
	if a[0].Values[dataset.CatBoat] != 0 {
		t.Fatalf("British boat leaked into panel A: %+v", a)
	}
	b := panelBuckets(st, st.state.NationalityB, cats)
	if len(b) != 1 || b[0].Decade != 1880 || b[0].Values[dataset.CatBoat] != 1 {
		t.Fatalf("panel B must hold only the British record: %+v", b)
	}
}

func TestSliderBounds(t *testing.T) {
	lo, hi := sliderBounds([]dataset.PhotoRecord{
		photoRec(1, 1830, ""),
		photoRec(2, 2024, ""),
	})
	if lo != 1830 || hi != 2024 {
		t.Fatalf("observed range must win over decade bounds: got %d..%d", lo, hi)
	}
	lo, hi = sliderBounds(nil)
	if lo != aggregate.DecadeMin || hi != aggregate.DecadeMax {
		t.Fatalf("no-year fallback: got %d..%d", lo, hi)
	}
}

func TestGroupMatchesEnumeratesAll(t *testing.T) {
	var recs []dataset.PhotoRecord
	for i := 1; i <= 9; i++ {
		recs = append(recs, photoRec(i, 1870, "", dataset.CatPerson))
	}
	recs = append(recs, photoRec(99, 1870, "", dataset.CatTree))
	if got := groupMatches(recs, "Person"); len(got) != 9 {
		t.Fatalf("expected all 9 person records, got %d", len(got))
	}
	if got := groupMatches(recs, "Greenery"); len(got) != 1 {
		t.Fatalf("greenery: expected 1 record, got %d", len(got))
	}
	if got := groupMatches(recs, "nope"); got != nil {
		t.Fatalf("unknown group must match nothing, got %v", got)
	}
}
