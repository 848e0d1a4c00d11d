package aggregate

import (
	"math"
	"testing"

	"github.com/datapedalers/171project/src/dataset"
)

func rec(year int, cats ...dataset.Category) dataset.PhotoRecord {
	r := dataset.PhotoRecord{ObjectID: year*100 + len(cats), CreationYear: year}
	for _, c := range cats {
		r.Present[c] = true
	}
	return r
}

// The three-record scenario exercised across all aggregations:
// 1870: person+tree, 1870: person, 1880: tree.
func scenario() []dataset.PhotoRecord {
	return []dataset.PhotoRecord{
		rec(1870, dataset.CatPerson, dataset.CatTree),
		rec(1870, dataset.CatPerson),
		rec(1880, dataset.CatTree),
	}
}

func TestGroupCountsScenario(t *testing.T) {
	recs := dataset.FilterByYear(scenario(), 1870, false)
	counts := GroupCounts(recs, dataset.CategoryGroups)
	if counts["Person"] != 2 {
		t.Fatalf("Person = %d, want 2", counts["Person"])
	}
	if counts["Greenery"] != 1 {
		t.Fatalf("Greenery = %d, want 1", counts["Greenery"])
	}
	for _, g := range dataset.CategoryGroups {
		if g.Label == "Person" || g.Label == "Greenery" {
			continue
		}
		if counts[g.Label] != 0 {
			t.Fatalf("%s = %d, want 0", g.Label, counts[g.Label])
		}
	}
	// every group count bounded by the filtered record count
	for label, c := range counts {
		if c > len(recs) {
			t.Fatalf("group %s count %d exceeds record count %d", label, c, len(recs))
		}
	}
}

func TestGroupCountsOncePerGroup(t *testing.T) {
	// tree and grass are both Greenery; the record counts once.
	recs := []dataset.PhotoRecord{rec(1900, dataset.CatTree, dataset.CatGrass)}
	counts := GroupCounts(recs, dataset.CategoryGroups)
	if counts["Greenery"] != 1 {
		t.Fatalf("two member flags must count once, got %d", counts["Greenery"])
	}
}

func TestGroupPercentages(t *testing.T) {
	pcts := GroupPercentages(map[string]int{"a": 3, "b": 1})
	if math.Abs(pcts["a"]-75) > 1e-9 || math.Abs(pcts["b"]-25) > 1e-9 {
		t.Fatalf("unexpected shares: %v", pcts)
	}
	sum := 0.0
	for _, v := range pcts {
		sum += v
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Fatalf("shares must sum to 100, got %v", sum)
	}
	// zero denominator: exactly 0, never NaN
	for label, v := range GroupPercentages(map[string]int{"a": 0, "b": 0}) {
		if v != 0 {
			t.Fatalf("zero-sum share for %s = %v, want 0", label, v)
		}
	}
}

func TestCooccurrenceScenario(t *testing.T) {
	m := NewCooccurrence(dataset.FilterByYear(scenario(), 1870, false))
	if got := m.Count(dataset.CatPerson, dataset.CatTree); got != 1 {
		t.Fatalf("count(person,tree) = %d, want 1", got)
	}
	if m.Count(dataset.CatPerson, dataset.CatTree) != m.Count(dataset.CatTree, dataset.CatPerson) {
		t.Fatalf("matrix must be symmetric")
	}
	if m.Count(dataset.CatPerson, dataset.CatPerson) != 0 {
		t.Fatalf("diagonal must be excluded")
	}
	if m.Frequency(dataset.CatPerson) != 2 || m.Frequency(dataset.CatTree) != 1 {
		t.Fatalf("frequencies: person=%d tree=%d", m.Frequency(dataset.CatPerson), m.Frequency(dataset.CatTree))
	}
	if m.MaxFrequency() != 2 {
		t.Fatalf("max frequency = %d, want 2", m.MaxFrequency())
	}
}

func TestCooccurrenceSymmetryFull(t *testing.T) {
	recs := []dataset.PhotoRecord{
		rec(1900, dataset.CatPerson, dataset.CatTree, dataset.CatBuilding),
		rec(1901, dataset.CatTree, dataset.CatBuilding),
		rec(1902, dataset.CatPerson, dataset.CatBuilding),
	}
	m := NewCooccurrence(recs)
	for a := 0; a < dataset.NumCategories; a++ {
		for b := 0; b < dataset.NumCategories; b++ {
			ca, cb := dataset.Category(a), dataset.Category(b)
			if m.Count(ca, cb) != m.Count(cb, ca) {
				t.Fatalf("asymmetry at (%v,%v)", ca, cb)
			}
		}
	}
	if got := m.Count(dataset.CatTree, dataset.CatBuilding); got != 2 {
		t.Fatalf("count(tree,building) = %d, want 2", got)
	}
}

func TestPairsThreshold(t *testing.T) {
	recs := []dataset.PhotoRecord{}
	for i := 0; i < 5; i++ {
		recs = append(recs, rec(1900+i, dataset.CatPerson, dataset.CatTree))
	}
	recs = append(recs, rec(1910, dataset.CatPerson, dataset.CatBoat))
	m := NewCooccurrence(recs)
	pairs := m.Pairs(5)
	if len(pairs) != 1 {
		t.Fatalf("expected 1 pair at threshold 5, got %d", len(pairs))
	}
	if pairs[0].A != dataset.CatPerson || pairs[0].B != dataset.CatTree || pairs[0].Count != 5 {
		t.Fatalf("unexpected pair: %+v", pairs[0])
	}
}

func TestTopCategories(t *testing.T) {
	recs := []dataset.PhotoRecord{
		rec(1900, dataset.CatPerson, dataset.CatTree),
		rec(1901, dataset.CatPerson),
		rec(1902, dataset.CatBoat),
	}
	m := NewCooccurrence(recs)
	top := m.TopCategories(2)
	if len(top) != 2 || top[0] != dataset.CatPerson {
		t.Fatalf("unexpected top categories: %v", top)
	}
	// asking for more than exist returns only nonzero-frequency categories
	if got := m.TopCategories(10); len(got) != 3 {
		t.Fatalf("expected 3 nonzero categories, got %d", len(got))
	}
}

func TestTimelineSeriesScenario(t *testing.T) {
	series := TimelineSeries(scenario(), []dataset.Category{dataset.CatPerson}, false)
	if len(series) != 2 {
		t.Fatalf("expected 2 buckets, got %d", len(series))
	}
	if series[0].Decade != 1870 || series[0].Values[dataset.CatPerson] != 2 {
		t.Fatalf("1870 bucket wrong: %+v", series[0])
	}
	// 1880 bucket exists (a tree record lives there) with person zero-filled
	if series[1].Decade != 1880 || series[1].Values[dataset.CatPerson] != 0 {
		t.Fatalf("1880 bucket wrong: %+v", series[1])
	}
}

func TestTimelineSeriesMonotoneAndBounded(t *testing.T) {
	recs := []dataset.PhotoRecord{
		rec(1955, dataset.CatCar),
		rec(1871, dataset.CatPerson),
		rec(1830, dataset.CatPerson), // below DecadeMin, dropped
		rec(2024, dataset.CatPerson), // above DecadeMax, dropped
		rec(1902, dataset.CatTree),
	}
	series := TimelineSeries(recs, []dataset.Category{dataset.CatPerson}, false)
	if len(series) != 3 {
		t.Fatalf("expected 3 buckets, got %d", len(series))
	}
	for i, b := range series {
		if b.Decade < DecadeMin || b.Decade > DecadeMax {
			t.Fatalf("decade %d out of range", b.Decade)
		}
		if i > 0 && series[i-1].Decade >= b.Decade {
			t.Fatalf("decades not strictly increasing: %d then %d", series[i-1].Decade, b.Decade)
		}
	}
}

func TestTimelineSeriesPercent(t *testing.T) {
	recs := []dataset.PhotoRecord{
		rec(1870, dataset.CatPerson),
		rec(1871, dataset.CatPerson),
		rec(1872, dataset.CatTree),
		rec(1873),
	}
	series := TimelineSeries(recs, []dataset.Category{dataset.CatPerson}, true)
	if len(series) != 1 {
		t.Fatalf("expected 1 bucket, got %d", len(series))
	}
	if got := series[0].Values[dataset.CatPerson]; math.Abs(got-50) > 1e-9 {
		t.Fatalf("percent = %v, want 50", got)
	}
}
