// Package aggregate derives the chart-facing views from the flat photograph
// record set: category-group counts for the treemap, the pairwise
// co-occurrence matrix for the network view, and per-decade timeline series.
// Everything here is a pure function over the immutable record slice; the
// viewer re-runs these on every control change instead of caching.
package aggregate

import (
	"math"
	"sort"

	"github.com/datapedalers/171project/src/dataset"
)

// GroupCounts counts, for every curated category group, the records with at
// least one member presence flag set. A record contributes at most once per
// group (first matching flag wins) but may contribute to several groups, so
// the counts are not mutually exclusive.
func GroupCounts(records []dataset.PhotoRecord, groups []dataset.CategoryGroup) map[string]int {
	counts := make(map[string]int, len(groups))
	for _, g := range groups {
		counts[g.Label] = 0
	}
	for i := range records {
		for _, g := range groups {
			for _, m := range g.Members {
				if records[i].Present[m] {
					counts[g.Label]++
					break
				}
			}
		}
	}
	return counts
}

// GroupPercentages converts group counts to shares of their sum. When the
// sum is zero every share is exactly 0; NaN and Inf never escape here.
func GroupPercentages(counts map[string]int) map[string]float64 {
	sum := 0
	for _, c := range counts {
		sum += c
	}
	out := make(map[string]float64, len(counts))
	for label, c := range counts {
		if sum == 0 {
			out[label] = 0
			continue
		}
		v := float64(c) / float64(sum) * 100
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		out[label] = v
	}
	return out
}

// Cooccurrence holds pairwise co-detection counts across the fixed category
// table plus per-category frequencies. Built in a single pass: each record
// contributes its active-category list and all unordered pairs within it.
type Cooccurrence struct {
	counts [dataset.NumCategories][dataset.NumCategories]int
	freq   [dataset.NumCategories]int
}

// NewCooccurrence builds the matrix for records.
func NewCooccurrence(records []dataset.PhotoRecord) *Cooccurrence {
	m := &Cooccurrence{}
	for i := range records {
		active := records[i].ActiveCategories()
		for _, c := range active {
			m.freq[c]++
		}
		for a := 0; a < len(active); a++ {
			for b := a + 1; b < len(active); b++ {
				m.counts[active[a]][active[b]]++
				m.counts[active[b]][active[a]]++
			}
		}
	}
	return m
}

// Count returns the number of records where both a and b were detected.
// The diagonal is excluded: Count(c, c) is always 0.
func (m *Cooccurrence) Count(a, b dataset.Category) int {
	if a == b || a < 0 || b < 0 || int(a) >= dataset.NumCategories || int(b) >= dataset.NumCategories {
		return 0
	}
	return m.counts[a][b]
}

// Frequency returns how many records had c detected at all.
func (m *Cooccurrence) Frequency(c dataset.Category) int {
	if c < 0 || int(c) >= dataset.NumCategories {
		return 0
	}
	return m.freq[c]
}

// MaxFrequency returns the largest per-category frequency (0 when empty).
func (m *Cooccurrence) MaxFrequency() int {
	max := 0
	for _, f := range m.freq {
		if f > max {
			max = f
		}
	}
	return max
}

// Pair is one unordered category pair with its co-occurrence count.
type Pair struct {
	A, B  dataset.Category
	Count int
}

// Pairs lists unordered pairs (A < B in table order) with Count >= minCount,
// in deterministic table order.
func (m *Cooccurrence) Pairs(minCount int) []Pair {
	if minCount < 1 {
		minCount = 1
	}
	var out []Pair
	for a := 0; a < dataset.NumCategories; a++ {
		for b := a + 1; b < dataset.NumCategories; b++ {
			if c := m.counts[a][b]; c >= minCount {
				out = append(out, Pair{A: dataset.Category(a), B: dataset.Category(b), Count: c})
			}
		}
	}
	return out
}

// TopCategories returns the n most frequent categories with nonzero
// frequency, ordered by frequency descending with table order breaking
// ties. Used by the network view's top-N display mode; the matrix itself is
// not recomputed.
func (m *Cooccurrence) TopCategories(n int) []dataset.Category {
	cats := make([]dataset.Category, 0, dataset.NumCategories)
	for c := 0; c < dataset.NumCategories; c++ {
		if m.freq[c] > 0 {
			cats = append(cats, dataset.Category(c))
		}
	}
	sort.SliceStable(cats, func(i, j int) bool { return m.freq[cats[i]] > m.freq[cats[j]] })
	if n > 0 && len(cats) > n {
		cats = cats[:n]
	}
	return cats
}

// Timeline decade bounds. Records outside this inclusive range are ignored
// by the timeline views (the dataset has a few implausible outlier years).
const (
	DecadeMin = 1840
	DecadeMax = 2020
)

// TimelineBucket is one decade of the timeline series. Values carries one
// entry per selected category: a raw count, or a percentage of Total in
// percent mode.
type TimelineBucket struct {
	Decade int
	Total  int
	Values map[dataset.Category]float64
}

// TimelineSeries groups records by decade (floor(year/10)*10) restricted to
// [DecadeMin, DecadeMax] and returns buckets ascending by decade. A bucket
// exists only when at least one record falls into its decade; within an
// existing bucket every selected category is zero-filled, so series never
// skip a decade that other categories populate.
func TimelineSeries(records []dataset.PhotoRecord, cats []dataset.Category, percent bool) []TimelineBucket {
	totals := map[int]int{}
	counts := map[int]map[dataset.Category]int{}
	for i := range records {
		r := &records[i]
		if !r.HasYear() {
			continue
		}
		decade := r.CreationYear / 10 * 10
		if decade < DecadeMin || decade > DecadeMax {
			continue
		}
		totals[decade]++
		for _, c := range cats {
			if r.Present[c] {
				if counts[decade] == nil {
					counts[decade] = map[dataset.Category]int{}
				}
				counts[decade][c]++
			}
		}
	}
	decades := make([]int, 0, len(totals))
	for d := range totals {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	out := make([]TimelineBucket, 0, len(decades))
	for _, d := range decades {
		b := TimelineBucket{Decade: d, Total: totals[d], Values: make(map[dataset.Category]float64, len(cats))}
		for _, c := range cats {
			n := counts[d][c]
			if percent {
				if b.Total == 0 {
					b.Values[c] = 0
				} else {
					b.Values[c] = float64(n) / float64(b.Total) * 100
				}
			} else {
				b.Values[c] = float64(n)
			}
		}
		out = append(out, b)
	}
	return out
}
