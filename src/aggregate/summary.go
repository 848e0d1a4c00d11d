package aggregate

import (
	"sort"
	"strings"

	"github.com/aclements/go-moremath/stats"

	"github.com/datapedalers/171project/src/dataset"
)

// This file reproduces the offline dataset statistics (gender, nationality,
// artist, temporal and coverage distributions) so the CLI can emit them as
// CSV reports alongside the interactive views.

// LabelCount is a generic label/count/percentage row, sorted by the caller.
type LabelCount struct {
	Label   string
	Count   int
	Percent float64
}

// GenderDistribution counts records per gender value, with share of total.
// Empty gender is reported as "unknown".
func GenderDistribution(records []dataset.PhotoRecord) []LabelCount {
	counts := map[string]int{}
	for _, r := range records {
		g := r.Gender
		if g == "" {
			g = "unknown"
		}
		counts[g]++
	}
	return toSortedRows(counts, len(records))
}

// NationalityCounts tallies parsed nationality tokens across all records.
// A record with several nationalities contributes to each.
func NationalityCounts(records []dataset.PhotoRecord) []LabelCount {
	counts := map[string]int{}
	for _, r := range records {
		for _, n := range dataset.ParseNationalities(r.RawNationality) {
			counts[n]++
		}
	}
	return toSortedRows(counts, 0)
}

// ArtistCounts tallies pipe-delimited artist names.
func ArtistCounts(records []dataset.PhotoRecord) []LabelCount {
	counts := map[string]int{}
	for _, r := range records {
		for _, a := range splitPiped(r.ArtistName) {
			counts[a]++
		}
	}
	return toSortedRows(counts, 0)
}

// WorkTypeDistribution counts records per work type, with share of total.
func WorkTypeDistribution(records []dataset.PhotoRecord) []LabelCount {
	counts := map[string]int{}
	for _, r := range records {
		t := r.WorkType
		if t == "" {
			t = "(none)"
		}
		counts[t]++
	}
	return toSortedRows(counts, len(records))
}

// ObjectAppearances counts records per category presence flag, with share
// of total; categories never detected are omitted.
func ObjectAppearances(records []dataset.PhotoRecord) []LabelCount {
	counts := map[string]int{}
	for i := range records {
		for _, c := range records[i].ActiveCategories() {
			counts[c.String()]++
		}
	}
	return toSortedRows(counts, len(records))
}

// DecadeCounts returns record counts per decade ascending, using the same
// bucketing policy as TimelineSeries.
func DecadeCounts(records []dataset.PhotoRecord) []TimelineBucket {
	return TimelineSeries(records, nil, false)
}

// CoverageStat summarizes the area-percentage distribution of one category
// across the records where a percentage was recorded.
type CoverageStat struct {
	Category dataset.Category
	Mean     float64
	Median   float64
	Max      float64
	Count    int
}

// CoverageStats computes mean/median/max area percentages per category,
// sorted by mean descending. Categories with no recorded percentages are
// omitted.
func CoverageStats(records []dataset.PhotoRecord) []CoverageStat {
	var out []CoverageStat
	for c := 0; c < dataset.NumCategories; c++ {
		var vals []float64
		for i := range records {
			if v := records[i].Percent[c]; v > 0 {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		s := stats.Sample{Xs: vals}
		max := vals[0]
		for _, v := range vals[1:] {
			if v > max {
				max = v
			}
		}
		out = append(out, CoverageStat{
			Category: dataset.Category(c),
			Mean:     stats.Mean(vals),
			Median:   s.Quantile(0.5),
			Max:      max,
			Count:    len(vals),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mean > out[j].Mean })
	return out
}

// Summary is the overall dataset roll-up.
type Summary struct {
	TotalRecords   int
	UniqueArtists  int
	UniqueObjects  int
	YearMin        int
	YearMax        int
	RecordsNoYear  int
	AvgWorksInMet  float64
	GenderKnownPct float64
}

// Summarize computes the overall roll-up used by the report header.
func Summarize(records []dataset.PhotoRecord) Summary {
	s := Summary{TotalRecords: len(records)}
	artists := map[string]struct{}{}
	objects := map[int]struct{}{}
	var works []float64
	genderKnown := 0
	for _, r := range records {
		artists[r.ArtistName] = struct{}{}
		objects[r.ObjectID] = struct{}{}
		if r.WorksInMuseum > 0 {
			works = append(works, float64(r.WorksInMuseum))
		}
		if r.Gender == "male" || r.Gender == "female" {
			genderKnown++
		}
		if !r.HasYear() {
			s.RecordsNoYear++
		}
	}
	s.UniqueArtists = len(artists)
	s.UniqueObjects = len(objects)
	if min, max, ok := dataset.YearRange(records); ok {
		s.YearMin, s.YearMax = min, max
	}
	if len(works) > 0 {
		s.AvgWorksInMet = stats.Mean(works)
	}
	if len(records) > 0 {
		s.GenderKnownPct = float64(genderKnown) / float64(len(records)) * 100
	}
	return s
}

func splitPiped(s string) []string {
	var out []string
	for _, part := range strings.Split(s, "|") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// toSortedRows converts a count map to rows sorted by count descending then
// label ascending. total == 0 suppresses percentages (left at 0).
func toSortedRows(counts map[string]int, total int) []LabelCount {
	out := make([]LabelCount, 0, len(counts))
	for label, c := range counts {
		row := LabelCount{Label: label, Count: c}
		if total > 0 {
			row.Percent = float64(c) / float64(total) * 100
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}
