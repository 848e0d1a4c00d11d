// Met photograph explorer CLI entrypoint.
//
// Two modes:
//  1. Report mode (default): load the photograph CSV, compute the dataset
//     statistics (gender, nationality, artist, temporal and object coverage
//     distributions) and write them as CSV reports into --out-dir.
//  2. Chart mode (--charts): additionally render the four views (mosaic,
//     co-occurrence network, streamgraph, timeline) as PNG files, plus SVG
//     exports of the mosaic and the network.
//
// Defaults come from an optional explorer.yaml (override the path with
// MET_CONFIG) plus MET_* environment overrides; flags win over both.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
	"github.com/datapedalers/171project/src/layout"
	"github.com/datapedalers/171project/src/render"
)

// config holds the CLI defaults that can come from explorer.yaml or MET_*
// environment variables.
type config struct {
	Dataset     string `koanf:"dataset"`
	OutDir      string `koanf:"out_dir"`
	ChartWidth  int    `koanf:"chart_width"`
	ChartHeight int    `koanf:"chart_height"`
	MinEdge     int    `koanf:"min_edge"`
	TopN        int    `koanf:"top_n"`
	LogLevel    string `koanf:"log_level"`
}

func defaultConfig() config {
	return config{
		Dataset:     "met_photography_dataset.csv",
		OutDir:      "reports",
		ChartWidth:  1000,
		ChartHeight: 700,
		MinEdge:     render.MinEdgeCount,
		TopN:        0,
		LogLevel:    "info",
	}
}

// loadConfig overlays the YAML file (if present) and MET_* environment
// variables onto the built-in defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	k := koanf.New(".")
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return cfg, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return cfg, fmt.Errorf("accessing config %s: %w", path, err)
	}
	if err := k.Load(env.Provider("MET_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "MET_"))
	}), nil); err != nil {
		return cfg, fmt.Errorf("loading env overrides: %w", err)
	}
	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("unmarshalling config: %w", err)
	}
	return cfg, nil
}

func main() {
	configPath := os.Getenv("MET_CONFIG")
	if configPath == "" {
		configPath = "explorer.yaml"
	}
	base, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	datasetPath := flag.String("dataset", base.Dataset, "Path to the photograph CSV")
	outDir := flag.String("out-dir", base.OutDir, "Directory for CSV reports and chart exports")
	charts := flag.Bool("charts", false, "Also render the four views as PNG/SVG files")
	chartW := flag.Int("chart-width", base.ChartWidth, "Chart width in pixels")
	chartH := flag.Int("chart-height", base.ChartHeight, "Chart height in pixels")
	minEdge := flag.Int("min-edge", base.MinEdge, "Minimum co-occurrence count for a network edge")
	topN := flag.Int("top-n", base.TopN, "If >0 restrict the network to the N most frequent objects")
	percent := flag.Bool("percent", false, "Use per-decade percentages instead of counts in chart exports")
	logLevel := flag.String("log-level", base.LogLevel, "Log level (debug|info|warn|error)")
	flag.Parse()

	dataset.SetLogLevel(*logLevel)

	records, err := dataset.Load(*datasetPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
		os.Exit(1)
	}
	dataset.Infof("loaded %d records from %s", len(records), *datasetPath)

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "out dir: %v\n", err)
		os.Exit(1)
	}
	if err := writeReports(*outDir, records); err != nil {
		fmt.Fprintf(os.Stderr, "reports: %v\n", err)
		os.Exit(1)
	}
	if *charts {
		if err := writeCharts(*outDir, records, *chartW, *chartH, *minEdge, *topN, *percent); err != nil {
			fmt.Fprintf(os.Stderr, "charts: %v\n", err)
			os.Exit(1)
		}
	}
}

// writeCSV writes one report file with a header row.
func writeCSV(dir, name string, header []string, rows [][]string) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	dataset.Debugf("wrote %s (%d rows)", path, len(rows))
	return nil
}

func labelCountRows(rows []aggregate.LabelCount, withPercent bool) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		row := []string{r.Label, strconv.Itoa(r.Count)}
		if withPercent {
			row = append(row, fmt.Sprintf("%.2f", r.Percent))
		}
		out = append(out, row)
	}
	return out
}

// writeReports emits the full set of dataset statistics as CSV files.
func writeReports(dir string, records []dataset.PhotoRecord) error {
	defer dataset.TimeTrack(time.Now(), "writeReports")

	s := aggregate.Summarize(records)
	if err := writeCSV(dir, "summary.csv",
		[]string{"metric", "value"},
		[][]string{
			{"total_records", strconv.Itoa(s.TotalRecords)},
			{"unique_artists", strconv.Itoa(s.UniqueArtists)},
			{"unique_objects", strconv.Itoa(s.UniqueObjects)},
			{"year_min", strconv.Itoa(s.YearMin)},
			{"year_max", strconv.Itoa(s.YearMax)},
			{"records_without_year", strconv.Itoa(s.RecordsNoYear)},
			{"avg_works_in_museum", fmt.Sprintf("%.2f", s.AvgWorksInMet)},
			{"gender_known_pct", fmt.Sprintf("%.2f", s.GenderKnownPct)},
		}); err != nil {
		return err
	}

	if err := writeCSV(dir, "gender.csv", []string{"gender", "count", "percent"},
		labelCountRows(aggregate.GenderDistribution(records), true)); err != nil {
		return err
	}
	if err := writeCSV(dir, "nationalities.csv", []string{"nationality", "count"},
		labelCountRows(aggregate.NationalityCounts(records), false)); err != nil {
		return err
	}
	if err := writeCSV(dir, "artists.csv", []string{"artist", "count"},
		labelCountRows(aggregate.ArtistCounts(records), false)); err != nil {
		return err
	}
	if err := writeCSV(dir, "work_types.csv", []string{"work_type", "count", "percent"},
		labelCountRows(aggregate.WorkTypeDistribution(records), true)); err != nil {
		return err
	}
	if err := writeCSV(dir, "object_appearances.csv", []string{"object", "count", "percent"},
		labelCountRows(aggregate.ObjectAppearances(records), true)); err != nil {
		return err
	}

	var decadeRows [][]string
	for _, b := range aggregate.DecadeCounts(records) {
		decadeRows = append(decadeRows, []string{strconv.Itoa(b.Decade), strconv.Itoa(b.Total)})
	}
	if err := writeCSV(dir, "decades.csv", []string{"decade", "count"}, decadeRows); err != nil {
		return err
	}

	var covRows [][]string
	for _, c := range aggregate.CoverageStats(records) {
		covRows = append(covRows, []string{
			c.Category.String(),
			fmt.Sprintf("%.2f", c.Mean),
			fmt.Sprintf("%.2f", c.Median),
			fmt.Sprintf("%.2f", c.Max),
			strconv.Itoa(c.Count),
		})
	}
	if err := writeCSV(dir, "coverage.csv",
		[]string{"object", "mean_pct", "median_pct", "max_pct", "count"}, covRows); err != nil {
		return err
	}

	var groupRows [][]string
	counts := aggregate.GroupCounts(records, dataset.CategoryGroups)
	for _, g := range dataset.CategoryGroups {
		groupRows = append(groupRows, []string{g.Label, strconv.Itoa(counts[g.Label])})
	}
	return writeCSV(dir, "groups.csv", []string{"group", "count"}, groupRows)
}

func savePNG(dir, name string, img image.Image) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	dataset.Infof("wrote %s", path)
	return nil
}

// writeCharts renders the four views over the whole dataset and saves them.
func writeCharts(dir string, records []dataset.PhotoRecord, w, h, minEdge, topN int, percent bool) error {
	defer dataset.TimeTrack(time.Now(), "writeCharts")

	// Mosaic: group distribution over the full dataset.
	counts := aggregate.GroupCounts(records, dataset.CategoryGroups)
	leaves := make([]layout.Leaf, 0, len(dataset.CategoryGroups))
	if percent {
		shares := aggregate.GroupPercentages(counts)
		for _, g := range dataset.CategoryGroups {
			leaves = append(leaves, layout.Leaf{Label: g.Label, Value: shares[g.Label]})
		}
	} else {
		for _, g := range dataset.CategoryGroups {
			leaves = append(leaves, layout.Leaf{Label: g.Label, Value: float64(counts[g.Label])})
		}
	}
	tiles := layout.Squarify(leaves, layout.Rect{W: float64(w), H: float64(h)})
	if err := savePNG(dir, "mosaic.png", render.RenderTreemap(tiles, percent, w, h)); err != nil {
		return err
	}

	// Network at converged positions.
	matrix := aggregate.NewCooccurrence(records)
	net := render.BuildNetwork(matrix, topN, minEdge)
	sim := render.LayoutNetwork(net, w, h)
	if err := savePNG(dir, "network.png", render.RenderNetwork(sim, net, w, h)); err != nil {
		return err
	}

	// Timeline views over the most frequent categories.
	cats := matrix.TopCategories(5)
	buckets := aggregate.TimelineSeries(records, cats, percent)
	if err := savePNG(dir, "streamgraph.png", render.RenderStreamgraph(buckets, cats, w, h)); err != nil {
		return err
	}
	if err := savePNG(dir, "timeline.png", render.RenderTimeline(buckets, cats, percent, w, h)); err != nil {
		return err
	}

	// SVG exports for the scalable views.
	if err := saveSVG(dir, "mosaic.svg", func(f *os.File) {
		render.TreemapSVG(f, tiles, percent, w, h)
	}); err != nil {
		return err
	}
	return saveSVG(dir, "network.svg", func(f *os.File) {
		render.NetworkSVG(f, sim, net, w, h)
	})
}

func saveSVG(dir, name string, write func(*os.File)) error {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	write(f)
	dataset.Infof("wrote %s", path)
	return nil
}
