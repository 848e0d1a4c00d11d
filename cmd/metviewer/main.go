package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/datapedalers/171project/src/aggregate"
	"github.com/datapedalers/171project/src/dataset"
	"github.com/datapedalers/171project/src/layout"
	"github.com/datapedalers/171project/src/render"
	"github.com/datapedalers/171project/src/viewstate"
)

type uiState struct {
	app       fyne.App
	window    fyne.Window
	filePath  string
	imagesDir string

	records       []dataset.PhotoRecord
	state         viewstate.State
	nationalities []string

	// widgets
	mosaicCanvas   *canvas.Image
	networkCanvas  *canvas.Image
	streamCanvas   *canvas.Image
	timelineCanvas *canvas.Image
	mosaicOverlay  *drilldownOverlay
	yearSlider     *widget.Slider
	yearLabel      *widget.Label
	natASelect     *widget.Select
	natBSelect     *widget.Select
	catChecks      map[dataset.Category]*widget.Check
	countLabel     *widget.Label

	networkOverlay *dragOverlay

	// last mosaic geometry, for tap hit-testing
	tiles   []layout.Tile
	mosaicW int
	mosaicH int

	// live network simulation, for node dragging
	sim  *layout.Sim
	net  render.Network
	netW int
	netH int
}

// dark theme wrapper
type darkTheme struct{}

func (d *darkTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}
func (d *darkTheme) Font(style fyne.TextStyle) fyne.Resource { return theme.DefaultTheme().Font(style) }
func (d *darkTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}
func (d *darkTheme) Size(name fyne.ThemeSizeName) float32 { return theme.DefaultTheme().Size(name) }

func main() {
	var fileFlag, imagesFlag, logLevel string
	var screenshotsDir string
	var shotW, shotH int
	flag.StringVar(&fileFlag, "file", "", "Path to the photograph CSV")
	flag.StringVar(&imagesFlag, "images", "", "Directory with <object_id>.jpg thumbnails")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug|info|warn|error)")
	flag.StringVar(&screenshotsDir, "screenshots", "", "Render all views headlessly into this directory and exit")
	flag.IntVar(&shotW, "screenshot-width", 1200, "Headless render width")
	flag.IntVar(&shotH, "screenshot-height", 800, "Headless render height")
	flag.Parse()

	dataset.SetLogLevel(logLevel)

	if screenshotsDir != "" {
		if err := RunScreenshotsMode(fileFlag, screenshotsDir, shotW, shotH); err != nil {
			fmt.Fprintf(os.Stderr, "screenshots: %v\n", err)
			os.Exit(1)
		}
		return
	}

	a := app.NewWithID("com.datapedalers.metviewer")
	a.Settings().SetTheme(&darkTheme{})
	w := a.NewWindow("Met Photograph Explorer")
	w.Resize(fyne.NewSize(1200, 850))

	state := &uiState{
		app:       a,
		window:    w,
		filePath:  fileFlag,
		imagesDir: imagesFlag,
		state:     viewstate.NewState(aggregate.DecadeMin, aggregate.DecadeMax),
		catChecks: map[dataset.Category]*widget.Check{},
	}

	fileLabel := widget.NewLabel(truncatePath(state.filePath, 60))

	// chart placeholders; real images arrive after the first load
	state.mosaicCanvas = newChartCanvas()
	state.networkCanvas = newChartCanvas()
	state.streamCanvas = newChartCanvas()
	state.timelineCanvas = newChartCanvas()
	state.mosaicOverlay = newDrilldownOverlay(state)
	state.networkOverlay = newDragOverlay(state)

	// year slider + readout
	state.yearLabel = widget.NewLabel(strconv.Itoa(state.state.Year))
	state.yearSlider = widget.NewSlider(float64(state.state.MinYear), float64(state.state.MaxYear))
	state.yearSlider.Step = 1
	state.yearSlider.Value = float64(state.state.Year)
	state.yearSlider.OnChanged = func(v float64) {
		dispatch(state, viewstate.SetYear{Year: int(v)})
	}

	cumulativeChk := widget.NewCheck("Cumulative", func(b bool) {
		if b != state.state.Cumulative {
			dispatch(state, viewstate.ToggleCumulative{})
		}
	})
	cumulativeChk.SetChecked(state.state.Cumulative)
	percentChk := widget.NewCheck("Percent", func(b bool) {
		if b != state.state.Percent {
			dispatch(state, viewstate.TogglePercent{})
		}
	})
	topTenChk := widget.NewCheck("Top 10 objects", func(b bool) {
		if b != state.state.TopTen {
			dispatch(state, viewstate.ToggleTopTen{})
		}
	})

	// the two nationality panels; each pick disables that option in the other
	state.natASelect = widget.NewSelect([]string{dataset.NationalityAll}, func(v string) {
		if strings.HasSuffix(v, disabledSuffix) {
			// already active in the other panel; snap back
			state.natASelect.SetSelected(state.state.NationalityA)
			return
		}
		dispatch(state, viewstate.SetNationality{Panel: viewstate.PanelA, Value: v})
		refreshNationalityOptions(state)
	})
	state.natBSelect = widget.NewSelect([]string{dataset.NationalityAll}, func(v string) {
		if strings.HasSuffix(v, disabledSuffix) {
			state.natBSelect.SetSelected(state.state.NationalityB)
			return
		}
		dispatch(state, viewstate.SetNationality{Panel: viewstate.PanelB, Value: v})
		refreshNationalityOptions(state)
	})
	state.natASelect.PlaceHolder = "All"
	state.natBSelect.PlaceHolder = "All"

	// category checklist for the timeline views
	catColumn := container.NewVBox()
	for _, c := range dataset.Categories() {
		c := c
		chk := widget.NewCheck(c.String(), func(b bool) {
			if b {
				dispatch(state, viewstate.SelectCategory{Category: c})
				// the reducer may have refused; sync the box with the state
				if !state.state.IsSelected(c) {
					state.catChecks[c].SetChecked(false)
				}
			} else {
				dispatch(state, viewstate.DeselectCategory{Category: c})
			}
		})
		state.catChecks[c] = chk
		catColumn.Add(chk)
	}
	catScroll := container.NewVScroll(catColumn)
	catScroll.SetMinSize(fyne.NewSize(180, 500))

	state.countLabel = widget.NewLabel("")

	top := container.NewHBox(
		widget.NewButton("Open…", func() { openFileDialog(state, fileLabel) }),
		widget.NewButton("Reload", func() { loadAll(state, fileLabel) }),
		widget.NewLabel("Year:"), state.yearLabel,
		cumulativeChk, percentChk, topTenChk,
		widget.NewLabel("Nationality:"), state.natASelect, state.natBSelect,
		state.countLabel,
		widget.NewLabel("File:"), fileLabel,
	)

	state.mosaicCanvas.SetMinSize(fyne.NewSize(900, 600))
	state.networkCanvas.SetMinSize(fyne.NewSize(900, 600))
	state.streamCanvas.SetMinSize(fyne.NewSize(900, 600))
	state.timelineCanvas.SetMinSize(fyne.NewSize(900, 600))

	tabs := container.NewAppTabs(
		container.NewTabItem("Mosaic", container.NewStack(state.mosaicCanvas, state.mosaicOverlay)),
		container.NewTabItem("Network", container.NewStack(state.networkCanvas, state.networkOverlay)),
		container.NewTabItem("Streamgraph", state.streamCanvas),
		container.NewTabItem("Timeline", state.timelineCanvas),
	)
	tabs.SetTabLocation(container.TabLocationTop)
	tabs.OnSelected = func(ti *container.TabItem) {
		state.app.Preferences().SetInt("selectedTabIndex", tabs.SelectedIndex())
	}

	side := container.NewBorder(widget.NewLabel("Objects (max 5):"), nil, nil, nil, catScroll)
	content := container.NewBorder(
		container.NewVBox(top, state.yearSlider), nil, side, nil, tabs)
	w.SetContent(content)

	buildMenus(state, fileLabel)
	if canv := w.Canvas(); canv != nil {
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { openFileDialog(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { loadAll(state, fileLabel) })
		canv.AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyW, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) { state.window.Close() })
	}

	loadPrefs(state, fileLabel, cumulativeChk, percentChk, topTenChk, tabs)
	w.SetOnClosed(func() { savePrefs(state) })

	if state.filePath != "" {
		loadAll(state, fileLabel)
	}
	w.ShowAndRun()
}

func newChartCanvas() *canvas.Image {
	c := canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 100, 60)))
	c.FillMode = canvas.ImageFillContain
	return c
}

const maxRecentFiles = 5

func recentFiles(state *uiState) []string {
	var out []string
	for _, p := range strings.Split(state.app.Preferences().StringWithFallback("recentFiles", ""), "\n") {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func rememberRecent(state *uiState, path string) {
	list := []string{path}
	for _, p := range recentFiles(state) {
		if p != path && len(list) < maxRecentFiles {
			list = append(list, p)
		}
	}
	state.app.Preferences().SetString("recentFiles", strings.Join(list, "\n"))
}

// buildMenus rebuilds the main menu; called again after each load so the
// recent-files list stays current.
func buildMenus(state *uiState, fileLabel *widget.Label) {
	items := []*fyne.MenuItem{
		fyne.NewMenuItem("Open…", func() { openFileDialog(state, fileLabel) }),
		fyne.NewMenuItem("Reload", func() { loadAll(state, fileLabel) }),
	}
	if recent := recentFiles(state); len(recent) > 0 {
		sub := make([]*fyne.MenuItem, 0, len(recent))
		for _, p := range recent {
			p := p
			sub = append(sub, fyne.NewMenuItem(truncatePath(p, 50), func() {
				state.filePath = p
				fileLabel.SetText(truncatePath(p, 60))
				loadAll(state, fileLabel)
			}))
		}
		openRecent := fyne.NewMenuItem("Open Recent", nil)
		openRecent.ChildMenu = fyne.NewMenu("", sub...)
		items = append(items, openRecent)
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export charts…", func() { exportCharts(state) }),
	)
	state.window.SetMainMenu(fyne.NewMainMenu(fyne.NewMenu("File", items...)))
}

// dispatch runs one event through the reducer and re-renders. A refused
// selection surfaces as a warning dialog; the state is untouched.
func dispatch(state *uiState, ev viewstate.Event) {
	next, err := viewstate.Apply(state.state, ev)
	if err != nil {
		if errors.Is(err, viewstate.ErrSelectionLimit) {
			dialog.ShowInformation("Selection limit",
				fmt.Sprintf("At most %d objects can be compared at once. Deselect one first.", viewstate.MaxSelectedCategories),
				state.window)
		} else {
			dataset.Errorf("dispatch: %v", err)
		}
		return
	}
	state.state = next
	state.yearLabel.SetText(strconv.Itoa(state.state.Year))
	savePrefs(state)
	redrawCharts(state)
}

func openFileDialog(state *uiState, fileLabel *widget.Label) {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		state.filePath = rc.URI().Path()
		fileLabel.SetText(truncatePath(state.filePath, 60))
		loadAll(state, fileLabel)
	}, state.window)
	fd.Show()
}

// loadAll reads the CSV and rebuilds every control that depends on the data:
// the year slider range, the nationality options and the charts.
func loadAll(state *uiState, fileLabel *widget.Label) {
	records, err := dataset.Load(state.filePath)
	if err != nil {
		dialog.ShowError(fmt.Errorf("loading %s: %w", state.filePath, err), state.window)
		return
	}
	state.records = records
	state.nationalities = dataset.UniqueNationalities(records)
	fileLabel.SetText(truncatePath(state.filePath, 60))
	rememberRecent(state, state.filePath)
	buildMenus(state, fileLabel)

	minYear, maxYear := sliderBounds(records)
	prev := state.state
	state.state = viewstate.NewState(minYear, maxYear)
	// carry the toggles and selection across reloads; the year re-clamps
	state.state.Cumulative = prev.Cumulative
	state.state.Percent = prev.Percent
	state.state.TopTen = prev.TopTen
	state.state.Selected = prev.Selected
	state.state, _ = viewstate.Apply(state.state, viewstate.SetYear{Year: prev.Year})

	state.yearSlider.Min = float64(minYear)
	state.yearSlider.Max = float64(maxYear)
	state.yearSlider.Value = float64(state.state.Year)
	state.yearSlider.Refresh()
	state.yearLabel.SetText(strconv.Itoa(state.state.Year))

	refreshNationalityOptions(state)
	savePrefs(state)
	redrawCharts(state)
}

// refreshNationalityOptions rebuilds both panels' option lists. The pick
// made in one panel stays visible but marked in the other, and picking the
// marked entry is rejected by the callback.
func refreshNationalityOptions(state *uiState) {
	opts := append([]string{dataset.NationalityAll}, state.nationalities...)
	state.natASelect.Options = annotateDisabled(opts, state.state.DisabledNationalities(viewstate.PanelA))
	state.natBSelect.Options = annotateDisabled(opts, state.state.DisabledNationalities(viewstate.PanelB))
	state.natASelect.Refresh()
	state.natBSelect.Refresh()
}

const disabledSuffix = " (in other panel)"

// annotateDisabled marks cross-panel picks instead of removing them, so the
// option list length is stable while the user flips between panels.
func annotateDisabled(opts, disabled []string) []string {
	if len(disabled) == 0 {
		return opts
	}
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o
		for _, d := range disabled {
			if o == d {
				out[i] = o + disabledSuffix
			}
		}
	}
	return out
}

// sliderBounds returns the observed year range of the dataset. The timeline
// decade bounds only serve as a fallback when no record carries a usable
// year; out-of-decade records stay reachable for the mosaic and network.
func sliderBounds(records []dataset.PhotoRecord) (int, int) {
	if lo, hi, ok := dataset.YearRange(records); ok {
		return lo, hi
	}
	return aggregate.DecadeMin, aggregate.DecadeMax
}

// yearRecords applies the year filter to the loaded record set. The mosaic,
// network and drill-down views see every nationality; the two timeline
// panels narrow further via panelBuckets.
func yearRecords(state *uiState) []dataset.PhotoRecord {
	return dataset.FilterByYear(state.records, state.state.Year, state.state.Cumulative)
}

// panelBuckets builds the decade series for one timeline panel by applying
// that panel's own nationality pick on top of the year filter, so the two
// panels can show different nationalities side by side.
func panelBuckets(state *uiState, nat string, cats []dataset.Category) []aggregate.TimelineBucket {
	recs := dataset.FilterByNationality(yearRecords(state), nat)
	return aggregate.TimelineSeries(recs, cats, state.state.Percent)
}

// timelineCategories returns the categories driving the stream and line
// views: the explicit selection, or the five most frequent when nothing is
// selected yet.
func timelineCategories(state *uiState, matrix *aggregate.Cooccurrence) []dataset.Category {
	if len(state.state.Selected) > 0 {
		return state.state.Selected
	}
	return matrix.TopCategories(viewstate.MaxSelectedCategories)
}

func redrawCharts(state *uiState) {
	if state.records == nil {
		return
	}
	recs := yearRecords(state)
	state.countLabel.SetText(fmt.Sprintf("%d photographs", len(recs)))
	w, h := chartSize(state)

	// Mosaic over the curated groups.
	counts := aggregate.GroupCounts(recs, dataset.CategoryGroups)
	leaves := make([]layout.Leaf, 0, len(dataset.CategoryGroups))
	if state.state.Percent {
		shares := aggregate.GroupPercentages(counts)
		for _, g := range dataset.CategoryGroups {
			leaves = append(leaves, layout.Leaf{Label: g.Label, Value: shares[g.Label]})
		}
	} else {
		for _, g := range dataset.CategoryGroups {
			leaves = append(leaves, layout.Leaf{Label: g.Label, Value: float64(counts[g.Label])})
		}
	}
	state.tiles = layout.Squarify(leaves, layout.Rect{W: float64(w), H: float64(h)})
	state.mosaicW, state.mosaicH = w, h
	state.mosaicCanvas.Image = render.Hint(
		render.RenderTreemap(state.tiles, state.state.Percent, w, h),
		"Click a tile to see sample photographs")
	state.mosaicCanvas.Refresh()

	// Network; the top-10 toggle narrows nodes without recomputing the matrix.
	matrix := aggregate.NewCooccurrence(recs)
	topN := 0
	if state.state.TopTen {
		topN = render.TopNDefault
	}
	state.net = render.BuildNetwork(matrix, topN, render.MinEdgeCount)
	state.sim = render.LayoutNetwork(state.net, w, h)
	state.netW, state.netH = w, h
	redrawNetwork(state)

	// Each timeline panel filters by its own nationality pick.
	cats := timelineCategories(state, matrix)
	state.streamCanvas.Image = render.RenderStreamgraph(
		panelBuckets(state, state.state.NationalityA, cats), cats, w, h)
	state.streamCanvas.Refresh()
	state.timelineCanvas.Image = render.RenderTimeline(
		panelBuckets(state, state.state.NationalityB, cats), cats, state.state.Percent, w, h)
	state.timelineCanvas.Refresh()
}

// redrawNetwork re-renders the network at the simulation's current node
// positions, without recomputing the layout. Dragging calls this per frame.
func redrawNetwork(state *uiState) {
	if state.sim == nil {
		return
	}
	img := render.RenderNetwork(state.sim, state.net, state.netW, state.netH)
	state.networkCanvas.Image = render.Hint(img, "Drag a node to pin it; the rest of the graph follows")
	state.networkCanvas.Refresh()
}

func chartSize(state *uiState) (int, int) {
	w, h := 1000, 660
	if state.window != nil && state.window.Canvas() != nil {
		sz := state.window.Canvas().Size()
		if int(sz.Width) > 400 {
			w = int(sz.Width) - 220
		}
		if int(sz.Height) > 300 {
			h = int(sz.Height) - 180
		}
	}
	return w, h
}

// exportCharts saves the four current chart images as PNGs next to the CSV.
func exportCharts(state *uiState) {
	if state.records == nil {
		dialog.ShowInformation("Export", "Load a dataset first.", state.window)
		return
	}
	dir := filepath.Dir(state.filePath)
	views := []struct {
		name string
		img  image.Image
	}{
		{"mosaic.png", state.mosaicCanvas.Image},
		{"network.png", state.networkCanvas.Image},
		{"streamgraph.png", state.streamCanvas.Image},
		{"timeline.png", state.timelineCanvas.Image},
	}
	for _, v := range views {
		if v.img == nil {
			continue
		}
		if err := writePNG(filepath.Join(dir, v.name), v.img); err != nil {
			dialog.ShowError(err, state.window)
			return
		}
	}
	dialog.ShowInformation("Export", "Charts written to "+dir, state.window)
}

func savePrefs(state *uiState) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	prefs.SetString("lastFile", state.filePath)
	prefs.SetInt("year", state.state.Year)
	prefs.SetBool("cumulative", state.state.Cumulative)
	prefs.SetBool("percent", state.state.Percent)
	prefs.SetBool("topTen", state.state.TopTen)
	prefs.SetString("nationalityA", state.state.NationalityA)
	prefs.SetString("nationalityB", state.state.NationalityB)
	sel := make([]string, 0, len(state.state.Selected))
	for _, c := range state.state.Selected {
		sel = append(sel, c.String())
	}
	prefs.SetString("selected", strings.Join(sel, ","))
}

func loadPrefs(state *uiState, fileLabel *widget.Label, cumulative, percent, topTen *widget.Check, tabs *container.AppTabs) {
	if state == nil || state.app == nil {
		return
	}
	prefs := state.app.Preferences()
	if f := prefs.StringWithFallback("lastFile", state.filePath); f != "" {
		state.filePath = f
		fileLabel.SetText(truncatePath(state.filePath, 60))
	}
	state.state.Cumulative = prefs.BoolWithFallback("cumulative", state.state.Cumulative)
	state.state.Percent = prefs.BoolWithFallback("percent", state.state.Percent)
	state.state.TopTen = prefs.BoolWithFallback("topTen", state.state.TopTen)
	cumulative.SetChecked(state.state.Cumulative)
	percent.SetChecked(state.state.Percent)
	topTen.SetChecked(state.state.TopTen)
	state.state.NationalityA = prefs.StringWithFallback("nationalityA", state.state.NationalityA)
	state.state.NationalityB = prefs.StringWithFallback("nationalityB", state.state.NationalityB)
	if y := prefs.IntWithFallback("year", state.state.Year); y > 0 {
		state.state, _ = viewstate.Apply(state.state, viewstate.SetYear{Year: y})
	}
	if s := prefs.StringWithFallback("selected", ""); s != "" {
		for _, name := range strings.Split(s, ",") {
			if c, ok := dataset.CategoryByName(name); ok {
				state.state, _ = viewstate.Apply(state.state, viewstate.SelectCategory{Category: c})
				if chk := state.catChecks[c]; chk != nil {
					chk.SetChecked(true)
				}
			}
		}
	}
	if tabs != nil {
		idx := prefs.IntWithFallback("selectedTabIndex", 0)
		if idx >= 0 && idx < len(tabs.Items) {
			tabs.SelectIndex(idx)
		}
	}
}

// utils
func truncatePath(p string, n int) string {
	if len(p) <= n {
		return p
	}
	base := filepath.Base(p)
	if len(base)+4 >= n {
		return "..." + base
	}
	dir := filepath.Dir(p)
	left := n - len(base) - 4
	if left <= 0 {
		return "..." + base
	}
	if len(dir) > left {
		dir = dir[:left]
	}
	return dir + "/..." + base
}
