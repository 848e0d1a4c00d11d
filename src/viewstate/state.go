// Package viewstate models the viewer's filter controls as an immutable
// value plus a pure reducer. Widgets dispatch events; the reducer returns
// the next state (or the unchanged state with an error), and the caller
// re-renders from whatever it gets back. No widget reads another widget.
package viewstate

import (
	"errors"
	"fmt"

	"github.com/datapedalers/171project/src/dataset"
)

// MaxSelectedCategories bounds the timeline selection so the palette and
// legend stay readable.
const MaxSelectedCategories = 5

// ErrSelectionLimit is returned when a sixth category selection is
// attempted. The state is returned unchanged.
var ErrSelectionLimit = errors.New("category selection limit reached")

// State is the complete filter state. It is a value type: Apply never
// mutates its input, so stale captures in widget callbacks stay valid.
type State struct {
	Year       int
	MinYear    int
	MaxYear    int
	Cumulative bool
	Percent    bool
	TopTen     bool

	// Selected categories for the timeline views, in selection order.
	Selected []dataset.Category

	// The two nationality panels. dataset.NationalityAll means no filter.
	NationalityA string
	NationalityB string
}

// NewState returns the initial state for a dataset spanning [minYear,
// maxYear]. Both nationality panels start unfiltered and the year slider
// starts at the upper end so the mosaic opens on the full cumulative view.
func NewState(minYear, maxYear int) State {
	if maxYear < minYear {
		maxYear = minYear
	}
	return State{
		Year:         maxYear,
		MinYear:      minYear,
		MaxYear:      maxYear,
		Cumulative:   true,
		NationalityA: dataset.NationalityAll,
		NationalityB: dataset.NationalityAll,
	}
}

// Panel identifies one of the two nationality filters.
type Panel int

const (
	PanelA Panel = iota
	PanelB
)

// Event is a marker for reducer inputs.
type Event interface{ isEvent() }

type SetYear struct{ Year int }

type ToggleCumulative struct{}

type TogglePercent struct{}

type ToggleTopTen struct{}

type SelectCategory struct{ Category dataset.Category }

type DeselectCategory struct{ Category dataset.Category }

type SetNationality struct {
	Panel Panel
	Value string
}

func (SetYear) isEvent()          {}
func (ToggleCumulative) isEvent() {}
func (TogglePercent) isEvent()    {}
func (ToggleTopTen) isEvent()     {}
func (SelectCategory) isEvent()   {}
func (DeselectCategory) isEvent() {}
func (SetNationality) isEvent()   {}

// Apply reduces one event into the next state. On error the returned state
// equals the input state.
func Apply(s State, ev Event) (State, error) {
	switch e := ev.(type) {
	case SetYear:
		y := e.Year
		if y < s.MinYear {
			y = s.MinYear
		}
		if y > s.MaxYear {
			y = s.MaxYear
		}
		s.Year = y
	case ToggleCumulative:
		s.Cumulative = !s.Cumulative
	case TogglePercent:
		s.Percent = !s.Percent
	case ToggleTopTen:
		s.TopTen = !s.TopTen
	case SelectCategory:
		if s.IsSelected(e.Category) {
			return s, nil
		}
		if len(s.Selected) >= MaxSelectedCategories {
			return s, ErrSelectionLimit
		}
		next := make([]dataset.Category, len(s.Selected), len(s.Selected)+1)
		copy(next, s.Selected)
		s.Selected = append(next, e.Category)
	case DeselectCategory:
		next := make([]dataset.Category, 0, len(s.Selected))
		for _, c := range s.Selected {
			if c != e.Category {
				next = append(next, c)
			}
		}
		s.Selected = next
	case SetNationality:
		v := e.Value
		if v == "" {
			v = dataset.NationalityAll
		}
		switch e.Panel {
		case PanelA:
			s.NationalityA = v
		case PanelB:
			s.NationalityB = v
		default:
			return s, fmt.Errorf("unknown nationality panel %d", e.Panel)
		}
	default:
		return s, fmt.Errorf("unknown event %T", ev)
	}
	return s, nil
}

// IsSelected reports whether the category is in the current selection.
func (s State) IsSelected(c dataset.Category) bool {
	for _, sel := range s.Selected {
		if sel == c {
			return true
		}
	}
	return false
}

// DisabledNationalities returns the option that must be shown disabled in
// the given panel: the value picked in the other panel, unless that value
// is the unfiltered sentinel.
func (s State) DisabledNationalities(p Panel) []string {
	other := s.NationalityB
	if p == PanelB {
		other = s.NationalityA
	}
	if other == dataset.NationalityAll {
		return nil
	}
	return []string{other}
}

// Nationalities returns the active nationality filters, excluding the
// unfiltered sentinel. The result feeds dataset.FilterByNationality once
// per panel; records matching either panel are kept.
func (s State) Nationalities() []string {
	var out []string
	if s.NationalityA != dataset.NationalityAll {
		out = append(out, s.NationalityA)
	}
	if s.NationalityB != dataset.NationalityAll && s.NationalityB != s.NationalityA {
		out = append(out, s.NationalityB)
	}
	return out
}
