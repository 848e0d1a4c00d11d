package render

import "testing"

func TestNiceAxisBounds(t *testing.T) {
	a, b := niceAxisBounds(0, 97)
	if a > 0 {
		t.Fatalf("lower bound should not exceed data min: got %v", a)
	}
	if b < 97 {
		t.Fatalf("upper bound should cover data max: got %v", b)
	}
	a, b = niceAxisBounds(5, 5)
	if b <= a {
		t.Fatalf("degenerate span must expand: got [%v,%v]", a, b)
	}
}

func TestNiceTicksCoverRange(t *testing.T) {
	ticks := niceTicks(0, 100, 6)
	if len(ticks) < 2 {
		t.Fatalf("expected at least 2 ticks, got %d", len(ticks))
	}
	if ticks[0].Value > 0 {
		t.Fatalf("first tick %v should not exceed range min", ticks[0].Value)
	}
	last := ticks[len(ticks)-1].Value
	if last < 100 {
		t.Fatalf("last tick %v should cover range max", last)
	}
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Value <= ticks[i-1].Value {
			t.Fatalf("ticks not strictly increasing at %d", i)
		}
	}
}

func TestFormatTick(t *testing.T) {
	if got := formatTick(0); got != "0" {
		t.Fatalf("formatTick(0) = %q", got)
	}
	if got := formatTick(1870); got != "1870" {
		t.Fatalf("formatTick(1870) = %q", got)
	}
	if got := formatTick(2.5); got != "2.5" {
		t.Fatalf("formatTick(2.5) = %q", got)
	}
}

func TestDecadeTicksPadsSingleBucket(t *testing.T) {
	ticks := decadeTicks([]int{1870})
	if len(ticks) != 2 {
		t.Fatalf("expected padded pair, got %d ticks", len(ticks))
	}
	if ticks[1].Value != 1880 {
		t.Fatalf("pad tick should sit one decade out, got %v", ticks[1].Value)
	}
	ticks = decadeTicks([]int{1870, 1880, 1890})
	if len(ticks) != 3 {
		t.Fatalf("expected 3 ticks, got %d", len(ticks))
	}
	if ticks[0].Label != "1870" {
		t.Fatalf("unexpected label %q", ticks[0].Label)
	}
}
