package engine

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newTestDots(interval int) *RandomDotMotion {
	dp := DotParams{Size: 3, Color: White, Density: 5, Speed: 6, Interval: interval}
	return NewRandomDotMotion(mgl32.Vec2{2, -1}, mgl32.Vec2{4, 2}, dp, 60, testRand())
}

func inAperture(s *RandomDotMotion, d mgl32.Vec2) bool {
	rel := d.Sub(s.Pos)
	return math.Abs(float64(rel.X())) <= float64(s.Aperture.X())/2+1e-4 &&
		math.Abs(float64(rel.Y())) <= float64(s.Aperture.Y())/2+1e-4
}

func TestRandomDotMotionCount(t *testing.T) {
	s := newTestDots(3)
	if s.NumDots() != 40 {
		t.Errorf("NumDots() = %d, want 40", s.NumDots())
	}
	if n := len(s.Dots()); n < 13 || n > 14 {
		t.Errorf("visible set has %d dots", n)
	}
}

func TestRandomDotMotionStaysInAperture(t *testing.T) {
	s := newTestDots(3)
	for frame := 0; frame < 200; frame++ {
		s.Update(float64(frame%4)*90, 0.5)
		for _, d := range s.Dots() {
			if !inAperture(s, d) {
				t.Fatalf("frame %d: dot %v outside aperture at %v size %v", frame, d, s.Pos, s.Aperture)
			}
		}
	}
}

func TestRandomDotMotionCoherentStep(t *testing.T) {
	s := newTestDots(1)
	before := s.Dots()
	s.Update(90, 1)
	after := s.Dots()

	step := s.Params.Speed / 60
	for i := range before {
		dy := after[i].Y() - before[i].Y()
		wrapped := dy + s.Aperture.Y()
		if !approx(dy, step) && !approx(wrapped, step) {
			t.Errorf("dot %d moved by %v, want %v upward", i, dy, step)
		}
		if !approx(after[i].X(), before[i].X()) {
			t.Errorf("dot %d moved sideways: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestRandomDotMotionResetRestartsSets(t *testing.T) {
	s := newTestDots(3)
	s.Update(0, 0.5)
	s.Update(0, 0.5)
	s.Reset()
	if s.cur != 0 {
		t.Errorf("cur = %d after Reset", s.cur)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct{ v, size, want float32 }{
		{0, 2, 0},
		{1.5, 2, -0.5},
		{-1.5, 2, 0.5},
		{0.9, 2, 0.9},
	}
	for _, tt := range tests {
		if got := wrap(tt.v, tt.size); !approx(got, tt.want) {
			t.Errorf("wrap(%v, %v) = %v, want %v", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestMonitorToPixels(t *testing.T) {
	m := Monitor{WidthCM: 50, DistanceCM: 57, WidthPx: 1000, HeightPx: 800}
	ppd := m.PixelsPerDegree()
	if ppd < 19.8 || ppd > 20.1 {
		t.Errorf("PixelsPerDegree() = %v, want about 19.9", ppd)
	}
	if c := m.ToPixels(mgl32.Vec2{}); c != (mgl32.Vec2{500, 400}) {
		t.Errorf("center maps to %v", c)
	}
	up := m.ToPixels(mgl32.Vec2{0, 1})
	if !approx(up.Y(), 400-ppd) || up.X() != 500 {
		t.Errorf("one degree up maps to %v", up)
	}
}

func TestMonitorWithSize(t *testing.T) {
	m := Monitor{WidthCM: 50, DistanceCM: 57, WidthPx: 1920, HeightPx: 1080}
	native := m.WithSize(3840, 2160)
	if !approx(native.PixelsPerDegree(), 2*m.PixelsPerDegree()) {
		t.Errorf("px/deg %v at 3840 wide, want %v", native.PixelsPerDegree(), 2*m.PixelsPerDegree())
	}
	if c := native.ToPixels(mgl32.Vec2{}); c != (mgl32.Vec2{1920, 1080}) {
		t.Errorf("center maps to %v", c)
	}
	if same := m.WithSize(0, 0); same != m {
		t.Errorf("zero size changed monitor to %+v", same)
	}
}

func TestSelectDisplay(t *testing.T) {
	displays := []uint32{11, 12}
	if id, err := selectDisplay(displays, 1); err != nil || id != 12 {
		t.Errorf("selectDisplay(1) = %v, %v", id, err)
	}
	for _, idx := range []int{-1, 2} {
		if _, err := selectDisplay(displays, idx); err == nil {
			t.Errorf("selectDisplay(%d) accepted", idx)
		}
	}
}
