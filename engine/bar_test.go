package engine

import (
	"errors"
	"testing"
)

func TestSegmentOffsets(t *testing.T) {
	p := DefaultParams()
	p.FieldSize = 20
	p.BarSegmentGap = 0
	b := NewDotBar(p, 60, testRand())

	want := [NumSegments]float32{-20.0 / 3, 0, 20.0 / 3}
	for i := range want {
		if !approx(b.SegmentOffsets[i], want[i]) {
			t.Errorf("offset %d = %v, want %v", i, b.SegmentOffsets[i], want[i])
		}
	}
	if !approx(b.SegmentLength, 20.0/3) {
		t.Errorf("segment length = %v", b.SegmentLength)
	}
}

func TestSegmentOffsetsSymmetric(t *testing.T) {
	for _, fs := range []float32{1, 12, 24, 37.5} {
		p := DefaultParams()
		p.FieldSize = fs
		p.BarSegmentGap = 0.1
		b := NewDotBar(p, 60, testRand())
		off := b.SegmentOffsets
		if !approx(off[0], -off[2]) || !approx(off[1], 0) {
			t.Errorf("field %v: offsets %v not symmetric", fs, off)
		}
		if !(off[0] < off[1] && off[1] < off[2]) {
			t.Errorf("field %v: offsets %v not increasing", fs, off)
		}
	}
}

func TestSetPosition(t *testing.T) {
	p := DefaultParams()
	p.FieldSize = 20
	p.BarSegmentGap = 1
	p.BarWidth = 2
	b := NewDotBar(p, 60, testRand())

	if err := b.SetPosition(Vertical, 0); err != nil {
		t.Fatal(err)
	}
	for i, s := range b.Segments() {
		if s.Pos.X() != 0 || !approx(s.Pos.Y(), b.SegmentOffsets[i]) {
			t.Errorf("vertical segment %d at %v", i, s.Pos)
		}
		if s.Aperture.X() != b.SegmentWidth || s.Aperture.Y() != b.SegmentLength {
			t.Errorf("vertical segment %d aperture %v", i, s.Aperture)
		}
	}

	if err := b.SetPosition(Horizontal, 1); err != nil {
		t.Fatal(err)
	}
	for i, s := range b.Segments() {
		if s.Pos.Y() != 10 || !approx(s.Pos.X(), b.SegmentOffsets[i]) {
			t.Errorf("horizontal segment %d at %v", i, s.Pos)
		}
		if s.Aperture.X() != b.SegmentLength || s.Aperture.Y() != b.SegmentWidth {
			t.Errorf("horizontal segment %d aperture %v", i, s.Aperture)
		}
	}
}

func TestSetPositionInvalidOrientation(t *testing.T) {
	b := NewDotBar(DefaultParams(), 60, testRand())
	if err := b.SetPosition(Vertical, 0.5); err != nil {
		t.Fatal(err)
	}
	before := b.Segments()

	err := b.SetPosition("x", 0)
	if !errors.Is(err, ErrInvalidOrientation) {
		t.Fatalf("err = %v, want ErrInvalidOrientation", err)
	}
	after := b.Segments()
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("segment %d replaced after a failed SetPosition", i)
		}
	}
}

func TestBarUpdatePairsDirections(t *testing.T) {
	p := DefaultParams()
	p.DotInterval = 1
	b := NewDotBar(p, 60, testRand())
	if err := b.SetPosition(Horizontal, 0); err != nil {
		t.Fatal(err)
	}

	before := make([][]float32, NumSegments)
	for i, s := range b.Segments() {
		for _, d := range s.Dots() {
			before[i] = append(before[i], d.X())
		}
	}
	// Full coherence, rightward for segment 0 and leftward for the others.
	b.Update([NumSegments]float64{0, 180, 180}, 1)
	for i, s := range b.Segments() {
		moved := 0
		for j, d := range s.Dots() {
			if d.X() != before[i][j] {
				moved++
			}
		}
		if moved == 0 {
			t.Errorf("segment %d: no dot moved", i)
		}
	}
}
