package engine

import (
	"fmt"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// Segment is the placement of one bar segment.
type Segment struct {
	Pos      mgl32.Vec2
	Aperture mgl32.Vec2
}

// DotBar is a bar of NumSegments random-dot segments laid end to end.
type DotBar struct {
	FieldSize      float32
	SegmentLength  float32
	SegmentWidth   float32
	SegmentOffsets [NumSegments]float32

	dots    DotParams
	refresh float32
	rng     *rand.Rand
	stims   []*RandomDotMotion
}

func NewDotBar(p *Params, refresh float32, rng *rand.Rand) *DotBar {
	unit := p.FieldSize / NumSegments
	b := &DotBar{
		FieldSize:     p.FieldSize,
		SegmentLength: unit - p.BarSegmentGap,
		SegmentWidth:  p.BarWidth,
		dots: DotParams{
			Size:     p.DotSize,
			Color:    p.DotColor,
			Density:  p.DotDensity,
			Speed:    p.DotSpeed,
			Interval: p.DotInterval,
		},
		refresh: refresh,
		rng:     rng,
	}
	edges := Linspace(-1, 1, NumSegments+1)
	for i := range b.SegmentOffsets {
		b.SegmentOffsets[i] = edges[i]*p.FieldSize/2 + unit/2
	}
	return b
}

// Layout computes segment placements for a bar of orientation ori at
// normalized position relPos in [-1, 1].
func (b *DotBar) Layout(ori Orientation, relPos float32) ([NumSegments]Segment, error) {
	var segs [NumSegments]Segment
	across := relPos * b.FieldSize / 2
	for i, off := range b.SegmentOffsets {
		switch ori {
		case Vertical:
			segs[i] = Segment{
				Pos:      mgl32.Vec2{across, off},
				Aperture: mgl32.Vec2{b.SegmentWidth, b.SegmentLength},
			}
		case Horizontal:
			segs[i] = Segment{
				Pos:      mgl32.Vec2{off, across},
				Aperture: mgl32.Vec2{b.SegmentLength, b.SegmentWidth},
			}
		default:
			return segs, fmt.Errorf("%w: %q", ErrInvalidOrientation, ori)
		}
	}
	return segs, nil
}

// SetPosition rebuilds the segment stimuli at a new placement. On error the
// bar is left as it was.
func (b *DotBar) SetPosition(ori Orientation, relPos float32) error {
	segs, err := b.Layout(ori, relPos)
	if err != nil {
		return err
	}
	stims := make([]*RandomDotMotion, len(segs))
	for i, seg := range segs {
		stims[i] = NewRandomDotMotion(seg.Pos, seg.Aperture, b.dots, b.refresh, b.rng)
	}
	b.stims = stims
	return nil
}

func (b *DotBar) Segments() []*RandomDotMotion {
	return b.stims
}

func (b *DotBar) Reset() {
	for _, s := range b.stims {
		s.Reset()
	}
}

func (b *DotBar) Update(dirs [NumSegments]float64, coh float32) {
	for i, s := range b.stims {
		s.Update(dirs[i], coh)
	}
}

func (b *DotBar) Draw(d Display) {
	for _, s := range b.stims {
		s.Draw(d)
	}
}
