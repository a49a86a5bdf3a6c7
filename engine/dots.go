package engine

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

// DotParams are the appearance and motion settings shared by every
// RandomDotMotion in a bar.
type DotParams struct {
	Size     float32 // pixels
	Color    Color
	Density  float32 // dots per square degree
	Speed    float32 // degrees per second
	Interval int     // frames
}

// RandomDotMotion is a rectangular field of moving dots. Dots are split
// into Interval interleaved sets; each frame one set is moved and shown.
type RandomDotMotion struct {
	Pos      mgl32.Vec2
	Aperture mgl32.Vec2 // width, height
	Params   DotParams

	refresh float32
	rng     *rand.Rand
	sets    [][]mgl32.Vec2 // dot positions relative to Pos
	cur     int
}

func NewRandomDotMotion(pos, aperture mgl32.Vec2, dp DotParams, refresh float32, rng *rand.Rand) *RandomDotMotion {
	if dp.Interval < 1 {
		dp.Interval = 1
	}
	n := int(math.Round(float64(dp.Density * aperture.X() * aperture.Y())))
	if n < 1 {
		n = 1
	}

	s := &RandomDotMotion{
		Pos:      pos,
		Aperture: aperture,
		Params:   dp,
		refresh:  refresh,
		rng:      rng,
		sets:     make([][]mgl32.Vec2, dp.Interval),
	}
	for i := 0; i < n; i++ {
		k := i % dp.Interval
		s.sets[k] = append(s.sets[k], mgl32.Vec2{})
	}
	s.Reset()
	return s
}

func (s *RandomDotMotion) NumDots() int {
	n := 0
	for _, set := range s.sets {
		n += len(set)
	}
	return n
}

// Reset scatters every dot uniformly inside the aperture.
func (s *RandomDotMotion) Reset() {
	for _, set := range s.sets {
		for i := range set {
			set[i] = s.randomPoint()
		}
	}
	s.cur = 0
}

// Update advances the next dot set. A coh fraction of its dots step along
// dir (degrees, 0 is rightward, 90 upward); the rest are replotted at random.
func (s *RandomDotMotion) Update(dir float64, coh float32) {
	s.cur = (s.cur + 1) % len(s.sets)
	set := s.sets[s.cur]

	rad := dir * math.Pi / 180
	step := s.Params.Speed * float32(s.Params.Interval) / s.refresh
	delta := mgl32.Vec2{float32(math.Cos(rad)), float32(math.Sin(rad))}.Mul(step)

	nSignal := int(math.Round(float64(coh) * float64(len(set))))
	signal := s.rng.Perm(len(set))
	for j, i := range signal {
		if j < nSignal {
			set[i] = s.wrap(set[i].Add(delta))
		} else {
			set[i] = s.randomPoint()
		}
	}
}

// Dots returns absolute positions of the visible set.
func (s *RandomDotMotion) Dots() []mgl32.Vec2 {
	set := s.sets[s.cur]
	out := make([]mgl32.Vec2, len(set))
	for i, d := range set {
		out[i] = s.Pos.Add(d)
	}
	return out
}

func (s *RandomDotMotion) Draw(d Display) {
	d.DrawDots(s.Dots(), s.Params.Size, s.Params.Color)
}

func (s *RandomDotMotion) randomPoint() mgl32.Vec2 {
	half := s.Aperture.Mul(0.5)
	return mgl32.Vec2{
		(s.rng.Float32()*2 - 1) * half.X(),
		(s.rng.Float32()*2 - 1) * half.Y(),
	}
}

func (s *RandomDotMotion) wrap(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{wrap(p.X(), s.Aperture.X()), wrap(p.Y(), s.Aperture.Y())}
}

// wrap folds v into [-size/2, size/2).
func wrap(v, size float32) float32 {
	half := size / 2
	v = float32(math.Mod(float64(v+half), float64(size)))
	if v < 0 {
		v += size
	}
	return v - half
}
