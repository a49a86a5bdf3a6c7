package engine

import (
	"fmt"
	"math/rand/v2"
)

const NumSegments = 3

// MotionPattern labels each segment: 1 marks the odd segment, 0 the others.
type MotionPattern [NumSegments]int

// MotionPatterns are the distinct arrangements of one odd and two same labels.
var MotionPatterns = []MotionPattern{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// Valid reports whether m holds only 0 and 1 labels with exactly one 1.
func (m MotionPattern) Valid() bool {
	odd := 0
	for _, l := range m {
		switch l {
		case 0:
		case 1:
			odd++
		default:
			return false
		}
	}
	return odd == 1
}

// OddIndex returns the segment carrying label 1.
func (m MotionPattern) OddIndex() int {
	for i, l := range m {
		if l == 1 {
			return i
		}
	}
	return -1
}

// MotionAngles returns the two axis-orthogonal motion directions, in
// degrees, used with a bar of the given orientation.
func MotionAngles(ori Orientation) [2]float64 {
	if ori == Vertical {
		return [2]float64{90, 270}
	}
	return [2]float64{0, 180}
}

// TrialInfo describes one step of a traversal. The Bar* and Dot* fields
// and OddSegment are set by the generator; the rest are filled in by
// RunTrial.
type TrialInfo struct {
	Index      int
	BarOri     Orientation
	BarDir     Direction
	BarStep    int
	BarPos     float32
	DotDirs    [NumSegments]float64
	OddSegment int

	OnsetMS   uint64
	OffsetMS  uint64
	Frames    int
	Responses []string
}

// Linspace returns n evenly spaced values from start to stop inclusive.
// For n == 1 it returns start alone.
func Linspace(start, stop float32, n int) []float32 {
	if n <= 0 {
		return nil
	}
	out := make([]float32, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float32(n-1)
	for i := range out {
		out[i] = start + step*float32(i)
	}
	out[n-1] = stop
	return out
}

// TraversalPositions returns the normalized bar positions for one traversal.
func TraversalPositions(dir Direction, steps int) []float32 {
	if dir == Negative {
		return Linspace(1, -1, steps)
	}
	return Linspace(-1, 1, steps)
}

type TrialGenerator struct {
	params   *Params
	schedule Schedule
	rng      *rand.Rand
	patterns Sampler[MotionPattern]

	entry     int
	step      int
	positions []float32
	emitted   int
	err       error
}

type GeneratorOption func(*TrialGenerator)

// WithMotionSampler replaces the default uniform choice over MotionPatterns.
func WithMotionSampler(s Sampler[MotionPattern]) GeneratorOption {
	return func(g *TrialGenerator) {
		g.patterns = s
	}
}

func NewTrialGenerator(p *Params, schedule Schedule, rng *rand.Rand, opts ...GeneratorOption) (*TrialGenerator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i, e := range schedule {
		if !e.Ori.Valid() {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrInvalidOrientation, i, e.Ori)
		}
		if !e.Dir.Valid() {
			return nil, fmt.Errorf("%w: entry %d: %q", ErrInvalidDirection, i, e.Dir)
		}
	}

	g := &TrialGenerator{
		params:   p,
		schedule: schedule,
		rng:      rng,
		patterns: UniformChoice[MotionPattern]{Choices: MotionPatterns},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// GenerateTrials loads the schedule file at path and returns a generator for
// the schedule named by p.Schedule. Any load or lookup failure is returned
// here, before a trial is produced.
func GenerateTrials(p *Params, path string, rng *rand.Rand, opts ...GeneratorOption) (*TrialGenerator, error) {
	schedules, err := LoadSchedules(path)
	if err != nil {
		return nil, err
	}
	schedule, err := schedules.Get(p.Schedule)
	if err != nil {
		return nil, err
	}
	return NewTrialGenerator(p, schedule, rng, opts...)
}

func (g *TrialGenerator) Len() int {
	return len(g.schedule) * g.params.TraversalSteps
}

func (g *TrialGenerator) Remaining() int {
	return g.Len() - g.emitted
}

// Err returns the error that stopped the generator early, if any.
func (g *TrialGenerator) Err() error {
	return g.err
}

// Next returns the next trial, or false once the schedule is exhausted or a
// sampled motion pattern is malformed. Err distinguishes the two.
func (g *TrialGenerator) Next() (TrialInfo, bool) {
	if g.err != nil {
		return TrialInfo{}, false
	}
	if g.positions != nil && g.step >= len(g.positions) {
		g.entry++
		g.positions = nil
	}
	if g.entry >= len(g.schedule) {
		return TrialInfo{}, false
	}
	entry := g.schedule[g.entry]
	if g.positions == nil {
		g.positions = TraversalPositions(entry.Dir, g.params.TraversalSteps)
		g.step = 0
	}

	pattern := g.patterns.Sample(g.rng)
	if !pattern.Valid() {
		g.err = fmt.Errorf("%w: %v at trial %d", ErrInvalidMotionPattern, pattern, g.emitted)
		return TrialInfo{}, false
	}
	angles := MotionAngles(entry.Ori)
	if g.rng.IntN(2) == 1 {
		angles[0], angles[1] = angles[1], angles[0]
	}

	info := TrialInfo{
		Index:      g.emitted,
		BarOri:     entry.Ori,
		BarDir:     entry.Dir,
		BarStep:    g.step + 1,
		BarPos:     g.positions[g.step],
		OddSegment: pattern.OddIndex(),
	}
	for i, label := range pattern {
		info.DotDirs[i] = angles[label]
	}

	g.step++
	g.emitted++
	return info, true
}
