package engine

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// Params holds the experiment-wide stimulus and timing parameters. Sizes and
// positions are in degrees of visual angle unless noted. A Params value is
// not modified once the run has started.
type Params struct {
	FieldSize float32 `json:"field_size"`

	DotSize     float32 `json:"dot_size"`     // pixels
	DotColor    Color   `json:"dot_color"`
	DotDensity  float32 `json:"dot_density"`  // dots per square degree
	DotSpeed    float32 `json:"dot_speed"`    // degrees per second
	DotInterval int     `json:"dot_interval"` // frames between updates of one dot set

	BarWidth      float32 `json:"bar_width"`
	BarSegmentGap float32 `json:"bar_segment_gap"`

	FixPos    mgl32.Vec2 `json:"fix_pos"`
	FixRadius float32    `json:"fix_radius"`
	FixColor  Color      `json:"fix_color"`

	TraversalSteps    int     `json:"traversal_steps"`
	TraversalDuration float64 `json:"traversal_duration"` // seconds
	Coherence         float32 `json:"coherence"`

	MonitorWidth    float32 `json:"monitor_width"`    // cm
	MonitorDistance float32 `json:"monitor_distance"` // cm

	Schedule string `json:"schedule"`
}

func DefaultParams() *Params {
	return &Params{
		FieldSize:         24,
		DotSize:           3,
		DotColor:          White,
		DotDensity:        4,
		DotSpeed:          6,
		DotInterval:       3,
		BarWidth:          2,
		BarSegmentGap:     0.5,
		FixRadius:         0.15,
		FixColor:          RGB(255, 0, 0),
		TraversalSteps:    18,
		TraversalDuration: 36,
		Coherence:         0.5,
		MonitorWidth:      53,
		MonitorDistance:   57,
	}
}

// LoadParams overlays the JSON object in path on top of the defaults.
// Unknown keys are rejected so that a misspelled name is not silently
// replaced by its default.
func LoadParams(path string) (*Params, error) {
	p := DefaultParams()
	if path == "" {
		return p, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(p); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidParams, path, err)
	}
	return p, nil
}

// StepDuration is the time spent at each bar position, in seconds.
func (p *Params) StepDuration() float64 {
	return p.TraversalDuration / float64(p.TraversalSteps)
}

func (p *Params) Validate() error {
	switch {
	case p.FieldSize <= 0:
		return fmt.Errorf("%w: field_size must be positive", ErrInvalidParams)
	case p.DotSize <= 0:
		return fmt.Errorf("%w: dot_size must be positive", ErrInvalidParams)
	case p.DotDensity <= 0:
		return fmt.Errorf("%w: dot_density must be positive", ErrInvalidParams)
	case p.DotSpeed < 0:
		return fmt.Errorf("%w: dot_speed must not be negative", ErrInvalidParams)
	case p.DotInterval < 1:
		return fmt.Errorf("%w: dot_interval must be at least 1", ErrInvalidParams)
	case p.BarWidth <= 0:
		return fmt.Errorf("%w: bar_width must be positive", ErrInvalidParams)
	case p.BarSegmentGap < 0 || p.BarSegmentGap >= p.FieldSize/NumSegments:
		return fmt.Errorf("%w: bar_segment_gap must be in [0, field_size/%d)", ErrInvalidParams, NumSegments)
	case p.FixRadius < 0:
		return fmt.Errorf("%w: fix_radius must not be negative", ErrInvalidParams)
	case p.TraversalSteps < 1:
		return fmt.Errorf("%w: traversal_steps must be at least 1", ErrInvalidParams)
	case p.TraversalDuration <= 0:
		return fmt.Errorf("%w: traversal_duration must be positive", ErrInvalidParams)
	case p.Coherence < 0 || p.Coherence > 1:
		return fmt.Errorf("%w: coherence must be in [0, 1]", ErrInvalidParams)
	case p.MonitorWidth <= 0 || p.MonitorDistance <= 0:
		return fmt.Errorf("%w: monitor_width and monitor_distance must be positive", ErrInvalidParams)
	}
	return nil
}
