package engine

import (
	"fmt"
	"math/rand/v2"
)

type Drawable interface {
	Draw(d Display)
}

// Stimuli are the named stimuli of the experiment.
type Stimuli struct {
	Fix  *Point
	Dots *DotBar
}

func CreateStimuli(p *Params, refresh float32, rng *rand.Rand) *Stimuli {
	return &Stimuli{
		Fix:  NewPoint(p),
		Dots: NewDotBar(p, refresh, rng),
	}
}

func (s *Stimuli) Lookup(name string) (Drawable, error) {
	switch name {
	case "fix":
		return s.Fix, nil
	case "dots":
		return s.Dots, nil
	}
	return nil, fmt.Errorf("no stimulus named %q", name)
}
