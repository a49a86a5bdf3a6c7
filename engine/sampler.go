package engine

import (
	"errors"
	"math/rand/v2"
)

// Sampler resolves a declarative value choice to a concrete value each time
// it is sampled.
type Sampler[T any] interface {
	Sample(rng *rand.Rand) T
}

type Constant[T any] struct {
	Value T
}

func (c Constant[T]) Sample(*rand.Rand) T { return c.Value }

// UniformChoice picks one of Choices with equal probability.
type UniformChoice[T any] struct {
	Choices []T
}

func NewUniformChoice[T any](choices ...T) (UniformChoice[T], error) {
	if len(choices) == 0 {
		return UniformChoice[T]{}, errors.New("uniform choice needs at least one value")
	}
	return UniformChoice[T]{Choices: choices}, nil
}

func (u UniformChoice[T]) Sample(rng *rand.Rand) T {
	return u.Choices[rng.IntN(len(u.Choices))]
}

type WeightedChoice[T any] struct {
	Choices []T
	cum     []float64
}

func NewWeightedChoice[T any](choices []T, weights []float64) (WeightedChoice[T], error) {
	if len(choices) == 0 || len(choices) != len(weights) {
		return WeightedChoice[T]{}, errors.New("weighted choice needs one weight per value")
	}
	cum := make([]float64, len(weights))
	var total float64
	for i, w := range weights {
		if w < 0 {
			return WeightedChoice[T]{}, errors.New("weighted choice: negative weight")
		}
		total += w
		cum[i] = total
	}
	if total <= 0 {
		return WeightedChoice[T]{}, errors.New("weighted choice: weights sum to zero")
	}
	for i := range cum {
		cum[i] /= total
	}
	return WeightedChoice[T]{Choices: choices, cum: cum}, nil
}

func (w WeightedChoice[T]) Sample(rng *rand.Rand) T {
	x := rng.Float64()
	for i, c := range w.cum {
		if x < c {
			return w.Choices[i]
		}
	}
	return w.Choices[len(w.Choices)-1]
}
