package emotion

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

type Prediction struct {
	Label      Label
	Confidence float64
}

// FromProbabilities picks the most probable class. Ties resolve to the lowest
// index. The distribution must hold exactly one entry per label.
func FromProbabilities(probs []float32) (Prediction, error) {
	if len(probs) != LABEL_COUNT {
		return Prediction{}, fmt.Errorf("expected %d class probabilities, got %d", LABEL_COUNT, len(probs))
	}

	values := make([]float64, len(probs))
	for i, p := range probs {
		values[i] = float64(p)
	}
	if floats.HasNaN(values) {
		return Prediction{}, fmt.Errorf("classifier returned NaN probability: %v", probs)
	}

	idx := floats.MaxIdx(values)
	return Prediction{
		Label:      Label(idx),
		Confidence: clamp01(values[idx]),
	}, nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
