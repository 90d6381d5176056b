package prediction

import (
	"context"
	"errors"
	"fmt"

	"github.com/spacesedan/tweetmood/internal/preprocess"
)

// Classifier turns raw text into one probability per emotion label, in label
// index order.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]float32, error)
}

// SequenceModel runs a forward pass over a batch of padded id sequences.
type SequenceModel interface {
	Predict(ctx context.Context, batch [][]int64) ([][]float32, error)
}

// SequenceClassifier pairs a vocabulary with a model trained on its padded
// sequences.
type SequenceClassifier struct {
	Tokenizer preprocess.Tokenizer
	Model     SequenceModel
}

func (c SequenceClassifier) Classify(ctx context.Context, text string) ([]float32, error) {
	if c.Tokenizer == nil || c.Model == nil {
		return nil, errors.New("sequence classifier is missing its tokenizer or model")
	}

	batch := preprocess.Encode(c.Tokenizer, text)
	out, err := c.Model.Predict(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("model inference: %w", err)
	}
	if len(out) != 1 {
		return nil, fmt.Errorf("model returned %d rows for a batch of 1", len(out))
	}
	return out[0], nil
}
