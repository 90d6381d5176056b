package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/options"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/spacesedan/tweetmood/internal/emotion"
)

// HugotClassifier runs a Hugging Face text-classification model whose labels
// are the six emotion names (e.g. a distilbert fine-tuned on the emotion
// dataset). Tokenization happens inside the pipeline using the model's own
// tokenizer.json.
type HugotClassifier struct {
	session  *hugot.Session
	pipeline *pipelines.TextClassificationPipeline
}

// NewHugotClassifier loads the model at modelPath, downloading modelName
// into modelPath first when it does not exist. The session runs on the ONNX
// Runtime library at onnxLibraryPath.
func NewHugotClassifier(modelPath, modelName, onnxLibraryPath string) (*HugotClassifier, error) {
	if _, err := os.Stat(modelPath); os.IsNotExist(err) {
		if modelName == "" {
			return nil, fmt.Errorf("model not found at %s and HUGOT_MODEL_NAME is empty", modelPath)
		}
		slog.Info("[HugotClassifier] Model not found, downloading...",
			slog.String("model", modelName))
		if err := os.MkdirAll(modelPath, os.ModePerm); err != nil {
			return nil, fmt.Errorf("failed to create model directory: %w", err)
		}
		downloaded, err := hugot.DownloadModel(modelName, modelPath, hugot.NewDownloadOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", modelName, err)
		}
		slog.Info("[HugotClassifier] Model downloaded successfully", slog.String("path", downloaded))
		modelPath = downloaded
	} else {
		slog.Info("[HugotClassifier] Using existing model", slog.String("path", modelPath))
	}

	session, err := hugot.NewORTSession(options.WithOnnxLibraryPath(onnxLibraryPath))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize hugot session: %w", err)
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "emotionClassificationPipeline",
		Options: []hugot.TextClassificationOption{
			pipelines.WithSoftmax(),
			pipelines.WithMultiLabel(),
		},
	}
	pipeline, err := hugot.NewPipeline(session, config)
	if err != nil {
		_ = session.Destroy()
		return nil, fmt.Errorf("failed to initialize text classification pipeline: %w", err)
	}

	return &HugotClassifier{session: session, pipeline: pipeline}, nil
}

// Classify returns scores in label index order. Labels the model emits that
// are not one of the six emotions are ignored; labels it omits score zero.
func (h *HugotClassifier) Classify(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	output, err := h.pipeline.RunPipeline([]string{text})
	if err != nil {
		return nil, fmt.Errorf("hugot pipeline: %w", err)
	}
	if len(output.ClassificationOutputs) != 1 {
		return nil, fmt.Errorf("hugot returned %d results for 1 input", len(output.ClassificationOutputs))
	}

	return scoresByLabel(output.ClassificationOutputs[0])
}

func scoresByLabel(outputs []pipelines.ClassificationOutput) ([]float32, error) {
	probs := make([]float32, emotion.LABEL_COUNT)
	matched := false
	for _, o := range outputs {
		label, ok := emotion.ParseLabel(o.Label)
		if !ok {
			slog.Warn("[HugotClassifier] Ignoring unknown label", slog.String("label", o.Label))
			continue
		}
		probs[label] = o.Score
		matched = true
	}
	if !matched {
		return nil, errors.New("model produced none of the known emotion labels")
	}
	return probs, nil
}

func (h *HugotClassifier) Destroy() {
	if err := h.session.Destroy(); err != nil {
		slog.Warn("[HugotClassifier] Failed to destroy hugot session",
			slog.String("error", err.Error()))
	}
}
