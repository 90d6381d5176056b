package clients

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/spacesedan/tweetmood/internal/emotion"
)

var ortInitOnce sync.Once
var ortInitErr error

// InitONNXRuntime loads the ONNX Runtime shared library once per process.
func InitONNXRuntime(libPath string) error {
	ortInitOnce.Do(func() {
		if ort.IsInitialized() {
			return
		}
		ort.SetSharedLibraryPath(libPath)
		ortInitErr = ort.InitializeEnvironment()
		if ortInitErr == nil {
			slog.Info("[ONNXClassifier] ONNX Runtime initialized",
				slog.String("library", libPath))
		}
	})
	return ortInitErr
}

func DestroyONNXRuntime() {
	if !ort.IsInitialized() {
		return
	}
	if err := ort.DestroyEnvironment(); err != nil {
		slog.Warn("[ONNXClassifier] Failed to destroy ONNX Runtime environment",
			slog.String("error", err.Error()))
	}
}

// ONNXClassifier runs the emotion model exported from Keras to ONNX. It takes
// a [batch, 50] id matrix and yields [batch, 6] probabilities.
type ONNXClassifier struct {
	session    *ort.DynamicAdvancedSession
	inputName  string
	outputName string
	inputType  ort.TensorElementDataType
}

func NewONNXClassifier(modelPath string) (*ONNXClassifier, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model %s: %w", modelPath, err)
	}
	if len(inputs) != 1 || len(outputs) < 1 {
		return nil, fmt.Errorf("model %s has %d inputs and %d outputs, want 1 and at least 1",
			modelPath, len(inputs), len(outputs))
	}

	in, out := inputs[0], outputs[0]
	switch in.DataType {
	case ort.TensorElementDataTypeFloat, ort.TensorElementDataTypeInt32, ort.TensorElementDataTypeInt64:
	default:
		return nil, fmt.Errorf("unsupported model input type %v", in.DataType)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{in.Name}, []string{out.Name}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	slog.Info("[ONNXClassifier] Model loaded",
		slog.String("path", modelPath),
		slog.String("input", in.Name),
		slog.String("output", out.Name))

	return &ONNXClassifier{
		session:    session,
		inputName:  in.Name,
		outputName: out.Name,
		inputType:  in.DataType,
	}, nil
}

func (c *ONNXClassifier) Predict(ctx context.Context, batch [][]int64) ([][]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, errors.New("empty batch")
	}

	width := len(batch[0])
	for i, row := range batch {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d", i, len(row), width)
		}
	}

	shape := ort.NewShape(int64(len(batch)), int64(width))
	input, err := c.newInput(shape, batch)
	if err != nil {
		return nil, err
	}
	defer input.Destroy()

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(int64(len(batch)), emotion.LABEL_COUNT))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate output: %w", err)
	}
	defer output.Destroy()

	if err := c.session.Run([]ort.Value{input}, []ort.Value{output}); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}

	data := output.GetData()
	rows := make([][]float32, len(batch))
	for i := range rows {
		row := make([]float32, emotion.LABEL_COUNT)
		copy(row, data[i*emotion.LABEL_COUNT:(i+1)*emotion.LABEL_COUNT])
		rows[i] = row
	}
	return rows, nil
}

func (c *ONNXClassifier) newInput(shape ort.Shape, batch [][]int64) (ort.Value, error) {
	n := len(batch) * len(batch[0])
	switch c.inputType {
	case ort.TensorElementDataTypeFloat:
		data := make([]float32, 0, n)
		for _, row := range batch {
			for _, id := range row {
				data = append(data, float32(id))
			}
		}
		return ort.NewTensor(shape, data)
	case ort.TensorElementDataTypeInt32:
		data := make([]int32, 0, n)
		for _, row := range batch {
			for _, id := range row {
				data = append(data, int32(id))
			}
		}
		return ort.NewTensor(shape, data)
	default:
		data := make([]int64, 0, n)
		for _, row := range batch {
			data = append(data, row...)
		}
		return ort.NewTensor(shape, data)
	}
}

func (c *ONNXClassifier) Destroy() {
	if err := c.session.Destroy(); err != nil {
		slog.Warn("[ONNXClassifier] Failed to destroy session",
			slog.String("error", err.Error()))
	}
}
