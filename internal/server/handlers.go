package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/spacesedan/tweetmood/internal/models"
	"github.com/spacesedan/tweetmood/internal/prediction"
)

// MAX_BODY_BYTES caps the /predict request body.
const MAX_BODY_BYTES = 1 << 20

const (
	MODEL_NOT_READY_DETAIL   = "Model not loaded properly"
	PREDICTION_FAILED_PREFIX = "Prediction failed: "
)

type Predictor interface {
	Ready() bool
	Predict(ctx context.Context, text string) (models.PredictionResponse, error)
	Health() models.HealthResponse
}

type Handler struct {
	service   Predictor
	staticDir string
	landing   []byte
}

func NewHandler(service Predictor, staticDir string) *Handler {
	return &Handler{
		service:   service,
		staticDir: staticDir,
		landing:   renderLanding(),
	}
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	index := filepath.Join(h.staticDir, "index.html")
	if info, err := os.Stat(index); err == nil && !info.IsDir() {
		http.ServeFile(w, r, index)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(h.landing)
}

type predictRequest struct {
	Text *string `json:"text"`
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request) {
	if !h.service.Ready() {
		writeError(w, http.StatusInternalServerError, MODEL_NOT_READY_DETAIL)
		return
	}

	var req predictRequest
	body := http.MaxBytesReader(w, r.Body, MAX_BODY_BYTES)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid request body: "+err.Error())
		return
	}
	if req.Text == nil {
		writeError(w, http.StatusUnprocessableEntity, "field required: text")
		return
	}

	resp, err := h.service.Predict(r.Context(), *req.Text)
	if err != nil {
		status, detail := mapPredictionError(err)
		slog.Error("[PredictHandler] Error during prediction",
			slog.String("request_id", middleware.GetReqID(r.Context())),
			slog.String("error", err.Error()))
		writeError(w, status, detail)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Health())
}

func mapPredictionError(err error) (int, string) {
	var inf *prediction.InferenceError
	switch {
	case errors.Is(err, prediction.ErrModelNotReady):
		return http.StatusInternalServerError, MODEL_NOT_READY_DETAIL
	case errors.As(err, &inf):
		return http.StatusInternalServerError, PREDICTION_FAILED_PREFIX + inf.Err.Error()
	default:
		return http.StatusInternalServerError, PREDICTION_FAILED_PREFIX + err.Error()
	}
}
