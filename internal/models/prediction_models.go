package models

type TweetInput struct {
	Text string `json:"text"`
}

type PredictionResponse struct {
	Emotion      string  `json:"emotion"`
	Confidence   float64 `json:"confidence"`
	Summary      string  `json:"summary"`
	OriginalText string  `json:"original_text"`
}

type HealthResponse struct {
	Status                string `json:"status"`
	Model                 string `json:"model"`
	Tokenizer             string `json:"tokenizer"`
	Summarizer            string `json:"summarizer"`
	TransformersAvailable bool   `json:"transformers_available"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
