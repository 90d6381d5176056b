package models

// SummaryRequest is the body of a Hugging Face summarization inference call.
type SummaryRequest struct {
	Inputs     string            `json:"inputs"`
	Parameters SummaryParameters `json:"parameters"`
}

type SummaryParameters struct {
	MaxLength  int    `json:"max_length"`
	MinLength  int    `json:"min_length"`
	DoSample   bool   `json:"do_sample"`
	Truncation string `json:"truncation,omitempty"`
}

type (
	SummaryBatchResponse []SummaryResponse
	SummaryResponse      struct {
		SummaryText string `json:"summary_text"`
	}
)

// HuggingFaceError is returned by the inference API on failure, e.g. while
// the model is still loading.
type HuggingFaceError struct {
	Error         string  `json:"error"`
	EstimatedTime float64 `json:"estimated_time,omitempty"`
}
