package types

type BatchStatus string

const (
	BatchQueued     BatchStatus = "queued"
	BatchProcessing BatchStatus = "processing"
	BatchDone       BatchStatus = "done"
	BatchFailed     BatchStatus = "failed"
)

type BatchStatusResponse struct {
	BatchID      string       `json:"batch_id"`
	Status       BatchStatus  `json:"status"`
	Format       ExportFormat `json:"format,omitempty"`
	JourneyCount int          `json:"journey_count"`
	Message      string       `json:"message,omitempty"`
}

type UploadResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	BatchID  string `json:"batch_id"`
}

type InferenceResponse struct {
	Start        string     `json:"start"`
	End          string     `json:"end"`
	InferredLine string     `json:"inferred_line"`
	Confidence   Confidence `json:"confidence"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Stations int    `json:"stations"`
	Lines    int    `json:"lines"`
}

type ErrorResponse struct {
	Error   string  `json:"error"`
	Message string  `json:"message"`
	Stack   *string `json:"stack,omitempty"`
}

type NotFoundResponse struct {
	Error string `json:"error"`
}
