package api

// Type aliases to expose common types in the api package
import "github.com/jack-barr3tt/tfl-wrapped/src/common/types"

type (
	BatchStatusResponse = types.BatchStatusResponse
	ErrorResponse       = types.ErrorResponse
	HealthResponse      = types.HealthResponse
	InferenceResponse   = types.InferenceResponse
	NotFoundResponse    = types.NotFoundResponse
	UploadResponse      = types.UploadResponse
	WrappedSummary      = types.WrappedSummary
)
