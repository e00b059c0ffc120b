package api

import (
	"context"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/types"
	"go.uber.org/zap"
)

// BatchStore is the slice of the data client the handlers need.
type BatchStore interface {
	SetBatchStatus(ctx context.Context, status types.BatchStatusResponse) error
	GetBatchStatus(ctx context.Context, batchID string) (*types.BatchStatusResponse, error)
	LoadBatch(ctx context.Context, batchID string) ([]types.JourneyRecord, error)
	CacheSummary(ctx context.Context, batchID string, summary *types.WrappedSummary) error
	GetCachedSummary(ctx context.Context, batchID string) (*types.WrappedSummary, error)
}

type Publisher interface {
	Publish(ctx context.Context, batchID, filename string, body []byte) error
}

type APIServer struct {
	Data    BatchStore
	Queue   Publisher
	Engine  *inference.Engine
	Logger  *zap.SugaredLogger
	Version string
}

func NewServer(store BatchStore, queue Publisher, engine *inference.Engine, logger *zap.SugaredLogger) *APIServer {
	return &APIServer{
		Data:    store,
		Queue:   queue,
		Engine:  engine,
		Logger:  logger,
		Version: "1.0.0",
	}
}
