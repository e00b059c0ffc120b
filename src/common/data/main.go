package data

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var ErrBatchNotFound = errors.New("batch not found")

type DataClient struct {
	pg         *pgxpool.Pool
	rdb        *redis.Client
	logger     *zap.SugaredLogger
	statusTTL  time.Duration
	summaryTTL time.Duration
}

type Option func(*DataClient)

// WithExpiry sets how long batch statuses and cached summaries live in redis.
func WithExpiry(statusTTL, summaryTTL time.Duration) Option {
	return func(dc *DataClient) {
		dc.statusTTL = statusTTL
		dc.summaryTTL = summaryTTL
	}
}

func NewDataClient(db *pgxpool.Pool, rdb *redis.Client, logger *zap.SugaredLogger, opts ...Option) *DataClient {
	dc := &DataClient{
		pg:         db,
		rdb:        rdb,
		logger:     logger,
		statusTTL:  24 * time.Hour,
		summaryTTL: time.Hour,
	}
	for _, opt := range opts {
		opt(dc)
	}
	return dc
}
