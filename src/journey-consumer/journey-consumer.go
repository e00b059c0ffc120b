package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jack-barr3tt/tfl-wrapped/src/common/config"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/data"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/journeys"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/network"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	"github.com/jack-barr3tt/tfl-wrapped/src/journey-consumer/listener"
	"github.com/jack-barr3tt/tfl-wrapped/src/journey-consumer/processor"

	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	utils.InitLogger("journey-consumer")
	defer utils.SyncLogger()
	logger := utils.GetLogger()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadAppConfig(); err != nil {
		logger.Fatalw("failed to load config", "error", err)
	}
	cfg := config.Config

	n, err := network.LoadChecked(cfg.Network.Path, cfg.Network.Strict, logger)
	if err != nil {
		logger.Fatalw("failed to load station network", "path", cfg.Network.Path, "error", err)
	}
	engine := inference.NewEngine(n,
		inference.WithMemo(cfg.Inference.MemoSize),
		inference.WithLogger(logger),
	)
	pipeline := journeys.NewPipeline(engine,
		journeys.WithWorkers(cfg.Inference.Workers),
		journeys.WithPipelineLogger(logger),
	)

	db, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		logger.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	rdb := utils.NewRedisClient()
	defer rdb.Close()

	store := data.NewDataClient(db, rdb, logger, data.WithExpiry(cfg.Cache.StatusTTL, cfg.Cache.SummaryTTL))
	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatalw("failed to prepare schema", "error", err)
	}

	conn, channel, err := utils.NewRabbitConnection()
	if err != nil {
		logger.Fatalw("failed to connect to RabbitMQ", "error", err)
	}
	defer conn.Close()
	defer channel.Close()

	closeChan := make(chan *amqp.Error, 1)
	conn.NotifyClose(closeChan)

	go func() {
		select {
		case err := <-closeChan:
			if err != nil {
				logger.Warnw("RabbitMQ connection closed", "error", err)
			}
			stop()
		case <-ctx.Done():
			return
		}
	}()

	if err := utils.DeclareJourneyQueue(channel, cfg.Queue.Name); err != nil {
		logger.Fatalw("failed to declare queue", "queue", cfg.Queue.Name, "error", err)
	}

	// one upload at a time; inference workers parallelise within an upload
	if err := channel.Qos(1, 0, false); err != nil {
		logger.Fatalw("failed to set prefetch", "error", err)
	}

	msgs, err := channel.Consume(cfg.Queue.Name, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalw("failed to consume", "queue", cfg.Queue.Name, "error", err)
	}

	proc := processor.New(pipeline, store, logger)

	var wg sync.WaitGroup
	uploads := listener.NewListener(ctx, &wg, msgs, func(ctx context.Context, msg amqp.Delivery) error {
		// a redelivered message is not requeued again, so this is its last attempt
		return proc.Process(ctx, msg.MessageId, msg.Body, msg.Redelivered)
	}, logger)

	logger.Infow("waiting for uploads", "queue", cfg.Queue.Name, "stations", len(n.Stations()))

	wg.Add(1)
	go func() {
		uploads.Start()
		stop()
	}()

	<-ctx.Done()
	stop()

	wg.Wait()
}
