package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/config"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/data"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/inference"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/network"
	"github.com/jack-barr3tt/tfl-wrapped/src/common/utils"
	"github.com/jack-barr3tt/tfl-wrapped/src/http-api/api"
)

func main() {
	utils.InitLogger("http-api")
	defer utils.SyncLogger()
	log := utils.GetLogger()

	if err := config.LoadAppConfig(); err != nil {
		log.Fatalw("failed to load config", "error", err)
	}
	cfg := config.Config

	n, err := network.LoadChecked(cfg.Network.Path, cfg.Network.Strict, log)
	if err != nil {
		log.Fatalw("failed to load station network", "path", cfg.Network.Path, "error", err)
	}
	engine := inference.NewEngine(n,
		inference.WithMemo(cfg.Inference.MemoSize),
		inference.WithLogger(log),
	)

	ctx := context.Background()

	db, err := utils.NewPostgresConnection(ctx)
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	rdb := utils.NewRedisClient()
	defer rdb.Close()

	conn, channel, err := utils.NewRabbitConnection()
	if err != nil {
		log.Fatalw("failed to connect to rabbitmq", "error", err)
	}
	defer conn.Close()
	defer channel.Close()

	if err := utils.DeclareJourneyQueue(channel, cfg.Queue.Name); err != nil {
		log.Fatalw("failed to declare queue", "queue", cfg.Queue.Name, "error", err)
	}

	store := data.NewDataClient(db, rdb, log, data.WithExpiry(cfg.Cache.StatusTTL, cfg.Cache.SummaryTTL))
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalw("failed to prepare schema", "error", err)
	}

	app := fiber.New()

	app.Use(func(c *fiber.Ctx) error {
		err := c.Next()

		if path := c.Path(); path != "/health" {
			log.Infow("request", "method", c.Method(), "path", path, "status", c.Response().StatusCode())
		}

		return err
	})

	app.Use(cors.New())

	server := api.NewServer(store, utils.NewUploadPublisher(channel, cfg.Queue.Name), engine, log)
	api.RegisterHandlers(app, server)

	log.Infow("serving", "port", cfg.Server.Port, "stations", len(n.Stations()), "lines", len(n.Lines()))

	if err := app.Listen(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		log.Fatalw("fiber listen failed", "error", err)
	}
}
