package utils

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func rabbitURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		GetEnv("MQ_USER", "guest"),
		GetEnv("MQ_PASSWORD", "guest"),
		GetEnv("MQ_HOST", "rabbitmq"),
		GetEnv("MQ_PORT", "5672"),
	)
}

func NewRabbitConnection() (*amqp.Connection, *amqp.Channel, error) {
	config := amqp.Config{
		Heartbeat: 60 * time.Second,
		Locale:    "en_US",
	}

	connection, err := amqp.DialConfig(rabbitURL(), config)
	if err != nil {
		return nil, nil, err
	}
	channel, err := connection.Channel()
	if err != nil {
		connection.Close()
		return nil, nil, err
	}

	return connection, channel, nil
}

// DeclareJourneyQueue declares the durable upload queue shared by the API
// and the consumer.
func DeclareJourneyQueue(channel *amqp.Channel, name string) error {
	_, err := channel.QueueDeclare(
		name,
		true,
		false,
		false,
		false,
		nil,
	)
	return err
}

func NewRedisClient() *redis.Client {
	// default to the redis service in the cluster
	redisAddr := GetEnv("REDIS_ADDR", "redis:6379")

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	return rdb
}

func NewPostgresConnection(ctx context.Context) (*pgxpool.Pool, error) {
	dbConnectionString := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		GetEnv("POSTGRES_HOST", "postgres"),
		GetEnv("POSTGRES_PORT", "5432"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		GetEnv("POSTGRES_DB", "wrapped"),
	)

	connection, err := pgxpool.New(ctx, dbConnectionString)
	if err != nil {
		return nil, err
	}

	if err := connection.Ping(ctx); err != nil {
		connection.Close()
		return nil, err
	}

	return connection, nil
}
