package utils

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// UploadPublisher pushes raw journey exports onto the upload queue. The batch
// ID travels as the message ID so the consumer can report status against it.
type UploadPublisher struct {
	channel *amqp.Channel
	queue   string
}

func NewUploadPublisher(channel *amqp.Channel, queue string) *UploadPublisher {
	return &UploadPublisher{channel: channel, queue: queue}
}

func (p *UploadPublisher) Publish(ctx context.Context, batchID, filename string, body []byte) error {
	return p.channel.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "text/csv",
		DeliveryMode: amqp.Persistent,
		MessageId:    batchID,
		Headers:      amqp.Table{"filename": filename},
		Body:         body,
	})
}
