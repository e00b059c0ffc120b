package listener

import (
	"context"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Handler processes one delivery. A nil error acks it; otherwise the
// delivery is requeued once and dropped if it fails again.
type Handler func(ctx context.Context, msg amqp.Delivery) error

// Acknowledger is the part of amqp.Delivery the listener settles messages
// through.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Listener struct {
	ctx        context.Context
	wg         *sync.WaitGroup
	deliveries <-chan amqp.Delivery
	handler    Handler
	logger     *zap.SugaredLogger
}

func NewListener(ctx context.Context, wg *sync.WaitGroup, deliveries <-chan amqp.Delivery, handler Handler, logger *zap.SugaredLogger) *Listener {
	return &Listener{
		ctx:        ctx,
		wg:         wg,
		deliveries: deliveries,
		handler:    handler,
		logger:     logger,
	}
}

func (l *Listener) Start() {
	defer l.wg.Done()

	for {
		select {
		case <-l.ctx.Done():
			return
		case msg, ok := <-l.deliveries:
			if !ok {
				l.logger.Warn("delivery channel closed")
				return
			}
			err := l.handler(l.ctx, msg)
			l.settle(msg, msg.Redelivered, msg.MessageId, err)
		}
	}
}

func (l *Listener) settle(ack Acknowledger, redelivered bool, id string, err error) {
	if err == nil {
		if err := ack.Ack(false); err != nil {
			l.logger.Warnw("ack failed", "message_id", id, "error", err)
		}
		return
	}

	requeue := !redelivered
	l.logger.Warnw("delivery failed", "message_id", id, "requeue", requeue, "error", err)
	if err := ack.Nack(false, requeue); err != nil {
		l.logger.Warnw("nack failed", "message_id", id, "error", err)
	}
}
