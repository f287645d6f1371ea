package rabbitmq

import (
	"context"
	"encoding/json"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/booking-slot-discovery/internal/config"
	"github.com/suchimauz/booking-slot-discovery/internal/core/ports/out"
)

// BookingEventMessage - событие брони из сервиса расписания.
// После брони кэшированные слоты врача устаревают и должны быть сброшены.
type BookingEventMessage struct {
	SlotID   string `json:"slotId"`
	DoctorID string `json:"doctorId"`
	Status   string `json:"status"`
}

type BookingListener struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	cachePort out.CachePort
	cfg       *config.Config
	logger    out.LoggerPort
}

func NewBookingListener(cachePort out.CachePort, cfg *config.Config, logger out.LoggerPort) (*BookingListener, error) {
	if !cfg.RabbitMq.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMq.AmqpUri)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
			"url":   cfg.RabbitMq.AmqpUri,
		})
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, err
	}

	return &BookingListener{
		conn:      conn,
		channel:   channel,
		cachePort: cachePort,
		cfg:       cfg,
		logger:    logger,
	}, nil
}

func (l *BookingListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMq.BookingQueueName,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMq.BookingQueueBind,
		l.cfg.RabbitMq.BookingQueueExchange,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				if err := l.processBookingMessage(ctx, msg); err != nil {
					msg.Nack(false, true) // requeue message
					continue
				}
				msg.Ack(false)
			}
		}
	}()

	return nil
}

func (l *BookingListener) processBookingMessage(ctx context.Context, msg amqp.Delivery) error {
	var msgJson BookingEventMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return err
	}

	l.logger.Info("booking.message.received", out.LogFields{
		"slotId":   msgJson.SlotID,
		"doctorId": msgJson.DoctorID,
		"status":   msgJson.Status,
	})

	if l.cachePort == nil {
		return nil
	}

	// Сбрасываем слоты врача: следующий проход перечитает их из сервиса
	if msgJson.DoctorID != "" {
		l.cachePort.InvalidateDoctorSlots(ctx, msgJson.DoctorID)

		l.logger.Info("booking.message.invalidated", out.LogFields{
			"doctorId": msgJson.DoctorID,
		})
	} else {
		l.cachePort.InvalidateAll(ctx)
	}

	return nil
}

func (l *BookingListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}
