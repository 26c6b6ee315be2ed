package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"staybook/internal/notifier"
	"staybook/pkg/config"
	"staybook/pkg/events"
	"staybook/pkg/kafka"
	kafkaconfig "staybook/pkg/kafka/config"
)

const (
	ServiceName = "notifier"

	consumerGroup = "notifier"
	dlqTopic      = "booking.created.dlq"
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")

	worker := notifier.NewWorker(notifier.NewLogSender(cfg.Log), cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaconfig.Load(),
		events.TopicBookingCreated,
		consumerGroup,
		dlqTopic,
		worker.HandleMessage,
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	defer consumer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Consuming booking events", "topic", events.TopicBookingCreated, "group", consumerGroup)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier stopped gracefully")
}
