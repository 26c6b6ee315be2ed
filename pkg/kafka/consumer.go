package kafka

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	kafkaconfig "staybook/pkg/kafka/config"
	"staybook/pkg/logger"
)

// Consumer reads a topic in a consumer group and hands each message to the
// handler. Failed messages are retried up to the configured limit, then
// parked on the DLQ topic (when one is set) so the partition keeps moving.
type Consumer struct {
	reader     *kafka.Reader
	dlqWriter  *kafka.Writer
	topic      string
	dlqTopic   string
	maxRetries int
	handler    MessageHandler
	log        *logger.Logger
	mu         sync.RWMutex
	closed     bool
}

func NewConsumer(cfg *kafkaconfig.Config, topic, groupID, dlqTopic string, handler MessageHandler, log *logger.Logger) (*Consumer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}
	if topic == "" || groupID == "" {
		return nil, fmt.Errorf("topic and group ID are required")
	}
	if handler == nil {
		return nil, fmt.Errorf("message handler cannot be nil")
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          topic,
		GroupID:        groupID,
		MinBytes:       cfg.ConsumerMinBytes,
		MaxBytes:       cfg.ConsumerMaxBytes,
		MaxWait:        cfg.ConsumerMaxWait,
		CommitInterval: cfg.ConsumerCommitInterval,
		SessionTimeout: cfg.ConsumerSessionTimeout,
		StartOffset:    cfg.ConsumerStartOffset,
		Logger:         kafka.LoggerFunc(func(string, ...any) {}),
	})

	consumer := &Consumer{
		reader:     reader,
		topic:      topic,
		dlqTopic:   dlqTopic,
		maxRetries: cfg.ConsumerMaxRetries,
		handler:    handler,
		log:        log,
	}

	if dlqTopic != "" {
		consumer.dlqWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        dlqTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			MaxAttempts:  3,
			Logger:       kafka.LoggerFunc(func(string, ...any) {}),
		}
	}

	return consumer, nil
}

// Start consumes until the context is cancelled.
func (c *Consumer) Start(ctx context.Context) error {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return ErrConsumerClosed
	}

	for {
		kafkaMsg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			c.log.Error("Failed to fetch message", "topic", c.topic, "error", err)
			time.Sleep(1 * time.Second)
			continue
		}

		msg := c.convertMessage(kafkaMsg)
		if err := c.processWithRetry(ctx, msg); err != nil {
			c.log.Error("Message handling exhausted retries",
				"topic", c.topic,
				"event_id", msg.EventID(),
				"error", err,
			)
			if dlqErr := c.sendToDLQ(ctx, msg); dlqErr != nil {
				c.log.Error("Failed to park message on DLQ", "error", dlqErr)
			}
		}

		if err := c.reader.CommitMessages(ctx, kafkaMsg); err != nil {
			c.log.Error("Failed to commit offset", "topic", c.topic, "error", err)
		}
	}
}

func (c *Consumer) processWithRetry(ctx context.Context, msg Message) error {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(attempt) * time.Second):
			}
		}
		if lastErr = c.handler(ctx, msg); lastErr == nil {
			return nil
		}
	}
	return lastErr
}

func (c *Consumer) sendToDLQ(ctx context.Context, msg Message) error {
	if c.dlqWriter == nil {
		return nil
	}

	headers := make(map[string]string, len(msg.Headers)+2)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = c.topic
	headers[HeaderRetryCount] = strconv.Itoa(c.maxRetries)

	return c.dlqWriter.WriteMessages(ctx, kafka.Message{
		Key:     []byte(msg.Key),
		Value:   msg.Value,
		Headers: toKafkaHeaders(headers),
	})
}

func (c *Consumer) convertMessage(m kafka.Message) Message {
	return Message{
		Key:       string(m.Key),
		Value:     m.Value,
		Headers:   fromKafkaHeaders(m.Headers),
		Topic:     m.Topic,
		Partition: m.Partition,
		Offset:    m.Offset,
		Timestamp: m.Time,
	}
}

func (c *Consumer) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if c.dlqWriter != nil {
		_ = c.dlqWriter.Close()
	}
	return c.reader.Close()
}
