package notifier

import (
	"context"
	"errors"
	"io"
	"testing"

	"staybook/pkg/events"
	"staybook/pkg/kafka"
	"staybook/pkg/logger"
	"staybook/pkg/model"
)

type mockSender struct {
	sendFunc func(ctx context.Context, event events.BookingCreated) error
	sent     []events.BookingCreated
}

func (m *mockSender) SendBookingCreated(ctx context.Context, event events.BookingCreated) error {
	m.sent = append(m.sent, event)
	if m.sendFunc != nil {
		return m.sendFunc(ctx, event)
	}
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:   logger.LevelError,
		Format:  logger.FormatJSON,
		Output:  io.Discard,
		Service: "test",
	})
}

func bookingCreatedMessage(t *testing.T) kafka.Message {
	t.Helper()
	start, _ := model.ParseDate("2025-09-10")
	end, _ := model.ParseDate("2025-09-12")
	msg, err := kafka.NewEventMessage("64f000000000000000000001", events.TypeBookingCreated, "test", events.BookingCreated{
		BookingID:  "64f000000000000000000099",
		ProductID:  "64f000000000000000000001",
		CustomerID: "customer-1",
		StartDate:  start,
		EndDate:    end,
		Status:     model.StatusPending,
	})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}
	return msg
}

func TestHandleMessage_BookingCreated(t *testing.T) {
	sender := &mockSender{}
	worker := NewWorker(sender, testLogger())

	if err := worker.HandleMessage(context.Background(), bookingCreatedMessage(t)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(sender.sent))
	}
	if sender.sent[0].BookingID != "64f000000000000000000099" {
		t.Errorf("wrong booking in notification: %s", sender.sent[0].BookingID)
	}
}

func TestHandleMessage_SenderFailurePropagates(t *testing.T) {
	sender := &mockSender{
		sendFunc: func(context.Context, events.BookingCreated) error {
			return errors.New("smtp down")
		},
	}
	worker := NewWorker(sender, testLogger())

	if err := worker.HandleMessage(context.Background(), bookingCreatedMessage(t)); err == nil {
		t.Fatal("expected error so the consumer retries")
	}
}

func TestHandleMessage_UnknownEventTypeSkipped(t *testing.T) {
	sender := &mockSender{}
	worker := NewWorker(sender, testLogger())

	msg, err := kafka.NewEventMessage("key", "booking.deleted.v1", "test", map[string]string{})
	if err != nil {
		t.Fatalf("failed to build message: %v", err)
	}

	if err := worker.HandleMessage(context.Background(), msg); err != nil {
		t.Fatalf("unknown events must be acknowledged, got: %v", err)
	}
	if len(sender.sent) != 0 {
		t.Errorf("unknown event should not trigger a notification")
	}
}

func TestHandleMessage_MalformedPayload(t *testing.T) {
	sender := &mockSender{}
	worker := NewWorker(sender, testLogger())

	msg := kafka.Message{
		Key:   "key",
		Value: []byte("{not json"),
		Headers: map[string]string{
			"event-type": events.TypeBookingCreated,
		},
	}

	if err := worker.HandleMessage(context.Background(), msg); err == nil {
		t.Fatal("expected decode error")
	}
}
