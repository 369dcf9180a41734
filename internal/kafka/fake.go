package kafka

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// FakeWriter records messages for test assertions.
type FakeWriter struct {
	Messages   []kafka.Message
	WriteError error
	Closed     bool
}

func (f *FakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	f.Messages = append(f.Messages, msgs...)
	return nil
}

func (f *FakeWriter) Close() error {
	f.Closed = true
	return nil
}
