// Package kafka streams FWC frames to a Kafka topic for offline analysis.
package kafka

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"

	"github.com/sweeney/fwc-sim/internal/fwc"
)

// MessageWriter is the subset of *kafka.Writer the sink uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewWriter creates a writer that keys frames by FWC so each computer's
// frames stay ordered on one partition.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
	}
}

// Record is the value of one Kafka message.
type Record struct {
	RunID     string    `json:"run_id"`
	Tick      uint64    `json:"tick"`
	Timestamp time.Time `json:"timestamp"`
	Frame     fwc.Frame `json:"frame"`
}

// Sink publishes one message per FWC per tick.
type Sink struct {
	w       MessageWriter
	runID   string
	timeout time.Duration
}

func NewSink(w MessageWriter, runID string, timeout time.Duration) *Sink {
	return &Sink{w: w, runID: runID, timeout: timeout}
}

// Messages builds the messages for one tick.
func (s *Sink) Messages(tick uint64, at time.Time, frames []fwc.Frame) ([]kafka.Message, error) {
	msgs := make([]kafka.Message, 0, len(frames))
	for _, f := range frames {
		value, err := json.Marshal(Record{RunID: s.runID, Tick: tick, Timestamp: at.UTC(), Frame: f})
		if err != nil {
			return nil, errors.Wrapf(err, "encode frame of FWC %d", f.FWC)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(strconv.Itoa(f.FWC)),
			Value: value,
			Time:  at,
		})
	}
	return msgs, nil
}

// Publish writes the frames of one tick, bounded by the sink timeout.
func (s *Sink) Publish(ctx context.Context, tick uint64, at time.Time, frames []fwc.Frame) error {
	msgs, err := s.Messages(tick, at, frames)
	if err != nil {
		return err
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	return errors.Wrap(s.w.WriteMessages(ctx, msgs...), "write frames")
}

func (s *Sink) Close() error {
	return s.w.Close()
}
