package mqtt

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func push(rb *ringBuffer, from, to int) {
	for i := from; i < to; i++ {
		rb.push(bufferedMsg{topic: TopicFrame, payload: []byte{byte(i)}})
	}
}

func TestRingBufferEmptyDrain(t *testing.T) {
	rb := newRingBuffer(10, nil)
	if got := rb.drainAll(); got != nil {
		t.Errorf("expected nil from empty drain, got %d items", len(got))
	}
}

func TestRingBufferKeepsOrder(t *testing.T) {
	rb := newRingBuffer(10, nil)
	push(rb, 0, 5)

	got := rb.drainAll()
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for i, msg := range got {
		if msg.payload[0] != byte(i) {
			t.Errorf("item %d: expected payload %d, got %d", i, i, msg.payload[0])
		}
	}
	if rb.len() != 0 {
		t.Errorf("expected len 0 after drain, got %d", rb.len())
	}
}

func TestRingBufferOverflowKeepsNewest(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rb := newRingBuffer(5, zap.New(core))

	// 0..7 into five slots keeps 3..7
	push(rb, 0, 8)

	got := rb.drainAll()
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for i, msg := range got {
		if want := byte(i + 3); msg.payload[0] != want {
			t.Errorf("item %d: expected payload %d, got %d", i, want, msg.payload[0])
		}
	}
	if logs.Len() != 1 {
		t.Errorf("expected one overflow warning, got %d", logs.Len())
	}
}

func TestRingBufferOverflowWarnsAgainAfterDrain(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rb := newRingBuffer(2, zap.New(core))

	push(rb, 0, 4)
	rb.drainAll()
	push(rb, 10, 13)

	if logs.Len() != 2 {
		t.Errorf("expected two overflow warnings, got %d", logs.Len())
	}
	got := rb.drainAll()
	if len(got) != 2 || got[0].payload[0] != 11 || got[1].payload[0] != 12 {
		t.Errorf("expected [11 12], got %v", got)
	}
}

func TestRingBufferZeroCapacityDrops(t *testing.T) {
	rb := newRingBuffer(0, nil)
	push(rb, 0, 3)
	if rb.len() != 0 {
		t.Errorf("expected len 0, got %d", rb.len())
	}
}

func TestRingBufferPreservesFields(t *testing.T) {
	rb := newRingBuffer(10, nil)
	rb.push(bufferedMsg{
		topic:    TopicSystem,
		payload:  []byte(`{"test":true}`),
		qos:      1,
		retained: true,
	})

	got := rb.drainAll()
	if len(got) != 1 {
		t.Fatalf("expected 1 item, got %d", len(got))
	}
	if got[0].topic != TopicSystem {
		t.Errorf("topic: got %s, want %s", got[0].topic, TopicSystem)
	}
	if string(got[0].payload) != `{"test":true}` {
		t.Errorf("payload: got %s", got[0].payload)
	}
	if got[0].qos != 1 || !got[0].retained {
		t.Errorf("expected qos 1 retained, got qos %d retained %v", got[0].qos, got[0].retained)
	}
}
