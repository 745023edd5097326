package infra_kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	EventGameStarted   = "game_started"
	EventStateChanged  = "state_changed"
	EventSongSelected  = "song_selected"
	EventVoteCast      = "vote_cast"
	EventUserJoined    = "user_joined"
	EventRoundFinished = "round_finished"
)

type Event struct {
	Type      string         `json:"type"`
	RoomCode  string         `json:"room_code"`
	Timestamp time.Time      `json:"timestamp"`
	Payload   map[string]any `json:"payload,omitempty"`
}

type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}

	return &Publisher{writer: writer}
}

func (p *Publisher) Publish(ctx context.Context, eventType string, roomCode string, payload map[string]any) error {
	event := Event{
		Type:      eventType,
		RoomCode:  roomCode,
		Timestamp: time.Now(),
		Payload:   payload,
	}

	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(uuid.New().String()),
		Value: b,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Noop satisfies the usecase publisher interfaces when no brokers are
// configured.
type Noop struct{}

func (Noop) Publish(ctx context.Context, eventType string, roomCode string, payload map[string]any) error {
	return nil
}
