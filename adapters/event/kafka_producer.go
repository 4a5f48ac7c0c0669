package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/SubhajitChakrabort/ProfilePage/internal/config"
)

const TopicMediaEvents = "media.events"

const (
	MediaEventTypeStored   = "media.stored"
	MediaEventTypeReplaced = "media.replaced"
	MediaEventTypeDeleted  = "media.deleted"
)

// MediaEventPayload describes one binary-store lifecycle change.
type MediaEventPayload struct {
	EventType string    `json:"event_type"`
	UserID    int64     `json:"user_id"`
	Filename  string    `json:"filename"`
	FileType  string    `json:"file_type,omitempty"`
	At        time.Time `json:"at"`
}

type KafkaProducerClient struct {
	MediaEventsWriter *kafka.Writer
}

func NewKafkaProducerClient(cfg config.Config) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	mediaWriter := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    TopicMediaEvents,
		Balancer: &kafka.LeastBytes{},
	}

	return &KafkaProducerClient{MediaEventsWriter: mediaWriter}, nil
}

// PublishMediaEvent is safe on a nil client: deployments without brokers
// simply skip event publishing.
func (c *KafkaProducerClient) PublishMediaEvent(ctx context.Context, payload MediaEventPayload) error {
	if c == nil || c.MediaEventsWriter == nil {
		return nil
	}
	if payload.At.IsZero() {
		payload.At = time.Now().UTC()
	}
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal media event: %w", err)
	}
	return c.MediaEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(payload.Filename),
		Value: value,
	})
}

func (c *KafkaProducerClient) Close() {
	if c == nil {
		return
	}
	if c.MediaEventsWriter != nil {
		c.MediaEventsWriter.Close()
	}
}
