package kafka

import (
	"context"
	"encoding/json"

	kafka "github.com/segmentio/kafka-go"

	"opsdash/internal/models"
)

// Publisher emits stage-advanced events for downstream consumers (the
// pricing stage reads them to pick up finished assignments).
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	w := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	return &Publisher{writer: w}, nil
}

func (p *Publisher) PublishStageAdvanced(ctx context.Context, event models.StageEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.Oid),
		Value: payload,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}
