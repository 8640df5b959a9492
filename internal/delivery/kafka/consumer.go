package kafka

import (
	"context"
	"errors"
	"strconv"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"opsdash/internal/service"
)

type Config struct {
	Brokers     []string
	GroupID     string
	Topic       string
	DLQ         string
	MaxRetries  int
	BaseBackoff time.Duration
}

// Consumer listens on the workflow topic for upstream stage changes
// (collection/packaging payload updates) and feeds them to the service,
// which evicts the affected session so the next load re-reconciles.
type Consumer struct {
	reader *kafka.Reader
	dlq    *kafka.Writer
	svc    service.Assignment

	maxRetries  int
	baseBackoff time.Duration
}

func NewConsumer(cfg Config, svc service.Assignment) *Consumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        100 * time.Millisecond,
		CommitInterval: 0,
	})

	var w *kafka.Writer
	if cfg.DLQ != "" {
		w = &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Brokers...),
			Topic:                  cfg.DLQ,
			RequiredAcks:           kafka.RequireAll,
			Balancer:               &kafka.LeastBytes{},
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.BaseBackoff <= 0 {
		cfg.BaseBackoff = 200 * time.Millisecond
	}

	return &Consumer{
		reader:      r,
		dlq:         w,
		svc:         svc,
		maxRetries:  cfg.MaxRetries,
		baseBackoff: cfg.BaseBackoff,
	}
}

func (c *Consumer) Subscribe(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		m, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			logrus.WithError(err).Error("kafka fetch failed")
			select {
			case <-time.After(300 * time.Millisecond):
				continue
			case <-ctx.Done():
				return nil
			}
		}

		logrus.WithFields(logrus.Fields{
			"topic":     m.Topic,
			"partition": m.Partition,
			"offset":    m.Offset,
			"key":       string(m.Key),
		}).Debug("stage event fetched")

		ok := false
		var last error
		for attempt := 0; attempt <= c.maxRetries; attempt++ {
			if e := c.svc.HandleStageEvent(ctx, m.Value); e == nil {
				ok = true
				break
			} else if isNonRetryable(e) {
				last = e
				break
			} else {
				last = e
				time.Sleep(backoff(attempt, c.baseBackoff))
			}
		}

		if ok {
			if err := c.reader.CommitMessages(ctx, m); err != nil {
				logrus.WithError(err).Errorf("commit failed (offset %d, partition %d)", m.Offset, m.Partition)
			}
			continue
		}

		if c.dlq != nil {
			if ctx.Err() != nil {
				return nil
			}

			dlqMsg := kafka.Message{
				Key:   m.Key,
				Value: m.Value,
				Headers: append(m.Headers,
					kafka.Header{Key: "x-dlq-reason", Value: []byte(trimErr(last))},
					kafka.Header{Key: "x-dlq-attempts", Value: []byte(strconv.Itoa(c.maxRetries + 1))},
					kafka.Header{Key: "x-dlq-ts", Value: []byte(time.Now().UTC().Format(time.RFC3339))},
					kafka.Header{Key: "x-dlq-source-topic", Value: []byte(c.reader.Config().Topic)},
					kafka.Header{Key: "x-dlq-group", Value: []byte(c.reader.Config().GroupID)},
				),
			}
			if err := c.dlq.WriteMessages(ctx, dlqMsg); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logrus.WithError(err).Errorf("write to DLQ failed (offset %d, partition %d)", m.Offset, m.Partition)
				time.Sleep(500 * time.Millisecond)
				continue
			}
		} else {
			logrus.Errorf("DLQ disabled, drop message (offset %d, partition %d): %v", m.Offset, m.Partition, last)
		}

		if err := c.reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logrus.WithError(err).Errorf("commit after DLQ (offset %d, partition %d) failed", m.Offset, m.Partition)
		}
	}
}

func (c *Consumer) Close() error {
	var first error
	if c.reader != nil {
		if err := c.reader.Close(); err != nil {
			first = err
		}
	}
	if c.dlq != nil {
		if err := c.dlq.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func backoff(n int, base time.Duration) time.Duration {
	if n <= 0 {
		return 0
	}
	d := base * (1 << (n - 1))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	return d
}

func trimErr(err error) string {
	if err == nil {
		return ""
	}
	s := err.Error()
	if len(s) > 1000 {
		return s[:1000]
	}
	return s
}

func isNonRetryable(err error) bool {
	return errors.Is(err, service.ErrDecode) || errors.Is(err, service.ErrValidation)
}
