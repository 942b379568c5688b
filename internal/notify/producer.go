package notify

import (
	"context"
	"crypto/tls"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl/plain"
)

// Producer writes events to a Kafka topic. A nil Producer silently drops
// publishes so the platform keeps working when messaging is not configured.
type Producer struct {
	writer *kafka.Writer
	log    *slog.Logger
}

// NewProducer returns nil when broker or topic is empty. SASL/TLS is enabled
// only when a username is set.
func NewProducer(broker, topic, username, password string, log *slog.Logger) *Producer {
	if broker == "" || topic == "" {
		return nil
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		WriteTimeout: 10 * time.Second,
	}
	if username != "" {
		w.Transport = &kafka.Transport{
			SASL: plain.Mechanism{Username: username, Password: password},
			TLS:  &tls.Config{},
		}
	}
	return &Producer{writer: w, log: log}
}

func (p *Producer) Publish(ctx context.Context, ev Event) error {
	if p == nil || p.writer == nil {
		return nil
	}

	value, err := marshalEvent(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.SubjectID),
		Value: value,
		Time:  ev.OccurredAt,
	})
	if err != nil {
		p.log.Error("event publish failed", "kind", ev.Kind, "subject_id", ev.SubjectID, "error", err)
		return err
	}
	return nil
}

func (p *Producer) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
