package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
)

// producer is the subset of kgo.Client used here
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
	Close()
}

// InvoiceProducer publishes invoice events keyed by bill number, so every
// event for one bill lands on the same partition.
type InvoiceProducer struct {
	client producer
	topic  string
	logger *zap.Logger
}

func NewInvoiceProducer(cfg config.KafkaConfig, logger *zap.Logger) (*InvoiceProducer, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka: no brokers configured")
	}
	logger.Info("connecting kafka producer",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.InvoiceTopic))

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.Brokers...),
		kgo.DefaultProduceTopic(cfg.InvoiceTopic),
		kgo.RequiredAcks(kgo.AllISRAcks()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}

	return &InvoiceProducer{client: client, topic: cfg.InvoiceTopic, logger: logger}, nil
}

func (p *InvoiceProducer) PublishInvoiceIssued(ctx context.Context, evt event.InvoiceIssued) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal invoice event: %w", err)
	}

	rec := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(evt.BillNo),
		Value:     payload,
		Timestamp: time.Now().UTC(),
		Headers:   []kgo.RecordHeader{{Key: "type", Value: []byte(evt.Type)}},
	}

	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		p.logger.Error("kafka publish failed",
			zap.String("topic", p.topic),
			zap.String("bill_no", evt.BillNo),
			zap.Error(err))
		return fmt.Errorf("publish to kafka topic %s: %w", p.topic, err)
	}
	return nil
}

func (p *InvoiceProducer) Close() error {
	p.logger.Info("closing kafka producer", zap.String("topic", p.topic))
	p.client.Close()
	return nil
}
