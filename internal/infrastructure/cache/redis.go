// Package cache holds the redis-backed bill counter and invoice event publisher.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/repository"
)

const sequenceKeyPrefix = "billseq:"

// NewRedisClient connects and pings redis
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr(), err)
	}
	return rdb, nil
}

type billSequence struct {
	rdb redis.Cmdable
}

// NewBillSequence returns a counter backed by INCR, which is atomic on the server
func NewBillSequence(rdb redis.Cmdable) repository.BillSequenceRepository {
	return &billSequence{rdb: rdb}
}

func SequenceKey(prefix string) string {
	return sequenceKeyPrefix + prefix
}

func (s *billSequence) Allocate(ctx context.Context, prefix string) (int64, error) {
	return s.rdb.Incr(ctx, SequenceKey(prefix)).Result()
}

// InvoicePublisher publishes invoice events as JSON on a pub/sub channel
type InvoicePublisher struct {
	rdb     redis.Cmdable
	channel string
	logger  *zap.Logger
}

func NewInvoicePublisher(rdb redis.Cmdable, channel string, logger *zap.Logger) *InvoicePublisher {
	return &InvoicePublisher{rdb: rdb, channel: channel, logger: logger}
}

func (p *InvoicePublisher) PublishInvoiceIssued(ctx context.Context, evt event.InvoiceIssued) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal invoice event: %w", err)
	}
	receivers, err := p.rdb.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish to redis channel %s: %w", p.channel, err)
	}
	p.logger.Debug("invoice event published",
		zap.String("channel", p.channel),
		zap.String("bill_no", evt.BillNo),
		zap.Int64("receivers", receivers))
	return nil
}

// Close is a no-op; the redis client is owned by the caller
func (p *InvoicePublisher) Close() error {
	return nil
}
