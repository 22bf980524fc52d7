package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
)

// MockRedis overrides the commands used here; any other call panics.
type MockRedis struct {
	redis.Cmdable
	mock.Mock
}

func (m *MockRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	args := m.Called(ctx, key)
	return redis.NewIntResult(int64(args.Int(0)), args.Error(1))
}

func (m *MockRedis) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	args := m.Called(ctx, channel, message)
	return redis.NewIntResult(int64(args.Int(0)), args.Error(1))
}

func TestBillSequence_AllocateUsesIncrPerPrefix(t *testing.T) {
	rdb := new(MockRedis)
	rdb.On("Incr", mock.Anything, "billseq:B").Return(42, nil).Once()

	n, err := NewBillSequence(rdb).Allocate(context.Background(), "B")

	require.NoError(t, err)
	assert.Equal(t, int64(42), n)
	rdb.AssertExpectations(t)
}

func TestBillSequence_AllocatePropagatesError(t *testing.T) {
	rdb := new(MockRedis)
	rdb.On("Incr", mock.Anything, "billseq:R").Return(0, errors.New("connection refused"))

	_, err := NewBillSequence(rdb).Allocate(context.Background(), "R")

	assert.ErrorContains(t, err, "connection refused")
}

func TestInvoicePublisher_PublishesJSON(t *testing.T) {
	rdb := new(MockRedis)
	rdb.On("Publish", mock.Anything, "billing:invoices", mock.MatchedBy(func(msg interface{}) bool {
		b, ok := msg.([]byte)
		if !ok {
			return false
		}
		var evt event.InvoiceIssued
		return json.Unmarshal(b, &evt) == nil && evt.BillNo == "R-3"
	})).Return(1, nil)

	p := NewInvoicePublisher(rdb, "billing:invoices", zap.NewNop())
	err := p.PublishInvoiceIssued(context.Background(), event.InvoiceIssued{Type: event.TypeInvoiceIssued, BillNo: "R-3"})

	require.NoError(t, err)
	rdb.AssertExpectations(t)
}
