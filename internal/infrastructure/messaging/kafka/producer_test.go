package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/zap"

	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/config"
	"github.com/exceptionzofficial/jamjamfinalapp-sub001/internal/domain/event"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	args := m.Called(ctx, rs)
	return args.Get(0).(kgo.ProduceResults)
}

func (m *MockClient) Close() {
	m.Called()
}

func TestInvoiceProducer_KeysByBillNo(t *testing.T) {
	client := new(MockClient)
	p := &InvoiceProducer{client: client, topic: "invoices", logger: zap.NewNop()}
	evt := event.InvoiceIssued{Type: event.TypeInvoiceIssued, BillNo: "B-7", GrandTotal: 1180}

	client.On("ProduceSync", mock.Anything, mock.MatchedBy(func(rs []*kgo.Record) bool {
		if len(rs) != 1 || string(rs[0].Key) != "B-7" || rs[0].Topic != "invoices" {
			return false
		}
		var decoded event.InvoiceIssued
		return json.Unmarshal(rs[0].Value, &decoded) == nil && decoded.GrandTotal == 1180
	})).Return(kgo.ProduceResults{{}})

	require.NoError(t, p.PublishInvoiceIssued(context.Background(), evt))
	client.AssertExpectations(t)
}

func TestInvoiceProducer_ProduceError(t *testing.T) {
	client := new(MockClient)
	p := &InvoiceProducer{client: client, topic: "invoices", logger: zap.NewNop()}
	client.On("ProduceSync", mock.Anything, mock.Anything).
		Return(kgo.ProduceResults{{Err: errors.New("broker down")}})

	err := p.PublishInvoiceIssued(context.Background(), event.InvoiceIssued{BillNo: "R-1"})

	assert.ErrorContains(t, err, "broker down")
}

func TestNewInvoiceProducer_RequiresBrokers(t *testing.T) {
	_, err := NewInvoiceProducer(config.KafkaConfig{InvoiceTopic: "invoices"}, zap.NewNop())

	assert.Error(t, err)
}
