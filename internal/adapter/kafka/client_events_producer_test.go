package kafka

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
)

type MockProducerClient struct {
	mock.Mock
}

func (c *MockProducerClient) Produce(
	ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error),
) {
	args := c.Called(ctx, r)
	promise(r, args.Error(0))
}

func (c *MockProducerClient) Flush(ctx context.Context) error {
	return c.Called(ctx).Error(0)
}

func (c *MockProducerClient) Close() {
	c.Called()
}

type MockEncoder struct {
	mock.Mock
}

func (e *MockEncoder) Encode(v any) ([]byte, error) {
	args := e.Called(v)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func newTestProducer(
	t *testing.T, cl ProducerClient, enc Encoder,
) *ClientEventsProducer {
	t.Helper()
	p, err := NewClientEventsProducer(
		ProducerBareClientOpt(cl), ProducerEncoderOpt(enc),
	)
	require.NoError(t, err)
	return p
}

func TestClientEventsProducer(t *testing.T) {
	occurredAt := time.UnixMilli(1720000000000).UTC()
	evt := domain.ClientEvent{
		Kind:       domain.EventCartAdd,
		ProductID:  1,
		Title:      "Essence Mascara Lash Princess",
		Price:      9.99,
		Quantity:   1,
		OccurredAt: occurredAt,
	}
	wantSchema := schema.ClientEventV1{
		Kind:       "cart_add",
		ProductID:  1,
		Title:      "Essence Mascara Lash Princess",
		Price:      9.99,
		Quantity:   1,
		OccurredAt: occurredAt,
	}

	t.Run("TooFewOpts", func(t *testing.T) {
		assert.Panics(t, func() {
			_, _ = NewClientEventsProducer(
				ProducerBareClientOpt(new(MockProducerClient)),
			)
		})
	})

	t.Run("NilEncoder", func(t *testing.T) {
		_, err := NewClientEventsProducer(
			ProducerBareClientOpt(new(MockProducerClient)),
			ProducerEncoderOpt(nil),
		)
		require.Error(t, err)
	})

	t.Run("Publish", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		enc.On("Encode", wantSchema).Return([]byte("encoded"), nil)
		cl.On("Produce", mock.Anything, mock.MatchedBy(func(r *kgo.Record) bool {
			return string(r.Key) == "cart_add" && string(r.Value) == "encoded"
		})).Return(nil)

		p := newTestProducer(t, cl, enc)
		p.Publish(t.Context(), evt)

		enc.AssertExpectations(t)
		cl.AssertExpectations(t)
	})

	t.Run("DeliveryFailure", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		enc.On("Encode", wantSchema).Return([]byte("encoded"), nil)
		cl.On("Produce", mock.Anything, mock.Anything).
			Return(errors.New("broker unavailable"))

		p := newTestProducer(t, cl, enc)
		assert.NotPanics(t, func() { p.Publish(t.Context(), evt) })
		cl.AssertNumberOfCalls(t, "Produce", 1)
	})

	t.Run("EncodeFailure", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)
		enc.On("Encode", wantSchema).Return(nil, errors.New("bad schema"))

		p := newTestProducer(t, cl, enc)
		p.Publish(t.Context(), evt)

		cl.AssertNotCalled(t, "Produce", mock.Anything, mock.Anything)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		cl := new(MockProducerClient)
		enc := new(MockEncoder)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		p := newTestProducer(t, cl, enc)
		p.Publish(ctx, evt)

		enc.AssertNotCalled(t, "Encode", mock.Anything)
		cl.AssertNotCalled(t, "Produce", mock.Anything, mock.Anything)
	})

	t.Run("CloseOnce", func(t *testing.T) {
		cl := new(MockProducerClient)
		cl.On("Flush", mock.Anything).Return(nil).Once()
		cl.On("Close").Return().Once()

		p := newTestProducer(t, cl, new(MockEncoder))
		p.Close(t.Context())
		p.Close(t.Context())

		cl.AssertExpectations(t)
	})
}
