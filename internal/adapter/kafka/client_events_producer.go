package kafka

import (
	"context"
	"log/slog"
	"sync"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.ClientEventsPublisher = (*ClientEventsProducer)(nil)

// A ClientEventsProducer publishes [domain.ClientEvent] without waiting
// for delivery. Failures are logged and never reach the stores.
type ClientEventsProducer struct {
	cl       ProducerClient
	encoder  Encoder
	opPrefix string

	closeOnce sync.Once
}

func NewClientEventsProducer(
	opts ...ProducerOpt,
) (*ClientEventsProducer, error) {
	const op = "NewClientEventsProducer"

	if len(opts) != 2 {
		panic(opErr(ErrTooFewOpts, op)) // develop mistake
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return nil, opErr(err, op)
		}
	}

	return &ClientEventsProducer{
		cl:       options.cl,
		encoder:  options.encoder,
		opPrefix: "ClientEventsProducer",
	}, nil
}

// Publish encodes evt and hands it to the client. The record key is the
// event kind.
func (p *ClientEventsProducer) Publish(
	ctx context.Context, evt domain.ClientEvent,
) {
	const op = "Publish"
	log := slog.With("op", makeOp(p.opPrefix, op))

	if err := ctx.Err(); err != nil {
		log.Warn("event dropped", "kind", evt.Kind, "err", err)
		return
	}

	b, err := p.encoder.Encode(clientEventToSchemaV1(evt))
	if err != nil {
		log.Error("failed to encode event", "kind", evt.Kind, "err", err)
		return
	}

	r := &kgo.Record{Key: []byte(evt.Kind), Value: b}
	p.cl.Produce(ctx, r, func(r *kgo.Record, err error) {
		if err != nil {
			log.Error("failed to deliver event",
				"kind", string(r.Key), "err", err,
			)
			return
		}
		log.Debug("event delivered",
			"kind", string(r.Key), "partition", r.Partition, "offset", r.Offset,
		)
	})
}

// Close flushes buffered records and closes the client.
func (p *ClientEventsProducer) Close(ctx context.Context) {
	const op = "Close"
	log := slog.With("op", makeOp(p.opPrefix, op))

	p.closeOnce.Do(func() {
		log.Info("closing producer...")
		if err := p.cl.Flush(ctx); err != nil {
			log.Warn("failed to flush records", "err", err)
		}
		p.cl.Close()
		log.Info("producer is closed")
	})
}

func clientEventToSchemaV1(v domain.ClientEvent) (s schema.ClientEventV1) {
	s.Kind = string(v.Kind)
	s.Query = v.Query
	s.Results = v.Results
	s.ProductID = v.ProductID
	s.Title = v.Title
	s.Brand = v.Brand
	s.Category = v.Category
	s.Price = v.Price
	s.Quantity = v.Quantity
	s.OccurredAt = v.OccurredAt
	return
}
