package schema_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/storefront/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeClientEventV1(t *testing.T) {
	const subject = "storefront-client-events-value"

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EmptySubject", func(t *testing.T) {
		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(""),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
	})

	t.Run("RegistryUnavailable", func(t *testing.T) {
		errRegistry := errors.New("registry unavailable")
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(0, errRegistry)

		_, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, errRegistry)
		schemaIdentifier.AssertExpectations(t)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.ClientEventSchemaTextV1,
		).Return(7, nil)

		serde, err := schema.NewSerdeClientEventV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		event1 := schema.ClientEventV1{
			Kind:       "cart_update",
			ProductID:  1,
			Title:      "Essence Mascara Lash Princess",
			Price:      9.99,
			Quantity:   4,
			OccurredAt: time.UnixMilli(1720000000000).UTC(),
		}

		encoded, err := serde.Encode(event1)
		require.NoError(t, err)
		require.Greater(t, len(encoded), 5)
		assert.Equal(t, byte(0), encoded[0], "magic byte")

		var event2 schema.ClientEventV1
		err = serde.Decode(encoded, &event2)
		require.NoError(t, err)

		assert.Equal(t, event1.Kind, event2.Kind)
		assert.Equal(t, event1.ProductID, event2.ProductID)
		assert.Equal(t, event1.Title, event2.Title)
		assert.Equal(t, event1.Price, event2.Price)
		assert.Equal(t, event1.Quantity, event2.Quantity)
		assert.True(t, event1.OccurredAt.Equal(event2.OccurredAt))
	})
}
