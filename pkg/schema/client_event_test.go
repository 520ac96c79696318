package schema

import (
	"testing"
	"time"

	"github.com/hamba/avro/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEventV1(t *testing.T) {
	t.Run("Search", func(t *testing.T) {
		vMarshal := ClientEventV1{
			Kind:       "search",
			Query:      "watch",
			Results:    3,
			OccurredAt: time.UnixMilli(1720000000123).UTC(),
		}

		var eventSchema avro.Schema
		require.NotPanics(t, func() {
			eventSchema = ClientEventV1Avro()
		})

		data, err := avro.Marshal(eventSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ClientEventV1
		err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.Kind, vUnmarshal.Kind)
		assert.Equal(t, vMarshal.Query, vUnmarshal.Query)
		assert.Equal(t, vMarshal.Results, vUnmarshal.Results)
		assert.True(t, vMarshal.OccurredAt.Equal(vUnmarshal.OccurredAt))
	})

	t.Run("CartAdd", func(t *testing.T) {
		vMarshal := ClientEventV1{
			Kind:       "cart_add",
			ProductID:  9002,
			Title:      "Limited Edition Smartwatch - Out of Stock",
			Brand:      "TechTime",
			Category:   "wearables",
			Price:      499.99,
			Quantity:   2,
			OccurredAt: time.UnixMilli(1720000000000).UTC(),
		}

		eventSchema := ClientEventV1Avro()

		data, err := avro.Marshal(eventSchema, vMarshal)
		require.NoError(t, err)

		var vUnmarshal ClientEventV1
		err = avro.Unmarshal(eventSchema, data, &vUnmarshal)
		require.NoError(t, err)

		assert.Equal(t, vMarshal.ProductID, vUnmarshal.ProductID)
		assert.Equal(t, vMarshal.Title, vUnmarshal.Title)
		assert.Equal(t, vMarshal.Brand, vUnmarshal.Brand)
		assert.Equal(t, vMarshal.Category, vUnmarshal.Category)
		assert.Equal(t, vMarshal.Price, vUnmarshal.Price)
		assert.Equal(t, vMarshal.Quantity, vUnmarshal.Quantity)
		assert.Empty(t, vUnmarshal.Query)
	})
}
