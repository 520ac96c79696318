package schema

import "time"

const ClientEventSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "client_event",
	"fields": [
		{"name": "kind", "type": "string"},
		{"name": "query", "type": "string"},
		{"name": "results", "type": "int"},
		{"name": "product_id", "type": "int"},
		{"name": "title", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "price", "type": "double"},
		{"name": "quantity", "type": "int"},
		{"name": "occurred_at", "type": {"type": "long", "logicalType": "timestamp-millis"}}
	]
}`

type ClientEventV1 struct {
	Kind       string    `avro:"kind"`
	Query      string    `avro:"query"`
	Results    int       `avro:"results"`
	ProductID  int       `avro:"product_id"`
	Title      string    `avro:"title"`
	Brand      string    `avro:"brand"`
	Category   string    `avro:"category"`
	Price      float64   `avro:"price"`
	Quantity   int       `avro:"quantity"`
	OccurredAt time.Time `avro:"occurred_at"`
}
