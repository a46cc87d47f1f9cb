package consumer

import (
	"context"

	"github.com/schemaworks/registrar/internal/rabbit"
)

// Delivery is the broker message contract the processor works against.
type Delivery = rabbit.Delivery

// Deleter is the slice of the schema store the consumer depends on.
type Deleter interface {
	DeleteSchema(ctx context.Context, schemaName string) error
}
