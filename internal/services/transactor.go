package services

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// Transactor runs a function inside a Mongo session transaction. The
// database package's MongoDB type satisfies it; tests substitute a fake
// that simply invokes the function.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error)) (interface{}, error)
}
