package services

import (
	"context"

	"github.com/vnkhanh/e-learning-backend/store"
)

// Ping reports whether the store can serve the categories collection.
func Ping(ctx context.Context, db *store.DB) error {
	_, err := store.Open[struct{}](db, store.Categories).All(ctx)
	return err
}
