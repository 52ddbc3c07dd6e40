package validation

import (
	"context"
	"time"

	"github.com/stonexiaolei/tuzhan-data/pkg/models"
)

type CollectionStore interface {
	Ping(ctx context.Context) error
	CountInWindow(ctx context.Context, collection string, chainID int64, window models.ValidationWindow) (int64, error)
	CountTotal(ctx context.Context, collection string, chainID int64) (int64, error)
	LatestCreateTime(ctx context.Context, collection string, chainID int64) (*time.Time, error)
}

type NameResolver interface {
	ResolveName(ctx context.Context, chainID string) (string, error)
}
