package cart

import (
	"context"

	"github.com/codclick-aut6/clickprato6-sub000/internal/catalog"
)

// SnapshotStore is the durable home of serialized carts.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) (Snapshot, bool, error)
	Save(ctx context.Context, sessionID string, snap Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// CatalogSource supplies a fresh catalog view per request.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.View, error)
}
