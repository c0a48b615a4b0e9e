// Package storage persists the FinanceData aggregate as a single serialized
// blob. Every save is a full overwrite; there is no partial or incremental
// persistence.
package storage

import (
	"context"

	"fincontrol/internal/core"
)

// Blob is the persistence port consumed by the finance store.
//
// Load returns (nil, nil) when no snapshot has ever been saved; the caller
// initializes fresh state in that case. A malformed snapshot is reported as
// an error and is likewise treated as absent upstream.
type Blob interface {
	Load(ctx context.Context) (*core.FinanceData, error)
	Save(ctx context.Context, data *core.FinanceData) error
	Close() error
}
