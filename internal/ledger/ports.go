// Package ledger defines the port for loading a transaction ledger from a
// backing source. Implementations clean the data on the way in: rows with an
// unparseable date or amount, or a kind outside the enumeration, are dropped.
package ledger

import (
	"context"

	"finsight/internal/core"
)

// Loader produces a cleaned, ordered ledger. It is called once at process
// start; the returned ledger is treated as immutable afterwards.
type Loader interface {
	Load(ctx context.Context) (core.Ledger, error)
}
